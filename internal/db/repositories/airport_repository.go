package repositories

import (
	"context"
	"errors"

	"infinite-experiment/airclock/internal/models/entities"
	"infinite-experiment/airclock/internal/models/gorm"

	gormlib "gorm.io/gorm"
)

// AirportRepository handles airport table operations
type AirportRepository struct {
	db *gormlib.DB
}

// NewAirportRepository creates a new airport repository
func NewAirportRepository(db *gormlib.DB) *AirportRepository {
	return &AirportRepository{db: db}
}

// FindByICAO finds an airport by ICAO code (case-insensitive)
func (r *AirportRepository) FindByICAO(ctx context.Context, icao string) (*gorm.Airport, error) {
	var airport gorm.Airport

	err := r.db.WithContext(ctx).
		Where("UPPER(icao) = UPPER(?)", icao).
		First(&airport).Error

	if err != nil {
		if errors.Is(err, gormlib.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &airport, nil
}

// FindByIATA finds an airport by IATA code (case-insensitive)
func (r *AirportRepository) FindByIATA(ctx context.Context, iata string) (*gorm.Airport, error) {
	var airport gorm.Airport

	err := r.db.WithContext(ctx).
		Where("UPPER(iata) = UPPER(?)", iata).
		First(&airport).Error

	if err != nil {
		if errors.Is(err, gormlib.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &airport, nil
}

// LookupAirport serves the temporal reference cache. Returns nil, nil when
// the airport does not exist.
func (r *AirportRepository) LookupAirport(ctx context.Context, icao string) (*entities.AirportRecord, error) {
	airport, err := r.FindByICAO(ctx, icao)
	if err != nil || airport == nil {
		return nil, err
	}
	record := ToAirportRecord(*airport)
	return &record, nil
}

// BatchInsert inserts multiple airports
func (r *AirportRepository) BatchInsert(ctx context.Context, airports []gorm.Airport) error {
	return r.db.WithContext(ctx).
		CreateInBatches(airports, 100).Error
}

// ReplaceAll swaps the table contents for the given airports in one transaction
func (r *AirportRepository) ReplaceAll(ctx context.Context, airports []gorm.Airport) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gormlib.DB) error {
		if err := tx.Where("1 = 1").Delete(&gorm.Airport{}).Error; err != nil {
			return err
		}
		return tx.CreateInBatches(airports, 100).Error
	})
}

// Count returns total number of airports
func (r *AirportRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&gorm.Airport{}).Count(&count).Error
	return count, err
}

// ToAirportRecord converts the table row into the directory record
func ToAirportRecord(a gorm.Airport) entities.AirportRecord {
	record := entities.AirportRecord{
		ICAO:    entities.NormalizeICAO(a.ICAO),
		IATA:    a.IATA,
		Name:    a.Name,
		City:    a.City,
		Region:  a.Region,
		Country: a.Country,
	}
	if a.Latitude.Valid {
		lat := a.Latitude.Float64
		record.Latitude = &lat
	}
	if a.Longitude.Valid {
		lon := a.Longitude.Float64
		record.Longitude = &lon
	}
	if a.Timezone.Valid {
		record.Timezone = a.Timezone.String
	}
	if a.Elevation.Valid {
		elev := int(a.Elevation.Int64)
		record.Elevation = &elev
	}
	return record
}
