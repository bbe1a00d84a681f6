package common

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"infinite-experiment/airclock/internal/db/repositories"
	"infinite-experiment/airclock/internal/logging"
	"infinite-experiment/airclock/internal/models/gorm"
)

// AirportLoaderService handles loading airport data from JSON
type AirportLoaderService struct {
	repo   *repositories.AirportRepository
	client *http.Client
}

// RawAirportData represents the structure of airport data from JSON
type RawAirportData struct {
	ICAO      string   `json:"icao"`
	IATA      string   `json:"iata"`
	Name      string   `json:"name"`
	City      string   `json:"city"`
	State     string   `json:"state"`
	Country   string   `json:"country"`
	Elevation int      `json:"elevation"`
	Lat       *float64 `json:"lat"`
	Lon       *float64 `json:"lon"`
	TZ        string   `json:"tz"`
}

// NewAirportLoaderService creates a new airport loader service
func NewAirportLoaderService(repo *repositories.AirportRepository) *AirportLoaderService {
	return &AirportLoaderService{
		repo:   repo,
		client: &http.Client{Timeout: 2 * time.Minute, Transport: LoggingTransport{}},
	}
}

// LoadFromJSON loads airports from a JSON reader and replaces the table contents
// Expected format: object with airport data as values
// Example: {"KJFK": {"icao": "KJFK", "name": "John F. Kennedy...", ...}}
func (s *AirportLoaderService) LoadFromJSON(ctx context.Context, reader io.Reader) (int, error) {
	var rawData map[string]RawAirportData
	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(&rawData); err != nil {
		return 0, fmt.Errorf("failed to decode JSON: %w", err)
	}

	if len(rawData) == 0 {
		return 0, fmt.Errorf("no airport data found in JSON")
	}

	logging.Info("Airport dataset decoded", "records", len(rawData))

	airports := make([]gorm.Airport, 0, len(rawData))
	for _, raw := range rawData {
		airport, ok := toAirportRow(raw)
		if !ok {
			continue // Skip invalid records
		}
		airports = append(airports, airport)
	}

	if len(airports) == 0 {
		return 0, fmt.Errorf("no valid airports found after parsing")
	}

	if err := s.repo.ReplaceAll(ctx, airports); err != nil {
		return 0, fmt.Errorf("failed to replace airports: %w", err)
	}

	logging.Info("Airport dataset imported", "airports", len(airports))
	return len(airports), nil
}

// LoadFromURL fetches the dataset over HTTP and imports it
func (s *AirportLoaderService) LoadFromURL(ctx context.Context, url string) (int, error) {
	logging.Info("Fetching airport dataset", "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build airports request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch airports: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("failed to fetch airports: HTTP %d", resp.StatusCode)
	}

	return s.LoadFromJSON(ctx, resp.Body)
}

// GetStats returns statistics about loaded airports
func (s *AirportLoaderService) GetStats(ctx context.Context) (map[string]interface{}, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"total_airports": count,
	}, nil
}

func toAirportRow(raw RawAirportData) (gorm.Airport, bool) {
	airport := gorm.Airport{
		ICAO:    strings.ToUpper(strings.TrimSpace(raw.ICAO)),
		IATA:    strings.ToUpper(strings.TrimSpace(raw.IATA)),
		Name:    strings.TrimSpace(raw.Name),
		City:    strings.TrimSpace(raw.City),
		Region:  strings.TrimSpace(raw.State),
		Country: strings.TrimSpace(raw.Country),
	}

	// Validate required fields
	if len(airport.ICAO) != 4 || airport.Name == "" {
		return gorm.Airport{}, false
	}

	// (0,0) in the dataset marks unknown coordinates, not a runway in the Gulf of Guinea
	if raw.Lat != nil && raw.Lon != nil && !(*raw.Lat == 0 && *raw.Lon == 0) {
		airport.Latitude = sql.NullFloat64{Float64: *raw.Lat, Valid: true}
		airport.Longitude = sql.NullFloat64{Float64: *raw.Lon, Valid: true}
	}

	if tz := strings.TrimSpace(raw.TZ); tz != "" {
		airport.Timezone = sql.NullString{String: tz, Valid: true}
	}

	if raw.Elevation != 0 {
		airport.Elevation = sql.NullInt64{Int64: int64(raw.Elevation), Valid: true}
	}

	return airport, true
}
