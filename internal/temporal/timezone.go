package temporal

import (
	"context"
	"fmt"
	"time"
	_ "time/tzdata" // zone database for hosts and containers without one

	"infinite-experiment/airclock/internal/logging"
	"infinite-experiment/airclock/internal/metrics"
	"infinite-experiment/airclock/internal/models/entities"

	"github.com/zsefvlol/timezonemapper"
)

// Provenance tags where a resolved timezone came from
type Provenance string

const (
	ProvenanceDeclared  Provenance = "declared"
	ProvenanceComputed  Provenance = "computed"
	ProvenanceDefaulted Provenance = "defaulted"
)

// ZoneFinder maps coordinates to an IANA zone name
type ZoneFinder interface {
	ZoneName(ctx context.Context, lat, lon float64) (string, error)
}

// ZoneFinderFunc adapts a function to ZoneFinder
type ZoneFinderFunc func(ctx context.Context, lat, lon float64) (string, error)

func (f ZoneFinderFunc) ZoneName(ctx context.Context, lat, lon float64) (string, error) {
	return f(ctx, lat, lon)
}

// CoordinateZoneFinder resolves zones offline from the timezonemapper polygons
type CoordinateZoneFinder struct{}

func (CoordinateZoneFinder) ZoneName(_ context.Context, lat, lon float64) (name string, err error) {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return "", fmt.Errorf("coordinates out of range: %f,%f", lat, lon)
	}

	defer func() {
		if r := recover(); r != nil {
			name, err = "", fmt.Errorf("timezone lookup panicked: %v", r)
		}
	}()

	name = timezonemapper.LatLngToTimezoneString(lat, lon)
	if name == "" || name == "unknown" {
		return "", fmt.Errorf("no timezone found for %f,%f", lat, lon)
	}
	return name, nil
}

// ResolvedZone is the outcome of timezone resolution. Location is always
// usable, UTC in the worst case.
type ResolvedZone struct {
	Name       string         `json:"name"`
	Provenance Provenance     `json:"provenance"`
	Warnings   []string       `json:"warnings,omitempty"`
	Location   *time.Location `json:"-"`
}

// Accurate reports whether the zone came from reference data or a
// successful coordinate lookup.
func (z ResolvedZone) Accurate() bool {
	return z.Provenance != ProvenanceDefaulted
}

// Resolver derives a timezone for an airport record: declared name, then
// coordinates, then UTC.
type Resolver struct {
	finder  ZoneFinder
	metrics *metrics.MetricsRegistry
}

func NewResolver(finder ZoneFinder) *Resolver {
	if finder == nil {
		finder = CoordinateZoneFinder{}
	}
	return &Resolver{finder: finder}
}

// SetMetrics attaches Prometheus counters
func (r *Resolver) SetMetrics(m *metrics.MetricsRegistry) {
	r.metrics = m
}

// Resolve never fails; every fallback step adds a warning.
func (r *Resolver) Resolve(ctx context.Context, record entities.AirportRecord) ResolvedZone {
	zone := r.resolve(ctx, record)
	if r.metrics != nil {
		r.metrics.TimezoneFallbacksTotal.WithLabelValues(string(zone.Provenance)).Inc()
	}
	return zone
}

func (r *Resolver) resolve(ctx context.Context, record entities.AirportRecord) ResolvedZone {
	var warnings []string

	if record.Timezone != "" {
		loc, err := time.LoadLocation(record.Timezone)
		if err == nil {
			return ResolvedZone{Name: loc.String(), Provenance: ProvenanceDeclared, Location: loc}
		}
		logging.Warn("Declared timezone could not be loaded",
			"icao", record.ICAO,
			"timezone", record.Timezone,
			"error", err.Error(),
		)
		warnings = append(warnings, fmt.Sprintf("declared timezone %q is not a known zone", record.Timezone))
	}

	if !record.HasCoordinates() {
		if record.Timezone == "" {
			warnings = append(warnings, "timezone and coordinates are both missing; using UTC")
		} else {
			warnings = append(warnings, "coordinates are missing; using UTC")
		}
		return defaultedZone(warnings)
	}

	name, err := r.finder.ZoneName(ctx, *record.Latitude, *record.Longitude)
	if err == nil {
		var loc *time.Location
		loc, err = time.LoadLocation(name)
		if err == nil {
			if record.Timezone == "" {
				warnings = append(warnings, fmt.Sprintf("timezone not declared; computed %s from coordinates", loc.String()))
			}
			return ResolvedZone{Name: loc.String(), Provenance: ProvenanceComputed, Warnings: warnings, Location: loc}
		}
	}

	logging.Warn("Timezone lookup from coordinates failed",
		"icao", record.ICAO,
		"latitude", *record.Latitude,
		"longitude", *record.Longitude,
		"error", err.Error(),
	)
	warnings = append(warnings, "timezone lookup from coordinates failed; using UTC")
	return defaultedZone(warnings)
}

func defaultedZone(warnings []string) ResolvedZone {
	return ResolvedZone{
		Name:       time.UTC.String(),
		Provenance: ProvenanceDefaulted,
		Warnings:   warnings,
		Location:   time.UTC,
	}
}
