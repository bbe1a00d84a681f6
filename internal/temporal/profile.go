// Package temporal is the airport temporal authority: for an airport it
// assembles local and UTC clock readings, DST offset behaviour and the day's
// solar events, backed by a reference cache and a solar cache.
package temporal

import (
	"context"
	"time"

	"infinite-experiment/airclock/internal/common"
	"infinite-experiment/airclock/internal/logging"
	"infinite-experiment/airclock/internal/metrics"
)

// CoordinateSource tags whether solar times used the airport's coordinates
type CoordinateSource string

const (
	CoordinatesReference   CoordinateSource = "reference"
	CoordinatesPlaceholder CoordinateSource = "placeholder"
)

const (
	warnCoordinatesMissing = "coordinates missing; solar times use placeholder (0,0) and may be inaccurate"
	warnSolarIncomplete    = "some solar events do not occur or could not be computed for this date"
)

// AirportIdentity is the subset of the reference record echoed on a profile.
// Latitude and Longitude are both nil unless the directory has both.
type AirportIdentity struct {
	ICAO      string   `json:"icao"`
	IATA      string   `json:"iata,omitempty"`
	Name      string   `json:"name,omitempty"`
	City      string   `json:"city,omitempty"`
	Region    string   `json:"region,omitempty"`
	Country   string   `json:"country,omitempty"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Elevation *int     `json:"elevation,omitempty"`
}

// ClockReadings are the current instant rendered three ways
type ClockReadings struct {
	UTC          string `json:"utc"`
	Local        string `json:"local"`
	LocalISO     string `json:"local_iso"`
	Abbreviation string `json:"abbreviation"`
}

// SolarEvent is one event as an instant plus its local rendering
type SolarEvent struct {
	UTC   *time.Time `json:"utc"`
	Local string     `json:"local,omitempty"`
}

// SolarSummary is the profile's view of the day's solar snapshot
type SolarSummary struct {
	Date      string     `json:"date"`
	Algorithm string     `json:"algorithm"`
	Dawn      SolarEvent `json:"dawn"`
	Sunrise   SolarEvent `json:"sunrise"`
	SolarNoon SolarEvent `json:"solar_noon"`
	Sunset    SolarEvent `json:"sunset"`
	Dusk      SolarEvent `json:"dusk"`
}

// ProfileMeta carries the solar cache key, computation instant and warnings
type ProfileMeta struct {
	CacheKey   string    `json:"cache_key"`
	ComputedAt time.Time `json:"computed_at"`
	Warnings   []string  `json:"warnings"`
}

// Profile is the immutable temporal snapshot for one airport at one instant
type Profile struct {
	Airport     AirportIdentity  `json:"airport"`
	Timezone    ResolvedZone     `json:"timezone"`
	Offsets     OffsetDescriptor `json:"offsets"`
	Clock       ClockReadings    `json:"clock"`
	Solar       SolarSummary     `json:"solar"`
	IsDaylight  bool             `json:"is_daylight"`
	Segment     Segment          `json:"segment"`
	Coordinates CoordinateSource `json:"coordinate_source"`
	Meta        ProfileMeta      `json:"meta"`
}

// Assembler builds profiles from the reference cache, resolver and solar engine
type Assembler struct {
	refs     *ReferenceCache
	resolver *Resolver
	solar    *SolarEngine
	clock    common.Clock
	metrics  *metrics.MetricsRegistry
}

func NewAssembler(refs *ReferenceCache, resolver *Resolver, solar *SolarEngine, clock common.Clock) *Assembler {
	return &Assembler{
		refs:     refs,
		resolver: resolver,
		solar:    solar,
		clock:    clock,
	}
}

// SetMetrics attaches Prometheus counters
func (a *Assembler) SetMetrics(m *metrics.MetricsRegistry) {
	a.metrics = m
}

// References exposes the reference cache for stats and clearing
func (a *Assembler) References() *ReferenceCache {
	return a.refs
}

// Solar exposes the solar engine for stats and clearing
func (a *Assembler) Solar() *SolarEngine {
	return a.solar
}

// GetProfile returns nil, nil for an unknown airport. Incomplete reference
// data degrades into warnings; an error means the directory itself failed.
func (a *Assembler) GetProfile(ctx context.Context, identifier string) (*Profile, error) {
	record, err := a.refs.Fetch(ctx, identifier)
	if err != nil {
		a.count("error")
		return nil, err
	}
	if record == nil {
		a.count("not_found")
		return nil, nil
	}

	now := a.clock.Now()
	zone := a.resolver.Resolve(ctx, *record)
	loc := zone.Location

	warnings := make([]string, 0, len(zone.Warnings)+2)
	warnings = append(warnings, zone.Warnings...)

	lat, lon := 0.0, 0.0
	var reportedLat, reportedLon *float64
	source := CoordinatesPlaceholder
	if record.HasCoordinates() {
		lat, lon = *record.Latitude, *record.Longitude
		reportedLat, reportedLon = record.Latitude, record.Longitude
		source = CoordinatesReference
	} else {
		warnings = append(warnings, warnCoordinatesMissing)
	}

	snap := a.solar.Compute(lat, lon, loc, now)
	if !snap.Complete() {
		warnings = append(warnings, warnSolarIncomplete)
	}

	segment := Classify(now, snap)
	abbreviation, _ := now.In(loc).Zone()

	profile := &Profile{
		Airport: AirportIdentity{
			ICAO:      record.ICAO,
			IATA:      record.IATA,
			Name:      record.Name,
			City:      record.City,
			Region:    record.Region,
			Country:   record.Country,
			Latitude:  reportedLat,
			Longitude: reportedLon,
			Elevation: record.Elevation,
		},
		Timezone: ResolvedZone{
			Name:       zone.Name,
			Provenance: zone.Provenance,
			Warnings:   zone.Warnings,
			Location:   loc,
		},
		Offsets: DescribeOffsets(loc, now),
		Clock: ClockReadings{
			UTC:          FormatZulu(now),
			Local:        FormatLocal(now, loc),
			LocalISO:     FormatLocalISO(now, loc),
			Abbreviation: abbreviation,
		},
		Solar:       summarize(snap),
		IsDaylight:  segment != SegmentNight,
		Segment:     segment,
		Coordinates: source,
		Meta: ProfileMeta{
			CacheKey:   SolarCacheKey(loc, now),
			ComputedAt: now,
			Warnings:   warnings,
		},
	}

	if len(warnings) > 0 {
		logging.Debug("Temporal profile degraded",
			"icao", record.ICAO,
			"provenance", string(zone.Provenance),
			"warnings", len(warnings),
		)
	}
	a.count("ok")
	return profile, nil
}

func (a *Assembler) count(outcome string) {
	if a.metrics != nil {
		a.metrics.ProfilesServedTotal.WithLabelValues(outcome).Inc()
	}
}

func summarize(snap SolarSnapshot) SolarSummary {
	return SolarSummary{
		Date:      snap.Date,
		Algorithm: snap.Algorithm,
		Dawn:      solarEvent(snap.Dawn, snap.DawnLocal),
		Sunrise:   solarEvent(snap.Sunrise, snap.SunriseLocal),
		SolarNoon: solarEvent(snap.SolarNoon, snap.SolarNoonLocal),
		Sunset:    solarEvent(snap.Sunset, snap.SunsetLocal),
		Dusk:      solarEvent(snap.Dusk, snap.DuskLocal),
	}
}

func solarEvent(t time.Time, local string) SolarEvent {
	if t.IsZero() {
		return SolarEvent{}
	}
	utc := t.UTC()
	return SolarEvent{UTC: &utc, Local: local}
}
