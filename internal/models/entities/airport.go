package entities

import "strings"

// AirportRecord is the read-only reference record handed out by the airport
// directory. Optional values are pointers so "missing" and "zero" stay
// distinguishable.
type AirportRecord struct {
	ICAO      string   `json:"icao"`
	IATA      string   `json:"iata,omitempty"`
	Name      string   `json:"name,omitempty"`
	City      string   `json:"city,omitempty"`
	Region    string   `json:"region,omitempty"`
	Country   string   `json:"country,omitempty"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Timezone  string   `json:"timezone,omitempty"`
	Elevation *int     `json:"elevation,omitempty"`
}

// HasCoordinates reports whether both latitude and longitude are known
func (a AirportRecord) HasCoordinates() bool {
	return a.Latitude != nil && a.Longitude != nil
}

// Clone returns a copy that shares no memory with a
func (a AirportRecord) Clone() AirportRecord {
	out := a
	if a.Latitude != nil {
		lat := *a.Latitude
		out.Latitude = &lat
	}
	if a.Longitude != nil {
		lon := *a.Longitude
		out.Longitude = &lon
	}
	if a.Elevation != nil {
		elev := *a.Elevation
		out.Elevation = &elev
	}
	return out
}

// NormalizeICAO trims and uppercases an airport identifier
func NormalizeICAO(identifier string) string {
	return strings.ToUpper(strings.TrimSpace(identifier))
}
