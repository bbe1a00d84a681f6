package main

import (
	"strings"
	"testing"
	"time"

	"infinite-experiment/airclock/internal/temporal"
)

func TestFormatMinutes(t *testing.T) {
	cases := map[int]string{
		0:    "UTC+00:00",
		330:  "UTC+05:30",
		-210: "UTC-03:30",
		-420: "UTC-07:00",
	}
	for in, want := range cases {
		if got := formatMinutes(in); got != want {
			t.Errorf("formatMinutes(%d) = %s, want %s", in, got, want)
		}
	}
}

func TestRenderCard(t *testing.T) {
	sunrise := time.Date(2025, 12, 5, 7, 52, 0, 0, time.UTC)
	dst := 60
	p := &temporal.Profile{
		Airport:  temporal.AirportIdentity{ICAO: "EGLL", IATA: "LHR", Name: "London Heathrow Airport"},
		Timezone: temporal.ResolvedZone{Name: "Europe/London", Provenance: temporal.ProvenanceDeclared},
		Offsets:  temporal.OffsetDescriptor{StandardOffsetMinutes: 0, DSTOffsetMinutes: &dst, UsesDST: true},
		Clock:    temporal.ClockReadings{UTC: "14:30 Z", Local: "14:30 GMT"},
		Solar: temporal.SolarSummary{
			Algorithm: "suncalc",
			Sunrise:   temporal.SolarEvent{UTC: &sunrise, Local: "07:52 GMT"},
		},
		Segment:    temporal.SegmentDay,
		IsDaylight: true,
		Meta: temporal.ProfileMeta{
			CacheKey: "Europe/London:2025-12-05",
			Warnings: []string{"coordinates missing"},
		},
	}

	out := renderCard(p)
	for _, want := range []string{"EGLL / LHR", "Europe/London (declared)", "07:52 GMT", "does not occur", "UTC+00:00, DST UTC+01:00", "coordinates missing", "Europe/London:2025-12-05"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected card to contain %q\n%s", want, out)
		}
	}
}
