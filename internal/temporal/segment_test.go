package temporal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedSnapshot() SolarSnapshot {
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return SolarSnapshot{
		Dawn:      day.Add(4*time.Hour + 30*time.Minute),
		Sunrise:   day.Add(5 * time.Hour),
		SolarNoon: day.Add(12 * time.Hour),
		Sunset:    day.Add(20 * time.Hour),
		Dusk:      day.Add(20*time.Hour + 40*time.Minute),
	}
}

func TestClassify_Boundaries(t *testing.T) {
	snap := fixedSnapshot()
	ns := time.Nanosecond

	cases := []struct {
		name string
		at   time.Time
		want Segment
	}{
		{"just before dawn", snap.Dawn.Add(-ns), SegmentNight},
		{"at dawn", snap.Dawn, SegmentDawn},
		{"just before sunrise", snap.Sunrise.Add(-ns), SegmentDawn},
		{"at sunrise", snap.Sunrise, SegmentDay},
		{"solar noon", snap.SolarNoon, SegmentDay},
		{"just before sunset", snap.Sunset.Add(-ns), SegmentDay},
		{"at sunset", snap.Sunset, SegmentDusk},
		{"just before dusk", snap.Dusk.Add(-ns), SegmentDusk},
		{"at dusk", snap.Dusk, SegmentNight},
		{"local midnight after", snap.Dusk.Add(3 * time.Hour), SegmentNight},
		{"previous evening", snap.Dawn.Add(-10 * time.Hour), SegmentNight},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.at, snap))
			assert.Equal(t, tc.want == SegmentNight, IsNight(tc.at, snap))
		})
	}
}

func TestClassify_TotalAndCyclic(t *testing.T) {
	snap := fixedSnapshot()
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	counts := map[Segment]int{}
	transitions := 0
	prev := Classify(start, snap)
	for m := 0; m < 24*60; m++ {
		seg := Classify(start.Add(time.Duration(m)*time.Minute), snap)
		counts[seg]++
		if seg != prev {
			transitions++
			prev = seg
		}
	}

	assert.Equal(t, 4, transitions, "night->dawn->day->dusk->night")
	assert.Equal(t, 30, counts[SegmentDawn])
	assert.Equal(t, 15*60, counts[SegmentDay])
	assert.Equal(t, 40, counts[SegmentDusk])
	assert.Equal(t, 24*60-30-15*60-40, counts[SegmentNight])
}

func TestClassify_MissingEvents(t *testing.T) {
	snap := fixedSnapshot()
	snap.Sunrise = time.Time{}
	snap.Sunset = time.Time{}

	// Without sunrise/sunset no interval can match
	assert.Equal(t, SegmentNight, Classify(snap.SolarNoon, snap))
	assert.Equal(t, SegmentNight, Classify(snap.Dawn, snap))
	assert.True(t, IsNight(snap.SolarNoon, snap))

	assert.Equal(t, SegmentNight, Classify(time.Now(), SolarSnapshot{}))
}
