package temporal

import "time"

// Segment is the coarse position of an instant in the solar day
type Segment string

const (
	SegmentNight Segment = "night"
	SegmentDawn  Segment = "dawn"
	SegmentDay   Segment = "day"
	SegmentDusk  Segment = "dusk"
)

// Classify maps t onto the half-open intervals [dawn,sunrise), [sunrise,sunset)
// and [sunset,dusk); anything else is night. An interval with a missing
// endpoint never matches.
func Classify(t time.Time, snap SolarSnapshot) Segment {
	switch {
	case within(t, snap.Dawn, snap.Sunrise):
		return SegmentDawn
	case within(t, snap.Sunrise, snap.Sunset):
		return SegmentDay
	case within(t, snap.Sunset, snap.Dusk):
		return SegmentDusk
	default:
		return SegmentNight
	}
}

// IsNight reports whether t classifies as night
func IsNight(t time.Time, snap SolarSnapshot) bool {
	return Classify(t, snap) == SegmentNight
}

func within(t, start, end time.Time) bool {
	if start.IsZero() || end.IsZero() {
		return false
	}
	return !t.Before(start) && t.Before(end)
}
