package temporal

import "time"

// OffsetDescriptor summarizes a zone's UTC offsets in minutes east of UTC
type OffsetDescriptor struct {
	StandardOffsetMinutes int  `json:"standard_offset_minutes"`
	DSTOffsetMinutes      *int `json:"dst_offset_minutes"`
	UsesDST               bool `json:"uses_dst"`
	IsDSTActive           bool `json:"is_dst_active"`
}

// DescribeOffsets samples the zone on January 1 and July 1 (12:00 UTC) of
// now's year. Differing samples mean the zone observes DST: the smaller
// offset is standard and the larger is DST, which holds in both
// hemispheres. DST is active when the offset at now equals the DST sample.
func DescribeOffsets(loc *time.Location, now time.Time) OffsetDescriptor {
	if loc == nil {
		loc = time.UTC
	}
	year := now.In(loc).Year()

	january := offsetMinutes(time.Date(year, time.January, 1, 12, 0, 0, 0, time.UTC), loc)
	july := offsetMinutes(time.Date(year, time.July, 1, 12, 0, 0, 0, time.UTC), loc)
	current := offsetMinutes(now, loc)

	if january == july {
		return OffsetDescriptor{StandardOffsetMinutes: january}
	}

	standard, dst := min(january, july), max(january, july)
	return OffsetDescriptor{
		StandardOffsetMinutes: standard,
		DSTOffsetMinutes:      &dst,
		UsesDST:               true,
		IsDSTActive:           current == dst,
	}
}

func offsetMinutes(t time.Time, loc *time.Location) int {
	_, seconds := t.In(loc).Zone()
	return seconds / 60
}
