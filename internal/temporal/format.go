package temporal

import "time"

const (
	zuluLayout  = "15:04 Z"
	localLayout = "15:04 MST"
	dateLayout  = "2006-01-02"
)

// FormatZulu renders an instant as "HH:MM Z" in UTC
func FormatZulu(t time.Time) string {
	return t.UTC().Format(zuluLayout)
}

// FormatLocal renders an instant as "HH:MM ABBR" in loc. Zones without a
// letter abbreviation render their numeric offset, e.g. "+03".
func FormatLocal(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(localLayout)
}

// FormatLocalISO renders an RFC 3339 timestamp carrying loc's offset
func FormatLocalISO(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(time.RFC3339)
}

// LocalDate renders the calendar date of t as observed in loc
func LocalDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dateLayout)
}

// SolarCacheKey is "<zone>:<local YYYY-MM-DD>". The date is the calendar day
// in loc, never the UTC day.
func SolarCacheKey(loc *time.Location, t time.Time) string {
	return loc.String() + ":" + LocalDate(t, loc)
}
