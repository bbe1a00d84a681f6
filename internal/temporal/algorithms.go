package temporal

import (
	"fmt"
	"time"

	"github.com/nathan-osman/go-sunrise"
	"github.com/sixdouglas/suncalc"
	"github.com/sj14/astral/pkg/astral"
)

// civilDepression is the sun's angle below the horizon bounding civil twilight
const civilDepression = 6.0

// SolarEvents are absolute instants for one local day. A zero value means
// the event does not occur (polar day or night) or could not be computed.
type SolarEvents struct {
	Dawn      time.Time
	Sunrise   time.Time
	SolarNoon time.Time
	Sunset    time.Time
	Dusk      time.Time
}

// SolarAlgorithm computes the day's events for the calendar day containing
// anchor. Callers pass local noon as the anchor.
type SolarAlgorithm interface {
	Name() string
	Events(anchor time.Time, lat, lon float64) SolarEvents
}

// NewSolarAlgorithm returns the implementation registered under name
func NewSolarAlgorithm(name string) (SolarAlgorithm, error) {
	switch name {
	case "", "suncalc":
		return SunCalcAlgorithm{}, nil
	case "astral":
		return AstralAlgorithm{}, nil
	case "sunrise":
		return SunriseAlgorithm{}, nil
	default:
		return nil, fmt.Errorf("unknown solar algorithm %q (suncalc, astral or sunrise)", name)
	}
}

// SunCalcAlgorithm uses the suncalc port; "dawn" and "dusk" there are civil
// twilight.
type SunCalcAlgorithm struct{}

func (SunCalcAlgorithm) Name() string { return "suncalc" }

func (SunCalcAlgorithm) Events(anchor time.Time, lat, lon float64) SolarEvents {
	times := suncalc.GetTimes(anchor, lat, lon)
	return SolarEvents{
		Dawn:      validInstant(times["dawn"].Value, anchor),
		Sunrise:   validInstant(times["sunrise"].Value, anchor),
		SolarNoon: validInstant(times["solarNoon"].Value, anchor),
		Sunset:    validInstant(times["sunset"].Value, anchor),
		Dusk:      validInstant(times["dusk"].Value, anchor),
	}
}

// AstralAlgorithm uses astral. Civil twilight falls back to sunrise/sunset
// when the sun never drops to -6 degrees.
type AstralAlgorithm struct{}

func (AstralAlgorithm) Name() string { return "astral" }

func (AstralAlgorithm) Events(anchor time.Time, lat, lon float64) SolarEvents {
	observer := astral.Observer{Latitude: lat, Longitude: lon}

	var events SolarEvents
	if t, err := astral.Sunrise(observer, anchor); err == nil {
		events.Sunrise = validInstant(t, anchor)
	}
	if t, err := astral.Sunset(observer, anchor); err == nil {
		events.Sunset = validInstant(t, anchor)
	}
	events.SolarNoon = validInstant(astral.Noon(observer, anchor), anchor)

	if t, err := astral.Dawn(observer, anchor, astral.DepressionCivil); err == nil {
		events.Dawn = validInstant(t, anchor)
	} else {
		events.Dawn = events.Sunrise
	}
	if t, err := astral.Dusk(observer, anchor, astral.DepressionCivil); err == nil {
		events.Dusk = validInstant(t, anchor)
	} else {
		events.Dusk = events.Sunset
	}
	return events
}

// SunriseAlgorithm uses go-sunrise. Solar noon is the midpoint of sunrise
// and sunset.
type SunriseAlgorithm struct{}

func (SunriseAlgorithm) Name() string { return "sunrise" }

func (SunriseAlgorithm) Events(anchor time.Time, lat, lon float64) SolarEvents {
	year, month, day := anchor.Date()

	rise, set := sunrise.SunriseSunset(lat, lon, year, month, day)
	dawn, dusk := sunrise.TimeOfElevation(lat, lon, -civilDepression, year, month, day)

	events := SolarEvents{
		Dawn:    validInstant(dawn, anchor),
		Sunrise: validInstant(rise, anchor),
		Sunset:  validInstant(set, anchor),
		Dusk:    validInstant(dusk, anchor),
	}
	if !events.Sunrise.IsZero() && !events.Sunset.IsZero() {
		events.SolarNoon = events.Sunrise.Add(events.Sunset.Sub(events.Sunrise) / 2)
	}
	return events
}

// eventWindow bounds how far from the local-noon anchor a same-day event can
// fall; the widest real gap is about 14 hours in zones far from their
// meridian.
const eventWindow = 20 * time.Hour

// validInstant maps the sentinels the algorithms produce for events that do
// not happen (zero times, NaN-derived epochs) to the zero time.
func validInstant(t, anchor time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	if d := t.Sub(anchor); d < -eventWindow || d > eventWindow {
		return time.Time{}
	}
	return t.UTC()
}
