// Package timezone pins wall-clock time to the hotel's configured IANA zone
// (APP_TIMEZONE). Stay dates are calendar days in that zone, so every
// "today" comparison and invoice date goes through here.
package timezone

import (
	"sync"
	"time"

	"hotel/config"

	"github.com/rs/zerolog/log"
)

var (
	once     sync.Once
	location = time.UTC
)

func load() {
	name := config.Get().App.Timezone
	if name == "" {
		log.Warn().Msg("no timezone configured, using UTC")

		return
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("unknown timezone, using UTC")

		return
	}

	location = loc

	log.Info().Str("timezone", loc.String()).Msg("application timezone loaded")
}

// GetLocation returns the hotel's zone, loading it on first use.
func GetLocation() *time.Location {
	once.Do(load)

	return location
}

func Now() time.Time {
	return time.Now().In(GetLocation())
}

func ToAppTime(t time.Time) time.Time {
	return t.In(GetLocation())
}

// Parse reads value as wall time in the hotel's zone.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, GetLocation()) // nolint:wrapcheck
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

// DaysBetween counts calendar days from the date of from to the date of to,
// reading each date in its own location. Negative when to precedes from.
func DaysBetween(from, to time.Time) int {
	y1, m1, d1 := from.Date()
	y2, m2, d2 := to.Date()

	start := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	end := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)

	return int(end.Sub(start) / (24 * time.Hour))
}
