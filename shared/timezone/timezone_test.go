package timezone_test

import (
	"testing"
	"time"

	"hotel/shared/timezone"

	"github.com/stretchr/testify/assert"
)

func TestTimezoneInit(t *testing.T) {
	assert.False(t, timezone.Now().IsZero())
	assert.NotNil(t, timezone.GetLocation())
}

func TestParseDate(t *testing.T) {
	parsed, err := timezone.Parse(time.DateOnly, "2024-06-01")

	assert.NoError(t, err)
	assert.Equal(t, "2024-06-01", timezone.Format(parsed, time.DateOnly))

	_, err = timezone.Parse(time.DateOnly, "01/06/2024")
	assert.Error(t, err)
}

func TestDaysBetween(t *testing.T) {
	day := func(value string) time.Time {
		parsed, err := timezone.Parse(time.DateOnly, value)
		if err != nil {
			t.Fatalf("parse %s: %v", value, err)
		}

		return parsed
	}

	tests := []struct {
		name     string
		from     string
		to       string
		expected int
	}{
		{name: "two nights", from: "2024-06-01", to: "2024-06-03", expected: 2},
		{name: "same day", from: "2024-06-01", to: "2024-06-01", expected: 0},
		{name: "across month", from: "2024-01-30", to: "2024-02-02", expected: 3},
		{name: "leap day", from: "2024-02-28", to: "2024-03-01", expected: 2},
		{name: "reversed", from: "2024-06-03", to: "2024-06-01", expected: -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, timezone.DaysBetween(day(tt.from), day(tt.to)))
		})
	}
}

func TestToAppTime(t *testing.T) {
	instant := time.Date(2024, 6, 1, 23, 30, 0, 0, time.UTC)

	converted := timezone.ToAppTime(instant)

	assert.True(t, instant.Equal(converted))
	assert.Equal(t, timezone.GetLocation(), converted.Location())
}
