package timezone_test

import (
	"testing"
	"time"

	"bms/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNowAndLocation(t *testing.T) {
	assert.False(t, timezone.Now().IsZero())
	assert.NotNil(t, timezone.GetLocation())
	assert.Equal(t, timezone.GetLocation(), timezone.ToAppTime(time.Now()).Location())
}

func TestParseAndFormat(t *testing.T) {
	parsed, err := timezone.Parse(time.DateOnly, "2024-01-01")
	require.NoError(t, err)

	assert.Equal(t, "2024-01-01", timezone.Format(parsed, time.DateOnly))
}

func TestNaive(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)
	wall := time.Date(2024, 3, 10, 2, 30, 0, 0, jakarta)

	naive := timezone.Naive(wall)

	assert.Equal(t, time.UTC, naive.Location())
	assert.Equal(t, 2, naive.Hour())
	assert.Equal(t, 30, naive.Minute())
	assert.Equal(t, 10, naive.Day())
}

func TestYearsBetween(t *testing.T) {
	loc := timezone.GetLocation()
	birth := time.Date(2006, 5, 20, 0, 0, 0, 0, loc)

	tests := []struct {
		name     string
		at       time.Time
		expected int
	}{
		{name: "day before birthday", at: time.Date(2024, 5, 19, 0, 0, 0, 0, loc), expected: 17},
		{name: "on birthday", at: time.Date(2024, 5, 20, 0, 0, 0, 0, loc), expected: 18},
		{name: "later month", at: time.Date(2024, 6, 1, 0, 0, 0, 0, loc), expected: 18},
		{name: "earlier month", at: time.Date(2024, 4, 30, 0, 0, 0, 0, loc), expected: 17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, timezone.YearsBetween(birth, tt.at))
		})
	}
}

func TestFormatNaive(t *testing.T) {
	previous := timezone.GetLocation()
	timezone.SetLocation(time.FixedZone("WIB", 7*60*60))

	t.Cleanup(func() { timezone.SetLocation(previous) })

	stored := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "2024-01-01T00:00:00Z", timezone.FormatNaive(stored, time.RFC3339))
	assert.Equal(t, "2024-01-01T07:00:00+07:00", timezone.Format(stored, time.RFC3339))
}

func TestYearsBetween_NaiveBirthDate(t *testing.T) {
	previous := timezone.GetLocation()
	newYork := time.FixedZone("EST", -5*60*60)
	timezone.SetLocation(newYork)

	t.Cleanup(func() { timezone.SetLocation(previous) })

	// a DATE column read back as UTC midnight must not slip to the previous day
	birth := time.Date(2006, 5, 20, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 18, timezone.YearsBetween(birth, time.Date(2024, 5, 20, 9, 0, 0, 0, newYork)))
}
