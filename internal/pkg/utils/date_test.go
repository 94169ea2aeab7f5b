package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayStart(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*3600)
	ts := time.Date(2025, 3, 10, 20, 30, 0, 0, time.UTC) // 03:30 on the 11th in WIB

	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), DayStart(ts, time.UTC))
	assert.Equal(t, time.Date(2025, 3, 11, 0, 0, 0, 0, jakarta), DayStart(ts, jakarta))
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), DayStart(ts, nil))
}

func TestDayRange(t *testing.T) {
	start, end := DayRange(time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC), time.UTC)

	assert.Equal(t, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestParseDay(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"plain date", "2025-06-01", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
		{"rfc3339", "2025-06-01T14:22:05Z", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
		{"rfc3339 nano", "2025-06-01T14:22:05.123456789Z", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
		{"offset rolls day", "2025-06-01T23:30:00-02:00", time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := ParseDay(c.input, time.UTC)
			require.NoError(t, err)
			assert.True(t, c.want.Equal(got), "got %s want %s", got, c.want)
		})
	}

	_, err := ParseDay("01/06/2025", time.UTC)
	assert.Error(t, err)
}
