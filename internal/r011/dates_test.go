package r011

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{"day-first slash", "15/03/2023", time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"short day-first", "5/3/23", time.Date(2023, 3, 5, 0, 0, 0, 0, time.UTC)},
		{"iso", "2023-03-15", time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"day-first dash", "15-03-2023", time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"excel serial", "45000", time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := parseDate(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, dateOnly(got))
		})
	}

	t.Run("ambiguous dates resolve day-first", func(t *testing.T) {
		t.Parallel()
		got, err := parseDate("02/03/2023")
		require.NoError(t, err)
		assert.Equal(t, time.March, got.Month())
		assert.Equal(t, 2, got.Day())
	})

	t.Run("empty and garbage fail", func(t *testing.T) {
		t.Parallel()
		_, err := parseDate("")
		assert.Error(t, err)
		_, err = parseDate("pendiente")
		assert.Error(t, err)
	})
}

func TestParseExcelSerialDate(t *testing.T) {
	t.Parallel()

	t.Run("epoch start", func(t *testing.T) {
		t.Parallel()
		d, err := parseExcelSerialDate("1")
		require.NoError(t, err)
		assert.Equal(t, time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC), d)
	})

	t.Run("straddles the phantom leap day", func(t *testing.T) {
		t.Parallel()
		d, err := parseExcelSerialDate("59")
		require.NoError(t, err)
		assert.Equal(t, time.Date(1900, 2, 28, 0, 0, 0, 0, time.UTC), d)

		d, err = parseExcelSerialDate("61")
		require.NoError(t, err)
		assert.Equal(t, time.Date(1900, 3, 1, 0, 0, 0, 0, time.UTC), d)
	})

	t.Run("fractional day becomes time of day", func(t *testing.T) {
		t.Parallel()
		d, err := parseExcelSerialDate("45000.5")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2023, 3, 15, 12, 0, 0, 0, time.UTC), d)
	})

	t.Run("rejects non-positive serials", func(t *testing.T) {
		t.Parallel()
		_, err := parseExcelSerialDate("0")
		assert.Error(t, err)
		_, err = parseExcelSerialDate("-5")
		assert.Error(t, err)
	})
}

func TestDaysSince(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0, daysSince(time.Now()))
	assert.Equal(t, 15, daysSince(time.Now().AddDate(0, 0, -15)))
	// Partial days never round the count up or down.
	assert.Equal(t, 3, daysSince(dateOnly(time.Now()).AddDate(0, 0, -3).Add(23*time.Hour)))
}
