package parser

import (
	"testing"
	"time"

	"github.com/manav03panchal/studytrack/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		unit     string
		expected time.Duration
		valid    bool
	}{
		// Standard Go duration formats
		{"go_duration_hours", "2h", "h", 2 * time.Hour, true},
		{"go_duration_minutes", "30m", "h", 30 * time.Minute, true},
		{"go_duration_combined", "1h30m", "h", 90 * time.Minute, true},

		// Human-readable formats
		{"hours_hrs", "2hrs", "h", 2 * time.Hour, true},
		{"hours_hours", "2 hours", "h", 2 * time.Hour, true},
		{"minutes_min", "30min", "h", 30 * time.Minute, true},
		{"minutes_minutes", "30 minutes", "h", 30 * time.Minute, true},
		{"combined_hours_minutes", "1h 30m", "h", 90 * time.Minute, true},
		{"decimal_hours", "1.5h", "m", 90 * time.Minute, true},

		// Bare numbers use the default unit
		{"number_hours", "2", "h", 2 * time.Hour, true},
		{"decimal_number_hours", "1.5", "h", 90 * time.Minute, true},
		{"number_minutes", "45", "m", 45 * time.Minute, true},
		{"zero", "0", "h", 0, true},
		{"negative", "-1", "h", -time.Hour, true},

		// Case insensitivity
		{"uppercase_HOURS", "2 HOURS", "h", 2 * time.Hour, true},

		// Invalid
		{"empty_string", "", "h", 0, false},
		{"whitespace_only", "   ", "h", 0, false},
		{"invalid_format", "abc", "h", 0, false},
		{"seconds_not_supported", "45 seconds", "h", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseDuration(tt.input, tt.unit)
			assert.Equal(t, tt.valid, result.Valid, "Valid mismatch for input: %s", tt.input)
			if tt.valid {
				assert.Equal(t, tt.expected, result.Duration, "Duration mismatch for input: %s", tt.input)
			}
		})
	}
}

func TestParseHours(t *testing.T) {
	h, err := ParseHours("2h30m")
	require.NoError(t, err)
	assert.InDelta(t, 2.5, h, 1e-9)

	h, err = ParseHours("7.5")
	require.NoError(t, err)
	assert.InDelta(t, 7.5, h, 1e-9)

	_, err = ParseHours("lots")
	assert.ErrorIs(t, err, errors.ErrInvalidFormat)
}

func TestParseMinutes(t *testing.T) {
	m, err := ParseMinutes("45")
	require.NoError(t, err)
	assert.InDelta(t, 45, m, 1e-9)

	m, err = ParseMinutes("1h15m")
	require.NoError(t, err)
	assert.InDelta(t, 75, m, 1e-9)

	_, err = ParseMinutes("a while")
	assert.ErrorIs(t, err, errors.ErrInvalidFormat)
}

func TestUnitToDuration(t *testing.T) {
	tests := []struct {
		value    float64
		unit     string
		expected time.Duration
	}{
		{1, "h", time.Hour},
		{2, "hours", 2 * time.Hour},
		{30, "min", 30 * time.Minute},
		{15, "minutes", 15 * time.Minute},
		{1.5, "h", 90 * time.Minute},
		{2.5, "m", 150 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.unit, func(t *testing.T) {
			assert.Equal(t, tt.expected, unitToDuration(tt.value, tt.unit))
		})
	}

	t.Run("unknown_defaults_to_hours", func(t *testing.T) {
		assert.Equal(t, 2*time.Hour, unitToDuration(2, "xyz"))
	})
}
