package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateTime(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"25.11.2026 18:00", time.Date(2026, 11, 25, 18, 0, 0, 0, time.UTC)},
		{"25.11.2026", time.Date(2026, 11, 25, 0, 0, 0, 0, time.UTC)},
		{"25 Nov 2026 18:00", time.Date(2026, 11, 25, 18, 0, 0, 0, time.UTC)},
		{"2026-11-25 18:00", time.Date(2026, 11, 25, 18, 0, 0, 0, time.UTC)},
		{"2026-11-25", time.Date(2026, 11, 25, 0, 0, 0, 0, time.UTC)},
		{"2026-11-25T18:00:00+03:00", time.Date(2026, 11, 25, 15, 0, 0, 0, time.UTC)},
		{"  2026-11-25  ", time.Date(2026, 11, 25, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDateTime(tt.input)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestParseDateTimeRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "завтра", "32.13.2026", "not a date"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseDateTime(input)
			assert.ErrorIs(t, err, ErrBadDateTime)
		})
	}
}
