package biztime

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	loc := Location()

	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{
			name:  "calendar date",
			input: "2024-01-01",
			want:  time.Date(2024, 1, 1, 0, 0, 0, 0, loc).UTC(),
		},
		{
			name:  "local date time is truncated",
			input: "2024-01-01T17:45:12",
			want:  time.Date(2024, 1, 1, 0, 0, 0, 0, loc).UTC(),
		},
		{
			name:  "surrounding whitespace",
			input: "  2024-03-15 ",
			want:  time.Date(2024, 3, 15, 0, 0, 0, 0, loc).UTC(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s got %s", tt.want, got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestParseDate_RFC3339UsesBusinessDay(t *testing.T) {
	instant := time.Date(2024, 5, 10, 22, 0, 0, 0, time.UTC)

	got, err := ParseDate(instant.Format(time.RFC3339))
	require.NoError(t, err)

	assert.Equal(t, StartOfDayUTC(instant), got)
	assert.Equal(t, FormatDate(instant), FormatDate(got))
}

func TestParseDate_Invalid(t *testing.T) {
	for _, input := range []string{"", "   ", "not-a-date", "2024-13-01", "01/02/2024"} {
		_, err := ParseDate(input)
		assert.Error(t, err, input)
		assert.True(t, errors.Is(err, ErrInvalidDate), input)
	}
}

func TestNormalizeDate(t *testing.T) {
	loc := Location()
	in := time.Date(2024, 2, 29, 23, 59, 59, 999999999, loc)

	got, err := NormalizeDate(in)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, loc).UTC(), got)

	again, err := NormalizeDate(got)
	require.NoError(t, err)
	assert.Equal(t, got, again)

	_, err = NormalizeDate(time.Time{})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestAddDaysUTC(t *testing.T) {
	start, err := ParseDate("2024-01-30")
	require.NoError(t, err)

	assert.Equal(t, "2024-01-30", FormatDate(AddDaysUTC(start, 0)))
	assert.Equal(t, "2024-02-01", FormatDate(AddDaysUTC(start, 2)))
	assert.Equal(t, "2024-03-01", FormatDate(AddDaysUTC(start, 31)))
	assert.Equal(t, StartOfDayUTC(AddDaysUTC(start, 5)), AddDaysUTC(start, 5))
}

func TestSameDay(t *testing.T) {
	loc := Location()
	morning := time.Date(2024, 6, 1, 0, 5, 0, 0, loc)
	night := time.Date(2024, 6, 1, 23, 55, 0, 0, loc)
	next := time.Date(2024, 6, 2, 0, 0, 0, 0, loc)

	assert.True(t, SameDay(morning, night))
	assert.False(t, SameDay(night, next))
}
