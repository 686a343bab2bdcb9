package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/expense_approval_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekWindowOf(t *testing.T) {
	tests := []struct {
		name      string
		input     time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "midweek wednesday",
			input:     date(2024, time.July, 17), // Wednesday
			wantStart: date(2024, time.July, 14), // Sunday
			wantEnd:   time.Date(2024, time.July, 20, 23, 59, 59, 0, time.UTC),
		},
		{
			name:      "sunday is its own week start",
			input:     date(2024, time.July, 14),
			wantStart: date(2024, time.July, 14),
			wantEnd:   time.Date(2024, time.July, 20, 23, 59, 59, 0, time.UTC),
		},
		{
			name:      "saturday is the week end",
			input:     date(2024, time.July, 20),
			wantStart: date(2024, time.July, 14),
			wantEnd:   time.Date(2024, time.July, 20, 23, 59, 59, 0, time.UTC),
		},
		{
			name:      "week spanning a month boundary",
			input:     date(2024, time.July, 1),  // Monday
			wantStart: date(2024, time.June, 30), // Sunday
			wantEnd:   time.Date(2024, time.July, 6, 23, 59, 59, 0, time.UTC),
		},
		{
			name:      "week spanning a year boundary",
			input:     date(2025, time.January, 2),  // Thursday
			wantStart: date(2024, time.December, 29), // Sunday
			wantEnd:   time.Date(2025, time.January, 4, 23, 59, 59, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := domain.WeekWindowOf(tt.input)
			assert.Equal(t, tt.wantStart, w.Start)
			assert.Equal(t, tt.wantEnd, w.End)
			assert.True(t, w.Contains(tt.input))
		})
	}
}

func TestWeekWindowIgnoresTimeOfDay(t *testing.T) {
	late := time.Date(2024, time.July, 17, 23, 45, 12, 0, time.UTC)
	w := domain.WeekWindowOf(late)
	assert.Equal(t, date(2024, time.July, 14), w.Start)
}

func TestMonthWindowOf(t *testing.T) {
	tests := []struct {
		name      string
		input     time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "thirty one day month",
			input:     date(2024, time.July, 17),
			wantStart: date(2024, time.July, 1),
			wantEnd:   time.Date(2024, time.July, 31, 23, 59, 59, 0, time.UTC),
		},
		{
			name:      "february leap year",
			input:     date(2024, time.February, 10),
			wantStart: date(2024, time.February, 1),
			wantEnd:   time.Date(2024, time.February, 29, 23, 59, 59, 0, time.UTC),
		},
		{
			name:      "february non leap year",
			input:     date(2023, time.February, 28),
			wantStart: date(2023, time.February, 1),
			wantEnd:   time.Date(2023, time.February, 28, 23, 59, 59, 0, time.UTC),
		},
		{
			name:      "december",
			input:     date(2024, time.December, 31),
			wantStart: date(2024, time.December, 1),
			wantEnd:   time.Date(2024, time.December, 31, 23, 59, 59, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := domain.MonthWindowOf(tt.input)
			assert.Equal(t, tt.wantStart, w.Start)
			assert.Equal(t, tt.wantEnd, w.End)
			assert.True(t, w.Contains(tt.input))
		})
	}
}

func TestSpendWindowContains(t *testing.T) {
	w := domain.WeekWindowOf(date(2024, time.July, 17))
	assert.False(t, w.Contains(date(2024, time.July, 13)))
	assert.False(t, w.Contains(date(2024, time.July, 21)))
	assert.True(t, w.Contains(date(2024, time.July, 14)))
	assert.True(t, w.Contains(time.Date(2024, time.July, 20, 23, 59, 59, 0, time.UTC)))
}
