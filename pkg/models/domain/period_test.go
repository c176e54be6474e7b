package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthOf(t *testing.T) {
	tests := []struct {
		name      string
		input     time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "mid month",
			input:     time.Date(2023, 6, 15, 14, 45, 12, 0, time.UTC),
			wantStart: date(2023, 6, 1),
			wantEnd:   date(2023, 6, 30),
		},
		{
			name:      "december rolls into next year",
			input:     date(2023, 12, 31),
			wantStart: date(2023, 12, 1),
			wantEnd:   date(2023, 12, 31),
		},
		{
			name:      "leap february",
			input:     date(2024, 2, 10),
			wantStart: date(2024, 2, 1),
			wantEnd:   date(2024, 2, 29),
		},
		{
			name:      "offset keeps the local calendar date",
			input:     time.Date(2023, 6, 30, 23, 0, 0, 0, time.FixedZone("", 10*3600)),
			wantStart: date(2023, 6, 1),
			wantEnd:   date(2023, 6, 30),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := MonthOf(tt.input)
			assert.Equal(t, tt.wantStart, p.StartDate)
			assert.Equal(t, tt.wantEnd, p.EndDate)
		})
	}
}

func TestParseMonth(t *testing.T) {
	p, err := ParseMonth("2023-06")
	require.NoError(t, err)
	assert.Equal(t, date(2023, 6, 1), p.StartDate)
	assert.Equal(t, date(2023, 6, 30), p.EndDate)

	for _, bad := range []string{"", "2023", "2023-13", "June 2023", "2023-06-01"} {
		_, err := ParseMonth(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestNewReportPeriod(t *testing.T) {
	p, err := NewReportPeriod(
		time.Date(2023, 6, 1, 8, 0, 0, 0, time.UTC),
		time.Date(2023, 6, 30, 22, 15, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	assert.Equal(t, date(2023, 6, 1), p.StartDate)
	assert.Equal(t, date(2023, 6, 30), p.EndDate)

	_, err = NewReportPeriod(date(2023, 7, 1), date(2023, 6, 30))
	require.Error(t, err)

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "EndDate", vErr.Field)
}

func TestReportPeriod_Contains(t *testing.T) {
	p := MonthOf(date(2023, 6, 1))

	assert.True(t, p.Contains(date(2023, 6, 1)))
	assert.True(t, p.Contains(date(2023, 6, 30)))
	assert.True(t, p.Contains(time.Date(2023, 6, 30, 23, 59, 59, 0, time.UTC)))
	assert.False(t, p.Contains(date(2023, 5, 31)))
	assert.False(t, p.Contains(date(2023, 7, 1)))
}

func TestReportPeriod_Days(t *testing.T) {
	days := MonthOf(date(2023, 6, 1)).Days()
	require.Len(t, days, 30)
	assert.Equal(t, date(2023, 6, 1), days[0])
	assert.Equal(t, date(2023, 6, 30), days[29])
}

func TestReportPeriod_String(t *testing.T) {
	assert.Equal(t, "2023-06-01..2023-06-30", MonthOf(date(2023, 6, 1)).String())
}
