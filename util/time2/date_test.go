// SPDX-FileCopyrightText: 2026 Mikołaj Kuranowski
// SPDX-License-Identifier: MIT

package time2

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-10-15")
	require.NoError(t, err)
	assert.Equal(t, Date{2026, 10, 15}, d)

	d, err = ParseDate("20240229")
	require.NoError(t, err)
	assert.Equal(t, Date{2024, 2, 29}, d)

	for _, bad := range []string{"", "2023-02-29", "2026-13-01", "2026-10-15T10:00", "15.10.2026"} {
		_, err := ParseDate(bad)
		assert.ErrorIs(t, err, ErrInvalidDate(bad), bad)
	}
}

func TestDateShifted(t *testing.T) {
	tests := []struct {
		in    Date
		delta int
		want  Date
	}{
		{Date{2026, 1, 1}, -1, Date{2025, 12, 31}},
		{Date{2024, 2, 28}, 1, Date{2024, 2, 29}},
		{Date{2023, 2, 28}, 1, Date{2023, 3, 1}},
		{Date{2026, 4, 5}, 60, Date{2026, 6, 4}},
		{Date{2026, 4, 5}, 0, Date{2026, 4, 5}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.in.Shifted(tt.delta), "%s %+d", tt.in, tt.delta)
	}
}

func TestDateCompare(t *testing.T) {
	a := Date{2026, 6, 30}
	b := Date{2026, 6, 31}
	c := Date{2026, 7, 1}

	assert.True(t, a.Before(b))
	assert.True(t, b.Before(c))
	assert.True(t, c.After(a))
	assert.Equal(t, 0, a.Compare(a))
	assert.True(t, b.Within(a, c))
	assert.True(t, a.Within(a, a))
	assert.False(t, c.Within(a, b))
}

func TestDateDayMonth(t *testing.T) {
	assert.Equal(t, "1.01", Date{2026, 1, 1}.DayMonth())
	assert.Equal(t, "11.11", Date{2026, 11, 11}.DayMonth())
}

func TestFromTime(t *testing.T) {
	ts := time.Date(2026, 3, 29, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, Date{2026, 3, 29}, FromTime(ts))
	assert.Equal(t, Date{2026, 3, 30}, FromTime(ts.In(PolishTimezone)))
}

func TestWeekday(t *testing.T) {
	assert.Equal(t, time.Tuesday, Date{2022, 11, 29}.Weekday())
	assert.Equal(t, time.Thursday, Date{2026, 10, 15}.Weekday())
}
