// SPDX-FileCopyrightText: 2026 Mikołaj Kuranowski
// SPDX-License-Identifier: MIT

package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitTrainNumber(t *testing.T) {
	tests := []struct {
		in   string
		want []string
		err  error
	}{
		{"12345", []string{"12345"}, nil},
		{"12345/7", []string{"12345", "12347"}, nil},
		{"19310/29", []string{"19310", "19329"}, nil},
		{"12345/67", []string{"12345", "12367"}, nil},
		{"12345/5", nil, ErrSameNumber},
		{"12345/45", nil, ErrSameNumber},
		{" 12345 ", []string{"12345"}, nil},
		{"1234", nil, ErrInvalidNumber},
		{"12345/", nil, ErrInvalidNumber},
		{"12345/123456", nil, ErrSuffixTooLong},
		{"Warszawa", nil, ErrInvalidNumber},
	}

	for _, tt := range tests {
		got, err := SplitTrainNumber(tt.in)
		if tt.err != nil {
			assert.ErrorIs(t, err, tt.err, tt.in)
		} else {
			require.NoError(t, err, tt.in)
			assert.Equal(t, tt.want, got, tt.in)
		}
	}
}

func TestIsTrainNumber(t *testing.T) {
	assert.True(t, IsTrainNumber("19311"))
	assert.True(t, IsTrainNumber("19311/3"))
	assert.False(t, IsTrainNumber("193113"))
	assert.False(t, IsTrainNumber("5:03"))
	assert.False(t, IsTrainNumber(""))
}

func TestParseRow(t *testing.T) {
	row := Row{"19311/3", "Warszawa Wschodnia", "5:03", "Radom", "6:59", "EN57, EN71", "1, 2", "01.06 - 05.06 (A)"}
	got, err := ParseRow(row)
	require.NoError(t, err)

	assert.Equal(t, ScheduleRow{
		TrainNumbers:     []string{"19311", "19313"},
		DepartureStation: "Warszawa Wschodnia",
		DepartureTime:    "5:03",
		ArrivalStation:   "Radom",
		ArrivalTime:      "6:59",
		Models:           []string{"EN57", "EN71"},
		CarCounts:        []int{1, 2},
		Dates:            "01.06 - 05.06 (A)",
	}, got)
	assert.Equal(t, 3, got.TotalCars())
	assert.True(t, got.HasNumber("19313"))
	assert.Equal(t, row, got.Row())
}

func TestParseRowErrors(t *testing.T) {
	base := Row{"19311", "Warszawa Wschodnia", "5:03", "Radom", "6:59", "EN57, EN71", "1, 2", "01.06"}

	tests := []struct {
		name   string
		modify func(Row) Row
		err    error
		column string
	}{
		{"short", func(r Row) Row { return r[:5] }, ErrShortRow, "row"},
		{"number", func(r Row) Row { r[ColTrainNumber] = "193"; return r }, ErrInvalidNumber, "nr poc"},
		{"mismatch", func(r Row) Row { r[ColCarCounts] = "1"; return r }, ErrCountMismatch, "ilość"},
		{"count", func(r Row) Row { r[ColCarCounts] = "1, x"; return r }, ErrInvalidCarCount, "ilość"},
		{"zero", func(r Row) Row { r[ColCarCounts] = "0, 1"; return r }, ErrInvalidCarCount, "ilość"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRow(tt.modify(base.Clone()))
			assert.ErrorIs(t, err, tt.err)

			var invalid ErrInvalidRow
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.column, invalid.Column)
		})
	}
}

func TestSplit(t *testing.T) {
	s := ScheduleRow{
		TrainNumbers: []string{"19311"},
		Models:       []string{"EN57", "EN71", "EU47"},
		CarCounts:    []int{1, 2, 1},
		Dates:        "01.06 - 30.06 (A), 01.07 (C)",
	}

	parts := s.Split()
	require.Len(t, parts, 3)

	total := 0
	for i, p := range parts {
		assert.Equal(t, []string{s.Models[i]}, p.Models)
		assert.Equal(t, s.Dates, p.Dates)
		assert.Equal(t, s.TrainNumbers, p.TrainNumbers)
		total += p.TotalCars()
	}
	assert.Equal(t, s.TotalCars(), total)

	single := ScheduleRow{Models: []string{"EN57"}, CarCounts: []int{2}}
	assert.Equal(t, []ScheduleRow{single}, single.Split())
}

func TestNumberLabel(t *testing.T) {
	assert.Equal(t, "", numberLabel(nil))
	assert.Equal(t, "12345", numberLabel([]string{"12345"}))
	assert.Equal(t, "12345/7", numberLabel([]string{"12345", "12347"}))
	assert.Equal(t, "19310/29", numberLabel([]string{"19310", "19329"}))
}

func TestPackage(t *testing.T) {
	p := NewPackage([]ScheduleRow{
		{TrainNumbers: []string{"19311", "19313"}, Dates: "a"},
		{TrainNumbers: []string{"19311"}, Dates: "b"},
		{TrainNumbers: []string{"19320"}, Dates: "c"},
	})

	var dates []string
	for r := range p.ByNumber("19311") {
		dates = append(dates, r.Dates)
	}
	assert.Equal(t, []string{"a", "b"}, dates)
	assert.Equal(t, []int{0}, p.RowsByNumber["19313"])
	assert.Empty(t, p.RowsByNumber["00000"])

	p.Rows = p.Rows[2:]
	p.RebuildNumberIndex()
	assert.Equal(t, map[string][]int{"19320": {0}}, p.RowsByNumber)
}

func TestRowHelpers(t *testing.T) {
	r := Row{"19311", "Radom"}
	assert.False(t, r.Complete())
	assert.Equal(t, "Radom", r.Field(ColDepartureStation))
	assert.Equal(t, "", r.Field(ColDates))
	assert.Len(t, r.Padded(), NumColumns)
	assert.Len(t, r, 2)
}
