// SPDX-FileCopyrightText: 2026 Mikołaj Kuranowski
// SPDX-License-Identifier: MIT

package lookup

import (
	"testing"

	"github.com/kmtabor/KMTimetable/calendar"
	"github.com/kmtabor/KMTimetable/dateexpr"
	"github.com/kmtabor/KMTimetable/schedule"
	"github.com/kmtabor/KMTimetable/util/time2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRows = []schedule.ScheduleRow{
	{
		TrainNumbers:     []string{"19311", "19313"},
		DepartureStation: "Warszawa Wschodnia",
		DepartureTime:    "05:03",
		ArrivalStation:   "Radom",
		ArrivalTime:      "06:59",
		Models:           []string{"EN57", "EU47"},
		CarCounts:        []int{1, 2},
		Dates:            "01.06 - 30.06 (A)",
	},
	{
		TrainNumbers:     []string{"19311"},
		DepartureStation: "Warszawa Wschodnia",
		DepartureTime:    "5:03",
		ArrivalStation:   "Radom",
		ArrivalTime:      "6:59",
		Models:           []string{"45WE"},
		CarCounts:        []int{1},
		Dates:            "01.07 - 31.07",
	},
	{
		TrainNumbers:     []string{"19320"},
		DepartureStation: "Dęblin",
		DepartureTime:    "8:00",
		ArrivalStation:   "Radom",
		ArrivalTime:      "9:10",
		Models:           []string{"EN57ALKM"},
		CarCounts:        []int{2},
		Dates:            "1 - 31 VII (C)",
	},
	{
		TrainNumbers:     []string{"19322"},
		DepartureStation: "Dęblin",
		DepartureTime:    "8:00",
		ArrivalStation:   "Warszawa Zachodnia",
		ArrivalTime:      "10:01",
		Models:           []string{"EN71"},
		CarCounts:        []int{1},
		Dates:            "01.07 - 31.07",
	},
}

var (
	monday   = time2.Date{Y: 2026, M: 6, D: 15}
	saturday = time2.Date{Y: 2026, M: 6, D: 13}
	julyMon  = time2.Date{Y: 2026, M: 7, D: 6}
	julySat  = time2.Date{Y: 2026, M: 7, D: 4}
)

func newIndex(rows []schedule.ScheduleRow) *Index {
	m := dateexpr.NewMatcher(
		dateexpr.NewParser(nil, dateexpr.InheritFromRight),
		calendar.Default(),
		time2.Fixed(time2.Date{Y: 2026, M: 1, D: 1}),
	)
	return NewIndex(rows, m, DefaultFleet())
}

func TestByTrainNumber(t *testing.T) {
	ix := newIndex(testRows)

	res, ok := ix.ByTrainNumber("19311", monday)
	require.True(t, ok)
	assert.Equal(t, "19311", res.TrainNumber)
	assert.Equal(t, "EN57 + TRAXX (EU47) + wagony piętrowe ×2", res.RollingStock)
	assert.Equal(t, []Unit{
		{Model: "EN57", Name: "EN57", Cars: 1},
		{Model: "EU47", Name: "TRAXX (EU47) + wagony piętrowe", Cars: 2},
	}, res.Units)

	res, ok = ix.ByTrainNumber(" 19313 ", monday)
	require.True(t, ok)
	assert.Equal(t, "19313", res.TrainNumber)

	_, ok = ix.ByTrainNumber("19311", saturday)
	assert.False(t, ok)

	res, ok = ix.ByTrainNumber("19311", julyMon)
	require.True(t, ok)
	assert.Equal(t, "Impuls (45WEkm)", res.RollingStock)
	assert.Equal(t, "45WEkm", res.Units[0].Model)

	_, ok = ix.ByTrainNumber("99999", monday)
	assert.False(t, ok)
}

func TestByTrainNumberMergesSplitRows(t *testing.T) {
	var split []schedule.ScheduleRow
	for _, r := range testRows {
		split = append(split, r.Split()...)
	}

	whole, ok := newIndex(testRows).ByTrainNumber("19311", monday)
	require.True(t, ok)
	parts, ok := newIndex(split).ByTrainNumber("19311", monday)
	require.True(t, ok)

	assert.Equal(t, whole.RollingStock, parts.RollingStock)
	assert.Equal(t, whole.Units, parts.Units)
}

func TestByRoute(t *testing.T) {
	ix := newIndex(testRows)

	res, ok := ix.ByRoute("deblin", "radom", "8:00", julySat)
	require.True(t, ok)
	assert.Equal(t, "19320", res.TrainNumber)
	assert.Equal(t, "EN57AL ×2", res.RollingStock)

	res, ok = ix.ByRoute("Dęblin", "warszawa", "08:00", julyMon)
	require.True(t, ok)
	assert.Equal(t, "19322", res.TrainNumber)
	assert.Equal(t, "EN71", res.RollingStock)

	res, ok = ix.ByRoute("warszawa wsch", "RADOM", "05.03", monday)
	require.True(t, ok)
	assert.Equal(t, "19311", res.TrainNumber)

	_, ok = ix.ByRoute("Dęblin", "Radom", "8:01", julySat)
	assert.False(t, ok)

	_, ok = ix.ByRoute("Dęblin", "Radom", "8", julySat)
	assert.False(t, ok)

	_, ok = ix.ByRoute("Pilawa", "Radom", "8:00", julySat)
	assert.False(t, ok)
}

func TestActive(t *testing.T) {
	ix := newIndex(testRows)

	var numbers []string
	for _, res := range ix.Active(julyMon) {
		numbers = append(numbers, res.TrainNumber)
	}
	assert.Equal(t, []string{"19311", "19322"}, numbers)
	assert.Empty(t, ix.Active(time2.Date{Y: 2026, M: 12, D: 1}))
	assert.Equal(t, 4, ix.Len())
}

func TestFleet(t *testing.T) {
	f := DefaultFleet()
	assert.Equal(t, "45WEkm", f.Code("45WE"))
	assert.Equal(t, "EN57AL", f.Name("EN57ALKM"))
	assert.Equal(t, "ED250", f.Name(" ED250 "))

	names := map[string]string{"EN57": "Kibel"}
	custom := NewFleet(names, nil)
	names["EN57"] = "changed"
	assert.Equal(t, "Kibel", custom.Name("EN57"))
}

func TestNormalizeTime(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"5:03", "05:03", true},
		{"05:03", "05:03", true},
		{"23.59", "23:59", true},
		{"24:10", "24:10", true},
		{"5:60", "", false},
		{"5", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := NormalizeTime(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
