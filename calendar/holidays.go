// SPDX-FileCopyrightText: 2026 Mikołaj Kuranowski
// SPDX-License-Identifier: MIT

package calendar

import (
	"maps"

	"github.com/kmtabor/KMTimetable/util/time2"
	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/pl"
)

// Holidays maps "D.MM" keys (e.g. "1.01", "11.11") to holiday names.
type Holidays map[string]string

// DefaultHolidays returns the fixed-date Polish public holidays.
//
// The table has ten entries rather than the usual eight: it also holds
// Epiphany (6.01) and Christmas Eve (24.12, a public holiday since 2025).
// Pass a custom table to New to use a different set.
func DefaultHolidays() Holidays {
	return Holidays{
		"1.01":  "Nowy Rok",
		"6.01":  "Święto Trzech Króli",
		"1.05":  "Święto Pracy",
		"3.05":  "Święto Narodowe Trzeciego Maja",
		"15.08": "Wniebowzięcie Najświętszej Maryi Panny",
		"1.11":  "Wszystkich Świętych",
		"11.11": "Narodowe Święto Niepodległości",
		"24.12": "Wigilia Bożego Narodzenia",
		"25.12": "Boże Narodzenie (pierwszy dzień)",
		"26.12": "Boże Narodzenie (drugi dzień)",
	}
}

func (h Holidays) Clone() Holidays {
	return maps.Clone(h)
}

// movableFeasts are the Polish public holidays whose date depends on Easter.
// Fixed-date holidays carry a month and come from the Holidays table instead.
var movableFeasts = func() []*cal.Holiday {
	var feasts []*cal.Holiday
	for _, h := range pl.Holidays {
		if h.Month == 0 {
			feasts = append(feasts, h)
		}
	}
	return feasts
}()

// MovableFeasts returns the Easter-dependent public holidays of a year:
// Easter Sunday and Monday, Pentecost and Corpus Christi.
func MovableFeasts(year uint16) map[time2.Date]string {
	feasts := make(map[time2.Date]string, len(movableFeasts))
	for _, h := range movableFeasts {
		actual, _ := h.Calc(int(year))
		if !actual.IsZero() {
			feasts[time2.FromTime(actual)] = h.Name
		}
	}
	return feasts
}
