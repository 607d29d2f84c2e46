// SPDX-FileCopyrightText: 2026 Mikołaj Kuranowski
// SPDX-License-Identifier: MIT

package dateexpr

import "maps"

// Months maps Roman numeral month names to month numbers (1-12).
type Months map[string]uint8

func DefaultMonths() Months {
	return Months{
		"I": 1, "II": 2, "III": 3, "IV": 4, "V": 5, "VI": 6,
		"VII": 7, "VIII": 8, "IX": 9, "X": 10, "XI": 11, "XII": 12,
	}
}

func (m Months) Clone() Months {
	return maps.Clone(m)
}

// Inheritance selects where a bare day ("1" in "1 - 5 VI") takes its month from.
type Inheritance uint8

const (
	// InheritFromRight takes the month of the nearest following atom,
	// falling back to the nearest preceding one.
	InheritFromRight Inheritance = iota

	// InheritFromLeft takes the month of the nearest preceding atom,
	// falling back to the nearest following one.
	InheritFromLeft
)

func (i Inheritance) String() string {
	if i == InheritFromLeft {
		return "left"
	}
	return "right"
}

// ParseInheritance accepts "right", "left" or "" (right).
func ParseInheritance(s string) (Inheritance, bool) {
	switch s {
	case "", "right":
		return InheritFromRight, true
	case "left":
		return InheritFromLeft, true
	}
	return InheritFromRight, false
}
