// SPDX-FileCopyrightText: 2026 Mikołaj Kuranowski
// SPDX-License-Identifier: MIT

package schedule

import "slices"

// Column indices of a Row.
const (
	ColTrainNumber = iota
	ColDepartureStation
	ColDepartureTime
	ColArrivalStation
	ColArrivalTime
	ColModels
	ColCarCounts
	ColDates

	NumColumns
)

// Header lists the column names of the published CSV files.
var Header = [NumColumns]string{
	"nr poc",
	"z",
	"odj.",
	"do",
	"przyj.",
	"typ taboru",
	"ilość",
	"termin kursowania",
}

// Row is a raw table row, as recovered from a page of text.
// A Row may be short (fewer than NumColumns fields) if the page
// layout was not fully understood.
type Row []string

func (r Row) Complete() bool {
	return len(r) == NumColumns
}

// Field returns the i-th field, or "" if the row is too short.
func (r Row) Field(i int) string {
	if i < len(r) {
		return r[i]
	}
	return ""
}

// Padded returns a copy of the row with exactly NumColumns fields.
// Fields beyond NumColumns are dropped.
func (r Row) Padded() Row {
	p := make(Row, NumColumns)
	copy(p, r)
	return p
}

func (r Row) Clone() Row {
	return slices.Clone(r)
}
