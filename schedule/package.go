// SPDX-FileCopyrightText: 2026 Mikołaj Kuranowski
// SPDX-License-Identifier: MIT

package schedule

import (
	"iter"
	"slices"
)

// Package holds all rows of a timetable, indexed by train number.
type Package struct {
	Rows         []ScheduleRow
	RowsByNumber map[string][]int
}

func NewPackage(rows []ScheduleRow) *Package {
	p := &Package{Rows: rows}
	p.RebuildNumberIndex()
	return p
}

func (p *Package) RebuildNumberIndex() {
	if p.RowsByNumber == nil {
		p.RowsByNumber = make(map[string][]int)
	} else {
		clear(p.RowsByNumber)
	}

	for i, row := range p.Rows {
		for _, number := range row.TrainNumbers {
			// A train may have many rows, e.g. with different rolling stock
			// in different periods. Keep them in timetable order.
			idx := p.RowsByNumber[number]
			if !slices.Contains(idx, i) {
				p.RowsByNumber[number] = append(idx, i)
			}
		}
	}
}

// ByNumber yields all rows of the given train, in timetable order.
func (p *Package) ByNumber(number string) iter.Seq[*ScheduleRow] {
	return func(yield func(*ScheduleRow) bool) {
		for _, i := range p.RowsByNumber[number] {
			if !yield(&p.Rows[i]) {
				return
			}
		}
	}
}

// Split returns a new Package with every row split per rolling stock model.
func (p *Package) Split() *Package {
	rows := make([]ScheduleRow, 0, len(p.Rows))
	for _, r := range p.Rows {
		rows = append(rows, r.Split()...)
	}
	return NewPackage(rows)
}
