// SPDX-FileCopyrightText: 2026 Mikołaj Kuranowski
// SPDX-License-Identifier: MIT

package extract

import (
	"regexp"
	"strings"

	"github.com/kmtabor/KMTimetable/schedule"
)

// Field is the state of the row extractor: the column the next line goes to.
//
//	state             line / lookahead                    action                   next
//	any < Complete    default                             append line              state+1
//	*Station          line ends with marker, lookahead    append "line lookahead"  state+1
//	CarCounts         N>1 models                          split counts from dates  Dates
//	CarCounts         next effective line is a number     drop the row             TrainNumber
//	Dates             line is a number                    drop the row, carry it   TrainNumber
//	Dates             lookahead is plain text             carry "line lookahead"   Dates
//	Complete          any                                 emit row, start new one  DepartureStation
type Field uint8

const (
	TrainNumber Field = iota
	DepartureStation
	DepartureTime
	ArrivalStation
	ArrivalTime
	Models
	CarCounts
	Dates
	Complete
)

func (f Field) String() string {
	if f < Complete {
		return schedule.Header[f]
	}
	return "complete"
}

type transition struct {
	next Field
	row  schedule.Row

	// emit is a finished row, set when a new one is started
	emit schedule.Row

	// consume skips the lookahead line
	consume bool

	// carry is fed back as the next line, before the remaining input
	carry    string
	hasCarry bool

	discard bool
}

// step is the transition function of the row extractor.
// look is the line right after cur, next is the first line after cur
// which is not a keyword line. It never modifies row's existing fields.
func (e *Extractor) step(state Field, row schedule.Row, cur string, look, next *line) transition {
	switch state {
	case Complete:
		return transition{next: DepartureStation, row: schedule.Row{cur}, emit: row}

	case DepartureStation, ArrivalStation:
		if look != nil && look.kind != keywordLine && e.endsWithMarker(cur) {
			return transition{next: state + 1, row: append(row, cur+" "+look.text), consume: true}
		}

	case CarCounts:
		return e.carCounts(row, cur, next)

	case Dates:
		if schedule.IsTrainNumber(cur) {
			return transition{next: TrainNumber, discard: true, carry: cur, hasCarry: true}
		}
		if look != nil && look.kind == textLine {
			return transition{next: Dates, row: row, consume: true, carry: cur + " " + look.text, hasCarry: true}
		}
	}

	return transition{next: state + 1, row: append(row, cur)}
}

func (e *Extractor) endsWithMarker(s string) bool {
	words := strings.Fields(s)
	if len(words) == 0 {
		return false
	}
	last := strings.ToUpper(words[len(words)-1])
	for _, m := range e.markers {
		if last == strings.ToUpper(m) {
			return true
		}
	}
	return false
}

// carCounts handles the car count column. With N models, the cell often
// also holds the beginning of the dates ("1, 2 1 - 5 VI"), so only the
// first N numbers are counts. A row whose date would be a train number
// has no dates at all and is dropped. Keyword lines between the counts
// and that number do not count.
func (e *Extractor) carCounts(row schedule.Row, cur string, next *line) transition {
	counts, rest := cur, ""
	if n := len(schedule.SplitModels(row.Field(schedule.ColModels))); n > 1 {
		if c, r, ok := splitCounts(cur, n); ok {
			counts, rest = c, r
		}
	}

	var nextIsNumber bool
	if rest != "" {
		nextIsNumber = schedule.IsTrainNumber(rest)
	} else {
		nextIsNumber = next != nil && next.kind == numberLine
	}

	if nextIsNumber {
		return transition{next: TrainNumber, discard: true}
	}

	t := transition{next: Dates, row: append(row, counts)}
	if rest != "" {
		t.carry, t.hasCarry = rest, true
	}
	return t
}

var leadingCountRegex = regexp.MustCompile(`^\s*([0-9]+)\s*,?`)

// splitCounts takes n leading numbers off s.
func splitCounts(s string, n int) (counts, rest string, ok bool) {
	parts := make([]string, 0, n)
	for range n {
		m := leadingCountRegex.FindStringSubmatchIndex(s)
		if m == nil {
			return "", "", false
		}
		parts = append(parts, s[m[2]:m[3]])
		s = s[m[1]:]
	}
	return strings.Join(parts, ", "), strings.TrimSpace(s), true
}
