// SPDX-FileCopyrightText: 2026 Mikołaj Kuranowski
// SPDX-License-Identifier: MIT

package dateexpr

import (
	"github.com/kmtabor/KMTimetable/calendar"
	"github.com/kmtabor/KMTimetable/util/time2"
)

// Matcher decides whether a service-date expression is active on a date.
type Matcher struct {
	parser   *Parser
	calendar *calendar.Calendar
	today    time2.Clock
}

// NewMatcher creates a Matcher. Expressions carry no year, so dates are
// interpreted in the year reported by today (time2.Today if nil).
func NewMatcher(p *Parser, cal *calendar.Calendar, today time2.Clock) *Matcher {
	if today == nil {
		today = time2.Today
	}
	return &Matcher{parser: p, calendar: cal, today: today}
}

// IsActive reports whether target is covered by expr. Malformed expressions,
// unknown months and unknown annotation codes are never active.
func (m *Matcher) IsActive(expr string, target time2.Date) bool {
	return m.IsActiveInYear(expr, target, m.today().Y)
}

// IsActiveInYear is like IsActive, but uses an explicit evaluation year.
func (m *Matcher) IsActiveInYear(expr string, target time2.Date, year uint16) bool {
	e, err := m.parser.Parse(expr)
	if err != nil {
		return false
	}
	return m.ExpressionActive(e, target, year)
}

func (m *Matcher) ExpressionActive(e Expression, target time2.Date, year uint16) bool {
	for _, g := range e.Groups {
		if !m.calendar.Matches(g.Annotation, target) {
			continue
		}
		for _, s := range g.Segments {
			if segmentContains(s, target, year) {
				return true
			}
		}
	}
	return false
}

func segmentContains(s Segment, target time2.Date, year uint16) bool {
	from := time2.Date{Y: year, M: s.From.Month, D: s.From.Day}
	to := time2.Date{Y: year, M: s.To.Month, D: s.To.Day}

	if !to.Before(from) {
		return target.Within(from, to)
	}

	// The range crosses New Year, e.g. "15.12 - 10.01".
	return target.Within(from.WithYear(year-1), to) || target.Within(from, to.WithYear(year+1))
}
