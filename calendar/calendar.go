// SPDX-FileCopyrightText: 2026 Mikołaj Kuranowski
// SPDX-License-Identifier: MIT

// Package calendar decides whether a date satisfies a KM service annotation
// code, such as "A" (workdays) or "C" (weekends and holidays).
package calendar

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/kmtabor/KMTimetable/util/time2"
)

// Weekday numbers days of the week starting with Monday=0 up to Sunday=6.
type Weekday uint8

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

func WeekdayOf(d time2.Date) Weekday {
	return Weekday((d.Weekday() + 6) % 7)
}

// IsWorkday returns true for Monday to Friday. Holidays are not considered.
func IsWorkday(d time2.Date) bool {
	return WeekdayOf(d) <= Friday
}

var weekdayRangeRegex = regexp.MustCompile(`^([1-7])\s*-\s*([1-7])$`)

type Option func(*Calendar)

// WithMovableFeasts makes the calendar also treat Easter Sunday, Easter Monday,
// Pentecost and Corpus Christi as holidays.
func WithMovableFeasts() Option {
	return func(c *Calendar) { c.movable = true }
}

// Calendar evaluates annotation codes against an immutable holiday table.
type Calendar struct {
	holidays Holidays
	movable  bool
}

// New creates a Calendar. The provided table is copied.
func New(h Holidays, opts ...Option) *Calendar {
	c := &Calendar{holidays: h.Clone()}
	if c.holidays == nil {
		c.holidays = Holidays{}
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func Default() *Calendar {
	return New(DefaultHolidays())
}

// Holiday returns the name of the holiday falling on d, if any.
func (c *Calendar) Holiday(d time2.Date) (string, bool) {
	if name, ok := c.holidays[d.DayMonth()]; ok {
		return name, true
	}
	if c.movable {
		if name, ok := MovableFeasts(d.Y)[d]; ok {
			return name, true
		}
	}
	return "", false
}

func (c *Calendar) IsHoliday(d time2.Date) bool {
	_, ok := c.Holiday(d)
	return ok
}

// Matches reports whether d satisfies the annotation code:
//
//	""   every day
//	A    Monday to Friday
//	B    Monday to Friday and Sundays
//	C    Saturdays, Sundays and holidays
//	D    Monday to Friday, except holidays
//	E    Monday to Saturday, except holidays
//	+    holidays
//	n    ISO weekday n (1 = Monday, 7 = Sunday)
//	n-m  ISO weekdays n through m, wrapping past Sunday if n > m
//
// The code may be wrapped in parentheses. Unknown codes never match.
func (c *Calendar) Matches(code string, d time2.Date) bool {
	code = strings.TrimSpace(code)
	if strings.HasPrefix(code, "(") && strings.HasSuffix(code, ")") {
		code = strings.TrimSpace(code[1 : len(code)-1])
	}

	wd := WeekdayOf(d)
	switch code {
	case "":
		return true
	case "A":
		return wd <= Friday
	case "B":
		return wd <= Friday || wd == Sunday
	case "C":
		return wd >= Saturday || c.IsHoliday(d)
	case "D":
		return wd <= Friday && !c.IsHoliday(d)
	case "E":
		return wd <= Saturday && !c.IsHoliday(d)
	case "+":
		return c.IsHoliday(d)
	}

	if len(code) == 1 && code[0] >= '1' && code[0] <= '7' {
		return int(wd)+1 == int(code[0]-'0')
	}

	if m := weekdayRangeRegex.FindStringSubmatch(code); m != nil {
		from, _ := strconv.Atoi(m[1])
		to, _ := strconv.Atoi(m[2])
		iso := int(wd) + 1
		if from <= to {
			return iso >= from && iso <= to
		}
		return iso >= from || iso <= to
	}

	return false
}

func (w Weekday) String() string {
	return time.Weekday((w + 1) % 7).String()
}
