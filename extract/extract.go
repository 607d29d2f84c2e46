// SPDX-FileCopyrightText: 2026 Mikołaj Kuranowski
// SPDX-License-Identifier: MIT

// Package extract recovers table rows from the plain text of
// "Zestawienie pociągów" PDF pages published by Koleje Mazowieckie.
//
// The text has one table cell per line, in reading order. Cells are
// assigned to columns by a small state machine, which also deals with
// the layout quirks of those PDFs: station names wrapped over two lines,
// car counts and dates printed in one cell, dates wrapped over many lines
// and rows with a missing date.
package extract

import (
	"regexp"
	"strings"

	"github.com/kmtabor/KMTimetable/schedule"
)

type Stats struct {
	Pages     int `json:"pages"`
	Emitted   int `json:"emitted"`
	Discarded int `json:"discarded"`
	Short     int `json:"short"`
}

func (s *Stats) Add(o Stats) {
	s.Pages += o.Pages
	s.Emitted += o.Emitted
	s.Discarded += o.Discarded
	s.Short += o.Short
}

// Extractor is immutable and safe for concurrent use.
type Extractor struct {
	keywords []*regexp.Regexp
	markers  []string
}

func New(opts Options) (*Extractor, error) {
	opts = opts.clone()
	keywords, err := compileKeywords(opts.Keywords)
	if err != nil {
		return nil, err
	}
	return &Extractor{keywords: keywords, markers: opts.StationMarkers}, nil
}

func Default() *Extractor {
	e, err := New(DefaultOptions())
	if err != nil {
		panic(err)
	}
	return e
}

type lineKind uint8

const (
	textLine lineKind = iota
	numberLine
	keywordLine
)

type line struct {
	text string
	kind lineKind
}

func (e *Extractor) isKeywordLine(s string) bool {
	for _, kw := range e.keywords {
		if kw.MatchString(s) {
			return true
		}
	}
	return false
}

// classify splits text into trimmed non-blank lines.
func (e *Extractor) classify(text string) []line {
	var lines []line
	for raw := range strings.Lines(text) {
		s := strings.TrimSpace(raw)
		switch {
		case s == "":
			continue
		case schedule.IsTrainNumber(s):
			lines = append(lines, line{s, numberLine})
		case e.isKeywordLine(s):
			lines = append(lines, line{s, keywordLine})
		default:
			lines = append(lines, line{s, textLine})
		}
	}
	return lines
}

// ExtractPage returns the rows of a single page. Rows never continue
// across pages. The last row may be short if the page ends abruptly.
func (e *Extractor) ExtractPage(text string) ([]schedule.Row, Stats) {
	lines := e.classify(text)
	stats := Stats{Pages: 1}

	var rows []schedule.Row
	var row schedule.Row
	state := TrainNumber

	var carry string
	hasCarry := false
	i := 0

	for {
		var cur string
		if hasCarry {
			cur, hasCarry = carry, false
		} else {
			for i < len(lines) && lines[i].kind == keywordLine {
				i++
			}
			if i >= len(lines) {
				break
			}
			cur = lines[i].text
			i++
		}

		var look, next *line
		if i < len(lines) {
			look = &lines[i]
		}
		for j := i; j < len(lines); j++ {
			if lines[j].kind != keywordLine {
				next = &lines[j]
				break
			}
		}

		t := e.step(state, row, cur, look, next)
		if t.consume {
			i++
		}
		if t.emit != nil {
			rows = append(rows, t.emit)
			stats.Emitted++
		}
		if t.discard {
			stats.Discarded++
		}
		if t.hasCarry {
			carry, hasCarry = t.carry, true
		}
		state, row = t.next, t.row
	}

	if len(row) > 0 {
		rows = append(rows, row)
		if row.Complete() {
			stats.Emitted++
		} else {
			stats.Short++
		}
	}

	for _, r := range rows {
		if r.Complete() {
			r[schedule.ColDates] = FormatDates(r[schedule.ColDates])
		}
	}

	return rows, stats
}

// ExtractPages processes all pages of a document, in order.
func (e *Extractor) ExtractPages(pages []string) ([]schedule.Row, Stats) {
	var rows []schedule.Row
	var stats Stats
	for _, page := range pages {
		pageRows, pageStats := e.ExtractPage(page)
		rows = append(rows, pageRows...)
		stats.Add(pageStats)
	}
	return rows, stats
}

var dateSpacing = strings.NewReplacer("-", " - ", "–", " - ", ",", ", ")

// FormatDates puts single spaces around dashes and after commas.
func FormatDates(s string) string {
	return strings.Join(strings.Fields(dateSpacing.Replace(s)), " ")
}
