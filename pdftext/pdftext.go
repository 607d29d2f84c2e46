// SPDX-FileCopyrightText: 2026 Mikołaj Kuranowski
// SPDX-License-Identifier: MIT

// Package pdftext turns PDF pages into plain text with one table cell per line.
package pdftext

import (
	"bytes"
	"cmp"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Layout controls how glyphs are grouped into lines and cells.
// All distances are in PDF points.
type Layout struct {
	// LineTolerance is the maximum vertical distance between glyphs of one line.
	LineTolerance float64

	// CellGap is the minimum horizontal gap separating two table cells.
	CellGap float64

	// WordGap is the minimum horizontal gap, relative to font size,
	// which is rendered as a space.
	WordGap float64
}

func DefaultLayout() Layout {
	return Layout{LineTolerance: 2.0, CellGap: 6.0, WordGap: 0.2}
}

type ErrMalformedPDF struct {
	Page   int
	Reason any
}

func (e ErrMalformedPDF) Error() string {
	return fmt.Sprintf("malformed PDF (page %d): %v", e.Page, e.Reason)
}

// ReadPages returns the text of every page.
func ReadPages(r io.ReaderAt, size int64, layout Layout) (pages []string, err error) {
	page := 0
	defer func() {
		// ledongthuc/pdf panics on malformed content streams
		if v := recover(); v != nil {
			pages, err = nil, ErrMalformedPDF{Page: page, Reason: v}
		}
	}()

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return nil, err
	}

	n := reader.NumPage()
	pages = make([]string, 0, n)
	for page = 1; page <= n; page++ {
		p := reader.Page(page)
		if p.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, layout.Text(p.Content().Text))
	}
	return pages, nil
}

func ReadFile(path string, layout Layout) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	pages, err := ReadPages(bytes.NewReader(content), int64(len(content)), layout)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pages, nil
}

// Text arranges glyphs top to bottom, left to right and puts each cell
// of the resulting text lines on its own line.
func (l Layout) Text(glyphs []pdf.Text) string {
	var b strings.Builder
	for _, line := range l.lines(glyphs) {
		for _, cell := range l.cells(line) {
			b.WriteString(cell)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (l Layout) lines(glyphs []pdf.Text) [][]pdf.Text {
	sorted := slices.Clone(glyphs)
	slices.SortStableFunc(sorted, func(a, b pdf.Text) int {
		// PDF y-axis points up
		return cmp.Compare(b.Y, a.Y)
	})

	var lines [][]pdf.Text
	var lineY float64
	for _, g := range sorted {
		if len(lines) == 0 || math.Abs(lineY-g.Y) > l.LineTolerance {
			lines = append(lines, nil)
			lineY = g.Y
		}
		lines[len(lines)-1] = append(lines[len(lines)-1], g)
	}

	for _, line := range lines {
		slices.SortStableFunc(line, func(a, b pdf.Text) int { return cmp.Compare(a.X, b.X) })
	}
	return lines
}

func (l Layout) cells(line []pdf.Text) []string {
	var cells []string
	var cur strings.Builder
	end := math.Inf(-1)

	flush := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			cells = append(cells, s)
		}
		cur.Reset()
	}

	for _, g := range line {
		gap := g.X - end
		switch {
		case gap > l.CellGap:
			flush()
		case gap > l.WordGap*g.FontSize && cur.Len() > 0:
			cur.WriteByte(' ')
		}
		cur.WriteString(g.S)
		end = g.X + g.W
	}
	flush()
	return cells
}
