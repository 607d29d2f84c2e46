// SPDX-FileCopyrightText: 2026 Mikołaj Kuranowski
// SPDX-License-Identifier: MIT

package dateexpr

import (
	"fmt"
	"strconv"
	"strings"
)

type ErrSyntax struct {
	Expr   string
	Pos    int
	Reason string
}

func (e *ErrSyntax) Error() string {
	return fmt.Sprintf("invalid date expression %q at %d: %s", e.Expr, e.Pos, e.Reason)
}

type ErrUnknownMonth string

func (e ErrUnknownMonth) Error() string {
	return fmt.Sprintf("unknown month: %q", string(e))
}

// Point is a day of month. Month is 0 until resolved from a neighbor.
type Point struct {
	Day, Month uint8
}

func (p Point) String() string {
	return fmt.Sprintf("%02d.%02d", p.Day, p.Month)
}

// Segment is a single day (From == To, !Range) or an inclusive range.
type Segment struct {
	From, To Point
	Range    bool
}

func (s Segment) String() string {
	if s.Range {
		return s.From.String() + " - " + s.To.String()
	}
	return s.From.String()
}

// Group is a list of segments sharing one annotation code.
type Group struct {
	Segments   []Segment
	Annotation string
}

// Expression is a parsed service-date expression, with all months resolved.
type Expression struct {
	Groups []Group
}

// String renders the expression in the normalized "DD.MM - DD.MM, DD.MM (X)" form.
func (e Expression) String() string {
	var b strings.Builder
	for i, g := range e.Groups {
		if i > 0 {
			b.WriteString(", ")
		}
		for j, s := range g.Segments {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString(s.String())
		}
		if g.Annotation != "" {
			b.WriteString(" (")
			b.WriteString(g.Annotation)
			b.WriteString(")")
		}
	}
	return b.String()
}

// Parser turns date expressions into an Expression.
// It is immutable and safe for concurrent use.
type Parser struct {
	months  Months
	inherit Inheritance
}

// NewParser creates a Parser. A nil months table means DefaultMonths.
func NewParser(months Months, inherit Inheritance) *Parser {
	if months == nil {
		months = DefaultMonths()
	}
	return &Parser{months: months.Clone(), inherit: inherit}
}

func (p *Parser) Inheritance() Inheritance { return p.inherit }

func (p *Parser) Month(roman string) (uint8, bool) {
	m, ok := p.months[roman]
	return m, ok
}

func (p *Parser) Parse(expr string) (Expression, error) {
	tokens, err := lex(expr)
	if err != nil {
		return Expression{}, err
	}
	if len(tokens) == 0 {
		return Expression{}, &ErrSyntax{Expr: expr, Reason: "empty expression"}
	}

	ps := parseState{Parser: p, expr: expr, tokens: tokens}
	return ps.parse()
}

type parseState struct {
	*Parser
	expr   string
	tokens []token
	i      int
}

func (ps *parseState) fail(reason string) error {
	pos := len(ps.expr)
	if ps.i < len(ps.tokens) {
		pos = ps.tokens[ps.i].pos
	}
	return &ErrSyntax{Expr: ps.expr, Pos: pos, Reason: reason}
}

func (ps *parseState) peek() (token, bool) {
	if ps.i < len(ps.tokens) {
		return ps.tokens[ps.i], true
	}
	return token{}, false
}

func (ps *parseState) parse() (Expression, error) {
	var e Expression
	var current Group

	for {
		seg, err := ps.segment()
		if err != nil {
			return Expression{}, err
		}
		current.Segments = append(current.Segments, seg)

		tok, ok := ps.peek()
		if ok && tok.kind == tokAnnotation {
			if tok.text == "" {
				return Expression{}, ps.fail("empty annotation")
			}
			current.Annotation = tok.text
			ps.i++
			e.Groups = append(e.Groups, current)
			current = Group{}
			tok, ok = ps.peek()
		}

		if !ok {
			break
		} else if tok.kind != tokComma {
			return Expression{}, ps.fail("expected a comma")
		}

		ps.i++
		if ps.i >= len(ps.tokens) {
			return Expression{}, ps.fail("trailing comma")
		}
	}

	if len(current.Segments) > 0 {
		e.Groups = append(e.Groups, current)
	}

	for gi := range e.Groups {
		if err := ps.resolve(&e.Groups[gi]); err != nil {
			return Expression{}, err
		}
	}
	return e, nil
}

func (ps *parseState) segment() (Segment, error) {
	from, err := ps.point()
	if err != nil {
		return Segment{}, err
	}

	if tok, ok := ps.peek(); !ok || tok.kind != tokDash {
		return Segment{From: from, To: from}, nil
	}
	ps.i++

	to, err := ps.point()
	if err != nil {
		return Segment{}, err
	}
	return Segment{From: from, To: to, Range: true}, nil
}

func (ps *parseState) point() (Point, error) {
	tok, ok := ps.peek()
	if !ok {
		return Point{}, ps.fail("expected a day")
	}

	switch tok.kind {
	case tokNumber:
		ps.i++
		day, _ := strconv.ParseUint(tok.text, 10, 8)
		p := Point{Day: uint8(day)}

		if next, ok := ps.peek(); ok && next.kind == tokRoman {
			month, known := ps.months[next.text]
			if !known {
				return Point{}, ErrUnknownMonth(next.text)
			}
			p.Month = month
			ps.i++
		}
		return p, nil

	case tokDotted:
		ps.i++
		day, month, _ := strings.Cut(tok.text, ".")
		d, _ := strconv.ParseUint(day, 10, 8)
		m, _ := strconv.ParseUint(month, 10, 8)
		if m < 1 || m > 12 {
			return Point{}, ErrUnknownMonth(month)
		}
		return Point{Day: uint8(d), Month: uint8(m)}, nil
	}

	return Point{}, ps.fail("expected a day")
}

// resolve fills in missing months of a group's points, in reading order.
func (ps *parseState) resolve(g *Group) error {
	points := make([]*Point, 0, 2*len(g.Segments))
	for si := range g.Segments {
		s := &g.Segments[si]
		points = append(points, &s.From)
		if s.Range {
			points = append(points, &s.To)
		}
	}

	resolved := make([]uint8, len(points))
	for i, pt := range points {
		if pt.Month != 0 {
			resolved[i] = pt.Month
			continue
		}

		var m uint8
		if ps.inherit == InheritFromLeft {
			m = firstMonth(points, i-1, -1)
			if m == 0 {
				m = firstMonth(points, i+1, 1)
			}
		} else {
			m = firstMonth(points, i+1, 1)
			if m == 0 {
				m = firstMonth(points, i-1, -1)
			}
		}
		if m == 0 {
			return &ErrSyntax{Expr: ps.expr, Reason: "day without a month"}
		}
		resolved[i] = m
	}

	for i, pt := range points {
		pt.Month = resolved[i]
	}
	for si := range g.Segments {
		if s := &g.Segments[si]; !s.Range {
			s.To = s.From
		}
	}
	return nil
}

func firstMonth(points []*Point, start, step int) uint8 {
	for i := start; i >= 0 && i < len(points); i += step {
		if points[i].Month != 0 {
			return points[i].Month
		}
	}
	return 0
}
