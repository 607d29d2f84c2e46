// SPDX-FileCopyrightText: 2026 Mikołaj Kuranowski
// SPDX-License-Identifier: MIT

// Package dateexpr handles the service-date expressions printed in KM
// timetables, e.g. "1 - 5 VI" or "15 III - 26 IV, 10 - 24 V (C)".
// It rewrites Roman numeral months into the "DD.MM" form and checks
// whether an expression includes a given date.
package dateexpr

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Kind tells which rule produced a normalization Result.
type Kind uint8

const (
	Unchanged Kind = iota
	Single         // "3 XII"
	Range          // "1 - 5 VI"
	List           // "1, 2 VI"
	Compound       // anything else the parser accepts
)

func (k Kind) String() string {
	switch k {
	case Single:
		return "single"
	case Range:
		return "range"
	case List:
		return "list"
	case Compound:
		return "compound"
	default:
		return "unchanged"
	}
}

type Result struct {
	Text string
	Kind Kind
}

var (
	romanTokenRegex    = regexp.MustCompile(`\b[IVX]+\b`)
	annotationRegex    = regexp.MustCompile(`\([^()]*\)`)
	trailingAnnotation = regexp.MustCompile(`\s*(\([^()]*\))\s*$`)
	singleRegex        = regexp.MustCompile(`^([0-9]{1,2})\s+([IVX]+)$`)
	rangeRegex         = regexp.MustCompile(`^([0-9]{1,2})\s*-\s*([0-9]{1,2})\s+([IVX]+)$`)
	listRegex          = regexp.MustCompile(`^[0-9]{1,2}(?:\s*,\s*[0-9]{1,2})+\s+([IVX]+)$`)
	listSeparatorRegex = regexp.MustCompile(`\s*,\s*`)
)

// rule rewrites body (the expression without its trailing annotation)
// or returns ok=false to pass it on to the next rule.
type rule struct {
	kind  Kind
	apply func(n *Normalizer, body string) (text string, ok bool)
}

// Normalizer rewrites date expressions with Roman numeral months into
// zero-padded "DD.MM" form. Anything it does not understand is returned verbatim.
type Normalizer struct {
	parser *Parser
	rules  []rule
}

func NewNormalizer(p *Parser) *Normalizer {
	return &Normalizer{
		parser: p,
		rules: []rule{
			{Single, (*Normalizer).single},
			{Range, (*Normalizer).dayRange},
			{List, (*Normalizer).list},
		},
	}
}

// Normalize runs the rules in order; the first matching one wins.
// Normalize is idempotent: already normalized text contains no Roman
// numerals and is passed through unchanged.
func (n *Normalizer) Normalize(expr string) Result {
	trimmed := strings.TrimSpace(expr)
	if trimmed == "" {
		return Result{expr, Unchanged}
	}

	romans := romanTokenRegex.FindAllString(annotationRegex.ReplaceAllString(trimmed, " "), -1)
	if len(romans) == 0 {
		return Result{expr, Unchanged}
	}
	for _, r := range romans {
		if _, ok := n.parser.Month(r); !ok {
			return Result{expr, Unchanged}
		}
	}

	body, annotation := trimmed, ""
	if loc := trailingAnnotation.FindStringSubmatchIndex(trimmed); loc != nil {
		body = trimmed[:loc[0]]
		annotation = " " + trimmed[loc[2]:loc[3]]
	}

	for _, r := range n.rules {
		if text, ok := r.apply(n, body); ok {
			return Result{text + annotation, r.kind}
		}
	}

	if e, err := n.parser.Parse(trimmed); err == nil {
		return Result{e.String(), Compound}
	}
	return Result{expr, Unchanged}
}

func (n *Normalizer) pad(day string, month uint8) string {
	d, _ := strconv.Atoi(day)
	return fmt.Sprintf("%02d.%02d", d, month)
}

func (n *Normalizer) single(body string) (string, bool) {
	m := singleRegex.FindStringSubmatch(body)
	if m == nil {
		return "", false
	}
	month, _ := n.parser.Month(m[2])
	return n.pad(m[1], month), true
}

func (n *Normalizer) dayRange(body string) (string, bool) {
	m := rangeRegex.FindStringSubmatch(body)
	if m == nil {
		return "", false
	}
	month, _ := n.parser.Month(m[3])
	return n.pad(m[1], month) + " - " + n.pad(m[2], month), true
}

func (n *Normalizer) list(body string) (string, bool) {
	m := listRegex.FindStringSubmatch(body)
	if m == nil {
		return "", false
	}
	month, _ := n.parser.Month(m[1])

	days := strings.TrimSpace(strings.TrimSuffix(body, m[1]))
	parts := listSeparatorRegex.Split(days, -1)
	for i, d := range parts {
		parts[i] = n.pad(d, month)
	}
	return strings.Join(parts, ", "), true
}
