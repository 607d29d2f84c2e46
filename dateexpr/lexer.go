// SPDX-FileCopyrightText: 2026 Mikołaj Kuranowski
// SPDX-License-Identifier: MIT

package dateexpr

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind uint8

const (
	tokNumber     tokenKind = iota // 1-2 digit day
	tokRoman                       // run of I, V, X
	tokDotted                      // already normalized "DD.MM"
	tokDash                        // range separator
	tokComma                       // list separator
	tokAnnotation                  // contents of "( ... )"
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

func isRomanLetter(r rune) bool {
	return r == 'I' || r == 'V' || r == 'X'
}

func isDash(r rune) bool {
	return r == '-' || r == '–' || r == '—'
}

func lex(s string) ([]token, error) {
	var tokens []token
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		start := i

		switch {
		case unicode.IsSpace(r):
			i += size

		case r >= '0' && r <= '9':
			i = scan(s, i, isASCIIDigit)
			if i < len(s) && s[i] == '.' && i+1 < len(s) && isASCIIDigit(rune(s[i+1])) {
				i = scan(s, i+1, isASCIIDigit)
				if err := checkDotted(s[start:i]); err != nil {
					return nil, &ErrSyntax{Expr: s, Pos: start, Reason: err.Error()}
				}
				tokens = append(tokens, token{tokDotted, s[start:i], start})
			} else {
				if i-start > 2 {
					return nil, &ErrSyntax{Expr: s, Pos: start, Reason: "day number too long"}
				}
				tokens = append(tokens, token{tokNumber, s[start:i], start})
			}

		case unicode.IsLetter(r):
			i = scan(s, i, unicode.IsLetter)
			word := s[start:i]
			if strings.IndexFunc(word, func(r rune) bool { return !isRomanLetter(r) }) >= 0 {
				return nil, &ErrSyntax{Expr: s, Pos: start, Reason: fmt.Sprintf("unexpected word %q", word)}
			}
			tokens = append(tokens, token{tokRoman, word, start})

		case isDash(r):
			i += size
			tokens = append(tokens, token{tokDash, "-", start})

		case r == ',':
			i += size
			tokens = append(tokens, token{tokComma, ",", start})

		case r == '(':
			end := strings.IndexByte(s[i:], ')')
			if end < 0 {
				return nil, &ErrSyntax{Expr: s, Pos: start, Reason: "unclosed parenthesis"}
			}
			tokens = append(tokens, token{tokAnnotation, strings.TrimSpace(s[i+1 : i+end]), start})
			i += end + 1

		default:
			return nil, &ErrSyntax{Expr: s, Pos: start, Reason: fmt.Sprintf("unexpected character %q", r)}
		}
	}
	return tokens, nil
}

func isASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func scan(s string, i int, pred func(rune) bool) int {
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !pred(r) {
			break
		}
		i += size
	}
	return i
}

func checkDotted(s string) error {
	day, month, _ := strings.Cut(s, ".")
	if len(day) > 2 || len(month) != 2 {
		return fmt.Errorf("malformed date %q", s)
	}
	return nil
}
