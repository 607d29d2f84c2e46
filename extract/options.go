// SPDX-FileCopyrightText: 2026 Mikołaj Kuranowski
// SPDX-License-Identifier: MIT

package extract

import (
	"fmt"
	"regexp"
	"slices"
)

// DefaultKeywords are the regular expressions of words found only in
// page headers, column titles and footers. Lines containing any of them
// (as a whole word, case-insensitive) are skipped.
func DefaultKeywords() []string {
	return []string{
		"okres", "nr poc", "relacja", "handlowa", "zestawienie", "termin", "kursowania",
		"z", `odj\.?`, "do", `przyj\.?`, "typ", "taboru", "ilość", "legenda",
	}
}

// DefaultStationMarkers are words which, at the end of a station name,
// mean the name continues on the next line ("Lotnisko Chopina -" / "PERON 2").
func DefaultStationMarkers() []string {
	return []string{"PERON", "LOTNISKO"}
}

type Options struct {
	Keywords       []string
	StationMarkers []string
}

func DefaultOptions() Options {
	return Options{
		Keywords:       DefaultKeywords(),
		StationMarkers: DefaultStationMarkers(),
	}
}

// compileKeyword builds a case-insensitive whole-word pattern.
// Go's \b only understands ASCII, which would break on "ilość".
func compileKeyword(keyword string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(`(?i)(?:^|[^\p{L}\p{N}_])(?:` + keyword + `)(?:$|[^\p{L}\p{N}_])`)
	if err != nil {
		return nil, fmt.Errorf("keyword %q: %w", keyword, err)
	}
	return re, nil
}

func compileKeywords(keywords []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, len(keywords))
	for i, kw := range keywords {
		re, err := compileKeyword(kw)
		if err != nil {
			return nil, err
		}
		compiled[i] = re
	}
	return compiled, nil
}

func (o Options) clone() Options {
	return Options{
		Keywords:       slices.Clone(o.Keywords),
		StationMarkers: slices.Clone(o.StationMarkers),
	}
}
