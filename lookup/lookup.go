// SPDX-FileCopyrightText: 2026 Mikołaj Kuranowski
// SPDX-License-Identifier: MIT

// Package lookup answers "what rolling stock runs this train on this day".
package lookup

import (
	"fmt"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/kmtabor/KMTimetable/dateexpr"
	"github.com/kmtabor/KMTimetable/schedule"
	"github.com/kmtabor/KMTimetable/util/time2"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

var timeRegex = regexp.MustCompile(`^([0-9]{1,2})[:.]([0-9]{2})$`)

// Unit is one rolling stock model of a train.
type Unit struct {
	Model string `json:"model"`
	Name  string `json:"name"`
	Cars  int    `json:"cars"`
}

func (u Unit) String() string {
	if u.Cars > 1 {
		return fmt.Sprintf("%s ×%d", u.Name, u.Cars)
	}
	return u.Name
}

type Result struct {
	TrainNumber  string               `json:"train_number"`
	RollingStock string               `json:"rolling_stock"`
	Units        []Unit               `json:"units"`
	Row          schedule.ScheduleRow `json:"row"`
}

// Index is a read-only view of a timetable, safe for concurrent use.
type Index struct {
	pkg     *schedule.Package
	matcher *dateexpr.Matcher
	fleet   *Fleet
}

func NewIndex(rows []schedule.ScheduleRow, m *dateexpr.Matcher, fleet *Fleet) *Index {
	if fleet == nil {
		fleet = DefaultFleet()
	}
	return &Index{
		pkg:     schedule.NewPackage(slices.Clone(rows)),
		matcher: m,
		fleet:   fleet,
	}
}

func (ix *Index) Len() int {
	return len(ix.pkg.Rows)
}

// ByTrainNumber returns the rolling stock of a train on the given date.
// Rows split per model are merged back together.
func (ix *Index) ByTrainNumber(number string, date time2.Date) (Result, bool) {
	number = strings.TrimSpace(number)
	var res Result
	found := false

	for row := range ix.pkg.ByNumber(number) {
		if !ix.matcher.IsActive(row.Dates, date) {
			continue
		}

		if !found {
			res = Result{TrainNumber: number, Row: *row}
			found = true
		}
		res.addUnits(row, ix.fleet)
	}

	if found {
		res.RollingStock = res.describe()
	}
	return res, found
}

// ByRoute finds a train by its departure time and (approximate) station names.
// Station names are compared ignoring case and diacritics, so
// "warszawa wsch" finds "Warszawa Wschodnia" and "deblin" finds "Dęblin".
func (ix *Index) ByRoute(from, to, departure string, date time2.Date) (Result, bool) {
	wantTime, ok := NormalizeTime(departure)
	if !ok {
		return Result{}, false
	}

	var best *schedule.ScheduleRow
	bestRank := math.MaxInt
	for i := range ix.pkg.Rows {
		row := &ix.pkg.Rows[i]
		if t, ok := NormalizeTime(row.DepartureTime); !ok || t != wantTime {
			continue
		}

		fromRank := fuzzy.RankMatchNormalizedFold(strings.TrimSpace(from), row.DepartureStation)
		toRank := fuzzy.RankMatchNormalizedFold(strings.TrimSpace(to), row.ArrivalStation)
		if fromRank < 0 || toRank < 0 || len(row.TrainNumbers) == 0 {
			continue
		}

		if rank := fromRank + toRank; rank < bestRank && ix.matcher.IsActive(row.Dates, date) {
			best, bestRank = row, rank
		}
	}

	if best == nil {
		return Result{}, false
	}
	return ix.ByTrainNumber(best.TrainNumbers[0], date)
}

// Active returns all trains running on the given date, in timetable order.
func (ix *Index) Active(date time2.Date) []Result {
	var results []Result
	seen := make(map[string]bool)

	for _, row := range ix.pkg.Rows {
		for _, number := range row.TrainNumbers {
			if seen[number] {
				continue
			}
			if res, ok := ix.ByTrainNumber(number, date); ok {
				seen[number] = true
				results = append(results, res)
			}
		}
	}
	return results
}

func (r *Result) addUnits(row *schedule.ScheduleRow, fleet *Fleet) {
	for i, model := range row.Models {
		cars := 0
		if i < len(row.CarCounts) {
			cars = row.CarCounts[i]
		}
		r.Units = append(r.Units, Unit{Model: fleet.Code(model), Name: fleet.Name(model), Cars: cars})
	}
}

func (r *Result) describe() string {
	parts := make([]string, len(r.Units))
	for i, u := range r.Units {
		parts[i] = u.String()
	}
	return strings.Join(parts, " + ")
}

// NormalizeTime converts "5:03" or "05.03" into "05:03".
func NormalizeTime(s string) (string, bool) {
	m := timeRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", false
	}
	h, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if h > 47 || minute > 59 {
		return "", false
	}
	return fmt.Sprintf("%02d:%02d", h, minute), true
}
