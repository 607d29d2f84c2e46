// SPDX-FileCopyrightText: 2026 Mikołaj Kuranowski
// SPDX-License-Identifier: MIT

// Package schedule contains the data model of KM rolling stock timetables.
package schedule

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var trainNumberRegex = regexp.MustCompile(`^([0-9]{5})(?:/([0-9]+))?$`)

var (
	ErrShortRow        = errors.New("row is not complete")
	ErrCountMismatch   = errors.New("number of car counts does not match number of models")
	ErrInvalidNumber   = errors.New("not a train number")
	ErrInvalidCarCount = errors.New("car count is not a positive integer")
	ErrSuffixTooLong   = errors.New("train number suffix is longer than the number")
	ErrSameNumber      = errors.New("train number suffix repeats the number")
)

type ErrInvalidRow struct {
	Column string
	Value  string
	Reason error
}

func (e ErrInvalidRow) Error() string {
	if e.Reason == nil {
		return fmt.Sprintf("invalid %s: %q", e.Column, e.Value)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Column, e.Value, e.Reason)
}

func (e ErrInvalidRow) Unwrap() error {
	return e.Reason
}

// ScheduleRow is a single timetable entry: one or two train numbers
// served with the listed rolling stock on the listed dates.
type ScheduleRow struct {
	TrainNumbers     []string `json:"train_numbers"`
	DepartureStation string   `json:"departure_station"`
	DepartureTime    string   `json:"departure_time"`
	ArrivalStation   string   `json:"arrival_station"`
	ArrivalTime      string   `json:"arrival_time"`
	Models           []string `json:"models"`
	CarCounts        []int    `json:"car_counts"`
	Dates            string   `json:"dates"`
}

// SplitTrainNumber expands "12345/7" into "12345" and "12347".
// The suffix replaces as many trailing digits of the number as it has,
// so "12345/67" gives "12367". A suffix equal to those digits ("12345/5")
// is rejected.
func SplitTrainNumber(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	m := trainNumberRegex.FindStringSubmatch(raw)
	if m == nil {
		return nil, ErrInvalidNumber
	}

	first, suffix := m[1], m[2]
	if suffix == "" {
		return []string{first}, nil
	} else if len(suffix) > len(first) {
		return nil, ErrSuffixTooLong
	}
	second := first[:len(first)-len(suffix)] + suffix
	if second == first {
		return nil, ErrSameNumber
	}
	return []string{first, second}, nil
}

// IsTrainNumber returns true if s looks like a train number column, e.g. "12345" or "12345/7".
func IsTrainNumber(s string) bool {
	return trainNumberRegex.MatchString(strings.TrimSpace(s))
}

// SplitModels splits the comma-separated rolling stock column.
func SplitModels(s string) []string {
	var models []string
	for m := range strings.SplitSeq(s, ",") {
		if m = strings.TrimSpace(m); m != "" {
			models = append(models, m)
		}
	}
	return models
}

// SplitCarCounts splits the car count column, separated by commas or spaces.
func SplitCarCounts(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || unicode.IsSpace(r) })
	counts := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n <= 0 {
			return nil, ErrInvalidCarCount
		}
		counts[i] = n
	}
	return counts, nil
}

// ParseRow converts a complete raw Row into a ScheduleRow.
func ParseRow(r Row) (ScheduleRow, error) {
	if !r.Complete() {
		return ScheduleRow{}, ErrInvalidRow{Column: "row", Value: strings.Join(r, ";"), Reason: ErrShortRow}
	}

	numbers, err := SplitTrainNumber(r[ColTrainNumber])
	if err != nil {
		return ScheduleRow{}, ErrInvalidRow{Column: Header[ColTrainNumber], Value: r[ColTrainNumber], Reason: err}
	}

	counts, err := SplitCarCounts(r[ColCarCounts])
	if err != nil {
		return ScheduleRow{}, ErrInvalidRow{Column: Header[ColCarCounts], Value: r[ColCarCounts], Reason: err}
	}

	models := SplitModels(r[ColModels])
	if len(models) != len(counts) {
		return ScheduleRow{}, ErrInvalidRow{
			Column: Header[ColCarCounts],
			Value:  r[ColCarCounts],
			Reason: fmt.Errorf("%w (%d models, %d counts)", ErrCountMismatch, len(models), len(counts)),
		}
	}

	return ScheduleRow{
		TrainNumbers:     numbers,
		DepartureStation: strings.TrimSpace(r[ColDepartureStation]),
		DepartureTime:    strings.TrimSpace(r[ColDepartureTime]),
		ArrivalStation:   strings.TrimSpace(r[ColArrivalStation]),
		ArrivalTime:      strings.TrimSpace(r[ColArrivalTime]),
		Models:           models,
		CarCounts:        counts,
		Dates:            strings.TrimSpace(r[ColDates]),
	}, nil
}

// Split returns one row per rolling stock model. All other fields,
// including the full date expression, are shared.
func (s ScheduleRow) Split() []ScheduleRow {
	if len(s.Models) <= 1 {
		return []ScheduleRow{s}
	}

	rows := make([]ScheduleRow, len(s.Models))
	for i := range s.Models {
		rows[i] = s
		rows[i].Models = []string{s.Models[i]}
		rows[i].CarCounts = []int{s.CarCounts[i]}
	}
	return rows
}

func (s ScheduleRow) TotalCars() (total int) {
	for _, c := range s.CarCounts {
		total += c
	}
	return
}

func (s ScheduleRow) HasNumber(number string) bool {
	for _, n := range s.TrainNumbers {
		if n == number {
			return true
		}
	}
	return false
}

// Row converts the ScheduleRow back to its raw form.
// Both train numbers are collapsed into a single "12345/7" label.
func (s ScheduleRow) Row() Row {
	counts := make([]string, len(s.CarCounts))
	for i, c := range s.CarCounts {
		counts[i] = strconv.Itoa(c)
	}

	return Row{
		numberLabel(s.TrainNumbers),
		s.DepartureStation,
		s.DepartureTime,
		s.ArrivalStation,
		s.ArrivalTime,
		strings.Join(s.Models, ", "),
		strings.Join(counts, ", "),
		s.Dates,
	}
}

func numberLabel(numbers []string) string {
	switch len(numbers) {
	case 0:
		return ""
	case 1:
		return numbers[0]
	}

	first, second := numbers[0], numbers[1]
	i := 0
	for i < len(first) && i < len(second) && first[i] == second[i] {
		i++
	}
	if i == len(second) {
		return first
	}
	return first + "/" + second[i:]
}
