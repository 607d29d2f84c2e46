// SPDX-FileCopyrightText: 2026 Mikołaj Kuranowski
// SPDX-License-Identifier: MIT

package schedule

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/kmtabor/KMTimetable/util/file2"
)

// Delimiter of published CSV files.
const Delimiter = ';'

type csvRecord struct {
	TrainNumber      string `csv:"nr poc"`
	DepartureStation string `csv:"z"`
	DepartureTime    string `csv:"odj."`
	ArrivalStation   string `csv:"do"`
	ArrivalTime      string `csv:"przyj."`
	Models           string `csv:"typ taboru"`
	CarCounts        string `csv:"ilość"`
	Dates            string `csv:"termin kursowania"`
}

func recordFromRow(r Row) *csvRecord {
	p := r.Padded()
	return &csvRecord{
		TrainNumber:      p[ColTrainNumber],
		DepartureStation: p[ColDepartureStation],
		DepartureTime:    p[ColDepartureTime],
		ArrivalStation:   p[ColArrivalStation],
		ArrivalTime:      p[ColArrivalTime],
		Models:           p[ColModels],
		CarCounts:        p[ColCarCounts],
		Dates:            p[ColDates],
	}
}

func (c *csvRecord) row() Row {
	r := Row{
		c.TrainNumber,
		c.DepartureStation,
		c.DepartureTime,
		c.ArrivalStation,
		c.ArrivalTime,
		c.Models,
		c.CarCounts,
		c.Dates,
	}

	// Short rows were padded with empty fields on write
	for len(r) > 0 && r[len(r)-1] == "" {
		r = r[:len(r)-1]
	}
	return r
}

// WriteCSV writes rows with the fixed header, separated by semicolons.
// Short rows are padded with empty fields.
func WriteCSV(w io.Writer, rows []Row) error {
	records := make([]*csvRecord, len(rows))
	for i, r := range rows {
		records[i] = recordFromRow(r)
	}

	cw := csv.NewWriter(w)
	cw.Comma = Delimiter
	if err := gocsv.MarshalCSV(&records, gocsv.NewSafeCSVWriter(cw)); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV reads rows written by WriteCSV. Trailing empty fields are dropped,
// so short rows keep their length.
func ReadCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.Comma = Delimiter
	cr.FieldsPerRecord = -1

	var records []*csvRecord
	if err := gocsv.UnmarshalCSV(cr, &records); err != nil {
		return nil, err
	}

	rows := make([]Row, len(records))
	for i, rec := range records {
		rows[i] = rec.row()
	}
	return rows, nil
}

// WriteCSVFile atomically replaces the file at path with the CSV-encoded rows.
func WriteCSVFile(path string, rows []Row) error {
	return file2.Replace(path, func(w io.Writer) error { return WriteCSV(w, rows) })
}

func ReadCSVFile(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := ReadCSV(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}
