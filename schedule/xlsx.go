// SPDX-FileCopyrightText: 2026 Mikołaj Kuranowski
// SPDX-License-Identifier: MIT

package schedule

import (
	"io"

	"github.com/kmtabor/KMTimetable/util/file2"
	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Zestawienie"

var xlsxColumnWidths = [NumColumns]float64{10, 28, 8, 28, 8, 22, 8, 48}

// WriteXLSX writes rows as a single-sheet spreadsheet with a bold, frozen header.
func WriteXLSX(w io.Writer, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return err
	}

	header := Header[:]
	if err := f.SetSheetRow(xlsxSheet, "A1", &header); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetRowStyle(xlsxSheet, 1, 1, bold); err != nil {
		return err
	}

	for i, width := range xlsxColumnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(xlsxSheet, col, col, width); err != nil {
			return err
		}
	}

	err = f.SetPanes(xlsxSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
	if err != nil {
		return err
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}

		values := []string(r.Padded())
		if err := f.SetSheetRow(xlsxSheet, cell, &values); err != nil {
			return err
		}
	}

	_, err = f.WriteTo(w)
	return err
}

// ReadXLSX reads rows from the first sheet of a spreadsheet written by WriteXLSX.
func ReadXLSX(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	all, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, err
	}

	if len(all) <= 1 {
		return nil, nil
	}

	rows := make([]Row, 0, len(all)-1)
	for _, values := range all[1:] {
		rows = append(rows, Row(values))
	}
	return rows, nil
}

func WriteXLSXFile(path string, rows []Row) error {
	return file2.Replace(path, func(w io.Writer) error { return WriteXLSX(w, rows) })
}
