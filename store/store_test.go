// SPDX-FileCopyrightText: 2026 Mikołaj Kuranowski
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/kmtabor/KMTimetable/extract"
	"github.com/kmtabor/KMTimetable/schedule"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRows = []schedule.ScheduleRow{
	{
		TrainNumbers:     []string{"19311", "19313"},
		DepartureStation: "Warszawa Wschodnia",
		DepartureTime:    "5:03",
		ArrivalStation:   "Radom",
		ArrivalTime:      "6:59",
		Models:           []string{"EN57", "EU47"},
		CarCounts:        []int{1, 2},
		Dates:            "01.06 - 05.06 (A)",
	},
	{
		TrainNumbers:     []string{"19320"},
		DepartureStation: "Dęblin",
		DepartureTime:    "8:00",
		ArrivalStation:   "Radom",
		ArrivalTime:      "9:10",
		Models:           []string{"EN71"},
		CarCounts:        []int{1},
		Dates:            "01.06",
	},
}

func TestRecords(t *testing.T) {
	got := records(testRows)
	require.Len(t, got, 5)
	assert.Equal(t, []any{"19311", "Warszawa Wschodnia", "5:03", "Radom", "6:59", "EN57", 1, "01.06 - 05.06 (A)"}, got[0])
	assert.Equal(t, []any{"19313", "Warszawa Wschodnia", "5:03", "Radom", "6:59", "EN57", 1, "01.06 - 05.06 (A)"}, got[1])
	assert.Equal(t, []any{"19311", "Warszawa Wschodnia", "5:03", "Radom", "6:59", "EU47", 2, "01.06 - 05.06 (A)"}, got[2])
	assert.Equal(t, "19320", got[4][0])
}

func TestReplaceAll(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM train_schedule").WillReturnResult(pgxmock.NewResult("DELETE", 12))
	mock.ExpectCopyFrom(pgx.Identifier{"train_schedule"}, columns).WillReturnResult(5)
	mock.ExpectCommit()

	n, err := NewRepository(mock).ReplaceAll(context.Background(), testRows)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceAllRollsBack(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM train_schedule").WillReturnResult(pgxmock.NewResult("DELETE", 12))
	mock.ExpectCopyFrom(pgx.Identifier{"train_schedule"}, columns).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err = NewRepository(mock).ReplaceAll(context.Background(), testRows)
	assert.ErrorContains(t, err, "copy: disk full")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestByTrainNumber(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT (.+) FROM train_schedule WHERE train_nr = \$1`).
		WithArgs("19311").
		WillReturnRows(pgxmock.NewRows(columns).
			AddRow("19311", "Warszawa Wschodnia", "5:03", "Radom", "6:59", "EN57", 1, "01.06 - 05.06 (A)").
			AddRow("19311", "Warszawa Wschodnia", "5:03", "Radom", "6:59", "EU47", 2, "01.06 - 05.06 (A)"))

	rows, err := NewRepository(mock).ByTrainNumber(context.Background(), "19311")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, schedule.ScheduleRow{
		TrainNumbers:     []string{"19311"},
		DepartureStation: "Warszawa Wschodnia",
		DepartureTime:    "5:03",
		ArrivalStation:   "Radom",
		ArrivalTime:      "6:59",
		Models:           []string{"EU47"},
		CarCounts:        []int{2},
		Dates:            "01.06 - 05.06 (A)",
	}, rows[1])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAllQueryError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT (.+) FROM train_schedule ORDER BY id`).WillReturnError(errors.New("connection reset"))

	_, err = NewRepository(mock).All(context.Background())
	assert.EqualError(t, err, "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRun(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("INSERT INTO extraction_run").
		WithArgs(3, 10, 1, 2, int64(14)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = NewRepository(mock).RecordRun(context.Background(), extract.Stats{Pages: 3, Emitted: 10, Discarded: 1, Short: 2}, 14)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
