// SPDX-FileCopyrightText: 2026 Mikołaj Kuranowski
// SPDX-License-Identifier: MIT

// Package store keeps extracted timetables in PostgreSQL.
//
// Every row is stored once per train number and rolling stock model,
// so "12345/7" with "EN57, EU47" becomes four records.
package store

import (
	"context"
	"embed"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/kmtabor/KMTimetable/extract"
	"github.com/kmtabor/KMTimetable/schedule"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

const table = "train_schedule"

var columns = []string{
	"train_nr",
	"departure_station",
	"departure_time",
	"arrival_station",
	"arrival_time",
	"train_model",
	"car_count",
	"service_dates",
}

const selectRows = "SELECT train_nr, departure_station, departure_time, arrival_station, " +
	"arrival_time, train_model, car_count, service_dates FROM train_schedule"

// DB is the subset of pgxpool.Pool used by the Repository.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type Repository struct {
	db DB
}

func NewRepository(db DB) *Repository {
	return &Repository{db: db}
}

func Open(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// Migrate brings the database schema up to date.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func records(rows []schedule.ScheduleRow) [][]any {
	var out [][]any
	for _, row := range rows {
		for _, part := range row.Split() {
			if len(part.Models) == 0 || len(part.CarCounts) == 0 {
				continue
			}
			for _, number := range part.TrainNumbers {
				out = append(out, []any{
					number,
					part.DepartureStation,
					part.DepartureTime,
					part.ArrivalStation,
					part.ArrivalTime,
					part.Models[0],
					part.CarCounts[0],
					part.Dates,
				})
			}
		}
	}
	return out
}

// ReplaceAll atomically replaces the stored timetable with rows.
// Returns the number of inserted records.
func (r *Repository) ReplaceAll(ctx context.Context, rows []schedule.ScheduleRow) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}

	n, err := replace(ctx, tx, records(rows))
	if err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			slog.Error("Rollback failed", "error", rbErr)
		}
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return n, nil
}

func replace(ctx context.Context, tx pgx.Tx, data [][]any) (int64, error) {
	if _, err := tx.Exec(ctx, "DELETE FROM "+table); err != nil {
		return 0, fmt.Errorf("delete: %w", err)
	}

	n, err := tx.CopyFrom(ctx, pgx.Identifier{table}, columns, pgx.CopyFromRows(data))
	if err != nil {
		return 0, fmt.Errorf("copy: %w", err)
	}
	return n, nil
}

// RecordRun saves extraction statistics.
func (r *Repository) RecordRun(ctx context.Context, stats extract.Stats, stored int64) error {
	_, err := r.db.Exec(
		ctx,
		`INSERT INTO extraction_run (pages, emitted, discarded, short, stored) VALUES ($1, $2, $3, $4, $5)`,
		stats.Pages, stats.Emitted, stats.Discarded, stats.Short, stored,
	)
	return err
}

func (r *Repository) ByTrainNumber(ctx context.Context, number string) ([]schedule.ScheduleRow, error) {
	rows, err := r.db.Query(ctx, selectRows+" WHERE train_nr = $1 ORDER BY id", number)
	if err != nil {
		return nil, err
	}
	return scanRows(rows)
}

func (r *Repository) All(ctx context.Context) ([]schedule.ScheduleRow, error) {
	rows, err := r.db.Query(ctx, selectRows+" ORDER BY id")
	if err != nil {
		return nil, err
	}
	return scanRows(rows)
}

func scanRows(rows pgx.Rows) ([]schedule.ScheduleRow, error) {
	defer rows.Close()

	var out []schedule.ScheduleRow
	for rows.Next() {
		var s schedule.ScheduleRow
		var number, model string
		var count int
		err := rows.Scan(
			&number,
			&s.DepartureStation,
			&s.DepartureTime,
			&s.ArrivalStation,
			&s.ArrivalTime,
			&model,
			&count,
			&s.Dates,
		)
		if err != nil {
			return nil, err
		}

		s.TrainNumbers = []string{number}
		s.Models = []string{model}
		s.CarCounts = []int{count}
		out = append(out, s)
	}
	return out, rows.Err()
}
