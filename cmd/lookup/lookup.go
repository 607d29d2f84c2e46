// SPDX-FileCopyrightText: 2026 Mikołaj Kuranowski
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/kmtabor/KMTimetable/config"
	"github.com/kmtabor/KMTimetable/lookup"
	"github.com/kmtabor/KMTimetable/schedule"
	"github.com/kmtabor/KMTimetable/store"
	"github.com/kmtabor/KMTimetable/util/secret"
	"github.com/kmtabor/KMTimetable/util/time2"
)

var (
	flagConfig  = flag.String("config", "", "path to a YAML file with calendar, month and fleet tables")
	flagCSV     = flag.String("csv", "km_timetable.csv", "timetable CSV to search")
	flagDB      = flag.Bool("db", false, "search the timetable stored in the database at DATABASE_URL instead of -csv")
	flagTrain   = flag.String("train", "", "train number to look up")
	flagFrom    = flag.String("from", "", "departure station (approximate)")
	flagTo      = flag.String("to", "", "arrival station (approximate)")
	flagAt      = flag.String("at", "", "departure time, HH:MM")
	flagDate    time2.Date
	flagJSON    = flag.Bool("json", false, "print the full result as JSON")
	flagVerbose = flag.Bool("verbose", false, "show DEBUG logging")
)

func init() {
	flag.TextVar(&flagDate, "date", time2.Date{}, "service date (default: today)")
}

func main() {
	flag.Parse()
	if *flagVerbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	if *flagTrain == "" && (*flagFrom == "" || *flagTo == "" || *flagAt == "") {
		log.Fatal("either -train or all of -from, -to and -at are required")
	}

	if err := config.LoadEnv(); err != nil {
		log.Fatal(err)
	}

	cfg := config.Default()
	if *flagConfig != "" {
		var err error
		if cfg, err = config.Load(*flagConfig); err != nil {
			log.Fatal(err)
		}
	}

	rows, err := loadRows(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	date := flagDate
	if !date.IsValid() {
		date = time2.Today()
	}

	ix := lookup.NewIndex(rows, cfg.Matcher(time2.Fixed(date)), cfg.Fleet())
	slog.Debug("Loaded timetable", "rows", ix.Len(), "date", date)

	var (
		res   lookup.Result
		found bool
	)
	if *flagTrain != "" {
		res, found = ix.ByTrainNumber(*flagTrain, date)
	} else {
		res, found = ix.ByRoute(*flagFrom, *flagTo, *flagAt, date)
	}

	if !found {
		fmt.Println("not found")
		os.Exit(1)
	}

	if *flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			log.Fatal(err)
		}
		return
	}

	fmt.Printf(
		"%s %s %s - %s %s: %s\n",
		res.TrainNumber,
		res.Row.DepartureTime,
		res.Row.DepartureStation,
		res.Row.ArrivalTime,
		res.Row.ArrivalStation,
		res.RollingStock,
	)
}

func loadRows(ctx context.Context) ([]schedule.ScheduleRow, error) {
	if *flagDB {
		dsn, err := secret.FromEnvironment("DATABASE_URL")
		if err != nil {
			return nil, err
		}
		pool, err := store.Open(ctx, dsn)
		if err != nil {
			return nil, fmt.Errorf("database: %w", err)
		}
		defer pool.Close()
		return store.NewRepository(pool).All(ctx)
	}

	raw, err := schedule.ReadCSVFile(*flagCSV)
	if err != nil {
		return nil, err
	}

	var rows []schedule.ScheduleRow
	for _, r := range raw {
		row, err := schedule.ParseRow(r)
		if err != nil {
			slog.Debug("Skipping invalid row", "error", err)
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}
