// SPDX-FileCopyrightText: 2026 Mikołaj Kuranowski
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/kmtabor/KMTimetable/backoff"
	"github.com/kmtabor/KMTimetable/config"
	"github.com/kmtabor/KMTimetable/pipeline"
	"github.com/kmtabor/KMTimetable/store"
	"github.com/kmtabor/KMTimetable/util/secret"
	"github.com/kmtabor/KMTimetable/util/time2"
)

var (
	flagConfig   = flag.String("config", "", "path to a YAML file with calendar, month and fleet tables")
	flagCSV      = flag.String("csv", "km_timetable.csv", "path to the output CSV (empty to skip)")
	flagXLSX     = flag.String("xlsx", "", "path to the output XLSX (empty to skip)")
	flagDB       = flag.Bool("db", false, "replace the timetable stored in the database at DATABASE_URL")
	flagMigrate  = flag.Bool("migrate", false, "apply database migrations before storing")
	flagFeed     = flag.String("feed", "", "path prefix of the rolling stock assignment feed (empty to skip)")
	flagDate     time2.Date
	flagReadable = flag.Bool("readable", false, "dump the feed in human-readable format")
	flagWorkers  = flag.Int("workers", 4, "number of documents read concurrently")
	flagLoop     = flag.Duration("loop", 0, "when non-zero, re-run the extraction continuously with the given period")
	flagVerbose  = flag.Bool("verbose", false, "show DEBUG logging")
)

func init() {
	flag.TextVar(&flagDate, "date", time2.Date{}, "service date of the assignment feed (default: today)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] file-or-directory...\n", os.Args[0])
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	if *flagVerbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if err := config.LoadEnv(); err != nil {
		log.Fatal(err)
	}

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	p, err := pipeline.New(cfg, *flagWorkers)
	if err != nil {
		log.Fatal(err)
	}

	outputs := &pipeline.Outputs{
		CSV:      *flagCSV,
		XLSX:     *flagXLSX,
		Feed:     *flagFeed,
		Readable: *flagReadable,
		Fleet:    cfg.Fleet(),
	}

	if *flagDB {
		repo, closeDB, err := openStore(ctx)
		if err != nil {
			log.Fatal(err)
		}
		defer closeDB()
		outputs.Store = repo
	}

	if *flagLoop == 0 {
		if err := run(ctx, p, outputs, cfg); err != nil {
			log.Fatal(err)
		}
		return
	}

	b := backoff.Backoff{Period: *flagLoop, MaxBackoffExponent: 6}
	for {
		if err := b.Wait(ctx); err != nil {
			slog.Info("Stopping", "reason", err)
			return
		}
		b.StartRun()
		if err := run(ctx, p, outputs, cfg); err != nil {
			nextTry := b.EndRun(backoff.Failure)
			slog.Error("Extraction failure", "error", err, "next_try", nextTry)
		} else {
			b.EndRun(backoff.Success)
		}
	}
}

func loadConfig() (*config.Config, error) {
	if *flagConfig == "" {
		return config.Default(), nil
	}
	return config.Load(*flagConfig)
}

func openStore(ctx context.Context) (*store.Repository, func(), error) {
	dsn, err := secret.FromEnvironment("DATABASE_URL")
	if err != nil {
		return nil, nil, err
	}

	pool, err := store.Open(ctx, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("database: %w", err)
	}

	if *flagMigrate {
		slog.Info("Applying migrations")
		if err := store.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
	}

	return store.NewRepository(pool), pool.Close, nil
}

func run(ctx context.Context, p *pipeline.Pipeline, outputs *pipeline.Outputs, cfg *config.Config) error {
	files, err := pipeline.Inputs(flag.Args())
	if err != nil {
		return err
	}

	start := time.Now()
	slog.Info("Extracting rows", "documents", len(files))
	res, err := p.Run(ctx, files)
	if err != nil {
		return err
	}

	date := flagDate
	if !date.IsValid() {
		date = time2.Today()
	}

	stored, err := outputs.ForDate(date, cfg.Matcher(time2.Fixed(date))).Publish(ctx, res)
	if err != nil {
		return err
	}

	slog.Info(
		"Timetable extracted successfully",
		"result", res,
		"stats", res.Stats,
		"stored", stored,
		"took", time.Since(start),
	)
	return nil
}
