// SPDX-FileCopyrightText: 2026 Mikołaj Kuranowski
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/kmtabor/KMTimetable/backoff"
	"github.com/kmtabor/KMTimetable/config"
	"github.com/kmtabor/KMTimetable/extract"
	"github.com/kmtabor/KMTimetable/metrics"
	"github.com/kmtabor/KMTimetable/pipeline"
	"github.com/kmtabor/KMTimetable/store"
	"github.com/kmtabor/KMTimetable/util/secret"
	"github.com/kmtabor/KMTimetable/util/time2"
	"github.com/robfig/cron/v3"
)

var (
	flagConfig   = flag.String("config", "", "path to a YAML file with calendar, month and fleet tables")
	flagCSV      = flag.String("csv", "km_timetable.csv", "path to the output CSV (empty to skip)")
	flagXLSX     = flag.String("xlsx", "", "path to the output XLSX (empty to skip)")
	flagDB       = flag.Bool("db", false, "replace the timetable stored in the database at DATABASE_URL")
	flagFeed     = flag.String("feed", "km_assignments", "path prefix of the rolling stock assignment feed (empty to skip)")
	flagReadable = flag.Bool("readable", false, "dump the feed in human-readable format")
	flagWorkers  = flag.Int("workers", 4, "number of documents read concurrently")
	flagPeriod   = flag.Duration("period", 1*time.Hour, "how often to re-run the extraction")
	flagCron     = flag.String("cron", "", "cron schedule of extraction runs, overrides -period")
	flagMetrics  = flag.String("metrics", ":9090", "address of the Prometheus metrics endpoint (empty to disable)")
	flagVerbose  = flag.Bool("verbose", false, "show DEBUG logging")
)

type daemon struct {
	cfg      *config.Config
	pipeline *pipeline.Pipeline
	outputs  *pipeline.Outputs
	metrics  *metrics.Metrics
	inputs   []string
}

func main() {
	flag.Parse()
	if *flagVerbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}
	if flag.NArg() == 0 {
		log.Fatal("no input files or directories given")
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

	p, err := pipeline.New(cfg, *flagWorkers)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	d := &daemon{
		cfg:      cfg,
		pipeline: p,
		metrics:  metrics.New(),
		inputs:   flag.Args(),
		outputs: &pipeline.Outputs{
			CSV:      *flagCSV,
			XLSX:     *flagXLSX,
			Feed:     *flagFeed,
			Readable: *flagReadable,
			Fleet:    cfg.Fleet(),
		},
	}

	if *flagDB {
		dsn, err := secret.FromEnvironment("DATABASE_URL")
		if err != nil {
			log.Fatal(err)
		}
		pool, err := store.Open(ctx, dsn)
		if err != nil {
			log.Fatal(err)
		}
		defer pool.Close()
		if err := store.Migrate(ctx, pool); err != nil {
			log.Fatal(err)
		}
		d.outputs.Store = store.NewRepository(pool)
	}

	if *flagMetrics != "" {
		server := serveMetrics(*flagMetrics, d.metrics)
		defer shutdown(server)
	}

	if *flagCron != "" {
		d.runCron(ctx, *flagCron)
	} else {
		d.runLoop(ctx, *flagPeriod)
	}
}

func serveMetrics(addr string, m *metrics.Metrics) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics server: %v", err)
		}
	}()
	slog.Info("Serving metrics", "addr", addr)
	return server
}

func shutdown(server *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Metrics server shutdown failure", "error", err)
	}
}

func (d *daemon) runLoop(ctx context.Context, period time.Duration) {
	b := backoff.Backoff{Period: period, MaxBackoffExponent: 6}
	for {
		if err := b.Wait(ctx); err != nil {
			slog.Info("Stopping", "reason", err)
			return
		}
		b.StartRun()
		if err := d.run(ctx); err != nil {
			nextTry := b.EndRun(backoff.Failure)
			slog.Error("Extraction failure", "error", err, "next_try", nextTry)
		} else {
			b.EndRun(backoff.Success)
		}
	}
}

func (d *daemon) runCron(ctx context.Context, spec string) {
	logger := cron.VerbosePrintfLogger(slog.NewLogLogger(slog.Default().Handler(), slog.LevelDebug))
	c := cron.New(
		cron.WithLocation(time2.PolishTimezone),
		cron.WithLogger(logger),
		cron.WithChain(jobWrappers(logger)...),
	)

	_, err := c.AddFunc(spec, func() {
		if err := d.run(ctx); err != nil {
			slog.Error("Extraction failure", "error", err)
		}
	})
	if err != nil {
		log.Fatalf("-cron %q: %v", spec, err)
	}

	c.Start()
	slog.Info("Scheduler started", "spec", spec)

	<-ctx.Done()
	slog.Info("Stopping", "reason", ctx.Err())
	<-c.Stop().Done()
}

// jobWrappers make a scheduled run wait for the previous one,
// as runs share output files and the database.
func jobWrappers(logger cron.Logger) []cron.JobWrapper {
	return []cron.JobWrapper{
		cron.Recover(logger),
		cron.SkipIfStillRunning(logger),
	}
}

func (d *daemon) run(ctx context.Context) (err error) {
	start := time.Now()
	var (
		res    *pipeline.Result
		stored int64
	)
	defer func() {
		var stats extract.Stats
		if res != nil {
			stats = res.Stats
		}
		d.metrics.ObserveRun(stats, int(stored), time.Since(start), err)
	}()

	files, err := pipeline.Inputs(d.inputs)
	if err != nil {
		return err
	}

	res, err = d.pipeline.Run(ctx, files)
	if err != nil {
		return err
	}

	today := time2.Today()
	outputs := d.outputs.ForDate(today, d.cfg.Matcher(time2.Fixed(today)))

	stored, err = outputs.Publish(ctx, res)
	if err != nil {
		return err
	}

	slog.Info(
		"Timetable extracted successfully",
		"documents", len(files),
		"result", res,
		"stored", stored,
		"took", time.Since(start),
	)
	return nil
}
