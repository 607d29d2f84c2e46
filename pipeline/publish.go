// SPDX-FileCopyrightText: 2026 Mikołaj Kuranowski
// SPDX-License-Identifier: MIT

package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kmtabor/KMTimetable/dateexpr"
	"github.com/kmtabor/KMTimetable/fact"
	"github.com/kmtabor/KMTimetable/lookup"
	"github.com/kmtabor/KMTimetable/schedule"
	"github.com/kmtabor/KMTimetable/store"
	"github.com/kmtabor/KMTimetable/util/time2"
)

// Outputs selects where the result of a run goes. Empty fields are skipped.
type Outputs struct {
	CSV  string
	XLSX string

	Store *store.Repository

	// Feed is the path prefix of the assignment feed
	// (Feed + ".pb" and Feed + ".json").
	Feed     string
	FeedDate time2.Date
	Readable bool
	Matcher  *dateexpr.Matcher
	Fleet    *lookup.Fleet
}

// ForDate returns a copy of o publishing the feed of the given service date.
// o itself is not modified, so concurrent runs may share it.
func (o *Outputs) ForDate(date time2.Date, m *dateexpr.Matcher) *Outputs {
	c := *o
	c.FeedDate = date
	c.Matcher = m
	return &c
}

// Publish writes the result to all configured outputs.
// Returns the number of records stored in the database.
func (o *Outputs) Publish(ctx context.Context, res *Result) (stored int64, err error) {
	if o.CSV != "" {
		slog.Debug("Writing CSV", "path", o.CSV)
		if err := schedule.WriteCSVFile(o.CSV, res.Rows); err != nil {
			return 0, fmt.Errorf("%s: %w", o.CSV, err)
		}
	}

	if o.XLSX != "" {
		slog.Debug("Writing XLSX", "path", o.XLSX)
		if err := schedule.WriteXLSXFile(o.XLSX, res.Rows); err != nil {
			return 0, fmt.Errorf("%s: %w", o.XLSX, err)
		}
	}

	if o.Store != nil {
		slog.Debug("Replacing stored timetable", "records", len(res.Records))
		stored, err = o.Store.ReplaceAll(ctx, res.Records)
		if err != nil {
			return 0, fmt.Errorf("store: %w", err)
		}
		if err := o.Store.RecordRun(ctx, res.Stats, stored); err != nil {
			return stored, fmt.Errorf("store: %w", err)
		}
	}

	if o.Feed != "" {
		if err := o.writeFeed(res); err != nil {
			return stored, err
		}
	}

	return stored, nil
}

func (o *Outputs) writeFeed(res *Result) error {
	ix := lookup.NewIndex(res.Records, o.Matcher, o.Fleet)
	facts := fact.Build(ix, o.FeedDate, time.Now())
	slog.Debug("Dumping assignments", "date", o.FeedDate, "facts", facts.TotalFacts())

	if err := facts.DumpGTFSFile(o.Feed+".pb", o.Readable); err != nil {
		return fmt.Errorf("%s.pb: %w", o.Feed, err)
	}
	if err := facts.DumpJSONFile(o.Feed+".json", o.Readable); err != nil {
		return fmt.Errorf("%s.json: %w", o.Feed, err)
	}
	return nil
}
