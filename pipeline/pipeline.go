// SPDX-FileCopyrightText: 2026 Mikołaj Kuranowski
// SPDX-License-Identifier: MIT

// Package pipeline ties extraction, normalization and publishing together.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/kmtabor/KMTimetable/config"
	"github.com/kmtabor/KMTimetable/dateexpr"
	"github.com/kmtabor/KMTimetable/extract"
	"github.com/kmtabor/KMTimetable/pdftext"
	"github.com/kmtabor/KMTimetable/schedule"
	"golang.org/x/sync/errgroup"
)

// Result of a single extraction run over many documents.
type Result struct {
	// Rows contains every recovered row (including short ones),
	// with normalized dates.
	Rows []schedule.Row

	// Records contains the rows which could be fully parsed.
	Records []schedule.ScheduleRow

	Stats   extract.Stats
	Invalid int
}

type Pipeline struct {
	Extractor  *extract.Extractor
	Normalizer *dateexpr.Normalizer
	Layout     pdftext.Layout

	// Workers limits the number of documents read concurrently (0 = unlimited).
	Workers int
}

// New builds a Pipeline from the tables in cfg.
func New(cfg *config.Config, workers int) (*Pipeline, error) {
	ex, err := cfg.Extractor()
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		Extractor:  ex,
		Normalizer: cfg.Normalizer(),
		Layout:     cfg.PDFLayout(),
		Workers:    workers,
	}, nil
}

// Inputs expands directories into the PDF and text files they contain.
// Plain files are returned as-is. The result is sorted within each directory.
func Inputs(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			files = append(files, p)
			continue
		}

		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, err
		}

		var found []string
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			switch strings.ToLower(filepath.Ext(e.Name())) {
			case ".pdf", ".txt":
				found = append(found, filepath.Join(p, e.Name()))
			}
		}
		slices.Sort(found)
		files = append(files, found...)
	}
	return files, nil
}

// ReadPages returns the text of every page of a document.
// Text files hold pages separated by form feeds, like pdftotext output.
func (p *Pipeline) ReadPages(path string) ([]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".txt") {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return strings.Split(string(content), "\f"), nil
	}
	return pdftext.ReadFile(path, p.Layout)
}

// Run extracts rows from all documents. Documents are read in parallel,
// but rows are returned in input order.
func (p *Pipeline) Run(ctx context.Context, paths []string) (*Result, error) {
	documents := make([][]string, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	if p.Workers > 0 {
		g.SetLimit(p.Workers)
	}

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			slog.Debug("Reading document", "path", path)
			pages, err := p.ReadPages(path)
			if err != nil {
				return err
			}
			documents[i] = pages
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{}
	for i, pages := range documents {
		rows, stats := p.Extractor.ExtractPages(pages)
		slog.Debug("Extracted rows", "path", paths[i], "stats", stats)
		res.Stats.Add(stats)
		res.add(rows, p.Normalizer)
	}
	return res, nil
}

func (r *Result) add(rows []schedule.Row, n *dateexpr.Normalizer) {
	for _, row := range rows {
		if !row.Complete() {
			r.Rows = append(r.Rows, row)
			continue
		}

		row[schedule.ColDates] = n.Normalize(row[schedule.ColDates]).Text
		r.Rows = append(r.Rows, row)

		record, err := schedule.ParseRow(row)
		if err != nil {
			slog.Debug("Skipping invalid row", "error", err)
			r.Invalid++
			continue
		}
		r.Records = append(r.Records, record)
	}
}

func (r *Result) String() string {
	return fmt.Sprintf("%d rows, %d records, %d invalid", len(r.Rows), len(r.Records), r.Invalid)
}
