// SPDX-FileCopyrightText: 2026 Mikołaj Kuranowski
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kmtabor/KMTimetable/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRowsFromCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "km.csv")
	require.NoError(t, schedule.WriteCSVFile(path, []schedule.Row{
		{"19311", "Warszawa Wschodnia", "5:03", "Radom", "6:59", "EN57", "1", "01.06 - 05.06"},
		{"19313", "Radom"},
	}))
	*flagCSV = path

	rows, err := loadRows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"19311"}, rows[0].TrainNumbers)
}

func TestLoadRowsMissingCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.csv")
	*flagCSV = path

	_, err := loadRows(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, 1, strings.Count(err.Error(), path))
}
