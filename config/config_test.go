// SPDX-FileCopyrightText: 2026 Mikołaj Kuranowski
// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/kmtabor/KMTimetable/util/time2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()

	assert.Len(t, c.Holidays, 10)
	assert.Len(t, c.Months, 12)
	assert.Equal(t, "right", c.MonthInheritance)
	assert.Contains(t, c.StationMarkers, "PERON")
	assert.Equal(t, 6.0, c.Layout.CellGap)

	assert.True(t, c.Calendar().IsHoliday(time2.Date{Y: 2026, M: 11, D: 11}))
	assert.Equal(t, "03.12", c.Normalizer().Normalize("3 XII").Text)
	assert.Equal(t, "Impuls (45WEkm)", c.Fleet().Name("45WE"))

	_, err := c.Extractor()
	assert.NoError(t, err)
}

func TestParse(t *testing.T) {
	c, err := Parse([]byte(`
holidays:
  "1.01": Nowy Rok
  "2.05": Dzień Flagi
movableFeasts: true
monthInheritance: left
fleet:
  EN57: Kibel
stationMarkers: [PERON, LOTNISKO, PRZYSTANEK]
layout:
  lineTolerance: 1.5
  cellGap: 8
  wordGap: 0.25
`))
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"1.01": "Nowy Rok", "2.05": "Dzień Flagi"}, c.Holidays)
	assert.Len(t, c.Months, 12, "months fall back to defaults")
	assert.Equal(t, "Kibel", c.Fleet().Name("EN57"))
	assert.Equal(t, "EN57ALwKM", c.Fleet().Code("EN57ALKM"), "aliases fall back to defaults")
	assert.Equal(t, 8.0, c.PDFLayout().CellGap)

	cal := c.Calendar()
	assert.True(t, cal.IsHoliday(time2.Date{Y: 2026, M: 5, D: 2}))
	assert.False(t, cal.IsHoliday(time2.Date{Y: 2026, M: 11, D: 11}))
	assert.True(t, cal.IsHoliday(time2.Date{Y: 2026, M: 6, D: 4}), "Corpus Christi")

	assert.Equal(t, "01.06 - 05.06, 07.07", c.Normalizer().Normalize("1 VI - 5, 7 VII").Text)
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"holiday key", `holidays: {"2026-01-01": Nowy Rok}`},
		{"holiday name", `holidays: {"1.01": ""}`},
		{"month number", `months: {XIII: 13}`},
		{"inheritance", `monthInheritance: up`},
		{"marker", `stationMarkers: [""]`},
		{"layout", `layout: {cellGap: -1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			var verr validator.ValidationErrors
			assert.ErrorAs(t, err, &verr)
		})
	}

	_, err := Parse([]byte("holidays: [1, 2"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)

	path := filepath.Join(t.TempDir(), "km.yaml")
	require.NoError(t, os.WriteFile(path, []byte("monthInheritance: left\n"), 0o644))
	c, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "left", c.MonthInheritance)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("KM_TEST_LOAD_ENV=from-file\n"), 0o600))

	t.Setenv("KM_TEST_LOAD_ENV", "")
	os.Unsetenv("KM_TEST_LOAD_ENV")

	require.NoError(t, LoadEnv(path, filepath.Join(dir, "missing.env")))
	assert.Equal(t, "from-file", os.Getenv("KM_TEST_LOAD_ENV"))
}
