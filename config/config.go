// SPDX-FileCopyrightText: 2026 Mikołaj Kuranowski
// SPDX-License-Identifier: MIT

// Package config loads the static tables (holidays, months, fleet names,
// layout vocabulary) from an optional YAML file. Anything left out of
// the file falls back to the built-in defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kmtabor/KMTimetable/calendar"
	"github.com/kmtabor/KMTimetable/dateexpr"
	"github.com/kmtabor/KMTimetable/extract"
	"github.com/kmtabor/KMTimetable/lookup"
	"github.com/kmtabor/KMTimetable/pdftext"
	"github.com/kmtabor/KMTimetable/util/time2"
	"gopkg.in/yaml.v3"
)

var dayMonthRegex = regexp.MustCompile(`^(?:[1-9]|[12][0-9]|3[01])\.(?:0[1-9]|1[0-2])$`)

type Layout struct {
	LineTolerance float64 `yaml:"lineTolerance" validate:"gte=0"`
	CellGap       float64 `yaml:"cellGap" validate:"gte=0"`
	WordGap       float64 `yaml:"wordGap" validate:"gte=0"`
}

type Config struct {
	Holidays         map[string]string `yaml:"holidays" validate:"omitempty,dive,keys,daymonth,endkeys,required"`
	MovableFeasts    bool              `yaml:"movableFeasts"`
	Months           map[string]uint8  `yaml:"months" validate:"omitempty,dive,keys,required,endkeys,min=1,max=12"`
	MonthInheritance string            `yaml:"monthInheritance" validate:"omitempty,oneof=right left"`
	Fleet            map[string]string `yaml:"fleet" validate:"omitempty,dive,keys,required,endkeys,required"`
	FleetAliases     map[string]string `yaml:"fleetAliases" validate:"omitempty,dive,keys,required,endkeys,required"`
	Keywords         []string          `yaml:"keywords" validate:"omitempty,dive,required"`
	StationMarkers   []string          `yaml:"stationMarkers" validate:"omitempty,dive,required"`
	Layout           *Layout           `yaml:"layout"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	err := v.RegisterValidation("daymonth", func(fl validator.FieldLevel) bool {
		return dayMonthRegex.MatchString(fl.Field().String())
	})
	if err != nil {
		panic(err)
	}
	return v
}

// Default returns the built-in configuration.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Parse decodes and validates a YAML document.
func Parse(data []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	if err := newValidator().Struct(&c); err != nil {
		return nil, err
	}
	c.applyDefaults()
	return &c, nil
}

// Load reads the configuration from path. An empty path means Default.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// LoadEnv loads variables from .env files, if they exist.
// Variables already set in the environment take precedence.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Holidays == nil {
		c.Holidays = calendar.DefaultHolidays()
	}
	if c.Months == nil {
		c.Months = dateexpr.DefaultMonths()
	}
	if c.MonthInheritance == "" {
		c.MonthInheritance = dateexpr.InheritFromRight.String()
	}
	if c.Fleet == nil {
		c.Fleet = lookup.DefaultFleetNames()
	}
	if c.FleetAliases == nil {
		c.FleetAliases = lookup.DefaultFleetAliases()
	}
	if c.Keywords == nil {
		c.Keywords = extract.DefaultKeywords()
	}
	if c.StationMarkers == nil {
		c.StationMarkers = extract.DefaultStationMarkers()
	}
	if c.Layout == nil {
		l := Layout(pdftext.DefaultLayout())
		c.Layout = &l
	}
}

func (c *Config) Calendar() *calendar.Calendar {
	var opts []calendar.Option
	if c.MovableFeasts {
		opts = append(opts, calendar.WithMovableFeasts())
	}
	return calendar.New(c.Holidays, opts...)
}

func (c *Config) Parser() *dateexpr.Parser {
	inherit, _ := dateexpr.ParseInheritance(c.MonthInheritance)
	return dateexpr.NewParser(c.Months, inherit)
}

func (c *Config) Normalizer() *dateexpr.Normalizer {
	return dateexpr.NewNormalizer(c.Parser())
}

func (c *Config) Matcher(today time2.Clock) *dateexpr.Matcher {
	return dateexpr.NewMatcher(c.Parser(), c.Calendar(), today)
}

func (c *Config) Extractor() (*extract.Extractor, error) {
	return extract.New(extract.Options{Keywords: c.Keywords, StationMarkers: c.StationMarkers})
}

func (c *Config) Fleet() *lookup.Fleet {
	return lookup.NewFleet(c.Fleet, c.FleetAliases)
}

func (c *Config) PDFLayout() pdftext.Layout {
	return pdftext.Layout(*c.Layout)
}
