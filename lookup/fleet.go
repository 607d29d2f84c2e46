// SPDX-FileCopyrightText: 2026 Mikołaj Kuranowski
// SPDX-License-Identifier: MIT

package lookup

import (
	"maps"
	"strings"
)

// Fleet maps rolling stock codes, as printed in the timetables,
// to names shown to passengers.
type Fleet struct {
	names   map[string]string
	aliases map[string]string
}

// DefaultFleetNames returns display names of KM rolling stock.
func DefaultFleetNames() map[string]string {
	return map[string]string{
		"EN57":      "EN57",
		"EN57AKM":   "EN57AKM",
		"EN57AKMw1": "EN57AKM (modernizowany)",
		"EN57ALwKM": "EN57AL",
		"EN71":      "EN71",
		"EN76":      "Elf (EN76)",
		"22WEd":     "Elf 2 (22WEd)",
		"45WEkm":    "Impuls (45WEkm)",
		"EU47":      "TRAXX (EU47) + wagony piętrowe",
		"111Eb":     "Gama (111Eb) + wagony piętrowe",
	}
}

// DefaultFleetAliases returns the codes which KM timetables
// print differently than the vehicle registry.
func DefaultFleetAliases() map[string]string {
	return map[string]string{
		"EN57ALKM": "EN57ALwKM",
		"EN57AKM1": "EN57AKMw1",
		"45WE":     "45WEkm",
		"111E":     "111Eb",
	}
}

func DefaultFleet() *Fleet {
	return NewFleet(DefaultFleetNames(), DefaultFleetAliases())
}

// NewFleet creates a Fleet. Both tables are copied.
func NewFleet(names, aliases map[string]string) *Fleet {
	f := &Fleet{names: maps.Clone(names), aliases: maps.Clone(aliases)}
	if f.names == nil {
		f.names = map[string]string{}
	}
	if f.aliases == nil {
		f.aliases = map[string]string{}
	}
	return f
}

// Code returns the canonical code of a model.
func (f *Fleet) Code(model string) string {
	model = strings.TrimSpace(model)
	if canonical, ok := f.aliases[model]; ok {
		return canonical
	}
	return model
}

// Name returns the display name of a model, or its code if unknown.
func (f *Fleet) Name(model string) string {
	code := f.Code(model)
	if name, ok := f.names[code]; ok {
		return name
	}
	return code
}
