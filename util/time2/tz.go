// SPDX-FileCopyrightText: 2026 Mikołaj Kuranowski
// SPDX-License-Identifier: MIT

package time2

import (
	"fmt"
	"time"
)

// PolishTimezone is the zone all KM timetables are published in.
var PolishTimezone *time.Location

func init() {
	var err error
	PolishTimezone, err = time.LoadLocation("Europe/Warsaw")
	if err != nil {
		panic(fmt.Errorf("failed to load Europe/Warsaw timezone: %w", err))
	}
}

// Clock returns the current service date. Tests replace it with a fixed date.
type Clock func() Date

// Fixed returns a Clock always reporting d.
func Fixed(d Date) Clock {
	return func() Date { return d }
}
