// SPDX-FileCopyrightText: 2026 Mikołaj Kuranowski
// SPDX-License-Identifier: MIT

package backoff

import (
	"context"
	"time"
)

const (
	Success = true
	Failure = false
)

// Backoff paces periodic extraction runs. After n consecutive failures
// the next run is delayed by Period * 2^(n-1), with the exponent capped
// at MaxBackoffExponent (if non-zero).
type Backoff struct {
	Period             time.Duration
	Failures           uint
	MaxBackoffExponent uint

	// Now is used instead of time.Now, if set.
	Now func() time.Time

	lastRun time.Time
	nextRun time.Time
}

func (b *Backoff) now() time.Time {
	if b.Now != nil {
		return b.Now()
	}
	return time.Now()
}

func (b *Backoff) StartRun() {
	b.lastRun = b.now()
}

func (b *Backoff) EndRun(success bool) time.Time {
	if success {
		b.Failures = 0
		b.nextRun = b.lastRun.Add(b.Period)
	} else {
		b.Failures++
		exponent := b.Failures - 1
		if b.MaxBackoffExponent > 0 && exponent > b.MaxBackoffExponent {
			exponent = b.MaxBackoffExponent
		}
		b.nextRun = b.lastRun.Add(b.Period << exponent)
	}
	return b.nextRun
}

func (b *Backoff) NextRun() time.Time {
	return b.nextRun
}

// Wait blocks until the next run is due, or ctx is done.
func (b *Backoff) Wait(ctx context.Context) error {
	d := b.nextRun.Sub(b.now())
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
