// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package clock abstracts wall-clock time so that every `created_at`,
`updated_at`, and `search_date` computation flows through one injected
authority instead of scattered `time.Now()` calls.

Services accept a [Clock] in their constructor the same way the rest of
the platform accepts a `*pgxpool.Pool` or a `*redis.Client` — this keeps
time-dependent business logic (daily-log ID composition, job timestamps,
notification ordering) deterministic under test.
*/
package clock

import "time"

// Date is a UTC calendar day with no time-of-day component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// String renders the date as YYYYMMDD, the format [Date] uses inside
// composite document IDs.
func (d Date) String() string {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Format("20060102")
}

// ISO renders the date as YYYY-MM-DD, the format used for CareRecord's
// `search_date` field.
func (d Date) ISO() string {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
}

// DateFromTime derives a [Date] from an instant, normalized to UTC.
func DateFromTime(t time.Time) Date {
	u := t.UTC()
	return Date{Year: u.Year(), Month: u.Month(), Day: u.Day()}
}

// Clock is the single authority for "now" used by every service that
// stamps `created_at`/`updated_at` or derives a calendar day.
type Clock interface {
	// Now returns the current instant, always UTC.
	Now() time.Time
	// Today returns the current calendar day, always UTC.
	Today() Date
}

// Real is the production [Clock], backed by the system clock.
type Real struct{}

// Now returns [time.Now] normalized to UTC.
func (Real) Now() time.Time { return time.Now().UTC() }

// Today returns today's [Date] in UTC.
func (Real) Today() Date { return DateFromTime(time.Now()) }

// Frozen is a test [Clock] that always reports the same instant until
// explicitly advanced, letting tests assert exact timestamps.
type Frozen struct {
	At time.Time
}

// NewFrozen constructs a [Frozen] clock pinned at t (normalized to UTC).
func NewFrozen(t time.Time) *Frozen {
	return &Frozen{At: t.UTC()}
}

// Now returns the frozen instant.
func (f *Frozen) Now() time.Time { return f.At }

// Today returns the frozen instant's calendar day.
func (f *Frozen) Today() Date { return DateFromTime(f.At) }

// Advance moves the frozen clock forward by d.
func (f *Frozen) Advance(d time.Duration) { f.At = f.At.Add(d) }
