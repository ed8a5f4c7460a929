package domain

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrDuplicate is returned by Insert when the store rejects the row
	// on the booking_id unique key. Expected under concurrent writers;
	// counted as skipped, never as an error.
	ErrDuplicate = errors.New("reservation: duplicate booking_id")

	ErrNotFound = errors.New("reservation: not found")

	// ErrUnauthorized is how a BookingSource signals an authentication
	// failure. The sync engine aborts the remaining source units on it
	// and reports the condition distinctly from per-record errors.
	ErrUnauthorized = errors.New("booking source: unauthorized")
)

type ReservationRepository interface {
	// Write path. Insert never updates an existing row.
	Insert(ctx context.Context, r Reservation) error

	// Read paths
	List(ctx context.Context, f ListFilter) ([]Reservation, error)
	ListBookingIDs(ctx context.Context) (map[string]struct{}, error)
}

// BookingSource fetches the raw booking payloads for one property and
// date range. Auth failures come back as a sentinel the sync engine can
// test with errors.Is; any other error is a transport or server failure
// and the unit yields zero records.
type BookingSource interface {
	FetchBookings(ctx context.Context, hotelID string, from, to time.Time) ([]map[string]any, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// ListFilter narrows and never reorders: results are always sorted by
// check-in date descending.
type ListFilter struct {
	From     *time.Time
	To       *time.Time
	Status   string
	Property string
}

// UnitOutcome aggregates one source unit: one spreadsheet, or one
// (property, date-range) pair.
type UnitOutcome struct {
	Property string `json:"property"`
	Inserted int    `json:"inserted"`
	Skipped  int    `json:"skipped"`
	Errors   int    `json:"errors"`
}

// RunOutcome sums a whole sync run. AuthErr is set when the run was
// aborted at a unit boundary by an authentication failure; counters for
// units processed before the abort are preserved.
type RunOutcome struct {
	Units    []UnitOutcome `json:"units"`
	Inserted int           `json:"inserted"`
	Skipped  int           `json:"skipped"`
	Errors   int           `json:"errors"`
	AuthErr  error         `json:"-"`
}

// Add appends a unit outcome and folds it into the run totals.
func (o *RunOutcome) Add(u UnitOutcome) {
	o.Units = append(o.Units, u)
	o.Inserted += u.Inserted
	o.Skipped += u.Skipped
	o.Errors += u.Errors
}
