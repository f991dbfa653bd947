// Package fitness keeps the Cooper test log.
package fitness

import (
	"context"

	"github.com/palveluspolku/service-engine/generic"
)

// CooperTest is one 12-minute run.
type CooperTest struct {
	ID             string
	Date           generic.TimePoint
	DistanceMeters int
	Notes          string
}

// Validate checks a recorded run.
func (c CooperTest) Validate() error {
	if c.Date.IsZero() {
		return &generic.ValidationError{Field: "date", Message: "required"}
	}
	if c.DistanceMeters <= 0 {
		return &generic.ValidationError{Field: "distance_meters", Message: "must be positive"}
	}
	return nil
}

// Store persists Cooper tests.
type Store interface {
	ListCooperTests(ctx context.Context) ([]CooperTest, error)
	SaveCooperTest(ctx context.Context, t CooperTest) error
	DeleteCooperTest(ctx context.Context, id string) error
}

// Best returns the longest distance, or false for an empty log.
func Best(tests []CooperTest) (int, bool) {
	if len(tests) == 0 {
		return 0, false
	}
	best := tests[0].DistanceMeters
	for _, t := range tests[1:] {
		if t.DistanceMeters > best {
			best = t.DistanceMeters
		}
	}
	return best, true
}

// First returns the earliest test by date.
func First(tests []CooperTest) (CooperTest, bool) {
	if len(tests) == 0 {
		return CooperTest{}, false
	}
	first := tests[0]
	for _, t := range tests[1:] {
		if t.Date.Before(first.Date) {
			first = t
		}
	}
	return first, true
}

// Improvement is best minus first. It is only reported with at least two
// tests and a positive gain.
func Improvement(tests []CooperTest) (int, bool) {
	if len(tests) < 2 {
		return 0, false
	}
	best, _ := Best(tests)
	first, _ := First(tests)
	gain := best - first.DistanceMeters
	if gain <= 0 {
		return 0, false
	}
	return gain, true
}
