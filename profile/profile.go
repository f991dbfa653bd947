/*
Package profile holds the single per-install user profile.

PURPOSE:
  The profile is the write boundary for the service dates. The timeline
  and pay packages trust their inputs; ordering of start and end is
  checked here before anything is stored.

SEE ALSO:
  - timeline/timeline.go: ServicePeriod
  - pay/tiers.go: Profile (supplement flag)
*/
package profile

import (
	"context"
	"strings"

	"github.com/palveluspolku/service-engine/generic"
	"github.com/palveluspolku/service-engine/pay"
	"github.com/palveluspolku/service-engine/timeline"
)

// Profile is the conscript's settings.
type Profile struct {
	StartDate         *generic.TimePoint
	EndDate           *generic.TimePoint
	Garrison          string
	AppliesSupplement bool
	LeaveAllowance    int
}

// Store loads and saves the profile. GetProfile returns an empty profile,
// not an error, before the first save.
type Store interface {
	GetProfile(ctx context.Context) (Profile, error)
	SaveProfile(ctx context.Context, p Profile) error
}

// Validate checks the profile before it is saved.
func (p Profile) Validate() error {
	if err := p.Period().Validate(); err != nil {
		return err
	}
	if p.LeaveAllowance < 0 {
		return &generic.ValidationError{Field: "leave_allowance", Message: "must not be negative"}
	}
	return nil
}

// Normalize trims free text.
func (p Profile) Normalize() Profile {
	p.Garrison = strings.TrimSpace(p.Garrison)
	return p
}

// Period is the service window for the timeline.
func (p Profile) Period() timeline.ServicePeriod {
	return timeline.ServicePeriod{StartDate: p.StartDate, EndDate: p.EndDate}
}

// PayProfile is the pay-relevant slice of the profile.
func (p Profile) PayProfile() pay.Profile {
	return pay.Profile{AppliesSupplement: p.AppliesSupplement}
}

// IsConfigured reports whether both service dates are set.
func (p Profile) IsConfigured() bool {
	return p.StartDate != nil && p.EndDate != nil
}
