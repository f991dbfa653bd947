package api

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/palveluspolku/service-engine/checklist"
	"github.com/palveluspolku/service-engine/fitness"
	"github.com/palveluspolku/service-engine/generic"
	"github.com/palveluspolku/service-engine/leave"
	"github.com/palveluspolku/service-engine/pay"
	"github.com/palveluspolku/service-engine/profile"
	"github.com/palveluspolku/service-engine/timeline"
)

// coffeePrice is the unit of the stats screen's "cups of coffee".
var coffeePrice = decimal.RequireFromString("3.00")

// =============================================================================
// PROFILE
// =============================================================================

// GetProfile returns the profile.
// GET /api/profile
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.Store.GetProfile(r.Context())
	if err != nil {
		h.fail(w, r, "Failed to load profile", err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileDTO(p))
}

// UpdateProfile replaces the profile after checking start <= end.
// PUT /api/profile
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req ProfileDTO
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, "Invalid request body", err)
		return
	}

	start, err := h.parseOptionalDate("start_date", req.StartDate)
	if err != nil {
		h.fail(w, r, "Invalid start date", err)
		return
	}
	end, err := h.parseOptionalDate("end_date", req.EndDate)
	if err != nil {
		h.fail(w, r, "Invalid end date", err)
		return
	}

	p := profile.Profile{
		StartDate:         start,
		EndDate:           end,
		Garrison:          req.Garrison,
		AppliesSupplement: req.AppliesSupplement,
		LeaveAllowance:    req.LeaveAllowance,
	}.Normalize()
	if err := p.Validate(); err != nil {
		h.fail(w, r, "Invalid profile", err)
		return
	}

	if err := h.Store.SaveProfile(r.Context(), p); err != nil {
		h.fail(w, r, "Failed to save profile", err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileDTO(p))
}

// =============================================================================
// TIMELINE
// =============================================================================

// GetCountdown returns the home screen numbers.
// GET /api/countdown
func (h *Handler) GetCountdown(w http.ResponseWriter, r *http.Request) {
	p, err := h.Store.GetProfile(r.Context())
	if err != nil {
		h.fail(w, r, "Failed to load profile", err)
		return
	}

	now := h.now()
	period := p.Period()
	cd := timeline.CountdownAt(period, now)

	dto := CountdownDTO{
		Phase:          string(cd.Phase),
		CountdownDays:  cd.Days,
		DaysServed:     timeline.DaysServed(period, now),
		DaysRemaining:  timeline.DaysUntilEnd(period, now),
		DaysUntilStart: timeline.DaysUntilStart(period, now),
		TotalDays:      timeline.TotalDays(period),
		StartDate:      dayPtr(p.StartDate),
		EndDate:        dayPtr(p.EndDate),
		Today:          generic.DayOf(now).String(),
	}
	if frac, ok := timeline.ProgressFraction(period, now); ok {
		pct := timeline.PercentComplete(period, now)
		dto.Progress = &frac
		dto.PercentComplete = &pct
	}
	dto.WeeksUntilStart = optInt(timeline.WeeksUntilStart(period, now))

	writeJSON(w, http.StatusOK, dto)
}

// CheckMilestone fires today's milestone if it has not fired before.
// POST /api/milestones/check
func (h *Handler) CheckMilestone(w http.ResponseWriter, r *http.Request) {
	p, err := h.Store.GetProfile(r.Context())
	if err != nil {
		h.fail(w, r, "Failed to load profile", err)
		return
	}

	now := h.now()
	days := timeline.DaysUntilEnd(p.Period(), now)

	m, fired, err := h.Milestones.Check(r.Context(), days, now)
	if err != nil {
		h.fail(w, r, "Failed to check milestone", err)
		return
	}
	writeJSON(w, http.StatusOK, MilestoneDTO{
		DaysUntilEnd: days,
		Milestone:    optInt(m, fired),
		Fired:        fired,
	})
}

// GetWidget returns what the home-screen widget shows.
// GET /api/widget
func (h *Handler) GetWidget(w http.ResponseWriter, r *http.Request) {
	p, err := h.Store.GetProfile(r.Context())
	if err != nil {
		h.fail(w, r, "Failed to load profile", err)
		return
	}

	now := h.now()
	period := p.Period()
	writeJSON(w, http.StatusOK, WidgetDTO{
		Phase:    string(timeline.CurrentPhase(period, now)),
		DaysLeft: optInt(timeline.DaysLeft(period, now)),
		EndDate:  dayPtr(p.EndDate),
	})
}

// =============================================================================
// PAY
// =============================================================================

// GetPay returns the pay tracker.
// GET /api/pay
func (h *Handler) GetPay(w http.ResponseWriter, r *http.Request) {
	p, err := h.Store.GetProfile(r.Context())
	if err != nil {
		h.fail(w, r, "Failed to load profile", err)
		return
	}

	now := h.now()
	period := p.Period()
	pp := p.PayProfile()
	served := timeline.DaysServed(period, now)
	next := pay.NextPaymentEstimate(period, pp, now)

	dto := PayDTO{
		DaysServed:        served,
		AppliesSupplement: pp.AppliesSupplement,
		CurrentDailyRate:  pay.CurrentDailyRate(period, pp, now).Display(),
		TotalEarned:       pay.TotalEarned(period, pp, now).Display(),
		Breakdown:         toTierEarningDTOs(pay.Breakdown(served, pp)),
		NextPayment: PaymentDTO{
			Date:             next.Date.String(),
			DaysSincePayment: next.DaysSincePayment,
			Amount:           next.Amount.Display(),
		},
		Tiers: toTierDTOs(pp),
	}
	if p.IsConfigured() {
		projected := pay.ProjectedTotal(period, pp).Display()
		dto.ProjectedTotal = &projected
	}
	writeJSON(w, http.StatusOK, dto)
}

// GetPayAccruals lists the daily allowance credits in a window.
// GET /api/pay/accruals?from=YYYY-MM-DD&to=YYYY-MM-DD
//
// to defaults to today. from defaults to the service start, moved forward
// when needed so the default window stays within generic.MaxPeriodDays.
func (h *Handler) GetPayAccruals(w http.ResponseWriter, r *http.Request) {
	p, err := h.Store.GetProfile(r.Context())
	if err != nil {
		h.fail(w, r, "Failed to load profile", err)
		return
	}
	if p.StartDate == nil {
		h.fail(w, r, "Service start date is not set", &generic.ValidationError{Field: "start_date", Message: "not set"})
		return
	}

	to := generic.DayOf(h.now())
	if s := r.URL.Query().Get("to"); s != "" {
		if to, err = h.parseDate("to", s); err != nil {
			h.fail(w, r, "Invalid to date", err)
			return
		}
	}
	from := *p.StartDate
	if earliest := to.AddDays(1 - generic.MaxPeriodDays); from.Before(earliest) {
		from = earliest
	}
	if s := r.URL.Query().Get("from"); s != "" {
		if from, err = h.parseDate("from", s); err != nil {
			h.fail(w, r, "Invalid from date", err)
			return
		}
	}

	window := generic.Period{Start: from, End: to}
	if err := window.ValidateWithin(generic.MaxPeriodDays); err != nil {
		h.fail(w, r, "Invalid date window", err)
		return
	}

	schedule := &pay.Accrual{Period: p.Period(), Profile: p.PayProfile()}
	events := schedule.GenerateAccruals(from, to)

	dto := AccrualListDTO{
		From:     from.String(),
		To:       to.String(),
		Total:    generic.TotalAccrued(events, generic.UnitEUR, to).Display(),
		Accruals: make([]AccrualDTO, 0, len(events)),
	}
	for _, e := range events {
		dto.Accruals = append(dto.Accruals, AccrualDTO{
			Date:   e.At.String(),
			Amount: e.Amount.Display(),
			Reason: e.Reason,
		})
	}
	writeJSON(w, http.StatusOK, dto)
}

// =============================================================================
// STATS
// =============================================================================

// GetStats returns the service summary.
// GET /api/stats
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	p, err := h.Store.GetProfile(ctx)
	if err != nil {
		h.fail(w, r, "Failed to load profile", err)
		return
	}
	kit, err := h.Store.ListEquipment(ctx)
	if err != nil {
		h.fail(w, r, "Failed to list equipment", err)
		return
	}
	runs, err := h.Store.ListCooperTests(ctx)
	if err != nil {
		h.fail(w, r, "Failed to list cooper tests", err)
		return
	}
	days, err := h.Store.ListLeaveDays(ctx)
	if err != nil {
		h.fail(w, r, "Failed to list leave", err)
		return
	}

	now := h.now()
	period := p.Period()
	pp := p.PayProfile()
	earned := pay.TotalEarned(period, pp, now)

	writeJSON(w, http.StatusOK, StatsDTO{
		DaysServed:        timeline.DaysServed(period, now),
		TotalDays:         timeline.TotalDays(period),
		TotalEarned:       earned.Display(),
		CurrentDailyRate:  pay.CurrentDailyRate(period, pp, now).Display(),
		CoffeeEquivalent:  int(earned.Value.Div(coffeePrice).IntPart()),
		EquipmentCount:    checklist.CountInventory(kit).Total,
		LeaveUsed:         leave.Used(days),
		BestCooper:        optInt(fitness.Best(runs)),
		CooperImprovement: optInt(fitness.Improvement(runs)),
	})
}

// earnedSoFar is shared by the budget summary.
func (h *Handler) earnedSoFar(p profile.Profile) generic.Amount {
	return pay.TotalEarned(p.Period(), p.PayProfile(), h.now())
}
