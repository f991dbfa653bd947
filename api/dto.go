/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. Domain types stay
  free of JSON tags; conversion happens here.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

WIRE FORMAT:
  Dates are YYYY-MM-DD strings. Money is a string with two decimals so
  clients never see float rounding. Optional values are null, not zero.

VALIDATION:
  Validation is done in handlers and domain packages. DTOs are pure
  data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"github.com/palveluspolku/service-engine/budget"
	"github.com/palveluspolku/service-engine/checklist"
	"github.com/palveluspolku/service-engine/fitness"
	"github.com/palveluspolku/service-engine/generic"
	"github.com/palveluspolku/service-engine/leave"
	"github.com/palveluspolku/service-engine/pay"
	"github.com/palveluspolku/service-engine/profile"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// PROFILE
// =============================================================================

// ProfileDTO is both the GET response and the PUT body.
type ProfileDTO struct {
	StartDate         *string `json:"start_date"`
	EndDate           *string `json:"end_date"`
	Garrison          string  `json:"garrison"`
	AppliesSupplement bool    `json:"applies_supplement"`
	LeaveAllowance    int     `json:"leave_allowance"`
}

func toProfileDTO(p profile.Profile) ProfileDTO {
	return ProfileDTO{
		StartDate:         dayPtr(p.StartDate),
		EndDate:           dayPtr(p.EndDate),
		Garrison:          p.Garrison,
		AppliesSupplement: p.AppliesSupplement,
		LeaveAllowance:    p.LeaveAllowance,
	}
}

// =============================================================================
// TIMELINE
// =============================================================================

// CountdownDTO is the home screen.
type CountdownDTO struct {
	Phase           string   `json:"phase"`
	CountdownDays   int      `json:"countdown_days"`
	DaysServed      int      `json:"days_served"`
	DaysRemaining   int      `json:"days_remaining"`
	DaysUntilStart  int      `json:"days_until_start"`
	TotalDays       int      `json:"total_days"`
	Progress        *float64 `json:"progress"`
	PercentComplete *int     `json:"percent_complete"`
	WeeksUntilStart *int     `json:"weeks_until_start"`
	StartDate       *string  `json:"start_date"`
	EndDate         *string  `json:"end_date"`
	Today           string   `json:"today"`
}

// MilestoneDTO reports a milestone check.
type MilestoneDTO struct {
	DaysUntilEnd int  `json:"days_until_end"`
	Milestone    *int `json:"milestone"`
	Fired        bool `json:"fired"`
}

// WidgetDTO is what the home-screen widget reads.
type WidgetDTO struct {
	Phase    string  `json:"phase"`
	DaysLeft *int    `json:"days_left"`
	EndDate  *string `json:"end_date"`
}

// =============================================================================
// PAY
// =============================================================================

// TierDTO is one row of the published rate table.
type TierDTO struct {
	Tier     int    `json:"tier"`
	FirstDay int    `json:"first_day"`
	LastDay  *int   `json:"last_day"`
	BaseRate string `json:"base_rate"`
	Rate     string `json:"rate"`
}

// TierEarningDTO is the earned amount within one tier.
type TierEarningDTO struct {
	Tier   int    `json:"tier"`
	Days   int    `json:"days"`
	Rate   string `json:"rate"`
	Amount string `json:"amount"`
}

// PaymentDTO is the next-payment estimate.
type PaymentDTO struct {
	Date             string `json:"date"`
	DaysSincePayment int    `json:"days_since_payment"`
	Amount           string `json:"amount"`
}

// PayDTO is the pay tracker.
type PayDTO struct {
	DaysServed        int              `json:"days_served"`
	AppliesSupplement bool             `json:"applies_supplement"`
	CurrentDailyRate  string           `json:"current_daily_rate"`
	TotalEarned       string           `json:"total_earned"`
	ProjectedTotal    *string          `json:"projected_total"`
	Breakdown         []TierEarningDTO `json:"breakdown"`
	NextPayment       PaymentDTO       `json:"next_payment"`
	Tiers             []TierDTO        `json:"tiers"`
}

// AccrualDTO is one day's credited allowance.
type AccrualDTO struct {
	Date   string `json:"date"`
	Amount string `json:"amount"`
	Reason string `json:"reason"`
}

// AccrualListDTO is the allowance ledger for a date window.
type AccrualListDTO struct {
	From     string       `json:"from"`
	To       string       `json:"to"`
	Total    string       `json:"total"`
	Accruals []AccrualDTO `json:"accruals"`
}

func toTierDTOs(p pay.Profile) []TierDTO {
	out := make([]TierDTO, 0, len(pay.Tiers))
	for _, t := range pay.Tiers {
		dto := TierDTO{
			Tier:     t.Number,
			FirstDay: t.FirstDay,
			BaseRate: t.BaseRate.Display(),
			Rate:     t.Rate(p).Display(),
		}
		if t.LastDay > 0 {
			last := t.LastDay
			dto.LastDay = &last
		}
		out = append(out, dto)
	}
	return out
}

func toTierEarningDTOs(rows []pay.TierEarning) []TierEarningDTO {
	out := make([]TierEarningDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, TierEarningDTO{
			Tier:   r.Tier.Number,
			Days:   r.Days,
			Rate:   r.Rate.Display(),
			Amount: r.Amount.Display(),
		})
	}
	return out
}

// =============================================================================
// BUDGET
// =============================================================================

// BudgetEntryDTO is one expense.
type BudgetEntryDTO struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	Amount   string `json:"amount"`
	Category string `json:"category"`
	Notes    string `json:"notes"`
}

// CreateBudgetEntryRequest accepts "12,50" as well as "12.50".
type CreateBudgetEntryRequest struct {
	Date     string `json:"date"`
	Amount   string `json:"amount"`
	Category string `json:"category"`
	Notes    string `json:"notes"`
}

// CategoryAmountDTO is one category's spend.
type CategoryAmountDTO struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
}

// BudgetSummaryDTO is the budget header.
type BudgetSummaryDTO struct {
	Earned     string              `json:"earned"`
	Spent      string              `json:"spent"`
	MonthSpent string              `json:"month_spent"`
	Left       string              `json:"left"`
	ByCategory []CategoryAmountDTO `json:"by_category"`
	Recent     []BudgetEntryDTO    `json:"recent"`
	Categories []string            `json:"categories"`
}

func toBudgetEntryDTOs(entries []budget.Entry) []BudgetEntryDTO {
	out := make([]BudgetEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, BudgetEntryDTO{
			ID:       e.ID,
			Date:     e.Date.String(),
			Amount:   e.Amount.Display(),
			Category: e.Category,
			Notes:    e.Notes,
		})
	}
	return out
}

// =============================================================================
// LEAVE
// =============================================================================

// LeaveDayDTO is one day of leave.
type LeaveDayDTO struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	Type     string `json:"type"`
	Approved bool   `json:"approved"`
	Notes    string `json:"notes"`
}

// CreateLeaveRequest covers an inclusive date range. EndDate defaults to
// StartDate.
type CreateLeaveRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Type      string `json:"type"`
	Approved  bool   `json:"approved"`
	Notes     string `json:"notes"`
}

// LeaveSummaryDTO is the leave calculator.
type LeaveSummaryDTO struct {
	Allowance int           `json:"allowance"`
	Used      int           `json:"used"`
	Remaining int           `json:"remaining"`
	Upcoming  []LeaveDayDTO `json:"upcoming"`
	Past      []LeaveDayDTO `json:"past"`
}

func toLeaveDTOs(days []leave.Day) []LeaveDayDTO {
	out := make([]LeaveDayDTO, 0, len(days))
	for _, d := range days {
		out = append(out, LeaveDayDTO{
			ID:       d.ID,
			Date:     d.Date.String(),
			Type:     string(d.Type),
			Approved: d.Approved,
			Notes:    d.Notes,
		})
	}
	return out
}

// =============================================================================
// CHECKLISTS
// =============================================================================

// ChecklistItemDTO is one row.
type ChecklistItemDTO struct {
	ID             string `json:"id"`
	Kind           string `json:"kind"`
	Title          string `json:"title"`
	Category       string `json:"category"`
	Done           bool   `json:"done"`
	Custom         bool   `json:"custom"`
	DueWeeksBefore *int   `json:"due_weeks_before"`
	IsDue          bool   `json:"is_due"`
}

// ChecklistSectionDTO groups rows under a category.
type ChecklistSectionDTO struct {
	Category string             `json:"category"`
	Items    []ChecklistItemDTO `json:"items"`
}

// ProgressDTO is done over total.
type ProgressDTO struct {
	Done     int     `json:"done"`
	Total    int     `json:"total"`
	Fraction float64 `json:"fraction"`
}

// ChecklistDTO is a whole list.
type ChecklistDTO struct {
	Kind            string                `json:"kind"`
	Progress        ProgressDTO           `json:"progress"`
	WeeksUntilStart *int                  `json:"weeks_until_start"`
	Sections        []ChecklistSectionDTO `json:"sections"`
}

// CreateChecklistItemRequest adds a custom row.
type CreateChecklistItemRequest struct {
	Title          string `json:"title"`
	Category       string `json:"category"`
	DueWeeksBefore *int   `json:"due_weeks_before"`
}

func toChecklistItemDTO(it checklist.Item, weeks int, hasWeeks bool) ChecklistItemDTO {
	return ChecklistItemDTO{
		ID:             it.ID,
		Kind:           string(it.Kind),
		Title:          it.Title,
		Category:       it.Category,
		Done:           it.Done,
		Custom:         it.Custom,
		DueWeeksBefore: it.DueWeeksBefore,
		IsDue:          hasWeeks && it.IsDue(weeks),
	}
}

// =============================================================================
// EQUIPMENT
// =============================================================================

// EquipmentDTO is one item of kit. It is also the PUT/POST body; ID is
// ignored on input.
type EquipmentDTO struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	SerialNumber string  `json:"serial_number"`
	Issued       bool    `json:"issued"`
	Returned     bool    `json:"returned"`
	IssueDate    *string `json:"issue_date"`
	ReturnDate   *string `json:"return_date"`
	Notes        string  `json:"notes"`
}

// EquipmentSectionDTO groups kit under a category.
type EquipmentSectionDTO struct {
	Category string         `json:"category"`
	Items    []EquipmentDTO `json:"items"`
}

// EquipmentListDTO is the inventory screen.
type EquipmentListDTO struct {
	Total    int                   `json:"total"`
	InHand   int                   `json:"in_hand"`
	Returned int                   `json:"returned"`
	Sections []EquipmentSectionDTO `json:"sections"`
}

func toEquipmentDTO(e checklist.Equipment) EquipmentDTO {
	return EquipmentDTO{
		ID:           e.ID,
		Name:         e.Name,
		Category:     e.Category,
		SerialNumber: e.SerialNumber,
		Issued:       e.Issued,
		Returned:     e.Returned,
		IssueDate:    dayPtr(e.IssueDate),
		ReturnDate:   dayPtr(e.ReturnDate),
		Notes:        e.Notes,
	}
}

// =============================================================================
// FITNESS
// =============================================================================

// CooperTestDTO is one run.
type CooperTestDTO struct {
	ID             string `json:"id"`
	Date           string `json:"date"`
	DistanceMeters int    `json:"distance_meters"`
	Notes          string `json:"notes"`
}

// CreateCooperTestRequest records a run.
type CreateCooperTestRequest struct {
	Date           string `json:"date"`
	DistanceMeters int    `json:"distance_meters"`
	Notes          string `json:"notes"`
}

// CooperListDTO is the test log with its headline numbers.
type CooperListDTO struct {
	Tests       []CooperTestDTO `json:"tests"`
	Best        *int            `json:"best"`
	First       *int            `json:"first"`
	Improvement *int            `json:"improvement"`
}

func toCooperDTOs(tests []fitness.CooperTest) []CooperTestDTO {
	out := make([]CooperTestDTO, 0, len(tests))
	for _, c := range tests {
		out = append(out, CooperTestDTO{
			ID:             c.ID,
			Date:           c.Date.String(),
			DistanceMeters: c.DistanceMeters,
			Notes:          c.Notes,
		})
	}
	return out
}

// =============================================================================
// STATS
// =============================================================================

// StatsDTO is the end-of-service summary.
type StatsDTO struct {
	DaysServed        int    `json:"days_served"`
	TotalDays         int    `json:"total_days"`
	TotalEarned       string `json:"total_earned"`
	CurrentDailyRate  string `json:"current_daily_rate"`
	CoffeeEquivalent  int    `json:"coffee_equivalent"`
	EquipmentCount    int    `json:"equipment_count"`
	LeaveUsed         int    `json:"leave_used"`
	BestCooper        *int   `json:"best_cooper"`
	CooperImprovement *int   `json:"cooper_improvement"`
}

// =============================================================================
// HELPERS
// =============================================================================

func dayPtr(tp *generic.TimePoint) *string {
	if tp == nil {
		return nil
	}
	s := tp.String()
	return &s
}

func optInt(n int, ok bool) *int {
	if !ok {
		return nil
	}
	return &n
}
