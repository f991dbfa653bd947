package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/palveluspolku/service-engine/budget"
	"github.com/palveluspolku/service-engine/generic"
	"github.com/palveluspolku/service-engine/leave"
)

// recentLimit is how many expenses the budget summary lists.
const recentLimit = 5

// =============================================================================
// BUDGET
// =============================================================================

// ListBudget returns every expense, oldest first.
// GET /api/budget
func (h *Handler) ListBudget(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Store.ListBudgetEntries(r.Context())
	if err != nil {
		h.fail(w, r, "Failed to list budget", err)
		return
	}
	writeJSON(w, http.StatusOK, toBudgetEntryDTOs(entries))
}

// CreateBudgetEntry records an expense.
// POST /api/budget
func (h *Handler) CreateBudgetEntry(w http.ResponseWriter, r *http.Request) {
	var req CreateBudgetEntryRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, "Invalid request body", err)
		return
	}

	amount, err := budget.ParseAmount(req.Amount)
	if err != nil {
		h.fail(w, r, "Invalid amount", err)
		return
	}
	day := generic.DayOf(h.now())
	if req.Date != "" {
		if day, err = h.parseDate("date", req.Date); err != nil {
			h.fail(w, r, "Invalid date", err)
			return
		}
	}

	e := budget.Entry{
		ID:       h.NewID(),
		Date:     day,
		Amount:   amount,
		Category: strings.TrimSpace(req.Category),
		Notes:    strings.TrimSpace(req.Notes),
	}
	if err := e.Validate(); err != nil {
		h.fail(w, r, "Invalid budget entry", err)
		return
	}
	if err := h.Store.SaveBudgetEntry(r.Context(), e); err != nil {
		h.fail(w, r, "Failed to save budget entry", err)
		return
	}
	writeJSON(w, http.StatusCreated, toBudgetEntryDTOs([]budget.Entry{e})[0])
}

// DeleteBudgetEntry removes an expense.
// DELETE /api/budget/{id}
func (h *Handler) DeleteBudgetEntry(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteBudgetEntry(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, "Failed to delete budget entry", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetBudgetSummary compares spend with what has been earned so far.
// GET /api/budget/summary
func (h *Handler) GetBudgetSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	p, err := h.Store.GetProfile(ctx)
	if err != nil {
		h.fail(w, r, "Failed to load profile", err)
		return
	}
	entries, err := h.Store.ListBudgetEntries(ctx)
	if err != nil {
		h.fail(w, r, "Failed to list budget", err)
		return
	}

	s := budget.Summarize(entries, h.earnedSoFar(p), h.now())

	byCategory := make([]CategoryAmountDTO, 0, len(s.ByCategory))
	for _, c := range s.ByCategory {
		byCategory = append(byCategory, CategoryAmountDTO{Category: c.Category, Amount: c.Amount.Display()})
	}
	writeJSON(w, http.StatusOK, BudgetSummaryDTO{
		Earned:     s.Earned.Display(),
		Spent:      s.Spent.Display(),
		MonthSpent: s.MonthSpent.Display(),
		Left:       s.Left.Display(),
		ByCategory: byCategory,
		Recent:     toBudgetEntryDTOs(budget.Recent(entries, recentLimit)),
		Categories: budget.DefaultCategories,
	})
}

// =============================================================================
// LEAVE
// =============================================================================

// ListLeave returns every leave day in date order.
// GET /api/leave
func (h *Handler) ListLeave(w http.ResponseWriter, r *http.Request) {
	days, err := h.Store.ListLeaveDays(r.Context())
	if err != nil {
		h.fail(w, r, "Failed to list leave", err)
		return
	}
	writeJSON(w, http.StatusOK, toLeaveDTOs(days))
}

// CreateLeave expands an inclusive range into one row per day.
// POST /api/leave
func (h *Handler) CreateLeave(w http.ResponseWriter, r *http.Request) {
	var req CreateLeaveRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, "Invalid request body", err)
		return
	}

	start, err := h.parseDate("start_date", req.StartDate)
	if err != nil {
		h.fail(w, r, "Invalid start date", err)
		return
	}
	end := start
	if req.EndDate != "" {
		if end, err = h.parseDate("end_date", req.EndDate); err != nil {
			h.fail(w, r, "Invalid end date", err)
			return
		}
	}

	days, err := leave.Request{
		Period:   generic.Period{Start: start, End: end},
		Type:     leave.Type(req.Type),
		Approved: req.Approved,
		Notes:    strings.TrimSpace(req.Notes),
	}.Expand(h.NewID)
	if err != nil {
		h.fail(w, r, "Invalid leave request", err)
		return
	}

	if err := h.Store.SaveLeaveDays(r.Context(), days); err != nil {
		h.fail(w, r, "Failed to save leave", err)
		return
	}
	writeJSON(w, http.StatusCreated, toLeaveDTOs(days))
}

// DeleteLeave removes one day.
// DELETE /api/leave/{id}
func (h *Handler) DeleteLeave(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteLeaveDay(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, "Failed to delete leave day", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetLeaveSummary returns the allowance and the upcoming/past split.
// GET /api/leave/summary
func (h *Handler) GetLeaveSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	p, err := h.Store.GetProfile(ctx)
	if err != nil {
		h.fail(w, r, "Failed to load profile", err)
		return
	}
	days, err := h.Store.ListLeaveDays(ctx)
	if err != nil {
		h.fail(w, r, "Failed to list leave", err)
		return
	}

	s := leave.Summarize(p.LeaveAllowance, days, h.now())
	writeJSON(w, http.StatusOK, LeaveSummaryDTO{
		Allowance: s.Allowance,
		Used:      s.Used,
		Remaining: s.Remaining,
		Upcoming:  toLeaveDTOs(s.Upcoming),
		Past:      toLeaveDTOs(s.Past),
	})
}
