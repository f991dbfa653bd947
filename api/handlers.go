/*
handlers.go - HTTP API handlers for the service companion

PURPOSE:
  Exposes the timeline and pay calculators, and the user's logs, via a
  REST API. Handles HTTP request/response and JSON serialization, and
  delegates to the domain packages.

ENDPOINTS:
  Service:
    GET    /api/profile                 Service dates and settings
    PUT    /api/profile                 Replace the profile
    GET    /api/countdown               Phase, countdown and progress
    GET    /api/pay                     Earnings, tiers, next payment
    GET    /api/pay/accruals            Daily allowance credits
    POST   /api/milestones/check        Fire today's milestone once
    GET    /api/widget                  Days left for the widget
    GET    /api/stats                   Service summary

  Logs:
    /api/budget, /api/leave, /api/checklists/{kind},
    /api/equipment, /api/cooper         See server.go

CLOCK:
  Every handler reads "now" from Handler.Clock, converted to the
  configured Location. That location decides where a day starts.

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Resource not found
  - 500: Internal errors (logged)

SECURITY NOTE:
  Single-user install. No authentication.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"errors"
	"io"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/palveluspolku/service-engine/budget"
	"github.com/palveluspolku/service-engine/checklist"
	"github.com/palveluspolku/service-engine/fitness"
	"github.com/palveluspolku/service-engine/generic"
	"github.com/palveluspolku/service-engine/leave"
	"github.com/palveluspolku/service-engine/profile"
	"github.com/palveluspolku/service-engine/timeline"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Store is everything the handlers persist.
type Store interface {
	profile.Store
	budget.Store
	leave.Store
	checklist.Store
	checklist.EquipmentStore
	fitness.Store
	timeline.MilestoneStore
}

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store      Store
	Milestones *timeline.MilestoneTracker
	Logger     *zap.Logger
	Location   *time.Location
	Clock      func() time.Time
	NewID      func() string
}

// NewHandler wires a handler with the wall clock and random UUIDs.
func NewHandler(store Store, logger *zap.Logger, loc *time.Location, milestones []int) *Handler {
	if loc == nil {
		loc = time.Local
	}
	return &Handler{
		Store:      store,
		Milestones: timeline.NewMilestoneTracker(store, milestones),
		Logger:     logger,
		Location:   loc,
		Clock:      time.Now,
		NewID:      func() string { return uuid.NewString() },
	}
}

func (h *Handler) now() time.Time {
	return h.Clock().In(h.Location)
}

// parseDate reads a YYYY-MM-DD field in the handler's location.
func (h *Handler) parseDate(field, s string) (generic.TimePoint, error) {
	tp, err := generic.ParseDate(s, h.Location)
	if err != nil {
		return generic.TimePoint{}, &generic.ValidationError{Field: field, Message: "use YYYY-MM-DD"}
	}
	return tp, nil
}

func (h *Handler) parseOptionalDate(field string, s *string) (*generic.TimePoint, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	tp, err := h.parseDate(field, *s)
	if err != nil {
		return nil, err
	}
	return &tp, nil
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// fail maps err to a status code. Only 500s are logged.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, message string, err error) {
	switch {
	case generic.IsClientError(err):
		writeError(w, http.StatusBadRequest, message, err)
	case generic.IsNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	default:
		h.Logger.Error(message,
			zap.Error(err),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
		)
		writeError(w, http.StatusInternalServerError, message, err)
	}
}

// decodeJSON reads the body into v. A malformed body is a client error.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return &generic.ValidationError{Field: "body", Message: "empty request body"}
		}
		return &generic.ValidationError{Field: "body", Message: err.Error()}
	}
	return nil
}
