package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/palveluspolku/service-engine/checklist"
	"github.com/palveluspolku/service-engine/fitness"
	"github.com/palveluspolku/service-engine/generic"
	"github.com/palveluspolku/service-engine/timeline"
)

// customCategory is where user-added rows land without a category.
var customCategory = map[checklist.Kind]string{
	checklist.KindPacking:     "Muut",
	checklist.KindPreparation: "Henkilökohtaiset",
}

// =============================================================================
// CHECKLISTS
// =============================================================================

// renderChecklist loads kind and writes it grouped by category.
func (h *Handler) renderChecklist(w http.ResponseWriter, r *http.Request, kind checklist.Kind, status int) {
	ctx := r.Context()

	p, err := h.Store.GetProfile(ctx)
	if err != nil {
		h.fail(w, r, "Failed to load profile", err)
		return
	}
	items, err := h.Store.ListChecklistItems(ctx, kind)
	if err != nil {
		h.fail(w, r, "Failed to list checklist", err)
		return
	}

	weeks, hasWeeks := timeline.WeeksUntilStart(p.Period(), h.now())
	progress := checklist.ProgressOf(items)

	sections := make([]ChecklistSectionDTO, 0)
	for _, s := range checklist.Group(kind, items) {
		rows := make([]ChecklistItemDTO, 0, len(s.Items))
		for _, it := range s.Items {
			rows = append(rows, toChecklistItemDTO(it, weeks, hasWeeks))
		}
		sections = append(sections, ChecklistSectionDTO{Category: s.Category, Items: rows})
	}

	writeJSON(w, status, ChecklistDTO{
		Kind: string(kind),
		Progress: ProgressDTO{
			Done:     progress.Done,
			Total:    progress.Total,
			Fraction: progress.Fraction(),
		},
		WeeksUntilStart: optInt(weeks, hasWeeks),
		Sections:        sections,
	})
}

func (h *Handler) kindParam(w http.ResponseWriter, r *http.Request) (checklist.Kind, bool) {
	kind, err := checklist.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		h.fail(w, r, "Unknown checklist", err)
		return "", false
	}
	return kind, true
}

// GetChecklist returns one list.
// GET /api/checklists/{kind}
func (h *Handler) GetChecklist(w http.ResponseWriter, r *http.Request) {
	kind, ok := h.kindParam(w, r)
	if !ok {
		return
	}
	h.renderChecklist(w, r, kind, http.StatusOK)
}

// CreateChecklistItem adds a custom row.
// POST /api/checklists/{kind}
func (h *Handler) CreateChecklistItem(w http.ResponseWriter, r *http.Request) {
	kind, ok := h.kindParam(w, r)
	if !ok {
		return
	}

	var req CreateChecklistItemRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, "Invalid request body", err)
		return
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = customCategory[kind]
	}
	it := checklist.Item{
		ID:             h.NewID(),
		Kind:           kind,
		Title:          strings.TrimSpace(req.Title),
		Category:       category,
		Custom:         true,
		DueWeeksBefore: req.DueWeeksBefore,
	}
	if err := it.Validate(); err != nil {
		h.fail(w, r, "Invalid checklist item", err)
		return
	}
	if err := h.Store.SaveChecklistItems(r.Context(), []checklist.Item{it}); err != nil {
		h.fail(w, r, "Failed to save checklist item", err)
		return
	}
	h.renderChecklist(w, r, kind, http.StatusCreated)
}

// AddDefaultChecklist seeds an empty list. A list with rows is left alone,
// also when two calls race.
// POST /api/checklists/{kind}/defaults
func (h *Handler) AddDefaultChecklist(w http.ResponseWriter, r *http.Request) {
	kind, ok := h.kindParam(w, r)
	if !ok {
		return
	}

	if _, err := h.Store.SeedChecklistItems(r.Context(), kind, checklist.DefaultItems(kind, h.NewID)); err != nil {
		h.fail(w, r, "Failed to save default checklist", err)
		return
	}
	h.renderChecklist(w, r, kind, http.StatusOK)
}

// ResetChecklist unchecks every row of a list.
// POST /api/checklists/{kind}/reset
func (h *Handler) ResetChecklist(w http.ResponseWriter, r *http.Request) {
	kind, ok := h.kindParam(w, r)
	if !ok {
		return
	}
	if err := h.Store.ResetChecklist(r.Context(), kind); err != nil {
		h.fail(w, r, "Failed to reset checklist", err)
		return
	}
	h.renderChecklist(w, r, kind, http.StatusOK)
}

// ToggleChecklistItem flips one row.
// PUT /api/checklists/items/{id}/toggle
func (h *Handler) ToggleChecklistItem(w http.ResponseWriter, r *http.Request) {
	it, err := h.Store.ToggleChecklistItem(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "Failed to toggle checklist item", err)
		return
	}

	p, err := h.Store.GetProfile(r.Context())
	if err != nil {
		h.fail(w, r, "Failed to load profile", err)
		return
	}
	weeks, hasWeeks := timeline.WeeksUntilStart(p.Period(), h.now())
	writeJSON(w, http.StatusOK, toChecklistItemDTO(it, weeks, hasWeeks))
}

// DeleteChecklistItem removes one row.
// DELETE /api/checklists/items/{id}
func (h *Handler) DeleteChecklistItem(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteChecklistItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, "Failed to delete checklist item", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// EQUIPMENT
// =============================================================================

// ListEquipment returns the inventory grouped by category.
// GET /api/equipment
func (h *Handler) ListEquipment(w http.ResponseWriter, r *http.Request) {
	h.renderEquipment(w, r, http.StatusOK)
}

func (h *Handler) renderEquipment(w http.ResponseWriter, r *http.Request, status int) {
	kit, err := h.Store.ListEquipment(r.Context())
	if err != nil {
		h.fail(w, r, "Failed to list equipment", err)
		return
	}

	inv := checklist.CountInventory(kit)
	sections := make([]EquipmentSectionDTO, 0)
	for _, s := range checklist.GroupEquipment(kit) {
		rows := make([]EquipmentDTO, 0, len(s.Items))
		for _, e := range s.Items {
			rows = append(rows, toEquipmentDTO(e))
		}
		sections = append(sections, EquipmentSectionDTO{Category: s.Category, Items: rows})
	}
	writeJSON(w, status, EquipmentListDTO{
		Total:    inv.Total,
		InHand:   inv.InHand,
		Returned: inv.Returned,
		Sections: sections,
	})
}

// equipmentFromDTO builds kit from a request body. Setting Issued or
// Returned without a date stamps today.
func (h *Handler) equipmentFromDTO(id string, req EquipmentDTO) (checklist.Equipment, error) {
	issueDate, err := h.parseOptionalDate("issue_date", req.IssueDate)
	if err != nil {
		return checklist.Equipment{}, err
	}
	returnDate, err := h.parseOptionalDate("return_date", req.ReturnDate)
	if err != nil {
		return checklist.Equipment{}, err
	}

	today := generic.DayOf(h.now())
	if req.Issued && issueDate == nil {
		issueDate = &today
	}
	if req.Returned && returnDate == nil {
		returnDate = &today
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = "Muu"
	}
	e := checklist.Equipment{
		ID:           id,
		Name:         strings.TrimSpace(req.Name),
		Category:     category,
		SerialNumber: strings.TrimSpace(req.SerialNumber),
		Issued:       req.Issued,
		Returned:     req.Returned,
		IssueDate:    issueDate,
		ReturnDate:   returnDate,
		Notes:        strings.TrimSpace(req.Notes),
	}
	return e, e.Validate()
}

// CreateEquipment adds an item of kit.
// POST /api/equipment
func (h *Handler) CreateEquipment(w http.ResponseWriter, r *http.Request) {
	var req EquipmentDTO
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, "Invalid request body", err)
		return
	}

	e, err := h.equipmentFromDTO(h.NewID(), req)
	if err != nil {
		h.fail(w, r, "Invalid equipment", err)
		return
	}
	if err := h.Store.SaveEquipment(r.Context(), []checklist.Equipment{e}); err != nil {
		h.fail(w, r, "Failed to save equipment", err)
		return
	}
	writeJSON(w, http.StatusCreated, toEquipmentDTO(e))
}

// UpdateEquipment replaces an existing item of kit.
// PUT /api/equipment/{id}
func (h *Handler) UpdateEquipment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	kit, err := h.Store.ListEquipment(r.Context())
	if err != nil {
		h.fail(w, r, "Failed to list equipment", err)
		return
	}
	found := false
	for _, e := range kit {
		if e.ID == id {
			found = true
			break
		}
	}
	if !found {
		h.fail(w, r, "Equipment not found", &generic.NotFoundError{Kind: "equipment", ID: id})
		return
	}

	var req EquipmentDTO
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, "Invalid request body", err)
		return
	}
	e, err := h.equipmentFromDTO(id, req)
	if err != nil {
		h.fail(w, r, "Invalid equipment", err)
		return
	}
	if err := h.Store.SaveEquipment(r.Context(), []checklist.Equipment{e}); err != nil {
		h.fail(w, r, "Failed to save equipment", err)
		return
	}
	writeJSON(w, http.StatusOK, toEquipmentDTO(e))
}

// AddDefaultEquipment seeds an empty inventory, at most once.
// POST /api/equipment/defaults
func (h *Handler) AddDefaultEquipment(w http.ResponseWriter, r *http.Request) {
	if _, err := h.Store.SeedEquipment(r.Context(), checklist.DefaultEquipment(h.NewID)); err != nil {
		h.fail(w, r, "Failed to save default equipment", err)
		return
	}
	h.renderEquipment(w, r, http.StatusOK)
}

// DeleteEquipment removes an item of kit.
// DELETE /api/equipment/{id}
func (h *Handler) DeleteEquipment(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteEquipment(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, "Failed to delete equipment", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// COOPER TESTS
// =============================================================================

// ListCooperTests returns the log, most recent first.
// GET /api/cooper
func (h *Handler) ListCooperTests(w http.ResponseWriter, r *http.Request) {
	runs, err := h.Store.ListCooperTests(r.Context())
	if err != nil {
		h.fail(w, r, "Failed to list cooper tests", err)
		return
	}

	dto := CooperListDTO{
		Tests:       toCooperDTOs(runs),
		Best:        optInt(fitness.Best(runs)),
		Improvement: optInt(fitness.Improvement(runs)),
	}
	if first, ok := fitness.First(runs); ok {
		dto.First = &first.DistanceMeters
	}
	writeJSON(w, http.StatusOK, dto)
}

// CreateCooperTest records a run.
// POST /api/cooper
func (h *Handler) CreateCooperTest(w http.ResponseWriter, r *http.Request) {
	var req CreateCooperTestRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, "Invalid request body", err)
		return
	}

	day := generic.DayOf(h.now())
	if req.Date != "" {
		var err error
		if day, err = h.parseDate("date", req.Date); err != nil {
			h.fail(w, r, "Invalid date", err)
			return
		}
	}

	c := fitness.CooperTest{
		ID:             h.NewID(),
		Date:           day,
		DistanceMeters: req.DistanceMeters,
		Notes:          strings.TrimSpace(req.Notes),
	}
	if err := c.Validate(); err != nil {
		h.fail(w, r, "Invalid cooper test", err)
		return
	}
	if err := h.Store.SaveCooperTest(r.Context(), c); err != nil {
		h.fail(w, r, "Failed to save cooper test", err)
		return
	}
	writeJSON(w, http.StatusCreated, toCooperDTOs([]fitness.CooperTest{c})[0])
}

// DeleteCooperTest removes a run.
// DELETE /api/cooper/{id}
func (h *Handler) DeleteCooperTest(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteCooperTest(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, "Failed to delete cooper test", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
