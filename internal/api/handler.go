package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	calcerr "github.com/amterp/calcus/internal/errors"
	"github.com/amterp/calcus/internal/grid"
	"github.com/amterp/calcus/internal/model"
	"github.com/amterp/calcus/internal/prompt"
	"github.com/amterp/calcus/internal/resolver"
	"github.com/amterp/calcus/internal/service"
	"github.com/amterp/calcus/internal/util"
)

// Handler contains all HTTP handlers for the API.
//
// Single-user, single-session: every request works on the same in-memory
// session, and all connected clients see the same table.
type Handler struct {
	session *service.SessionService
	colors  *resolver.ColorResolver
	steps   *resolver.StepResolver
	logger  *slog.Logger
}

// NewHandler creates a new handler for the given session.
func NewHandler(session *service.SessionService, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	noop := &prompt.NoopPrompter{}
	return &Handler{
		session: session,
		colors:  resolver.NewColorResolver(noop),
		steps:   resolver.NewStepResolver(noop),
		logger:  logger,
	}
}

// RegisterRoutes sets up all API routes on the given mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Session routes
	mux.HandleFunc("GET /api/v1/session", h.GetSession)
	mux.HandleFunc("POST /api/v1/recalculate", h.Recalculate)
	mux.HandleFunc("POST /api/v1/reset", h.Reset)

	// Step routes
	mux.HandleFunc("POST /api/v1/steps", h.CreateStep)
	mux.HandleFunc("PATCH /api/v1/steps/{id}", h.UpdateStep)
	mux.HandleFunc("DELETE /api/v1/steps/last", h.DeleteLastStep)
	mux.HandleFunc("DELETE /api/v1/steps/{id}", h.DeleteStep)

	// Color routes
	mux.HandleFunc("POST /api/v1/colors", h.CreateColor)
	mux.HandleFunc("PATCH /api/v1/colors/{id}", h.UpdateColor)
	mux.HandleFunc("DELETE /api/v1/colors/{id}", h.DeleteColor)

	// Cell routes
	mux.HandleFunc("PUT /api/v1/cells/{color}/{step}", h.SetCell)

	// Grid routes
	mux.HandleFunc("GET /api/v1/grid", h.GetGrid)
	mux.HandleFunc("GET /api/v1/grid.tsv", h.GetGridTSV)
	mux.HandleFunc("GET /api/v1/settings", h.GetSettings)

	mux.HandleFunc("GET /favicon.svg", h.GetFavicon)
	mux.HandleFunc("GET /healthz", h.Health)
}

// OnSettingsChange implements SettingsSubscriber: reloaded settings are
// applied to the session. Failed reloads keep the previous settings.
func (h *Handler) OnSettingsChange(change SettingsChange) {
	if change.Settings == nil {
		return
	}
	if err := h.session.ApplySettings(change.Settings); err != nil {
		h.logger.Warn("ignoring reloaded settings", "error", err)
	}
}

// --- Session Handlers ---

// GetSession returns a snapshot of the session.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, h.session.Snapshot())
}

// Recalculate recomputes every derived value and returns the snapshot.
func (h *Handler) Recalculate(w http.ResponseWriter, r *http.Request) {
	if err := h.session.Recalculate(); err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, h.session.Snapshot())
}

// Reset clears the session.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	h.session.Reset()
	JSON(w, http.StatusOK, h.session.Snapshot())
}

// --- Step Handlers ---

// CreateStepRequest is the JSON body for adding a step.
type CreateStepRequest struct {
	Target *float64 `json:"target,omitempty"` // Omit for the configured default decrease
	Kind   string   `json:"kind,omitempty"`   // "default" (or empty) or "refill"
}

// CreateStep adds a step.
func (h *Handler) CreateStep(w http.ResponseWriter, r *http.Request) {
	var req CreateStepRequest
	if !decodeBody(w, r, &req) {
		return
	}

	kind, err := model.ParseStepKind(req.Kind)
	if err != nil {
		BadRequest(w, err.Error())
		return
	}
	target := h.session.DefaultTarget()
	if req.Target != nil {
		target = *req.Target
	}

	step, err := h.session.AddStep(target, kind)
	if err != nil {
		Error(w, err)
		return
	}
	if step == nil {
		Conflict(w, "a refill step already exists")
		return
	}
	JSON(w, http.StatusCreated, step)
}

// UpdateStepRequest is the JSON body for changing a step's target.
type UpdateStepRequest struct {
	Target *float64 `json:"target"`
}

// UpdateStep changes a step's target and recalculates.
func (h *Handler) UpdateStep(w http.ResponseWriter, r *http.Request) {
	var req UpdateStepRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Target == nil {
		BadRequest(w, "target is required")
		return
	}

	snap := h.session.Snapshot()
	step, err := h.steps.Resolve(&snap, r.PathValue("id"), false)
	if err != nil {
		Error(w, err)
		return
	}
	if err := h.session.SetStepTarget(step.ID, *req.Target); err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, h.session.Snapshot())
}

// DeleteStep removes a step.
func (h *Handler) DeleteStep(w http.ResponseWriter, r *http.Request) {
	snap := h.session.Snapshot()
	step, err := h.steps.Resolve(&snap, r.PathValue("id"), false)
	if err != nil {
		Error(w, err)
		return
	}
	if !h.session.RemoveStep(step.ID) {
		// Removed by a concurrent request
		Error(w, calcerr.StepNotFound(step.ID))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteLastStep removes the highest-order step.
func (h *Handler) DeleteLastStep(w http.ResponseWriter, r *http.Request) {
	if !h.session.RemoveLastStep() {
		JSON(w, http.StatusNotFound, map[string]string{"error": "no steps to remove"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Color Handlers ---

// ColorRequest is the JSON body for adding or renaming a color.
type ColorRequest struct {
	Name string `json:"name"`
}

// CreateColor adds a pigment row. An empty name gets a generated label.
func (h *Handler) CreateColor(w http.ResponseWriter, r *http.Request) {
	var req ColorRequest
	if !decodeBody(w, r, &req) {
		return
	}
	JSON(w, http.StatusCreated, h.session.AddColor(req.Name))
}

// UpdateColor renames a pigment row.
func (h *Handler) UpdateColor(w http.ResponseWriter, r *http.Request) {
	var req ColorRequest
	if !decodeBody(w, r, &req) {
		return
	}

	snap := h.session.Snapshot()
	color, err := h.colors.Resolve(&snap, r.PathValue("id"), false)
	if err != nil {
		Error(w, err)
		return
	}
	if err := h.session.RenameColor(color.ID, req.Name); err != nil {
		Error(w, err)
		return
	}

	updated := h.session.Snapshot()
	JSON(w, http.StatusOK, updated.Color(color.ID))
}

// DeleteColor removes a pigment row.
func (h *Handler) DeleteColor(w http.ResponseWriter, r *http.Request) {
	snap := h.session.Snapshot()
	color, err := h.colors.Resolve(&snap, r.PathValue("id"), false)
	if err != nil {
		Error(w, err)
		return
	}
	if color.IsSummary {
		BadRequest(w, "the summary row cannot be removed")
		return
	}
	h.session.RemoveColor(color.ID)
	w.WriteHeader(http.StatusNoContent)
}

// --- Cell Handlers ---

// SetCellRequest is the JSON body for editing a cell.
type SetCellRequest struct {
	Input *float64 `json:"input"`
}

// SetCell sets a pigment's input at a default step and returns the
// recalculated snapshot.
func (h *Handler) SetCell(w http.ResponseWriter, r *http.Request) {
	var req SetCellRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Input == nil {
		BadRequest(w, "input is required")
		return
	}

	snap := h.session.Snapshot()
	color, err := h.colors.Resolve(&snap, r.PathValue("color"), false)
	if err != nil {
		Error(w, err)
		return
	}
	step, err := h.steps.Resolve(&snap, r.PathValue("step"), false)
	if err != nil {
		Error(w, err)
		return
	}

	if err := h.session.SetInput(color.ID, step.ID, *req.Input); err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, h.session.Snapshot())
}

// --- Grid Handlers ---

// buildGrid lays out the session using the current settings. The
// "compact" query parameter overrides hide_intermediate.
func (h *Handler) buildGrid(r *http.Request) (*grid.Grid, error) {
	settings := h.session.Settings()
	formatter, err := util.NewFormatter(settings.Locale, settings.Precision)
	if err != nil {
		return nil, err
	}

	hide := settings.HideIntermediate
	if v := r.URL.Query().Get("compact"); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			hide = parsed
		}
	}

	snap := h.session.Snapshot()
	return grid.Build(&snap, grid.Options{HideIntermediate: hide, Formatter: formatter}), nil
}

// GetGrid returns the formatted grid.
func (h *Handler) GetGrid(w http.ResponseWriter, r *http.Request) {
	g, err := h.buildGrid(r)
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, g)
}

// GetGridTSV returns the grid as tab-separated values.
func (h *Handler) GetGridTSV(w http.ResponseWriter, r *http.Request) {
	g, err := h.buildGrid(r)
	if err != nil {
		Error(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/tab-separated-values; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(grid.TSV(g)))
}

// GetSettings returns the settings in effect.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, h.session.Settings())
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"revision": h.session.Revision(),
	})
}

// decodeBody decodes a JSON request body, writing a 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		BadRequest(w, "invalid JSON body")
		return false
	}
	return true
}
