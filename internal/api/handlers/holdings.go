package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/minglun/v32/backend/internal/contracts"
	"github.com/minglun/v32/backend/internal/holdings"
	"github.com/minglun/v32/backend/pkg/logger"
)

// HoldingsHandler handles position CRUD and advisory endpoints
type HoldingsHandler struct {
	store     contracts.PositionStore
	evaluator *holdings.Evaluator
	logger    *logger.Logger
}

// NewHoldingsHandler creates a new holdings handler
func NewHoldingsHandler(store contracts.PositionStore, evaluator *holdings.Evaluator, log *logger.Logger) *HoldingsHandler {
	return &HoldingsHandler{
		store:     store,
		evaluator: evaluator,
		logger:    log,
	}
}

// List returns all stored positions
// GET /api/holdings
func (h *HoldingsHandler) List(w http.ResponseWriter, r *http.Request) {
	positions, err := h.store.List(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list positions")
		respondError(w, http.StatusInternalServerError, "Failed to list positions")
		return
	}

	if positions == nil {
		positions = []contracts.Position{}
	}
	respondJSON(w, http.StatusOK, positions)
}

// AddRequest is the position creation payload
type AddRequest struct {
	Code   string  `json:"Code"`
	Type   string  `json:"Type"`
	Cost   float64 `json:"Cost"`
	Shares float64 `json:"Shares"`
	Note   string  `json:"Note"`
}

// Add stores a new position
// POST /api/holdings
func (h *HoldingsHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req AddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	position := contracts.Position{
		Code:   strings.ToUpper(strings.TrimSpace(req.Code)),
		Type:   strings.ToLower(strings.TrimSpace(req.Type)),
		Cost:   req.Cost,
		Shares: req.Shares,
		Note:   req.Note,
	}

	id, err := h.store.Add(r.Context(), position)
	if err != nil {
		h.logger.WithError(err).Error("Failed to add position")
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	position.ID = id
	respondJSON(w, http.StatusCreated, position)
}

// Delete removes a position by id
// DELETE /api/holdings/{id}
func (h *HoldingsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid position id")
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		h.logger.WithError(err).WithField("id", id).Error("Failed to delete position")
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ReportResponse wraps the holdings advisory report
type ReportResponse struct {
	Holdings    []contracts.HoldingReport `json:"holdings"`
	TotalProfit float64                   `json:"total_profit"`
}

// Report returns the advisory report for all holdings
// GET /api/holdings/report
func (h *HoldingsHandler) Report(w http.ResponseWriter, r *http.Request) {
	reports, totalProfit, err := h.evaluator.Report(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to build holdings report")
		respondError(w, http.StatusInternalServerError, "Failed to build holdings report")
		return
	}

	if reports == nil {
		reports = []contracts.HoldingReport{}
	}
	respondJSON(w, http.StatusOK, ReportResponse{
		Holdings:    reports,
		TotalProfit: totalProfit,
	})
}
