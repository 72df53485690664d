package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/minglun/v32/backend/internal/market"
	"github.com/minglun/v32/backend/pkg/logger"
)

// MarketHandler handles benchmark regime endpoints
type MarketHandler struct {
	service *market.Service
	logger  *logger.Logger
}

// NewMarketHandler creates a new market handler
func NewMarketHandler(service *market.Service, log *logger.Logger) *MarketHandler {
	return &MarketHandler{
		service: service,
		logger:  log,
	}
}

// GetRegime returns the current benchmark regime
// GET /api/market/regime
func (h *MarketHandler) GetRegime(w http.ResponseWriter, r *http.Request) {
	status := h.service.Status(r.Context())
	respondJSON(w, http.StatusOK, status)
}

// Shared response helpers for the handlers package

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
