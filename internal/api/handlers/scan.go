package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/minglun/v32/backend/internal/contracts"
	"github.com/minglun/v32/backend/internal/scan"
	"github.com/minglun/v32/backend/pkg/config"
	"github.com/minglun/v32/backend/pkg/logger"
)

// ScanHandler handles watchlist pool scan endpoints
type ScanHandler struct {
	scanner *scan.Scanner
	cfg     *config.Config
	logger  *logger.Logger
}

// NewScanHandler creates a new scan handler
func NewScanHandler(scanner *scan.Scanner, cfg *config.Config, log *logger.Logger) *ScanHandler {
	return &ScanHandler{
		scanner: scanner,
		cfg:     cfg,
		logger:  log,
	}
}

// ScanPoolResponse wraps a pool scan result
type ScanPoolResponse struct {
	Pool      string                 `json:"pool"`
	MinScore  int                    `json:"min_score"`
	Requested int                    `json:"requested"`
	Results   []contracts.ScanResult `json:"results"`
	ScannedAt time.Time              `json:"scanned_at"`
}

// ScanPool scans the named pool and returns the filtered ranking
// GET /api/scan/{pool}
func (h *ScanHandler) ScanPool(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	poolName := mux.Vars(r)["pool"]

	var symbols []string
	var minScore int

	switch poolName {
	case scan.PoolConservative:
		symbols = h.cfg.Scan.ConservativePool
		minScore = h.cfg.Scan.ConservativeMinScore
	case scan.PoolMomentum:
		symbols = h.cfg.Scan.MomentumPool
		minScore = h.cfg.Scan.MomentumMinScore
	default:
		respondError(w, http.StatusBadRequest, "unknown pool: "+poolName)
		return
	}

	results := h.scanner.ScanMany(ctx, symbols)

	var filtered []contracts.ScanResult
	if poolName == scan.PoolConservative {
		filtered = scan.FilterConservative(results, minScore)
	} else {
		filtered = scan.FilterMomentum(results, minScore)
	}

	respondJSON(w, http.StatusOK, ScanPoolResponse{
		Pool:      poolName,
		MinScore:  minScore,
		Requested: len(symbols),
		Results:   filtered,
		ScannedAt: time.Now(),
	})
}
