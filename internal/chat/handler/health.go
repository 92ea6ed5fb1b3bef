package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	httputil "wachat/pkg/http"
	"wachat/pkg/logger"
)

type HealthResponse struct {
	Status    string `json:"status"`
	Countries int    `json:"countries,omitempty"`
	Timezones int    `json:"timezones,omitempty"`
}

// TableStats reports the size of the loaded lookup tables. *locale.Tables
// satisfies it.
type TableStats interface {
	CountryCount() int
	TimezoneCount() int
}

type HealthHandler struct {
	tables TableStats
	log    *logger.Logger
}

func NewHealthHandler(tables TableStats, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		tables: tables,
		log:    log,
	}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Health", "operation", "WriteJSON", "error", err)
	}
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if h.tables == nil || h.tables.CountryCount() == 0 || h.tables.TimezoneCount() == 0 {
		h.log.Error("Readiness check failed: lookup tables are not loaded",
			"path", r.URL.Path,
		)
		if writeErr := httputil.WriteJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status: "unavailable",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Ready", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status:    "ready",
		Countries: h.tables.CountryCount(),
		Timezones: h.tables.TimezoneCount(),
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Ready", "operation", "WriteJSON", "error", err)
	}
}

func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
}
