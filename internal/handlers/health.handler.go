package handlers

import (
	"context"

	xhttp "github.com/swiftport/customs-dashboard/pkg/http"
	"github.com/swiftport/customs-dashboard/pkg/logger"
)

type HealthService interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db HealthService
}

func RegisterHealthRoutes(g *xhttp.Group, h *HealthHandler) {
	g.GET("/health", h.GetHealth)
}

func NewHealthHandler(db HealthService) *HealthHandler {
	return &HealthHandler{
		db: db,
	}
}

func (h *HealthHandler) GetHealth(ctx *xhttp.RequestCtx) {
	if err := h.db.Ping(ctx); err != nil {
		logger.Warn("health check failed", "error", err)
		writeJSON(ctx, xhttp.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]string{"status": "ok"})
}
