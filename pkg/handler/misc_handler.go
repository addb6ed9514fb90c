// Handler for miscellaneous endpoints such as health check

package handler

import (
	"net/http"
	"time"

	"github.com/yumyai/vogdb/logger"
	"github.com/yumyai/vogdb/pkg/handler/types"
	"go.uber.org/zap"
)

type HealthResponse struct {
	Health    string    `json:"health"`
	Timestamp time.Time `json:"timestamp"`
}

func Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.WelcomeResponse{Message: "Welcome to VOGDB-API"})
}

// HealthCheck reports "ok" only when the database answers a ping.
func (dbctx *DBContext) HealthCheck(w http.ResponseWriter, r *http.Request) {

	response := HealthResponse{
		Health:    "ok",
		Timestamp: time.Now(),
	}

	status := http.StatusOK
	if err := dbctx.Service.Ping(r.Context()); err != nil {
		logger.Warn("Health check failed", zap.Error(err))
		response.Health = "unavailable"
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, response)
}
