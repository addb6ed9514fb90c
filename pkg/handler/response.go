package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/yumyai/vogdb/logger"
	mydb "github.com/yumyai/vogdb/pkg/db"
	"github.com/yumyai/vogdb/pkg/handler/request"
	"github.com/yumyai/vogdb/pkg/handler/types"
	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode response", zap.Error(err))
	}
}

func notFound(w http.ResponseWriter, detail string) {
	writeJSON(w, http.StatusNotFound, types.ErrorResponse{Detail: detail})
}

// writeError maps an error from the service layer to a status code.
// Malformed input is the caller's fault; everything unrecognised is ours.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ferr *request.FilterError
	switch {
	case errors.As(err, &ferr):
		writeJSON(w, http.StatusBadRequest, types.ErrorResponse{Detail: ferr.Error(), Field: ferr.Field})
	case errors.Is(err, mydb.ErrInvalidID):
		writeJSON(w, http.StatusBadRequest, types.ErrorResponse{Detail: err.Error(), Field: "id"})
	case errors.Is(err, mydb.ErrFileNotFound):
		notFound(w, err.Error())
	default:
		logger.Error("Request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, types.ErrorResponse{Detail: "Internal server error"})
	}
}
