package handler

import (
	"net/http"

	"github.com/yumyai/vogdb/logger"
	"github.com/yumyai/vogdb/pkg/handler/params"
	"github.com/yumyai/vogdb/pkg/handler/request"
	"go.uber.org/zap"
)

// GET /vfetch/vog/{kind} and /vfetch/protein/{kind}, ids in repeated "id" keys.
// HMM and MSA belong to VOGs, FASTA to proteins.
func (dbctx *DBContext) fetch(entity request.Entity) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		kind := request.NewFetchKind(r.PathValue("kind"))
		if !fetchAllowed(entity, kind) {
			notFound(w, "Unknown data kind "+r.PathValue("kind"))
			return
		}

		ids, err := params.IDList(r.URL.Query(), "id")
		if err != nil {
			writeError(w, r, err)
			return
		}

		out, err := dbctx.Service.Fetch(r.Context(), request.FetchRequest{Kind: kind, IDs: ids})
		if err != nil {
			writeError(w, r, err)
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if _, err := w.Write(out); err != nil {
			logger.Warn("Failed to write fetch response", zap.Error(err))
		}
	}
}

func (dbctx *DBContext) FetchVogHandler() http.HandlerFunc {
	return dbctx.fetch(request.EntityVOG)
}

func (dbctx *DBContext) FetchProteinHandler() http.HandlerFunc {
	return dbctx.fetch(request.EntityProtein)
}

func fetchAllowed(entity request.Entity, kind request.FetchKind) bool {
	switch entity {
	case request.EntityVOG:
		return kind == request.FetchHMM || kind == request.FetchMSA
	case request.EntityProtein:
		return kind == request.FetchProteinFAA || kind == request.FetchGeneFNA
	default:
		return false
	}
}
