package handler

import (
	"net/http"

	"github.com/yumyai/vogdb/pkg/handler/params"
	"github.com/yumyai/vogdb/pkg/handler/types"
)

// GET /vsearch/protein/
func (dbctx *DBContext) SearchProteinHandler(w http.ResponseWriter, r *http.Request) {

	filter, err := params.ParseProteinFilter(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}

	ids, err := dbctx.Service.SearchProteins(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if len(ids) == 0 {
		notFound(w, "No matching Proteins found")
		return
	}

	writeJSON(w, http.StatusOK, types.ProteinIDs(ids))
}

// GET /vsummary/protein/?pids=...
func (dbctx *DBContext) ProteinSummaryHandler(w http.ResponseWriter, r *http.Request) {

	pids, err := params.IDList(r.URL.Query(), "pids")
	if err != nil {
		writeError(w, r, err)
		return
	}

	proteins, err := dbctx.Service.ProteinSummary(r.Context(), pids)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if len(proteins) == 0 {
		notFound(w, "No matching Proteins found")
		return
	}

	writeJSON(w, http.StatusOK, proteins)
}
