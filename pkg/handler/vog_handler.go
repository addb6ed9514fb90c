package handler

import (
	"net/http"

	"github.com/yumyai/vogdb/pkg/handler/params"
	"github.com/yumyai/vogdb/pkg/handler/types"
)

// GET /vsearch/vog/
func (dbctx *DBContext) SearchVogHandler(w http.ResponseWriter, r *http.Request) {

	filter, err := params.ParseVOGFilter(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}

	ids, err := dbctx.Service.SearchVogs(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if len(ids) == 0 {
		notFound(w, "No VOGs match the search criteria.")
		return
	}

	writeJSON(w, http.StatusOK, types.VOGIDs(ids))
}

// GET /vsummary/vog/?uid=...
func (dbctx *DBContext) VogSummaryHandler(w http.ResponseWriter, r *http.Request) {

	uids, err := params.IDList(r.URL.Query(), "uid")
	if err != nil {
		writeError(w, r, err)
		return
	}

	vogs, err := dbctx.Service.VogSummary(r.Context(), uids)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if len(vogs) == 0 {
		notFound(w, "No matching VOGs found")
		return
	}

	writeJSON(w, http.StatusOK, vogs)
}
