package handler

import (
	"net/http"

	"github.com/yumyai/vogdb/pkg/handler/params"
	"github.com/yumyai/vogdb/pkg/handler/types"
)

// GET /vsearch/species/
func (dbctx *DBContext) SearchSpeciesHandler(w http.ResponseWriter, r *http.Request) {

	filter, err := params.ParseSpeciesFilter(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}

	ids, err := dbctx.Service.SearchSpecies(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if len(ids) == 0 {
		notFound(w, "No Species match the search criteria.")
		return
	}

	writeJSON(w, http.StatusOK, types.SpeciesIDs(ids))
}

// GET /vsummary/species/?taxon_id=...
func (dbctx *DBContext) SpeciesSummaryHandler(w http.ResponseWriter, r *http.Request) {

	taxonIDs, err := params.IntIDList(r.URL.Query(), "taxon_id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	species, err := dbctx.Service.SpeciesSummary(r.Context(), taxonIDs)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if len(species) == 0 {
		notFound(w, "No matching Species found")
		return
	}

	writeJSON(w, http.StatusOK, species)
}
