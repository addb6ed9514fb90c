package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yumyai/vogdb/internal/metrics"
)

func NewRouter(dbctx *DBContext) *http.ServeMux {
	mux := http.NewServeMux()

	handle := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, metrics.Instrument(pattern, h))
	}

	// Error route
	mux.HandleFunc("GET /favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not Found", http.StatusNotFound)
	})

	handle("GET /{$}", Root)

	// Search and summary
	handle("GET /vsearch/species/{$}", dbctx.SearchSpeciesHandler)
	handle("GET /vsummary/species/{$}", dbctx.SpeciesSummaryHandler)
	handle("GET /vsearch/vog/{$}", dbctx.SearchVogHandler)
	handle("GET /vsummary/vog/{$}", dbctx.VogSummaryHandler)
	handle("GET /vsearch/protein/{$}", dbctx.SearchProteinHandler)
	handle("GET /vsummary/protein/{$}", dbctx.ProteinSummaryHandler)

	// Raw data files
	handle("GET /vfetch/vog/{kind}", dbctx.FetchVogHandler())
	handle("GET /vfetch/protein/{kind}", dbctx.FetchProteinHandler())

	// API routes
	handle("GET /api/v1/health", dbctx.HealthCheck)
	mux.Handle("GET /metrics", promhttp.Handler())

	return mux
}
