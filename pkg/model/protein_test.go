package model

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yumyai/vogdb/pkg/handler/request"
)

func TestSearchProteins(t *testing.T) {
	db := newTestDB(t)

	all := []string{
		"10298.P1", "10298.P2", "10665.P1", "10665.P2", "10665.P3",
		"10710.P1", "10710.P2", "11676.P1", "12345.P1",
	}

	tests := []struct {
		name   string
		filter *request.ProteinFilter
		want   []string
	}{
		{"nil filter", nil, all},
		{"zero filters", &request.ProteinFilter{}, all},
		{"species name substring", &request.ProteinFilter{SpeciesNames: []string{"lambda"}}, []string{"10710.P1", "10710.P2"}},
		{"species names are OR", &request.ProteinFilter{SpeciesNames: []string{"lambda", "HERPES"}},
			[]string{"10298.P1", "10298.P2", "10710.P1", "10710.P2"}},
		{"taxon id", &request.ProteinFilter{TaxonIDs: []int64{11676}}, []string{"11676.P1"}},
		{"unknown taxon id", &request.ProteinFilter{TaxonIDs: []int64{1}}, []string{}},
		{"vog ids dedupe shared proteins", &request.ProteinFilter{VOGIDs: []string{"VOG00001", "VOG00003"}},
			[]string{"10298.P2", "10665.P1", "10665.P2", "10665.P3", "10710.P1"}},
		{"taxon and vog", &request.ProteinFilter{TaxonIDs: []int64{10665}, VOGIDs: []string{"VOG00003"}},
			[]string{"10665.P1", "10665.P2", "10665.P3"}},
		{"species and vog", &request.ProteinFilter{SpeciesNames: []string{"T4"}, VOGIDs: []string{"VOG00001"}},
			[]string{"10665.P1"}},
		{"empty sets are absent", &request.ProteinFilter{SpeciesNames: []string{}, VOGIDs: []string{}}, all},
		{"page", &request.ProteinFilter{VOGIDs: []string{"VOG00003"}, Page: request.Page{Limit: intPtr(1), Offset: intPtr(1)}},
			[]string{"10665.P1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SearchProteins(context.Background(), db, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSearchProteins_InvalidFilter(t *testing.T) {
	_, err := SearchProteins(context.Background(), nil, &request.ProteinFilter{VOGIDs: []string{" "}})

	var ferr *request.FilterError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, "VOG_id", ferr.Field)
}

func TestProteinSummary(t *testing.T) {
	db := newTestDB(t)

	got, err := ProteinSummary(context.Background(), db, []string{"12345.P1", "10665.P1", "10665.P1", "nope"})
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, &ProteinProfile{
		ProteinID:   "10665.P1",
		TaxonID:     10665,
		SpeciesName: "Escherichia phage T4",
		VOGIDs:      []string{"VOG00001", "VOG00003"},
	}, got[0])

	// not in any VOG
	assert.Equal(t, "12345.P1", got[1].ProteinID)
	assert.Equal(t, []string{}, got[1].VOGIDs)
}

func TestProteinSummary_EmptyIDs(t *testing.T) {
	got, err := ProteinSummary(context.Background(), nil, []string{})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
