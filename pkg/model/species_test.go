package model

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yumyai/vogdb/pkg/handler/request"
)

func TestSearchSpecies(t *testing.T) {
	db := newTestDB(t)

	tests := []struct {
		name   string
		filter *request.SpeciesFilter
		want   []int64
	}{
		{"zero filters", &request.SpeciesFilter{}, []int64{10298, 10665, 10710, 11676, 12345}},
		{"ids", &request.SpeciesFilter{IDs: []int64{10665, 10298, 1}}, []int64{10298, 10665}},
		{"empty ids are absent", &request.SpeciesFilter{IDs: []int64{}}, []int64{10298, 10665, 10710, 11676, 12345}},
		{"name substring", &request.SpeciesFilter{Name: strPtr("phage")}, []int64{10665, 10710, 12345}},
		{"name ignores case", &request.SpeciesFilter{Name: strPtr("PHAGE")}, []int64{10665, 10710, 12345}},
		{"name percent is literal", &request.SpeciesFilter{Name: strPtr("%")}, []int64{12345}},
		{"name underscore is literal", &request.SpeciesFilter{Name: strPtr("_")}, []int64{}},
		{"name with digits", &request.SpeciesFilter{Name: strPtr("100%")}, []int64{12345}},
		{"non phages", &request.SpeciesFilter{Phage: boolPtr(false)}, []int64{10298, 11676}},
		{"source", &request.SpeciesFilter{Source: strPtr("Manual")}, []int64{12345}},
		{"source is exact", &request.SpeciesFilter{Source: strPtr("NCBI")}, []int64{}},
		{"version", &request.SpeciesFilter{Version: intPtr(99)}, []int64{11676}},
		{"phage and version", &request.SpeciesFilter{Phage: boolPtr(true), Version: intPtr(201)}, []int64{10665, 10710, 12345}},
		{"name and ids", &request.SpeciesFilter{Name: strPtr("human"), IDs: []int64{11676, 10665}}, []int64{11676}},
		{"page", &request.SpeciesFilter{Page: request.Page{Limit: intPtr(2), Offset: intPtr(3)}}, []int64{11676, 12345}},
		{"page past the end", &request.SpeciesFilter{Page: request.Page{Limit: intPtr(2), Offset: intPtr(10)}}, []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SearchSpecies(context.Background(), db, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSearchSpecies_InvalidFilter(t *testing.T) {
	_, err := SearchSpecies(context.Background(), nil, &request.SpeciesFilter{IDs: []int64{-1}})

	var ferr *request.FilterError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, "ids", ferr.Field)
}

func TestSpeciesSummary(t *testing.T) {
	db := newTestDB(t)

	got, err := SpeciesSummary(context.Background(), db, []int64{10710, 10298, 10710, 999})
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, &SpeciesProfile{
		TaxonID:     10298,
		SpeciesName: "Human alphaherpesvirus 1",
		Phage:       false,
		Source:      "NCBI Refseq",
		Version:     201,
	}, got[0])
	assert.Equal(t, int64(10710), got[1].TaxonID)
	assert.True(t, got[1].Phage)
}

func TestSpeciesSummary_EmptyIDs(t *testing.T) {
	got, err := SpeciesSummary(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSearchThenSummarize(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	ids, err := SearchSpecies(ctx, db, &request.SpeciesFilter{Phage: boolPtr(true)})
	require.NoError(t, err)

	records, err := SpeciesSummary(ctx, db, ids)
	require.NoError(t, err)
	require.Len(t, records, len(ids))
	for i, r := range records {
		assert.Equal(t, ids[i], r.TaxonID)
		assert.True(t, r.Phage)
	}
}
