package model

import (
	"context"
	"database/sql"

	"github.com/yumyai/vogdb/pkg/handler/request"
)

func speciesQuery(f *request.SpeciesFilter) (*searchQuery, error) {
	q := newSearchQuery(request.EntitySpecies)

	if err := inSet(q, "s.taxon_id", f.IDs); err != nil {
		return nil, err
	}
	if f.Name != nil {
		q.containsAny("s.species_name", []string{*f.Name})
	}
	if f.Phage != nil {
		q.equals("s.phage", *f.Phage)
	}
	if f.Source != nil {
		q.equals("s.source", *f.Source)
	}
	if f.Version != nil {
		q.equals("s.version", *f.Version)
	}

	return q, nil
}

// SearchSpecies returns the taxon ids of every species matching f, ascending.
// A nil or empty filter matches every species.
func SearchSpecies(ctx context.Context, db *sql.DB, f *request.SpeciesFilter) ([]int64, error) {
	if f == nil {
		f = &request.SpeciesFilter{}
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}

	q, err := speciesQuery(f)
	if err != nil {
		return nil, err
	}
	return searchIDs[int64](ctx, db, q, f.Page)
}

const speciesSummarySQL = `
	SELECT s.taxon_id, s.species_name, s.phage, s.source, s.version
	FROM species s
	WHERE s.taxon_id IN (SELECT value FROM json_each(?))
	ORDER BY s.taxon_id
`

// SpeciesSummary returns the records for the taxon ids that exist, each once.
// No ids means no records, not all of them.
func SpeciesSummary(ctx context.Context, db *sql.DB, taxonIDs []int64) ([]*SpeciesProfile, error) {
	results := make([]*SpeciesProfile, 0, len(taxonIDs))
	if len(taxonIDs) == 0 {
		return results, nil
	}

	arr, err := jsonArray(taxonIDs)
	if err != nil {
		return nil, err
	}

	err = queryRows(ctx, db, request.EntitySpecies, "summary", speciesSummarySQL, []interface{}{arr},
		func(rows *sql.Rows) error {
			var sp SpeciesProfile
			if err := rows.Scan(&sp.TaxonID, &sp.SpeciesName, &sp.Phage, &sp.Source, &sp.Version); err != nil {
				return err
			}
			results = append(results, &sp)
			return nil
		})
	if err != nil {
		return nil, err
	}
	return results, nil
}
