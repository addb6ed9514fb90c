package model

import (
	"context"
	"database/sql"

	"github.com/yumyai/vogdb/pkg/handler/request"
)

func proteinQuery(f *request.ProteinFilter) (*searchQuery, error) {
	q := newSearchQuery(request.EntityProtein)

	if len(f.SpeciesNames) > 0 {
		q.join(edgeProteinSpecies)
		q.containsAny("s.species_name", f.SpeciesNames)
	}

	// taxon_id lives on protein itself, no join needed
	if err := inSet(q, "p.taxon_id", f.TaxonIDs); err != nil {
		return nil, err
	}

	if len(f.VOGIDs) > 0 {
		q.join(edgeProteinVog)
		if err := inSet(q, "vp.vog_id", f.VOGIDs); err != nil {
			return nil, err
		}
	}

	return q, nil
}

// SearchProteins returns the ids of every protein matching f, ascending.
func SearchProteins(ctx context.Context, db *sql.DB, f *request.ProteinFilter) ([]string, error) {
	if f == nil {
		f = &request.ProteinFilter{}
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}

	q, err := proteinQuery(f)
	if err != nil {
		return nil, err
	}
	return searchIDs[string](ctx, db, q, f.Page)
}

const proteinSummarySQL = `
	SELECT p.protein_id, p.taxon_id, s.species_name,
		(SELECT json_group_array(vp.vog_id) FROM vog_protein vp WHERE vp.protein_id = p.protein_id) AS vogs
	FROM protein p
	LEFT JOIN species s ON s.taxon_id = p.taxon_id
	WHERE p.protein_id IN (SELECT value FROM json_each(?))
	ORDER BY p.protein_id
`

// ProteinSummary returns protein records with owning species and VOGs.
func ProteinSummary(ctx context.Context, db *sql.DB, ids []string) ([]*ProteinProfile, error) {
	results := make([]*ProteinProfile, 0, len(ids))
	if len(ids) == 0 {
		return results, nil
	}

	arr, err := jsonArray(ids)
	if err != nil {
		return nil, err
	}

	err = queryRows(ctx, db, request.EntityProtein, "summary", proteinSummarySQL, []interface{}{arr},
		func(rows *sql.Rows) error {
			var (
				pp          ProteinProfile
				speciesName sql.NullString
				vogs        sql.NullString
			)
			if err := rows.Scan(&pp.ProteinID, &pp.TaxonID, &speciesName, &vogs); err != nil {
				return err
			}
			pp.SpeciesName = speciesName.String

			var err error
			if pp.VOGIDs, err = decodeStrings(vogs); err != nil {
				return err
			}

			results = append(results, &pp)
			return nil
		})
	if err != nil {
		return nil, err
	}
	return results, nil
}
