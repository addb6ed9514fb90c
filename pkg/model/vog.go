package model

import (
	"context"
	"database/sql"

	"github.com/yumyai/vogdb/pkg/handler/request"
)

func vogQuery(f *request.VOGFilter) (*searchQuery, error) {
	q := newSearchQuery(request.EntityVOG)

	if err := inSet(q, "v.id", f.IDs); err != nil {
		return nil, err
	}

	q.intRange("v.protein_count", f.ProteinCount)
	q.intRange("v.species_count", f.SpeciesCount)
	q.intRange("v.genomes_total_in_lca", f.GenomesTotalInLCA)
	q.intRange("v.genomes_in_group", f.GenomesInGroup)

	if err := inSet(q, "v.consensus_function", f.ConsensusFunctions); err != nil {
		return nil, err
	}

	// Cross-entity fields: the predicate sits on the joined table.
	if len(f.FunctionalCategories) > 0 {
		q.join(edgeVogCategory)
		if err := inSet(q, "vc.category", f.FunctionalCategories); err != nil {
			return nil, err
		}
	}
	if len(f.Ancestors) > 0 {
		q.join(edgeVogAncestor)
		if err := inSet(q, "va.ancestor", f.Ancestors); err != nil {
			return nil, err
		}
	}
	if len(f.Proteins) > 0 {
		q.join(edgeVogProtein)
		if err := inSet(q, "vp.protein_id", f.Proteins); err != nil {
			return nil, err
		}
	}
	if len(f.Species) > 0 {
		q.join(edgeVogSpecies)
		if err := inSet(q, "s.species_name", f.Species); err != nil {
			return nil, err
		}
	}

	flags := []struct {
		column string
		value  *bool
	}{
		{"v.h_stringency", f.HighStringency},
		{"v.m_stringency", f.MediumStringency},
		{"v.l_stringency", f.LowStringency},
		{"v.virus_specific", f.VirusSpecific},
	}
	for _, flag := range flags {
		if flag.value != nil {
			q.equals(flag.column, *flag.value)
		}
	}

	if f.PhagesNonphages != nil {
		q.equals("v.phages_nonphages", string(*f.PhagesNonphages))
	}

	return q, nil
}

// SearchVogs returns the ids of every VOG matching f, ascending.
func SearchVogs(ctx context.Context, db *sql.DB, f *request.VOGFilter) ([]string, error) {
	if f == nil {
		f = &request.VOGFilter{}
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}

	q, err := vogQuery(f)
	if err != nil {
		return nil, err
	}
	return searchIDs[string](ctx, db, q, f.Page)
}

const vogSummarySQL = `
	SELECT
		v.id, v.protein_count, v.species_count, v.function, v.consensus_function,
		v.genomes_total_in_lca, v.genomes_in_group,
		v.h_stringency, v.m_stringency, v.l_stringency, v.virus_specific,
		v.num_phages, v.num_nonphages, v.phages_nonphages,
		(SELECT json_group_array(vc.category) FROM vog_category vc WHERE vc.vog_id = v.id) AS categories,
		(SELECT json_group_array(va.ancestor) FROM vog_ancestor va WHERE va.vog_id = v.id) AS ancestors,
		(SELECT json_group_array(vp.protein_id) FROM vog_protein vp WHERE vp.vog_id = v.id) AS proteins,
		(SELECT json_group_array(vs.taxon_id) FROM vog_species vs WHERE vs.vog_id = v.id) AS species
	FROM vog_profile v
	WHERE v.id IN (SELECT value FROM json_each(?))
	ORDER BY v.id
`

// VogSummary returns full VOG records, related lists included, for the ids that exist.
func VogSummary(ctx context.Context, db *sql.DB, ids []string) ([]*VOGProfile, error) {
	results := make([]*VOGProfile, 0, len(ids))
	if len(ids) == 0 {
		return results, nil
	}

	arr, err := jsonArray(ids)
	if err != nil {
		return nil, err
	}

	err = queryRows(ctx, db, request.EntityVOG, "summary", vogSummarySQL, []interface{}{arr},
		func(rows *sql.Rows) error {
			var (
				vp                                   VOGProfile
				categories, ancestors, proteins, sps sql.NullString
			)
			if err := rows.Scan(
				&vp.ID, &vp.ProteinCount, &vp.SpeciesCount, &vp.Function, &vp.ConsensusFunction,
				&vp.GenomesTotalInLCA, &vp.GenomesInGroup,
				&vp.HighStringency, &vp.MediumStringency, &vp.LowStringency, &vp.VirusSpecific,
				&vp.NumPhages, &vp.NumNonphages, &vp.PhagesNonphages,
				&categories, &ancestors, &proteins, &sps); err != nil {
				return err
			}

			var err error
			if vp.FunctionalCategories, err = decodeStrings(categories); err != nil {
				return err
			}
			if vp.Ancestors, err = decodeStrings(ancestors); err != nil {
				return err
			}
			if vp.Proteins, err = decodeStrings(proteins); err != nil {
				return err
			}
			if vp.Species, err = decodeInt64s(sps); err != nil {
				return err
			}

			results = append(results, &vp)
			return nil
		})
	if err != nil {
		return nil, err
	}
	return results, nil
}
