// Query-string parsing for the search, summary and fetch routes.
// Parsers only convert types; range and category checks live in
// request.*Filter.Validate.

package params

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/yumyai/vogdb/pkg/handler/request"
)

var (
	speciesKeys = []string{"ids", "name", "phage", "source", "version", "limit", "offset"}
	vogKeys     = []string{
		"id", "pmin", "pmax", "smin", "smax", "functional_category", "consensus_function",
		"mingLCA", "maxgLCA", "mingGLCA", "maxgGLCA", "ancestors",
		"h_stringency", "m_stringency", "l_stringency", "virus_specific", "phages_nonphages",
		"proteins", "species", "limit", "offset",
	}
	proteinKeys = []string{"species_name", "taxon_id", "VOG_id", "limit", "offset"}
)

func bad(field, reason string) error {
	return &request.FilterError{Field: field, Reason: reason}
}

// Anything outside allowed is an error rather than a silently ignored filter.
func rejectUnknown(q url.Values, allowed []string) error {
	known := make(map[string]struct{}, len(allowed))
	for _, k := range allowed {
		known[k] = struct{}{}
	}

	var unknown []string
	for k := range q {
		if _, ok := known[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return bad(unknown[0], "unknown parameter")
}

// Strings returns every value of a repeated key. Missing key gives nil.
func Strings(q url.Values, key string) []string {
	values, ok := q[key]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.TrimSpace(v))
	}
	return out
}

func Int64s(q url.Values, key string) ([]int64, error) {
	values := Strings(q, key)
	if values == nil {
		return nil, nil
	}
	out := make([]int64, 0, len(values))
	for _, v := range values {
		num, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, bad(key, "expected an integer, got "+strconv.Quote(v))
		}
		out = append(out, num)
	}
	return out, nil
}

func single(q url.Values, key string) (string, bool, error) {
	values, ok := q[key]
	if !ok {
		return "", false, nil
	}
	if len(values) > 1 {
		return "", false, bad(key, "given more than once")
	}
	return strings.TrimSpace(values[0]), true, nil
}

func Int(q url.Values, key string) (*int, error) {
	raw, ok, err := single(q, key)
	if err != nil || !ok {
		return nil, err
	}
	num, err := strconv.Atoi(raw)
	if err != nil {
		return nil, bad(key, "expected an integer, got "+strconv.Quote(raw))
	}
	return &num, nil
}

func Bool(q url.Values, key string) (*bool, error) {
	raw, ok, err := single(q, key)
	if err != nil || !ok {
		return nil, err
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, bad(key, "expected a boolean, got "+strconv.Quote(raw))
	}
	return &b, nil
}

func String(q url.Values, key string) (*string, error) {
	raw, ok, err := single(q, key)
	if err != nil || !ok {
		return nil, err
	}
	return &raw, nil
}

func page(q url.Values) (request.Page, error) {
	var (
		p   request.Page
		err error
	)
	if p.Limit, err = Int(q, "limit"); err != nil {
		return p, err
	}
	if p.Offset, err = Int(q, "offset"); err != nil {
		return p, err
	}
	return p, nil
}

// intFields parses a batch of optional integers, in order, stopping at the first error.
func intFields(q url.Values, targets map[string]**int) error {
	keys := make([]string, 0, len(targets))
	for k := range targets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v, err := Int(q, k)
		if err != nil {
			return err
		}
		*targets[k] = v
	}
	return nil
}

func boolFields(q url.Values, targets map[string]**bool) error {
	keys := make([]string, 0, len(targets))
	for k := range targets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v, err := Bool(q, k)
		if err != nil {
			return err
		}
		*targets[k] = v
	}
	return nil
}

func ParseSpeciesFilter(q url.Values) (*request.SpeciesFilter, error) {
	if err := rejectUnknown(q, speciesKeys); err != nil {
		return nil, err
	}

	var (
		f   request.SpeciesFilter
		err error
	)
	if f.IDs, err = Int64s(q, "ids"); err != nil {
		return nil, err
	}
	if f.Name, err = String(q, "name"); err != nil {
		return nil, err
	}
	if f.Phage, err = Bool(q, "phage"); err != nil {
		return nil, err
	}
	if f.Source, err = String(q, "source"); err != nil {
		return nil, err
	}
	if f.Version, err = Int(q, "version"); err != nil {
		return nil, err
	}
	if f.Page, err = page(q); err != nil {
		return nil, err
	}
	return &f, nil
}

func ParseVOGFilter(q url.Values) (*request.VOGFilter, error) {
	if err := rejectUnknown(q, vogKeys); err != nil {
		return nil, err
	}

	f := request.VOGFilter{
		IDs:                  Strings(q, "id"),
		FunctionalCategories: Strings(q, "functional_category"),
		ConsensusFunctions:   Strings(q, "consensus_function"),
		Ancestors:            Strings(q, "ancestors"),
		Proteins:             Strings(q, "proteins"),
		Species:              Strings(q, "species"),
	}

	err := intFields(q, map[string]**int{
		"pmin":     &f.ProteinCount.Min,
		"pmax":     &f.ProteinCount.Max,
		"smin":     &f.SpeciesCount.Min,
		"smax":     &f.SpeciesCount.Max,
		"mingLCA":  &f.GenomesTotalInLCA.Min,
		"maxgLCA":  &f.GenomesTotalInLCA.Max,
		"mingGLCA": &f.GenomesInGroup.Min,
		"maxgGLCA": &f.GenomesInGroup.Max,
	})
	if err != nil {
		return nil, err
	}

	err = boolFields(q, map[string]**bool{
		"h_stringency":   &f.HighStringency,
		"m_stringency":   &f.MediumStringency,
		"l_stringency":   &f.LowStringency,
		"virus_specific": &f.VirusSpecific,
	})
	if err != nil {
		return nil, err
	}

	category, err := String(q, "phages_nonphages")
	if err != nil {
		return nil, err
	}
	if category != nil {
		c := request.PhageCategory(*category)
		f.PhagesNonphages = &c
	}

	if f.Page, err = page(q); err != nil {
		return nil, err
	}
	return &f, nil
}

func ParseProteinFilter(q url.Values) (*request.ProteinFilter, error) {
	if err := rejectUnknown(q, proteinKeys); err != nil {
		return nil, err
	}

	var (
		f   request.ProteinFilter
		err error
	)
	f.SpeciesNames = Strings(q, "species_name")
	if f.TaxonIDs, err = Int64s(q, "taxon_id"); err != nil {
		return nil, err
	}
	f.VOGIDs = Strings(q, "VOG_id")
	if f.Page, err = page(q); err != nil {
		return nil, err
	}
	return &f, nil
}

// IDList reads the single id-list parameter of a summary or fetch route.
func IDList(q url.Values, key string) ([]string, error) {
	if err := rejectUnknown(q, []string{key}); err != nil {
		return nil, err
	}
	ids := Strings(q, key)
	for _, id := range ids {
		if id == "" {
			return nil, bad(key, "contains a blank value")
		}
	}
	return ids, nil
}

func IntIDList(q url.Values, key string) ([]int64, error) {
	if err := rejectUnknown(q, []string{key}); err != nil {
		return nil, err
	}
	return Int64s(q, key)
}
