package request

import (
	"fmt"
	"strings"
)

// Every field below is optional. A nil pointer or an empty slice means the
// filter is not applied. Empty sets are deliberately the same as absent ones.

// FilterError reports which parameter failed validation.
type FilterError struct {
	Field  string
	Reason string
}

func (e *FilterError) Error() string {
	return fmt.Sprintf("invalid filter %q: %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...interface{}) *FilterError {
	return &FilterError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IntRange is a closed interval; either bound may be absent.
type IntRange struct {
	Min *int
	Max *int
}

func (r IntRange) IsSet() bool {
	return r.Min != nil || r.Max != nil
}

func (r IntRange) validate(minField, maxField string) error {
	if r.Min != nil && *r.Min < 0 {
		return invalid(minField, "must not be negative, got %d", *r.Min)
	}
	if r.Max != nil && *r.Max < 0 {
		return invalid(maxField, "must not be negative, got %d", *r.Max)
	}
	if r.Min != nil && r.Max != nil && *r.Min > *r.Max {
		return invalid(minField, "%d is greater than %s %d", *r.Min, maxField, *r.Max)
	}
	return nil
}

// Page limits a search result. Without a limit every match is returned.
type Page struct {
	Limit  *int
	Offset *int
}

func (p Page) validate() error {
	if p.Limit != nil && *p.Limit <= 0 {
		return invalid("limit", "must be positive, got %d", *p.Limit)
	}
	if p.Offset != nil {
		if *p.Offset < 0 {
			return invalid("offset", "must not be negative, got %d", *p.Offset)
		}
		if p.Limit == nil {
			return invalid("offset", "requires limit")
		}
	}
	return nil
}

func validateStrings(field string, values []string) error {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return invalid(field, "contains a blank value")
		}
	}
	return nil
}

func validateIDs(field string, values []int64) error {
	for _, v := range values {
		if v < 0 {
			return invalid(field, "must not be negative, got %d", v)
		}
	}
	return nil
}

// Query parameters of /vsearch/species/
type SpeciesFilter struct {
	IDs     []int64 // ids
	Name    *string // name, case-insensitive substring
	Phage   *bool   // phage
	Source  *string // source
	Version *int    // version
	Page    Page
}

func (f *SpeciesFilter) Validate() error {
	if err := validateIDs("ids", f.IDs); err != nil {
		return err
	}
	if f.Name != nil && strings.TrimSpace(*f.Name) == "" {
		return invalid("name", "must not be blank")
	}
	if f.Source != nil && strings.TrimSpace(*f.Source) == "" {
		return invalid("source", "must not be blank")
	}
	if f.Version != nil && *f.Version < 0 {
		return invalid("version", "must not be negative, got %d", *f.Version)
	}
	return f.Page.validate()
}

// Query parameters of /vsearch/vog/
type VOGFilter struct {
	IDs                  []string       // id
	ProteinCount         IntRange       // pmin, pmax
	SpeciesCount         IntRange       // smin, smax
	FunctionalCategories []string       // functional_category
	ConsensusFunctions   []string       // consensus_function
	GenomesTotalInLCA    IntRange       // mingLCA, maxgLCA
	GenomesInGroup       IntRange       // mingGLCA, maxgGLCA
	Ancestors            []string       // ancestors
	HighStringency       *bool          // h_stringency
	MediumStringency     *bool          // m_stringency
	LowStringency        *bool          // l_stringency
	VirusSpecific        *bool          // virus_specific
	PhagesNonphages      *PhageCategory // phages_nonphages
	Proteins             []string       // proteins
	Species              []string       // species, matched on species name
	Page                 Page
}

func (f *VOGFilter) Validate() error {
	sets := []struct {
		field  string
		values []string
	}{
		{"id", f.IDs},
		{"functional_category", f.FunctionalCategories},
		{"consensus_function", f.ConsensusFunctions},
		{"ancestors", f.Ancestors},
		{"proteins", f.Proteins},
		{"species", f.Species},
	}
	for _, s := range sets {
		if err := validateStrings(s.field, s.values); err != nil {
			return err
		}
	}

	ranges := []struct {
		r                  IntRange
		minField, maxField string
	}{
		{f.ProteinCount, "pmin", "pmax"},
		{f.SpeciesCount, "smin", "smax"},
		{f.GenomesTotalInLCA, "mingLCA", "maxgLCA"},
		{f.GenomesInGroup, "mingGLCA", "maxgGLCA"},
	}
	for _, rg := range ranges {
		if err := rg.r.validate(rg.minField, rg.maxField); err != nil {
			return err
		}
	}

	if f.PhagesNonphages != nil && !f.PhagesNonphages.Valid() {
		return invalid("phages_nonphages", "must be one of %s, %s, %s, got %q",
			PhagesOnly, NonPhagesOnly, Mixed, *f.PhagesNonphages)
	}

	return f.Page.validate()
}

// Query parameters of /vsearch/protein/
type ProteinFilter struct {
	SpeciesNames []string // species_name, case-insensitive substring
	TaxonIDs     []int64  // taxon_id
	VOGIDs       []string // VOG_id
	Page         Page
}

func (f *ProteinFilter) Validate() error {
	if err := validateStrings("species_name", f.SpeciesNames); err != nil {
		return err
	}
	if err := validateIDs("taxon_id", f.TaxonIDs); err != nil {
		return err
	}
	if err := validateStrings("VOG_id", f.VOGIDs); err != nil {
		return err
	}
	return f.Page.validate()
}

// Get HMM, MSA or sequences for a list of ids
type FetchRequest struct {
	Kind FetchKind
	IDs  []string
}
