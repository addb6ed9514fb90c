package types

// Response bodies shared by the JSON routes.

type SpeciesID struct {
	TaxonID int64 `json:"taxon_id"`
}

type VOGID struct {
	ID string `json:"id"`
}

type ProteinID struct {
	ID string `json:"id"`
}

// ErrorResponse is the body of every 4xx and 5xx answer.
type ErrorResponse struct {
	Detail string `json:"detail"`
	Field  string `json:"field,omitempty"`
}

type WelcomeResponse struct {
	Message string `json:"message"`
}

func SpeciesIDs(ids []int64) []SpeciesID {
	out := make([]SpeciesID, 0, len(ids))
	for _, id := range ids {
		out = append(out, SpeciesID{TaxonID: id})
	}
	return out
}

func VOGIDs(ids []string) []VOGID {
	out := make([]VOGID, 0, len(ids))
	for _, id := range ids {
		out = append(out, VOGID{ID: id})
	}
	return out
}

func ProteinIDs(ids []string) []ProteinID {
	out := make([]ProteinID, 0, len(ids))
	for _, id := range ids {
		out = append(out, ProteinID{ID: id})
	}
	return out
}
