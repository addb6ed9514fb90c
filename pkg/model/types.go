package model

type SpeciesProfile struct {
	TaxonID     int64  `json:"taxon_id"`
	SpeciesName string `json:"species_name"`
	Phage       bool   `json:"phage"`
	Source      string `json:"source"`
	Version     int    `json:"version"`
}

type VOGProfile struct {
	ID                   string   `json:"id"`
	ProteinCount         int      `json:"protein_count"`
	SpeciesCount         int      `json:"species_count"`
	Function             string   `json:"function"`
	FunctionalCategories []string `json:"functional_categories"`
	ConsensusFunction    string   `json:"consensus_function"`
	GenomesTotalInLCA    int      `json:"genomes_total_in_lca"`
	GenomesInGroup       int      `json:"genomes_in_group"`
	Ancestors            []string `json:"ancestors"`
	HighStringency       bool     `json:"h_stringency"`
	MediumStringency     bool     `json:"m_stringency"`
	LowStringency        bool     `json:"l_stringency"`
	VirusSpecific        bool     `json:"virus_specific"`
	NumPhages            int      `json:"num_phages"`
	NumNonphages         int      `json:"num_nonphages"`
	PhagesNonphages      string   `json:"phages_nonphages"`
	Proteins             []string `json:"proteins"`
	Species              []int64  `json:"species"`
}

type ProteinProfile struct {
	ProteinID   string   `json:"protein_id"`
	TaxonID     int64    `json:"taxon_id"`
	SpeciesName string   `json:"species_name"`
	VOGIDs      []string `json:"vog_ids"`
}
