package request

// Entity is the kind of record a search or summary targets.
type Entity int

const (
	EntitySpecies Entity = iota
	EntityVOG
	EntityProtein
	EntityUnknown
)

func (e Entity) String() string {
	switch e {
	case EntitySpecies:
		return "species"
	case EntityVOG:
		return "vog"
	case EntityProtein:
		return "protein"
	default:
		return "unknown"
	}
}

func NewEntity(entity string) Entity {
	switch entity {
	case "species":
		return EntitySpecies
	case "vog":
		return EntityVOG
	case "protein":
		return EntityProtein
	default:
		return EntityUnknown
	}
}

// PhageCategory classifies a VOG by the hosts of its member genomes.
type PhageCategory string

const (
	PhagesOnly    PhageCategory = "phages_only"
	NonPhagesOnly PhageCategory = "np_only"
	Mixed         PhageCategory = "mixed"
)

func (c PhageCategory) Valid() bool {
	switch c {
	case PhagesOnly, NonPhagesOnly, Mixed:
		return true
	default:
		return false
	}
}

// FetchKind selects which data-directory artifact a fetch returns.
type FetchKind int

const (
	FetchHMM FetchKind = iota
	FetchMSA
	FetchProteinFAA
	FetchGeneFNA
	FetchUnknown
)

func (k FetchKind) String() string {
	switch k {
	case FetchHMM:
		return "hmm"
	case FetchMSA:
		return "msa"
	case FetchProteinFAA:
		return "faa"
	case FetchGeneFNA:
		return "fna"
	default:
		return "unknown"
	}
}

func NewFetchKind(kind string) FetchKind {
	switch kind {
	case "hmm":
		return FetchHMM
	case "msa":
		return FetchMSA
	case "faa":
		return FetchProteinFAA
	case "fna":
		return FetchGeneFNA
	default:
		return FetchUnknown
	}
}
