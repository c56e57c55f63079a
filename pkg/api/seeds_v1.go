// pkg/api/seeds_v1.go
package api

// SeedV1 is the stable schema for one graph-relative seed.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type SeedV1 struct {
	Node       int    `json:"node"`   // signed: negative = reverse-complement strand
	Strand     string `json:"strand"` // "+" | "-"
	NodeLabel  string `json:"node_label,omitempty"`
	NodeOffset int    `json:"node_offset"`
	ReadOffset int    `json:"read_offset"`
	Length     int    `json:"length"`
}

// ReadSeedsV1 is the stable schema for all seeds of one read.
type ReadSeedsV1 struct {
	ReadID          string            `json:"read_id"`
	SourceFile      string            `json:"source_file,omitempty"`
	ReadLength      int               `json:"read_length"`
	SeedCount       int               `json:"seed_count"`
	Nodes           []int             `json:"nodes"`            // distinct signed node ids, first-seen order
	LengthHistogram []int             `json:"length_histogram"` // index = seed length
	Seeds           []SeedV1          `json:"seeds"`
	NodeSeqs        map[string]string `json:"node_seqs,omitempty"` // signed id → segment sequence
}

// SummaryV1 totals a run.
type SummaryV1 struct {
	Reads          int `json:"reads"`
	ReadsWithSeeds int `json:"reads_with_seeds"`
	Seeds          int `json:"seeds"`
	Nodes          int `json:"nodes"`
}
