// Package api holds the stable wire types of the structured reports.
package api

// ReportV1 is the stable JSON/msgpack schema for one bootstrap run.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type ReportV1 struct {
	RunID      string     `json:"run_id" msgpack:"run_id"`
	Replicates int        `json:"replicates" msgpack:"replicates"`
	Seed       uint64     `json:"seed" msgpack:"seed"`
	Records    []RecordV1 `json:"records" msgpack:"records"`
}

// RecordV1 is one population's (or population pair's) estimates for one
// section. Only the estimates of the section are set; msgpack encodes the
// others as nil.
type RecordV1 struct {
	RunID   string `json:"run_id,omitempty" msgpack:"run_id"` // JSONL only
	Section string `json:"section" msgpack:"section"`         // "freqs" | "ld" | "fst"
	Index   int    `json:"index" msgpack:"index"`
	Source  string `json:"source,omitempty" msgpack:"source"`
	Regions int    `json:"regions" msgpack:"regions"`
	Units   int    `json:"units" msgpack:"units"`

	Pi  *EstimateV1 `json:"pi,omitempty" msgpack:"pi"`
	SFS *EstimateV1 `json:"sfs,omitempty" msgpack:"sfs"`
	Anc *EstimateV1 `json:"ancestral,omitempty" msgpack:"ancestral"`

	R2        *EstimateV1 `json:"r2,omitempty" msgpack:"r2"`
	DPrime    *EstimateV1 `json:"dprime,omitempty" msgpack:"dprime"`
	PhysEdges []float64   `json:"phys_edges,omitempty" msgpack:"phys_edges"`
	GenEdges  []float64   `json:"gen_edges,omitempty" msgpack:"gen_edges"`

	Fst *EstimateV1 `json:"fst,omitempty" msgpack:"fst"`
}

// EstimateV1 is a point estimate and its standard error, element-wise.
// An undefined value (e.g. an empty frequency bin) is null.
type EstimateV1 struct {
	Mean []*float64 `json:"mean" msgpack:"mean"`
	SE   []*float64 `json:"se" msgpack:"se"`
}
