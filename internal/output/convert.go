// internal/output/convert.go
package output

import (
	"strconv"

	"graphseed/core/reference"
	"graphseed/core/seeds"
	"graphseed/internal/reads"
	"graphseed/pkg/api"
)

// Options controls what ToAPIRead attaches beyond the seeds themselves.
type Options struct {
	Ref      *reference.Reference // needed for Labels and NodeSeqs
	Labels   bool                 // fill SeedV1.NodeLabel
	NodeSeqs bool                 // fill ReadSeedsV1.NodeSeqs
}

// ToAPISeed converts a domain Seed to the stable wire schema (v1).
func ToAPISeed(s seeds.Seed) api.SeedV1 {
	return api.SeedV1{
		Node:       int(s.Node),
		Strand:     string(s.Node.Strand()),
		NodeOffset: s.NodeOffset,
		ReadOffset: s.ReadOffset,
		Length:     s.Length,
	}
}

// ToAPIRead converts one read's seeds to the wire schema. Seeds are grouped
// by node in first-seen order, matching res.Nodes.
func ToAPIRead(rec reads.Record, res *seeds.Result, o Options) (api.ReadSeedsV1, error) {
	v := api.ReadSeedsV1{
		ReadID:          rec.ID,
		SourceFile:      rec.SourceFile,
		ReadLength:      len(rec.Seq),
		SeedCount:       res.Count,
		Nodes:           make([]int, 0, len(res.Nodes)),
		LengthHistogram: append([]int{}, res.LengthHist...),
		Seeds:           make([]api.SeedV1, 0, res.Count),
	}
	if o.NodeSeqs && o.Ref != nil && len(res.Nodes) > 0 {
		v.NodeSeqs = make(map[string]string, len(res.Nodes))
	}
	for _, id := range res.Nodes {
		v.Nodes = append(v.Nodes, int(id))
		var label string
		if o.Labels && o.Ref != nil {
			l, err := o.Ref.Label(id)
			if err != nil {
				return v, err
			}
			label = l
		}
		if v.NodeSeqs != nil {
			seq, err := o.Ref.Node(id)
			if err != nil {
				return v, err
			}
			v.NodeSeqs[strconv.Itoa(int(id))] = string(seq)
		}
		for _, s := range res.ByNode[id] {
			a := ToAPISeed(s)
			a.NodeLabel = label
			v.Seeds = append(v.Seeds, a)
		}
	}
	return v, nil
}
