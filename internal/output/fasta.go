// internal/output/fasta.go
package output

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"graphseed/pkg/api"
)

// StreamFASTA writes, for every read, one FASTA record per seeded node
// segment. Records need NodeSeqs; reads without them are skipped.
func StreamFASTA(w io.Writer, in <-chan api.ReadSeedsV1) error {
	for r := range in {
		if len(r.NodeSeqs) == 0 {
			continue
		}
		counts := make(map[int]int, len(r.Nodes))
		for _, s := range r.Seeds {
			counts[s.Node]++
		}
		nodes := append([]int(nil), r.Nodes...)
		sort.Ints(nodes)
		for _, id := range nodes {
			seq, ok := r.NodeSeqs[strconv.Itoa(id)]
			if !ok {
				continue
			}
			if _, err := fmt.Fprintf(w, ">%s node=%d seeds=%d source_file=%s\n%s\n",
				r.ReadID, id, counts[id], r.SourceFile, seq); err != nil {
				return err
			}
		}
	}
	return nil
}
