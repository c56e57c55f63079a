// internal/output/text.go
package output

import (
	"fmt"
	"io"

	"graphseed/pkg/api"
)

// FormatRowTSV returns one seed row (no trailing newline).
func FormatRowTSV(r api.ReadSeedsV1, s api.SeedV1) string {
	label := s.NodeLabel
	if label == "" {
		label = "."
	}
	return fmt.Sprintf("%s\t%s\t%d\t%s\t%s\t%d\t%d\t%d",
		r.SourceFile, r.ReadID, s.Node, s.Strand, label,
		s.NodeOffset, s.ReadOffset, s.Length,
	)
}

// StreamText writes one TSV row per seed, optionally preceded by TSVHeader.
// Reads without seeds produce no rows.
func StreamText(w io.Writer, in <-chan api.ReadSeedsV1, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeader); err != nil {
			return err
		}
	}
	for r := range in {
		for _, s := range r.Seeds {
			if _, err := fmt.Fprintln(w, FormatRowTSV(r, s)); err != nil {
				return err
			}
		}
	}
	return nil
}
