// internal/output/json.go
package output

import (
	"encoding/json"
	"io"

	"graphseed/pkg/api"
)

// EncodePretty writes v as indented JSON to w.
func EncodePretty(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteJSON writes a single JSON array of v1 read records (pretty-indented).
// A nil list is written as [].
func WriteJSON(w io.Writer, list []api.ReadSeedsV1) error {
	if list == nil {
		list = []api.ReadSeedsV1{}
	}
	return EncodePretty(w, list)
}
