// internal/writers/jsonl.go
package writers

import (
	"io"

	"protgroup/internal/jsonlutil"
	"protgroup/internal/output"
	"protgroup/internal/parsimony"
	"protgroup/pkg/api"
)

// StartGroupJSONLWriter streams each group as one JSON line (v1), tagged with source.
func StartGroupJSONLWriter(out io.Writer, source string, bufSize int) (chan<- parsimony.Group, <-chan error) {
	idx := 0
	return jsonlutil.Start(out, bufSize,
		func(g parsimony.Group) api.GroupV1 {
			v := output.ToAPIGroup(idx, g, source)
			idx++
			return v
		},
		IsBrokenPipe,
	)
}

func writeJSONL(w io.Writer, p Payload) error {
	in, done := StartGroupJSONLWriter(w, p.Source, 64)
	for _, g := range p.Result.Groups {
		in <- g
	}
	close(in)
	return <-done
}
