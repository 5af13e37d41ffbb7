package writers

import (
	"io"

	"protgroup/internal/output"
)

func init() {
	Register(output.FormatText, func(w io.Writer, p Payload) error {
		return output.WriteText(w, p.Result, p.Text)
	})
	Register(output.FormatJSON, func(w io.Writer, p Payload) error {
		return output.WriteJSON(w, output.ToAPIResult(p.RunID, p.Source, p.Result))
	})
	Register(output.FormatJSONL, writeJSONL)
}
