// internal/output/text.go
package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"protgroup/internal/parsimony"
)

// TextOptions selects the optional text columns.
type TextOptions struct {
	Header bool
	Flags  bool // append a flags column when the result carries flags
	Taxon  bool // append a taxon column
	Source string
}

// header returns the header row for the chosen columns.
func (o TextOptions) header(flagged bool) string {
	h := TSVHeader
	if o.Flags && flagged {
		h += "\tflags"
	}
	if o.Taxon {
		h += "\ttaxon_id"
	}
	if o.Source != "" {
		h += "\tsource"
	}
	return h
}

// WriteText prints one TSV line per group.
func WriteText(w io.Writer, res parsimony.Result, o TextOptions) error {
	if o.Header {
		if _, err := fmt.Fprintln(w, o.header(res.Flagged)); err != nil {
			return err
		}
	}
	for i, g := range res.Groups {
		var b strings.Builder
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteByte('\t')
		b.WriteString(strconv.Itoa(len(g.ProteinIDs)))
		b.WriteByte('\t')
		b.WriteString(strconv.Itoa(len(g.Peptides)))
		b.WriteByte('\t')
		b.WriteString(strings.Join(g.ProteinIDs, ListSep))
		b.WriteByte('\t')
		b.WriteString(strings.Join(g.Peptides, ListSep))
		if o.Flags && res.Flagged {
			b.WriteByte('\t')
			b.WriteString(joinFlags(g.Flags))
		}
		if o.Taxon {
			b.WriteByte('\t')
			b.WriteString(g.TaxonID)
		}
		if o.Source != "" {
			b.WriteByte('\t')
			b.WriteString(o.Source)
		}
		b.WriteByte('\n')
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}

func joinFlags(fs []byte) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = strconv.Itoa(int(f))
	}
	return strings.Join(parts, ListSep)
}
