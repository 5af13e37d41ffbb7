package output

// Output formats.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
)

// Formats lists every supported format.
var Formats = []string{FormatText, FormatJSON, FormatJSONL}

// TSVHeader is the canonical header row for text output.
// Keep this as the single source of truth; all writers should use it.
const TSVHeader = "group\tn_proteins\tn_peptides\tprotein_ids\tpeptides"

// TSV list separator inside one column.
const ListSep = ";"
