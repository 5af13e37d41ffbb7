package output

import "testing"

func TestTSVHeader_Stable(t *testing.T) {
	const want = "group\tn_proteins\tn_peptides\tprotein_ids\tpeptides"
	if TSVHeader != want {
		t.Fatalf("TSVHeader changed:\n got:  %q\n want: %q", TSVHeader, want)
	}
}

func TestFormats_Stable(t *testing.T) {
	if FormatText != "text" || FormatJSON != "json" || FormatJSONL != "jsonl" {
		t.Fatalf("output format constants changed")
	}
}
