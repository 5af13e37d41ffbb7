// internal/input/evidence.go
package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"protgroup/internal/fileio"
	"protgroup/internal/parsimony"
)

// ErrBadLine marks an unparseable evidence line.
var ErrBadLine = errors.New("bad evidence line")

// Evidence is protein → peptide → flag as read from a file.
type Evidence struct {
	Proteins     map[string]map[string]byte
	Flagged      bool // a third (flag) column was present
	Associations int  // distinct protein/peptide pairs
}

// Input converts the evidence into a parsimony.Input, annotated only when
// the file carried flags.
func (e Evidence) Input() parsimony.Input {
	if e.Flagged {
		return parsimony.FromAnnotated(e.Proteins)
	}
	sets := make(map[string]map[string]struct{}, len(e.Proteins))
	for id, peps := range e.Proteins {
		s := make(map[string]struct{}, len(peps))
		for p := range peps {
			s[p] = struct{}{}
		}
		sets[id] = s
	}
	return parsimony.FromSets(sets)
}

// Load reads an evidence file. "-" is stdin; ".gz" is decompressed.
func Load(path string) (Evidence, error) {
	rc, err := fileio.Open(path)
	if err != nil {
		return Evidence{}, err
	}
	defer rc.Close()
	return Read(rc, path)
}

// Read parses whitespace-separated lines:
//
//	protein peptide [flag]
//
// flag is 0-255. Either every association line has a flag or none does.
// A line with only a protein registers it with no peptides. Blank lines,
// '#' comments and a leading "protein ..." header are skipped. A repeated
// protein/peptide pair keeps the largest flag.
func Read(r io.Reader, name string) (Evidence, error) {
	ev := Evidence{Proteins: map[string]map[string]byte{}}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64<<10), 1<<20)

	ln := 0
	data := 0
	withFlag, withoutFlag := false, false
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		f := strings.Fields(line)
		data++
		if data == 1 && strings.EqualFold(f[0], "protein") {
			continue
		}
		if len(f) > 3 {
			return Evidence{}, fmt.Errorf("%s:%d: %w: %d fields", name, ln, ErrBadLine, len(f))
		}

		peps, ok := ev.Proteins[f[0]]
		if !ok {
			peps = map[string]byte{}
			ev.Proteins[f[0]] = peps
		}
		if len(f) == 1 {
			continue
		}

		if !parsimony.ValidToken(f[0]) || !parsimony.ValidToken(f[1]) {
			return Evidence{}, fmt.Errorf("%s:%d: %w: control character in token", name, ln, ErrBadLine)
		}

		var flag byte
		if len(f) == 3 {
			v, err := strconv.ParseUint(f[2], 10, 8)
			if err != nil {
				return Evidence{}, fmt.Errorf("%s:%d: %w: flag %q", name, ln, ErrBadLine, f[2])
			}
			flag = byte(v)
			withFlag = true
		} else {
			withoutFlag = true
		}
		if withFlag && withoutFlag {
			return Evidence{}, fmt.Errorf("%s:%d: %w: mixed flagged and unflagged lines", name, ln, ErrBadLine)
		}

		prev, seen := peps[f[1]]
		if !seen {
			ev.Associations++
		}
		if !seen || flag > prev {
			peps[f[1]] = flag
		}
	}
	if err := sc.Err(); err != nil {
		return Evidence{}, fmt.Errorf("%s: %w", name, err)
	}
	ev.Flagged = withFlag
	return ev, nil
}
