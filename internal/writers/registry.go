// internal/writers/registry.go
package writers

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"syscall"

	"protgroup/internal/output"
	"protgroup/internal/parsimony"
)

// Payload is everything a writer may render for one run.
type Payload struct {
	RunID  string
	Source string
	Result parsimony.Result
	Text   output.TextOptions
}

// WriteFunc renders one payload.
type WriteFunc func(w io.Writer, p Payload) error

// Format → writer. Registered in init() blocks (last wins).
var registry = map[string]WriteFunc{}

// Register installs fn for format.
func Register(format string, fn WriteFunc) { registry[format] = fn }

// Registered returns the known formats, sorted.
func Registered() []string {
	out := make([]string, 0, len(registry))
	for f := range registry {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Write dispatches p to the writer registered for format.
func Write(format string, w io.Writer, p Payload) error {
	fn, ok := registry[format]
	if !ok {
		return fmt.Errorf("unknown output format %q (no writer registered)", format)
	}
	return fn(w, p)
}

// IsBrokenPipe reports whether an error is a broken pipe / closed pipe.
// Useful when downstream consumers (like `head`) close early.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}
