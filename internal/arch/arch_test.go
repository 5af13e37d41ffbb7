// ./internal/arch/arch_test.go
package arch

import (
	"bytes"
	"encoding/json"
	"io"
	"os/exec"
	"strings"
	"testing"
)

type pkg struct {
	ImportPath string
	Imports    []string
	Standard   bool
}

func TestImportBoundaries(t *testing.T) {
	cmd := exec.Command("go", "list", "-json", "./...")
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		t.Fatalf("go list: %v", err)
	}
	dec := json.NewDecoder(&out)

	// parsimony is the pure core: it may import nothing from this module.
	bans := map[string][]string{
		"protgroup/internal/parsimony": {
			"protgroup/internal/", "protgroup/pkg/", "protgroup/cmd/",
		},
		"protgroup/internal/batch": {
			"protgroup/internal/app", "protgroup/internal/cli",
			"protgroup/internal/writers", "protgroup/internal/output",
			"protgroup/internal/observability", "protgroup/cmd/",
		},
		"protgroup/internal/taxonomy": {
			"protgroup/internal/app", "protgroup/internal/cli",
			"protgroup/internal/writers", "protgroup/internal/output",
			"protgroup/internal/batch", "protgroup/cmd/",
		},
		"protgroup/internal/input": {
			"protgroup/internal/app", "protgroup/internal/cli",
			"protgroup/internal/writers", "protgroup/internal/output",
			"protgroup/internal/batch", "protgroup/cmd/",
		},
		"protgroup/internal/writers": {
			"protgroup/internal/app", "protgroup/internal/cli",
			"protgroup/internal/batch", "protgroup/internal/config", "protgroup/cmd/",
		},
		"protgroup/internal/output": {
			"protgroup/internal/app", "protgroup/internal/cli",
			"protgroup/internal/batch", "protgroup/internal/writers", "protgroup/cmd/",
		},
		"protgroup/pkg/api": {
			"protgroup/internal/", "protgroup/cmd/",
		},
	}

	var violations []string
	for {
		var p pkg
		if err := dec.Decode(&p); err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !strings.HasPrefix(p.ImportPath, "protgroup/") {
			continue
		}
		imp := p.ImportPath
		for prefix, forbidden := range bans {
			if imp != prefix && !strings.HasPrefix(imp, prefix+"/") {
				continue
			}
			for _, dep := range p.Imports {
				if !strings.HasPrefix(dep, "protgroup/") {
					continue
				}
				for _, ban := range forbidden {
					if strings.HasPrefix(dep, ban) {
						violations = append(violations, imp+" → "+dep)
					}
				}
			}
		}
	}

	if len(violations) > 0 {
		t.Fatalf("import boundary violations:\n  %s", strings.Join(violations, "\n  "))
	}
}
