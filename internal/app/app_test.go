package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"protgroup/internal/version"
)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(fn, []byte(data), 0o644))
	return fn
}

func runApp(argv ...string) (int, string, string) {
	var out, errBuf bytes.Buffer
	code := Run(argv, &out, &errBuf)
	return code, out.String(), errBuf.String()
}

func TestVersion(t *testing.T) {
	code, out, _ := runApp("version")
	assert.Equal(t, ExitOK, code)
	assert.Equal(t, "protgroup version "+version.Version+"\n", out)
}

func TestUsageErrors(t *testing.T) {
	ev := writeFile(t, "ev.tsv", "P1 a\n")
	bad := writeFile(t, "bad.tsv", "P1 a 1\nP2 b\n")
	cases := map[string][]string{
		"no args":          {"resolve"},
		"unknown flag":     {"resolve", "--nope", ev},
		"unknown command":  {"frobnicate"},
		"missing file":     {"resolve", filepath.Join(t.TempDir(), "missing.tsv")},
		"bad evidence":     {"resolve", bad},
		"bad format":       {"resolve", "-o", "xml", ev},
		"bad rank":         {"resolve", "--rank", "kingdomish", ev},
		"split w/o nodes":  {"resolve", "--split-taxonomy", ev},
		"quiet + verbose":  {"resolve", "-q", "--verbose", ev},
		"negative workers": {"batch", "--workers=-1", ev},
		"missing config":   {"resolve", "--config", filepath.Join(t.TempDir(), "x.toml"), ev},
	}
	for name, argv := range cases {
		t.Run(name, func(t *testing.T) {
			code, out, stderr := runApp(argv...)
			assert.Equal(t, ExitUsage, code, "stderr: %s", stderr)
			assert.Empty(t, out)
			assert.Contains(t, stderr, "error:")
		})
	}
}

func TestResolve_StdinDash(t *testing.T) {
	ev := writeFile(t, "ev.tsv", "P1 a\nP1 b\nP2 a\n")
	f, err := os.Open(ev)
	require.NoError(t, err)
	defer f.Close()

	old := os.Stdin
	os.Stdin = f
	defer func() { os.Stdin = old }()

	code, out, stderr := runApp("resolve", "-q", "--no-header", "-")
	require.Equal(t, ExitOK, code, stderr)
	assert.Equal(t, "1\t2\t2\tP1;P2\ta;b\n", out)
}

func TestResolve_LogsToStderr(t *testing.T) {
	ev := writeFile(t, "ev.tsv", "P1 a\nP2 a\n")
	code, out, stderr := runApp("resolve", "--verbose", ev)
	require.Equal(t, ExitOK, code)
	assert.NotContains(t, out, "resolved")
	assert.Contains(t, stderr, "resolved")
	assert.Contains(t, stderr, "checkpoint")
}

func TestResolve_MetricsTextfile(t *testing.T) {
	ev := writeFile(t, "ev.tsv", "P1 a\nP1 b\nP2 a\nP3 c\n")
	prom := filepath.Join(t.TempDir(), "protgroup.prom")

	code, _, stderr := runApp("resolve", "-q", "--metrics-file", prom, ev)
	require.Equal(t, ExitOK, code, stderr)

	data, err := os.ReadFile(prom)
	require.NoError(t, err)
	assert.Contains(t, string(data), "protgroup_groups")
	assert.Contains(t, string(data), fmt.Sprintf("source=%q", ev))
}

func TestResolve_TraceWritesSpans(t *testing.T) {
	ev := writeFile(t, "ev.tsv", "P1 a\n")
	code, _, stderr := runApp("resolve", "-q", "--trace", ev)
	require.Equal(t, ExitOK, code)
	assert.Contains(t, stderr, "parsimony.Resolve")
	assert.Contains(t, stderr, "protgroup_resolve_total", "run metrics are exported with --trace")
}

type pipeWriter struct{}

func (pipeWriter) Write([]byte) (int, error) { return 0, syscall.EPIPE }

func TestResolve_BrokenPipeIsSuccess(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 5000; i++ {
		fmt.Fprintf(&b, "P%d pep%d\n", i, i)
	}
	ev := writeFile(t, "ev.tsv", b.String())

	var errBuf bytes.Buffer
	code := RunContext(context.Background(), []string{"resolve", "-q", ev}, pipeWriter{}, &errBuf)
	assert.Equal(t, ExitOK, code, errBuf.String())
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitOK, exitCode(nil))
	assert.Equal(t, ExitUsage, exitCode(usageErr(errors.New("x"))))
	assert.Equal(t, ExitFailure, exitCode(failureErr(errors.New("x"))))
	assert.Equal(t, ExitCanceled, exitCode(failureErr(fmt.Errorf("job: %w", context.Canceled))))
	assert.Equal(t, ExitUsage, exitCode(errors.New("unknown flag")))
}

func TestCancelWhileReadingExits130(t *testing.T) {
	for _, cmd := range []string{"resolve", "batch"} {
		t.Run(cmd, func(t *testing.T) {
			r, w, err := os.Pipe()
			require.NoError(t, err)
			old := os.Stdin
			os.Stdin = r
			defer func() { os.Stdin = old; r.Close() }()

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			go func() {
				_, _ = io.WriteString(w, "P1 a\nP1 b\nP2 a\n")
				cancel()
				w.Close()
			}()

			var out bytes.Buffer
			code := RunContext(ctx, []string{cmd, "-q", "-"}, &out, io.Discard)
			assert.Equal(t, ExitCanceled, code)
			assert.Empty(t, out.String())
		})
	}
}

func TestBatch_BadFileFailsBeforeAnyRun(t *testing.T) {
	ev := writeFile(t, "ev.tsv", "P1 a\n")
	missing := filepath.Join(t.TempDir(), "missing.tsv")

	code, out, stderr := runApp("batch", "--verbose", ev, missing)
	assert.Equal(t, ExitUsage, code)
	assert.Empty(t, out)
	assert.Contains(t, stderr, "missing.tsv")
	assert.NotContains(t, stderr, "checkpoint", "no run starts when an input is bad")
}

func TestLoadAll(t *testing.T) {
	a := writeFile(t, "a.tsv", "P1 a\n")
	b := writeFile(t, "b.tsv", "P2 b\nP3 b\n")

	evs, err := loadAll([]string{a, b})
	require.NoError(t, err)
	require.Len(t, evs, 2)
	assert.Len(t, evs[0].Proteins, 1)
	assert.Len(t, evs[1].Proteins, 2)

	_, err = loadAll([]string{a, filepath.Join(t.TempDir(), "nope.tsv")})
	assert.Error(t, err)
}
