// internal/cli/options_test.go
package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	ucli "github.com/urfave/cli/v2"

	"bedmap/internal/bedmap"
)

type result struct {
	opts   Options
	called bool
	err    error
	stdout string
	stderr string
}

func parse(t *testing.T, args ...string) result {
	t.Helper()
	var out, errBuf bytes.Buffer
	var r result
	app := NewApp("bedmap", &out, &errBuf, func(_ context.Context, o Options) error {
		r.opts, r.called = o, true
		return nil
	})
	r.err = app.RunContext(context.Background(), append([]string{"bedmap"}, args...))
	r.stdout, r.stderr = out.String(), errBuf.String()
	return r
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		return ExitOK
	}
	ec, ok := err.(ucli.ExitCoder)
	require.True(t, ok, "not an ExitCoder: %v", err)
	return ec.ExitCode()
}

func TestDefaults(t *testing.T) {
	r := parse(t, "ranges.txt", "lines.txt")
	require.NoError(t, r.err)
	require.True(t, r.called)
	assert.Equal(t, Options{
		RangesPath:  "ranges.txt",
		LinesPath:   "lines.txt",
		Output:      "text",
		MaxLineSize: bedmap.DefaultMaxLineSize,
	}, r.opts)
}

func TestFlags(t *testing.T) {
	r := parse(t, "-o", "jsonl", "--max-line-size", "1KiB", "-v", "--log-file", "x.log", "-", "lines.txt.gz")
	require.NoError(t, r.err)
	assert.Equal(t, "jsonl", r.opts.Output)
	assert.Equal(t, 1024, r.opts.MaxLineSize)
	assert.True(t, r.opts.Log.Verbose)
	assert.False(t, r.opts.Log.Brief)
	assert.Equal(t, "x.log", r.opts.Log.File)
	assert.Equal(t, "-", r.opts.RangesPath)
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "one path", args: []string{"ranges.txt"}, want: "expected RANGES and LINES"},
		{name: "three paths", args: []string{"a", "b", "c"}, want: "got 3 argument(s)"},
		{name: "both stdin", args: []string{"-", "-"}, want: "stdin"},
		{name: "bad format", args: []string{"-o", "xml", "a", "b"}, want: `invalid --output "xml"`},
		{name: "bad size", args: []string{"--max-line-size", "lots", "a", "b"}, want: "--max-line-size"},
		{name: "zero size", args: []string{"--max-line-size", "0", "a", "b"}, want: "out of range"},
		{name: "verbose and brief", args: []string{"-v", "-b", "a", "b"}, want: "mutually exclusive"},
		{name: "unknown flag", args: []string{"--nope", "a", "b"}, want: "nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := parse(t, tt.args...)
			assert.False(t, r.called)
			assert.Equal(t, ExitUsage, exitCode(t, r.err))
			assert.Contains(t, r.stderr, tt.want)
			assert.Contains(t, r.stderr, "RANGES LINES")
			assert.Empty(t, r.stdout)
		})
	}
}

func TestHelpAndVersion(t *testing.T) {
	for _, args := range [][]string{nil, {"-h"}, {"--help"}} {
		r := parse(t, args...)
		require.NoError(t, r.err)
		assert.False(t, r.called)
		assert.Contains(t, r.stdout, "RANGES LINES")
		assert.Contains(t, r.stdout, "--max-line-size")
	}

	r := parse(t, "-V")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "bedmap version")
}

func TestParseSize(t *testing.T) {
	n, err := ParseSize("64MiB")
	require.NoError(t, err)
	assert.Equal(t, 64<<20, n)

	n, err = ParseSize("64 MiB")
	require.NoError(t, err)
	assert.Equal(t, 64<<20, n)

	n, err = ParseSize("100")
	require.NoError(t, err)
	assert.Equal(t, 100, n)

	_, err = ParseSize("3GiB")
	assert.Error(t, err)
}
