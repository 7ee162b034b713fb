// internal/cli/options.go
package cli

import (
	"context"
	"fmt"
	"io"
	"math"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	ucli "github.com/urfave/cli/v2"

	"bedmap/internal/bedmap"
	"bedmap/internal/cmdutil"
	"bedmap/internal/version"
	"bedmap/internal/writers"
)

// Exit codes.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitUsage    = 2
	ExitCanceled = 130
)

// Options holds all CLI flags and arguments.
type Options struct {
	RangesPath string
	LinesPath  string

	Output      string
	MaxLineSize int

	Log cmdutil.LogOptions
}

func init() {
	// -v is --verbose here.
	ucli.VersionFlag = &ucli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

const description = `Selects lines of LINES by the 1-based line ranges listed in RANGES, one per
line, as "N" or "N-M" (inclusive). Ranges must be sorted and must not overlap.
Either input may be "-" for stdin and may be gzip-compressed.

Examples:
  bedmap ranges.txt reads.txt
  bedmap -o tsv ranges.txt.gz - < reads.txt
  printf '2\n4-6\n' | bedmap - notes.txt`

// NewApp returns the bedmap command. run is called with the validated
// options; usage problems are returned as ucli.ExitCoder with ExitUsage.
func NewApp(name string, stdout, stderr io.Writer, run func(context.Context, Options) error) *ucli.App {
	var opts Options
	var maxLine string

	return &ucli.App{
		Name:                   name,
		Usage:                  "select lines by sorted line ranges",
		UsageText:              name + " [options] RANGES LINES",
		Description:            description,
		Version:                version.Version,
		Writer:                 stdout,
		ErrWriter:              stderr,
		Suggest:                true,
		UseShortOptionHandling: true,
		HideHelpCommand:        true,
		ExitErrHandler:         func(*ucli.Context, error) {},
		OnUsageError: func(c *ucli.Context, err error, _ bool) error {
			return usageError(c, err.Error())
		},
		Flags: []ucli.Flag{
			&ucli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "output format: " + strings.Join(writers.Formats(), " | "),
				Value:       writers.FormatText,
				Destination: &opts.Output,
			},
			&ucli.StringFlag{
				Name:        "max-line-size",
				Usage:       "longest accepted input line",
				Value:       humanize.IBytes(bedmap.DefaultMaxLineSize),
				Destination: &maxLine,
			},
			&ucli.BoolFlag{
				Name:        "verbose",
				Aliases:     []string{"v"},
				Usage:       "verbose output (includes debug)",
				Destination: &opts.Log.Verbose,
			},
			&ucli.BoolFlag{
				Name:        "brief",
				Aliases:     []string{"b"},
				Usage:       "brief output (only warn and error)",
				Destination: &opts.Log.Brief,
			},
			&ucli.StringFlag{
				Name:        "log-file",
				Usage:       "also write JSON logs to `FILE`",
				Destination: &opts.Log.File,
			},
		},
		Action: func(c *ucli.Context) error {
			if c.NArg() == 0 {
				return ucli.ShowAppHelp(c)
			}
			if c.NArg() != 2 {
				return usageError(c, fmt.Sprintf("expected RANGES and LINES, got %d argument(s)", c.NArg()))
			}
			opts.RangesPath, opts.LinesPath = c.Args().Get(0), c.Args().Get(1)

			if err := validate(&opts, maxLine); err != nil {
				return usageError(c, err.Error())
			}
			return run(c.Context, opts)
		},
	}
}

func validate(o *Options, maxLine string) error {
	if o.Log.Verbose && o.Log.Brief {
		return errors.New("--verbose and --brief are mutually exclusive")
	}
	if o.RangesPath == "-" && o.LinesPath == "-" {
		return errors.New("only one of RANGES and LINES can be stdin")
	}
	if o.RangesPath == "" || o.LinesPath == "" {
		return errors.New("empty input path")
	}
	if !slices.Contains(writers.Formats(), o.Output) {
		return errors.Errorf("invalid --output %q", o.Output)
	}
	n, err := ParseSize(maxLine)
	if err != nil {
		return errors.Wrap(err, "invalid --max-line-size")
	}
	o.MaxLineSize = n
	return nil
}

// ParseSize parses a human-readable size such as "64MiB" or "1000".
func ParseSize(s string) (int, error) {
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, err
	}
	if n == 0 || n > math.MaxInt32 {
		return 0, errors.Errorf("size %s out of range (1B to 2GiB)", s)
	}
	return int(n), nil
}

func usageError(c *ucli.Context, msg string) error {
	_, _ = fmt.Fprintf(c.App.ErrWriter, "Incorrect usage: %s\n\n", msg)
	out := c.App.Writer
	c.App.Writer = c.App.ErrWriter
	_ = ucli.ShowAppHelp(c)
	c.App.Writer = out
	return ucli.Exit("", ExitUsage)
}
