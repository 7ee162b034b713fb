// internal/app/app.go
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	ucli "github.com/urfave/cli/v2"

	"bedmap/internal/bedmap"
	"bedmap/internal/cli"
	"bedmap/internal/cmdutil"
	"bedmap/internal/source"
	"bedmap/internal/writers"
)

// RunContext parses argv, selects lines and writes them to stdout.
// Logs and usage go to stderr. It returns the process exit code.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	app := cli.NewApp("bedmap", stdout, stderr, func(ctx context.Context, o cli.Options) error {
		return run(ctx, o, stdout, stderr)
	})

	err := app.RunContext(parent, append([]string{"bedmap"}, argv...))
	if err == nil {
		return cli.ExitOK
	}
	var ec ucli.ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return cli.ExitUsage
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func run(ctx context.Context, o cli.Options, stdout, stderr io.Writer) error {
	log, logCloser, err := cmdutil.NewLogger(stderr, o.Log)
	if err != nil {
		// No logger yet.
		_, _ = fmt.Fprintln(stderr, "bedmap: "+err.Error())
		return ucli.Exit("", cli.ExitFailure)
	}
	defer func() { _ = logCloser.Close() }()

	n, err := selectLines(ctx, log, o, stdout)
	switch {
	case err == nil:
		log.Debug("Done", "selected", humanize.Comma(int64(n)))
		return nil
	case writers.IsBrokenPipe(err):
		log.Debug("Output closed early", "selected", humanize.Comma(int64(n)))
		return nil
	case errors.Is(err, context.Canceled):
		log.Warn("Canceled", "selected", humanize.Comma(int64(n)))
		return ucli.Exit("", cli.ExitCanceled)
	default:
		attrs := []any{"err", err.Error()}
		if k := bedmap.KindOf(err); k != 0 {
			attrs = append(attrs, "kind", k.String())
		}
		log.Error("Failed", attrs...)
		return ucli.Exit("", cli.ExitFailure)
	}
}

// selectLines opens both inputs, drains the merge into the writer and
// flushes. Output written before a merge error is kept.
func selectLines(ctx context.Context, log *slog.Logger, o cli.Options, stdout io.Writer) (uint64, error) {
	lw, err := writers.NewLineWriter(stdout, o.Output)
	if err != nil {
		return 0, err
	}

	ranges, lines, err := source.OpenPair(o.RangesPath, o.LinesPath)
	if err != nil {
		return 0, err
	}
	defer func() { _ = ranges.Close() }()
	defer func() { _ = lines.Close() }()

	log.Debug("Selecting lines", "ranges", o.RangesPath, "lines", o.LinesPath,
		"output", o.Output, "maxLineSize", humanize.IBytes(uint64(o.MaxLineSize)))

	m := bedmap.New(ranges, lines, bedmap.WithMaxLineSize(o.MaxLineSize), bedmap.WithContext(ctx))
	n, runErr := cmdutil.RunStream(ctx, m, lw.Write)

	log.Debug("Merge finished",
		"ranges", humanize.Comma(int64(m.RangesRead())),
		"lines", humanize.Comma(int64(m.LinesRead())),
		"selected", humanize.Comma(int64(n)),
		"written", humanize.Comma(int64(lw.Written())))

	if err := lw.Flush(); err != nil {
		return n, err
	}
	return n, runErr
}
