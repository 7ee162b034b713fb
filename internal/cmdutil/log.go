// internal/cmdutil/log.go
package cmdutil

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	slogmulti "github.com/samber/slog-multi"
)

type LogOptions struct {
	Verbose bool
	Brief   bool
	File    string // optional JSON log file, appended to
}

// Level maps the verbosity flags to a slog level.
func (o LogOptions) Level() slog.Level {
	switch {
	case o.Verbose:
		return slog.LevelDebug
	case o.Brief:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && isatty.IsTerminal(f.Fd())
}

// NewLogger builds the console logger on logW and, with o.File set, fans out
// to a JSON handler on that file. The returned closer releases the file.
func NewLogger(logW io.Writer, o LogOptions) (*slog.Logger, io.Closer, error) {
	if o.Verbose && o.Brief {
		return nil, nil, errors.New("verbose and brief are mutually exclusive")
	}

	level := o.Level()
	handlers := []slog.Handler{
		tint.NewHandler(logW, &tint.Options{
			Level:      level,
			TimeFormat: time.TimeOnly,
			NoColor:    !isTerminal(logW),
		}),
	}

	var closer io.Closer = nopCloser{}
	if o.File != "" {
		fh, err := os.OpenFile(o.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, errors.Wrap(err, "opening log file")
		}
		handlers = append(handlers, slog.NewJSONHandler(fh, &slog.HandlerOptions{Level: level}))
		closer = fh
	}

	return slog.New(slogmulti.Fanout(handlers...)), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
