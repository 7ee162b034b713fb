// internal/source/open.go
package source

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

// multiReadCloser closes multiple io.Closers when Close() is called.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Open returns a reader for path. "-" reads os.Stdin and is never closed.
// Gzip input is decompressed transparently; it is detected by the magic
// number (1F 8B) or the .gz suffix.
func Open(path string) (io.ReadCloser, error) {
	return open(path, os.Stdin)
}

func open(path string, stdin io.Reader) (io.ReadCloser, error) {
	if path == Stdin {
		return maybeGzip(bufio.NewReader(stdin), false, nil)
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	rc, err := maybeGzip(bufio.NewReader(fh), strings.HasSuffix(path, ".gz"), fh)
	if err != nil {
		_ = fh.Close()
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	return rc, nil
}

// maybeGzip peeks at the first two bytes without consuming them, so
// non-seekable inputs such as pipes work too.
func maybeGzip(br *bufio.Reader, forceGzip bool, c io.Closer) (io.ReadCloser, error) {
	var closers []io.Closer
	if c != nil {
		closers = append(closers, c)
	}
	sig, _ := br.Peek(2)
	if (len(sig) == 2 && sig[0] == 0x1f && sig[1] == 0x8b) || forceGzip {
		gr, err := gzip.NewReader(br)
		if err != nil {
			return nil, errors.Wrap(err, "gzip header")
		}
		return &multiReadCloser{Reader: gr, closers: append([]io.Closer{gr}, closers...)}, nil
	}
	return &multiReadCloser{Reader: br, closers: closers}, nil
}

// OpenPair opens the ranges and lines inputs. At most one of them may be
// stdin. On error nothing is left open.
func OpenPair(rangesPath, linesPath string) (ranges, lines io.ReadCloser, err error) {
	if rangesPath == Stdin && linesPath == Stdin {
		return nil, nil, errors.New("ranges and lines cannot both be read from stdin")
	}
	ranges, err = Open(rangesPath)
	if err != nil {
		return nil, nil, errors.Wrap(err, "ranges")
	}
	lines, err = Open(linesPath)
	if err != nil {
		_ = ranges.Close()
		return nil, nil, errors.Wrap(err, "lines")
	}
	return ranges, lines, nil
}
