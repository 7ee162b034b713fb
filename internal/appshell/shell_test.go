package appshell

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunPassesArgsAndCode(t *testing.T) {
	var got []string
	code := run0(func(ctx context.Context, argv []string, _, _ io.Writer) int {
		assert.NoError(t, ctx.Err())
		got = argv
		return 3
	}, []string{"a", "b"})
	assert.Equal(t, 3, code)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestRunRecoversPanic(t *testing.T) {
	code := run0(func(context.Context, []string, io.Writer, io.Writer) int {
		panic("boom")
	}, nil)
	assert.Equal(t, 1, code)
}
