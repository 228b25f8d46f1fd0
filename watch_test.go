package ringtext

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFile(t *testing.T) {
	file := writeFile(t, t.TempDir(), "text.txt", "one\r\ntwo\n")

	lines, err := ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, lines)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func next(t *testing.T, c <-chan blit) blit {
	t.Helper()

	select {
	case b := <-c:
		return b
	case <-time.After(5 * time.Second):
		require.FailNow(t, "timed out waiting for blit")
	}
	return blit{}
}

func TestWatch(t *testing.T) {
	p := newPipeline(t, DefaultConfig())
	file := writeFile(t, t.TempDir(), "text.txt", strings.Join(sample, "\n"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := &recorder{c: make(chan blit, 64)}
	done := make(chan error, 1)
	go func() {
		done <- p.Watch(ctx, file, r)
	}()

	first := next(t, r.c)

	// Too many lines is skipped, the next good text is shown
	require.NoError(t, os.WriteFile(file, []byte(strings.Repeat("x\n", 7)), 0o644))
	require.NoError(t, os.WriteFile(file, []byte("changed"), 0o644))

	for {
		b := next(t, r.c)
		if !assert.ObjectsAreEqual(first.pix, b.pix) {
			break
		}
	}

	cancel()
	select {
	case err := <-done:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(5 * time.Second):
		require.FailNow(t, "timed out waiting for watch to return")
	}
}
