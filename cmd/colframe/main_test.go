package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/colmem/column"
	"github.com/arloliu/colmem/format"
	"github.com/arloliu/colmem/frame"
)

func TestSampleTable(t *testing.T) {
	cols, err := sampleTable(20, time.Unix(0, 0).UTC())
	require.NoError(t, err)
	require.Len(t, cols, 6)

	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name()
		require.Equal(t, 20, c.Len())
	}
	require.Equal(t, []string{"id", "temp", "ts", "host", "msg", "ok"}, names)
	require.Equal(t, 2, cols[1].NullCount())
	require.Equal(t, column.KindCategorical8, cols[3].Array().Kind())
	require.Equal(t, format.UnitMilliseconds, cols[2].Field().Unit)
}

func TestDemoThenInspect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.colf")

	var out bytes.Buffer
	app := newApp(&out, log.NewNopLogger())
	_, err := app.Parse([]string{"demo", path, "--rows=50", "--compression=lz4", "--big-endian"})
	require.NoError(t, err)
	require.Contains(t, out.String(), "wrote 6 columns")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	cols, err := frame.DecodeAll(data)
	require.NoError(t, err)
	require.Len(t, cols, 6)

	out.Reset()
	app = newApp(&out, log.NewNopLogger())
	_, err = app.Parse([]string{"inspect", path, "--head=3"})
	require.NoError(t, err)

	text := out.String()
	require.Contains(t, text, "id: Int64")
	require.Contains(t, text, "head: [0, 1, 2]")
	require.Contains(t, text, "host: Dictionary8")
	require.Contains(t, text, "head: [edge-1, edge-2, core-1]")
	require.Contains(t, text, "compression: LZ4")
	require.Contains(t, text, "xxhash64: ")
}

func TestInspectNullHead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.colf")

	var out bytes.Buffer
	_, err := newApp(&out, log.NewNopLogger()).Parse([]string{"demo", path, "--rows=10", "--compression=none"})
	require.NoError(t, err)

	out.Reset()
	_, err = newApp(&out, log.NewNopLogger()).Parse([]string{"inspect", path, "--head=100", "--log.level=debug"})
	require.NoError(t, err)
	require.Contains(t, out.String(), "20.5, null]")
}

func TestInspectInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.colf")
	require.NoError(t, os.WriteFile(path, []byte("not a frame"), 0o600))

	var out bytes.Buffer
	_, err := newApp(&out, log.NewNopLogger()).Parse([]string{"inspect", path})
	require.Error(t, err)
	require.Contains(t, err.Error(), "frame 0")
}
