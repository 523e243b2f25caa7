package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/dustin/go-humanize"
	"github.com/go-kit/log/level"

	"github.com/arloliu/colmem/array"
	"github.com/arloliu/colmem/bitmap"
	"github.com/arloliu/colmem/column"
	"github.com/arloliu/colmem/format"
	"github.com/arloliu/colmem/frame"
)

// demoCommand writes a sample table of every common column type.
type demoCommand struct {
	*cli
	path        *string
	rows        *int
	compression *string
	bigEndian   *bool
}

func addDemoCommand(app *kingpin.Application, c *cli) {
	cmd := &demoCommand{cli: c}
	demo := app.Command("demo", "Write a sample frame file.").Action(cmd.run)
	cmd.path = demo.Arg("out", "The file to write.").Required().String()
	cmd.rows = demo.Flag("rows", "Number of rows per column.").Default("1000").Int()
	cmd.compression = demo.Flag("compression", "Payload compression.").Default("zstd").Enum("none", "zstd", "s2", "lz4")
	cmd.bigEndian = demo.Flag("big-endian", "Write fixed-width values big-endian.").Bool()
}

func (cmd *demoCommand) run(*kingpin.ParseContext) error {
	if *cmd.rows < 0 {
		return fmt.Errorf("rows must not be negative, got %d", *cmd.rows)
	}

	cols, err := sampleTable(*cmd.rows, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		return err
	}
	defer func() {
		for _, c := range cols {
			c.Release()
		}
	}()

	temps := column.Inner[*array.FloatArray[float64]](cols[1].Array())
	sum, err := array.ParallelSum[float64](temps)
	if err != nil {
		return err
	}
	level.Info(cmd.logger).Log("msg", "built sample table", "rows", *cmd.rows, "columns", len(cols),
		"temp_nulls", temps.NullCount(), "temp_sum", sum)

	opts := []frame.EncoderOption{frame.WithCompression(compressionNames[*cmd.compression])}
	if *cmd.bigEndian {
		opts = append(opts, frame.WithBigEndian())
	}
	enc, err := frame.NewEncoder(opts...)
	if err != nil {
		return err
	}
	size, err := writeFrames(*cmd.path, enc, cols)
	if err != nil {
		return err
	}
	level.Info(cmd.logger).Log("msg", "wrote frames", "file", *cmd.path, "size", humanize.Bytes(uint64(size)))
	fmt.Fprintf(cmd.out, "wrote %d columns to %s\n", len(cols), *cmd.path)

	return nil
}

func writeFrames(path string, enc *frame.Encoder, cols []*column.Column) (size int64, err error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close file: %w", cerr)
		}
	}()

	for _, c := range cols {
		n, err := enc.EncodeTo(f, c)
		size += n
		if err != nil {
			return size, fmt.Errorf("failed to write column %q: %w", c.Name(), err)
		}
	}

	return size, nil
}

var hosts = []string{"edge-1", "edge-2", "core-1"}

// sampleTable builds id, temp, ts, host, msg and ok columns of n rows. Every
// tenth temperature is missing.
func sampleTable(n int, start time.Time) ([]*column.Column, error) {
	ids := array.IntegerWithCapacity[int64](n)
	temps := array.FloatWithCapacity[float64](n)
	ts := array.DatetimeWithCapacity[int64](n, format.UnitMilliseconds)
	hostNames := make([]string, n)
	msgs := array.StringWithCapacity[uint32](n, n*8)
	ok := bitmap.WithCapacity(n)

	for i := range n {
		ids.Push(int64(i))
		if i%10 == 9 {
			temps.PushNull()
		} else {
			temps.Push(20 + float64(i%7)*0.5)
		}
		ts.PushTime(start.Add(time.Duration(i) * time.Second))
		hostNames[i] = hosts[i%len(hosts)]
		msgs.PushString(fmt.Sprintf("event-%d", i))
		ok.Append(i%3 != 0)
	}

	host, err := array.NewCategoricalFromStrings[uint8](hostNames, nil)
	if err != nil {
		return nil, err
	}

	arrays := []struct {
		name string
		arr  column.Array
		opts []column.FieldOption
	}{
		{"id", column.New(ids), nil},
		{"temp", column.New(temps), []column.FieldOption{column.WithNullable(true), column.WithMetadata(map[string]string{"unit": "celsius"})}},
		{"ts", column.New(ts), nil},
		{"host", column.New(host), nil},
		{"msg", column.New(msgs), nil},
		{"ok", column.New(array.NewBooleanArrayFromBitmap(ok, nil)), nil},
	}

	cols := make([]*column.Column, 0, len(arrays))
	for _, a := range arrays {
		c, err := column.NewColumnFromArray(a.name, a.arr, a.opts...)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", a.name, err)
		}
		cols = append(cols, c)
	}

	return cols, nil
}
