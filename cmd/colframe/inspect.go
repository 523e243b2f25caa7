package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kingpin/v2"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/go-kit/log/level"

	"github.com/arloliu/colmem/array"
	"github.com/arloliu/colmem/column"
	"github.com/arloliu/colmem/frame"
	"github.com/arloliu/colmem/internal/hash"
)

// inspectCommand prints the frames stored in each file.
type inspectCommand struct {
	*cli
	files *[]string
	head  *int
}

func addInspectCommand(app *kingpin.Application, c *cli) {
	cmd := &inspectCommand{cli: c}
	inspect := app.Command("inspect", "Print the columns stored in frame files.").Action(cmd.run)
	cmd.files = inspect.Arg("file", "The frame files to print.").Required().ExistingFiles()
	cmd.head = inspect.Flag("head", "Number of leading values to print per column.").Default("0").Int()
}

func (cmd *inspectCommand) run(*kingpin.ParseContext) error {
	var errList []error
	for _, name := range *cmd.files {
		if err := cmd.printFile(name); err != nil {
			level.Error(cmd.logger).Log("msg", "failed to inspect file", "file", name, "err", err)
			errList = append(errList, fmt.Errorf("%s: %w", name, err))
		}
	}

	return errors.Join(errList...)
}

func (cmd *inspectCommand) printFile(name string) error {
	data, err := os.ReadFile(name)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	level.Debug(cmd.logger).Log("msg", "read file", "file", name, "bytes", len(data))

	bold := color.New(color.Bold)
	bold.Fprintf(cmd.out, "%s: %v\n", name, humanize.Bytes(uint64(len(data))))

	digest := hash.NewDigest()
	for i := 0; len(data) > 0; i++ {
		d, err := frame.NewDecoder(data)
		if err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		col, err := d.Decode()
		if err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		cmd.printFrame(i, d.Header(), col)
		col.Release()
		digest.Write(data[:d.Size()])
		data = data[d.Size():]
	}
	fmt.Fprintf(cmd.out, "\txxhash64: %016x\n", digest.Sum64())

	return nil
}

func (cmd *inspectCommand) printFrame(i int, h frame.Header, col *column.Column) {
	stats := h.Stats()
	fmt.Fprintf(cmd.out,
		"\t[%d] %s\n\t\tkind: %s, rows: %d, nulls: %d, compression: %s, stored: %v, raw: %v (%.1f%% saved)\n",
		i,
		col.Field(),
		h.Kind,
		h.Rows,
		col.NullCount(),
		stats.Algorithm,
		humanize.Bytes(h.StoredSize),
		humanize.Bytes(h.RawSize),
		stats.SpaceSavings(),
	)

	if n := min(*cmd.head, col.Len()); n > 0 {
		fmt.Fprintf(cmd.out, "\t\thead: [%s]\n", strings.Join(headValues(col.Window(0, n)), ", "))
	}
}

// headValues renders the elements of w as text, nulls as "null".
func headValues(w column.Window) []string {
	text := w.Materialize().Str()
	defer text.Release()

	var values []string
	switch text.Kind() {
	case column.KindString32:
		values = column.Inner[*array.StringArray[uint32]](text).Strings()
	case column.KindString64:
		values = column.Inner[*array.StringArray[uint64]](text).Strings()
	default:
		values = make([]string, text.Len())
	}
	for i := range values {
		if text.IsNull(i) {
			values[i] = "null"
		}
	}

	return values
}
