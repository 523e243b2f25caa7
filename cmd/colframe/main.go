// Command colframe writes and inspects colmem column frames.
//
//	colframe demo out.colf --rows=100000 --compression=zstd
//	colframe inspect out.colf --head=5
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/arloliu/colmem/format"
)

var compressionNames = map[string]format.CompressionType{
	"none": format.CompressionNone,
	"zstd": format.CompressionZstd,
	"s2":   format.CompressionS2,
	"lz4":  format.CompressionLZ4,
}

// cli holds what every command shares.
type cli struct {
	out      io.Writer
	logger   log.Logger
	logLevel *string
}

func (c *cli) setupLogger(*kingpin.ParseContext) error {
	var allow level.Option
	switch *c.logLevel {
	case "debug":
		allow = level.AllowDebug()
	case "warn":
		allow = level.AllowWarn()
	case "error":
		allow = level.AllowError()
	default:
		allow = level.AllowInfo()
	}
	c.logger = level.NewFilter(c.logger, allow)

	return nil
}

func newApp(out io.Writer, logger log.Logger) *kingpin.Application {
	app := kingpin.New("colframe", "Write and inspect colmem column frames.")
	c := &cli{out: out, logger: logger}
	c.logLevel = app.Flag("log.level", "Only log messages at or above this level.").
		Default("info").Enum("debug", "info", "warn", "error")
	app.PreAction(c.setupLogger)

	addInspectCommand(app, c)
	addDemoCommand(app, c)

	return app
}

func main() {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)

	app := newApp(os.Stdout, logger)
	if _, err := app.Parse(os.Args[1:]); err != nil {
		exitWithErr(err)
	}
}

func exitWithErr(err error) {
	fmt.Fprintln(os.Stderr, err.Error())
	os.Exit(1)
}
