// Command parquet-page encodes text columns into parquet data pages and dumps
// the content of framed pages.
//
//	$ seq 1 10 | parquet-page encode --type=int32 --compression=snappy > page.bin
//	$ parquet-page dump --type=int32 --compression=snappy page.bin
package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/alecthomas/kingpin/v2"
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/segmentio/parquet-arrow/format"
	"github.com/segmentio/parquet-arrow/internal/debug"
)

var dataTypes = map[string]arrow.DataType{
	"int32":        arrow.PrimitiveTypes.Int32,
	"uint32":       arrow.PrimitiveTypes.Uint32,
	"int64":        arrow.PrimitiveTypes.Int64,
	"uint64":       arrow.PrimitiveTypes.Uint64,
	"float32":      arrow.PrimitiveTypes.Float32,
	"float64":      arrow.PrimitiveTypes.Float64,
	"date32":       arrow.FixedWidthTypes.Date32,
	"date64":       arrow.FixedWidthTypes.Date64,
	"time32_ms":    arrow.FixedWidthTypes.Time32ms,
	"time64_us":    arrow.FixedWidthTypes.Time64us,
	"timestamp_ms": arrow.FixedWidthTypes.Timestamp_ms,
	"timestamp_us": arrow.FixedWidthTypes.Timestamp_us,
	"timestamp_ns": arrow.FixedWidthTypes.Timestamp_ns,
	"duration_ms":  arrow.FixedWidthTypes.Duration_ms,
	"duration_ns":  arrow.FixedWidthTypes.Duration_ns,
}

var compressionCodecs = map[string]format.CompressionCodec{
	"uncompressed": format.Uncompressed,
	"snappy":       format.Snappy,
	"gzip":         format.Gzip,
	"brotli":       format.Brotli,
	"zstd":         format.Zstd,
	"lz4_raw":      format.Lz4Raw,
}

// application holds the state shared by all commands.
type application struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	logLevel string
	debug    bool
	logger   log.Logger
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "parquet-page: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	a := &application{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		logger: log.NewNopLogger(),
	}

	app := kingpin.New("parquet-page", "Encode columns of values into parquet data pages, and inspect them.")
	app.UsageWriter(stderr)
	app.ErrorWriter(stderr)
	app.HelpFlag.Short('h')
	app.Flag("log.level", "Only log messages with the given severity or above.").
		Default("info").
		EnumVar(&a.logLevel, "debug", "info", "warn", "error")
	app.Flag("debug", "Trace the internals of the page encoder.").
		Envar("PARQUETDEBUG").
		BoolVar(&a.debug)

	app.PreAction(func(*kingpin.ParseContext) error {
		a.logger = newLogger(stderr, a.logLevel)
		debug.SetLogger(a.logger)
		debug.Toggle(a.debug)
		return nil
	})

	(&encodeCommand{app: a}).register(app)
	(&dumpCommand{app: a}).register(app)

	_, err := app.Parse(args)
	return err
}

func newLogger(w io.Writer, lvl string) log.Logger {
	var option level.Option
	switch lvl {
	case "debug":
		option = level.AllowDebug()
	case "warn":
		option = level.AllowWarn()
	case "error":
		option = level.AllowError()
	default:
		option = level.AllowInfo()
	}
	logger := level.NewFilter(log.NewLogfmtLogger(log.NewSyncWriter(w)), option)
	return log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
}

func names[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func flagHelp[T any](help string, m map[string]T) string {
	return fmt.Sprintf("%s One of: %s.", help, strings.Join(names(m), ", "))
}

// openInput returns a reader for the named file, or stdin when the name is
// "-".
func (a *application) openInput(name string) (io.ReadCloser, error) {
	if name == "-" {
		return io.NopCloser(a.stdin), nil
	}
	return os.Open(name)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// createOutput returns a writer to the named file, or stdout when the name is
// "-".
func (a *application) createOutput(name string) (io.WriteCloser, error) {
	if name == "-" {
		return nopWriteCloser{a.stdout}, nil
	}
	return os.Create(name)
}
