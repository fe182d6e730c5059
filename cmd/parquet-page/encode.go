package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kingpin/v2"
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/dustin/go-humanize"
	"github.com/go-kit/log/level"

	"github.com/segmentio/parquet-arrow"
)

// encodeCommand reads one value per line and writes the framed data pages
// holding them.
type encodeCommand struct {
	app *application

	dataType    string
	compression string
	elideLevels bool
	pageValues  int
	output      string
	input       string
}

func (cmd *encodeCommand) register(app *kingpin.Application) {
	c := app.Command("encode", "Encode values read one per line into framed data pages. Empty lines and \"null\" are null values.")
	c.Flag("type", flagHelp("Arrow data type of the values.", dataTypes)).
		Short('t').
		Default("int64").
		EnumVar(&cmd.dataType, names(dataTypes)...)
	c.Flag("compression", flagHelp("Compression codec of the pages.", compressionCodecs)).
		Short('c').
		Default("uncompressed").
		EnumVar(&cmd.compression, names(compressionCodecs)...)
	c.Flag("elide-levels", "Omit the definition levels of pages which have no null values.").
		BoolVar(&cmd.elideLevels)
	c.Flag("page-values", "Maximum number of values per page, zero writes all values to a single page.").
		Default("0").
		IntVar(&cmd.pageValues)
	c.Flag("output", "File to write the pages to.").
		Short('o').
		Default("-").
		StringVar(&cmd.output)
	c.Arg("input", "File to read values from.").
		Default("-").
		StringVar(&cmd.input)
	c.Action(cmd.run)
}

func (cmd *encodeCommand) run(*kingpin.ParseContext) error {
	if cmd.pageValues < 0 {
		return fmt.Errorf("invalid number of values per page: %d", cmd.pageValues)
	}
	logger := cmd.app.logger
	dataType := dataTypes[cmd.dataType]
	codec := parquet.LookupCompressionCodec(compressionCodecs[cmd.compression])

	input, err := cmd.app.openInput(cmd.input)
	if err != nil {
		return err
	}
	defer input.Close()

	column, err := readColumn(memory.DefaultAllocator, dataType, input)
	if err != nil {
		return fmt.Errorf("%s: %w", cmd.input, err)
	}
	defer column.Release()

	output, err := cmd.app.createOutput(cmd.output)
	if err != nil {
		return err
	}
	defer output.Close()

	writer := parquet.NewPageWriter(output)
	numValues := column.Len()
	pageValues := cmd.pageValues
	if pageValues == 0 {
		pageValues = max(numValues, 1)
	}
	compressedSize, uncompressedSize := 0, 0

	for offset := 0; offset == 0 || offset < numValues; offset += pageValues {
		end := min(offset+pageValues, numValues)
		slice := array.NewSlice(column, int64(offset), int64(end))
		page, err := parquet.ArrayToPage(slice, codec, parquet.ElideDefinitionLevels(cmd.elideLevels))
		slice.Release()
		if err != nil {
			return err
		}
		if err := writer.WritePage(page); err != nil {
			return err
		}

		compressedSize += len(page.Buffer)
		uncompressedSize += page.UncompressedPageSize
		level.Debug(logger).Log("msg", "wrote page", "first", offset, "values", page.NumValues(), "nulls", page.NumNulls, "size", len(page.Buffer))
	}

	if err := output.Close(); err != nil {
		return err
	}

	level.Info(logger).Log(
		"msg", "encoded column",
		"type", dataType,
		"values", numValues,
		"nulls", column.NullN(),
		"pages", writer.NumPages(),
		"compression", codec,
		"size", humanize.Bytes(uint64(compressedSize)),
		"uncompressed_size", humanize.Bytes(uint64(uncompressedSize)),
	)
	return nil
}

func readColumn(mem memory.Allocator, dataType arrow.DataType, r io.Reader) (arrow.Array, error) {
	builder := array.NewBuilder(mem, dataType)
	defer builder.Release()

	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || text == "null" {
			builder.AppendNull()
			continue
		}
		if err := builder.AppendValueFromString(text); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return builder.NewArray(), nil
}
