package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/kingpin/v2"
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/go-kit/log/level"
	"github.com/olekukonko/tablewriter"

	"github.com/segmentio/parquet-arrow"
)

// dumpCommand prints the header and values of framed data pages.
type dumpCommand struct {
	app *application

	dataType    string
	compression string
	format      string
	limit       int
	input       string
}

func (cmd *dumpCommand) register(app *kingpin.Application) {
	c := app.Command("dump", "Print the content of framed data pages.")
	c.Flag("type", flagHelp("Arrow data type the values are decoded as.", dataTypes)).
		Short('t').
		Default("int64").
		EnumVar(&cmd.dataType, names(dataTypes)...)
	c.Flag("compression", flagHelp("Compression codec of the pages.", compressionCodecs)).
		Short('c').
		Default("uncompressed").
		EnumVar(&cmd.compression, names(compressionCodecs)...)
	c.Flag("format", "Output format, \"table\" prints page headers and values, \"text\" prints one value per line.").
		Default("table").
		EnumVar(&cmd.format, "table", "text")
	c.Flag("limit", "Maximum number of values printed per page in the table format, zero prints all values.").
		Default("100").
		IntVar(&cmd.limit)
	c.Arg("input", "File to read pages from.").
		Default("-").
		StringVar(&cmd.input)
	c.Action(cmd.run)
}

func (cmd *dumpCommand) run(*kingpin.ParseContext) error {
	logger := cmd.app.logger
	dataType := dataTypes[cmd.dataType]
	codec := compressionCodecs[cmd.compression]

	typ, err := parquet.PhysicalType(dataType)
	if err != nil {
		return err
	}

	input, err := cmd.app.openInput(cmd.input)
	if err != nil {
		return err
	}
	defer input.Close()

	output := bufio.NewWriter(cmd.app.stdout)
	defer output.Flush()

	reader := parquet.NewPageReader(input, typ, codec)
	for i := 0; ; i++ {
		page, err := reader.ReadPage()
		if err != nil {
			if errors.Is(err, io.EOF) {
				level.Debug(logger).Log("msg", "end of input", "pages", i)
				return output.Flush()
			}
			return fmt.Errorf("page %d: %w", i, err)
		}

		column, err := parquet.DecodePage(page, dataType, parquet.Allocator(memory.DefaultAllocator))
		if err != nil {
			return fmt.Errorf("page %d: %w", i, err)
		}

		switch cmd.format {
		case "text":
			printValues(output, column)
		default:
			printPage(output, i, page, column, cmd.limit)
		}
		column.Release()
	}
}

func printValues(w io.Writer, column arrow.Array) {
	for i := 0; i < column.Len(); i++ {
		fmt.Fprintln(w, valueString(column, i))
	}
}

func printPage(w io.Writer, index int, page *parquet.Page, column arrow.Array, limit int) {
	color.New(color.Bold).Fprintf(w, "Page %d:\n", index)

	header := tablewriter.NewWriter(w)
	header.SetHeader([]string{"Field", "Value"})
	header.SetAlignment(tablewriter.ALIGN_LEFT)
	header.AppendBulk([][]string{
		{"Type", fmt.Sprintf("%s (%s)", page.Type, column.DataType())},
		{"Values", strconv.Itoa(page.NumValues())},
		{"Nulls", strconv.Itoa(column.NullN())},
		{"Encoding", page.Header.Encoding.String()},
		{"Definition levels", page.Header.DefinitionLevelEncoding.String()},
		{"Repetition levels", page.Header.RepetitionLevelEncoding.String()},
		{"Compression", page.Compression.String()},
		{"Size", humanize.Bytes(uint64(page.Size()))},
		{"Uncompressed size", humanize.Bytes(uint64(page.UncompressedPageSize))},
	})
	header.Render()

	numValues := column.Len()
	if numValues == 0 {
		return
	}
	if limit <= 0 || limit > numValues {
		limit = numValues
	}

	values := tablewriter.NewWriter(w)
	values.SetHeader([]string{"#", "Value"})
	for i := 0; i < limit; i++ {
		values.Append([]string{strconv.Itoa(i), valueString(column, i)})
	}
	if limit < numValues {
		values.SetFooter([]string{"", fmt.Sprintf("%d more values", numValues-limit)})
	}
	values.Render()
}

func valueString(column arrow.Array, i int) string {
	if column.IsNull(i) {
		return "null"
	}
	return column.ValueStr(i)
}
