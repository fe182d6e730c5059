package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

func init() {
	color.NoColor = true
}

func runCommand(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	if err := run(args, strings.NewReader(stdin), stdout, stderr); err != nil {
		t.Fatalf("parquet-page %s: %v\n%s", strings.Join(args, " "), err, stderr)
	}
	return stdout.String()
}

func assertOutput(t *testing.T, want, got string) {
	t.Helper()
	if want != got {
		edits := myers.ComputeEdits(span.URIFromPath("want"), want, got)
		t.Errorf("output mismatch:\n%s", gotextdiff.ToUnified("want", "got", want, edits))
	}
}

func TestEncodeDump(t *testing.T) {
	tests := []struct {
		scenario string
		args     []string
		input    string
		output   string
	}{
		{
			scenario: "int32 with nulls",
			args:     []string{"--type=int32"},
			input:    "1\nnull\n3\n",
			output:   "1\nnull\n3\n",
		},

		{
			scenario: "empty lines are nulls",
			args:     []string{"--type=int64", "--compression=snappy"},
			input:    "-7\n\n42\n\n",
			output:   "-7\nnull\n42\nnull\n",
		},

		{
			scenario: "no values",
			args:     []string{"--type=int32", "--compression=gzip"},
			input:    "",
			output:   "",
		},

		{
			scenario: "multiple pages",
			args:     []string{"--type=uint64", "--compression=zstd", "--page-values=2"},
			input:    "1\n18446744073709551615\nnull\n4\n5\n",
			output:   "1\n18446744073709551615\nnull\n4\n5\n",
		},

		{
			scenario: "floating point values",
			args:     []string{"--type=float64", "--compression=brotli"},
			input:    "1.5\n-0.25\nnull\n1e+100\n",
			output:   "1.5\n-0.25\nnull\n1e+100\n",
		},

		{
			scenario: "elided levels",
			args:     []string{"--type=float32", "--compression=lz4_raw", "--elide-levels"},
			input:    "0.5\n2\n3.25\n",
			output:   "0.5\n2\n3.25\n",
		},

		{
			scenario: "dates",
			args:     []string{"--type=date32"},
			input:    "2024-02-29\nnull\n1970-01-01\n",
			output:   "2024-02-29\nnull\n1970-01-01\n",
		},
	}

	for _, test := range tests {
		t.Run(test.scenario, func(t *testing.T) {
			pages := runCommand(t, test.input, append([]string{"encode"}, test.args...)...)
			output := runCommand(t, pages, append([]string{"dump", "--format=text"}, test.args[:min(2, len(test.args))]...)...)
			assertOutput(t, test.output, output)
		})
	}
}

func TestEncodeDumpFiles(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "values.txt")
	pages := filepath.Join(dir, "values.page")

	if err := os.WriteFile(input, []byte("10\n20\nnull\n40\n"), 0644); err != nil {
		t.Fatal(err)
	}
	runCommand(t, "", "encode", "--type=int32", "--compression=snappy", "--output="+pages, input)

	output := runCommand(t, "", "dump", "--type=int32", "--compression=snappy", pages)
	for _, want := range []string{
		"Page 0:",
		"INT32 (int32)",
		"SNAPPY",
		"PLAIN",
		"RLE",
		"| 3 ",
		"null",
		"40",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output does not contain %q:\n%s", want, output)
		}
	}
}

func TestDumpLimit(t *testing.T) {
	pages := runCommand(t, "1\n2\n3\n4\n5\n", "encode", "--type=int32")
	output := runCommand(t, pages, "dump", "--type=int32", "--limit=2")
	if !strings.Contains(strings.ToUpper(output), "3 MORE VALUES") {
		t.Errorf("output does not report the values left out:\n%s", output)
	}
}

func TestEncodeErrors(t *testing.T) {
	tests := []struct {
		scenario string
		args     []string
		input    string
		err      string
	}{
		{
			scenario: "invalid value",
			args:     []string{"encode", "--type=int32"},
			input:    "1\nnope\n",
			err:      "line 2",
		},
		{
			scenario: "unknown type",
			args:     []string{"encode", "--type=string"},
			err:      "string",
		},
		{
			scenario: "negative page size",
			args:     []string{"encode", "--page-values=-1"},
			err:      "-1",
		},
		{
			scenario: "dump of empty input",
			args:     []string{"dump", "--type=int32", "--compression=zstd"},
			input:    "",
		},
	}

	for _, test := range tests {
		t.Run(test.scenario, func(t *testing.T) {
			err := run(test.args, strings.NewReader(test.input), new(bytes.Buffer), new(bytes.Buffer))
			if test.err == "" {
				if err != nil {
					t.Fatal(err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), test.err) {
				t.Errorf("wrong error: want=%q got=%v", test.err, err)
			}
		})
	}
}

func TestDumpCorruptedPages(t *testing.T) {
	pages := runCommand(t, "1\n2\n3\n", "encode", "--type=int32", "--compression=snappy")
	err := run([]string{"dump", "--type=int32"}, strings.NewReader(pages), new(bytes.Buffer), new(bytes.Buffer))
	if err == nil {
		t.Error("pages compressed with snappy were decoded as uncompressed pages")
	}
}
