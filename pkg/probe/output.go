package probe

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"golang.org/x/term"
)

// Output formats
const (
	OutputAuto  = "auto"
	OutputCSV   = "csv"
	OutputTable = "table"
)

// Writer writes results in one output format
type Writer func(w io.Writer, res *Result) error

// WriterFor returns the writer for a format name. Auto picks an aligned table
// when f is a terminal and CSV otherwise.
func WriterFor(format string, f *os.File) (Writer, error) {
	switch strings.ToLower(format) {
	case OutputCSV:
		return WriteCSV, nil
	case OutputTable:
		return WriteTable, nil
	case OutputAuto, "":
		if f != nil && term.IsTerminal(int(f.Fd())) {
			return WriteTable, nil
		}
		return WriteCSV, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

func header(res *Result) []string {
	row := make([]string, 0, len(res.Columns)+1)
	row = append(row, "time")
	for _, col := range res.Columns {
		row = append(row, col.Name)
	}
	return row
}

func (res *Result) rows() int {
	if len(res.Columns) == 0 {
		return 0
	}
	return len(res.Columns[0].Values)
}

func (res *Result) time(row int) float64 {
	return float64(row*res.Every) / float64(res.SampleRate)
}

// WriteCSV writes one row per recorded frame with a leading time column
func WriteCSV(w io.Writer, res *Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header(res)); err != nil {
		return err
	}

	record := make([]string, len(res.Columns)+1)
	for row := 0; row < res.rows(); row++ {
		record[0] = strconv.FormatFloat(res.time(row), 'g', 8, 64)
		for i, col := range res.Columns {
			record[i+1] = strconv.FormatFloat(float64(col.Values[row]), 'g', 7, 32)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTable writes an aligned table headed by the scenario name and timing
func WriteTable(w io.Writer, res *Result) error {
	fmt.Fprintf(w, "# %s (%s, %d frames at %.0f Hz", res.Name, res.Module, res.Frames, res.SampleRate)
	if res.Timing.Count > 0 {
		fmt.Fprintf(w, ", %.0fx realtime", res.Timing.RealtimeFactor(float64(res.SampleRate)))
	}
	fmt.Fprintln(w, ")")

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, strings.Join(header(res), "\t")+"\t")
	for row := 0; row < res.rows(); row++ {
		fmt.Fprintf(tw, "%.4f\t", res.time(row))
		for _, col := range res.Columns {
			fmt.Fprintf(tw, "%.3f\t", col.Values[row])
		}
		fmt.Fprintln(tw)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, issue := range res.Issues {
		fmt.Fprintf(w, "! %s\n", issue)
	}
	return nil
}
