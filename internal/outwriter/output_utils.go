package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/huangsam/matchgrade/internal/contract"
	"github.com/huangsam/matchgrade/schema"
)

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	return writeRows(csvWriter)
}

// createFormatters creates the common formatter closures used across multiple output types.
func createFormatters(precision int) (fmtFloat func(float64) string, fmtOptional func(*float64) string) {
	fmtFloat = func(v float64) string {
		return fmt.Sprintf("%.*f", precision, v)
	}
	fmtOptional = func(v *float64) string {
		if v == nil {
			return ""
		}
		return fmtFloat(*v)
	}
	return fmtFloat, fmtOptional
}

// breakdownEntry is one contribution to a grade.
type breakdownEntry struct {
	Key   schema.MetricKey
	Value float64
}

const (
	breakdownMinimum = 0.5
	topNBreakdown    = 3
)

// formatTopBreakdown lists the metrics that moved a grade the most, largest first.
func formatTopBreakdown(g *schema.GradeResult) string {
	if g == nil || len(g.Breakdown) == 0 {
		return "Not applicable"
	}
	var entries []breakdownEntry
	for k, v := range g.Breakdown {
		if math.Abs(v) >= breakdownMinimum || g.Overall100 == nil {
			entries = append(entries, breakdownEntry{Key: k, Value: v})
		}
	}
	if len(entries) == 0 {
		return "No meaningful contributors"
	}
	sort.Slice(entries, func(i, j int) bool {
		ai, aj := math.Abs(entries[i].Value), math.Abs(entries[j].Value)
		if ai != aj {
			return ai > aj
		}
		return entries[i].Key < entries[j].Key
	})

	parts := make([]string, 0, topNBreakdown)
	for _, e := range entries[:min(len(entries), topNBreakdown)] {
		parts = append(parts, string(e.Key))
	}
	return strings.Join(parts, " > ")
}

// formatDelta renders a baseline delta with a direction marker.
func formatDelta(delta *float64, precision int) string {
	switch {
	case delta == nil:
		return "-"
	case *delta > 0:
		return fmt.Sprintf("+%.*f ▲", precision, *delta)
	case *delta < 0:
		return fmt.Sprintf("%.*f ▼", precision, *delta)
	default:
		return fmt.Sprintf("%.*f", precision, 0.0)
	}
}
