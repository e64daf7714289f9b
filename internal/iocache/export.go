package iocache

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/matchgrade/internal/contract"
	"github.com/huangsam/matchgrade/internal/parquet"
)

// ExportMatches writes every import run and player grade to
// <outputFile>.imports.parquet and <outputFile>.player_grades.parquet.
func ExportMatches(w io.Writer, sink contract.MatchSink, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if sink == nil {
		return errors.New("match store is not initialized")
	}

	status, err := sink.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get match store status: %w", err)
	}
	if status.TotalImports == 0 {
		return errors.New("no import data found to export")
	}
	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)

	imports, err := sink.GetAllImports()
	if err != nil {
		return fmt.Errorf("failed to retrieve import runs: %w", err)
	}
	grades, err := sink.GetAllPlayerGrades()
	if err != nil {
		return fmt.Errorf("failed to retrieve player grades: %w", err)
	}

	importsFile := outputFile + ".imports.parquet"
	if err := parquet.WriteImportRunsParquet(parquet.ConvertImportRunRecords(imports), importsFile); err != nil {
		return fmt.Errorf("failed to write import runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d import runs to: %s\n", len(imports), importsFile)

	gradesFile := outputFile + ".player_grades.parquet"
	if err := parquet.WritePlayerGradesParquet(parquet.ConvertPlayerGradeRecords(grades), gradesFile); err != nil {
		return fmt.Errorf("failed to write player grades: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d player grades to: %s\n", len(grades), gradesFile)
	return nil
}
