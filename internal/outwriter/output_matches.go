package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/huangsam/matchgrade/internal/contract"
	"github.com/huangsam/matchgrade/internal/parquet"
	"github.com/huangsam/matchgrade/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteMatchResults outputs graded matches, dispatching based on the output format configured.
func WriteMatchResults(results []schema.ImportResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMatchesJSON(w, results)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMatchesCSV(w, results, cfg.Precision)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeMatchesParquet(results, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMatchesText(w, results, cfg, duration)
		}, "Wrote table")
	}
	return nil
}

// writeMatchesText writes one table per match followed by a run summary.
func writeMatchesText(w io.Writer, results []schema.ImportResult, cfg *contract.Config, duration time.Duration) error {
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			if _, err := fmt.Fprintf(w, "✖ %s: %v\n\n", r.SourcePath, r.Err); err != nil {
				return err
			}
			continue
		}
		if err := writeMatchTable(w, r.Payload, cfg); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Graded %d of %d reports in %v with %d workers. Store backend: %s\n",
		len(results)-failed, len(results), duration, cfg.Workers, cfg.StoreBackend); err != nil {
		return err
	}
	return nil
}

func matchTitle(p *schema.MatchPayload) string {
	title := fmt.Sprintf("%s %s %s", p.HomeTeam, p.Score, p.AwayTeam)
	var extra []string
	if p.Date != "" {
		extra = append(extra, p.Date)
	}
	if p.Round != "" {
		extra = append(extra, p.Round)
	}
	if len(extra) > 0 {
		title += " (" + strings.Join(extra, ", ") + ")"
	}
	return title
}

func gradeLabel(g *schema.GradeResult, useColors bool) string {
	if useColors {
		return contract.GetColorLabel(g.Score10())
	}
	return contract.GetPlainLabel(g.Score10())
}

// writeMatchTable renders the player table of one match.
func writeMatchTable(w io.Writer, p *schema.MatchPayload, cfg *contract.Config) error {
	fmtFloat, fmtOptional := createFormatters(cfg.Precision)
	bold := fmt.Sprint
	if cfg.UseColors {
		bold = color.New(color.Bold).Sprint
	}
	if _, err := fmt.Fprintf(w, "⚽ %s\n", bold(matchTitle(p))); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	headers := []string{"Side", "#", "Player", "Role", "Min", "Grade", "Label", "Delta"}
	if cfg.Detail {
		headers = append(headers, "Impact", "Positions", "Conf")
	}
	if cfg.Explain {
		headers = append(headers, "Explain")
	}
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := GetMaxTableNameWidth(cfg)
	var data [][]string
	for _, pl := range p.Players {
		name := pl.CanonicalName
		if pl.Unresolved {
			name += " (?)"
		}
		grade := "-"
		if pl.GameGrade != nil && pl.GameGrade.Overall10 != nil {
			grade = fmtFloat(*pl.GameGrade.Overall10)
		}
		row := []string{
			string(pl.Team),
			strconv.Itoa(pl.Number),
			contract.TruncateName(name, nameWidth),
			string(pl.RolePlayed.Primary),
			strconv.Itoa(pl.MinutesPlayed),
			grade,
			gradeLabel(pl.GameGrade, cfg.UseColors),
			formatDelta(pl.Delta, cfg.Precision),
		}
		if cfg.Detail {
			var conf *float64
			if pl.GameGrade != nil {
				conf = pl.GameGrade.Confidence
			}
			row = append(row, fmtFloat(pl.ImpactScore), strings.Join(pl.Positions, "|"), fmtOptional(conf))
		}
		if cfg.Explain {
			row = append(row, formatTopBreakdown(pl.GameGrade))
		}
		data = append(data, row)
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	for _, best := range []struct {
		team    string
		summary *schema.PerformerSummary
	}{{p.HomeTeam, p.BestPerformers.Home}, {p.AwayTeam, p.BestPerformers.Away}} {
		line := "none"
		if s := best.summary; s != nil {
			line = fmt.Sprintf("%s (%s, %s)", s.Name, s.Role, fmtFloat(s.GameGrade.Score10()))
		}
		if _, err := fmt.Fprintf(w, "Best %s: %s\n", best.team, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

// writeMatchesCSV writes one row per player across all successful results.
func writeMatchesCSV(w io.Writer, results []schema.ImportResult, precision int) error {
	fmtFloat, fmtOptional := createFormatters(precision)
	header := []string{
		"match_id", "source", "side", "number", "player", "player_id", "role",
		"minutes", "overall10", "overall100", "label", "delta", "impact", "unresolved",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range results {
			if r.Err != nil {
				continue
			}
			for _, pl := range r.Payload.Players {
				var o10, o100 *float64
				if pl.GameGrade != nil {
					o10, o100 = pl.GameGrade.Overall10, pl.GameGrade.Overall100
				}
				rec := []string{
					r.Payload.MatchID,
					r.SourcePath,
					string(pl.Team),
					strconv.Itoa(pl.Number),
					pl.CanonicalName,
					pl.PlayerID,
					string(pl.RolePlayed.Primary),
					strconv.Itoa(pl.MinutesPlayed),
					fmtOptional(o10),
					fmtOptional(o100),
					contract.GetPlainLabel(pl.GameGrade.Score10()),
					fmtOptional(pl.Delta),
					fmtFloat(pl.ImpactScore),
					strconv.FormatBool(pl.Unresolved),
				}
				if err := cw.Write(rec); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// jsonMatchResult is the JSON shape of one import result.
type jsonMatchResult struct {
	SourcePath string               `json:"sourcePath"`
	Error      string               `json:"error,omitempty"`
	Match      *schema.MatchPayload `json:"match,omitempty"`
}

func writeMatchesJSON(w io.Writer, results []schema.ImportResult) error {
	output := make([]jsonMatchResult, len(results))
	for i, r := range results {
		output[i] = jsonMatchResult{SourcePath: r.SourcePath, Match: r.Payload}
		if r.Err != nil {
			output[i].Error = r.Err.Error()
			output[i].Match = nil
		}
	}
	return writeJSON(w, output)
}

// writeMatchesParquet writes every player grade of the successful results to outputFile.
func writeMatchesParquet(results []schema.ImportResult, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for parquet output")
	}
	var records []schema.PlayerGradeRecord
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		rows, err := schema.GradeRecords(0, r.Payload)
		if err != nil {
			return err
		}
		records = append(records, rows...)
	}
	return parquet.WritePlayerGradesParquet(parquet.ConvertPlayerGradeRecords(records), outputFile)
}
