package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/huangsam/githours/internal/contract"
	"github.com/huangsam/githours/internal/parquet"
	"github.com/huangsam/githours/schema"
)

// WriteTotal outputs the repository total, dispatching based on the output format configured.
// Text output without a file goes to stderr as a diagnostic record.
func WriteTotal(report *schema.Report, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report.Total)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForTotal(w, report.Total)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.YAMLOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeYAML(w, report.Total)
		}, "Wrote YAML"); err != nil {
			return fmt.Errorf("error writing YAML output: %w", err)
		}
	case schema.ParquetOut:
		rows := []parquet.TotalWorkRow{parquet.TotalRow(report, time.Now().UTC())}
		if err := parquet.WriteTotalWorkParquet(rows, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
	default:
		if cfg.OutputFile == "" {
			return writeTotalText(os.Stderr, report.Total)
		}
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTotalText(w, report.Total)
		}, "Wrote total")
	}
	return nil
}

// writeTotalText writes the total in its compact record form.
func writeTotalText(w io.Writer, total schema.TotalWork) error {
	_, err := fmt.Fprintf(w, "{ hours: %d, commits: %d }\n", total.Hours, total.Commits)
	return err
}

// writeCSVResultsForTotal writes the total as a single CSV record.
func writeCSVResultsForTotal(w io.Writer, total schema.TotalWork) error {
	return writeCSVWithHeader(w, []string{"hours", "commits"}, func(cw *csv.Writer) error {
		return cw.Write([]string{strconv.Itoa(total.Hours), strconv.Itoa(total.Commits)})
	})
}
