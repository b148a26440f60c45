package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/huangsam/githours/internal/contract"
	"github.com/huangsam/githours/internal/parquet"
	"github.com/huangsam/githours/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteAuthors outputs the per-author breakdown, dispatching based on the output format configured.
// The report's authors are expected to be ranked already.
func WriteAuthors(report *schema.Report, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForAuthors(w, report)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.YAMLOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeYAML(w, report)
		}, "Wrote YAML"); err != nil {
			return fmt.Errorf("error writing YAML output: %w", err)
		}
	case schema.ParquetOut:
		rows := parquet.AuthorRows(report, time.Now().UTC())
		if err := parquet.WriteAuthorWorksParquet(rows, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAuthorTable(w, report, cfg, duration)
		}, "Wrote table")
	}
	return nil
}

// writeAuthorTable generates and writes the human-readable table.
func writeAuthorTable(writer io.Writer, report *schema.Report, cfg *contract.Config, duration time.Duration) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	table.Header([]string{"Rank", "Author", "Hours", "Commits", "Share"})

	// 2. Configure Alignment
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	maxWidth := GetMaxTableAuthorWidth(cfg)
	var data [][]string
	for i, a := range report.Authors {
		data = append(data, []string{
			strconv.Itoa(i + 1),                          // Rank
			contract.TruncateIdentity(a.Email, maxWidth), // Author
			strconv.Itoa(a.Hours),                        // Hours
			strconv.Itoa(a.Commits),                      // Commits
			formatShare(a.Share(report.Total)),           // Share
		})
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	highlight := fmt.Sprint
	if cfg.UseColors {
		highlight = color.New(color.FgGreen, color.Bold).SprintFunc()
	}
	totals := fmt.Sprintf("Total: %d hours across %d commits", report.Total.Hours, report.Total.Commits)
	if _, err := fmt.Fprintf(writer, "%s (%d authors, %d branches)\n", highlight(totals), len(report.Authors), len(report.Branches)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v with %d workers\n", duration, cfg.Workers); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForAuthors writes the ranked authors in CSV format.
func writeCSVResultsForAuthors(w io.Writer, report *schema.Report) error {
	header := []string{"rank", "email", "hours", "commits", "share"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, a := range report.Authors {
			rec := []string{
				strconv.Itoa(i + 1),
				a.Email,
				strconv.Itoa(a.Hours),
				strconv.Itoa(a.Commits),
				strconv.FormatFloat(a.Share(report.Total), 'f', 4, 64),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
