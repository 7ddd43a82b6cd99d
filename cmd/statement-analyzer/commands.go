package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/statement-analyzer/internal/export"
	"github.com/example/statement-analyzer/internal/extract"
	"github.com/example/statement-analyzer/internal/report"
	"github.com/example/statement-analyzer/internal/server"
	"github.com/example/statement-analyzer/internal/statement"
	"github.com/example/statement-analyzer/pkg/transaction"
)

const flagDateFormat = "2006-01-02"

var (
	fromDate     string
	toDate       string
	categoryName string
	exportFormat string
	outputPath   string
)

var extractCmd = &cobra.Command{
	Use:   "extract FILE",
	Short: "Print the extracted transactions as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, filtered, err := loadStatement(cmd, args[0])
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Metadata     statement.Metadata        `json:"metadata"`
			Transactions []transaction.Transaction `json:"transactions"`
			SkippedPages []int                     `json:"skipped_pages,omitempty"`
		}{result.Metadata, filtered.Transactions, result.SkippedPages})
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary FILE",
	Short: "Print an account summary with monthly and category totals",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, filtered, err := loadStatement(cmd, args[0])
		if err != nil {
			return err
		}
		if filtered.Empty() {
			fmt.Fprintln(cmd.OutOrStdout(), "No transactions match the selected filters.")
			return nil
		}
		return report.Write(cmd.OutOrStdout(), report.NewFormatter(cfg.Currency), result.Metadata, filtered)
	},
}

var exportCmd = &cobra.Command{
	Use:   "export FILE",
	Short: "Export the transactions as CSV or XLSX",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := export.ParseFormat(exportFormat)
		if err != nil {
			return err
		}

		_, filtered, err := loadStatement(cmd, args[0])
		if err != nil {
			return err
		}

		var w io.Writer = cmd.OutOrStdout()
		if outputPath != "" {
			f, err := os.Create(outputPath)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer f.Close()
			w = f
		}

		if err := export.Write(w, format, filtered); err != nil {
			return err
		}
		log.Info().Int("transactions", filtered.Total).Str("format", string(format)).Str("output", outputPath).Msg("Exported")
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the statement analysis HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		srv := server.New(extract.New(), cfg.Categorizer(), log, cfg.Server.MaxUploadMB)
		return srv.ListenAndServe(cmd.Context(), cfg.Server.Addr)
	},
}

func init() {
	for _, c := range []*cobra.Command{extractCmd, summaryCmd, exportCmd} {
		c.Flags().StringVar(&fromDate, "from", "", "only include transactions on or after this date (YYYY-MM-DD)")
		c.Flags().StringVar(&toDate, "to", "", "only include transactions on or before this date (YYYY-MM-DD)")
		c.Flags().StringVar(&categoryName, "category", "", "only include transactions in this category")
	}
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "export format (csv, xlsx)")
	exportCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default stdout)")
}

// loadStatement extracts, validates and categorizes the PDF at path and
// applies the --from/--to and --category filters
func loadStatement(cmd *cobra.Command, path string) (*extract.Result, *transaction.TransactionList, error) {
	from, err := parseDateFlag("from", fromDate)
	if err != nil {
		return nil, nil, err
	}
	to, err := parseDateFlag("to", toDate)
	if err != nil {
		return nil, nil, err
	}

	result, err := extract.New().ExtractFile(cmd.Context(), path)
	if err != nil {
		return nil, nil, err
	}
	if err := result.Validate(); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	if !result.Metadata.Complete() {
		log.Warn().Interface("metadata", result.Metadata).Msg("Statement headers incomplete")
	}

	cfg.Categorizer().Apply(result.Transactions)
	return result, result.Transactions.FilterByDate(from, to).FilterByCategory(categoryName), nil
}

func parseDateFlag(name, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(flagDateFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s date %q: %w", name, value, err)
	}
	return t, nil
}
