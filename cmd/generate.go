// =============================================================================
// Australian POS Data Generator - Generate Command
// =============================================================================
//
// This file defines the 'generate' command, the main batch entry point: it
// runs the full generation pipeline and writes the dataset in each requested
// output format.
//
// COMMAND USAGE:
//   posgen generate
//   posgen generate --seed 7 --businesses 3 --customers 200
//   posgen generate --formats csv,json,excel --output ./out
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/aus-pos-datagen/internal/export"
	"github.com/ginjaninja78/aus-pos-datagen/internal/generator"
	"github.com/ginjaninja78/aus-pos-datagen/internal/models"
	"github.com/ginjaninja78/aus-pos-datagen/pkg/utils"
)

var generateFlags struct {
	seed       int64
	businesses int
	customers  int
	startDate  string
	endDate    string
	outputDir  string
	formats    []string
}

// generateCmd represents the 'generate' command.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a complete synthetic POS dataset",
	Long: `Generate businesses, customers, transactions and returns as one
internally consistent dataset, then write it in each requested format.

Supported formats: csv, json, excel, sqlite, postgres.

The run is deterministic: the same configuration and seed always produce
identical output. Command-line flags override the corresponding
configuration file values.`,
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	log := newLogger()
	defer log.Sync()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Flag overrides; only flags the user actually set are applied.
	if cmd.Flags().Changed("seed") {
		cfg.Seed = generateFlags.seed
	}
	if cmd.Flags().Changed("businesses") {
		cfg.BusinessCount = generateFlags.businesses
	}
	if cmd.Flags().Changed("customers") {
		cfg.CustomerCount = generateFlags.customers
	}
	if cmd.Flags().Changed("start") {
		cfg.StartDate = generateFlags.startDate
	}
	if cmd.Flags().Changed("end") {
		cfg.EndDate = generateFlags.endDate
	}
	if cmd.Flags().Changed("output") {
		cfg.Output.Dir = generateFlags.outputDir
	}
	if cmd.Flags().Changed("formats") {
		cfg.Output.Formats = generateFlags.formats
	}

	gen, err := generator.New(cfg, log)
	if err != nil {
		return err
	}
	dataset, stats, err := gen.Run()
	if err != nil {
		return err
	}

	written, err := writeOutputs(cmd.Context(), log, cfg.Output.Dir, cfg.Output.Formats, cfg.Postgres.DSN, dataset)
	if err != nil {
		return err
	}

	summary := buildSummary(cfg.Seed, stats, written)
	fmt.Print(summary)

	if path, err := utils.WriteSummaryLog(cfg.Output.Dir, summary); err != nil {
		log.Warn("failed to write summary log", zap.Error(err))
	} else {
		log.Info("summary log written", zap.String("path", path))
	}
	return nil
}

// writeOutputs dispatches the dataset to every requested format and returns
// a human-readable list of what was written.
func writeOutputs(ctx context.Context, log *zap.Logger, dir string, formats []string, postgresDSN string, ds *models.Dataset) ([]string, error) {
	var written []string
	for _, format := range formats {
		switch strings.ToLower(strings.TrimSpace(format)) {
		case "csv":
			paths, err := export.WriteCSV(ds, dir)
			if err != nil {
				return nil, err
			}
			log.Info("csv export complete", zap.Int("files", len(paths)))
			written = append(written, fmt.Sprintf("csv: %d files in %s", len(paths), dir))
		case "json":
			paths, err := export.WriteJSON(ds, dir)
			if err != nil {
				return nil, err
			}
			log.Info("json export complete", zap.Int("files", len(paths)))
			written = append(written, fmt.Sprintf("json: %d files in %s", len(paths), dir))
		case "excel", "xlsx":
			path, err := export.WriteExcel(ds, dir)
			if err != nil {
				return nil, err
			}
			log.Info("excel export complete", zap.String("path", path))
			written = append(written, "excel: "+path)
		case "sqlite":
			path, err := export.WriteSQLite(ds, dir)
			if err != nil {
				return nil, err
			}
			log.Info("sqlite export complete", zap.String("path", path))
			written = append(written, "sqlite: "+path)
		case "postgres":
			if postgresDSN == "" {
				return nil, &models.ConfigurationError{Field: "postgres.dsn", Reason: "required for postgres output"}
			}
			if err := export.WritePostgres(ctx, ds, postgresDSN); err != nil {
				return nil, err
			}
			log.Info("postgres export complete")
			written = append(written, "postgres: loaded")
		default:
			return nil, &models.ConfigurationError{Field: "output.formats", Reason: "unknown format " + format}
		}
	}
	return written, nil
}

func buildSummary(seed int64, stats generator.Stats, written []string) string {
	var b strings.Builder
	b.WriteString("==============================================\n")
	b.WriteString("Generation Summary\n")
	b.WriteString("==============================================\n")
	fmt.Fprintf(&b, "Seed:          %d\n", seed)
	fmt.Fprintf(&b, "Businesses:    %d\n", stats.Businesses)
	fmt.Fprintf(&b, "Customers:     %d\n", stats.Customers)
	fmt.Fprintf(&b, "Transactions:  %d\n", stats.Transactions)
	fmt.Fprintf(&b, "Line Items:    %d\n", stats.LineItems)
	fmt.Fprintf(&b, "Returns:       %d\n", stats.Returns)
	fmt.Fprintf(&b, "Elapsed:       %s\n", stats.Elapsed.Round(time.Millisecond))
	for _, w := range written {
		fmt.Fprintf(&b, "Output:        %s\n", w)
	}
	b.WriteString("==============================================\n")
	return b.String()
}

func init() {
	generateCmd.Flags().Int64Var(&generateFlags.seed, "seed", 42, "Random seed (overrides config)")
	generateCmd.Flags().IntVar(&generateFlags.businesses, "businesses", 5, "Number of businesses (overrides config)")
	generateCmd.Flags().IntVar(&generateFlags.customers, "customers", 1000, "Number of customers (overrides config)")
	generateCmd.Flags().StringVar(&generateFlags.startDate, "start", "", "Range start date, YYYY-MM-DD (overrides config)")
	generateCmd.Flags().StringVar(&generateFlags.endDate, "end", "", "Range end date, YYYY-MM-DD (overrides config)")
	generateCmd.Flags().StringVar(&generateFlags.outputDir, "output", "", "Output directory (overrides config)")
	generateCmd.Flags().StringSliceVar(&generateFlags.formats, "formats", nil, "Output formats: csv,json,excel,sqlite,postgres (overrides config)")

	rootCmd.AddCommand(generateCmd)
}
