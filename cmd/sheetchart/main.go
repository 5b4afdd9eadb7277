// Package main provides the CLI entry point for sheetchart-go.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetchart-go/internal/config"
	"github.com/ukaji3/sheetchart-go/internal/logging"
	"github.com/ukaji3/sheetchart-go/pkg/sheetchart"
	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/models"
	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/output"
	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/parser"
	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/render"
)

var (
	configPath string
	logLevel   string
	pretty     bool
	outputPath string
	sheetName  string
	xColumn    string
	yColumn    string
	chartKind  string
	chartTitle string
	xlsxPath   string
)

// projection is the JSON document printed by the project command.
type projection struct {
	Series models.ChartSeries `json:"series"`
	Slices []render.Slice     `json:"slices,omitempty"`
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sheetchart",
		Short: "Project spreadsheet columns into chart series",
		Long: `sheetchart-go loads an xlsx file, picks two of its columns and
projects them into a bar, line, or pie chart series.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (default: $SHEETCHART_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentFlags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.PersistentFlags().StringVar(&sheetName, "sheet", "", "Sheet to read (default: first sheet)")

	rootCmd.AddCommand(newColumnsCmd(), newProjectCmd(), newHistoryCmd())
	return rootCmd
}

func newColumnsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "columns [input.xlsx]",
		Short: "List the columns available for chart axes",
		Args:  cobra.ExactArgs(1),
		RunE:  runColumns,
	}
}

func newProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project [input.xlsx]",
		Short: "Project two columns into a chart series",
		Args:  cobra.ExactArgs(1),
		RunE:  runProject,
	}

	cmd.Flags().StringVar(&xColumn, "x", "", "Category column (default: first column)")
	cmd.Flags().StringVar(&yColumn, "y", "", "Value column (default: second column)")
	cmd.Flags().StringVar(&chartKind, "kind", "", "Chart kind: bar, line, pie (default from config)")
	cmd.Flags().StringVar(&chartTitle, "title", "", "Chart title")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Also write the chart to this xlsx file")
	return cmd
}

func newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history [input.xlsx...]",
		Short: "Ingest files in order and print the upload history and counters",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runHistory,
	}
}

// newSession loads configuration and builds a logger and session from it.
func newSession() (*sheetchart.Session, *slog.Logger, func() error, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, err
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if sheetName != "" {
		cfg.Ingest.Sheet = sheetName
	}

	log, closeLog, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, nil, nil, err
	}

	kind, err := models.ParseChartKind(cfg.Chart.Kind)
	if err != nil {
		closeLog()
		return nil, nil, nil, err
	}

	opts := sheetchart.DefaultSessionOptions()
	opts.Policy = sheetchart.IngestPolicy(cfg.Ingest.Policy)
	opts.Kind = kind
	opts.Title = cfg.Chart.Title
	opts.Palette = cfg.Chart.Palette
	opts.Logger = log

	session := sheetchart.NewSession(parser.NewXLSXDecoder(cfg.Ingest.Sheet), opts)
	return session, log, closeLog, nil
}

func runColumns(cmd *cobra.Command, args []string) error {
	session, _, closeLog, err := newSession()
	if err != nil {
		return err
	}
	defer closeLog()

	ds, err := session.IngestFile(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	jsonData, err := output.SummaryToJSON(ds, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	return writeOutput(cmd, jsonData)
}

func runProject(cmd *cobra.Command, args []string) error {
	session, log, closeLog, err := newSession()
	if err != nil {
		return err
	}
	defer closeLog()

	if _, err := session.IngestFile(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	if chartKind != "" {
		kind, err := models.ParseChartKind(chartKind)
		if err != nil {
			return err
		}
		if err := session.SetKind(kind); err != nil {
			return err
		}
	}
	if chartTitle != "" {
		session.SetTitle(chartTitle)
	}
	if xColumn != "" || yColumn != "" {
		cfg := session.Config()
		x, y := cfg.XColumn, cfg.YColumn
		if xColumn != "" {
			x = xColumn
		}
		if yColumn != "" {
			y = yColumn
		}
		session.SetAxes(x, y)
	}

	series := session.Project()
	if len(series.Points) == 0 {
		log.Warn("projection is empty",
			slog.String("x_column", series.XColumn),
			slog.String("y_column", series.YColumn),
			slog.Any("columns", session.Columns()))
	}

	result := projection{Series: series}
	if series.Kind == models.ChartPie {
		result.Slices = render.PieSlices(series.Points, series.Palette)
	}

	jsonData, err := output.ToJSON(result, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	if err := writeOutput(cmd, jsonData); err != nil {
		return err
	}

	if xlsxPath != "" {
		if err := render.SaveWorkbook(series, xlsxPath); err != nil {
			return fmt.Errorf("failed to write chart workbook: %w", err)
		}
		log.Info("chart workbook written", slog.String("path", xlsxPath))
	}
	return nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	session, log, closeLog, err := newSession()
	if err != nil {
		return err
	}
	defer closeLog()

	var failed int
	for _, path := range args {
		if _, err := session.IngestFile(cmd.Context(), path); err != nil {
			failed++
			log.Error("skipping file", slog.String("path", path), slog.String("error", err.Error()))
		}
	}

	report := output.NewHistoryReport(session.Ledger().Entries(), session.Current())
	jsonData, err := output.HistoryReportToJSON(report, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	if err := writeOutput(cmd, jsonData); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to ingest", failed, len(args))
	}
	return nil
}

// writeOutput writes data to --output, or to the command's stdout.
func writeOutput(cmd *cobra.Command, data []byte) error {
	if outputPath != "" {
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
