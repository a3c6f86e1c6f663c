package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/network-link-manager/internal/engine"
	"github.com/donaldgifford/network-link-manager/internal/ingest"
	"github.com/donaldgifford/network-link-manager/internal/report"
)

type analyzeOptions struct {
	outDir string
	format string
	sheet  string
}

func analyzeCmd() *cobra.Command {
	opts := &analyzeOptions{}

	root := &cobra.Command{
		Use:   "analyze",
		Short: "Run an analysis on local files",
		Long: "Runs an analysis on local CSV or XLSX files and writes the reports to\n" +
			"a directory, one CSV per report, a single workbook, or raw JSON.",
	}
	root.PersistentFlags().StringVarP(&opts.outDir, "out", "o", ".", "output directory")
	root.PersistentFlags().
		StringVar(&opts.format, "format", report.FormatCSV, "report format (csv, xlsx, json)")
	root.PersistentFlags().StringVar(&opts.sheet, "sheet", "", "worksheet to read from xlsx inputs (default first)")

	root.AddCommand(
		analyzeLinksCmd(opts),
		analyzePortsCmd(opts),
		analyzeDedupCmd(opts),
	)
	return root
}

func analyzeLinksCmd(opts *analyzeOptions) *cobra.Command {
	var mainFile, refFile string

	cmd := &cobra.Command{
		Use:   "links",
		Short: "Compare a links file against a reference",
		Example: `  network-link-manager analyze links --main links.xlsx --reference ref.csv --out reports
  network-link-manager analyze links --main links.csv --reference ref.csv --format xlsx`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng, err := newLocalEngine(cmd)
			if err != nil {
				return err
			}
			main, err := ingest.ReadFile(mainFile, opts.sheet)
			if err != nil {
				return err
			}
			ref, err := ingest.ReadFile(refFile, opts.sheet)
			if err != nil {
				return err
			}

			result, err := eng.AnalyzeLinks(context.Background(), main, ref)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total links: %d\nMissing: %d\nPort corrections: %d\n",
				result.TotalLinks, len(result.Missing), len(result.Corrections))
			return writeReports(out, opts, engine.OpLinks, report.AnalysisSheets(result), result)
		},
	}
	cmd.Flags().StringVar(&mainFile, "main", "", "links file to analyze")
	cmd.Flags().StringVar(&refFile, "reference", "", "reference links file")
	cobra.CheckErr(cmd.MarkFlagRequired("main"))
	cobra.CheckErr(cmd.MarkFlagRequired("reference"))
	return cmd
}

func analyzePortsCmd(opts *analyzeOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:     "ports",
		Short:   "Find device ports used by more than one link",
		Example: `  network-link-manager analyze ports --file links.csv`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng, err := newLocalEngine(cmd)
			if err != nil {
				return err
			}
			u, err := ingest.ReadFile(file, opts.sheet)
			if err != nil {
				return err
			}

			result, err := eng.FindDuplicatePorts(context.Background(), u)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Rows with duplicate ports: %d\nReused ports: %d\n",
				len(result.Rows), len(result.Groups))
			return writeReports(out, opts, engine.OpDuplicatePorts, report.DuplicatePortSheets(result), result)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "links file")
	cobra.CheckErr(cmd.MarkFlagRequired("file"))
	return cmd
}

func analyzeDedupCmd(opts *analyzeOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:     "dedup",
		Short:   "Remove links recorded in both directions or more than once",
		Example: `  network-link-manager analyze dedup --file links.xlsx --format xlsx`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng, err := newLocalEngine(cmd)
			if err != nil {
				return err
			}
			u, err := ingest.ReadFile(file, opts.sheet)
			if err != nil {
				return err
			}

			result, err := eng.RemoveDuplicateLinks(context.Background(), u)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Original rows: %d\nUnique links: %d\nDuplicate groups: %d\nRows removed: %d\n",
				result.OriginalRows, result.UniqueLinks, result.Groups, len(result.Duplicates))
			return writeReports(out, opts, engine.OpDuplicateLinks, report.DuplicateLinkSheets(result), result)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "links file")
	cobra.CheckErr(cmd.MarkFlagRequired("file"))
	return cmd
}

func newLocalEngine(cmd *cobra.Command) (*engine.Engine, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	log := newLogger(cfg)
	return engine.NewEngine(
		ingest.NewReader(ingest.WithMaxRows(cfg.Limits.MaxRows)),
		newNotifier(cfg, log),
		engine.WithLogger(log),
		engine.WithNotifyClean(cfg.Notifications.Discord.NotifyClean),
	), nil
}

func writeReports(out io.Writer, opts *analyzeOptions, op string, sheets []report.Sheet, v any) error {
	paths, err := report.WriteDir(opts.outDir, opts.format, op, sheets, v)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Fprintln(out, "wrote", p)
	}
	return nil
}
