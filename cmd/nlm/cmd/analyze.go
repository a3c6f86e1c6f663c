package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/network-link-manager/internal/ingest"
	"github.com/donaldgifford/network-link-manager/internal/report"
)

func linksCmd() *cobra.Command {
	var refFile, sheet string

	cmd := &cobra.Command{
		Use:   "links <main-file>",
		Short: "Compare a links file against the reference",
		Long: "Compares the links file against the reference dataset. With --reference\n" +
			"the file is uploaded and stored in the session; otherwise the stored\n" +
			"reference is used.",
		Example: `  nlm links links.xlsx --reference reference.xlsx
  nlm links links.csv --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := sessionID()
			if err != nil {
				return err
			}
			main, err := ingest.ReadFile(args[0], sheet)
			if err != nil {
				return err
			}
			var ref *ingest.Upload
			if refFile != "" {
				if ref, err = ingest.ReadFile(refFile, sheet); err != nil {
					return err
				}
			}

			result, err := newClient().AnalyzeLinks(context.Background(), id, main, ref)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), result)
			}
			return printSheets(cmd.OutOrStdout(), report.AnalysisSheets(result))
		},
	}
	cmd.Flags().StringVar(&refFile, "reference", "", "reference file to upload and store")
	cmd.Flags().StringVar(&sheet, "sheet", "", "worksheet to read (xlsx only, default first)")
	return cmd
}

func portsCmd() *cobra.Command {
	var sheet string

	cmd := &cobra.Command{
		Use:   "ports [file]",
		Short: "Find device ports used by more than one link",
		Example: `  nlm ports links.csv
  nlm ports            # checks the stored reference`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, u, err := datasetArgs(args, sheet)
			if err != nil {
				return err
			}
			result, err := newClient().FindDuplicatePorts(context.Background(), id, u)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), result)
			}
			return printSheets(cmd.OutOrStdout(), report.DuplicatePortSheets(result))
		},
	}
	cmd.Flags().StringVar(&sheet, "sheet", "", "worksheet to read (xlsx only, default first)")
	return cmd
}

func dedupCmd() *cobra.Command {
	var sheet string

	cmd := &cobra.Command{
		Use:   "dedup [file]",
		Short: "Remove links recorded in both directions or more than once",
		Example: `  nlm dedup links.xlsx
  nlm dedup links.xlsx --output json > cleaned.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, u, err := datasetArgs(args, sheet)
			if err != nil {
				return err
			}
			result, err := newClient().RemoveDuplicateLinks(context.Background(), id, u)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), result)
			}
			return printSheets(cmd.OutOrStdout(), report.DuplicateLinkSheets(result))
		},
	}
	cmd.Flags().StringVar(&sheet, "sheet", "", "worksheet to read (xlsx only, default first)")
	return cmd
}

// datasetArgs resolves the session and the optional file argument. A nil
// upload tells the server to use the stored reference.
func datasetArgs(args []string, sheet string) (string, *ingest.Upload, error) {
	id, err := sessionID()
	if err != nil {
		return "", nil, err
	}
	if len(args) == 0 {
		return id, nil, nil
	}
	u, err := ingest.ReadFile(args[0], sheet)
	if err != nil {
		return "", nil, err
	}
	return id, u, nil
}
