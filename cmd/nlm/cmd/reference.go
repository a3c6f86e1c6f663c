package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/network-link-manager/internal/ingest"
)

func referenceCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "reference",
		Short: "Manage the session reference dataset",
	}
	root.AddCommand(referenceSetCmd(), referenceShowCmd(), referenceClearCmd())
	return root
}

func referenceSetCmd() *cobra.Command {
	var sheet string

	cmd := &cobra.Command{
		Use:   "set <file>",
		Short: "Upload the reference dataset",
		Example: `  nlm reference set reference.xlsx
  nlm reference set inventory.xlsx --sheet Links`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := sessionID()
			if err != nil {
				return err
			}
			u, err := ingest.ReadFile(args[0], sheet)
			if err != nil {
				return err
			}
			ref, err := newClient().SetReference(context.Background(), id, u)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), ref)
			}
			return printReference(cmd.OutOrStdout(), ref)
		},
	}
	cmd.Flags().StringVar(&sheet, "sheet", "", "worksheet to read (xlsx only, default first)")
	return cmd
}

func referenceShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Describe the reference dataset",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := sessionID()
			if err != nil {
				return err
			}
			ref, err := newClient().GetReference(context.Background(), id)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), ref)
			}
			return printReference(cmd.OutOrStdout(), ref)
		},
	}
}

func referenceClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the reference dataset",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := sessionID()
			if err != nil {
				return err
			}
			if err := newClient().ClearReference(context.Background(), id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Reference cleared.")
			return nil
		},
	}
}
