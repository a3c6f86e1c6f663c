package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func sessionCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "session",
		Short: "Manage sessions",
		Long: "A session holds one reference dataset on the server so repeated\n" +
			"analyses do not need to upload it again. Idle sessions expire.",
	}
	root.AddCommand(sessionNewCmd(), sessionDeleteCmd())
	return root
}

func sessionNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Create a session",
		Example: `  export NLM_SESSION=$(nlm session new)
  nlm session new --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := newClient().CreateSession(context.Background())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), s)
			}
			fmt.Fprintln(cmd.OutOrStdout(), s.ID)
			return nil
		},
	}
}

func sessionDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete",
		Short:   "Delete the current session",
		Example: `  nlm session delete --session 7c9e6679-7425-40de-944b-e07fc1f90ae7`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := sessionID()
			if err != nil {
				return err
			}
			if err := newClient().DeleteSession(context.Background(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Session %s deleted.\n", id)
			return nil
		},
	}
}
