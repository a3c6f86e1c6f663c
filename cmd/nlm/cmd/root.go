// Package cmd implements the nlm CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	apiclient "github.com/donaldgifford/network-link-manager/internal/api/client"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "nlm",
		Short: "CLI client for the Network Link Manager",
		Long: "nlm is a command-line client for the Network Link Manager API.\n" +
			"It lets you keep a reference dataset in a session and run link,\n" +
			"port and duplicate analyses against it from the terminal.",
		SilenceUsage: true,
	}
)

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "config file (default $HOME/.nlm.yaml)")
	rootCmd.PersistentFlags().
		String("server", "http://localhost:8080", "API server URL")
	rootCmd.PersistentFlags().
		String("output", "table", "output format (table, json)")
	rootCmd.PersistentFlags().
		String("session", "", "session id (or NLM_SESSION)")

	cobra.CheckErr(viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server")))
	cobra.CheckErr(viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output")))
	cobra.CheckErr(viper.BindPFlag("session", rootCmd.PersistentFlags().Lookup("session")))

	rootCmd.AddCommand(sessionCmd())
	rootCmd.AddCommand(referenceCmd())
	rootCmd.AddCommand(linksCmd())
	rootCmd.AddCommand(portsCmd())
	rootCmd.AddCommand(dedupCmd())
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".nlm")
	}

	viper.SetEnvPrefix("NLM")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func newClient() *apiclient.Client {
	return apiclient.New(viper.GetString("server"))
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}

var errNoSession = errors.New("no session: pass --session or set NLM_SESSION (create one with `nlm session new`)")

func sessionID() (string, error) {
	id := viper.GetString("session")
	if id == "" {
		return "", errNoSession
	}
	return id, nil
}
