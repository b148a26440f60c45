// Package cmd defines the command-line interface for githours.
package cmd

import (
	"github.com/huangsam/githours/internal/contract"
	"github.com/huangsam/githours/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add subcommands to the root command
	rootCmd.AddCommand(authorsCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().Float64("session-threshold", contract.DefaultSessionThresholdMinutes, "Minutes between commits that still count as one coding session")
	rootCmd.PersistentFlags().Float64("first-commit-addition", contract.DefaultFirstCommitAdditionMinutes, "Minutes credited for the work before the first commit of a session")
	rootCmd.PersistentFlags().String("branches", "", "Comma-separated list of local branches to analyze (default: all)")
	rootCmd.PersistentFlags().String("git-backend", string(schema.ExecBackend), "Git backend: exec or gogit")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of branch logs to read concurrently")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or json or csv or yaml or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Write output to this file instead of the terminal")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("emoji", "no", "Enable emojis in headers (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored totals in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of authorsCmd to Viper
	authorsCmd.Flags().IntP("limit", "l", 0, "Number of authors to display (0 = all)")
	if err := viper.BindPFlags(authorsCmd.Flags()); err != nil {
		contract.LogFatal("Error binding authors flags", err)
	}
}
