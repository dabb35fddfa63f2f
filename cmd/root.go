package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "challengely",
	Short: "Daily personal-growth challenges in your terminal",
	Long:  "Challengely: one personalized challenge a day, with streaks, reminders and a pocket assistant.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides CHALLENGELY_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/challengely/config.yaml)")
	rootCmd.PersistentFlags().String("log-file", "", "Path to log file (default $XDG_STATE_HOME/challengely/challengely.log)")
	rootCmd.PersistentFlags().Bool("debug", false, "Log at debug level with the console encoder")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(shareCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(configCmd)
}
