package cmd

import (
	"github.com/spf13/cobra"
)

// Version is set from the embedded VERSION file at startup.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:     "organizer",
	Short:   "Organize image files into year/month folders by capture date",
	Version: Version,
}

func Execute() error {
	return rootCmd.Execute()
}

// ApplyVersion re-applies Version to the root command after it changes.
func ApplyVersion() {
	rootCmd.Version = Version
}

func init() {
	// No args for root command, only subcommands
}
