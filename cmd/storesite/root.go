package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command. Run without a subcommand it builds
// the site, exactly like "storesite build".
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "storesite",
		Short: "Generate a static listing website from a spreadsheet",
		Long: `storesite turns a spreadsheet of business listings (xlsx) into a static
website: an index page, one page per listing, a stylesheet and a JSON
data export.

Settings come from --config, ./.storesite.yaml or the user configuration
directory, in that order. Flags override file settings.`,
		Args:          cobra.NoArgs,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runBuildCmd,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	addBuildFlags(cmd)

	cmd.AddCommand(NewBuildCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
