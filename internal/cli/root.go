// Package cli implements the bbt command line.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bbt",
		Short: "bbt manages release branches and tags of a git repository",
		Long: `bbt manages release branches and tags of a git repository.

Majors are built on the root branch, minors on minor/<major>.x and patches on
minor/<major>.<minor>.x. Task branches are merged into the stabilization branch
of a version, release candidates are tagged <version>-<build>, and the chosen
candidate is promoted to the final <version> tag.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "", "Path to the configuration file (default <repo>/.bbt.yaml or $BBT_CONFIG)")
	rootCmd.PersistentFlags().Bool("debug", false, "Show debug output")
	rootCmd.PersistentFlags().Bool("interactive", true, "Ask for confirmation when attached to a terminal")

	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newStableCmd())
	rootCmd.AddCommand(newMergeCmd())
	rootCmd.AddCommand(newRCCmd())
	rootCmd.AddCommand(newReleaseCmd())
	rootCmd.AddCommand(newBuildCmd())
	rootCmd.AddCommand(newPushCmd())
	rootCmd.AddCommand(newVersionCmd(version, commit, date))

	return rootCmd
}
