package cli

import (
	"github.com/spf13/cobra"

	"bbt.dev/bbt/internal/cli/helpers"
	"bbt.dev/bbt/internal/runtime"
	"bbt.dev/bbt/internal/tui"
)

// newCheckCmd creates the check command
func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [version]",
		Short: "Check that a version can be released",
		Long: `Check that a version can be released.

A version can be released when it has no final tag yet, its previous version
has been released and no release candidate of its next version exists. Only
tags are inspected; the repository is not changed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				v, err := helpers.VersionArg(ctx, args)
				if err != nil {
					return err
				}
				if err := ctx.Manager.CheckReleasable(cmd.Context(), v); err != nil {
					return err
				}
				branch, err := ctx.Manager.StableBranch(v)
				if err != nil {
					return err
				}
				ctx.Splog.Info("Version %s can be released from %s", tui.ColorGreen(v.String()), tui.ColorCyan(branch))
				return nil
			})
		},
	}
}
