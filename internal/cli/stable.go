package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"bbt.dev/bbt/internal/cli/helpers"
	"bbt.dev/bbt/internal/release"
	"bbt.dev/bbt/internal/runtime"
	"bbt.dev/bbt/internal/version"
)

// newStableCmd creates the stable command
func newStableCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "stable [version]",
		Short: "Print the stabilization branch of a version",
		Long: `Print the stabilization branch of a version.

With --verbose the role of the version and its previous, next and base
versions are printed as well.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				v, err := helpers.VersionArg(ctx, args)
				if err != nil {
					return err
				}
				if !verbose {
					branch, err := ctx.Manager.StableBranch(v)
					if err != nil {
						return err
					}
					_, err = fmt.Fprintln(cmd.OutOrStdout(), branch)
					return err
				}
				return describeVersion(cmd.OutOrStdout(), ctx.Manager.Arithmetic(), ctx.Manager.Namer(), v)
			})
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Also print role, previous, next and base versions")

	return cmd
}

func describeVersion(w io.Writer, arith version.Arithmetic, namer release.Namer, v version.Version) error {
	role, err := arith.Classify(v)
	if err != nil {
		return err
	}
	prev, err := arith.Previous(v)
	if err != nil {
		return err
	}
	next, err := arith.Next(v)
	if err != nil {
		return err
	}
	base, err := arith.Base(v)
	if err != nil {
		return err
	}

	rows := [][2]string{
		{"version", v.String()},
		{"role", role.String()},
		{"branch", namer.StableBranch(v)},
		{"previous", prev.String()},
		{"next", next.String()},
		{"base", base.String()},
	}
	for _, row := range rows {
		if _, err := fmt.Fprintf(w, "%-9s %s\n", row[0]+":", row[1]); err != nil {
			return err
		}
	}
	return nil
}
