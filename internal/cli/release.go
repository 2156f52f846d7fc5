package cli

import (
	"github.com/spf13/cobra"

	"bbt.dev/bbt/internal/cli/helpers"
	"bbt.dev/bbt/internal/pipeline"
	"bbt.dev/bbt/internal/runtime"
)

// newReleaseCmd creates the release command
func newReleaseCmd() *cobra.Command {
	var (
		build string
		push  bool
	)

	cmd := &cobra.Command{
		Use:   "release [version]",
		Short: "Promote a release candidate to the final release",
		Long: `Promote a release candidate to the final release by tagging its commit
<version>. The latest candidate is used unless --build names another one.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := pipeline.ParseBuild(build)
			if err != nil {
				return err
			}
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				v, err := helpers.VersionArg(ctx, args)
				if err != nil {
					return err
				}
				if _, err := ctx.Pipeline.Release(cmd.Context(), v, b); err != nil {
					return err
				}
				if push {
					return pushAndReport(cmd.Context(), ctx, pipeline.Deletions{})
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&build, "build", "b", pipeline.Latest, "Release candidate build to promote")
	cmd.Flags().BoolVar(&push, "push", false, "Push branches and tags afterwards")

	return cmd
}
