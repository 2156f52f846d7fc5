package cli

import (
	"io"

	"github.com/spf13/cobra"

	"bbt.dev/bbt/internal/cli/helpers"
	"bbt.dev/bbt/internal/pipeline"
	"bbt.dev/bbt/internal/runtime"
	"bbt.dev/bbt/internal/tui"
)

// newBuildCmd creates the build command
func newBuildCmd() *cobra.Command {
	var (
		build     string
		command   string
		terminate bool
		noCleanup bool
	)

	cmd := &cobra.Command{
		Use:   "build [version]",
		Short: "Build, archive and upload a release candidate",
		Long: `Build, archive and upload a release candidate.

The candidate is cloned from the configured repository into
<temp_dir>/<project>-<version>-<build>, the build command runs there with
PACKAGE set to that name, and the directory is packed into a .tgz uploaded to
<upload_url>/<project>/. When attached to a terminal bbt asks before removing
a leftover work directory and before running the build command.`,
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
				c := cmd.Context()
				uploader, err := ctx.Uploader(c)
				if err != nil {
					return err
				}
				if closer, ok := uploader.(io.Closer); ok {
					defer closer.Close()
				}

				if !cmd.Flags().Changed("command") {
					command = ctx.Config.BuildCommand
				}

				result, err := ctx.Pipeline.Build(c, pipeline.Request{Version: v, Build: b}, pipeline.BuildOptions{
					Repository:  ctx.Config.Repository,
					TempDir:     ctx.Config.TempDir,
					Command:     command,
					Interactive: ctx.Interactive,
					Terminate:   terminate,
					NoCleanup:   noCleanup,
					Uploader:    uploader,
					Confirm:     tui.PromptConfirm,
				})
				if err != nil {
					return err
				}
				switch {
				case result.Aborted:
					ctx.Splog.Warn("Build of %s aborted", result.Package)
				case result.Terminated && noCleanup:
					ctx.Splog.Info("Build output left in %s", result.WorkDir)
				case result.Terminated:
					ctx.Splog.Info("Stopped after the build command of %s", result.Package)
				case result.Location != "":
					ctx.Splog.Info("Package %s is available at %s", result.Package, tui.ColorCyan(result.Location))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&build, "build", "b", pipeline.Latest, "Release candidate build to check out")
	cmd.Flags().StringVarP(&command, "command", "c", "", "Build command (default build_command from the configuration)")
	cmd.Flags().BoolVar(&terminate, "terminate", false, "Stop after the build command without archiving or uploading")
	cmd.Flags().BoolVar(&noCleanup, "no-cleanup", false, "Keep the work directory and the archive")

	return cmd
}
