package cli

import (
	"context"

	"github.com/spf13/cobra"

	"bbt.dev/bbt/internal/cli/helpers"
	"bbt.dev/bbt/internal/pipeline"
	"bbt.dev/bbt/internal/runtime"
	"bbt.dev/bbt/internal/version"
)

// newRCCmd creates the rc command
func newRCCmd() *cobra.Command {
	var (
		push    bool
		noFetch bool
	)

	cmd := &cobra.Command{
		Use:   "rc [version]",
		Short: "Tag the next release candidate of a version",
		Long: `Tag the tip of the stabilization branch of a version as its next release
candidate, <version>-<build>. Builds are numbered from 1.

The remote is fetched first and a warning is printed when the local
stabilization branch is missing commits of its remote counterpart.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				v, err := helpers.VersionArg(ctx, args)
				if err != nil {
					return err
				}
				c := cmd.Context()
				if !noFetch {
					ctx.Splog.Debug("Fetching %s", ctx.Repo.Remote())
					if err := ctx.Repo.Fetch(c); err != nil {
						return err
					}
					if err := warnIfBehind(c, ctx, v); err != nil {
						return err
					}
				}
				if _, err := ctx.Pipeline.ReleaseCandidate(c, v); err != nil {
					return err
				}
				if push {
					return pushAndReport(c, ctx, pipeline.Deletions{})
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&push, "push", false, "Push branches and tags afterwards")
	cmd.Flags().BoolVar(&noFetch, "no-fetch", false, "Do not fetch the remote first")

	return cmd
}

// warnIfBehind warns when the local stabilization branch of v lacks commits
// of its remote-tracking branch
func warnIfBehind(c context.Context, ctx *runtime.Context, v version.Version) error {
	branch, err := ctx.Manager.StableBranch(v)
	if err != nil {
		return err
	}
	remoteBranch := ctx.Manager.Namer().RemoteRef(branch)

	local, err := ctx.Repo.LocalBranches(c, branch)
	if err != nil || len(local) == 0 {
		return err
	}
	remote, err := ctx.Repo.RemoteBranches(c, remoteBranch)
	if err != nil || len(remote) == 0 {
		return err
	}

	upToDate, err := ctx.Repo.IsAncestor(c, remoteBranch, branch)
	if err != nil {
		return err
	}
	if !upToDate {
		ctx.Splog.Warn("%s is behind %s, the candidate will not contain its new commits", branch, remoteBranch)
		ctx.Splog.Tip("Run git merge --ff-only %s on %s first", remoteBranch, branch)
	}
	return nil
}
