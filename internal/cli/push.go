package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"bbt.dev/bbt/internal/cli/helpers"
	"bbt.dev/bbt/internal/pipeline"
	"bbt.dev/bbt/internal/runtime"
	"bbt.dev/bbt/internal/tui"
)

// newPushCmd creates the push command
func newPushCmd() *cobra.Command {
	var deletes []string

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Push branches and tags, then delete merged task branches on the remote",
		Long: `Push all branches and tags to the remote, then delete the remote branches
given with --delete. Branches are only deleted once the push succeeded.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return pushAndReport(cmd.Context(), ctx, pipeline.NewDeletions(deletes...))
			})
		},
	}

	cmd.Flags().StringArrayVarP(&deletes, "delete", "d", nil, "Remote branch to delete after pushing (repeatable)")
	_ = cmd.RegisterFlagCompletionFunc("delete", helpers.CompleteRemoteBranches)

	return cmd
}

func pushAndReport(c context.Context, ctx *runtime.Context, deletions pipeline.Deletions) error {
	remaining, err := ctx.Pipeline.Push(c, deletions)
	if err != nil {
		reportPendingDeletions(ctx.Splog, remaining)
		return err
	}
	return nil
}

// reportPendingDeletions tells the operator how to finish deleting remote branches
func reportPendingDeletions(splog *tui.Splog, deletions pipeline.Deletions) {
	if deletions.Len() == 0 {
		return
	}
	var b strings.Builder
	b.WriteString("bbt push")
	for _, branch := range deletions.Branches() {
		b.WriteString(" --delete ")
		b.WriteString(branch)
	}
	splog.Tip("Run '%s' to publish and delete the merged remote branches", tui.ColorCyan(b.String()))
}
