package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"bbt.dev/bbt/internal/cli/helpers"
	"bbt.dev/bbt/internal/pipeline"
	"bbt.dev/bbt/internal/runtime"
	"bbt.dev/bbt/internal/tui"
)

// newMergeCmd creates the merge command
func newMergeCmd() *cobra.Command {
	var (
		selectTasks bool
		push        bool
		noFetch     bool
	)

	cmd := &cobra.Command{
		Use:   "merge <version> [task...]",
		Short: "Merge task branches into the stabilization branch of a version",
		Long: `Merge task branches into the stabilization branch of a version.

The version must be releasable and every task must be safe to merge: a task
that started after its release line was cut would bring unrelated commits
along and is rejected. Nothing is merged unless every task passes.

Merged task branches are deleted locally. Their remote branches are deleted by
'bbt push', or right away with --push.`,
		Args: cobra.MinimumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return helpers.CompleteRemoteBranches(cmd, args, toComplete)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := helpers.ParseVersion(args[0])
			if err != nil {
				return err
			}
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				c := cmd.Context()
				if !noFetch {
					ctx.Splog.Debug("Fetching %s", ctx.Repo.Remote())
					if err := ctx.Repo.Fetch(c); err != nil {
						return err
					}
				}

				tasks := args[1:]
				if selectTasks {
					if !ctx.Interactive {
						return errors.New("--select needs an interactive terminal")
					}
					tasks, err = selectTaskBranches(c, ctx, tasks)
					if err != nil {
						return err
					}
				}

				deletions, err := ctx.Pipeline.MergeTasks(c, pipeline.Request{Version: v, Tasks: tasks})
				if err != nil {
					reportPendingDeletions(ctx.Splog, deletions)
					return err
				}
				if !push {
					reportPendingDeletions(ctx.Splog, deletions)
					return nil
				}
				return pushAndReport(c, ctx, deletions)
			})
		},
	}

	cmd.Flags().BoolVarP(&selectTasks, "select", "s", false, "Pick the task branches from the remote interactively")
	cmd.Flags().BoolVar(&push, "push", false, "Push and delete the merged remote branches afterwards")
	cmd.Flags().BoolVar(&noFetch, "no-fetch", false, "Do not fetch the remote first")

	return cmd
}

// selectTaskBranches offers the published branches, minus the root branch,
// with the tasks named on the command line preselected
func selectTaskBranches(c context.Context, ctx *runtime.Context, preselected []string) ([]string, error) {
	remote := ctx.Repo.Remote()
	refs, err := ctx.Repo.RemoteBranches(c, remote+"/*")
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	options := make([]string, 0, len(refs)+len(preselected))
	for _, name := range preselected {
		if !seen[name] {
			seen[name] = true
			options = append(options, name)
		}
	}
	for _, ref := range refs {
		name := strings.TrimPrefix(ref, remote+"/")
		if name == "HEAD" || name == ctx.Config.RootBranch || seen[name] {
			continue
		}
		seen[name] = true
		options = append(options, name)
	}

	ctx.Splog.SetQuiet(true)
	defer ctx.Splog.SetQuiet(false)
	return tui.PromptMultiSelect("Task branches to merge:", options)
}
