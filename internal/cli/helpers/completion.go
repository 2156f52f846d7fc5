package helpers

import (
	"strings"

	"github.com/spf13/cobra"

	"bbt.dev/bbt/internal/git"
)

// CompleteRemoteBranches is a helper for cobra.ValidArgsFunction that returns
// the branches published on the default remote, without the remote prefix.
func CompleteRemoteBranches(cmd *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	root, err := git.FindRepoRoot("")
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	repo, err := git.OpenRepository(root, git.DefaultRemote)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	refs, err := repo.RemoteBranches(cmd.Context(), repo.Remote()+"/*")
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	branches := make([]string, 0, len(refs))
	for _, ref := range refs {
		branches = append(branches, strings.TrimPrefix(ref, repo.Remote()+"/"))
	}
	return branches, cobra.ShellCompDirectiveNoFileComp
}
