// Package helpers provides shared helper functions for CLI commands.
package helpers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"bbt.dev/bbt/internal/runtime"
	"bbt.dev/bbt/internal/tui"
	"bbt.dev/bbt/internal/version"
)

// Run is a helper that provides a runtime context to a command's execution function
func Run(cmd *cobra.Command, fn func(ctx *runtime.Context) error) error {
	configPath, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")
	interactive, _ := cmd.Flags().GetBool("interactive")

	ctx, err := runtime.GetContext(runtime.Options{
		ConfigPath:  configPath,
		Debug:       debug,
		Interactive: interactive,
	})
	if err != nil {
		return err
	}
	defer ctx.Close()

	ctx.Splog.Debug("bbt %s in %s (run %s)", cmd.Name(), ctx.RepoRoot, ctx.Pipeline.RunID())
	return fn(ctx)
}

// ParseVersion parses the version argument of a command
func ParseVersion(arg string) (version.Version, error) {
	v, err := version.Parse(arg)
	if err != nil {
		return version.Version{}, fmt.Errorf("invalid version argument: %w", err)
	}
	return v, nil
}

// VersionArg parses the optional version argument, asking for it when it is
// missing and prompts are allowed
func VersionArg(ctx *runtime.Context, args []string) (version.Version, error) {
	if len(args) > 0 {
		return ParseVersion(args[0])
	}
	if !ctx.Interactive {
		return version.Version{}, errors.New("missing version argument")
	}

	ctx.Splog.SetQuiet(true)
	answer, err := tui.PromptTextInput("Version:", "")
	ctx.Splog.SetQuiet(false)
	if err != nil {
		return version.Version{}, err
	}
	return ParseVersion(strings.TrimSpace(answer))
}
