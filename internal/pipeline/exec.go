package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Executor runs the build command inside a checked out candidate
type Executor interface {
	Execute(ctx context.Context, dir, command string, env []string) error
}

// ShellExecutor runs commands through "sh -c", streaming their output
type ShellExecutor struct {
	Stdout io.Writer
	Stderr io.Writer
}

// NewShellExecutor creates an executor writing to the process's stdout and stderr
func NewShellExecutor() *ShellExecutor {
	return &ShellExecutor{Stdout: os.Stdout, Stderr: os.Stderr}
}

// Execute runs command in dir with env added to the current environment
func (e *ShellExecutor) Execute(ctx context.Context, dir, command string, env []string) error {
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), env...)
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("build command %q failed: %w", command, err)
	}
	return nil
}
