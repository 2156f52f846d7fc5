package runtime

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"bbt.dev/bbt/internal/config"
	"bbt.dev/bbt/internal/git"
	"bbt.dev/bbt/internal/pipeline"
	"bbt.dev/bbt/internal/release"
	"bbt.dev/bbt/internal/tui"
	"bbt.dev/bbt/internal/upload"
)

// Options selects how a context is built from the environment
type Options struct {
	// ConfigPath overrides the configuration file location
	ConfigPath string
	// Debug shows debug messages on the console
	Debug bool
	// Interactive allows prompts when attached to a terminal
	Interactive bool
}

// Context provides access to configuration, output and the release pipeline for commands
type Context struct {
	Config      *config.Config
	Splog       *tui.Splog
	RepoRoot    string
	Repo        *git.Repository
	Manager     *release.Manager
	Pipeline    *pipeline.Pipeline
	Interactive bool
}

// NewContext creates a context for the repository at repoRoot
func NewContext(repoRoot string, cfg *config.Config, splog *tui.Splog) (*Context, error) {
	repo, err := git.OpenRepository(repoRoot, cfg.Remote)
	if err != nil {
		return nil, fmt.Errorf("not a git repository: %w", err)
	}

	manager := release.NewManager(repo, release.Options{
		Floor:      cfg.Floor(),
		RootBranch: cfg.RootBranch,
		Remote:     cfg.Remote,
		Splog:      splog,
	})

	return &Context{
		Config:   cfg,
		Splog:    splog,
		RepoRoot: repo.Root(),
		Repo:     repo,
		Manager:  manager,
		Pipeline: pipeline.New(repo, manager, pipeline.Options{
			ProjectKey: cfg.ProjectKey,
			Splog:      splog,
		}),
	}, nil
}

// GetContext builds the context for the repository containing the working
// directory, reading its configuration file.
func GetContext(opts Options) (*Context, error) {
	repoRoot, err := git.FindRepoRoot("")
	if err != nil {
		return nil, fmt.Errorf("not a git repository: %w", err)
	}

	path := config.ResolvePath(opts.ConfigPath, repoRoot)
	cfg, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("bbt is not configured: create %s with at least project_key set", path)
	}
	if err != nil {
		return nil, err
	}

	splog := newSplog(cfg)
	if opts.Debug {
		splog.SetDebug(true)
	}

	ctx, err := NewContext(repoRoot, cfg, splog)
	if err != nil {
		_ = splog.Close()
		return nil, err
	}
	ctx.Interactive = opts.Interactive && tui.Interactive()
	return ctx, nil
}

// newSplog mirrors console output to the configured log file. A log file
// that cannot be created only costs the file output.
func newSplog(cfg *config.Config) *tui.Splog {
	logPath := cfg.LogFile
	if logPath == "" {
		logPath = tui.GetLogFilePath()
	}
	splog, err := tui.NewSplogWithConfig(os.Stdout, logPath)
	if err != nil {
		splog = tui.NewSplog()
		splog.Warn("Not writing log file %s: %v", logPath, err)
	}
	return splog
}

// Uploader returns the uploader for the configured upload URL, or nil when
// none is configured
func (c *Context) Uploader(ctx context.Context) (upload.Uploader, error) {
	if c.Config.UploadURL == "" {
		return nil, nil
	}
	return upload.New(ctx, c.Config.UploadURL)
}

// Close flushes the log file
func (c *Context) Close() error {
	return c.Splog.Close()
}
