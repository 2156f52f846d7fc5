// Package runtime provides the execution context for bbt commands.
//
// It encapsulates shared dependencies and configuration needed by commands,
// such as the loaded configuration, the logger, the git repository and the
// release pipeline built on top of it.
package runtime
