package main

import (
	"os"

	"bbt.dev/bbt/internal/cli"
	"bbt.dev/bbt/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := cli.NewRootCmd(version, commit, date)
	if err := rootCmd.Execute(); err != nil {
		tui.NewSplogWithWriter(os.Stderr).Error("%v", err)
		os.Exit(1)
	}
}
