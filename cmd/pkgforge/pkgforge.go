package main

import (
	"log/slog"
	"os"

	"github.com/pkgforge/pkgforge/internal"
	"github.com/pkgforge/pkgforge/internal/cli"
)

// Runs the pkgforge CLI: parses flags, configures logging, and executes
// the selected subcommand (build or version).
func main() {
	slog.Debug("build", "version", internal.VersionString(), "pid", os.Getpid(), "args", os.Args)

	if err := cli.Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
