// Command denovo is the DeNovo-Designer command line client.
package main

import (
	"os"

	"github.com/turtacn/DeNovo-Designer/internal/interfaces/cli"
)

// Build-time variables injected via ldflags.
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func init() {
	cli.Version = version
	cli.GitCommit = commit
	cli.BuildDate = buildDate
}

func main() {
	if err := cli.Execute(cli.CommandDependencies{}); err != nil {
		os.Exit(1)
	}
}

//Personal.AI order the ending
