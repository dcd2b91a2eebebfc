// Command footprint estimates a household's carbon footprint.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rshade/footprint/internal/cli"
	"github.com/rshade/footprint/pkg/version"
)

func main() {
	os.Exit(exitCode(run()))
}

func run() error {
	root := cli.NewRootCmd(version.String())
	return root.Execute()
}

// exitCode prints err and maps it to a process status.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	if errors.Is(err, cli.ErrPartialFootprint) {
		return cli.ExitCodePartialFootprint
	}
	return 1
}
