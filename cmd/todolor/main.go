// Command todolor is a personal task tracker.
package main

import (
	"os"

	"github.com/roach88/todolor/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], os.Stdout, os.Stderr))
}
