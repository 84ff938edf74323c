package main

import (
	"fmt"
	"os"
)

var (
	// Build-time variables set by go build -ldflags
	Version   = "dev"
	GitCommit = "unknown"
)

func main() {
	if err := Execute(Version, GitCommit); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
