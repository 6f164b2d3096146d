// Package main is the entry point for dgs-backup.
package main

import (
	"os"
)

// exitFailure is the status for any configuration or login failure.
const exitFailure = 2

func main() {
	if err := Execute(); err != nil {
		os.Exit(exitFailure)
	}
}
