// Package main is the entry point for the vmsync CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/phawaaz/vmsync/internal/cli"
)

func main() {
	// A .env in the working directory can supply VMSYNC_SERVER_URL; its
	// absence is fine.
	_ = godotenv.Load()

	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
