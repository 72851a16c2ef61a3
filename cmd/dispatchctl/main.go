// Package main is the entry point of dispatchctl, the terminal dispatch console.
package main

import (
	"os"

	"dispatch-console/cmd/dispatchctl/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
