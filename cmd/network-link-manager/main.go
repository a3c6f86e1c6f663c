// Package main is the entry point for the network-link-manager.
package main

import (
	"os"

	"github.com/donaldgifford/network-link-manager/cmd/network-link-manager/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
