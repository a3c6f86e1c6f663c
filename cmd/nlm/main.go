// Package main is the entry point for the nlm CLI client.
package main

import (
	"github.com/donaldgifford/network-link-manager/cmd/nlm/cmd"
)

func main() {
	cmd.Execute()
}
