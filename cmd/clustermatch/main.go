// Package main provides the clustermatch CLI.
//
// Usage:
//
//	clustermatch [flags] <command> [args]
//
// Commands:
//
//	match      - map clusters to labels for an already clustered dataset
//	kmeans     - cluster features with k-means, optionally matching labels
//	hierarchy  - cluster features with single linkage, optionally matching labels
package main

import (
	"fmt"
	"os"

	"github.com/TrevorS/clustermatch/cmd/clustermatch/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
