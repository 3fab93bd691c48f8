// Package main provides the purr CLI application.
// purr extracts well-centric data from Petra projects.
package main

import (
	"github.com/rbhughes/purr-petra/cmd"
)

func main() {
	cmd.Execute()
}
