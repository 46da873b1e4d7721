// Package main is the entry point for the codemetry server CLI.
package main

import (
	"github.com/codemetry/codemetry/internal/cli"
)

func main() {
	cli.Execute()
}
