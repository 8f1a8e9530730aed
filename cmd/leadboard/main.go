// Package main provides the leadboard CLI.
package main

import "github.com/mesh-intelligence/leadboard/internal/cli"

func main() {
	cli.Execute()
}
