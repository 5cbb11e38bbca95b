// Package main provides the catalog CLI.
package main

import "github.com/mesh-intelligence/catalog/internal/cli"

func main() {
	cli.Execute()
}
