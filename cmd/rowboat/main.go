// Package main is the entry point for the rowboat gateway.
package main

import "github.com/rowboat-labs/rowboat/internal/cli"

func main() {
	cli.Execute()
}
