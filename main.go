// Package main is the entry point for the Anchor demo client.
// It exposes the SDK's session management through a small CLI.
package main

import (
	"anchor/sdk/cmd"
)

func main() {
	cmd.Execute()
}
