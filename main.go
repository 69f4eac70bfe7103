// Package main is the entry point for the mcreports CLI tool, which turns
// raw Minecraft match reports into processed reports and stores them.
package main

import "github.com/pable/go-mc-reports/cmd"

func main() {
	cmd.Execute()
}
