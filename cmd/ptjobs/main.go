package main

import (
	"os"

	"ptjobs/cmd/ptjobs/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
