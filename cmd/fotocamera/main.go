package main

import (
	"os"

	"fotocamera/cmd/fotocamera/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
