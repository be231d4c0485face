package main

import (
	"os"

	"helpboard/app/commands"
)

var exit = os.Exit

func main() {
	if err := commands.Execute(); err != nil {
		exit(1)
	}
}
