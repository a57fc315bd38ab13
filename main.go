package main

import (
	"os"

	"github.com/studybuddyai/studybuddy/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
