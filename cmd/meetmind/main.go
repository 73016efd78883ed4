package main

import (
	"os"

	"github.com/Mitesh6440/MeetMind/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
