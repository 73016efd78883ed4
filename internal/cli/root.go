// Package cli wires the meetmind commands together with cobra.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:     "meetmind",
	Short:   "Turn meeting transcripts into assigned, scheduled tasks",
	Long:    `MeetMind reads raw meeting transcripts and produces structured action items: deadlines, priorities, required skills, dependency order, and a suggested assignee for each task.`,
	Version: "0.1.0",
}

func init() {
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(validateCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
