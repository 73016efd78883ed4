package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mitesh6440/MeetMind/internal/assign"
	"github.com/Mitesh6440/MeetMind/internal/export"
	"github.com/Mitesh6440/MeetMind/internal/pipeline"
	"github.com/Mitesh6440/MeetMind/internal/team"
)

var (
	validateTeamPath  string
	validateThreshold float64
	validateJSON      bool
)

var validateCmd = &cobra.Command{
	Use:   "validate <batch-dir>",
	Short: "Re-check an exported batch against a roster",
	Long:  `Loads a batch exported by 'process --out' and flags tasks whose assignment is missing or below the confidence threshold, suggesting a better assignee where one exists.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateTeamPath, "team", "", "YAML roster of team members (required)")
	validateCmd.Flags().Float64Var(&validateThreshold, "threshold", assign.DefaultConfidenceThreshold, "confidence below which an assignment is re-evaluated")
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "print suggestions as JSON")
	_ = validateCmd.MarkFlagRequired("team")
}

func runValidate(cmd *cobra.Command, args []string) error {
	roster, err := team.Load(validateTeamPath)
	if err != nil {
		return err
	}

	tasks, err := export.LoadTasks(args[0])
	if err != nil {
		return err
	}
	meta, err := export.LoadMetadata(args[0])
	if err != nil {
		return err
	}

	suggestions := pipeline.New(nil).Validate(tasks, roster, validateThreshold)

	if validateJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(suggestions)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "batch %s (%s): %d task(s), %d flagged\n",
		meta.BatchID, meta.Source, len(tasks), len(suggestions))
	for _, s := range suggestions {
		current := s.CurrentAssignee
		if current == "" {
			current = "(unassigned)"
		}
		fmt.Fprintf(out, "  task %d: %s → %s (%.2f) — %s\n",
			s.TaskID, current, s.SuggestedAssignee, s.SuggestedConfidence, s.SuggestedReasoning)
	}
	return nil
}
