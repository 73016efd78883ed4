package assign

import (
	"github.com/Mitesh6440/MeetMind/internal/task"
	"github.com/Mitesh6440/MeetMind/internal/team"
)

// DefaultConfidenceThreshold flags assignments the validator should
// re-evaluate.
const DefaultConfidenceThreshold = 0.5

// Suggestion pairs an existing assignment with a recomputed one. The
// original task is never mutated.
type Suggestion struct {
	TaskID              int     `json:"task_id"`
	CurrentAssignee     string  `json:"current_assignee"`
	SuggestedAssignee   string  `json:"suggested_assignee"`
	SuggestedConfidence float64 `json:"suggested_confidence"`
	SuggestedReasoning  string  `json:"suggested_reasoning"`
}

// Validate re-checks a finalized batch against a possibly updated roster
// snapshot. An assignment is flagged when its assignee has left the roster
// or its confidence sits below the threshold; flagged tasks get a fresh
// suggestion from the same cascade, computed against the task description
// since the transcript is no longer at hand.
func (e *Engine) Validate(tasks []task.Task, roster team.Roster, threshold float64) []Suggestion {
	if threshold <= 0 {
		threshold = DefaultConfidenceThreshold
	}
	snapshot := roster.Snapshot()
	counts := make(map[string]int, len(snapshot))
	for _, t := range tasks {
		if t.AssignedTo == "" {
			continue
		}
		if _, ok := snapshot.Find(t.AssignedTo); ok {
			counts[t.AssignedTo]++
		}
	}
	var out []Suggestion
	for _, t := range tasks {
		if t.AssignedTo == "" {
			continue
		}
		_, exists := snapshot.Find(t.AssignedTo)
		if exists && t.AssignmentConfidence >= threshold {
			continue
		}
		d := e.assignOne(t, t.Description, snapshot, counts)
		out = append(out, Suggestion{
			TaskID:              t.ID,
			CurrentAssignee:     t.AssignedTo,
			SuggestedAssignee:   d.assignee,
			SuggestedConfidence: d.confidence,
			SuggestedReasoning:  d.reasoning,
		})
	}
	return out
}
