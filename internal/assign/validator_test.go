package assign

import (
	"testing"

	"github.com/Mitesh6440/MeetMind/internal/task"
)

func TestValidateKeepsConfidentAssignments(t *testing.T) {
	e := NewEngine()
	tasks := []task.Task{
		{ID: 1, Description: "Fix the login bug", AssignedTo: "John", AssignmentConfidence: 1.0},
	}
	got := e.Validate(tasks, devRoster(), 0)
	if len(got) != 0 {
		t.Fatalf("suggestions = %+v, want none", got)
	}
}

func TestValidateFlagsDepartedAssignee(t *testing.T) {
	e := NewEngine()
	tasks := []task.Task{
		{ID: 1, Description: "Run the regression suite", RequiredSkills: []string{"testing"},
			AssignedTo: "Kim", AssignmentConfidence: 1.0},
	}
	got := e.Validate(tasks, devRoster(), 0)
	if len(got) != 1 {
		t.Fatalf("len(suggestions) = %d, want 1", len(got))
	}
	s := got[0]
	if s.TaskID != 1 || s.CurrentAssignee != "Kim" {
		t.Fatalf("suggestion = %+v", s)
	}
	if s.SuggestedAssignee != "Sarah" {
		t.Fatalf("suggested = %q, want Sarah via skill match", s.SuggestedAssignee)
	}
	if s.SuggestedConfidence != 1.0 {
		t.Fatalf("confidence = %.2f, want 1.0", s.SuggestedConfidence)
	}
}

func TestValidateFlagsLowConfidence(t *testing.T) {
	e := NewEngine()
	tasks := []task.Task{
		{ID: 1, Description: "Harden the session handling", RequiredSkills: []string{"auth"},
			AssignedTo: "Sarah", AssignmentConfidence: 0.2},
	}
	got := e.Validate(tasks, devRoster(), 0.5)
	if len(got) != 1 {
		t.Fatalf("len(suggestions) = %d, want 1", len(got))
	}
	if got[0].SuggestedAssignee != "John" {
		t.Fatalf("suggested = %q, want John via skill match", got[0].SuggestedAssignee)
	}
}

func TestValidateSkipsUnassignedTasks(t *testing.T) {
	e := NewEngine()
	tasks := []task.Task{
		{ID: 1, Description: "Fix the login bug"},
	}
	if got := e.Validate(tasks, devRoster(), 0); len(got) != 0 {
		t.Fatalf("suggestions = %+v, unassigned tasks are not validator input", got)
	}
}

func TestValidateDefaultThreshold(t *testing.T) {
	e := NewEngine()
	tasks := []task.Task{
		{ID: 1, Description: "Run the regression suite", RequiredSkills: []string{"testing"},
			AssignedTo: "John", AssignmentConfidence: 0.4},
	}
	got := e.Validate(tasks, devRoster(), 0)
	if len(got) != 1 {
		t.Fatalf("len(suggestions) = %d, want 1 below the default threshold", len(got))
	}
}
