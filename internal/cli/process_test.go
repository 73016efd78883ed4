package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/Mitesh6440/MeetMind/internal/pipeline"
	"github.com/Mitesh6440/MeetMind/internal/task"
)

func TestResolveAnchor(t *testing.T) {
	got, err := resolveAnchor("2024-01-01")
	if err != nil {
		t.Fatalf("resolve anchor: %v", err)
	}
	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Fatalf("anchor = %v, want %v", got, want)
	}

	if _, err := resolveAnchor("01-01-2024"); err == nil {
		t.Fatalf("expected error for malformed anchor")
	}

	today, err := resolveAnchor("")
	if err != nil {
		t.Fatalf("resolve default anchor: %v", err)
	}
	if today.Hour() != 0 || today.Minute() != 0 {
		t.Fatalf("default anchor = %v, want start of day", today)
	}
}

func TestBatchDirName(t *testing.T) {
	cases := map[string]string{
		"meetings/standup.txt": "standup",
		"notes.md":             "notes",
		"plain":                "plain",
	}
	for in, want := range cases {
		if got := batchDirName(in); got != want {
			t.Fatalf("batchDirName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRenderSummaryListsTasks(t *testing.T) {
	due := time.Date(2024, 1, 2, 23, 59, 59, 0, time.UTC)
	fr := fileResult{
		path: "standup.txt",
		res: pipeline.Result{
			Tasks: []task.Task{
				{
					ID: 1, Description: "Fix the login bug", Priority: task.PriorityCritical,
					Deadline: &due, AssignedTo: "John", AssignmentConfidence: 1.0,
				},
				{ID: 2, Description: "Review the fix", Priority: task.PriorityMedium, Dependencies: []int{1}},
			},
		},
	}
	fr.res.Graph.ExecutionOrder = []int{1, 2}

	out := renderSummary(fr)
	for _, want := range []string{
		"standup.txt",
		"[1] Fix the login bug",
		"due 2024-01-02",
		"John (1.00)",
		"[2] Review the fix",
		"unassigned",
		"after 1",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestRenderSummaryReportsCycles(t *testing.T) {
	fr := fileResult{path: "notes.txt"}
	fr.res.Graph.HasCycles = true
	if out := renderSummary(fr); !strings.Contains(out, "dependency cycle detected") {
		t.Fatalf("summary = %q", out)
	}
}
