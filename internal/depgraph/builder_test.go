package depgraph

import (
	"reflect"
	"testing"

	"github.com/Mitesh6440/MeetMind/internal/rules"
	"github.com/Mitesh6440/MeetMind/internal/task"
	"github.com/Mitesh6440/MeetMind/internal/transcript"
)

func TestBuildResolvesReferenceByOverlap(t *testing.T) {
	b := NewBuilder(rules.Default())
	sentences := []transcript.Sentence{
		{Index: 1, Text: "John needs to fix the login bug by tomorrow"},
		{Index: 2, Text: "This is critical"},
		{Index: 3, Text: "Sarah should review it after John is done"},
	}
	tasks := []task.Task{
		{ID: 1, Description: "John needs to fix the login bug by tomorrow", OriginSentence: 1},
		{ID: 2, Description: "Sarah should review the login bug after John is done", OriginSentence: 3},
	}
	out, g := b.Build(tasks, sentences)
	if out[0].Dependencies != nil {
		t.Fatalf("first task dependencies = %v, want none", out[0].Dependencies)
	}
	if !reflect.DeepEqual(out[1].Dependencies, []int{1}) {
		t.Fatalf("second task dependencies = %v, want [1]", out[1].Dependencies)
	}
	if len(g.Edges) != 1 || g.Edges[0] != (Edge{From: 1, To: 2}) {
		t.Fatalf("edges = %v, want [1 -> 2]", g.Edges)
	}
	if g.HasCycles {
		t.Fatalf("unexpected cycle")
	}
	if !reflect.DeepEqual(g.ExecutionOrder, []int{1, 2}) {
		t.Fatalf("order = %v, want [1 2]", g.ExecutionOrder)
	}
}

func TestBuildResolvesExplicitTaskOrdinal(t *testing.T) {
	b := NewBuilder(rules.Default())
	sentences := []transcript.Sentence{
		{Index: 1, Text: "Write the migration script this week"},
		{Index: 2, Text: "The rollout is blocked by task 1"},
	}
	tasks := []task.Task{
		{ID: 1, Description: "Write the migration script this week", OriginSentence: 1},
		{ID: 2, Description: "The rollout is blocked by task 1", OriginSentence: 2},
	}
	out, _ := b.Build(tasks, sentences)
	if !reflect.DeepEqual(out[1].Dependencies, []int{1}) {
		t.Fatalf("dependencies = %v, want [1]", out[1].Dependencies)
	}
}

func TestBuildIgnoresSelfReference(t *testing.T) {
	b := NewBuilder(rules.Default())
	sentences := []transcript.Sentence{
		{Index: 1, Text: "Deploy the release after task 1"},
	}
	tasks := []task.Task{
		{ID: 1, Description: "Deploy the release after task 1", OriginSentence: 1},
	}
	out, g := b.Build(tasks, sentences)
	if out[0].Dependencies != nil {
		t.Fatalf("dependencies = %v, want none for a self reference", out[0].Dependencies)
	}
	if len(g.Edges) != 0 {
		t.Fatalf("edges = %v, want none", g.Edges)
	}
}

func TestBuildCueWithoutResolvableReference(t *testing.T) {
	b := NewBuilder(rules.Default())
	sentences := []transcript.Sentence{
		{Index: 1, Text: "Ship the release after the holidays"},
	}
	tasks := []task.Task{
		{ID: 1, Description: "Ship the release after the holidays", OriginSentence: 1},
	}
	out, _ := b.Build(tasks, sentences)
	if out[0].Dependencies != nil {
		t.Fatalf("dependencies = %v, want none when nothing matches", out[0].Dependencies)
	}
}

func TestBuildInjectedCycleIsFlagged(t *testing.T) {
	b := NewBuilder(rules.Default())
	sentences := []transcript.Sentence{
		{Index: 1, Text: "Begin the rollout once task 2 is done"},
		{Index: 2, Text: "Begin the launch once task 1 is done"},
	}
	tasks := []task.Task{
		{ID: 1, Description: "Begin the rollout once task 2 is done", OriginSentence: 1},
		{ID: 2, Description: "Begin the launch once task 1 is done", OriginSentence: 2},
	}
	_, g := b.Build(tasks, sentences)
	if !g.HasCycles {
		t.Fatalf("mutually dependent tasks not flagged as a cycle")
	}
	if g.ExecutionOrder != nil {
		t.Fatalf("order = %v, want none for a cyclic batch", g.ExecutionOrder)
	}
}
