// Package task defines the task record produced by the enrichment pipeline
// and its wire form.
package task

import (
	"encoding/json"
	"time"
)

// Priority is one of the four task priority tiers.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Rank orders tiers for comparisons; higher is more urgent. Unset
// priorities rank below every tier.
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// Boost raises a tier by one step, capped at critical.
func (p Priority) Boost() Priority {
	switch p {
	case PriorityLow:
		return PriorityMedium
	case PriorityMedium:
		return PriorityHigh
	case PriorityHigh, PriorityCritical:
		return PriorityCritical
	}
	return p
}

// Task is one extracted action item. IDs are unique within a batch and
// assigned in transcript order starting at 1. Optional fields stay at their
// zero value until the owning stage runs: Deadline is nil until the deadline
// resolver, Priority is empty until the classifier, AssignedTo is empty
// until the assignment engine, and AssignmentConfidence is meaningful only
// when AssignedTo is set.
type Task struct {
	ID                   int
	Description          string
	OriginSentence       int
	Deadline             *time.Time
	Priority             Priority
	RequiredSkills       []string
	TechnicalTerms       []string
	Dependencies         []int
	AssignedTo           string
	AssignmentConfidence float64
	AssignmentReasoning  string
}

// Clone returns a deep copy so a stage can enrich a task without mutating
// the previous stage's output.
func (t Task) Clone() Task {
	out := t
	if t.Deadline != nil {
		d := *t.Deadline
		out.Deadline = &d
	}
	out.RequiredSkills = append([]string(nil), t.RequiredSkills...)
	out.TechnicalTerms = append([]string(nil), t.TechnicalTerms...)
	out.Dependencies = append([]int(nil), t.Dependencies...)
	return out
}

// CloneAll deep-copies a batch.
func CloneAll(tasks []Task) []Task {
	if tasks == nil {
		return nil
	}
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}

// wireTask is the serialized form: unset optionals marshal as explicit
// nulls, never as missing attributes.
type wireTask struct {
	ID                   int      `json:"id"`
	Description          string   `json:"description"`
	OriginSentence       int      `json:"origin_sentence_index"`
	Deadline             *string  `json:"deadline"`
	Priority             *string  `json:"priority"`
	AssignedTo           *string  `json:"assigned_to"`
	AssignmentConfidence *float64 `json:"assignment_confidence"`
	AssignmentReasoning  string   `json:"assignment_reasoning"`
	RequiredSkills       []string `json:"required_skills"`
	TechnicalTerms       []string `json:"technical_terms"`
	Dependencies         []int    `json:"dependencies"`
}

// MarshalJSON renders the task in the wire format.
func (t Task) MarshalJSON() ([]byte, error) {
	w := wireTask{
		ID:                  t.ID,
		Description:         t.Description,
		OriginSentence:      t.OriginSentence,
		AssignmentReasoning: t.AssignmentReasoning,
		RequiredSkills:      emptyIfNil(t.RequiredSkills),
		TechnicalTerms:      emptyIfNil(t.TechnicalTerms),
		Dependencies:        emptyIntsIfNil(t.Dependencies),
	}
	if t.Deadline != nil {
		s := t.Deadline.Format(time.RFC3339)
		w.Deadline = &s
	}
	if t.Priority != "" {
		s := string(t.Priority)
		w.Priority = &s
	}
	if t.AssignedTo != "" {
		name := t.AssignedTo
		conf := t.AssignmentConfidence
		w.AssignedTo = &name
		w.AssignmentConfidence = &conf
	}
	return json.Marshal(w)
}

// UnmarshalJSON accepts the wire format back into a Task.
func (t *Task) UnmarshalJSON(data []byte) error {
	var w wireTask
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*t = Task{
		ID:                  w.ID,
		Description:         w.Description,
		OriginSentence:      w.OriginSentence,
		AssignmentReasoning: w.AssignmentReasoning,
		RequiredSkills:      w.RequiredSkills,
		TechnicalTerms:      w.TechnicalTerms,
		Dependencies:        w.Dependencies,
	}
	if w.Deadline != nil {
		parsed, err := time.Parse(time.RFC3339, *w.Deadline)
		if err != nil {
			return err
		}
		t.Deadline = &parsed
	}
	if w.Priority != nil {
		t.Priority = Priority(*w.Priority)
	}
	if w.AssignedTo != nil {
		t.AssignedTo = *w.AssignedTo
	}
	if w.AssignmentConfidence != nil {
		t.AssignmentConfidence = *w.AssignmentConfidence
	}
	return nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func emptyIntsIfNil(s []int) []int {
	if s == nil {
		return []int{}
	}
	return s
}
