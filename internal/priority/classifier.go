// Package priority scores tasks into the four urgency tiers.
package priority

import (
	"strings"
	"time"

	"github.com/Mitesh6440/MeetMind/internal/rules"
	"github.com/Mitesh6440/MeetMind/internal/task"
	"github.com/Mitesh6440/MeetMind/internal/transcript"
)

type tierRule struct {
	tier     task.Priority
	keywords []string
}

// Classifier is a pure function of (task context text, resolved deadline,
// anchor time). Keyword tiers come from the rule tables; when several tiers
// hit, the highest wins; a deadline no later than the next calendar day
// boosts the result one step, capped at critical.
type Classifier struct {
	tiers []tierRule
}

// New builds a classifier from the tier lexicons.
func New(rs *rules.Set) *Classifier {
	return &Classifier{tiers: []tierRule{
		{task.PriorityCritical, lowerAll(rs.Priority.Critical)},
		{task.PriorityHigh, lowerAll(rs.Priority.High)},
		{task.PriorityMedium, lowerAll(rs.Priority.Medium)},
		{task.PriorityLow, lowerAll(rs.Priority.Low)},
	}}
}

// Classify returns an enriched copy of the batch with priorities set. The
// context for each task is its origin sentence plus the immediately
// following sentence, so trailing commentary ("This is critical.") binds to
// the task it follows and never leaks backwards onto a later task.
func (c *Classifier) Classify(tasks []task.Task, sentences []transcript.Sentence, anchor time.Time) []task.Task {
	texts := make(map[int]string, len(sentences))
	for _, s := range sentences {
		texts[s.Index] = strings.ToLower(s.Text)
	}
	out := task.CloneAll(tasks)
	for i := range out {
		context := texts[out[i].OriginSentence] + " " + texts[out[i].OriginSentence+1]
		out[i].Priority = c.classify(context, out[i].Deadline, anchor)
	}
	return out
}

func (c *Classifier) classify(context string, deadline *time.Time, anchor time.Time) task.Priority {
	tier := task.PriorityMedium
	for _, rule := range c.tiers {
		if matchesAny(context, rule.keywords) {
			tier = rule.tier
			break // tiers are ordered highest first
		}
	}
	if deadline != nil && withinNextDay(*deadline, anchor) {
		tier = tier.Boost()
	}
	return tier
}

// withinNextDay reports whether the deadline's calendar date is the
// anchor's date or the day after.
func withinNextDay(deadline, anchor time.Time) bool {
	anchorDay := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, anchor.Location())
	deadlineDay := time.Date(deadline.Year(), deadline.Month(), deadline.Day(), 0, 0, 0, 0, anchor.Location())
	diff := int(deadlineDay.Sub(anchorDay).Hours() / 24)
	return diff == 0 || diff == 1
}

func matchesAny(text string, keywords []string) bool {
	padded := " " + text + " "
	for _, kw := range keywords {
		idx := 0
		for {
			i := strings.Index(padded[idx:], kw)
			if i < 0 {
				break
			}
			start := idx + i
			end := start + len(kw)
			if !isWordByte(padded[start-1]) && end < len(padded) && !isWordByte(padded[end]) {
				return true
			}
			idx = start + 1
		}
	}
	return false
}

func isWordByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(strings.TrimSpace(s))
	}
	return out
}
