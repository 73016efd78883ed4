// Package assign resolves task assignees through a deterministic rule
// cascade: explicit mention, skill match, fuzzy role match, then a
// workload-balanced fallback.
package assign

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/Mitesh6440/MeetMind/internal/entity"
	"github.com/Mitesh6440/MeetMind/internal/task"
	"github.com/Mitesh6440/MeetMind/internal/team"
	"github.com/Mitesh6440/MeetMind/internal/transcript"
)

const (
	// roleMatchConfidence is the fixed band for cascade rule 3, below any
	// possible skill-match confidence for a matched skill set.
	roleMatchConfidence = 0.5
	// fallbackConfidence is the fixed band for the workload fallback.
	fallbackConfidence = 0.2

	reasonNoRoster = "no team members available"
	reasonExplicit = "explicitly mentioned in conversation"
)

// Engine applies the assignment cascade over a roster snapshot. Workload
// counts accumulate per batch, so tie-breaks depend only on the batch
// itself.
type Engine struct{}

// NewEngine returns a cascade engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Assign walks the batch in task-id order and fills AssignedTo,
// AssignmentConfidence, and AssignmentReasoning on an enriched copy. An
// empty roster leaves every task unassigned; that is not an error.
func (e *Engine) Assign(tasks []task.Task, roster team.Roster, sentences []transcript.Sentence, ix *entity.Index) []task.Task {
	texts := make(map[int]string, len(sentences))
	for _, s := range sentences {
		texts[s.Index] = s.Text
	}
	snapshot := roster.Snapshot()
	counts := make(map[string]int, len(snapshot))
	out := task.CloneAll(tasks)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	for i := range out {
		mentionText := texts[out[i].OriginSentence]
		if ix != nil {
			// Restrict mention matching to names the recognizer actually saw.
			mentionText = mentionContext(out[i], texts, ix)
		}
		decision := e.assignOne(out[i], mentionText, snapshot, counts)
		out[i].AssignedTo = decision.assignee
		out[i].AssignmentConfidence = decision.confidence
		out[i].AssignmentReasoning = decision.reasoning
		if decision.assignee != "" {
			counts[decision.assignee]++
		}
	}
	return out
}

// mentionContext keeps the origin sentence as mention text only when the
// recognizer tagged a person there; otherwise explicit mention cannot fire.
func mentionContext(t task.Task, texts map[int]string, ix *entity.Index) string {
	if len(ix.InSentence(t.OriginSentence, entity.TypePerson)) == 0 {
		return ""
	}
	return texts[t.OriginSentence]
}

type decision struct {
	assignee   string
	confidence float64
	reasoning  string
}

// assignOne runs the cascade for one task. First match wins.
func (e *Engine) assignOne(t task.Task, mentionText string, roster team.Roster, counts map[string]int) decision {
	if len(roster) == 0 {
		return decision{reasoning: reasonNoRoster}
	}
	if name, ok := explicitMention(mentionText, roster); ok {
		return decision{assignee: name, confidence: 1.0, reasoning: reasonExplicit}
	}
	if d, ok := skillMatch(t, roster, counts); ok {
		return d
	}
	if d, ok := roleMatch(t, roster, counts); ok {
		return d
	}
	return workloadFallback(roster, counts)
}

// explicitMention picks the earliest roster name in the mention text; in a
// sentence like "Sarah should review it after John is done" the earliest
// name is the actor.
func explicitMention(text string, roster team.Roster) (string, bool) {
	if text == "" {
		return "", false
	}
	padded := " " + strings.ToLower(text) + " "
	best := ""
	bestPos := -1
	for _, m := range roster {
		pos := strings.Index(padded, " "+strings.ToLower(m.Name)+" ")
		if pos < 0 {
			pos = strings.Index(padded, " "+strings.ToLower(m.Name)+",")
		}
		if pos >= 0 && (bestPos < 0 || pos < bestPos) {
			best, bestPos = m.Name, pos
		}
	}
	return best, bestPos >= 0
}

// skillMatch scores each member by the size of the intersection between the
// task's required skills and the member's skills. Ties go to the member
// with the fewest tasks assigned so far, then roster order. An empty
// required-skill set disqualifies this rule.
func skillMatch(t task.Task, roster team.Roster, counts map[string]int) (decision, bool) {
	if len(t.RequiredSkills) == 0 {
		return decision{}, false
	}
	best := -1
	bestOverlap := 0
	var bestSkills []string
	for i, m := range roster {
		var matched []string
		for _, skill := range t.RequiredSkills {
			if m.HasSkill(skill) {
				matched = append(matched, skill)
			}
		}
		if len(matched) == 0 {
			continue
		}
		switch {
		case len(matched) > bestOverlap:
		case len(matched) == bestOverlap && counts[m.Name] < counts[roster[best].Name]:
		default:
			continue
		}
		best, bestOverlap, bestSkills = i, len(matched), matched
	}
	if best < 0 {
		return decision{}, false
	}
	member := roster[best]
	confidence := float64(bestOverlap) / float64(len(t.RequiredSkills))
	return decision{
		assignee:   member.Name,
		confidence: confidence,
		reasoning:  fmt.Sprintf("skill match: %s covers %d of %d required skills (%s)", member.Name, bestOverlap, len(t.RequiredSkills), strings.Join(bestSkills, ", ")),
	}, true
}

// roleMatch fuzzy-matches task vocabulary against member role strings and
// assigns the best-scoring member at a fixed confidence band.
func roleMatch(t task.Task, roster team.Roster, counts map[string]int) (decision, bool) {
	vocab := vocabulary(t)
	if len(vocab) == 0 {
		return decision{}, false
	}
	best := -1
	bestScore := 0
	for i, m := range roster {
		if strings.TrimSpace(m.Role) == "" {
			continue
		}
		score, ok := roleScore(vocab, m.Role)
		if !ok {
			continue
		}
		switch {
		case best < 0, score > bestScore:
		case score == bestScore && counts[m.Name] < counts[roster[best].Name]:
		default:
			continue
		}
		best, bestScore = i, score
	}
	if best < 0 {
		return decision{}, false
	}
	member := roster[best]
	return decision{
		assignee:   member.Name,
		confidence: roleMatchConfidence,
		reasoning:  fmt.Sprintf("role match: task vocabulary fits %s (%s)", member.Name, member.Role),
	}, true
}

// roleScore is the best fuzzy score of any vocabulary token against the
// role string; ok is false when nothing matches at all.
func roleScore(vocab []string, role string) (int, bool) {
	targets := []string{role}
	best := 0
	found := false
	for _, token := range vocab {
		matches := fuzzy.Find(token, targets)
		if len(matches) == 0 {
			continue
		}
		if !found || matches[0].Score > best {
			best = matches[0].Score
			found = true
		}
	}
	return best, found
}

// vocabulary is the token set rule 3 matches against roles: description
// words of four letters or more, plus skills and technical terms.
func vocabulary(t task.Task) []string {
	var out []string
	seen := map[string]bool{}
	add := func(w string) {
		w = strings.ToLower(strings.Trim(w, ",.!?;:'\""))
		if len(w) >= 4 && !seen[w] {
			seen[w] = true
			out = append(out, w)
		}
	}
	for _, w := range strings.Fields(t.Description) {
		add(w)
	}
	for _, s := range t.RequiredSkills {
		add(s)
	}
	for _, term := range t.TechnicalTerms {
		add(term)
	}
	return out
}

// workloadFallback assigns the member with the fewest tasks so far, ties
// broken by roster order.
func workloadFallback(roster team.Roster, counts map[string]int) decision {
	best := 0
	for i := range roster {
		if counts[roster[i].Name] < counts[roster[best].Name] {
			best = i
		}
	}
	member := roster[best]
	return decision{
		assignee:   member.Name,
		confidence: fallbackConfidence,
		reasoning:  fmt.Sprintf("workload balancing fallback: %s has the fewest tasks in this batch", member.Name),
	}
}
