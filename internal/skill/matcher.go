// Package skill infers required skills per task from the skill taxonomy in
// the rule tables.
package skill

import (
	"strings"

	"github.com/Mitesh6440/MeetMind/internal/rules"
	"github.com/Mitesh6440/MeetMind/internal/task"
)

// Matcher maps task vocabulary and recognized technical terms onto
// canonical skill tags. Matching is best-effort set membership; an empty
// result never blocks assignment, it only lowers the specificity of the
// skill tier in the cascade.
type Matcher struct {
	taxonomy []rules.SkillRule
}

// New builds a matcher over the skill taxonomy. Rule order is the emit
// order of matched tags.
func New(rs *rules.Set) *Matcher {
	return &Matcher{taxonomy: rs.Skills}
}

// Match returns an enriched copy of the batch with RequiredSkills filled.
func (m *Matcher) Match(tasks []task.Task) []task.Task {
	out := task.CloneAll(tasks)
	for i := range out {
		out[i].RequiredSkills = m.skillsFor(out[i])
	}
	return out
}

func (m *Matcher) skillsFor(t task.Task) []string {
	haystack := strings.ToLower(t.Description)
	for _, term := range t.TechnicalTerms {
		haystack += " " + strings.ToLower(term)
	}
	padded := " " + haystack + " "
	var found []string
	for _, rule := range m.taxonomy {
		for _, kw := range rule.Keywords {
			if containsWord(padded, strings.ToLower(kw)) {
				found = append(found, rule.Skill)
				break
			}
		}
	}
	return found
}

func containsWord(padded, phrase string) bool {
	idx := 0
	for {
		i := strings.Index(padded[idx:], phrase)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(phrase)
		if !isWordByte(padded[start-1]) && end < len(padded) && !isWordByte(padded[end]) {
			return true
		}
		idx = start + 1
	}
}

func isWordByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
