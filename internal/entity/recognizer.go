// Package entity tags person names, technical terms, and time expressions
// in segmented transcript sentences.
package entity

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/Mitesh6440/MeetMind/internal/rules"
	"github.com/Mitesh6440/MeetMind/internal/team"
	"github.com/Mitesh6440/MeetMind/internal/transcript"
)

// Type discriminates recognized entities.
type Type string

const (
	TypePerson         Type = "person"
	TypeTechnicalTerm  Type = "technical_term"
	TypeTimeExpression Type = "time_expression"
)

// Entity is one recognized span, tagged with the sentence it came from.
type Entity struct {
	Type          Type
	Text          string
	SentenceIndex int
}

// ContextRadius is how many neighbor sentences on each side belong to a
// task's context window.
const ContextRadius = 1

// Recognizer extracts entities from sentences. Recognition never fails; an
// absent category simply yields nothing.
type Recognizer struct {
	techPhrases []string
	skillRules  []rules.SkillRule
	timeRegexes []*regexp.Regexp
	commonCaps  map[string]bool
}

var timePatterns = []string{
	`\d{4}-\d{2}-\d{2}`,
	`\d{1,2}/\d{1,2}/\d{2,4}`,
	`(?:january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{1,2}(?:st|nd|rd|th)?(?:,?\s+\d{4})?`,
	`\d{1,2}(?:st|nd|rd|th)?\s+(?:january|february|march|april|may|june|july|august|september|october|november|december)(?:\s+\d{4})?`,
	`day\s+after\s+tomorrow`,
	`in\s+\d+\s+(?:day|days|week|weeks)`,
	`next\s+(?:week|month|monday|tuesday|wednesday|thursday|friday|saturday|sunday)`,
	`end\s+of\s+(?:the\s+)?(?:day|week|month)`,
	`(?:today|tonight|tomorrow)`,
	`(?:monday|tuesday|wednesday|thursday|friday|saturday|sunday)`,
	`(?:eod|eow|eom)`,
}

// NewRecognizer compiles the time-expression regex set and captures the
// technical lexicons from the rule tables.
func NewRecognizer(rs *rules.Set) *Recognizer {
	r := &Recognizer{
		techPhrases: rs.TechnicalPhrases,
		skillRules:  rs.Skills,
		commonCaps: map[string]bool{
			// Capitalized tokens that are never person names.
			"the": true, "this": true, "that": true, "it": true, "we": true,
			"i": true, "monday": true, "tuesday": true, "wednesday": true,
			"thursday": true, "friday": true, "saturday": true, "sunday": true,
			"january": true, "february": true, "march": true, "april": true,
			"may": true, "june": true, "july": true, "august": true,
			"september": true, "october": true, "november": true, "december": true,
		},
	}
	for _, p := range timePatterns {
		r.timeRegexes = append(r.timeRegexes, regexp.MustCompile(`(?i)\b`+p+`\b`))
	}
	return r
}

// Recognize scans every sentence and returns all entities in deterministic
// order: by sentence, then persons, technical terms, and time expressions.
func (r *Recognizer) Recognize(sentences []transcript.Sentence, roster team.Roster) []Entity {
	var out []Entity
	for _, sent := range sentences {
		out = append(out, r.persons(sent, roster)...)
		out = append(out, r.technicalTerms(sent)...)
		out = append(out, r.timeExpressions(sent)...)
	}
	return out
}

// persons matches roster members first, then falls back to a generic
// capitalized-name pattern for tokens that are not common words.
func (r *Recognizer) persons(sent transcript.Sentence, roster team.Roster) []Entity {
	var out []Entity
	seen := map[string]bool{}
	add := func(name string) {
		key := strings.ToLower(name)
		if !seen[key] {
			seen[key] = true
			out = append(out, Entity{Type: TypePerson, Text: name, SentenceIndex: sent.Index})
		}
	}
	if sent.Speaker != "" {
		add(canonicalName(sent.Speaker, roster))
	}
	lower := " " + strings.ToLower(sent.Text) + " "
	for _, m := range roster {
		if phraseAt(lower, strings.ToLower(m.Name)) >= 0 {
			add(m.Name)
		}
	}
	tokens := strings.Fields(sent.Text)
	for i, tok := range tokens {
		bare := strings.Trim(tok, ",.!?;:'\"")
		runes := []rune(bare)
		if len(runes) < 2 || !unicode.IsUpper(runes[0]) {
			continue
		}
		if strings.ToUpper(bare) == bare {
			continue // acronyms are technical, not people
		}
		lowered := strings.ToLower(bare)
		if r.commonCaps[lowered] || r.isTechnicalWord(lowered) {
			continue
		}
		// A sentence-initial capital is only a name when a verb-like word
		// follows ("John will..."), otherwise it is just casing.
		if i == 0 && (len(tokens) < 2 || !nameFollowers[strings.ToLower(strings.Trim(tokens[1], ",.!?;:'\""))]) {
			continue
		}
		add(canonicalName(bare, roster))
	}
	return out
}

var nameFollowers = map[string]bool{
	"will": true, "should": true, "must": true, "can": true, "could": true,
	"needs": true, "need": true, "is": true, "was": true, "has": true,
	"please": true, "shall": true, "wants": true,
}

func (r *Recognizer) isTechnicalWord(lowered string) bool {
	for _, phrase := range r.techPhrases {
		for _, w := range strings.Fields(strings.ToLower(phrase)) {
			if w == lowered {
				return true
			}
		}
	}
	for _, rule := range r.skillRules {
		for _, kw := range rule.Keywords {
			if strings.ToLower(kw) == lowered {
				return true
			}
		}
	}
	return false
}

func canonicalName(name string, roster team.Roster) string {
	if m, ok := roster.Find(name); ok {
		return m.Name
	}
	return name
}

func (r *Recognizer) technicalTerms(sent transcript.Sentence) []Entity {
	var out []Entity
	seen := map[string]bool{}
	lower := " " + strings.ToLower(sent.Text) + " "
	add := func(term string) {
		key := strings.ToLower(term)
		if !seen[key] {
			seen[key] = true
			out = append(out, Entity{Type: TypeTechnicalTerm, Text: term, SentenceIndex: sent.Index})
		}
	}
	for _, phrase := range r.techPhrases {
		if phraseAt(lower, strings.ToLower(phrase)) >= 0 {
			add(phrase)
		}
	}
	for _, rule := range r.skillRules {
		for _, kw := range rule.Keywords {
			if phraseAt(lower, strings.ToLower(kw)) >= 0 {
				add(kw)
			}
		}
	}
	// Jargon heuristic: acronyms and dotted tokens (API, node.js).
	for _, tok := range strings.Fields(sent.Text) {
		bare := strings.Trim(tok, ",.!?;:'\"")
		if len(bare) >= 2 && bare == strings.ToUpper(bare) && isAlpha(bare) {
			add(bare)
		} else if strings.Count(bare, ".") == 1 && len(bare) > 3 {
			add(bare)
		}
	}
	return out
}

// timeExpressions runs the regex set longest-pattern-first and drops
// matches contained inside an earlier, longer one so "next friday" never
// also yields "friday".
func (r *Recognizer) timeExpressions(sent transcript.Sentence) []Entity {
	type span struct {
		start, end int
		text       string
	}
	var spans []span
	for _, re := range r.timeRegexes {
		for _, loc := range re.FindAllStringIndex(sent.Text, -1) {
			spans = append(spans, span{loc[0], loc[1], sent.Text[loc[0]:loc[1]]})
		}
	}
	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].start != spans[j].start {
			return spans[i].start < spans[j].start
		}
		return spans[i].end > spans[j].end
	})
	var out []Entity
	lastEnd := -1
	seen := map[string]bool{}
	for _, sp := range spans {
		if sp.start < lastEnd {
			continue
		}
		key := strings.ToLower(sp.text)
		if seen[key] {
			continue
		}
		seen[key] = true
		lastEnd = sp.end
		out = append(out, Entity{Type: TypeTimeExpression, Text: strings.ToLower(sp.text), SentenceIndex: sent.Index})
	}
	return out
}

// phraseAt finds a phrase on word boundaries inside a lowercased, space
// padded haystack. Returns -1 when absent.
func phraseAt(padded, phrase string) int {
	idx := 0
	for {
		i := strings.Index(padded[idx:], phrase)
		if i < 0 {
			return -1
		}
		start := idx + i
		end := start + len(phrase)
		if !isWordByte(padded[start-1]) && end < len(padded) && !isWordByte(padded[end]) {
			return start
		}
		idx = start + 1
	}
}

func isWordByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || (r > 'Z' && r < 'a') || r > 'z' {
			return false
		}
	}
	return true
}
