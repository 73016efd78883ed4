// Package extract detects action-item sentences and turns them into task
// records with canonical descriptions.
package extract

import (
	"regexp"
	"strings"

	"github.com/Mitesh6440/MeetMind/internal/rules"
	"github.com/Mitesh6440/MeetMind/internal/task"
	"github.com/Mitesh6440/MeetMind/internal/transcript"
)

// lookback is the fixed window of preceding sentences scanned when
// resolving vague referents.
const lookback = 3

// minWords rejects fragments too short to carry an action item.
const minWords = 3

// Extractor applies the layered action-item heuristic: imperative verb
// forms, modal obligation markers, and direct-address patterns.
type Extractor struct {
	prefixes    []string
	actionVerbs []string
	obligation  []string
	address     []string
	nonTask     []string
	techPhrases []string
}

// New builds an extractor over the given rule tables.
func New(rs *rules.Set) *Extractor {
	return &Extractor{
		prefixes:    lowerAll(rs.Prefixes),
		actionVerbs: lowerAll(rs.ActionVerbs),
		obligation:  lowerAll(rs.ObligationPhrases),
		address:     lowerAll(rs.AddressPhrases),
		nonTask:     lowerAll(rs.NonTaskHints),
		techPhrases: lowerAll(rs.TechnicalPhrases),
	}
}

// Extract walks the sentences in order and emits a task for each one that
// reads as an action item. IDs are assigned in transcript order starting at
// 1. Sentences with no actionable content simply produce nothing.
func (e *Extractor) Extract(sentences []transcript.Sentence) []task.Task {
	var tasks []task.Task
	for _, sent := range sentences {
		text := e.stripPrefixes(sent.Text)
		if !e.isActionItem(text) {
			continue
		}
		description := e.resolveReferent(text, sent.Index, sentences, tasks)
		tasks = append(tasks, task.Task{
			ID:             len(tasks) + 1,
			Description:    description,
			OriginSentence: sent.Index,
		})
	}
	return tasks
}

// stripPrefixes repeatedly removes conversational lead-ins ("so i think",
// "well", ...) while preserving the casing of what remains.
func (e *Extractor) stripPrefixes(text string) string {
	for {
		lower := strings.ToLower(text)
		stripped := false
		for _, prefix := range e.prefixes {
			if strings.HasPrefix(lower, prefix+" ") || strings.HasPrefix(lower, prefix+",") {
				text = strings.TrimLeft(text[len(prefix):], " ,")
				stripped = true
				break
			}
		}
		if !stripped {
			return text
		}
	}
}

func (e *Extractor) isActionItem(text string) bool {
	lower := strings.ToLower(text)
	if len(strings.Fields(lower)) < minWords {
		return false
	}
	for _, hint := range e.nonTask {
		if strings.Contains(lower, hint) {
			return false
		}
	}
	for _, verb := range e.actionVerbs {
		if strings.HasPrefix(lower, verb+" ") {
			return true
		}
	}
	for _, phrase := range e.obligation {
		if containsPhrase(lower, phrase) {
			return true
		}
	}
	for _, phrase := range e.address {
		if containsPhrase(lower, phrase) {
			return true
		}
	}
	return false
}

var vagueReferent = regexp.MustCompile(`\b([Ii]t|[Tt]his|[Tt]hat)\b`)

// resolveReferent replaces the first vague pronoun with the nearest concrete
// referent from the preceding window: the object phrase of the most recent
// prior task first, then a known technical phrase from the preceding
// sentences. When no referent is found the pronoun stays as-is rather than
// guessing.
func (e *Extractor) resolveReferent(text string, index int, sentences []transcript.Sentence, prior []task.Task) string {
	loc := vagueReferent.FindStringIndex(text)
	if loc == nil {
		return text
	}
	referent := ""
	for i := len(prior) - 1; i >= 0; i-- {
		if prior[i].OriginSentence < index-lookback {
			break
		}
		if phrase := e.objectPhrase(prior[i].Description); phrase != "" {
			referent = phrase
			break
		}
	}
	if referent == "" {
		for i := len(sentences) - 1; i >= 0; i-- {
			sent := sentences[i]
			if sent.Index >= index {
				continue
			}
			if sent.Index < index-lookback {
				break
			}
			lower := strings.ToLower(sent.Text)
			for _, phrase := range e.techPhrases {
				if strings.Contains(lower, phrase) {
					referent = "the " + phrase
					break
				}
			}
			if referent != "" {
				break
			}
		}
	}
	if referent == "" {
		return text
	}
	return text[:loc[0]] + referent + text[loc[1]:]
}

// objectPhrase extracts the noun phrase that follows a task description's
// leading action verb, cut at the first cue or preposition token.
func (e *Extractor) objectPhrase(description string) string {
	words := strings.Fields(description)
	start := -1
	for i, w := range words {
		if isVerb(strings.ToLower(strings.Trim(w, ",.")), e.actionVerbs) {
			start = i + 1
			break
		}
	}
	if start < 0 || start >= len(words) {
		return ""
	}
	stop := map[string]bool{
		"by": true, "before": true, "after": true, "until": true,
		"on": true, "at": true, "once": true, "so": true, "because": true,
	}
	var phrase []string
	for _, w := range words[start:] {
		bare := strings.ToLower(strings.Trim(w, ",."))
		if stop[bare] || len(phrase) == 5 {
			break
		}
		phrase = append(phrase, strings.Trim(w, ",."))
	}
	return strings.Join(phrase, " ")
}

func isVerb(word string, verbs []string) bool {
	for _, v := range verbs {
		if word == v {
			return true
		}
	}
	return false
}

// containsPhrase matches a multi-word phrase on word boundaries.
func containsPhrase(text, phrase string) bool {
	idx := 0
	for {
		i := strings.Index(text[idx:], phrase)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(phrase)
		beforeOK := start == 0 || !isWordByte(text[start-1])
		afterOK := end == len(text) || !isWordByte(text[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordByte(b byte) bool {
	return b == '\'' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(strings.TrimSpace(s))
	}
	return out
}
