package entity

import (
	"strings"

	"github.com/Mitesh6440/MeetMind/internal/task"
)

// Index groups recognized entities by sentence for context-window lookups.
type Index struct {
	bySentence map[int][]Entity
}

// NewIndex builds the sentence lookup. Input order within a sentence is
// preserved.
func NewIndex(entities []Entity) *Index {
	ix := &Index{bySentence: make(map[int][]Entity)}
	for _, e := range entities {
		ix.bySentence[e.SentenceIndex] = append(ix.bySentence[e.SentenceIndex], e)
	}
	return ix
}

// Window returns entities of one type within radius sentences of center,
// ordered by sentence index then recognition order.
func (ix *Index) Window(center, radius int, typ Type) []Entity {
	var out []Entity
	for idx := center - radius; idx <= center+radius; idx++ {
		for _, e := range ix.bySentence[idx] {
			if e.Type == typ {
				out = append(out, e)
			}
		}
	}
	return out
}

// InSentence returns entities of one type from a single sentence.
func (ix *Index) InSentence(index int, typ Type) []Entity {
	var out []Entity
	for _, e := range ix.bySentence[index] {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}

// Annotate returns an enriched copy of the batch with each task's
// TechnicalTerms filled from its context window.
func Annotate(tasks []task.Task, ix *Index) []task.Task {
	out := task.CloneAll(tasks)
	for i := range out {
		seen := map[string]bool{}
		var terms []string
		for _, e := range ix.Window(out[i].OriginSentence, ContextRadius, TypeTechnicalTerm) {
			key := strings.ToLower(e.Text)
			if !seen[key] {
				seen[key] = true
				terms = append(terms, e.Text)
			}
		}
		out[i].TechnicalTerms = terms
	}
	return out
}
