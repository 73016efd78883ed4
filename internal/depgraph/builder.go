package depgraph

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/Mitesh6440/MeetMind/internal/rules"
	"github.com/Mitesh6440/MeetMind/internal/task"
	"github.com/Mitesh6440/MeetMind/internal/transcript"
)

// Builder detects dependency phrasing in task sentences and resolves the
// referenced tasks.
type Builder struct {
	cues []string
}

// NewBuilder takes the dependency cue lexicon from the rule tables.
func NewBuilder(rs *rules.Set) *Builder {
	cues := make([]string, len(rs.DependencyCues))
	for i, c := range rs.DependencyCues {
		cues[i] = strings.ToLower(strings.TrimSpace(c))
	}
	return &Builder{cues: cues}
}

var taskOrdinalRe = regexp.MustCompile(`\btask\s+(\d+)\b`)

// stopwords are ignored when measuring textual overlap between a reference
// clause and candidate task descriptions.
var stopwords = map[string]bool{
	"the": true, "and": true, "are": true, "for": true, "was": true,
	"is": true, "done": true, "this": true, "that": true, "with": true,
	"its": true, "has": true, "have": true, "been": true, "will": true,
	"once": true, "when": true, "then": true, "what": true, "all": true,
}

// Build returns an enriched copy of the batch with Dependencies filled plus
// the analyzed graph. If task B's sentence says B comes after A, the graph
// stores the edge A→B.
func (b *Builder) Build(tasks []task.Task, sentences []transcript.Sentence) ([]task.Task, Graph) {
	texts := make(map[int]string, len(sentences))
	for _, s := range sentences {
		texts[s.Index] = strings.ToLower(s.Text)
	}
	out := task.CloneAll(tasks)
	ids := make([]int, len(out))
	var edges []Edge
	for i := range out {
		ids[i] = out[i].ID
		deps := b.dependenciesFor(out[i], out, texts[out[i].OriginSentence])
		out[i].Dependencies = deps
		for _, dep := range deps {
			edges = append(edges, Edge{From: dep, To: out[i].ID})
		}
	}
	return out, Analyze(ids, edges)
}

// dependenciesFor scans the task's origin sentence for dependency cues and
// resolves each reference clause: explicit "task N" ordinals first, then
// the nearest preceding task whose description or sentence shares a
// significant word with the clause.
func (b *Builder) dependenciesFor(current task.Task, all []task.Task, sentence string) []int {
	if sentence == "" {
		return nil
	}
	found := map[int]bool{}
	for _, cue := range b.cues {
		clause, ok := clauseAfter(sentence, cue)
		if !ok {
			continue
		}
		if id, ok := ordinalReference(clause, all, current.ID); ok {
			found[id] = true
			continue
		}
		if id, ok := overlapReference(clause, all, current); ok {
			found[id] = true
		}
	}
	if len(found) == 0 {
		return nil
	}
	deps := make([]int, 0, len(found))
	for id := range found {
		deps = append(deps, id)
	}
	sort.Ints(deps)
	return deps
}

// clauseAfter returns the text following the cue up to the next comma.
func clauseAfter(sentence, cue string) (string, bool) {
	padded := " " + sentence + " "
	i := strings.Index(padded, " "+cue+" ")
	if i < 0 {
		return "", false
	}
	clause := padded[i+len(cue)+2:]
	if j := strings.IndexByte(clause, ','); j >= 0 {
		clause = clause[:j]
	}
	clause = strings.TrimSpace(clause)
	if clause == "" {
		return "", false
	}
	return clause, true
}

func ordinalReference(clause string, all []task.Task, selfID int) (int, bool) {
	m := taskOrdinalRe.FindStringSubmatch(clause)
	if m == nil {
		return 0, false
	}
	for _, t := range all {
		if strconv.Itoa(t.ID) == m[1] && t.ID != selfID {
			return t.ID, true
		}
	}
	return 0, false
}

func overlapReference(clause string, all []task.Task, current task.Task) (int, bool) {
	words := significantWords(clause)
	if len(words) == 0 {
		return 0, false
	}
	for i := len(all) - 1; i >= 0; i-- {
		candidate := all[i]
		if candidate.ID >= current.ID {
			continue
		}
		haystack := " " + strings.ToLower(candidate.Description) + " "
		for _, w := range words {
			if strings.Contains(haystack, " "+w+" ") {
				return candidate.ID, true
			}
		}
	}
	return 0, false
}

func significantWords(clause string) []string {
	var out []string
	for _, w := range strings.Fields(strings.ToLower(clause)) {
		w = strings.Trim(w, ",.!?;:'\"")
		if len(w) < 3 || stopwords[w] {
			continue
		}
		out = append(out, w)
	}
	return out
}
