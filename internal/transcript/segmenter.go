// Package transcript normalizes raw meeting transcripts into ordered,
// indexed sentences for the enrichment pipeline.
package transcript

import (
	"regexp"
	"strings"
)

// Sentence is one utterance after segmentation. Index is 1-based, stable,
// and used by every downstream stage for context-window lookups. Speaker is
// empty when the transcript carries no speaker labels.
type Sentence struct {
	Index   int
	Text    string
	Speaker string
}

// Segmenter splits transcript text on sentence boundaries and discards
// disposable utterances. It never fails; an empty transcript yields an
// empty slice.
type Segmenter struct {
	fillerTokens  map[string]bool
	disposable    map[string]bool
	speakerPrefix *regexp.Regexp
	boundaryGap   *regexp.Regexp
}

// NewSegmenter builds a segmenter from the filler-token and disposable
// utterance lexicons. Matching is case-insensitive.
func NewSegmenter(fillers, disposable []string) *Segmenter {
	s := &Segmenter{
		fillerTokens: make(map[string]bool, len(fillers)),
		disposable:   make(map[string]bool, len(disposable)),
		// "Name:" or "Name Surname:" at the start of a line.
		speakerPrefix: regexp.MustCompile(`^([A-Z][\w.-]*(?:\s+[A-Z][\w.-]*)?):\s+`),
		boundaryGap:   regexp.MustCompile(`([.?!])([^\s.?!])`),
	}
	for _, f := range fillers {
		s.fillerTokens[strings.ToLower(strings.TrimSpace(f))] = true
	}
	for _, d := range disposable {
		s.disposable[strings.ToLower(strings.TrimSpace(d))] = true
	}
	return s
}

// Segment splits raw transcript text into ordered sentences. Whitespace and
// smart quotes are normalized, speaker labels of the form "Name: ..." are
// lifted into the Speaker field, filler tokens are dropped, and utterances
// that are pure filler are discarded entirely.
func (s *Segmenter) Segment(raw string) []Sentence {
	var out []Sentence
	index := 0
	for _, line := range strings.Split(raw, "\n") {
		line = normalize(line)
		if line == "" {
			continue
		}
		speaker := ""
		if m := s.speakerPrefix.FindStringSubmatch(line); m != nil {
			speaker = m[1]
			line = line[len(m[0]):]
		}
		line = s.boundaryGap.ReplaceAllString(line, "$1 $2")
		for _, piece := range splitBoundaries(line) {
			text := s.stripFiller(piece)
			if text == "" {
				continue
			}
			index++
			out = append(out, Sentence{Index: index, Text: text, Speaker: speaker})
		}
	}
	return out
}

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	quoteReplacer = strings.NewReplacer("“", `"`, "”", `"`, "’", "'", "‘", "'")
)

func normalize(text string) string {
	text = quoteReplacer.Replace(text)
	text = whitespaceRun.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

func splitBoundaries(text string) []string {
	var pieces []string
	start := 0
	for i, r := range text {
		if r == '.' || r == '?' || r == '!' {
			piece := strings.TrimSpace(text[start:i])
			if piece != "" {
				pieces = append(pieces, piece)
			}
			start = i + 1
		}
	}
	if tail := strings.TrimSpace(text[start:]); tail != "" {
		pieces = append(pieces, tail)
	}
	return pieces
}

// stripFiller removes filler tokens while preserving the casing of the
// remaining words. A sentence that is nothing but filler, or that matches a
// disposable utterance outright, yields "".
func (s *Segmenter) stripFiller(text string) string {
	if s.disposable[strings.ToLower(text)] {
		return ""
	}
	words := strings.Fields(text)
	kept := words[:0]
	for _, w := range words {
		bare := strings.ToLower(strings.Trim(w, ",;:"))
		if s.fillerTokens[bare] {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}
