// Package deadline converts detected time expressions into absolute
// timestamps, gated on explicit deadline cues.
package deadline

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Mitesh6440/MeetMind/internal/entity"
	"github.com/Mitesh6440/MeetMind/internal/rules"
	"github.com/Mitesh6440/MeetMind/internal/task"
	"github.com/Mitesh6440/MeetMind/internal/transcript"
)

// Note records a non-fatal resolution problem. The task is still emitted.
type Note struct {
	TaskID  int
	Message string
}

// Resolver applies the two-phase, conservative deadline rule: no cue
// keyword in the context window means no deadline, even when a time
// expression is present.
type Resolver struct {
	cues []string
}

// New builds a resolver from the deadline cue lexicon.
func New(rs *rules.Set) *Resolver {
	cues := make([]string, len(rs.DeadlineCues))
	for i, c := range rs.DeadlineCues {
		cues[i] = strings.ToLower(strings.TrimSpace(c))
	}
	return &Resolver{cues: cues}
}

// Resolve returns an enriched copy of the batch with deadlines filled where
// a cue and a parsable time expression coincide, plus notes for expressions
// that resisted parsing.
func (r *Resolver) Resolve(tasks []task.Task, sentences []transcript.Sentence, ix *entity.Index, anchor time.Time) ([]task.Task, []Note) {
	texts := make(map[int]string, len(sentences))
	for _, s := range sentences {
		texts[s.Index] = strings.ToLower(s.Text)
	}
	out := task.CloneAll(tasks)
	var notes []Note
	for i := range out {
		origin := out[i].OriginSentence
		cueAt := r.cueSentence(origin, texts)
		if cueAt == 0 {
			continue
		}
		times := ix.Window(origin, entity.ContextRadius, entity.TypeTimeExpression)
		if len(times) == 0 {
			continue
		}
		expr := nearest(times, cueAt)
		when, ok := Parse(expr.Text, anchor)
		if !ok {
			notes = append(notes, Note{
				TaskID:  out[i].ID,
				Message: fmt.Sprintf("unparsable time expression %q near deadline cue", expr.Text),
			})
			continue
		}
		out[i].Deadline = &when
	}
	return out, notes
}

// cueSentence returns the sentence index inside the context window that
// carries a deadline cue, or 0 when there is none. The origin sentence is
// checked first.
func (r *Resolver) cueSentence(origin int, texts map[int]string) int {
	for _, idx := range []int{origin, origin + 1, origin - 1} {
		text, ok := texts[idx]
		if !ok {
			continue
		}
		padded := " " + text + " "
		for _, cue := range r.cues {
			if strings.Contains(padded, " "+cue+" ") {
				return idx
			}
		}
	}
	return 0
}

func nearest(times []entity.Entity, cueAt int) entity.Entity {
	best := times[0]
	bestDist := distance(best.SentenceIndex, cueAt)
	for _, e := range times[1:] {
		if d := distance(e.SentenceIndex, cueAt); d < bestDist {
			best, bestDist = e, d
		}
	}
	return best
}

func distance(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

var (
	weekdays = map[string]time.Weekday{
		"monday": time.Monday, "tuesday": time.Tuesday, "wednesday": time.Wednesday,
		"thursday": time.Thursday, "friday": time.Friday, "saturday": time.Saturday,
		"sunday": time.Sunday,
	}
	inUnitsRe  = regexp.MustCompile(`^in\s+(\d+)\s+(day|days|week|weeks)$`)
	ordinalRe  = regexp.MustCompile(`(\d)(st|nd|rd|th)\b`)
	spaceRunRe = regexp.MustCompile(`\s+`)
)

// absoluteLayouts are tried in order against normalized expressions.
// Month-name matching in the time package is case-insensitive.
var absoluteLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"1/2/06",
	"January 2, 2006",
	"January 2 2006",
	"2 January 2006",
	"2 January",
	"January 2",
}

// Parse resolves a single time expression against the anchor timestamp.
// Relative phrases use defined offsets; bare weekdays resolve to the next
// future occurrence, never the past and never same-day. All results
// normalize to end of day in the anchor's location.
func Parse(expr string, anchor time.Time) (time.Time, bool) {
	expr = strings.TrimSpace(spaceRunRe.ReplaceAllString(strings.ToLower(expr), " "))
	switch expr {
	case "today", "tonight", "eod", "end of day", "end of the day":
		return endOfDay(anchor), true
	case "tomorrow":
		return endOfDay(anchor.AddDate(0, 0, 1)), true
	case "day after tomorrow":
		return endOfDay(anchor.AddDate(0, 0, 2)), true
	case "next week":
		return endOfDay(anchor.AddDate(0, 0, gapToWeekday(anchor, time.Monday))), true
	case "next month":
		first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
		return endOfDay(first.AddDate(0, 2, -1)), true
	case "end of week", "end of the week", "eow":
		gap := (int(time.Friday) - int(anchor.Weekday()) + 7) % 7
		return endOfDay(anchor.AddDate(0, 0, gap)), true
	case "end of month", "end of the month", "eom":
		first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
		return endOfDay(first.AddDate(0, 1, -1)), true
	}
	if m := inUnitsRe.FindStringSubmatch(expr); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil || n <= 0 {
			return time.Time{}, false
		}
		if strings.HasPrefix(m[2], "week") {
			n *= 7
		}
		return endOfDay(anchor.AddDate(0, 0, n)), true
	}
	if wd, ok := weekdays[strings.TrimPrefix(expr, "next ")]; ok {
		gap := gapToWeekday(anchor, wd)
		if strings.HasPrefix(expr, "next ") {
			gap += 7
		}
		return endOfDay(anchor.AddDate(0, 0, gap)), true
	}
	return parseAbsolute(expr, anchor)
}

// gapToWeekday is the number of days until the next future occurrence of
// the weekday, always at least 1.
func gapToWeekday(anchor time.Time, wd time.Weekday) int {
	gap := (int(wd) - int(anchor.Weekday()) + 7) % 7
	if gap == 0 {
		gap = 7
	}
	return gap
}

func parseAbsolute(expr string, anchor time.Time) (time.Time, bool) {
	expr = ordinalRe.ReplaceAllString(expr, "$1")
	expr = strings.TrimSpace(expr)
	for _, layout := range absoluteLayouts {
		parsed, err := time.ParseInLocation(layout, expr, anchor.Location())
		if err != nil {
			continue
		}
		if parsed.Year() == 0 {
			parsed = parsed.AddDate(anchor.Year(), 0, 0)
			// A yearless date already behind the anchor means the speaker
			// meant the next calendar year.
			if endOfDay(parsed).Before(anchor) {
				parsed = parsed.AddDate(1, 0, 0)
			}
		}
		return endOfDay(parsed), true
	}
	// Swapped day/month fallback for European-style dates.
	if strings.Contains(expr, "/") {
		for _, layout := range []string{"2/1/2006", "2/1/06"} {
			parsed, err := time.ParseInLocation(layout, expr, anchor.Location())
			if err == nil {
				return endOfDay(parsed), true
			}
		}
	}
	return time.Time{}, false
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
