// Package pipeline wires the enrichment stages into one deterministic
// pass: segment, extract, recognize, resolve deadlines, classify priority,
// build the dependency graph, match skills, assign.
package pipeline

import (
	"time"

	"github.com/Mitesh6440/MeetMind/internal/assign"
	"github.com/Mitesh6440/MeetMind/internal/deadline"
	"github.com/Mitesh6440/MeetMind/internal/depgraph"
	"github.com/Mitesh6440/MeetMind/internal/entity"
	"github.com/Mitesh6440/MeetMind/internal/extract"
	"github.com/Mitesh6440/MeetMind/internal/priority"
	"github.com/Mitesh6440/MeetMind/internal/rules"
	"github.com/Mitesh6440/MeetMind/internal/skill"
	"github.com/Mitesh6440/MeetMind/internal/task"
	"github.com/Mitesh6440/MeetMind/internal/team"
	"github.com/Mitesh6440/MeetMind/internal/transcript"
)

// Diagnostic records a non-fatal problem inside one stage. Diagnostics
// never abort the batch.
type Diagnostic struct {
	Stage   string `json:"stage"`
	TaskID  int    `json:"task_id"`
	Message string `json:"message"`
}

// Result is the output of one pipeline invocation.
type Result struct {
	Tasks       []task.Task    `json:"tasks"`
	Graph       depgraph.Graph `json:"graph"`
	Diagnostics []Diagnostic   `json:"diagnostics,omitempty"`
}

// Pipeline holds the configured stages. It is purely functional: the same
// (transcript, roster, anchor) always produces a byte-identical result, and
// a Pipeline may be shared across concurrent invocations because Process
// keeps all state on its stack.
type Pipeline struct {
	segmenter  *transcript.Segmenter
	extractor  *extract.Extractor
	recognizer *entity.Recognizer
	deadlines  *deadline.Resolver
	classifier *priority.Classifier
	builder    *depgraph.Builder
	skills     *skill.Matcher
	engine     *assign.Engine
}

// New builds a pipeline over the given rule tables; nil means the
// compiled-in defaults.
func New(rs *rules.Set) *Pipeline {
	if rs == nil {
		rs = rules.Default()
	}
	return &Pipeline{
		segmenter:  transcript.NewSegmenter(rs.Fillers, rs.Disposable),
		extractor:  extract.New(rs),
		recognizer: entity.NewRecognizer(rs),
		deadlines:  deadline.New(rs),
		classifier: priority.New(rs),
		builder:    depgraph.NewBuilder(rs),
		skills:     skill.New(rs),
		engine:     assign.NewEngine(),
	}
}

// Process runs the full enrichment pass over one transcript. The roster is
// snapshotted once at entry, so concurrent roster edits are never visible
// mid-batch. An empty transcript yields an empty result; an empty roster
// yields unassigned tasks. Neither is an error, so Process returns no
// error: per-task problems surface as diagnostics.
func (p *Pipeline) Process(text string, roster team.Roster, anchor time.Time) Result {
	snapshot := roster.Snapshot()

	sentences := p.segmenter.Segment(text)
	tasks := p.extractor.Extract(sentences)

	entities := p.recognizer.Recognize(sentences, snapshot)
	ix := entity.NewIndex(entities)
	tasks = entity.Annotate(tasks, ix)

	tasks, notes := p.deadlines.Resolve(tasks, sentences, ix, anchor)
	tasks = p.classifier.Classify(tasks, sentences, anchor)

	tasks, graph := p.builder.Build(tasks, sentences)
	tasks = p.skills.Match(tasks)
	tasks = p.engine.Assign(tasks, snapshot, sentences, ix)

	result := Result{Tasks: tasks, Graph: graph}
	for _, n := range notes {
		result.Diagnostics = append(result.Diagnostics, Diagnostic{
			Stage:   "deadline",
			TaskID:  n.TaskID,
			Message: n.Message,
		})
	}
	return result
}

// Validate re-checks the assignments of a finished batch against a fresh
// roster snapshot, offline from the main pipeline.
func (p *Pipeline) Validate(tasks []task.Task, roster team.Roster, threshold float64) []assign.Suggestion {
	return p.engine.Validate(tasks, roster, threshold)
}
