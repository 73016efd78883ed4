// Package export persists processed batches as JSON artifacts so they can
// be reviewed or re-validated later.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/Mitesh6440/MeetMind/internal/depgraph"
	"github.com/Mitesh6440/MeetMind/internal/pipeline"
	"github.com/Mitesh6440/MeetMind/internal/task"
)

const (
	tasksFile = "tasks.json"
	graphFile = "graph.json"
	metaFile  = "batch.json"
)

// Metadata describes one exported batch.
type Metadata struct {
	BatchID   string    `json:"batch_id"`
	Source    string    `json:"source"`
	Anchor    time.Time `json:"anchor"`
	TaskCount int       `json:"task_count"`
	EdgeCount int       `json:"edge_count"`
	HasCycles bool      `json:"has_cycles"`
}

// Write stores tasks, graph, and batch metadata under dir, creating it as
// needed. The batch id is freshly generated per export; the task and graph
// payloads themselves stay byte-identical for identical pipeline inputs.
func Write(dir, source string, res pipeline.Result, anchor time.Time) (Metadata, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Metadata{}, fmt.Errorf("export: ensure dir: %w", err)
	}
	meta := Metadata{
		BatchID:   uuid.NewString(),
		Source:    source,
		Anchor:    anchor,
		TaskCount: len(res.Tasks),
		EdgeCount: len(res.Graph.Edges),
		HasCycles: res.Graph.HasCycles,
	}
	if err := writeJSON(filepath.Join(dir, tasksFile), res.Tasks); err != nil {
		return Metadata{}, err
	}
	if err := writeJSON(filepath.Join(dir, graphFile), res.Graph); err != nil {
		return Metadata{}, err
	}
	if err := writeJSON(filepath.Join(dir, metaFile), meta); err != nil {
		return Metadata{}, err
	}
	return meta, nil
}

// LoadTasks reads a batch's task list back from dir.
func LoadTasks(dir string) ([]task.Task, error) {
	data, err := os.ReadFile(filepath.Join(dir, tasksFile))
	if err != nil {
		return nil, fmt.Errorf("export: read tasks: %w", err)
	}
	var tasks []task.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("export: parse tasks: %w", err)
	}
	return tasks, nil
}

// LoadGraph reads a batch's dependency graph back from dir.
func LoadGraph(dir string) (depgraph.Graph, error) {
	data, err := os.ReadFile(filepath.Join(dir, graphFile))
	if err != nil {
		return depgraph.Graph{}, fmt.Errorf("export: read graph: %w", err)
	}
	var g depgraph.Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return depgraph.Graph{}, fmt.Errorf("export: parse graph: %w", err)
	}
	return g, nil
}

// LoadMetadata reads a batch's metadata record back from dir.
func LoadMetadata(dir string) (Metadata, error) {
	data, err := os.ReadFile(filepath.Join(dir, metaFile))
	if err != nil {
		return Metadata{}, fmt.Errorf("export: read metadata: %w", err)
	}
	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return Metadata{}, fmt.Errorf("export: parse metadata: %w", err)
	}
	return meta, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("export: marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("export: write %s: %w", filepath.Base(path), err)
	}
	return nil
}
