// Package depgraph builds the inter-task dependency graph, detects cycles,
// and computes a deterministic execution order.
package depgraph

import "encoding/json"

// Edge is a directed dependency: From must complete before To.
type Edge struct {
	From int `json:"from_task_id"`
	To   int `json:"to_task_id"`
}

// Graph is the analyzed dependency structure for one batch.
// ExecutionOrder is populated if and only if HasCycles is false; a cyclic
// graph never gets a partial or best-effort order.
type Graph struct {
	Edges          []Edge
	HasCycles      bool
	ExecutionOrder []int
}

type wireGraph struct {
	Edges          []Edge `json:"edges"`
	HasCycles      bool   `json:"has_cycles"`
	ExecutionOrder []int  `json:"execution_order"`
}

// MarshalJSON renders the wire form: execution_order is an explicit null
// for cyclic graphs.
func (g Graph) MarshalJSON() ([]byte, error) {
	w := wireGraph{Edges: g.Edges, HasCycles: g.HasCycles, ExecutionOrder: g.ExecutionOrder}
	if w.Edges == nil {
		w.Edges = []Edge{}
	}
	if !g.HasCycles && w.ExecutionOrder == nil {
		w.ExecutionOrder = []int{}
	}
	return json.Marshal(w)
}

// UnmarshalJSON reads the wire form back.
func (g *Graph) UnmarshalJSON(data []byte) error {
	var w wireGraph
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*g = Graph{Edges: w.Edges, HasCycles: w.HasCycles, ExecutionOrder: w.ExecutionOrder}
	return nil
}

// color is the DFS marking scheme for cycle detection.
type color int

const (
	unvisited color = iota
	inProgress
	done
)

// Analyze examines a node set and edge list: it detects cycles with a
// three-color depth-first traversal and, when acyclic, computes a
// topological order that always emits the lowest ready task id first.
func Analyze(ids []int, edges []Edge) Graph {
	adjacency := make(map[int][]int, len(ids))
	indegree := make(map[int]int, len(ids))
	for _, id := range ids {
		indegree[id] = 0
	}
	for _, e := range edges {
		adjacency[e.From] = append(adjacency[e.From], e.To)
		indegree[e.To]++
	}

	graph := Graph{Edges: edges}
	marks := make(map[int]color, len(ids))
	var visit func(id int) bool
	visit = func(id int) bool {
		marks[id] = inProgress
		for _, next := range adjacency[id] {
			switch marks[next] {
			case inProgress:
				return true // back-edge
			case unvisited:
				if visit(next) {
					return true
				}
			}
		}
		marks[id] = done
		return false
	}
	for _, id := range ids {
		if marks[id] == unvisited && visit(id) {
			graph.HasCycles = true
			return graph
		}
	}

	// Kahn's algorithm. Among all currently-ready nodes the lowest task id
	// goes first, which makes the order deterministic for a given batch.
	order := make([]int, 0, len(ids))
	for len(order) < len(ids) {
		ready := -1
		for _, id := range ids {
			if indegree[id] == 0 && (ready < 0 || id < ready) {
				ready = id
			}
		}
		if ready < 0 {
			break // unreachable once the cycle check passed
		}
		order = append(order, ready)
		indegree[ready] = -1
		for _, next := range adjacency[ready] {
			indegree[next]--
		}
	}
	graph.ExecutionOrder = order
	return graph
}
