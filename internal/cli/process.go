package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Mitesh6440/MeetMind/internal/export"
	"github.com/Mitesh6440/MeetMind/internal/logging"
	"github.com/Mitesh6440/MeetMind/internal/pipeline"
	"github.com/Mitesh6440/MeetMind/internal/rules"
	"github.com/Mitesh6440/MeetMind/internal/task"
	"github.com/Mitesh6440/MeetMind/internal/team"
	"github.com/Mitesh6440/MeetMind/internal/tui"
)

var (
	processTeamPath  string
	processRulesPath string
	processAnchor    string
	processOutDir    string
	processLogDir    string
	processJSON      bool
	processReview    bool
)

var processCmd = &cobra.Command{
	Use:   "process [transcripts...]",
	Short: "Extract tasks from one or more transcript files",
	Long:  `Reads each transcript, runs the enrichment pipeline, and prints a summary per file. With --out, the task batch is exported as JSON for later validation.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runProcess,
}

func init() {
	processCmd.Flags().StringVar(&processTeamPath, "team", "", "YAML roster of team members")
	processCmd.Flags().StringVar(&processRulesPath, "rules", "", "YAML rule tables overriding the built-in defaults")
	processCmd.Flags().StringVar(&processAnchor, "anchor", "", "reference date for relative deadlines (YYYY-MM-DD, default today)")
	processCmd.Flags().StringVar(&processOutDir, "out", "", "directory to export the batch into (one subdirectory per transcript)")
	processCmd.Flags().StringVar(&processLogDir, "log-dir", "", "directory for the append-only run log")
	processCmd.Flags().BoolVar(&processJSON, "json", false, "print the full result as JSON instead of a summary")
	processCmd.Flags().BoolVar(&processReview, "review", false, "open the interactive review screen after processing")
}

// fileResult pairs one transcript with its pipeline output, in input order.
type fileResult struct {
	path string
	res  pipeline.Result
}

func runProcess(cmd *cobra.Command, args []string) error {
	anchor, err := resolveAnchor(processAnchor)
	if err != nil {
		return err
	}

	roster, err := loadRoster(processTeamPath)
	if err != nil {
		return err
	}

	rs, err := loadRules(processRulesPath)
	if err != nil {
		return err
	}

	var log *logging.Logger
	if processLogDir != "" {
		log, err = logging.New(processLogDir)
		if err != nil {
			return err
		}
		defer log.Close()
		log.Printf("process start: %d transcript(s), anchor %s", len(args), anchor.Format("2006-01-02"))
	}

	p := pipeline.New(rs)
	results := make([]fileResult, len(args))

	var g errgroup.Group
	for i, path := range args {
		i, path := i, path
		g.Go(func() error {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("process: read %s: %w", path, err)
			}
			results[i] = fileResult{path: path, res: p.Process(string(data), roster, anchor)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, fr := range results {
		log.Printf("processed %s: %d tasks, %d edges, cycles=%v, %d diagnostic(s)",
			fr.path, len(fr.res.Tasks), len(fr.res.Graph.Edges), fr.res.Graph.HasCycles, len(fr.res.Diagnostics))

		if processOutDir != "" {
			dir := filepath.Join(processOutDir, batchDirName(fr.path))
			meta, err := export.Write(dir, fr.path, fr.res, anchor)
			if err != nil {
				return err
			}
			log.Printf("exported batch %s to %s", meta.BatchID, dir)
		}
	}

	if processJSON {
		return printJSON(cmd, results)
	}
	for _, fr := range results {
		fmt.Fprintln(cmd.OutOrStdout(), renderSummary(fr))
	}

	if processReview {
		for _, fr := range results {
			if err := tui.Review(fr.res.Tasks); err != nil {
				return err
			}
		}
	}
	return nil
}

// resolveAnchor parses --anchor, defaulting to the start of today in the
// local timezone. Deadlines downstream are anchored to this instant.
func resolveAnchor(s string) (time.Time, error) {
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local), nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("process: invalid --anchor %q: %w", s, err)
	}
	return t, nil
}

func loadRoster(path string) (team.Roster, error) {
	if path == "" {
		return nil, nil
	}
	return team.Load(path)
}

func loadRules(path string) (*rules.Set, error) {
	if path == "" {
		return nil, nil
	}
	return rules.Load(path)
}

// batchDirName derives a stable export subdirectory from a transcript path.
func batchDirName(path string) string {
	base := filepath.Base(path)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	if base == "" {
		base = "batch"
	}
	return base
}

func printJSON(cmd *cobra.Command, results []fileResult) error {
	out := make(map[string]pipeline.Result, len(results))
	for _, fr := range results {
		out[fr.path] = fr.res
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

var (
	summaryHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	summaryDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	priorityStyles     = map[task.Priority]lipgloss.Style{
		task.PriorityCritical: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		task.PriorityHigh:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		task.PriorityMedium:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		task.PriorityLow:      lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
)

// renderSummary formats one processed transcript for the terminal.
func renderSummary(fr fileResult) string {
	var b strings.Builder
	b.WriteString(summaryHeaderStyle.Render(fmt.Sprintf("%s — %d task(s)", fr.path, len(fr.res.Tasks))))
	b.WriteString("\n")

	for _, t := range fr.res.Tasks {
		b.WriteString(fmt.Sprintf("  [%d] %s\n", t.ID, t.Description))
		line := fmt.Sprintf("      %s", priorityStyles[t.Priority].Render(string(t.Priority)))
		if t.Deadline != nil {
			line += summaryDimStyle.Render("  due " + t.Deadline.Format("2006-01-02"))
		}
		if t.AssignedTo != "" {
			line += fmt.Sprintf("  → %s (%.2f)", t.AssignedTo, t.AssignmentConfidence)
		} else {
			line += summaryDimStyle.Render("  unassigned")
		}
		if len(t.Dependencies) > 0 {
			deps := make([]string, len(t.Dependencies))
			for i, d := range t.Dependencies {
				deps[i] = fmt.Sprintf("%d", d)
			}
			line += summaryDimStyle.Render("  after " + strings.Join(deps, ","))
		}
		b.WriteString(line + "\n")
	}

	if fr.res.Graph.HasCycles {
		b.WriteString("  dependency cycle detected; no execution order\n")
	} else if len(fr.res.Graph.ExecutionOrder) > 0 {
		order := make([]string, len(fr.res.Graph.ExecutionOrder))
		for i, id := range fr.res.Graph.ExecutionOrder {
			order[i] = fmt.Sprintf("%d", id)
		}
		b.WriteString(summaryDimStyle.Render("  order: "+strings.Join(order, " → ")) + "\n")
	}

	if len(fr.res.Diagnostics) > 0 {
		ds := append([]pipeline.Diagnostic(nil), fr.res.Diagnostics...)
		sort.Slice(ds, func(i, j int) bool { return ds[i].TaskID < ds[j].TaskID })
		for _, d := range ds {
			b.WriteString(summaryDimStyle.Render(fmt.Sprintf("  note [%s, task %d]: %s", d.Stage, d.TaskID, d.Message)) + "\n")
		}
	}
	return b.String()
}
