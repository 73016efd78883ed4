// Package tui renders a processed task batch for interactive review.
// It uses bubbletea's Elm-style loop: model, update, view. The review
// screen is display only; it never mutates the batch.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Mitesh6440/MeetMind/internal/task"
)

var (
	detailBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
	detailLabelStyle = lipgloss.NewStyle().Bold(true)
)

// taskItem implements list.Item for one task row.
type taskItem struct {
	t task.Task
}

func (i taskItem) Title() string {
	return fmt.Sprintf("[%d] %s", i.t.ID, i.t.Description)
}

func (i taskItem) Description() string {
	parts := []string{string(i.t.Priority)}
	if i.t.Deadline != nil {
		parts = append(parts, "due "+i.t.Deadline.Format("2006-01-02"))
	}
	if i.t.AssignedTo != "" {
		parts = append(parts, fmt.Sprintf("%s (%.2f)", i.t.AssignedTo, i.t.AssignmentConfidence))
	} else {
		parts = append(parts, "unassigned")
	}
	return strings.Join(parts, " · ")
}

func (i taskItem) FilterValue() string { return i.t.Description }

// Model is the review screen state.
type Model struct {
	tasks []task.Task
	menu  list.Model
	width int
}

// NewModel builds a review screen over a finished batch.
func NewModel(tasks []task.Task) Model {
	items := make([]list.Item, len(tasks))
	for i, t := range tasks {
		items[i] = taskItem{t: t}
	}
	menu := list.New(items, list.NewDefaultDelegate(), 0, 0)
	menu.Title = fmt.Sprintf("Review · %d task(s)", len(tasks))
	menu.SetShowStatusBar(false)
	menu.SetFilteringEnabled(false)
	return Model{tasks: tasks, menu: menu}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.menu.SetSize(msg.Width, msg.Height-detailHeight(m.selected())-1)
	}
	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	detail := renderDetail(m.selected())
	if m.width > 4 {
		detail = detailBoxStyle.Width(m.width - 2).Render(detail)
	} else {
		detail = detailBoxStyle.Render(detail)
	}
	return m.menu.View() + "\n" + detail
}

// selected returns the task under the cursor, or nil for an empty batch.
func (m Model) selected() *task.Task {
	it, ok := m.menu.SelectedItem().(taskItem)
	if !ok {
		return nil
	}
	t := it.t
	return &t
}

func detailHeight(t *task.Task) int {
	if t == nil {
		return 3
	}
	return 7
}

func renderDetail(t *task.Task) string {
	if t == nil {
		return "no tasks in this batch"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", detailLabelStyle.Render("task:"), t.Description)
	fmt.Fprintf(&b, "%s %s", detailLabelStyle.Render("reasoning:"), valueOr(t.AssignmentReasoning, "—"))
	fmt.Fprintf(&b, "\n%s %s", detailLabelStyle.Render("skills:"), valueOr(strings.Join(t.RequiredSkills, ", "), "—"))
	deps := "—"
	if len(t.Dependencies) > 0 {
		parts := make([]string, len(t.Dependencies))
		for i, d := range t.Dependencies {
			parts[i] = fmt.Sprintf("%d", d)
		}
		deps = strings.Join(parts, ", ")
	}
	fmt.Fprintf(&b, "\n%s %s", detailLabelStyle.Render("depends on:"), deps)
	return b.String()
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// Review runs the interactive screen until the user quits.
func Review(tasks []task.Task) error {
	p := tea.NewProgram(NewModel(tasks), tea.WithAltScreen())
	_, err := p.Run()
	if err != nil {
		return fmt.Errorf("tui: review: %w", err)
	}
	return nil
}
