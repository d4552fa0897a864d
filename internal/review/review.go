// Package review is the interactive terminal UI for correcting cluster
// assignments before they are saved.
package review

import (
	"fmt"
	"os"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gazetteer/internal/core"
	"gazetteer/internal/match"
)

// SaveFunc persists a reviewed assignment together with its recomputed stats.
type SaveFunc func(assignment *core.ClusterAssignment, stats core.MatchStats) error

// MovePOI moves the POI at index within the fromKey bucket into the toKey
// bucket, appending it at the end. Bucket keys are cluster ids, or
// core.ClusterUnassigned for the unassigned bucket. A manual move clears
// the matched place record and marks the entry as manually placed; the
// original suggestion is kept for display.
func MovePOI(assignment *core.ClusterAssignment, fromKey string, index int, toKey string) error {
	if fromKey == toKey {
		return nil
	}
	if toKey != core.ClusterUnassigned {
		if _, ok := assignment.Clusters[toKey]; !ok {
			return fmt.Errorf("unknown cluster %q", toKey)
		}
	}

	from := bucket(assignment, fromKey)
	if index < 0 || index >= len(from) {
		return fmt.Errorf("index %d out of range for bucket %q", index, fromKey)
	}

	entry := from[index]
	entry.AutoAssigned = false
	entry.PlaceRecordID = ""

	setBucket(assignment, fromKey, append(from[:index:index], from[index+1:]...))
	setBucket(assignment, toKey, append(bucket(assignment, toKey), entry))
	return nil
}

func bucket(assignment *core.ClusterAssignment, key string) []core.AssignedPOI {
	if key == core.ClusterUnassigned {
		return assignment.Unassigned
	}
	return assignment.Clusters[key]
}

func setBucket(assignment *core.ClusterAssignment, key string, entries []core.AssignedPOI) {
	if key == core.ClusterUnassigned {
		assignment.Unassigned = entries
	} else {
		assignment.Clusters[key] = entries
	}
}

// bucketKeys returns the review order: unassigned first, then cluster ids
// sorted for a stable layout.
func bucketKeys(assignment *core.ClusterAssignment) []string {
	keys := []string{core.ClusterUnassigned}
	clusterIDs := make([]string, 0, len(assignment.Clusters))
	for id := range assignment.Clusters {
		clusterIDs = append(clusterIDs, id)
	}
	sort.Strings(clusterIDs)
	return append(keys, clusterIDs...)
}

// model is the Bubble Tea state for one review session.
type model struct {
	guideID    string
	assignment *core.ClusterAssignment
	save       SaveFunc

	keys      []string // Bucket order, unassigned first
	bucketIdx int      // Which bucket the cursor is in
	poiIdx    int      // Which POI within that bucket
	width     int
	height    int
	status    string
	quitting  bool
}

func initialModel(guideID string, assignment *core.ClusterAssignment, save SaveFunc) model {
	return model{
		guideID:    guideID,
		assignment: assignment,
		save:       save,
		keys:       bucketKeys(assignment),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) currentBucket() []core.AssignedPOI {
	return bucket(m.assignment, m.keys[m.bucketIdx])
}

// clampPOI keeps the cursor inside the current bucket after a move.
func (m *model) clampPOI() {
	entries := m.currentBucket()
	if m.poiIdx >= len(entries) {
		m.poiIdx = len(entries) - 1
	}
	if m.poiIdx < 0 {
		m.poiIdx = 0
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit

		case "up", "k":
			if m.poiIdx > 0 {
				m.poiIdx--
			} else if m.bucketIdx > 0 {
				m.bucketIdx--
				m.poiIdx = len(m.currentBucket()) - 1
				m.clampPOI()
			}

		case "down", "j":
			if m.poiIdx < len(m.currentBucket())-1 {
				m.poiIdx++
			} else if m.bucketIdx < len(m.keys)-1 {
				m.bucketIdx++
				m.poiIdx = 0
			}

		case "left", "h":
			if m.bucketIdx > 0 && len(m.currentBucket()) > 0 {
				from := m.keys[m.bucketIdx]
				to := m.keys[m.bucketIdx-1]
				if err := MovePOI(m.assignment, from, m.poiIdx, to); err == nil {
					m.status = fmt.Sprintf("Moved to %s", m.bucketLabel(m.bucketIdx-1))
					m.clampPOI()
				}
			}

		case "right", "l":
			if m.bucketIdx < len(m.keys)-1 && len(m.currentBucket()) > 0 {
				from := m.keys[m.bucketIdx]
				to := m.keys[m.bucketIdx+1]
				if err := MovePOI(m.assignment, from, m.poiIdx, to); err == nil {
					m.status = fmt.Sprintf("Moved to %s", m.bucketLabel(m.bucketIdx+1))
					m.clampPOI()
				}
			}

		case "s":
			stats := match.ComputeStats(m.assignment)
			if err := m.save(m.assignment, stats); err != nil {
				m.status = fmt.Sprintf("Save failed: %v", err)
			} else {
				m.status = fmt.Sprintf("Saved (%d assigned, %d unassigned)", stats.Assigned, stats.Unassigned)
			}
		}
	}

	return m, nil
}

func (m model) bucketLabel(idx int) string {
	key := m.keys[idx]
	if key == core.ClusterUnassigned {
		return "Unassigned"
	}
	if name, ok := m.assignment.ClusterNames[key]; ok && name != "" {
		return name
	}
	return key
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	bucketStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	dimStyle      = lipgloss.NewStyle().Faint(true)
)

func (m model) View() string {
	if m.quitting {
		return "Review closed.\n"
	}

	out := titleStyle.Render(fmt.Sprintf("Reviewing guide %s", m.guideID)) + "\n\n"

	for bi, key := range m.keys {
		entries := bucket(m.assignment, key)
		out += bucketStyle.Render(fmt.Sprintf("%s (%d)", m.bucketLabel(bi), len(entries))) + "\n"
		if len(entries) == 0 {
			out += dimStyle.Render("  (empty)") + "\n"
		}
		for pi, entry := range entries {
			line := fmt.Sprintf("  %s %s", entry.POI.Name, m.annotate(entry))
			if bi == m.bucketIdx && pi == m.poiIdx {
				line = selectedStyle.Render("> " + line[2:])
			}
			out += line + "\n"
		}
		out += "\n"
	}

	if m.status != "" {
		out += m.status + "\n"
	}
	out += dimStyle.Render("[↑/↓] Select | [←/→] Move | [s] Save | [q] Quit")
	return out
}

// annotate describes how an entry got where it is.
func (m model) annotate(entry core.AssignedPOI) string {
	switch {
	case entry.AutoAssigned && entry.Suggestion != nil:
		return dimStyle.Render(fmt.Sprintf("(auto %.2f %s)", entry.Suggestion.Score, entry.Suggestion.Confidence))
	case !entry.AutoAssigned && entry.PlaceRecordID == "" && entry.Suggestion != nil:
		return dimStyle.Render(fmt.Sprintf("(suggested: %s %.2f)", entry.Suggestion.Candidate.Name, entry.Suggestion.Score))
	default:
		return ""
	}
}

// StartReview runs the review TUI over an assignment. The save callback is
// invoked each time the reviewer saves.
func StartReview(guideID string, assignment *core.ClusterAssignment, save SaveFunc) {
	p := tea.NewProgram(initialModel(guideID, assignment, save), tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running review TUI: %v\n", err)
		os.Exit(1)
	}
}
