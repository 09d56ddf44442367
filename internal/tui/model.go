package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"introscore/internal/domain"
)

// ScorerPort is the TUI-facing subset of the scoring engine.
type ScorerPort interface {
	Score(ctx context.Context, transcript string) (*domain.ScoreReport, error)
	RubricInfo() domain.RubricInfo
}

// Model is the Bubble Tea model for the interactive scoring console.
type Model struct {
	scorer   ScorerPort
	input    textinput.Model
	viewport viewport.Model
	report   *domain.ScoreReport
	status   string
	cursor   int
	ready    bool
}

// New creates a new TUI model instance.
func New(scorer ScorerPort) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Paste a self-introduction transcript and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	info := scorer.RubricInfo()
	status := fmt.Sprintf("Rubric loaded: %d criteria, total weight %.1f. Type to score.",
		info.CriteriaCount, info.TotalWeight)
	return Model{scorer: scorer, input: ti, viewport: vp, status: status}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + qh + 1 // header + status + input frame + spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderReport())
		return m, nil
	case tea.KeyMsg:
		// Global quits
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			transcript := strings.TrimSpace(m.input.Value())
			if transcript != "" {
				report, err := m.scorer.Score(context.Background(), transcript)
				if err != nil {
					m.status = "Error: " + err.Error()
					m.report = nil
				} else {
					m.status = fmt.Sprintf("Scored %d words: %.1f (%s)",
						report.WordCount, report.OverallScore, report.ScoreCategory)
					m.report = report
					m.cursor = 0
				}
				m.viewport.SetContent(m.renderReport())
				return m, nil
			}
		case "down":
			if m.report != nil && len(m.report.Criteria) > 0 {
				m.cursor = (m.cursor + 1) % len(m.report.Criteria)
				m.viewport.SetContent(m.renderReport())
				return m, nil
			}
		case "up":
			if m.report != nil && len(m.report.Criteria) > 0 {
				m.cursor = (m.cursor - 1 + len(m.report.Criteria)) % len(m.report.Criteria)
				m.viewport.SetContent(m.renderReport())
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the TUI layout and the current score report.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Intro Scorer")
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	result := resultBoxStyle.Render(m.viewport.View())
	return header + "\n" + result + "\n" + input + "\n" + status
}

func (m Model) renderReport() string {
	if m.report == nil {
		return "No report yet. Score a transcript to see per-criterion results."
	}
	var b strings.Builder
	overall := fmt.Sprintf("Overall %.1f/100 (%s)  words=%d  sentences=%d  richness=%.2f",
		m.report.OverallScore, m.report.ScoreCategory,
		m.report.TextQuality.WordCount, m.report.TextQuality.SentenceCount,
		m.report.TextQuality.VocabularyRichness)
	b.WriteString(highlightStyle.Render(overall))
	b.WriteString("\n\n")
	for i, c := range m.report.Criteria {
		line := fmt.Sprintf("%s  %.1f (weight %.1f)", c.Criterion, c.Score, c.Weight)
		if i == m.cursor {
			b.WriteString(highlightStyle.Render("▸ " + line))
			b.WriteString("\n")
			b.WriteString(fmt.Sprintf("  rule=%.1f semantic=%.1f rubric=%.1f  similarity=%.2f  match=%.0f%%  length=%s\n",
				c.Breakdown.RuleBased, c.Breakdown.Semantic, c.Breakdown.RubricDriven,
				c.SemanticSimilarity, c.MatchRate*100, c.WordCountStatus))
			b.WriteString("  " + c.Feedback + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	return b.String()
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)
