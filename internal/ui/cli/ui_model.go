package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"undoc/internal/engine/doc"
)

var (
	titleStyle = lipgloss.NewStyle().
			MarginLeft(2).
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true).
			Render

	docStyle = lipgloss.NewStyle().Margin(1, 2)

	offenseStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F87171")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Italic(true)
)

type item struct {
	title, desc string
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title + i.desc }

type model struct {
	offenseList     list.Model
	showExempt      bool
	offenses        []doc.Offense
	exemptions      map[doc.Exemption]int
	lastUpdate      time.Time
	fileCount       int
	definitionCount int

	sourceJumpStatus string
}

type updateMsg struct {
	offenses        []doc.Offense
	exemptions      map[doc.Exemption]int
	fileCount       int
	definitionCount int
}

type sourceJumpResultMsg struct {
	target string
	err    error
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return handleKeyActions(msg, m)
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		width := msg.Width - h
		height := msg.Height - v - 8
		if height < 5 {
			height = 5
		}
		m.offenseList.SetSize(width, height)
	case updateMsg:
		m.offenses = msg.offenses
		m.exemptions = msg.exemptions
		m.fileCount = msg.fileCount
		m.definitionCount = msg.definitionCount
		m.lastUpdate = time.Now()

		items := make([]list.Item, 0, len(m.offenses))
		for _, o := range m.offenses {
			items = append(items, item{
				title: fmt.Sprintf("%s %s", o.Kind, o.Name),
				desc:  fmt.Sprintf("%s:%d %s", o.File, o.Line, o.Message),
			})
		}
		m.offenseList.SetItems(items)
	case sourceJumpResultMsg:
		if msg.err != nil {
			m.sourceJumpStatus = statusStyle.Render(fmt.Sprintf("Source jump failed: %v", msg.err))
		} else {
			m.sourceJumpStatus = statusStyle.Render(fmt.Sprintf("Opened source: %s", msg.target))
		}
	}

	var cmd tea.Cmd
	m.offenseList, cmd = m.offenseList.Update(msg)
	return m, cmd
}

func (m model) View() string {
	status := statusStyle.Render(fmt.Sprintf("Last update: %v | %d files | %d definitions",
		m.lastUpdate.Format("15:04:05"), m.fileCount, m.definitionCount))

	var summary string
	if len(m.offenses) == 0 {
		summary = successStyle.Render("All Documented")
	} else {
		summary = offenseStyle.Render(fmt.Sprintf("%d missing doc comments", len(m.offenses)))
	}

	header := fmt.Sprintf("%s\n%s | %s\n", titleStyle("Documentation Coverage Monitor"), status, summary)
	help := statusStyle.Render("Keys: / filter | enter open source | e exemptions | q quit")

	body := m.offenseList.View()
	if m.showExempt {
		body += "\n\n" + renderExemptionOverlay(m.exemptions)
	}
	if m.sourceJumpStatus != "" {
		body += "\n\n" + m.sourceJumpStatus
	}

	return docStyle.Render(header + "\n" + help + "\n\n" + body)
}

func renderExemptionOverlay(exemptions map[doc.Exemption]int) string {
	reasons := []doc.Exemption{
		doc.ExemptDocumented,
		doc.ExemptNamespace,
		doc.ExemptBodiless,
		doc.ExemptPrivate,
		doc.ExemptSuppressed,
		doc.ExemptOuterSuppressed,
	}

	lines := []string{"Exemptions"}
	for _, reason := range reasons {
		if count := exemptions[reason]; count > 0 {
			lines = append(lines, fmt.Sprintf("  %s: %d", reason, count))
		}
	}
	if len(lines) == 1 {
		return statusStyle.Render("No exemptions recorded yet.")
	}
	return strings.Join(lines, "\n")
}

func initialModel() model {
	offenseList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	offenseList.Title = "Missing Documentation"
	offenseList.SetShowStatusBar(false)
	offenseList.SetFilteringEnabled(true)

	return model{
		offenseList: offenseList,
		lastUpdate:  time.Now(),
	}
}
