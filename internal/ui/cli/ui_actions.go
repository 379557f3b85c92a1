package cli

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func handleKeyActions(msg tea.KeyMsg, m model) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "e":
		m.showExempt = !m.showExempt
		return m, nil
	case "enter", "o":
		target, ok := selectedOffenseTarget(m)
		if !ok {
			m.sourceJumpStatus = statusStyle.Render("No offense selected.")
			return m, nil
		}
		return m, jumpToSourceCmd(target)
	}

	var cmd tea.Cmd
	m.offenseList, cmd = m.offenseList.Update(msg)
	return m, cmd
}

type sourceTarget struct {
	file string
	line int
}

func selectedOffenseTarget(m model) (sourceTarget, bool) {
	if len(m.offenses) == 0 {
		return sourceTarget{}, false
	}
	idx := m.offenseList.Index()
	if idx < 0 || idx >= len(m.offenses) {
		idx = 0
	}
	offense := m.offenses[idx]
	return sourceTarget{file: offense.File, line: offense.Line}, offense.File != ""
}

func jumpToSourceCmd(target sourceTarget) tea.Cmd {
	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	args := []string{target.file}
	if strings.Contains(editor, "vim") || strings.Contains(editor, "nvim") || strings.HasSuffix(editor, "/vi") {
		args = []string{fmt.Sprintf("+%d", target.line), target.file}
	}
	cmd := exec.Command(editor, args...)
	label := fmt.Sprintf("%s:%d", target.file, target.line)
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return sourceJumpResultMsg{target: label, err: err}
	})
}
