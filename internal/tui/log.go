package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/maya/internal/store"
)

// quickAmounts are the one-keystroke serving sizes, in milliliters.
var quickAmounts = []int{200, 300, 500, 750, 1000}

var quickLabels = []string{"Glass", "Cup", "Bottle", "Large bottle", "Liter"}

type logModel struct {
	entries *store.EntryStore
	width   int
	height  int

	cursor     int
	formActive bool
	form       *huh.Form

	// Form value as pointer (survives value copies)
	customAmount *string
}

func newLogModel(entries *store.EntryStore) logModel {
	ca := ""
	return logModel{
		entries:      entries,
		customAmount: &ca,
	}
}

func (l *logModel) setSize(w, h int) {
	l.width = w
	l.height = h
}

func (l logModel) update(msg tea.Msg) (logModel, tea.Cmd) {
	if l.formActive && l.form != nil {
		return l.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if l.cursor > 0 {
				l.cursor--
			}
		case key.Matches(msg, keys.Down):
			if l.cursor < len(quickAmounts) {
				l.cursor++
			}
		case key.Matches(msg, keys.Enter):
			if l.cursor == len(quickAmounts) {
				return l.showForm()
			}
			return l, l.logAmount(quickAmounts[l.cursor])
		case key.Matches(msg, keys.Custom):
			return l.showForm()
		}
	}
	return l, nil
}

func (l logModel) logAmount(amountMl int) tea.Cmd {
	return func() tea.Msg {
		entry, err := l.entries.Append(amountMl)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return entryLoggedMsg{entry: entry}
	}
}

func (l logModel) showForm() (logModel, tea.Cmd) {
	*l.customAmount = ""

	l.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Amount (ml)").
				Placeholder("e.g. 330").
				Value(l.customAmount).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n <= 0 {
						return fmt.Errorf("enter a positive whole number")
					}
					return nil
				}),
		).Title("Custom Amount"),
	).WithShowHelp(true).WithShowErrors(true)

	l.formActive = true
	return l, l.form.Init()
}

func (l logModel) updateForm(msg tea.Msg) (logModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			l.formActive = false
			l.form = nil
			return l, nil
		}
	}

	form, cmd := l.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		l.form = f
	}

	if l.form.State == huh.StateCompleted {
		l.formActive = false
		amount, err := strconv.Atoi(strings.TrimSpace(*l.customAmount))
		l.form = nil
		if err != nil {
			return l, func() tea.Msg {
				return statusMsg{text: "Invalid amount", isError: true}
			}
		}
		return l, l.logAmount(amount)
	}

	return l, cmd
}

func (l logModel) view() string {
	w := l.width - 4

	if l.formActive && l.form != nil {
		title := titleStyle.Render("Log Water")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", l.form.View()),
		)
	}

	title := titleStyle.Render("Log Water")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, amount := range quickAmounts {
		cursor := "  "
		style := normalItemStyle
		if i == l.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		label := fmt.Sprintf("%s%-14s %s", cursor, quickLabels[i], formatMl(amount))
		rows = append(rows, style.Render(label))
	}

	cursor := "  "
	style := normalItemStyle
	if l.cursor == len(quickAmounts) {
		cursor = "> "
		style = selectedItemStyle
	}
	rows = append(rows, style.Render(cursor+"Custom amount…"))

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: log  c: custom  ↑/↓: move"))

	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
