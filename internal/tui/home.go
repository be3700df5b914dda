package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/maya/internal/stats"
	"github.com/sadopc/maya/internal/store"
)

type homeModel struct {
	entries  *store.EntryStore
	settings *store.SettingsStore
	width    int
	height   int

	progress stats.Progress
	hourly   []stats.HourPoint
	recent   []store.WaterEntry

	bar progress.Model
}

func newHomeModel(entries *store.EntryStore, settings *store.SettingsStore) homeModel {
	bar := progress.New(
		progress.WithScaledGradient(string(colorSecondary), string(colorPrimary)),
		progress.WithoutPercentage(),
	)
	return homeModel{
		entries:  entries,
		settings: settings,
		bar:      bar,
	}
}

func (h homeModel) Init() tea.Cmd {
	return h.loadData()
}

func (h *homeModel) setSize(w, hgt int) {
	h.width = w
	h.height = hgt
	h.bar.Width = min(w-12, 60)
}

type homeDataMsg struct {
	progress stats.Progress
	hourly   []stats.HourPoint
	recent   []store.WaterEntry
}

func (h homeModel) loadData() tea.Cmd {
	return func() tea.Msg {
		now := time.Now()
		entries := h.entries.All()
		settings := h.settings.Current()
		return homeDataMsg{
			progress: stats.DailyProgress(entries, settings, now),
			hourly:   stats.Hourly(entries, now),
			recent:   stats.Recent(entries, 5),
		}
	}
}

func (h homeModel) update(msg tea.Msg) (homeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case homeDataMsg:
		h.progress = msg.progress
		h.hourly = msg.hourly
		h.recent = msg.recent
		return h, nil

	case tickMsg:
		return h, h.loadData()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Log), key.Matches(msg, keys.Enter):
			// Logging lives on the Log view; bounce there.
			return h, func() tea.Msg { return switchViewMsg{view: viewLog} }
		}
	}
	return h, nil
}

func (h homeModel) view() string {
	if h.width < 20 {
		return "Terminal too small"
	}

	contentWidth := h.width - 4

	goalPanel := h.renderGoalPanel(contentWidth)
	chartPanel := h.renderHourlyPanel(contentWidth)
	recentPanel := h.renderRecentPanel(contentWidth)

	return lipgloss.JoinVertical(lipgloss.Left, goalPanel, chartPanel, recentPanel)
}

func (h homeModel) renderGoalPanel(w int) string {
	goal := h.settings.Current().DailyGoalMl

	totalLine := fmt.Sprintf("%s / %s", formatMl(h.progress.TotalTodayMl), formatMl(goal))
	var display string
	if h.progress.PercentOfGoal >= 100 {
		display = goalMetStyle.Width(w - 6).Render(totalLine)
	} else {
		display = totalStyle.Width(w - 6).Render(totalLine)
	}

	barView := h.bar.ViewAs(float64(h.progress.PercentOfGoal) / 100)

	var statusLine string
	if h.progress.PercentOfGoal >= 100 {
		statusLine = successStyle.Render(fmt.Sprintf("Goal met! %d%%", h.progress.PercentOfGoal))
	} else {
		statusLine = mutedStyle.Render(fmt.Sprintf("%d%%  ·  %s to go", h.progress.PercentOfGoal, formatMl(h.progress.RemainingMl)))
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render("Today"),
		"",
		display,
		barView,
		statusLine,
	)
	if h.progress.PercentOfGoal >= 100 {
		return activePanelStyle.Width(w).Render(content)
	}
	return panelStyle.Width(w).Render(content)
}

func (h homeModel) renderHourlyPanel(w int) string {
	title := titleStyle.Render("Intake by Hour")

	total := 0
	for _, p := range h.hourly {
		total += p.AmountMl
	}
	if total == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("Nothing logged yet today"),
		)
		return panelStyle.Width(w).Render(content)
	}

	chartWidth := w - 6
	if chartWidth < 20 {
		chartWidth = 20
	}
	chart := barchart.New(chartWidth, 8)

	barStyle := lipgloss.NewStyle().Foreground(colorPrimary)
	emptyStyle := lipgloss.NewStyle().Foreground(colorSubtle)

	var bars []barchart.BarData
	for _, p := range h.hourly {
		style := barStyle
		if p.AmountMl == 0 {
			style = emptyStyle
		}
		bars = append(bars, barchart.BarData{
			Label: fmt.Sprintf("%02d", p.Hour),
			Values: []barchart.BarValue{
				{Name: "ml", Value: float64(p.AmountMl), Style: style},
			},
		})
	}
	chart.PushAll(bars)
	chart.Draw()

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, "", chart.View()),
	)
}

func (h homeModel) renderRecentPanel(w int) string {
	title := titleStyle.Render("Recent")
	if len(h.recent) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("No entries yet. Press a to add water."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	for _, e := range h.recent {
		when := e.Time().Local().Format("Mon 15:04")
		rows = append(rows, fmt.Sprintf("  %s %s  %s",
			accentStyle.Render("●"),
			mutedStyle.Render(when),
			highlightStyle.Render(formatMl(e.AmountMl)),
		))
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
