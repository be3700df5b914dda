package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/maya/internal/stats"
	"github.com/sadopc/maya/internal/store"
)

// bucketCounts maps each granularity to how much history the chart shows.
var bucketCounts = map[stats.Granularity]int{
	stats.Daily:   7,
	stats.Weekly:  4,
	stats.Monthly: 6,
}

type historyModel struct {
	entries  *store.EntryStore
	settings *store.SettingsStore
	width    int
	height   int

	granularity stats.Granularity
	buckets     []stats.Bucket
	rolling     stats.Summary
	recent      []store.WaterEntry

	chart barchart.Model
}

func newHistoryModel(entries *store.EntryStore, settings *store.SettingsStore) historyModel {
	return historyModel{
		entries:     entries,
		settings:    settings,
		granularity: stats.Daily,
		chart:       barchart.New(60, 10),
	}
}

func (m *historyModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type historyDataMsg struct {
	buckets []stats.Bucket
	rolling stats.Summary
	recent  []store.WaterEntry
}

func (m historyModel) refresh() tea.Cmd {
	return func() tea.Msg {
		now := time.Now()
		entries := m.entries.All()
		settings := m.settings.Current()
		return historyDataMsg{
			buckets: stats.Series(entries, settings, now, m.granularity, bucketCounts[m.granularity]),
			rolling: stats.Rolling(entries, settings, now, 30),
			recent:  stats.Recent(entries, 10),
		}
	}
}

func (m historyModel) update(msg tea.Msg) (historyModel, tea.Cmd) {
	switch msg := msg.(type) {
	case historyDataMsg:
		m.buckets = msg.buckets
		m.rolling = msg.rolling
		m.recent = msg.recent
		m.buildChart()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			if m.granularity > stats.Daily {
				m.granularity--
			}
			return m, m.refresh()
		case key.Matches(msg, keys.Right):
			if m.granularity < stats.Monthly {
				m.granularity++
			}
			return m, m.refresh()
		}
	}
	return m, nil
}

func (m *historyModel) buildChart() {
	chartWidth := m.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if m.height > 30 {
		chartHeight = 14
	}

	m.chart = barchart.New(chartWidth, chartHeight)

	metStyle := lipgloss.NewStyle().Foreground(colorSuccess)
	underStyle := lipgloss.NewStyle().Foreground(colorPrimary)
	emptyStyle := lipgloss.NewStyle().Foreground(colorSubtle)

	var bars []barchart.BarData
	for _, b := range m.buckets {
		style := underStyle
		if b.ConsumedMl == 0 {
			style = emptyStyle
		} else if b.GoalMl > 0 && b.ConsumedMl >= b.GoalMl {
			style = metStyle
		}
		bars = append(bars, barchart.BarData{
			Label: b.Label,
			Values: []barchart.BarValue{
				{Name: "ml", Value: float64(b.ConsumedMl), Style: style},
			},
		})
	}

	m.chart.PushAll(bars)
	m.chart.Draw()
}

func (m historyModel) view() string {
	w := m.width - 4

	// Granularity tabs
	var tabs []string
	for g := stats.Daily; g <= stats.Monthly; g++ {
		if g == m.granularity {
			tabs = append(tabs, activeTabStyle.Render(g.String()))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(g.String()))
		}
	}
	modeTabs := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("History"), "  ", modeTabs,
	)

	chartView := m.chart.View()
	rollingView := m.renderRolling()
	recentView := m.renderRecent(w)
	nav := mutedStyle.Render("  ←/→: granularity")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", chartView, "", rollingView, "", recentView, "", nav,
		),
	)
}

func (m historyModel) renderRolling() string {
	title := titleStyle.Render("Last 30 Days")
	row := fmt.Sprintf("  %s total   %s avg/day   %s days met goal   %s success",
		highlightStyle.Render(formatMl(m.rolling.TotalMl)),
		highlightStyle.Render(formatMl(m.rolling.AvgMlPerDay)),
		highlightStyle.Render(fmt.Sprintf("%d", m.rolling.DaysMetGoal)),
		highlightStyle.Render(fmt.Sprintf("%d%%", m.rolling.SuccessRatePercent)),
	)
	return lipgloss.JoinVertical(lipgloss.Left, title, row)
}

func (m historyModel) renderRecent(w int) string {
	title := titleStyle.Render("Recent Entries")
	if len(m.recent) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("  No entries yet"),
		)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 40))))
	for _, e := range m.recent {
		when := e.Time().Local().Format("Jan 02 15:04")
		rows = append(rows, fmt.Sprintf("  %s  %8s", mutedStyle.Render(when), highlightStyle.Render(formatMl(e.AmountMl))))
	}
	return strings.Join(rows, "\n")
}
