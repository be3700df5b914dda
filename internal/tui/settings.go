package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/maya/internal/reminder"
	"github.com/sadopc/maya/internal/store"
)

type settingsModel struct {
	settings *store.SettingsStore
	notifier *Notifier
	width    int
	height   int

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	dailyGoal     *string
	weeklyGoal    *string
	interval      *string
	notifications *bool
}

func newSettingsModel(s *store.SettingsStore, n *Notifier) settingsModel {
	dg, wg, iv := "", "", ""
	nf := false
	return settingsModel{
		settings:      s,
		notifier:      n,
		dailyGoal:     &dg,
		weeklyGoal:    &wg,
		interval:      &iv,
		notifications: &nf,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter):
			return s.showForm()
		}
	}
	return s, nil
}

func positiveNumber(v string) error {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		return fmt.Errorf("enter a positive whole number")
	}
	return nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	current := s.settings.Current()
	*s.dailyGoal = strconv.Itoa(current.DailyGoalMl)
	*s.weeklyGoal = strconv.Itoa(current.WeeklyGoalMl)
	*s.interval = strconv.Itoa(current.ReminderIntervalMin)
	*s.notifications = s.notifier.Authorization() == reminder.AuthorizationGranted

	var intervalOptions []huh.Option[string]
	for _, m := range store.ReminderIntervals {
		intervalOptions = append(intervalOptions, huh.NewOption(formatInterval(m), strconv.Itoa(m)))
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Daily goal (ml)").Value(s.dailyGoal).Validate(positiveNumber),
			huh.NewInput().Title("Weekly goal (ml)").Value(s.weeklyGoal).Validate(positiveNumber),
		).Title("Goals"),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Reminder interval").
				Options(intervalOptions...).Value(s.interval),
			huh.NewConfirm().Title("Reminders").
				Affirmative("On").Negative("Off").Value(s.notifications),
		).Title("Reminders"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		s.form = nil
		return s, s.save()
	}

	return s, cmd
}

func (s settingsModel) save() tea.Cmd {
	return func() tea.Msg {
		daily, _ := strconv.Atoi(strings.TrimSpace(*s.dailyGoal))
		weekly, _ := strconv.Atoi(strings.TrimSpace(*s.weeklyGoal))
		interval, _ := strconv.Atoi(strings.TrimSpace(*s.interval))

		next := store.Settings{
			DailyGoalMl:         daily,
			WeeklyGoalMl:        weekly,
			ReminderIntervalMin: interval,
		}
		if err := s.settings.Replace(next); err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}

		if *s.notifications {
			s.notifier.SetAuthorization(reminder.AuthorizationGranted)
		} else {
			s.notifier.SetAuthorization(reminder.AuthorizationDenied)
		}

		return settingsSavedMsg{}
	}
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	current := s.settings.Current()

	title := titleStyle.Render("Settings")
	hint := mutedStyle.Render("Press enter to edit settings")

	remindersLabel := "off"
	if s.notifier.Authorization() == reminder.AuthorizationGranted {
		remindersLabel = "on"
	}

	rows := []string{
		title,
		"",
		settingRow("Daily goal", formatMl(current.DailyGoalMl)),
		settingRow("Weekly goal", formatMl(current.WeeklyGoalMl)),
		settingRow("Reminder interval", formatInterval(current.ReminderIntervalMin)),
		settingRow("Reminders", remindersLabel),
		"",
		hint,
	}

	if s.settings.Degraded() {
		rows = append(rows, "", warningStyle.Render("Storage unavailable. Changes won't persist."))
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func settingRow(label, value string) string {
	l := lipgloss.NewStyle().Width(20).Render(label)
	return fmt.Sprintf("  %s %s", l, highlightStyle.Render(value))
}

func formatInterval(minutes int) string {
	if minutes >= 60 && minutes%60 == 0 {
		h := minutes / 60
		if h == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", h)
	}
	if minutes > 60 {
		return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
	}
	return fmt.Sprintf("%d min", minutes)
}
