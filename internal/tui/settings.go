package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mbarlow/ironlog/internal/store"
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	unit       string
	formActive bool
	form       *huh.Form

	// Form value as pointer (survives value copies)
	formUnit *string
}

func newSettingsModel(s *store.Store) settingsModel {
	unit := ""
	return settingsModel{
		store:    s,
		formUnit: &unit,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	unit string
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return settingsDataMsg{unit: s.store.WeightUnit()}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.unit = msg.unit
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Edit):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.formUnit = s.store.WeightUnit()

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Weight unit").
				Description("Display label only. Stored weights are never converted.").
				Options(
					huh.NewOption("Kilograms (kg)", store.WeightUnitKg),
					huh.NewOption("Pounds (lb)", store.WeightUnitLb),
				).Value(s.formUnit),
		),
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
		if err := s.store.SetSetting(store.SettingWeightUnit, *s.formUnit); err != nil {
			return s, errorStatus(err)
		}
		return s, s.refresh()
	}

	return s, cmd
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	title := titleStyle.Render("Settings")

	label := lipgloss.NewStyle().Width(24).Render("Weight unit")
	value := highlightStyle.Render(unitLabel(s.unit))

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	rows = append(rows, fmt.Sprintf("  %s %s", label, value))
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  The unit is a display label. Changing it never converts"))
	rows = append(rows, mutedStyle.Render("  weights that are already logged."))
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("Press enter to edit"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func unitLabel(unit string) string {
	switch unit {
	case store.WeightUnitLb:
		return "pounds (lb)"
	default:
		return "kilograms (kg)"
	}
}
