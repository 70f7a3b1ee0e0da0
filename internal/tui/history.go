package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mbarlow/ironlog/internal/store"
)

// chartBars caps how many recent workouts the volume chart shows.
const chartBars = 10

type historyModel struct {
	store  *store.Store
	width  int
	height int

	sessions []store.Session
	cursor   int
	unit     string

	viewingDetail bool

	chart barchart.Model

	formActive  bool
	form        *huh.Form
	formConfirm *bool
}

func newHistoryModel(s *store.Store) historyModel {
	confirm := false
	return historyModel{
		store:       s,
		chart:       barchart.New(60, 8),
		formConfirm: &confirm,
	}
}

func (h *historyModel) setSize(w, height int) {
	h.width = w
	h.height = height
}

type historyDataMsg struct {
	sessions []store.Session
	unit     string
}

func (h historyModel) refresh() tea.Cmd {
	return func() tea.Msg {
		sessions, _ := h.store.ListSessions()
		return historyDataMsg{sessions: sessions, unit: h.store.WeightUnit()}
	}
}

func (h historyModel) update(msg tea.Msg) (historyModel, tea.Cmd) {
	if h.formActive && h.form != nil {
		return h.updateForm(msg)
	}

	switch msg := msg.(type) {
	case historyDataMsg:
		h.sessions = msg.sessions
		h.unit = msg.unit
		if h.cursor >= len(h.sessions) {
			h.cursor = max(0, len(h.sessions)-1)
		}
		if len(h.sessions) == 0 {
			h.viewingDetail = false
		}
		h.buildChart()
		return h, nil

	case tea.KeyMsg:
		if h.viewingDetail {
			return h.updateDetail(msg)
		}
		return h.updateList(msg)
	}
	return h, nil
}

func (h historyModel) updateList(msg tea.KeyMsg) (historyModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if h.cursor > 0 {
			h.cursor--
		}
	case key.Matches(msg, keys.Down):
		if h.cursor < len(h.sessions)-1 {
			h.cursor++
		}
	case key.Matches(msg, keys.Enter):
		if len(h.sessions) > 0 {
			h.viewingDetail = true
		}
	case key.Matches(msg, keys.Delete):
		if len(h.sessions) > 0 {
			return h.showDeleteForm()
		}
	}
	return h, nil
}

func (h historyModel) updateDetail(msg tea.KeyMsg) (historyModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		h.viewingDetail = false
	case key.Matches(msg, keys.Delete):
		return h.showDeleteForm()
	}
	return h, nil
}

func (h historyModel) showDeleteForm() (historyModel, tea.Cmd) {
	ws := h.sessions[h.cursor]
	*h.formConfirm = false

	h.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Delete this workout?").
				Description(fmt.Sprintf("%s and its %d sets will be removed.", sessionLabel(ws), len(ws.Sets))).
				Affirmative("Delete").
				Negative("Keep").
				Value(h.formConfirm),
		),
	).WithShowHelp(true).WithShowErrors(true)

	h.formActive = true
	return h, h.form.Init()
}

func (h historyModel) updateForm(msg tea.Msg) (historyModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			h.formActive = false
			h.form = nil
			return h, nil
		}
	}

	form, cmd := h.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		h.form = f
	}

	if h.form.State == huh.StateCompleted {
		h.formActive = false
		if !*h.formConfirm || h.cursor >= len(h.sessions) {
			return h, nil
		}
		if err := h.store.DeleteSession(h.sessions[h.cursor].ID); err != nil {
			return h, errorStatus(err)
		}
		h.viewingDetail = false
		return h, tea.Batch(
			h.refresh(),
			func() tea.Msg { return statusMsg{text: "Workout deleted"} },
		)
	}

	return h, cmd
}

func (h *historyModel) buildChart() {
	chartWidth := h.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 8
	if h.height > 30 {
		chartHeight = 12
	}

	h.chart = barchart.New(chartWidth, chartHeight)

	// Most recent workouts, drawn oldest to newest.
	recent := h.sessions
	if len(recent) > chartBars {
		recent = recent[:chartBars]
	}

	var bars []barchart.BarData
	for i := len(recent) - 1; i >= 0; i-- {
		ws := recent[i]
		style := lipgloss.NewStyle().Foreground(colorPrimary)
		if ws.IsActive() {
			style = lipgloss.NewStyle().Foreground(colorSuccess)
		}
		bars = append(bars, barchart.BarData{
			Label: ws.StartedAt.Local().Format("01/02"),
			Values: []barchart.BarValue{
				{Name: sessionLabel(ws), Value: ws.TotalVolume(), Style: style},
			},
		})
	}

	if len(bars) == 0 {
		return
	}
	h.chart.PushAll(bars)
	h.chart.Draw()
}

func (h historyModel) view() string {
	cw := h.width - 4

	if h.formActive && h.form != nil {
		content := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Delete Workout"), "", h.form.View())
		return panelStyle.Width(cw).Render(content)
	}

	if h.viewingDetail && h.cursor < len(h.sessions) {
		return h.renderDetail(cw)
	}
	return h.renderList(cw)
}

func (h historyModel) renderList(cw int) string {
	title := titleStyle.Render("History")

	if len(h.sessions) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No workouts yet. Press 1 and start one."),
		)
		return panelStyle.Width(cw).Render(content)
	}

	chartLabel := mutedStyle.Render(fmt.Sprintf("volume per workout (%s)", h.unit))

	chartHeight := 8
	if h.height > 30 {
		chartHeight = 12
	}

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-8s %-22s %-11s %5s %12s", "Date", "Name", "Duration", "Sets", "Volume")))

	maxRows := max(4, h.height-chartHeight-12)
	start, end := windowBounds(len(h.sessions), h.cursor, maxRows)
	for i := start; i < end; i++ {
		ws := h.sessions[i]
		cursor := "  "
		style := normalItemStyle
		if i == h.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		name := ws.Name
		if name == "" {
			name = "(unnamed)"
		}
		dur := fmt.Sprintf("%-11s", ws.FormattedDuration())
		if ws.IsActive() {
			dur = warningStyle.Render(fmt.Sprintf("%-11s", "active"))
		}
		row := style.Render(fmt.Sprintf("%s%-8s %-22s ", cursor, ws.StartedAt.Local().Format("Jan 02"), name)) +
			dur +
			fmt.Sprintf(" %5d %12s", len(ws.Sets), store.FormatWeight(ws.TotalVolume()))
		rows = append(rows, row)
	}
	if start > 0 || end < len(h.sessions) {
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("  … %d of %d", end-start, len(h.sessions))))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: details  d: delete  ↑/↓: move"))

	return panelStyle.Width(cw).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, "", chartLabel, h.chart.View(), "", strings.Join(rows, "\n")),
	)
}

func (h historyModel) renderDetail(cw int) string {
	ws := h.sessions[h.cursor]

	name := ws.Name
	if name == "" {
		name = "(unnamed)"
	}
	title := titleStyle.Render(name) + "  " + mutedStyle.Render(ws.StartedAt.Local().Format("Mon Jan 2 2006 15:04"))

	status := successStyle.Render("finished in " + ws.FormattedDuration())
	if ws.IsActive() {
		status = warningStyle.Render("in progress")
	}
	summary := mutedStyle.Render(fmt.Sprintf("%d sets in %d exercises  ", len(ws.Sets), len(ws.UniqueExercises()))) +
		accentStyle.Render(fmt.Sprintf("%s %s total", store.FormatWeight(ws.TotalVolume()), h.unit))

	var rows []string
	rows = append(rows, title)
	rows = append(rows, status+"  "+summary)

	for _, g := range ws.GroupedSets() {
		rows = append(rows, "")
		rows = append(rows, fmt.Sprintf("%s %s  %s",
			categoryDot(g.Category),
			titleStyle.Render(g.ExerciseName),
			mutedStyle.Render(string(g.Category)),
		))
		for _, st := range g.Sets {
			rows = append(rows, fmt.Sprintf("   #%d  %s %s × %d   %s",
				st.SetNumber, st.DisplayWeight(), h.unit, st.Reps,
				mutedStyle.Render("vol "+store.FormatWeight(st.Volume())),
			))
		}
	}

	if ws.Notes != "" {
		rows = append(rows, "")
		rows = append(rows, titleStyle.Render("Notes"))
		rows = append(rows, ws.Notes)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  d: delete  esc: back"))

	return panelStyle.Width(cw).Render(strings.Join(rows, "\n"))
}
