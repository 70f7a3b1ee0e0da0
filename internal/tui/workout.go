package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mbarlow/ironlog/internal/store"
)

type workoutModel struct {
	store  *store.Store
	width  int
	height int

	session *store.Session // nil when nothing is in progress
	library []store.Exercise
	recent  []store.Session
	unit    string

	// Exercise picker state
	picking      bool
	pickerCursor int
	filter       textinput.Model

	// Cursor over the flattened grouped set list
	setCursor int

	formActive bool
	form       *huh.Form
	formType   string // "set", "name", "notes", "discard"

	// Form field pointers (survive value copies)
	formWeight  *string
	formReps    *string
	formName    *string
	formNotes   *string
	formConfirm *bool

	pendingExercise *store.Exercise // picked, waiting on weight/reps
}

func newWorkoutModel(s *store.Store) workoutModel {
	ti := textinput.New()
	ti.Placeholder = "type to filter"
	ti.Prompt = "/ "
	ti.CharLimit = 40

	weight, reps, name, notes := "", "", "", ""
	confirm := false
	return workoutModel{
		store:       s,
		filter:      ti,
		formWeight:  &weight,
		formReps:    &reps,
		formName:    &name,
		formNotes:   &notes,
		formConfirm: &confirm,
	}
}

func (w workoutModel) Init() tea.Cmd {
	return w.loadData()
}

func (w *workoutModel) setSize(width, height int) {
	w.width = width
	w.height = height
}

func (w workoutModel) active() bool { return w.session != nil }

func (w workoutModel) elapsed() time.Duration {
	if w.session == nil {
		return 0
	}
	return time.Since(w.session.StartedAt)
}

type workoutDataMsg struct {
	session *store.Session
	library []store.Exercise
	recent  []store.Session
	unit    string
}

func (w workoutModel) loadData() tea.Cmd {
	return func() tea.Msg {
		session, _ := w.store.GetActiveSession()
		library, _ := w.store.ListExercises("")
		recent, _ := w.store.ListSessions()
		if len(recent) > 3 {
			recent = recent[:3]
		}
		return workoutDataMsg{
			session: session,
			library: library,
			recent:  recent,
			unit:    w.store.WeightUnit(),
		}
	}
}

func (w workoutModel) update(msg tea.Msg) (workoutModel, tea.Cmd) {
	if w.formActive && w.form != nil {
		return w.updateForm(msg)
	}

	switch msg := msg.(type) {
	case workoutDataMsg:
		w.session = msg.session
		w.library = msg.library
		w.recent = msg.recent
		w.unit = msg.unit
		w.clampSetCursor()
		return w, nil

	case tickMsg:
		// The clock reads the session start time on render; the tick just
		// forces a redraw.
		return w, nil

	case tea.KeyMsg:
		if w.picking {
			return w.updatePicker(msg)
		}
		return w.updateMain(msg)
	}
	return w, nil
}

func (w workoutModel) updateMain(msg tea.KeyMsg) (workoutModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Start):
		return w.startWorkout()

	case key.Matches(msg, keys.Add):
		if w.session == nil {
			return w, func() tea.Msg {
				return statusMsg{text: "No workout in progress. Press s to start one.", isError: true}
			}
		}
		if len(w.library) == 0 {
			return w, func() tea.Msg {
				return statusMsg{text: "Exercise library is empty. Press 3 to add one.", isError: true}
			}
		}
		w.picking = true
		w.pickerCursor = 0
		w.filter.SetValue("")
		w.filter.Focus()
		return w, textinput.Blink

	case key.Matches(msg, keys.Finish):
		return w.finishWorkout()

	case key.Matches(msg, keys.Discard):
		if w.session == nil {
			return w, nil
		}
		return w.showDiscardForm()

	case key.Matches(msg, keys.New):
		if w.session == nil {
			return w, nil
		}
		return w.showNameForm()

	case key.Matches(msg, keys.Notes):
		if w.session == nil {
			return w, nil
		}
		return w.showNotesForm()

	case key.Matches(msg, keys.Delete):
		return w.deleteSelectedSet()

	case key.Matches(msg, keys.Up):
		if w.setCursor > 0 {
			w.setCursor--
		}
	case key.Matches(msg, keys.Down):
		if w.setCursor < len(w.flatSets())-1 {
			w.setCursor++
		}
	}
	return w, nil
}

func (w workoutModel) startWorkout() (workoutModel, tea.Cmd) {
	if w.session != nil {
		return w, nil
	}
	ws, err := w.store.StartSession("")
	if err != nil {
		return w, errorStatus(err)
	}
	w.session = ws
	w.setCursor = 0
	return w, func() tea.Msg { return sessionStartedMsg{session: ws} }
}

func (w workoutModel) finishWorkout() (workoutModel, tea.Cmd) {
	if w.session == nil {
		return w, nil
	}
	finished, err := w.store.FinishSession(w.session.ID)
	if err != nil {
		return w, errorStatus(err)
	}
	w.session = nil
	return w, tea.Batch(
		w.loadData(),
		func() tea.Msg { return sessionFinishedMsg{session: finished} },
	)
}

func (w workoutModel) deleteSelectedSet() (workoutModel, tea.Cmd) {
	flat := w.flatSets()
	if w.session == nil || len(flat) == 0 {
		return w, nil
	}
	st := flat[min(w.setCursor, len(flat)-1)]
	if err := w.store.DeleteSet(st.ID); err != nil {
		return w, errorStatus(err)
	}
	return w.reloadSession("Set deleted")
}

func (w workoutModel) reloadSession(status string) (workoutModel, tea.Cmd) {
	ws, err := w.store.GetSession(w.session.ID)
	if err != nil {
		return w, errorStatus(err)
	}
	w.session = ws
	w.clampSetCursor()
	if status == "" {
		return w, nil
	}
	return w, func() tea.Msg { return statusMsg{text: status} }
}

func (w *workoutModel) clampSetCursor() {
	n := len(w.flatSets())
	if w.setCursor >= n {
		w.setCursor = max(0, n-1)
	}
}

// flatSets flattens the grouped view into the order rows are drawn, so the
// cursor can address individual sets.
func (w workoutModel) flatSets() []store.Set {
	if w.session == nil {
		return nil
	}
	var flat []store.Set
	for _, g := range w.session.GroupedSets() {
		flat = append(flat, g.Sets...)
	}
	return flat
}

func (w workoutModel) updatePicker(msg tea.KeyMsg) (workoutModel, tea.Cmd) {
	// The filter input owns the letter keys, so picker navigation only
	// listens to the raw arrows.
	switch msg.String() {
	case "esc":
		w.picking = false
		w.filter.Blur()
		return w, nil
	case "enter":
		matches := filterExercises(w.library, w.filter.Value())
		if len(matches) == 0 {
			return w, nil
		}
		e := matches[min(w.pickerCursor, len(matches)-1)]
		w.picking = false
		w.filter.Blur()
		return w.showSetForm(e)
	case "up":
		if w.pickerCursor > 0 {
			w.pickerCursor--
		}
		return w, nil
	case "down":
		if w.pickerCursor < len(filterExercises(w.library, w.filter.Value()))-1 {
			w.pickerCursor++
		}
		return w, nil
	}

	before := w.filter.Value()
	var cmd tea.Cmd
	w.filter, cmd = w.filter.Update(msg)
	if w.filter.Value() != before {
		// The match list changed, so the old position is meaningless.
		w.pickerCursor = 0
	}
	return w, cmd
}

func (w workoutModel) showSetForm(e store.Exercise) (workoutModel, tea.Cmd) {
	ex := e
	w.pendingExercise = &ex
	*w.formWeight = ""
	*w.formReps = ""

	// Prefill from the last set of this exercise in the current workout.
	if w.session != nil {
		for _, g := range w.session.GroupedSets() {
			if g.ExerciseName != e.Name || len(g.Sets) == 0 {
				continue
			}
			last := g.Sets[len(g.Sets)-1]
			*w.formWeight = last.DisplayWeight()
			*w.formReps = strconv.Itoa(last.Reps)
		}
	}

	w.formType = "set"
	w.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title(fmt.Sprintf("Weight (%s)", w.unit)).Value(w.formWeight).Validate(validateWeight),
			huh.NewInput().Title("Reps").Value(w.formReps).Validate(validateReps),
		).Title(e.Name),
	).WithShowHelp(true).WithShowErrors(true)

	w.formActive = true
	return w, w.form.Init()
}

func (w workoutModel) showNameForm() (workoutModel, tea.Cmd) {
	*w.formName = w.session.Name
	w.formType = "name"

	w.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Workout Name").Placeholder("Push Day").Value(w.formName),
		),
	).WithShowHelp(true).WithShowErrors(true)

	w.formActive = true
	return w, w.form.Init()
}

func (w workoutModel) showNotesForm() (workoutModel, tea.Cmd) {
	*w.formNotes = w.session.Notes
	w.formType = "notes"

	w.form = huh.NewForm(
		huh.NewGroup(
			huh.NewText().Title("Notes").Lines(4).Value(w.formNotes),
		),
	).WithShowHelp(true).WithShowErrors(true)

	w.formActive = true
	return w, w.form.Init()
}

func (w workoutModel) showDiscardForm() (workoutModel, tea.Cmd) {
	*w.formConfirm = false
	w.formType = "discard"

	w.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Discard this workout?").
				Description("The session and every set in it will be deleted.").
				Affirmative("Discard").
				Negative("Keep").
				Value(w.formConfirm),
		),
	).WithShowHelp(true).WithShowErrors(true)

	w.formActive = true
	return w, w.form.Init()
}

func (w workoutModel) updateForm(msg tea.Msg) (workoutModel, tea.Cmd) {
	// Check for escape to cancel form
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			w.formActive = false
			w.form = nil
			w.pendingExercise = nil
			return w, nil
		}
	}

	form, cmd := w.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.form = f
	}

	if w.form.State == huh.StateCompleted {
		w.formActive = false
		switch w.formType {
		case "set":
			return w.logSet()
		case "name":
			if err := w.store.UpdateSessionName(w.session.ID, *w.formName); err != nil {
				return w, errorStatus(err)
			}
			w.session.Name = *w.formName
			return w, func() tea.Msg { return statusMsg{text: "Workout named"} }
		case "notes":
			if err := w.store.UpdateSessionNotes(w.session.ID, *w.formNotes); err != nil {
				return w, errorStatus(err)
			}
			w.session.Notes = *w.formNotes
			return w, nil
		case "discard":
			if !*w.formConfirm {
				return w, nil
			}
			if err := w.store.DeleteSession(w.session.ID); err != nil {
				return w, errorStatus(err)
			}
			w.session = nil
			return w, tea.Batch(
				w.loadData(),
				func() tea.Msg { return sessionDiscardedMsg{} },
			)
		}
	}

	return w, cmd
}

func (w workoutModel) logSet() (workoutModel, tea.Cmd) {
	if w.session == nil || w.pendingExercise == nil {
		return w, nil
	}
	weight, err := parseWeight(*w.formWeight)
	if err != nil {
		return w, errorStatus(err)
	}
	reps, err := parseReps(*w.formReps)
	if err != nil {
		return w, errorStatus(err)
	}

	st, err := w.store.AddSet(w.session.ID, w.pendingExercise.Name, w.pendingExercise.Category, weight, reps)
	w.pendingExercise = nil
	if err != nil {
		return w, errorStatus(err)
	}

	ws, err := w.store.GetSession(w.session.ID)
	if err != nil {
		return w, errorStatus(err)
	}
	w.session = ws
	w.setCursor = w.indexOfSet(st.ID)
	return w, func() tea.Msg { return setLoggedMsg{set: st} }
}

func (w workoutModel) indexOfSet(id int64) int {
	for i, st := range w.flatSets() {
		if st.ID == id {
			return i
		}
	}
	return 0
}

func (w workoutModel) view() string {
	if w.width < 20 {
		return "Terminal too small"
	}

	cw := w.width - 4

	if w.formActive && w.form != nil {
		return w.renderForm(cw)
	}

	if w.session == nil {
		return w.renderIdle(cw)
	}

	clockPanel := w.renderClockPanel(cw)

	var bottom string
	if w.picking {
		bottom = w.renderPicker(cw)
	} else {
		bottom = w.renderSetsPanel(cw)
	}

	return lipgloss.JoinVertical(lipgloss.Left, clockPanel, bottom)
}

func (w workoutModel) renderForm(cw int) string {
	title := "Log Set"
	switch w.formType {
	case "name":
		title = "Name Workout"
	case "notes":
		title = "Workout Notes"
	case "discard":
		title = "Discard Workout"
	}
	content := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), "", w.form.View())
	return panelStyle.Width(cw).Render(content)
}

func (w workoutModel) renderIdle(cw int) string {
	timeDisplay := clockStyle.Width(cw - 6).Render("00:00:00")
	indicator := mutedStyle.Render("■  NO WORKOUT IN PROGRESS")
	hint := mutedStyle.Render("Press s to start a workout")

	content := lipgloss.JoinVertical(lipgloss.Center, timeDisplay, indicator, hint)
	top := panelStyle.Width(cw).Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, top, w.renderRecentPanel(cw))
}

func (w workoutModel) renderRecentPanel(cw int) string {
	title := titleStyle.Render("Recent Workouts")
	if len(w.recent) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("Nothing logged yet"),
		)
		return panelStyle.Width(cw).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	for _, ws := range w.recent {
		name := ws.Name
		if name == "" {
			name = "(unnamed)"
		}
		dur := ws.FormattedDuration()
		if ws.IsActive() {
			dur = "in progress"
		}
		row := fmt.Sprintf("  %s  %-20s %2d sets  %s %s  %s",
			ws.StartedAt.Local().Format("Jan 02"),
			name,
			len(ws.Sets),
			store.FormatWeight(ws.TotalVolume()),
			w.unit,
			mutedStyle.Render(dur),
		)
		rows = append(rows, row)
	}

	return panelStyle.Width(cw).Render(strings.Join(rows, "\n"))
}

func (w workoutModel) renderClockPanel(cw int) string {
	timeDisplay := clockRunningStyle.Width(cw - 6).Render(formatClock(w.elapsed()))
	indicator := successStyle.Render("●  WORKOUT IN PROGRESS")

	nameLine := highlightStyle.Render(w.session.Name)
	if w.session.Name == "" {
		nameLine = mutedStyle.Render("unnamed (press n to name it)")
	}
	startLine := subtitleStyle.Render("started " + w.session.StartedAt.Local().Format("15:04"))

	content := lipgloss.JoinVertical(lipgloss.Center, timeDisplay, indicator, nameLine, startLine)
	return activePanelStyle.Width(cw).Render(content)
}

func (w workoutModel) renderSetsPanel(cw int) string {
	groups := w.session.GroupedSets()

	header := fmt.Sprintf("%s  %s  %s",
		titleStyle.Render("Sets"),
		mutedStyle.Render(fmt.Sprintf("%d sets in %d exercises", len(w.session.Sets), len(w.session.UniqueExercises()))),
		accentStyle.Render(fmt.Sprintf("%s %s total", store.FormatWeight(w.session.TotalVolume()), w.unit)),
	)

	if len(groups) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			mutedStyle.Render("No sets yet. Press a to log one."),
		)
		return panelStyle.Width(cw).Render(content)
	}

	var rows []string
	rows = append(rows, header)

	idx := 0
	for _, g := range groups {
		rows = append(rows, "")
		rows = append(rows, fmt.Sprintf("%s %s  %s",
			categoryDot(g.Category),
			titleStyle.Render(g.ExerciseName),
			mutedStyle.Render(string(g.Category)),
		))
		for _, st := range g.Sets {
			cursor := "   "
			style := normalItemStyle
			if idx == w.setCursor {
				cursor = " > "
				style = selectedItemStyle
			}
			row := style.Render(fmt.Sprintf("%s#%d  %s %s × %d", cursor, st.SetNumber, st.DisplayWeight(), w.unit, st.Reps)) +
				mutedStyle.Render("   vol "+store.FormatWeight(st.Volume()))
			rows = append(rows, row)
			idx++
		}
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  a: log set  d: delete set  n: name  o: notes  f: finish  x: discard"))

	return panelStyle.Width(cw).Render(strings.Join(rows, "\n"))
}

func (w workoutModel) renderPicker(cw int) string {
	matches := filterExercises(w.library, w.filter.Value())

	var rows []string
	rows = append(rows, titleStyle.Render("Log Set"))
	rows = append(rows, w.filter.View())
	rows = append(rows, "")

	if len(matches) == 0 {
		rows = append(rows, mutedStyle.Render("  No exercises match"))
	}

	maxRows := max(5, w.height-14)
	start, end := windowBounds(len(matches), w.pickerCursor, maxRows)
	for i := start; i < end; i++ {
		e := matches[i]
		cursor := "  "
		style := normalItemStyle
		if i == w.pickerCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%s %s", cursor, categoryDot(e.Category), e.Name)))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: select  esc: cancel  ↑/↓: move"))

	return activePanelStyle.Width(cw).Render(strings.Join(rows, "\n"))
}
