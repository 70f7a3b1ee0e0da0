package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mbarlow/ironlog/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func runeKey(r string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(r)}
}

// ============================================================
// Workout model
// ============================================================

func TestWorkoutInit(t *testing.T) {
	s := newTestStore(t)
	w := newWorkoutModel(s)

	if w.active() {
		t.Fatal("no workout should be active initially")
	}
	if w.elapsed() != 0 {
		t.Fatal("elapsed should be 0 with no workout")
	}
	if w.picking {
		t.Fatal("picker should be closed initially")
	}
}

func TestWorkoutStartFinish(t *testing.T) {
	s := newTestStore(t)
	w := newWorkoutModel(s)

	w, cmd := w.startWorkout()
	if !w.active() {
		t.Fatal("workout should be active after start")
	}
	if cmd == nil {
		t.Fatal("start should emit a message")
	}

	active, _ := s.GetActiveSession()
	if active == nil {
		t.Fatal("start should create a session")
	}
	if active.ID != w.session.ID {
		t.Fatal("session ID mismatch")
	}

	w, cmd = w.finishWorkout()
	if w.active() {
		t.Fatal("workout should not be active after finish")
	}
	if cmd == nil {
		t.Fatal("finish should emit messages")
	}

	active, _ = s.GetActiveSession()
	if active != nil {
		t.Fatal("finish should close the session")
	}
}

func TestWorkoutStartWhenActive(t *testing.T) {
	s := newTestStore(t)
	w := newWorkoutModel(s)

	w, _ = w.startWorkout()
	first := w.session.ID

	// Starting again while one is running should be a no-op
	w, _ = w.startWorkout()
	if w.session.ID != first {
		t.Fatal("second start should not replace the session")
	}

	sessions, _ := s.ListSessions()
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
}

func TestWorkoutFinishWhenIdle(t *testing.T) {
	s := newTestStore(t)
	w := newWorkoutModel(s)

	_, cmd := w.finishWorkout()
	if cmd != nil {
		t.Fatal("finish without a workout should be a no-op")
	}
}

func TestWorkoutElapsed(t *testing.T) {
	s := newTestStore(t)
	w := newWorkoutModel(s)

	w, _ = w.startWorkout()
	time.Sleep(50 * time.Millisecond)

	if w.elapsed() < 40*time.Millisecond {
		t.Fatalf("elapsed too small: %v", w.elapsed())
	}
}

func TestWorkoutAddWithoutSession(t *testing.T) {
	s := newTestStore(t)
	w := newWorkoutModel(s)

	w, cmd := w.updateMain(runeKey("a"))
	if w.picking {
		t.Fatal("picker should not open without a workout")
	}
	if cmd == nil {
		t.Fatal("expected a status message")
	}
	msg, ok := cmd().(statusMsg)
	if !ok || !msg.isError {
		t.Fatalf("expected error status, got %#v", msg)
	}
}

func TestWorkoutAddOpensPicker(t *testing.T) {
	s := newTestStore(t)
	s.CreateExercise("Bench Press", store.CategoryChest, false)

	w := newWorkoutModel(s)
	w, _ = w.startWorkout()
	w.library, _ = s.ListExercises("")

	w, _ = w.updateMain(runeKey("a"))
	if !w.picking {
		t.Fatal("picker should open")
	}
}

func TestWorkoutPickerSelect(t *testing.T) {
	s := newTestStore(t)
	w := newWorkoutModel(s)
	w, _ = w.startWorkout()
	w.library = []store.Exercise{
		{ID: 1, Name: "Bench Press", Category: store.CategoryChest},
		{ID: 2, Name: "Squat", Category: store.CategoryLegs},
	}
	w.picking = true

	w, _ = w.updatePicker(tea.KeyMsg{Type: tea.KeyDown})
	if w.pickerCursor != 1 {
		t.Fatalf("cursor = %d, want 1", w.pickerCursor)
	}

	w, _ = w.updatePicker(tea.KeyMsg{Type: tea.KeyEnter})
	if w.picking {
		t.Fatal("picker should close on enter")
	}
	if !w.formActive {
		t.Fatal("set form should open after selection")
	}
	if w.formType != "set" {
		t.Fatalf("formType = %q, want set", w.formType)
	}
	if w.pendingExercise == nil || w.pendingExercise.Name != "Squat" {
		t.Fatal("selected exercise not pending")
	}
}

func TestWorkoutPickerEsc(t *testing.T) {
	s := newTestStore(t)
	w := newWorkoutModel(s)
	w.picking = true

	w, _ = w.updatePicker(tea.KeyMsg{Type: tea.KeyEsc})
	if w.picking {
		t.Fatal("esc should close the picker")
	}
}

func TestWorkoutPickerFilterTyping(t *testing.T) {
	s := newTestStore(t)
	w := newWorkoutModel(s)
	w.library = []store.Exercise{
		{ID: 1, Name: "Bench Press", Category: store.CategoryChest},
		{ID: 2, Name: "Squat", Category: store.CategoryLegs},
	}
	w.picking = true
	w.pickerCursor = 1
	w.filter.Focus()

	w, _ = w.updatePicker(runeKey("b"))
	if w.filter.Value() != "b" {
		t.Fatalf("filter = %q, want b", w.filter.Value())
	}
	if w.pickerCursor != 0 {
		t.Fatal("typing should reset the cursor")
	}
}

func TestWorkoutPickerKeepsCursorWhenFilterUnchanged(t *testing.T) {
	s := newTestStore(t)
	w := newWorkoutModel(s)
	w.library = []store.Exercise{
		{ID: 1, Name: "Bench Press", Category: store.CategoryChest},
		{ID: 2, Name: "Squat", Category: store.CategoryLegs},
	}
	w.picking = true
	w.pickerCursor = 1
	w.filter.Focus()

	// Moving the input cursor leaves the text alone
	w, _ = w.updatePicker(tea.KeyMsg{Type: tea.KeyLeft})
	if w.pickerCursor != 1 {
		t.Fatalf("cursor = %d after left, want 1", w.pickerCursor)
	}

	// So does deleting from an already empty filter
	w, _ = w.updatePicker(tea.KeyMsg{Type: tea.KeyBackspace})
	if w.pickerCursor != 1 {
		t.Fatalf("cursor = %d after backspace, want 1", w.pickerCursor)
	}
}

func TestWorkoutLogSet(t *testing.T) {
	s := newTestStore(t)
	w := newWorkoutModel(s)
	w, _ = w.startWorkout()

	e := store.Exercise{ID: 1, Name: "Bench Press", Category: store.CategoryChest}
	w, _ = w.showSetForm(e)
	*w.formWeight = "100"
	*w.formReps = "10"

	w, cmd := w.logSet()
	if cmd == nil {
		t.Fatal("logSet should emit a message")
	}
	if _, ok := cmd().(setLoggedMsg); !ok {
		t.Fatal("expected setLoggedMsg")
	}

	if len(w.session.Sets) != 1 {
		t.Fatalf("session should have 1 set, got %d", len(w.session.Sets))
	}
	st := w.session.Sets[0]
	if st.ExerciseName != "Bench Press" || st.Weight != 100 || st.Reps != 10 || st.SetNumber != 1 {
		t.Fatalf("unexpected set: %+v", st)
	}
	if w.pendingExercise != nil {
		t.Fatal("pending exercise should be cleared")
	}
}

func TestWorkoutLogSetPrefill(t *testing.T) {
	s := newTestStore(t)
	w := newWorkoutModel(s)
	w, _ = w.startWorkout()
	e := store.Exercise{ID: 1, Name: "Bench Press", Category: store.CategoryChest}

	w, _ = w.showSetForm(e)
	if *w.formWeight != "" || *w.formReps != "" {
		t.Fatal("first set should start blank")
	}
	*w.formWeight = "102.5"
	*w.formReps = "8"
	w, _ = w.logSet()

	// Next set of the same exercise starts from the last one
	w, _ = w.showSetForm(e)
	if *w.formWeight != "102.5" {
		t.Fatalf("weight prefill = %q, want 102.5", *w.formWeight)
	}
	if *w.formReps != "8" {
		t.Fatalf("reps prefill = %q, want 8", *w.formReps)
	}
}

func TestWorkoutLogSetInvalid(t *testing.T) {
	s := newTestStore(t)
	w := newWorkoutModel(s)
	w, _ = w.startWorkout()

	e := store.Exercise{ID: 1, Name: "Bench Press", Category: store.CategoryChest}
	w, _ = w.showSetForm(e)
	*w.formWeight = "abc"
	*w.formReps = "8"

	w, cmd := w.logSet()
	if len(w.session.Sets) != 0 {
		t.Fatal("invalid weight should not log a set")
	}
	msg, ok := cmd().(statusMsg)
	if !ok || !msg.isError {
		t.Fatalf("expected error status, got %#v", msg)
	}
}

func TestWorkoutFlatSets(t *testing.T) {
	s := newTestStore(t)
	w := newWorkoutModel(s)
	w, _ = w.startWorkout()

	bench := store.Exercise{ID: 1, Name: "Bench Press", Category: store.CategoryChest}
	squat := store.Exercise{ID: 2, Name: "Squat", Category: store.CategoryLegs}

	logSet := func(e store.Exercise, weight, reps string) {
		t.Helper()
		w, _ = w.showSetForm(e)
		*w.formWeight = weight
		*w.formReps = reps
		w, _ = w.logSet()
	}

	logSet(bench, "100", "10")
	logSet(squat, "140", "5")
	logSet(bench, "102.5", "8")

	// Flattened order follows the grouped display, not insertion
	flat := w.flatSets()
	if len(flat) != 3 {
		t.Fatalf("flat sets = %d, want 3", len(flat))
	}
	want := []struct {
		name string
		num  int
	}{
		{"Bench Press", 1},
		{"Bench Press", 2},
		{"Squat", 1},
	}
	for i, tt := range want {
		if flat[i].ExerciseName != tt.name || flat[i].SetNumber != tt.num {
			t.Fatalf("flat[%d] = %s #%d, want %s #%d",
				i, flat[i].ExerciseName, flat[i].SetNumber, tt.name, tt.num)
		}
	}

	// Cursor follows the set that was just logged
	if w.setCursor != 1 {
		t.Fatalf("setCursor = %d, want 1", w.setCursor)
	}
}

func TestWorkoutDeleteSelectedSet(t *testing.T) {
	s := newTestStore(t)
	w := newWorkoutModel(s)
	w, _ = w.startWorkout()

	e := store.Exercise{ID: 1, Name: "Bench Press", Category: store.CategoryChest}
	w, _ = w.showSetForm(e)
	*w.formWeight = "100"
	*w.formReps = "10"
	w, _ = w.logSet()
	w, _ = w.showSetForm(e)
	*w.formWeight = "102.5"
	*w.formReps = "8"
	w, _ = w.logSet()

	w.setCursor = 1
	w, _ = w.deleteSelectedSet()

	if len(w.session.Sets) != 1 {
		t.Fatalf("expected 1 set left, got %d", len(w.session.Sets))
	}
	if w.session.Sets[0].SetNumber != 1 {
		t.Fatal("wrong set deleted")
	}
	if w.setCursor != 0 {
		t.Fatalf("setCursor = %d, want 0", w.setCursor)
	}
}

func TestWorkoutDeleteWithNoSets(t *testing.T) {
	s := newTestStore(t)
	w := newWorkoutModel(s)
	w, _ = w.startWorkout()

	_, cmd := w.deleteSelectedSet()
	if cmd != nil {
		t.Fatal("delete with no sets should be a no-op")
	}
}

func TestWorkoutDataMsg(t *testing.T) {
	s := newTestStore(t)
	w := newWorkoutModel(s)
	w.setCursor = 5

	w, _ = w.update(workoutDataMsg{unit: "lb"})
	if w.unit != "lb" {
		t.Fatalf("unit = %q, want lb", w.unit)
	}
	if w.setCursor != 0 {
		t.Fatal("cursor should clamp when the session is empty")
	}
}

func TestWorkoutDiscardFormCancel(t *testing.T) {
	s := newTestStore(t)
	w := newWorkoutModel(s)
	w, _ = w.startWorkout()

	w, _ = w.showDiscardForm()
	if !w.formActive || w.formType != "discard" {
		t.Fatal("discard form should be active")
	}

	w, _ = w.updateForm(tea.KeyMsg{Type: tea.KeyEsc})
	if w.formActive {
		t.Fatal("esc should cancel the form")
	}
	if w.form != nil {
		t.Fatal("form should be dropped on cancel")
	}
	if !w.active() {
		t.Fatal("cancelling the form should keep the workout")
	}
}

// ============================================================
// History model
// ============================================================

func TestHistoryDataMsgClampsCursor(t *testing.T) {
	s := newTestStore(t)
	h := newHistoryModel(s)
	h.cursor = 5
	h.viewingDetail = true

	h, _ = h.update(historyDataMsg{unit: "kg"})
	if h.cursor != 0 {
		t.Fatalf("cursor = %d, want 0", h.cursor)
	}
	if h.viewingDetail {
		t.Fatal("detail view should close when the list empties")
	}
}

func TestHistoryCursorBounds(t *testing.T) {
	s := newTestStore(t)
	h := newHistoryModel(s)
	now := time.Now()
	h.sessions = []store.Session{
		{ID: 2, StartedAt: now},
		{ID: 1, StartedAt: now.Add(-24 * time.Hour)},
	}

	h, _ = h.updateList(tea.KeyMsg{Type: tea.KeyDown})
	if h.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", h.cursor)
	}
	h, _ = h.updateList(tea.KeyMsg{Type: tea.KeyDown})
	if h.cursor != 1 {
		t.Fatal("cursor should stop at the last session")
	}
	h, _ = h.updateList(tea.KeyMsg{Type: tea.KeyUp})
	if h.cursor != 0 {
		t.Fatalf("cursor = %d, want 0", h.cursor)
	}
}

func TestHistoryDetailNavigation(t *testing.T) {
	s := newTestStore(t)
	h := newHistoryModel(s)
	h.sessions = []store.Session{{ID: 1, StartedAt: time.Now()}}

	h, _ = h.updateList(tea.KeyMsg{Type: tea.KeyEnter})
	if !h.viewingDetail {
		t.Fatal("enter should open details")
	}

	h, _ = h.updateDetail(tea.KeyMsg{Type: tea.KeyEsc})
	if h.viewingDetail {
		t.Fatal("esc should close details")
	}
}

func TestHistoryDetailWhenEmpty(t *testing.T) {
	s := newTestStore(t)
	h := newHistoryModel(s)

	h, _ = h.updateList(tea.KeyMsg{Type: tea.KeyEnter})
	if h.viewingDetail {
		t.Fatal("no details without sessions")
	}
}

func TestHistoryShowDeleteForm(t *testing.T) {
	s := newTestStore(t)
	h := newHistoryModel(s)
	h.sessions = []store.Session{{ID: 1, Name: "Leg Day", StartedAt: time.Now()}}

	h, _ = h.showDeleteForm()
	if !h.formActive || h.form == nil {
		t.Fatal("delete form should be active")
	}
}

func TestHistoryBuildChart(t *testing.T) {
	s := newTestStore(t)
	h := newHistoryModel(s)
	h.setSize(120, 40)

	now := time.Now()
	end := now.Add(-23 * time.Hour)
	h.sessions = []store.Session{
		{ID: 2, StartedAt: now, Sets: []store.Set{
			{ID: 1, SessionID: 2, ExerciseName: "Squat", Category: store.CategoryLegs, Weight: 100, Reps: 10, SetNumber: 1, CompletedAt: now},
		}},
		{ID: 1, StartedAt: now.Add(-24 * time.Hour), EndedAt: &end, Sets: []store.Set{
			{ID: 2, SessionID: 1, ExerciseName: "Bench Press", Category: store.CategoryChest, Weight: 60, Reps: 5, SetNumber: 1, CompletedAt: now.Add(-24 * time.Hour)},
		}},
	}

	h.buildChart()
	if h.chart.View() == "" {
		t.Fatal("chart should render bars")
	}
}

func TestHistoryRenderListEmpty(t *testing.T) {
	s := newTestStore(t)
	h := newHistoryModel(s)
	h.setSize(120, 40)

	out := h.view()
	if !containsString(out, "No workouts yet") {
		t.Fatal("empty history should say so")
	}
}

func TestHistoryRenderDetail(t *testing.T) {
	s := newTestStore(t)
	h := newHistoryModel(s)
	h.setSize(120, 40)
	h.unit = "kg"
	h.viewingDetail = true

	now := time.Now()
	h.sessions = []store.Session{
		{ID: 1, Name: "Push Day", Notes: "felt strong", StartedAt: now, Sets: []store.Set{
			{ID: 1, SessionID: 1, ExerciseName: "Bench Press", Category: store.CategoryChest, Weight: 100, Reps: 10, SetNumber: 1, CompletedAt: now},
		}},
	}

	out := h.view()
	if !containsString(out, "Push Day") {
		t.Fatal("detail should show the session name")
	}
	if !containsString(out, "Bench Press") {
		t.Fatal("detail should list the sets")
	}
	if !containsString(out, "felt strong") {
		t.Fatal("detail should show the notes")
	}
}

// ============================================================
// Library model
// ============================================================

func TestLibraryVisibleFilter(t *testing.T) {
	s := newTestStore(t)
	l := newLibraryModel(s)
	l.exercises = []store.Exercise{
		{ID: 1, Name: "Bench Press", Category: store.CategoryChest},
		{ID: 2, Name: "Overhead Press", Category: store.CategoryShoulders},
		{ID: 3, Name: "Squat", Category: store.CategoryLegs},
	}

	l.filter.SetValue("press")
	vis := l.visible()
	if len(vis) != 2 {
		t.Fatalf("visible = %d, want 2", len(vis))
	}

	l.filter.SetValue("")
	if len(l.visible()) != 3 {
		t.Fatal("empty filter should show everything")
	}
}

func TestLibraryCategoryCycle(t *testing.T) {
	if nextCategory("") != store.CategoryChest {
		t.Fatal("all should advance to the first category")
	}
	if nextCategory(store.CategoryOther) != "" {
		t.Fatal("last category should wrap back to all")
	}
	if prevCategory("") != store.CategoryOther {
		t.Fatal("all should step back to the last category")
	}
	if prevCategory(store.CategoryChest) != "" {
		t.Fatal("first category should step back to all")
	}

	// A full forward cycle visits every category and returns to all
	c := store.Category("")
	for range store.Categories {
		c = nextCategory(c)
	}
	if c != store.CategoryOther {
		t.Fatalf("after full cycle c = %q, want other", c)
	}
	if nextCategory(c) != "" {
		t.Fatal("cycle should return to all")
	}
}

func TestLibraryCategoryKeys(t *testing.T) {
	s := newTestStore(t)
	l := newLibraryModel(s)

	l, cmd := l.updateList(tea.KeyMsg{Type: tea.KeyRight})
	if l.category != store.CategoryChest {
		t.Fatalf("category = %q, want chest", l.category)
	}
	if cmd == nil {
		t.Fatal("category change should refresh")
	}

	l, _ = l.updateList(tea.KeyMsg{Type: tea.KeyLeft})
	if l.category != "" {
		t.Fatalf("category = %q, want all", l.category)
	}
}

func TestLibraryDelete(t *testing.T) {
	s := newTestStore(t)
	e, err := s.CreateExercise("Cable Row", store.CategoryBack, true)
	if err != nil {
		t.Fatal(err)
	}

	l := newLibraryModel(s)
	l, _ = l.update(libraryDataMsg{exercises: []store.Exercise{*e}})

	l, cmd := l.updateList(runeKey("d"))
	if cmd == nil {
		t.Fatal("delete should refresh and report")
	}

	left, _ := s.ListExercises("")
	if len(left) != 0 {
		t.Fatalf("expected empty library, got %d", len(left))
	}
}

func TestLibraryForms(t *testing.T) {
	s := newTestStore(t)
	l := newLibraryModel(s)
	l.exercises = []store.Exercise{{ID: 7, Name: "Squat", Category: store.CategoryLegs}}

	l, _ = l.showNewForm()
	if !l.formActive || l.formType != "new" {
		t.Fatal("new form should be active")
	}
	if *l.formName != "" {
		t.Fatal("new form should start blank")
	}

	l, _ = l.updateForm(tea.KeyMsg{Type: tea.KeyEsc})
	if l.formActive {
		t.Fatal("esc should cancel the form")
	}

	l, _ = l.showEditForm()
	if l.formType != "edit" || l.editingID != 7 {
		t.Fatal("edit form should target the selected exercise")
	}
	if *l.formName != "Squat" || *l.formCategory != string(store.CategoryLegs) {
		t.Fatal("edit form should prefill")
	}
}

func TestLibraryFilterMode(t *testing.T) {
	s := newTestStore(t)
	l := newLibraryModel(s)
	l.exercises = []store.Exercise{
		{ID: 1, Name: "Bench Press", Category: store.CategoryChest},
		{ID: 2, Name: "Squat", Category: store.CategoryLegs},
	}

	l, _ = l.updateList(runeKey("/"))
	if !l.filtering {
		t.Fatal("/ should enter filter mode")
	}

	l, _ = l.updateFilter(runeKey("sq"))
	if l.filter.Value() != "sq" {
		t.Fatalf("filter = %q, want sq", l.filter.Value())
	}
	if len(l.visible()) != 1 {
		t.Fatalf("visible = %d, want 1", len(l.visible()))
	}

	l, _ = l.updateFilter(tea.KeyMsg{Type: tea.KeyEsc})
	if l.filtering {
		t.Fatal("esc should leave filter mode")
	}
	if l.filter.Value() != "" {
		t.Fatal("esc should clear the filter")
	}
}

func TestLibraryFilterKeepsCursorWhenUnchanged(t *testing.T) {
	s := newTestStore(t)
	l := newLibraryModel(s)
	l.exercises = []store.Exercise{
		{ID: 1, Name: "Bench Press", Category: store.CategoryChest},
		{ID: 2, Name: "Overhead Press", Category: store.CategoryShoulders},
	}
	l.filtering = true
	l.filter.Focus()
	l.cursor = 1

	l, _ = l.updateFilter(tea.KeyMsg{Type: tea.KeyLeft})
	if l.cursor != 1 {
		t.Fatalf("cursor = %d after left, want 1", l.cursor)
	}

	l, _ = l.updateFilter(runeKey("p"))
	if l.cursor != 0 {
		t.Fatal("typing should reset the cursor")
	}
}

// ============================================================
// Settings model
// ============================================================

func TestSettingsShowForm(t *testing.T) {
	s := newTestStore(t)
	sm := newSettingsModel(s)

	sm, _ = sm.showForm()
	if !sm.formActive {
		t.Fatal("form should be active")
	}
	if *sm.formUnit != store.WeightUnitKg {
		t.Fatalf("default unit = %q, want kg", *sm.formUnit)
	}
}

func TestSettingsDataMsg(t *testing.T) {
	s := newTestStore(t)
	sm := newSettingsModel(s)

	sm, _ = sm.update(settingsDataMsg{unit: "lb"})
	if sm.unit != "lb" {
		t.Fatalf("unit = %q, want lb", sm.unit)
	}
}

func TestUnitLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"kg", "kilograms (kg)"},
		{"lb", "pounds (lb)"},
		{"", "kilograms (kg)"},
		{"stone", "kilograms (kg)"},
	}
	for _, tt := range tests {
		got := unitLabel(tt.in)
		if got != tt.want {
			t.Errorf("unitLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// ============================================================
// Helper functions
// ============================================================

func TestFormatClock(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00:00"},
		{time.Second, "00:00:01"},
		{time.Minute, "00:01:00"},
		{time.Hour, "01:00:00"},
		{time.Hour + time.Minute + time.Second, "01:01:01"},
		{25 * time.Hour, "25:00:00"},
	}
	for _, tt := range tests {
		got := formatClock(tt.d)
		if got != tt.want {
			t.Errorf("formatClock(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestParseWeight(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"225", 225},
		{"102.5", 102.5},
		{" 60 ", 60},
		{"0", 0},
	}
	for _, tt := range tests {
		got, err := parseWeight(tt.in)
		if err != nil {
			t.Errorf("parseWeight(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseWeight(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseWeightInvalid(t *testing.T) {
	for _, in := range []string{"", "abc", "-5", "NaN", "Inf", "12kg"} {
		if _, err := parseWeight(in); err == nil {
			t.Errorf("parseWeight(%q) should fail", in)
		}
	}
}

func TestParseReps(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"8", 8},
		{"12", 12},
		{" 5 ", 5},
	}
	for _, tt := range tests {
		got, err := parseReps(tt.in)
		if err != nil {
			t.Errorf("parseReps(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseReps(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseRepsInvalid(t *testing.T) {
	for _, in := range []string{"", "0", "-3", "2.5", "abc"} {
		if _, err := parseReps(in); err == nil {
			t.Errorf("parseReps(%q) should fail", in)
		}
	}
}

func TestFilterExercises(t *testing.T) {
	library := []store.Exercise{
		{Name: "Bench Press"},
		{Name: "Overhead Press"},
		{Name: "Squat"},
	}

	if got := filterExercises(library, ""); len(got) != 3 {
		t.Fatalf("empty query = %d, want 3", len(got))
	}
	if got := filterExercises(library, "press"); len(got) != 2 {
		t.Fatalf("press = %d, want 2", len(got))
	}
	if got := filterExercises(library, "BENCH"); len(got) != 1 || got[0].Name != "Bench Press" {
		t.Fatalf("match should ignore case: %v", got)
	}
	if got := filterExercises(library, "  squat "); len(got) != 1 {
		t.Fatal("query should be trimmed")
	}
	if got := filterExercises(library, "deadlift"); len(got) != 0 {
		t.Fatalf("deadlift = %d, want 0", len(got))
	}
}

func TestWindowBounds(t *testing.T) {
	tests := []struct {
		count, cursor, size int
		wantStart, wantEnd  int
	}{
		{3, 0, 10, 0, 3},
		{55, 0, 10, 0, 10},
		{55, 30, 10, 25, 35},
		{55, 54, 10, 45, 55},
		{10, 5, 0, 0, 10},
	}
	for _, tt := range tests {
		start, end := windowBounds(tt.count, tt.cursor, tt.size)
		if start != tt.wantStart || end != tt.wantEnd {
			t.Errorf("windowBounds(%d, %d, %d) = (%d, %d), want (%d, %d)",
				tt.count, tt.cursor, tt.size, start, end, tt.wantStart, tt.wantEnd)
		}
	}
}

func TestSessionLabel(t *testing.T) {
	named := store.Session{Name: "Push Day"}
	if sessionLabel(named) != "Push Day" {
		t.Fatal("named session should use its name")
	}

	start := time.Date(2026, time.March, 5, 10, 0, 0, 0, time.Local)
	unnamed := store.Session{StartedAt: start}
	if got := sessionLabel(unnamed); got != "Mar 5 workout" {
		t.Fatalf("sessionLabel = %q, want Mar 5 workout", got)
	}
}

func TestMinMax(t *testing.T) {
	if min(3, 5) != 3 {
		t.Fatal("min(3,5) should be 3")
	}
	if min(5, 3) != 3 {
		t.Fatal("min(5,3) should be 3")
	}
	if min(3, 3) != 3 {
		t.Fatal("min(3,3) should be 3")
	}
	if max(3, 5) != 5 {
		t.Fatal("max(3,5) should be 5")
	}
	if max(5, 3) != 5 {
		t.Fatal("max(5,3) should be 5")
	}
	if max(3, 3) != 3 {
		t.Fatal("max(3,3) should be 3")
	}
}

// ============================================================
// View state
// ============================================================

func TestViewNames(t *testing.T) {
	if len(viewNames) != 4 {
		t.Fatalf("expected 4 view names, got %d", len(viewNames))
	}
	expected := []string{"Workout", "History", "Library", "Settings"}
	for i, name := range expected {
		if viewNames[i] != name {
			t.Fatalf("viewNames[%d] = %q, want %q", i, viewNames[i], name)
		}
	}
}

func TestViewStateConstants(t *testing.T) {
	if viewWorkout != 0 || viewHistory != 1 || viewLibrary != 2 || viewSettings != 3 {
		t.Fatal("view state constants out of order")
	}
}

// ============================================================
// App model
// ============================================================

func TestNewApp(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)

	if app.activeView != viewWorkout {
		t.Fatal("default view should be workout")
	}
	if app.showHelp {
		t.Fatal("help should be hidden by default")
	}
	if app.exportPicking {
		t.Fatal("export picker should be hidden by default")
	}
}

func TestAppIsFormActiveDefault(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)

	if app.isFormActive() {
		t.Fatal("no forms should be active initially")
	}
}

func TestAppIsFormActiveStates(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)

	app.workout.picking = true
	if !app.isFormActive() {
		t.Fatal("exercise picker should capture input")
	}
	app.workout.picking = false

	app.activeView = viewLibrary
	app.library.filtering = true
	if !app.isFormActive() {
		t.Fatal("library filter should capture input")
	}
	app.library.filtering = false

	app.activeView = viewHistory
	app.history.formActive = true
	if !app.isFormActive() {
		t.Fatal("history form should capture input")
	}
}

func TestAppViewStates(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)

	m, _ := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	app = m.(App)

	// Test all views render without panic
	views := []viewState{viewWorkout, viewHistory, viewLibrary, viewSettings}
	for _, v := range views {
		app.activeView = v
		output := app.View()
		if output == "" {
			t.Fatalf("view %d rendered empty", v)
		}
	}
}

func TestAppRenderHeaderContainsAllTabs(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app.width = 120
	app.height = 40

	header := app.renderHeader()
	for _, name := range viewNames {
		if !containsString(header, name) {
			t.Fatalf("header missing tab %q", name)
		}
	}
	if !containsString(header, "ironlog") {
		t.Fatal("header missing app title")
	}
}

func TestAppRenderFooter(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app.width = 120
	app.height = 40

	footer := app.renderFooter()
	if footer == "" {
		t.Fatal("footer should not be empty")
	}
}

func TestAppFooterLiveWorkout(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app.width = 120
	app.height = 40
	app.workout.session = &store.Session{ID: 1, StartedAt: time.Now()}

	footer := app.renderFooter()
	if !containsString(footer, "●") {
		t.Fatal("footer should show the live workout indicator")
	}
}

func TestAppLoadingState(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	// Width 0 means not yet sized
	output := app.View()
	if output != "Loading..." {
		t.Fatalf("expected 'Loading...', got %q", output)
	}
}

func TestAppStatusMessage(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app.width = 120
	app.height = 40
	app.status = "test status"

	footer := app.renderFooter()
	if !containsString(footer, "test status") {
		t.Fatal("footer should contain status message")
	}

	app.statusErr = true
	footer = app.renderFooter()
	if !containsString(footer, "test status") {
		t.Fatal("footer should contain error status too")
	}
}

func TestAppStatusFromMessages(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)

	m, _ := app.Update(statusMsg{text: "hello", isError: true})
	app = m.(App)
	if app.status != "hello" || !app.statusErr {
		t.Fatalf("status = %q (err %v), want hello (err true)", app.status, app.statusErr)
	}

	m, _ = app.Update(sessionStartedMsg{})
	app = m.(App)
	if app.status != "Workout started" || app.statusErr {
		t.Fatalf("status = %q, want Workout started", app.status)
	}

	end := time.Now()
	ws := &store.Session{StartedAt: end.Add(-45 * time.Minute), EndedAt: &end}
	m, _ = app.Update(sessionFinishedMsg{session: ws})
	app = m.(App)
	if app.status != "Workout finished in 45m" {
		t.Fatalf("status = %q, want Workout finished in 45m", app.status)
	}

	m, _ = app.Update(setLoggedMsg{set: &store.Set{ExerciseName: "Bench Press", SetNumber: 2}})
	app = m.(App)
	if app.status != "Logged Bench Press #2" {
		t.Fatalf("status = %q, want Logged Bench Press #2", app.status)
	}

	m, _ = app.Update(sessionDiscardedMsg{})
	app = m.(App)
	if app.status != "Workout discarded" {
		t.Fatalf("status = %q, want Workout discarded", app.status)
	}

	m, _ = app.Update(exportDoneMsg{path: "/tmp/x.csv"})
	app = m.(App)
	if app.status != "Exported to /tmp/x.csv" {
		t.Fatalf("status = %q, want Exported to /tmp/x.csv", app.status)
	}
}

func TestAppExportKey(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)

	m, _ := app.Update(runeKey("E"))
	app = m.(App)
	if !app.exportPicking {
		t.Fatal("E should open the export picker")
	}
}

func TestAppExportPickerNavigation(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app.exportPicking = true

	m, _ := app.Update(tea.KeyMsg{Type: tea.KeyDown})
	app = m.(App)
	if app.exportCursor != 1 {
		t.Fatalf("cursor = %d, want 1", app.exportCursor)
	}

	m, _ = app.Update(tea.KeyMsg{Type: tea.KeyDown})
	app = m.(App)
	if app.exportCursor != 1 {
		t.Fatal("cursor should stop at the last format")
	}

	m, _ = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	app = m.(App)
	if app.exportPicking {
		t.Fatal("esc should close the picker")
	}
}

// containsString checks if s contains substr, ignoring ANSI escape codes.
func containsString(s, substr string) bool {
	// ANSI codes don't affect a raw substring check
	return len(s) > 0 && len(substr) > 0 && stringContains(s, substr)
}

func stringContains(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}

// ============================================================
// Key bindings
// ============================================================

func TestKeyMapShortHelp(t *testing.T) {
	bindings := keys.ShortHelp()
	if len(bindings) == 0 {
		t.Fatal("short help should have bindings")
	}
}

func TestKeyMapFullHelp(t *testing.T) {
	groups := keys.FullHelp()
	if len(groups) == 0 {
		t.Fatal("full help should have groups")
	}
	for i, g := range groups {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}

// ============================================================
// Styles (smoke test, just verify they render)
// ============================================================

func TestStylesRender(t *testing.T) {
	styles := []struct {
		name string
		fn   func() string
	}{
		{"activeTab", func() string { return activeTabStyle.Render("test") }},
		{"inactiveTab", func() string { return inactiveTabStyle.Render("test") }},
		{"panel", func() string { return panelStyle.Render("test") }},
		{"activePanel", func() string { return activePanelStyle.Render("test") }},
		{"clock", func() string { return clockStyle.Render("test") }},
		{"clockRunning", func() string { return clockRunningStyle.Render("test") }},
		{"title", func() string { return titleStyle.Render("test") }},
		{"subtitle", func() string { return subtitleStyle.Render("test") }},
		{"accent", func() string { return accentStyle.Render("test") }},
		{"success", func() string { return successStyle.Render("test") }},
		{"warning", func() string { return warningStyle.Render("test") }},
		{"error", func() string { return errorStyle.Render("test") }},
		{"muted", func() string { return mutedStyle.Render("test") }},
		{"highlight", func() string { return highlightStyle.Render("test") }},
		{"header", func() string { return headerStyle.Render("test") }},
		{"footer", func() string { return footerStyle.Render("test") }},
		{"selectedItem", func() string { return selectedItemStyle.Render("test") }},
		{"normalItem", func() string { return normalItemStyle.Render("test") }},
	}

	for _, s := range styles {
		result := s.fn()
		if result == "" {
			t.Fatalf("style %q rendered empty", s.name)
		}
	}
}

func TestCategoryDots(t *testing.T) {
	for _, c := range store.Categories {
		if categoryDot(c) == "" {
			t.Fatalf("empty dot for category %s", c)
		}
	}
	if categoryColor("not-a-category") != colorMuted {
		t.Fatal("unknown category should fall back to muted")
	}
}
