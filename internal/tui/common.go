package tui

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mbarlow/ironlog/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewWorkout viewState = iota
	viewHistory
	viewLibrary
	viewSettings
)

var viewNames = []string{"Workout", "History", "Library", "Settings"}

// --- Messages ---

type sessionStartedMsg struct {
	session *store.Session
}

type sessionFinishedMsg struct {
	session *store.Session
}

type sessionDiscardedMsg struct{}

type setLoggedMsg struct {
	set *store.Set
}

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

// formatClock renders a live duration as HH:MM:SS.
func formatClock(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// parseWeight parses user input for a set's weight. Zero is allowed
// (bodyweight work); negatives and non-finite values are not.
func parseWeight(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("weight is required")
	}
	w, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(w) || math.IsInf(w, 0) {
		return 0, errors.New("weight must be a number")
	}
	if w < 0 {
		return 0, errors.New("weight cannot be negative")
	}
	return w, nil
}

// parseReps parses user input for a set's rep count.
func parseReps(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("reps are required")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.New("reps must be a whole number")
	}
	if n <= 0 {
		return 0, errors.New("reps must be at least 1")
	}
	return n, nil
}

func validateWeight(s string) error {
	_, err := parseWeight(s)
	return err
}

func validateReps(s string) error {
	_, err := parseReps(s)
	return err
}

// filterExercises keeps entries whose name contains the query,
// case-insensitively. An empty query keeps everything.
func filterExercises(exercises []store.Exercise, query string) []store.Exercise {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return exercises
	}
	var out []store.Exercise
	for _, e := range exercises {
		if strings.Contains(strings.ToLower(e.Name), query) {
			out = append(out, e)
		}
	}
	return out
}

// windowBounds returns the half-open index range of list rows to draw so
// the cursor stays visible when the list is taller than the viewport.
func windowBounds(count, cursor, size int) (int, int) {
	if size <= 0 || count <= size {
		return 0, count
	}
	start := cursor - size/2
	if start < 0 {
		start = 0
	}
	if start+size > count {
		start = count - size
	}
	return start, start + size
}

// sessionLabel names a session for lists and messages, falling back to the
// start date for unnamed workouts.
func sessionLabel(ws store.Session) string {
	if ws.Name != "" {
		return ws.Name
	}
	return ws.StartedAt.Local().Format("Jan 2") + " workout"
}

func errorStatus(err error) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
