package store

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Category buckets exercises by the muscle group or modality they train.
type Category string

const (
	CategoryChest     Category = "chest"
	CategoryBack      Category = "back"
	CategoryShoulders Category = "shoulders"
	CategoryArms      Category = "arms"
	CategoryLegs      Category = "legs"
	CategoryCore      Category = "core"
	CategoryCardio    Category = "cardio"
	CategoryOther     Category = "other"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryChest,
	CategoryBack,
	CategoryShoulders,
	CategoryArms,
	CategoryLegs,
	CategoryCore,
	CategoryCardio,
	CategoryOther,
}

func (c Category) Valid() bool {
	for _, cat := range Categories {
		if c == cat {
			return true
		}
	}
	return false
}

type Exercise struct {
	ID        int64
	Name      string
	Category  Category
	Custom    bool
	CreatedAt time.Time
}

// Set is one performed set. Exercise name and category are copied in at
// creation time, so renaming or deleting a library exercise never rewrites
// history.
type Set struct {
	ID           int64
	SessionID    int64
	ExerciseName string
	Category     Category
	Weight       float64
	Reps         int
	SetNumber    int
	CompletedAt  time.Time
}

// Volume is weight times reps.
func (st Set) Volume() float64 {
	return st.Weight * float64(st.Reps)
}

// DisplayWeight renders the set's weight for lists and exports.
func (st Set) DisplayWeight() string {
	return FormatWeight(st.Weight)
}

// FormatWeight renders whole weights without a decimal point ("225") and
// fractional weights with exactly one decimal digit ("135.5"). Extra
// precision rounds half to even, so 100.25 becomes "100.2".
func FormatWeight(w float64) string {
	if w == math.Trunc(w) {
		return fmt.Sprintf("%.0f", w)
	}
	return fmt.Sprintf("%.1f", w)
}

type Session struct {
	ID        int64
	Name      string
	Notes     string
	StartedAt time.Time
	EndedAt   *time.Time
	Sets      []Set
}

// SetGroup holds one exercise's sets within a session, ordered by set number.
type SetGroup struct {
	ExerciseName string
	Category     Category
	Sets         []Set
}

// IsActive reports whether the session is still running.
func (ws *Session) IsActive() bool {
	return ws.EndedAt == nil
}

// TotalVolume sums weight times reps over every set. Recomputed from the
// current sets on each call; an empty session totals 0.
func (ws *Session) TotalVolume() float64 {
	var total float64
	for _, st := range ws.Sets {
		total += st.Volume()
	}
	return total
}

// UniqueExercises returns exercise names in the order they were first
// performed.
func (ws *Session) UniqueExercises() []string {
	seen := make(map[string]bool)
	var names []string
	for _, st := range sortedByCompletion(ws.Sets) {
		if seen[st.ExerciseName] {
			continue
		}
		seen[st.ExerciseName] = true
		names = append(names, st.ExerciseName)
	}
	return names
}

// GroupedSets buckets the session's sets by exercise. Groups appear in
// first-performed order; within a group, sets are ordered by set number, so
// a set logged out of order still displays in sequence. The group carries
// the category of its first-performed set.
func (ws *Session) GroupedSets() []SetGroup {
	index := make(map[string]int)
	var groups []SetGroup
	for _, st := range sortedByCompletion(ws.Sets) {
		i, ok := index[st.ExerciseName]
		if !ok {
			i = len(groups)
			index[st.ExerciseName] = i
			groups = append(groups, SetGroup{ExerciseName: st.ExerciseName, Category: st.Category})
		}
		groups[i].Sets = append(groups[i].Sets, st)
	}
	for i := range groups {
		sets := groups[i].Sets
		sort.SliceStable(sets, func(a, b int) bool { return sets[a].SetNumber < sets[b].SetNumber })
	}
	return groups
}

// FormattedDuration renders a finished session's length as "45m" or
// "1h 15m", flooring to whole minutes. Active sessions return "".
func (ws *Session) FormattedDuration() string {
	if ws.EndedAt == nil {
		return ""
	}
	mins := int(ws.EndedAt.Sub(ws.StartedAt) / time.Minute)
	if mins < 60 {
		return fmt.Sprintf("%dm", mins)
	}
	return fmt.Sprintf("%dh %dm", mins/60, mins%60)
}

// sortedByCompletion copies sets and stable-sorts the copy by completion
// time ascending. The caller's slice is never reordered, and ties keep
// their stored order.
func sortedByCompletion(sets []Set) []Set {
	out := make([]Set, len(sets))
	copy(out, sets)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CompletedAt.Before(out[j].CompletedAt) })
	return out
}

type Setting struct {
	Key   string
	Value string
}
