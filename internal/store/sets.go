package store

import (
	"database/sql"
	"fmt"
	"math"
	"strings"
	"time"
)

// AddSet validates and records one performed set in an active session. The
// set number is the count of that exercise's sets already in the session
// plus one, assigned here and never renumbered afterwards.
func (s *Store) AddSet(sessionID int64, exerciseName string, category Category, weight float64, reps int) (*Set, error) {
	exerciseName = strings.TrimSpace(exerciseName)
	if exerciseName == "" {
		return nil, fmt.Errorf("exercise name is empty")
	}
	if !category.Valid() {
		return nil, fmt.Errorf("unknown category %q", category)
	}
	if reps <= 0 {
		return nil, fmt.Errorf("reps must be positive, got %d", reps)
	}
	if weight < 0 || math.IsNaN(weight) || math.IsInf(weight, 0) {
		return nil, fmt.Errorf("weight must be a non-negative number")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("add set: %w", err)
	}
	defer tx.Rollback()

	var endedAt sql.NullString
	err = tx.QueryRow(`SELECT ended_at FROM workout_sessions WHERE id = ?`, sessionID).Scan(&endedAt)
	if err != nil {
		return nil, fmt.Errorf("add set: session %d: %w", sessionID, err)
	}
	if endedAt.Valid {
		return nil, fmt.Errorf("add set: session %d already ended", sessionID)
	}

	var count int
	err = tx.QueryRow(
		`SELECT COUNT(*) FROM workout_sets WHERE session_id = ? AND exercise_name = ?`,
		sessionID, exerciseName,
	).Scan(&count)
	if err != nil {
		return nil, fmt.Errorf("count sets: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := tx.Exec(
		`INSERT INTO workout_sets (session_id, exercise_name, exercise_category, weight, reps, set_number, completed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sessionID, exerciseName, string(category), weight, reps, count+1, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert set: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("add set: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetSet(id)
}

func (s *Store) GetSet(id int64) (*Set, error) {
	st := &Set{}
	var category, completedAt string
	err := s.db.QueryRow(
		`SELECT id, session_id, exercise_name, exercise_category, weight, reps, set_number, completed_at
		 FROM workout_sets WHERE id = ?`, id,
	).Scan(&st.ID, &st.SessionID, &st.ExerciseName, &category, &st.Weight, &st.Reps, &st.SetNumber, &completedAt)
	if err != nil {
		return nil, fmt.Errorf("get set %d: %w", id, err)
	}
	st.Category = Category(category)
	st.CompletedAt, _ = time.Parse(time.RFC3339Nano, completedAt)
	return st, nil
}

// DeleteSet removes one set. Remaining sets keep their numbers, so deleting
// a middle set leaves a gap.
func (s *Store) DeleteSet(id int64) error {
	_, err := s.db.Exec(`DELETE FROM workout_sets WHERE id = ?`, id)
	return err
}

// ListSets returns the session's sets in insertion order. That order is only
// a deterministic base; display order comes from the session's derived views.
func (s *Store) ListSets(sessionID int64) ([]Set, error) {
	rows, err := s.db.Query(
		`SELECT id, session_id, exercise_name, exercise_category, weight, reps, set_number, completed_at
		 FROM workout_sets WHERE session_id = ? ORDER BY id`, sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("list sets: %w", err)
	}
	defer rows.Close()

	var sets []Set
	for rows.Next() {
		var st Set
		var category, completedAt string
		if err := rows.Scan(&st.ID, &st.SessionID, &st.ExerciseName, &category, &st.Weight, &st.Reps, &st.SetNumber, &completedAt); err != nil {
			return nil, err
		}
		st.Category = Category(category)
		st.CompletedAt, _ = time.Parse(time.RFC3339Nano, completedAt)
		sets = append(sets, st)
	}
	return sets, rows.Err()
}
