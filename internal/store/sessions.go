package store

import (
	"database/sql"
	"fmt"
	"time"
)

func (s *Store) StartSession(name string) (*Session, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO workout_sessions (name, started_at) VALUES (?, ?)`,
		name, now,
	)
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetSession(id)
}

func (s *Store) GetSession(id int64) (*Session, error) {
	ws := &Session{}
	var startedAt string
	var endedAt sql.NullString
	err := s.db.QueryRow(
		`SELECT id, name, notes, started_at, ended_at FROM workout_sessions WHERE id = ?`, id,
	).Scan(&ws.ID, &ws.Name, &ws.Notes, &startedAt, &endedAt)
	if err != nil {
		return nil, fmt.Errorf("get session %d: %w", id, err)
	}
	ws.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
	if endedAt.Valid {
		t, _ := time.Parse(time.RFC3339, endedAt.String)
		ws.EndedAt = &t
	}
	sets, err := s.ListSets(id)
	if err != nil {
		return nil, err
	}
	ws.Sets = sets
	return ws, nil
}

// GetActiveSession returns the running session, or (nil, nil) when there is
// none. If several are somehow active, the latest wins.
func (s *Store) GetActiveSession() (*Session, error) {
	var id int64
	err := s.db.QueryRow(
		`SELECT id FROM workout_sessions WHERE ended_at IS NULL ORDER BY id DESC LIMIT 1`,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get active session: %w", err)
	}
	return s.GetSession(id)
}

// FinishSession stamps the session's end time. A session ends exactly once:
// finishing a missing or already-ended session is an error.
func (s *Store) FinishSession(id int64) (*Session, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`UPDATE workout_sessions SET ended_at = ? WHERE id = ? AND ended_at IS NULL`,
		now, id,
	)
	if err != nil {
		return nil, fmt.Errorf("finish session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("finish session %d: not active", id)
	}
	return s.GetSession(id)
}

func (s *Store) UpdateSessionName(id int64, name string) error {
	_, err := s.db.Exec(`UPDATE workout_sessions SET name = ? WHERE id = ?`, name, id)
	return err
}

func (s *Store) UpdateSessionNotes(id int64, notes string) error {
	_, err := s.db.Exec(`UPDATE workout_sessions SET notes = ? WHERE id = ?`, notes, id)
	return err
}

// DeleteSession removes the session and all of its sets in one transaction,
// so a half-deleted workout is never observable.
func (s *Store) DeleteSession(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM workout_sets WHERE session_id = ?`, id); err != nil {
		return fmt.Errorf("delete session sets: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM workout_sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete session %d: %w", id, err)
	}
	return tx.Commit()
}

// ListSessions returns every session newest first, each with its sets
// attached.
func (s *Store) ListSessions() ([]Session, error) {
	rows, err := s.db.Query(
		`SELECT id, name, notes, started_at, ended_at FROM workout_sessions ORDER BY started_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var ws Session
		var startedAt string
		var endedAt sql.NullString
		if err := rows.Scan(&ws.ID, &ws.Name, &ws.Notes, &startedAt, &endedAt); err != nil {
			return nil, err
		}
		ws.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
		if endedAt.Valid {
			t, _ := time.Parse(time.RFC3339, endedAt.String)
			ws.EndedAt = &t
		}
		sessions = append(sessions, ws)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	setRows, err := s.db.Query(
		`SELECT id, session_id, exercise_name, exercise_category, weight, reps, set_number, completed_at
		 FROM workout_sets ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list session sets: %w", err)
	}
	defer setRows.Close()

	bySession := make(map[int64][]Set)
	for setRows.Next() {
		var st Set
		var category, completedAt string
		if err := setRows.Scan(&st.ID, &st.SessionID, &st.ExerciseName, &category, &st.Weight, &st.Reps, &st.SetNumber, &completedAt); err != nil {
			return nil, err
		}
		st.Category = Category(category)
		st.CompletedAt, _ = time.Parse(time.RFC3339Nano, completedAt)
		bySession[st.SessionID] = append(bySession[st.SessionID], st)
	}
	if err := setRows.Err(); err != nil {
		return nil, err
	}

	for i := range sessions {
		sessions[i].Sets = bySession[sessions[i].ID]
	}
	return sessions, nil
}
