package store

import (
	"fmt"
	"strings"
	"time"
)

func (s *Store) CreateExercise(name string, category Category, custom bool) (*Exercise, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("exercise name is empty")
	}
	if !category.Valid() {
		return nil, fmt.Errorf("unknown category %q", category)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO exercises (name, category, custom, created_at) VALUES (?, ?, ?, ?)`,
		name, string(category), custom, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert exercise: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetExercise(id)
}

func (s *Store) GetExercise(id int64) (*Exercise, error) {
	e := &Exercise{}
	var category, createdAt string
	var custom int
	err := s.db.QueryRow(
		`SELECT id, name, category, custom, created_at FROM exercises WHERE id = ?`, id,
	).Scan(&e.ID, &e.Name, &category, &custom, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("get exercise %d: %w", id, err)
	}
	e.Category = Category(category)
	e.Custom = custom == 1
	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return e, nil
}

// ListExercises returns the library sorted by name. An empty category
// returns everything.
func (s *Store) ListExercises(category Category) ([]Exercise, error) {
	query := `SELECT id, name, category, custom, created_at FROM exercises`
	var args []any
	if category != "" {
		query += ` WHERE category = ?`
		args = append(args, string(category))
	}
	query += ` ORDER BY name COLLATE NOCASE`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	defer rows.Close()

	var exercises []Exercise
	for rows.Next() {
		var e Exercise
		var cat, createdAt string
		var custom int
		if err := rows.Scan(&e.ID, &e.Name, &cat, &custom, &createdAt); err != nil {
			return nil, err
		}
		e.Category = Category(cat)
		e.Custom = custom == 1
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		exercises = append(exercises, e)
	}
	return exercises, rows.Err()
}

// UpdateExercise renames an exercise or moves it to another category.
// Already-logged sets carry their own copy of both, so history keeps the
// values that were current when each set was performed.
func (s *Store) UpdateExercise(id int64, name string, category Category) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("exercise name is empty")
	}
	if !category.Valid() {
		return fmt.Errorf("unknown category %q", category)
	}
	_, err := s.db.Exec(
		`UPDATE exercises SET name = ?, category = ? WHERE id = ?`,
		name, string(category), id,
	)
	if err != nil {
		return fmt.Errorf("update exercise %d: %w", id, err)
	}
	return nil
}

// DeleteExercise removes a library entry. Logged sets are untouched.
func (s *Store) DeleteExercise(id int64) error {
	_, err := s.db.Exec(`DELETE FROM exercises WHERE id = ?`, id)
	return err
}
