package store

import (
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

const seededKey = "library_seeded"

type seedLibrary struct {
	Categories []struct {
		Name      string   `yaml:"category"`
		Exercises []string `yaml:"exercises"`
	} `yaml:"categories"`
}

// Seed loads the built-in exercise library. It runs once per database: after
// the first load a flag is set, so built-ins the user deletes stay deleted
// on later launches. Returns the number of exercises inserted.
func (s *Store) Seed() (int, error) {
	done, err := s.seeded()
	if err != nil {
		return 0, err
	}
	if done {
		return 0, nil
	}

	var lib seedLibrary
	if err := yaml.Unmarshal(seedYAML, &lib); err != nil {
		return 0, fmt.Errorf("parse seed library: %w", err)
	}

	inserted := 0
	now := time.Now().UTC().Format(time.RFC3339)
	for _, group := range lib.Categories {
		category := Category(group.Name)
		if !category.Valid() {
			return inserted, fmt.Errorf("seed library: unknown category %q", group.Name)
		}
		for _, name := range group.Exercises {
			res, err := s.db.Exec(
				`INSERT OR IGNORE INTO exercises (name, category, custom, created_at) VALUES (?, ?, 0, ?)`,
				name, string(category), now,
			)
			if err != nil {
				return inserted, fmt.Errorf("seed exercise %q: %w", name, err)
			}
			if n, _ := res.RowsAffected(); n > 0 {
				inserted++
			}
		}
	}

	if err := s.SetSetting(seededKey, "1"); err != nil {
		return inserted, err
	}
	return inserted, nil
}

func (s *Store) seeded() (bool, error) {
	var v string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, seededKey).Scan(&v)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read seed flag: %w", err)
	}
	return v == "1", nil
}
