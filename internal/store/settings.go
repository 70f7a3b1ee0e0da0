package store

import "fmt"

const (
	SettingWeightUnit = "weight_unit"

	WeightUnitKg = "kg"
	WeightUnitLb = "lb"
)

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

func (s *Store) GetAllSettings() ([]Setting, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var s Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

// WeightUnit returns the configured display unit, falling back to kg for a
// missing or unrecognized value. Stored weights are plain numbers; the unit
// is a label only.
func (s *Store) WeightUnit() string {
	v, err := s.GetSetting(SettingWeightUnit)
	if err != nil || (v != WeightUnitKg && v != WeightUnitLb) {
		return WeightUnitKg
	}
	return v
}
