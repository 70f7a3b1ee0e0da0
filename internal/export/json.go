package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mbarlow/ironlog/internal/store"
)

type jsonExport struct {
	ExportedAt string        `json:"exported_at"`
	WeightUnit string        `json:"weight_unit"`
	Count      int           `json:"count"`
	Sessions   []jsonSession `json:"sessions"`
}

type jsonSession struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	StartedAt   string    `json:"started_at"`
	EndedAt     string    `json:"ended_at,omitempty"`
	Duration    string    `json:"duration,omitempty"`
	TotalVolume float64   `json:"total_volume"`
	Exercises   []string  `json:"exercises"`
	Sets        []jsonSet `json:"sets"`
}

type jsonSet struct {
	Exercise    string  `json:"exercise"`
	Category    string  `json:"category"`
	SetNumber   int     `json:"set_number"`
	Weight      float64 `json:"weight"`
	Reps        int     `json:"reps"`
	Volume      float64 `json:"volume"`
	CompletedAt string  `json:"completed_at"`
}

func ToJSON(sessions []store.Session, unit, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		WeightUnit: unit,
		Count:      len(sessions),
	}

	for _, ws := range sessions {
		endStr := ""
		if ws.EndedAt != nil {
			endStr = ws.EndedAt.Local().Format(time.RFC3339)
		}

		js := jsonSession{
			ID:          ws.ID,
			Name:        ws.Name,
			Notes:       ws.Notes,
			StartedAt:   ws.StartedAt.Local().Format(time.RFC3339),
			EndedAt:     endStr,
			Duration:    ws.FormattedDuration(),
			TotalVolume: ws.TotalVolume(),
			Exercises:   ws.UniqueExercises(),
		}

		for _, g := range ws.GroupedSets() {
			for _, st := range g.Sets {
				js.Sets = append(js.Sets, jsonSet{
					Exercise:    g.ExerciseName,
					Category:    string(g.Category),
					SetNumber:   st.SetNumber,
					Weight:      st.Weight,
					Reps:        st.Reps,
					Volume:      st.Volume(),
					CompletedAt: st.CompletedAt.Local().Format(time.RFC3339),
				})
			}
		}

		export.Sessions = append(export.Sessions, js)
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
