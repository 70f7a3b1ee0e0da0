package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/mbarlow/ironlog/internal/store"
)

func ToCSV(sessions []store.Session, unit, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{
		"Session ID", "Date", "Session", "Duration", "Exercise", "Category",
		"Set", "Weight (" + unit + ")", "Reps", "Volume", "Completed At",
	}); err != nil {
		return err
	}

	// One row per set, grouped the way the session screen displays them.
	for _, ws := range sessions {
		date := ws.StartedAt.Local().Format("2006-01-02")
		dur := ws.FormattedDuration()

		for _, g := range ws.GroupedSets() {
			for _, st := range g.Sets {
				row := []string{
					fmt.Sprintf("%d", ws.ID),
					date,
					ws.Name,
					dur,
					g.ExerciseName,
					string(g.Category),
					fmt.Sprintf("%d", st.SetNumber),
					st.DisplayWeight(),
					fmt.Sprintf("%d", st.Reps),
					store.FormatWeight(st.Volume()),
					st.CompletedAt.Local().Format(time.RFC3339),
				}
				if err := w.Write(row); err != nil {
					return err
				}
			}
		}
	}

	return w.Error()
}
