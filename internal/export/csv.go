package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/jkallio/pomodoro-cli/internal/store"
)

func ToCSV(sessions []store.Session, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"Run", "Message", "Start", "End", "Planned (s)", "Elapsed (s)", "Elapsed", "Completed"}); err != nil {
		return err
	}

	for _, s := range sessions {
		e := newEntry(s)
		row := []string{
			e.RunID,
			e.Message,
			e.StartedAt,
			e.EndedAt,
			strconv.FormatInt(e.PlannedSec, 10),
			strconv.FormatInt(e.ElapsedSec, 10),
			e.Elapsed,
			strconv.FormatBool(e.Completed),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
