package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jkallio/pomodoro-cli/internal/store"
)

func ToJSON(sessions []store.Session, path string) error {
	data, err := json.MarshalIndent(newDocument(sessions), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
