package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/maya/internal/store"
)

type jsonExport struct {
	ExportedAt string      `json:"exported_at"`
	Count      int         `json:"count"`
	Entries    []jsonEntry `json:"entries"`
}

type jsonEntry struct {
	ID       string `json:"id"`
	Time     string `json:"time"`
	AmountMl int    `json:"amount_ml"`
}

func ToJSON(entries []store.WaterEntry, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(entries),
	}

	for _, e := range entries {
		export.Entries = append(export.Entries, jsonEntry{
			ID:       e.ID,
			Time:     e.Time().Local().Format(time.RFC3339),
			AmountMl: e.AmountMl,
		})
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
