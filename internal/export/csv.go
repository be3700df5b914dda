package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/maya/internal/store"
)

func ToCSV(entries []store.WaterEntry, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"ID", "Time", "Amount (ml)"}); err != nil {
		return err
	}

	for _, e := range entries {
		row := []string{
			e.ID,
			e.Time().Local().Format(time.RFC3339),
			fmt.Sprintf("%d", e.AmountMl),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
