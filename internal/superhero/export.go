package superhero

import (
	"encoding/csv"
	"io"

	"fandomexplorer/pkg/models"
)

var csvHeader = []string{"id", "name", "publisher", "alignment", "image"}

// WriteCSV writes one row per summary after a header row.
func WriteCSV(w io.Writer, items []models.CharacterSummary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, c := range items {
		if err := cw.Write([]string{c.ID, c.Name, c.Publisher, c.Alignment, c.Image}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
