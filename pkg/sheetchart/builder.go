package sheetchart

import (
	"time"

	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/models"
)

// Build converts decoder output into a Dataset.
//
// Columns are the keys of the first row in order and are never revisited:
// later rows with extra or missing keys keep them as-is. An empty input
// yields a Dataset with no columns and no rows.
func Build(rawRows []models.Row, fileName string) *models.Dataset {
	return buildAt(rawRows, fileName, time.Now())
}

func buildAt(rawRows []models.Row, fileName string, ingestedAt time.Time) *models.Dataset {
	var columns []string
	if len(rawRows) > 0 {
		columns = rawRows[0].Keys()
	}
	return models.NewDataset(fileName, columns, rawRows, ingestedAt)
}
