package sheetchart

import "github.com/ukaji3/sheetchart-go/pkg/sheetchart/models"

// ColumnsOf returns the ordered column names of ds for axis selection.
// A nil dataset has no columns.
func ColumnsOf(ds *models.Dataset) []string {
	if ds == nil {
		return []string{}
	}
	return ds.Columns()
}
