package files

import (
	"fmt"

	"github.com/dmitrijs2005/simplefilehost/internal/server/models"
)

// orderClause renders the ORDER BY for a listing. Ties are broken by id so
// equal keys come back in a stable order.
func orderClause(sortBy models.SortBy) (string, error) {
	var col, dir string
	switch sortBy {
	case models.SortNameAsc:
		col, dir = "uf.filename", "ASC"
	case models.SortNameDesc:
		col, dir = "uf.filename", "DESC"
	case models.SortDateAsc:
		col, dir = "uf.uploadDate", "ASC"
	case models.SortDateDesc:
		col, dir = "uf.uploadDate", "DESC"
	case models.SortSizeAsc:
		col, dir = "uf.size", "ASC"
	case models.SortSizeDesc:
		col, dir = "uf.size", "DESC"
	default:
		return "", fmt.Errorf("unsupported sort mode: %s", sortBy)
	}
	return fmt.Sprintf("ORDER BY %s %s, uf.id ASC", col, dir), nil
}

