package ledger

import (
	"sort"

	"github.com/jhoicas/feraben-crm/internal/domain/entity"
)

// SortChronologically ordena en el lugar por fecha; a igual fecha por creación y luego por ID,
// el mismo criterio que el ORDER BY del repositorio. El saldo acumulado de movimientos del
// mismo día depende de este desempate.
func SortChronologically(movs []*entity.Movement) {
	sort.SliceStable(movs, func(i, j int) bool {
		a, b := movs[i], movs[j]
		da, db := civilDate(a.Date), civilDate(b.Date)
		if !da.Equal(db) {
			return da.Before(db)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}
