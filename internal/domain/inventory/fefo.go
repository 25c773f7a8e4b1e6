package inventory

import (
	"sort"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// LessFEFO orden total First-Expiry-First-Out: vencimiento ascendente, luego fecha de recepción
// ascendente y por último ID ascendente, para que el orden no dependa del orden de inserción.
func LessFEFO(a, b entity.Batch) bool {
	if !a.ExpiryDate.Equal(b.ExpiryDate) {
		return a.ExpiryDate.Before(b.ExpiryDate)
	}
	if !a.ReceivedDate.Equal(b.ReceivedDate) {
		return a.ReceivedDate.Before(b.ReceivedDate)
	}
	return a.ID < b.ID
}

// SortFEFO ordena los lotes in-place según LessFEFO.
func SortFEFO(batches []entity.Batch) {
	sort.SliceStable(batches, func(i, j int) bool {
		return LessFEFO(batches[i], batches[j])
	})
}

// insertFEFO inserta b en la posición que mantiene el slice ordenado.
func insertFEFO(batches []*entity.Batch, b *entity.Batch) []*entity.Batch {
	i := sort.Search(len(batches), func(i int) bool {
		return LessFEFO(*b, *batches[i])
	})
	batches = append(batches, nil)
	copy(batches[i+1:], batches[i:])
	batches[i] = b
	return batches
}
