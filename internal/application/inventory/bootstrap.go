package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/Farmacia-api/internal/domain/inventory"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

// LoadLedger carga en el ledger todos los lotes persistidos. Se llama una vez al iniciar,
// antes de aceptar tráfico. Devuelve el número de lotes cargados.
func LoadLedger(ctx context.Context, repo repository.BatchRepository, ledger *inventory.StockLedger) (int, error) {
	batches, err := repo.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("listar lotes: %w", err)
	}
	if err := ledger.Load(batches); err != nil {
		return 0, err
	}
	return len(batches), nil
}
