package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// CostCalculator implementa la lógica de costo promedio ponderado (servicio de dominio).
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
func CostCalculator(stockActual, costoActual, cantEntrada, costoEntrada decimal.Decimal) decimal.Decimal {
	sum := stockActual.Add(cantEntrada)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := stockActual.Mul(costoActual).Add(cantEntrada.Mul(costoEntrada))
	return num.Div(sum)
}

// AverageCost pliega CostCalculator sobre los lotes activos: costo promedio ponderado del stock disponible.
// Los lotes agotados no aportan. Devuelve 0 si no hay stock.
func AverageCost(batches []entity.Batch) decimal.Decimal {
	stock := decimal.Zero
	cost := decimal.Zero
	for _, b := range batches {
		if !b.IsActive() {
			continue
		}
		qty := decimal.NewFromInt(b.Quantity)
		cost = CostCalculator(stock, cost, qty, b.UnitCost)
		stock = stock.Add(qty)
	}
	return cost.Round(4)
}
