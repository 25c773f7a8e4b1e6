package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConsumptionLine una línea del plan: cuánto se tomó de un lote y a qué costo.
type ConsumptionLine struct {
	BatchID     string
	BatchNumber string
	Quantity    int64
	UnitCost    decimal.Decimal
	Remaining   int64 // unidades que quedan en el lote después de aplicar la línea
}

// ConsumptionPlan detalle ordenado (FEFO) de cómo se satisfizo una salida de stock.
type ConsumptionPlan struct {
	ProductID string
	Lines     []ConsumptionLine
}

// TotalQuantity suma de unidades tomadas.
func (p *ConsumptionPlan) TotalQuantity() int64 {
	var total int64
	for _, l := range p.Lines {
		total += l.Quantity
	}
	return total
}

// TotalCost costo de lo consumido: Σ cantidad * costo unitario del lote.
func (p *ConsumptionPlan) TotalCost() decimal.Decimal {
	total := decimal.Zero
	for _, l := range p.Lines {
		total = total.Add(decimal.NewFromInt(l.Quantity).Mul(l.UnitCost))
	}
	return total
}

// AverageUnitCost costo promedio ponderado de lo consumido (0 si el plan está vacío).
func (p *ConsumptionPlan) AverageUnitCost() decimal.Decimal {
	qty := p.TotalQuantity()
	if qty == 0 {
		return decimal.Zero
	}
	return p.TotalCost().Div(decimal.NewFromInt(qty)).Round(4)
}

// ProductStockView agregado derivado (no persistido) de los lotes de un producto.
type ProductStockView struct {
	ProductID        string
	Available        int64
	ActiveBatches    int
	ExhaustedBatches int
	AverageUnitCost  decimal.Decimal
	NextExpiry       *time.Time // vencimiento más próximo entre los lotes activos
}
