package inventory

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// StockLedger es dueño de los lotes de cada producto y de su campo Quantity.
// Entradas y salidas de un mismo producto se serializan con el mutex del producto;
// productos distintos no compiten entre sí (el RWMutex del mapa solo protege la búsqueda/alta del libro).
type StockLedger struct {
	mu    sync.RWMutex
	books map[string]*productBook
	newID func() string
	now   func() time.Time
}

// productBook lotes de un producto, siempre en orden FEFO.
type productBook struct {
	mu      sync.Mutex
	batches []*entity.Batch
}

// Option configura el ledger.
type Option func(*StockLedger)

// WithIDGenerator reemplaza el generador de IDs de lote (por defecto UUID v4).
func WithIDGenerator(fn func() string) Option {
	return func(l *StockLedger) { l.newID = fn }
}

// WithClock reemplaza el reloj usado como fecha de recepción por defecto.
func WithClock(fn func() time.Time) Option {
	return func(l *StockLedger) { l.now = fn }
}

// NewStockLedger construye un ledger vacío. Se carga con Load al iniciar la aplicación.
func NewStockLedger(opts ...Option) *StockLedger {
	l := &StockLedger{
		books: make(map[string]*productBook),
		newID: func() string { return uuid.New().String() },
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// SupplyInput datos de una recepción de mercancía.
type SupplyInput struct {
	ProductID    string
	BatchNumber  string // opcional; se genera si viene vacío
	Quantity     int64
	UnitCost     decimal.Decimal
	ExpiryDate   time.Time
	ReceivedDate time.Time // opcional; hoy si viene en cero
}

// Load incorpora lotes ya persistidos. Valida todo el lote de entrada antes de tocar el estado:
// si un registro es inválido no se carga ninguno y se devuelve ErrInvalidBatch.
func (l *StockLedger) Load(batches []entity.Batch) error {
	seen := make(map[string]struct{}, len(batches))
	l.mu.RLock()
	for _, book := range l.books {
		book.mu.Lock()
		for _, b := range book.batches {
			seen[b.ID] = struct{}{}
		}
		book.mu.Unlock()
	}
	l.mu.RUnlock()

	for i, b := range batches {
		if err := validateLoaded(b); err != nil {
			return fmt.Errorf("%w: registro %d (%s): %s", domain.ErrInvalidBatch, i, b.ID, err.Error())
		}
		if _, dup := seen[b.ID]; dup {
			return fmt.Errorf("%w: id duplicado %s", domain.ErrInvalidBatch, b.ID)
		}
		seen[b.ID] = struct{}{}
	}

	for _, b := range batches {
		nb := b
		nb.ExpiryDate = entity.DateOf(b.ExpiryDate)
		nb.ReceivedDate = entity.DateOf(b.ReceivedDate)
		book := l.book(nb.ProductID, true)
		book.mu.Lock()
		book.batches = insertFEFO(book.batches, &nb)
		book.mu.Unlock()
	}
	return nil
}

func validateLoaded(b entity.Batch) error {
	switch {
	case strings.TrimSpace(b.ID) == "":
		return fmt.Errorf("id vacío")
	case strings.TrimSpace(b.ProductID) == "":
		return fmt.Errorf("product_id vacío")
	case b.Quantity < 0:
		return fmt.Errorf("cantidad negativa")
	case b.UnitCost.IsNegative():
		return fmt.Errorf("costo negativo")
	case b.ExpiryDate.IsZero():
		return fmt.Errorf("sin fecha de vencimiento")
	case b.ReceivedDate.IsZero():
		return fmt.Errorf("sin fecha de recepción")
	}
	return nil
}

// ReceiveSupply crea un lote nuevo y devuelve su ID.
func (l *StockLedger) ReceiveSupply(in SupplyInput) (string, error) {
	b, err := l.ReceiveSupplyAndCommit(in, nil)
	if err != nil {
		return "", err
	}
	return b.ID, nil
}

// ReceiveSupplyAndCommit crea el lote y, con el libro del producto bloqueado, llama commit antes de
// incorporarlo. Si commit falla el ledger queda intacto y se devuelve ese error.
// commit puede ser nil.
func (l *StockLedger) ReceiveSupplyAndCommit(in SupplyInput, commit func(entity.Batch) error) (*entity.Batch, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if in.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidCost
	}
	if strings.TrimSpace(in.ProductID) == "" || in.ExpiryDate.IsZero() {
		return nil, domain.ErrInvalidInput
	}

	now := l.now()
	received := in.ReceivedDate
	if received.IsZero() {
		received = now
	}
	batch := &entity.Batch{
		ID:           l.newID(),
		ProductID:    in.ProductID,
		BatchNumber:  strings.TrimSpace(in.BatchNumber),
		Quantity:     in.Quantity,
		UnitCost:     in.UnitCost,
		ExpiryDate:   entity.DateOf(in.ExpiryDate),
		ReceivedDate: entity.DateOf(received),
		CreatedAt:    now,
	}
	if batch.BatchNumber == "" {
		batch.BatchNumber = defaultBatchNumber(batch)
	}

	book := l.book(in.ProductID, true)
	book.mu.Lock()
	defer book.mu.Unlock()

	for _, b := range book.batches {
		if b.ID == batch.ID {
			return nil, fmt.Errorf("%w: id duplicado %s", domain.ErrInvalidBatch, batch.ID)
		}
	}
	if commit != nil {
		if err := commit(*batch); err != nil {
			return nil, err
		}
	}
	book.batches = insertFEFO(book.batches, batch)
	out := *batch
	return &out, nil
}

// defaultBatchNumber BAT<aaaammdd>-<8 primeros caracteres del id>.
func defaultBatchNumber(b *entity.Batch) string {
	suffix := strings.ReplaceAll(b.ID, "-", "")
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	return "BAT" + b.ReceivedDate.Format("20060102") + "-" + strings.ToUpper(suffix)
}

// Consume descuenta qty unidades del producto en orden FEFO y devuelve el plan aplicado.
func (l *StockLedger) Consume(productID string, qty int64) (*entity.ConsumptionPlan, error) {
	return l.ConsumeAndCommit(productID, qty, nil)
}

// ConsumeAndCommit calcula el plan FEFO con el libro del producto bloqueado, llama commit con el plan y
// solo si commit devuelve nil aplica los descuentos. Es todo o nada:
//   - ErrInvalidQuantity si qty <= 0.
//   - ErrUnknownProduct si el producto nunca tuvo lotes.
//   - ErrInsufficientStock si el disponible total es menor que qty (ningún lote se modifica).
//   - el error de commit, sin cambios en el ledger.
func (l *StockLedger) ConsumeAndCommit(productID string, qty int64, commit func(*entity.ConsumptionPlan) error) (*entity.ConsumptionPlan, error) {
	if qty <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	book := l.book(productID, false)
	if book == nil {
		return nil, domain.ErrUnknownProduct
	}
	book.mu.Lock()
	defer book.mu.Unlock()

	if len(book.batches) == 0 {
		return nil, domain.ErrUnknownProduct
	}
	if available(book.batches) < qty {
		return nil, domain.ErrInsufficientStock
	}

	plan := &entity.ConsumptionPlan{ProductID: productID}
	targets := make([]*entity.Batch, 0, len(book.batches))
	remaining := qty
	for _, b := range book.batches {
		if remaining == 0 {
			break
		}
		if b.Quantity <= 0 {
			continue
		}
		taken := min(remaining, b.Quantity)
		plan.Lines = append(plan.Lines, entity.ConsumptionLine{
			BatchID:     b.ID,
			BatchNumber: b.BatchNumber,
			Quantity:    taken,
			UnitCost:    b.UnitCost,
			Remaining:   b.Quantity - taken,
		})
		targets = append(targets, b)
		remaining -= taken
	}

	if commit != nil {
		staged := clonePlan(plan)
		if err := commit(staged); err != nil {
			return nil, err
		}
	}
	for i, line := range plan.Lines {
		targets[i].Quantity -= line.Quantity
	}
	return plan, nil
}

// AvailableQuantity suma de Quantity de los lotes activos del producto; 0 si es desconocido.
func (l *StockLedger) AvailableQuantity(productID string) int64 {
	book := l.book(productID, false)
	if book == nil {
		return 0
	}
	book.mu.Lock()
	defer book.mu.Unlock()
	return available(book.batches)
}

// ListBatches copia de los lotes del producto en orden FEFO, incluidos los agotados.
func (l *StockLedger) ListBatches(productID string) []entity.Batch {
	book := l.book(productID, false)
	if book == nil {
		return []entity.Batch{}
	}
	book.mu.Lock()
	defer book.mu.Unlock()
	out := make([]entity.Batch, len(book.batches))
	for i, b := range book.batches {
		out[i] = *b
	}
	return out
}

// StockView agregado de stock del producto.
func (l *StockLedger) StockView(productID string) entity.ProductStockView {
	batches := l.ListBatches(productID)
	view := entity.ProductStockView{
		ProductID:       productID,
		AverageUnitCost: AverageCost(batches),
	}
	for _, b := range batches {
		if !b.IsActive() {
			view.ExhaustedBatches++
			continue
		}
		view.ActiveBatches++
		view.Available += b.Quantity
		if view.NextExpiry == nil {
			exp := b.ExpiryDate
			view.NextExpiry = &exp
		}
	}
	return view
}

// ProductIDs productos con al menos un lote registrado, ordenados.
func (l *StockLedger) ProductIDs() []string {
	l.mu.RLock()
	books := make(map[string]*productBook, len(l.books))
	for id, book := range l.books {
		books[id] = book
	}
	l.mu.RUnlock()

	ids := make([]string, 0, len(books))
	for id, book := range books {
		book.mu.Lock()
		n := len(book.batches)
		book.mu.Unlock()
		if n > 0 {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

func (l *StockLedger) book(productID string, create bool) *productBook {
	l.mu.RLock()
	book, ok := l.books[productID]
	l.mu.RUnlock()
	if ok || !create {
		return book
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if book, ok = l.books[productID]; ok {
		return book
	}
	book = &productBook{}
	l.books[productID] = book
	return book
}

func available(batches []*entity.Batch) int64 {
	var total int64
	for _, b := range batches {
		if b.Quantity > 0 {
			total += b.Quantity
		}
	}
	return total
}

func clonePlan(p *entity.ConsumptionPlan) *entity.ConsumptionPlan {
	lines := make([]entity.ConsumptionLine, len(p.Lines))
	copy(lines, p.Lines)
	return &entity.ConsumptionPlan{ProductID: p.ProductID, Lines: lines}
}
