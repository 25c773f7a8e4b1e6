package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Farmacia-api/internal/application/analytics"
	"github.com/jhoicas/Farmacia-api/internal/application/auth"
	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	appinv "github.com/jhoicas/Farmacia-api/internal/application/inventory"
	"github.com/jhoicas/Farmacia-api/internal/application/usecase"
	"github.com/jhoicas/Farmacia-api/internal/domain/inventory"
	apphttp "github.com/jhoicas/Farmacia-api/internal/interfaces/http"
)

type apiFixture struct {
	app *fiber.App
	db  *memDB
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	return newAPIWithEvents(t, nil)
}

func newAPIWithEvents(t *testing.T, events appinv.StockEventSubscriber) *apiFixture {
	t.Helper()
	db := newMemDB()
	ledger := inventory.NewStockLedger()
	medicines := memMedicines{db}

	stockUC := appinv.NewStockUseCase(ledger, db, medicines, nil)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:        auth.NewAuthUseCase(memUsers{db}, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		MedicineUC:    usecase.NewMedicineUseCase(medicines),
		StockUC:       stockUC,
		OrderUC:       usecase.NewOrderUseCase(stockUC, memTxns{db}, medicines),
		ExpiryUC:      appinv.NewExpiryUseCase(ledger, medicines, stubPDF{}, 30, 90),
		TransactionUC: usecase.NewTransactionUseCase(memTxns{db}),
		UserUC:        usecase.NewUserUseCase(memUsers{db}),
		DashboardUC:   analytics.NewDashboardUseCase(ledger, medicines, 100, 30),
		StockEvents:   events,
		JWTSecret:     testJWTSecret,
	})
	return &apiFixture{app: app, db: db}
}

// call envía la petición con un token del rol indicado (sin token si role es vacío).
func (f *apiFixture) call(t *testing.T, method, path, role string, body any) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func (f *apiFixture) createMedicine(t *testing.T, name string) string {
	t.Helper()
	status, body := f.call(t, http.MethodPost, "/api/medicines", "admin", map[string]any{
		"name": name, "manufacturer": "pharmacorp", "category": "analgésicos",
		"dosage": "500mg", "unit": "tablet", "unit_price": "4.00",
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	var med dto.MedicineResponse
	require.NoError(t, json.Unmarshal(body, &med))
	return med.ID
}

func (f *apiFixture) receive(t *testing.T, medID string, qty int, cost string, daysAhead int) dto.ReceiveSupplyResponse {
	t.Helper()
	status, body := f.call(t, http.MethodPost, "/api/medicines/"+medID+"/batches", "supplier", map[string]any{
		"quantity":    qty,
		"unit_cost":   cost,
		"expiry_date": time.Now().AddDate(0, 0, daysAhead).Format("2006-01-02"),
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	var out dto.ReceiveSupplyResponse
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &e), string(body))
	return e.Code
}

// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_CrearMedicamento_SoloAdmin(t *testing.T) {
	f := newAPI(t)
	id := f.createMedicine(t, "Paracetamol")
	assert.NotEmpty(t, id)

	status, body := f.call(t, http.MethodPost, "/api/medicines", "retailer", map[string]any{"name": "X"})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", errorCode(t, body))

	status, body = f.call(t, http.MethodGet, "/api/medicines/"+id, "retailer", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), "Pharmacorp")
}

func TestAPI_CrearMedicamento_Validacion(t *testing.T) {
	f := newAPI(t)
	status, body := f.call(t, http.MethodPost, "/api/medicines", "admin", map[string]any{
		"name": "Paracetamol", "manufacturer": "x", "category": "y", "dosage": "500mg", "unit": "bolsa",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", errorCode(t, body))
	assert.Contains(t, string(body), "unit")

	f.createMedicine(t, "Paracetamol")
	status, body = f.call(t, http.MethodPost, "/api/medicines", "admin", map[string]any{
		"name": "Paracetamol", "manufacturer": "x", "category": "y", "dosage": "500mg", "unit": "tablet",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "DUPLICATE", errorCode(t, body))
}

func TestAPI_VentaFEFO(t *testing.T) {
	f := newAPI(t)
	medID := f.createMedicine(t, "Paracetamol")
	later := f.receive(t, medID, 100, "2.50", 200)
	sooner := f.receive(t, medID, 50, "2.75", 40)
	assert.EqualValues(t, 150, sooner.Available)

	status, body := f.call(t, http.MethodPost, "/api/medicines/"+medID+"/sales", "retailer", map[string]any{"quantity": 70})
	require.Equal(t, http.StatusCreated, status, string(body))

	var sale dto.SaleResponse
	require.NoError(t, json.Unmarshal(body, &sale))
	assert.EqualValues(t, 70, sale.Quantity)
	require.Len(t, sale.Plan, 2)
	assert.Equal(t, sooner.BatchID, sale.Plan[0].BatchID)
	assert.EqualValues(t, 50, sale.Plan[0].Quantity)
	assert.EqualValues(t, 0, sale.Plan[0].Remaining)
	assert.Equal(t, later.BatchID, sale.Plan[1].BatchID)
	assert.EqualValues(t, 20, sale.Plan[1].Quantity)
	assert.Equal(t, "280", sale.TotalAmount.String())
	assert.Equal(t, "187.5", sale.TotalCost.String())

	status, body = f.call(t, http.MethodGet, "/api/medicines/"+medID+"/stock", "retailer", nil)
	require.Equal(t, http.StatusOK, status)
	var stock dto.StockResponse
	require.NoError(t, json.Unmarshal(body, &stock))
	assert.EqualValues(t, 80, stock.Available)
	assert.Equal(t, 1, stock.ActiveBatches)
	assert.Equal(t, 1, stock.ExhaustedBatches)
	require.NotNil(t, stock.NextExpiry)

	status, body = f.call(t, http.MethodGet, "/api/medicines/"+medID+"/batches?active=true", "retailer", nil)
	require.Equal(t, http.StatusOK, status)
	var batches []dto.BatchResponse
	require.NoError(t, json.Unmarshal(body, &batches))
	require.Len(t, batches, 1)
	assert.Equal(t, later.BatchID, batches[0].ID)
	assert.Equal(t, "active", batches[0].State)

	// persistido
	assert.EqualValues(t, 0, f.db.batches[sooner.BatchID].Quantity)
	assert.EqualValues(t, 80, f.db.batches[later.BatchID].Quantity)
}

func TestAPI_VentaErrores(t *testing.T) {
	f := newAPI(t)
	medID := f.createMedicine(t, "Ibuprofeno")
	path := "/api/medicines/" + medID + "/sales"

	status, body := f.call(t, http.MethodPost, path, "retailer", map[string]any{"quantity": 5})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "UNKNOWN_PRODUCT", errorCode(t, body))

	f.receive(t, medID, 10, "1.00", 100)

	status, body = f.call(t, http.MethodPost, path, "retailer", map[string]any{"quantity": 11})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", errorCode(t, body))

	for _, q := range []any{0, -3, "1.5"} {
		status, body = f.call(t, http.MethodPost, path, "retailer", map[string]any{"quantity": q})
		assert.Equal(t, http.StatusBadRequest, status, "quantity=%v", q)
		assert.Equal(t, "INVALID_QUANTITY", errorCode(t, body))
	}

	status, _ = f.call(t, http.MethodPost, path, "supplier", map[string]any{"quantity": 1})
	assert.Equal(t, http.StatusForbidden, status)

	status, body = f.call(t, http.MethodPost, "/api/medicines/no-existe/sales", "retailer", map[string]any{"quantity": 1})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", errorCode(t, body))

	// nada cambió
	status, body = f.call(t, http.MethodGet, "/api/medicines/"+medID+"/stock", "admin", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"available":10`)
}

func TestAPI_EntradaErrores(t *testing.T) {
	f := newAPI(t)
	medID := f.createMedicine(t, "Amoxicilina")
	path := "/api/medicines/" + medID + "/batches"

	status, body := f.call(t, http.MethodPost, path, "supplier", map[string]any{"quantity": 10, "unit_cost": "1", "expiry_date": "31/12/2025"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", errorCode(t, body))

	status, body = f.call(t, http.MethodPost, path, "supplier", map[string]any{"quantity": 10, "unit_cost": "-1", "expiry_date": "2030-01-01"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_COST", errorCode(t, body))

	status, body = f.call(t, http.MethodPost, path, "supplier", map[string]any{"quantity": 0, "unit_cost": "1", "expiry_date": "2030-01-01"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_QUANTITY", errorCode(t, body))

	status, _ = f.call(t, http.MethodPost, path, "retailer", map[string]any{"quantity": 1, "unit_cost": "1", "expiry_date": "2030-01-01"})
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = f.call(t, http.MethodGet, "/api/medicines/no-existe/batches", "admin", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAPI_ReporteDeVencimientos(t *testing.T) {
	f := newAPI(t)
	medID := f.createMedicine(t, "Loratadina")
	f.receive(t, medID, 10, "1.00", 10)
	f.receive(t, medID, 10, "1.00", 60)
	f.receive(t, medID, 10, "1.00", 365)

	status, body := f.call(t, http.MethodGet, "/api/inventory/expiry-report", "retailer", nil)
	require.Equal(t, http.StatusOK, status)
	var report dto.ExpiryReportDTO
	require.NoError(t, json.Unmarshal(body, &report))
	assert.Equal(t, dto.ExpiryCountsDTO{Critical: 1, Warning: 1, Safe: 1}, report.Counts)
	require.Len(t, report.Items, 3)
	assert.Equal(t, "Loratadina", report.Items[0].MedicineName)
	assert.Equal(t, "critical", report.Items[0].Status)

	status, body = f.call(t, http.MethodGet, "/api/inventory/dashboard", "supplier", nil)
	require.Equal(t, http.StatusOK, status)
	var dash dto.InventoryDashboardDTO
	require.NoError(t, json.Unmarshal(body, &dash))
	assert.EqualValues(t, 30, dash.TotalUnits)
	assert.Equal(t, 1, dash.CriticalBatches)
	require.Len(t, dash.LowStock, 1)
	assert.Equal(t, "Loratadina", dash.LowStock[0].MedicineName)

	status, _ = f.call(t, http.MethodGet, "/api/inventory/expiry-report/pdf", "retailer", nil)
	assert.Equal(t, http.StatusForbidden, status)

	req := httptest.NewRequest(http.MethodGet, "/api/inventory/expiry-report/pdf", nil)
	req.Header.Set("Authorization", tokenForRole(t, "admin"))
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "vencimientos-")
}

func TestAPI_Transacciones(t *testing.T) {
	f := newAPI(t)
	medID := f.createMedicine(t, "Omeprazol")
	f.receive(t, medID, 20, "3.00", 120)
	status, body := f.call(t, http.MethodPost, "/api/medicines/"+medID+"/sales", "admin", map[string]any{"quantity": 5, "reference_number": "VTA-1"})
	require.Equal(t, http.StatusCreated, status, string(body))
	var sale dto.SaleResponse
	require.NoError(t, json.Unmarshal(body, &sale))

	status, _ = f.call(t, http.MethodGet, "/api/transactions", "retailer", nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, body = f.call(t, http.MethodGet, "/api/transactions?type=sale", "admin", nil)
	require.Equal(t, http.StatusOK, status)
	var list dto.TransactionListResponse
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list.Items, 1)
	assert.Equal(t, "VTA-1", list.Items[0].ReferenceNumber)

	status, body = f.call(t, http.MethodGet, "/api/transactions?type=regalo", "admin", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", errorCode(t, body))

	status, body = f.call(t, http.MethodGet, "/api/transactions/"+sale.TransactionID, "admin", nil)
	require.Equal(t, http.StatusOK, status)
	var txn dto.TransactionResponse
	require.NoError(t, json.Unmarshal(body, &txn))
	assert.Len(t, txn.Items, 1)
	assert.Equal(t, "completed", txn.Status)

	status, _ = f.call(t, http.MethodGet, "/api/transactions/no-existe", "admin", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func (f *apiFixture) placeOrder(t *testing.T, role string, body map[string]any) dto.TransactionResponse {
	t.Helper()
	status, raw := f.call(t, http.MethodPost, "/api/orders", role, body)
	require.Equal(t, http.StatusCreated, status, string(raw))
	var out dto.TransactionResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func (f *apiFixture) available(t *testing.T, medID string) int64 {
	t.Helper()
	status, raw := f.call(t, http.MethodGet, "/api/medicines/"+medID+"/stock", "retailer", nil)
	require.Equal(t, http.StatusOK, status, string(raw))
	var out dto.StockResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	return out.Available
}

func TestAPI_OrdenDeCompra_AprobarRecibeStock(t *testing.T) {
	f := newAPI(t)
	medID := f.createMedicine(t, "Cetirizina")

	// minorista sin costo: se usa el precio del catálogo (4.00)
	order := f.placeOrder(t, "retailer", map[string]any{"medicine_id": medID, "quantity": 40})
	assert.Equal(t, "pending", order.Status)
	assert.Equal(t, "purchase", order.Type)
	assert.Equal(t, "160", order.TotalAmount.String())
	assert.NotEmpty(t, order.ReferenceNumber)
	assert.Zero(t, f.available(t, medID))

	approvePath := "/api/orders/" + order.ID + "/approve"
	status, _ := f.call(t, http.MethodPost, approvePath, "retailer", map[string]any{"expiry_date": "2030-03-01"})
	assert.Equal(t, http.StatusForbidden, status)

	status, body := f.call(t, http.MethodPost, approvePath, "admin", map[string]any{
		"expiry_date": "2030-03-01", "batch_number": "LOT-A",
	})
	require.Equal(t, http.StatusOK, status, string(body))
	var approval dto.OrderApprovalResponse
	require.NoError(t, json.Unmarshal(body, &approval))
	assert.Equal(t, "completed", approval.Transaction.Status)
	assert.Equal(t, "LOT-A", approval.BatchNumber)
	assert.EqualValues(t, 40, approval.Available)
	require.Len(t, approval.Transaction.Items, 1)
	assert.Equal(t, approval.BatchID, approval.Transaction.Items[0].BatchID)
	assert.Equal(t, "4", approval.Transaction.Items[0].UnitCost.String())

	assert.EqualValues(t, 40, f.available(t, medID))
	status, body = f.call(t, http.MethodGet, "/api/transactions/"+order.ID, "admin", nil)
	require.Equal(t, http.StatusOK, status)
	var stored dto.TransactionResponse
	require.NoError(t, json.Unmarshal(body, &stored))
	assert.Equal(t, "completed", stored.Status)
	assert.Len(t, stored.Items, 1)

	// una orden completada no se aprueba ni se rechaza otra vez
	status, body = f.call(t, http.MethodPost, approvePath, "admin", map[string]any{"expiry_date": "2030-03-01"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INVALID_TRANSITION", errorCode(t, body))
	status, _ = f.call(t, http.MethodPost, "/api/orders/"+order.ID+"/reject", "admin", nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.EqualValues(t, 40, f.available(t, medID))
}

func TestAPI_OrdenDeCompra_Rechazar(t *testing.T) {
	f := newAPI(t)
	medID := f.createMedicine(t, "Diclofenaco")

	order := f.placeOrder(t, "supplier", map[string]any{"medicine_id": medID, "quantity": 25, "unit_cost": "2.10"})
	assert.Equal(t, "52.5", order.TotalAmount.String())

	status, body := f.call(t, http.MethodPost, "/api/orders/"+order.ID+"/reject", "admin", nil)
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Contains(t, string(body), `"status":"cancelled"`)

	status, body = f.call(t, http.MethodPost, "/api/orders/"+order.ID+"/approve", "admin", map[string]any{"expiry_date": "2030-03-01"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INVALID_TRANSITION", errorCode(t, body))
	assert.Zero(t, f.available(t, medID))
}

func TestAPI_OrdenDeCompra_Errores(t *testing.T) {
	f := newAPI(t)
	medID := f.createMedicine(t, "Ranitidina")

	status, body := f.call(t, http.MethodPost, "/api/orders", "retailer", map[string]any{"medicine_id": medID, "quantity": 1.5})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_QUANTITY", errorCode(t, body))

	status, body = f.call(t, http.MethodPost, "/api/orders", "supplier", map[string]any{"medicine_id": medID, "quantity": 3, "unit_cost": "-1"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_COST", errorCode(t, body))

	status, _ = f.call(t, http.MethodPost, "/api/orders", "retailer", map[string]any{"medicine_id": "no-existe", "quantity": 3})
	assert.Equal(t, http.StatusNotFound, status)

	status, body = f.call(t, http.MethodPost, "/api/orders", "retailer", map[string]any{"quantity": 3})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", errorCode(t, body))

	order := f.placeOrder(t, "retailer", map[string]any{"medicine_id": medID, "quantity": 3})
	status, body = f.call(t, http.MethodPost, "/api/orders/"+order.ID+"/approve", "admin", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", errorCode(t, body))

	status, _ = f.call(t, http.MethodPost, "/api/orders/no-existe/approve", "admin", map[string]any{"expiry_date": "2030-03-01"})
	assert.Equal(t, http.StatusNotFound, status)

	// una venta no es una orden de compra
	f.receive(t, medID, 10, "1.00", 200)
	status, body = f.call(t, http.MethodPost, "/api/medicines/"+medID+"/sales", "retailer", map[string]any{"quantity": 2})
	require.Equal(t, http.StatusCreated, status, string(body))
	var sale dto.SaleResponse
	require.NoError(t, json.Unmarshal(body, &sale))
	status, body = f.call(t, http.MethodPost, "/api/orders/"+sale.TransactionID+"/reject", "admin", nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INVALID_TRANSITION", errorCode(t, body))
}

// oneShotEvents entrega los eventos fijados y cierra la suscripción.
type oneShotEvents struct {
	events []appinv.StockReceived
}

func (s oneShotEvents) SubscribeStockReceived(_ context.Context, handler func(appinv.StockReceived)) error {
	for _, ev := range s.events {
		handler(ev)
	}
	return nil
}

func TestAPI_EventosDeStock_SSE(t *testing.T) {
	f := newAPIWithEvents(t, oneShotEvents{events: []appinv.StockReceived{
		{MedicineID: "med-1", BatchID: "b-1", BatchNumber: "LOT-1", Quantity: 12, Available: 12},
		{MedicineID: "med-2", BatchID: "b-2", BatchNumber: "LOT-2", Quantity: 5, Available: 5},
	}})

	status, _ := f.call(t, http.MethodGet, "/api/events/stock", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	req := httptest.NewRequest(http.MethodGet, "/api/events/stock?medicine_id=med-1", nil)
	req.Header.Set("Authorization", tokenForRole(t, "retailer"))
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	stream := string(raw)
	assert.Contains(t, stream, "event: stock.received\n")
	assert.Contains(t, stream, `"batch_id":"b-1"`)
	assert.NotContains(t, stream, `"batch_id":"b-2"`)
}

func TestAPI_EventosDeStock_SinRedis(t *testing.T) {
	f := newAPI(t)
	status, body := f.call(t, http.MethodGet, "/api/events/stock", "admin", nil)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "EVENTS_DISABLED", errorCode(t, body))
}

func TestAPI_RegistroYLogin(t *testing.T) {
	f := newAPI(t)
	status, body := f.call(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email": "Ana@Farmacia.com", "password": "secreto123", "role": "supplier",
	})
	require.Equal(t, http.StatusCreated, status, string(body))

	status, body = f.call(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email": "ana@farmacia.com", "password": "secreto123",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "EMAIL_EXISTS", errorCode(t, body))

	status, body = f.call(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email": "otro@farmacia.com", "password": "corta",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", errorCode(t, body))

	status, body = f.call(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "ana@farmacia.com", "password": "secreto123",
	})
	require.Equal(t, http.StatusOK, status, string(body))
	var login dto.LoginResponse
	require.NoError(t, json.Unmarshal(body, &login))
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, "supplier", login.User.Role)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me dto.UserResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&me))
	assert.Equal(t, "ana@farmacia.com", me.Email)

	status, _ = f.call(t, http.MethodGet, "/api/users/me", "admin", nil)
	assert.Equal(t, http.StatusNotFound, status, "el token de prueba no corresponde a un usuario registrado")

	status, _ = f.call(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "ana@farmacia.com", "password": "incorrecta",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
}
