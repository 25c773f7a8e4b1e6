package http_test

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

// memDB tablas en memoria compartidas por los repos fake. Run no revierte: en estos tests
// la BD no falla.
type memDB struct {
	mu        sync.Mutex
	medicines map[string]*entity.Medicine
	users     map[string]*entity.User
	batches   map[string]entity.Batch
	txns      map[string]*entity.Transaction
}

func newMemDB() *memDB {
	return &memDB{
		medicines: map[string]*entity.Medicine{},
		users:     map[string]*entity.User{},
		batches:   map[string]entity.Batch{},
		txns:      map[string]*entity.Transaction{},
	}
}

func (db *memDB) Run(_ context.Context, fn func(repository.BatchRepository, repository.TransactionRepository) error) error {
	return fn(memBatches{db}, memTxns{db})
}

// ── medicines ─────────────────────────────────────────────────────────────────

type memMedicines struct{ db *memDB }

func (r memMedicines) Create(_ context.Context, m *entity.Medicine) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	cp := *m
	r.db.medicines[m.ID] = &cp
	return nil
}

func (r memMedicines) GetByID(_ context.Context, id string) (*entity.Medicine, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.db.medicines[id], nil
}

func (r memMedicines) GetByNameAndDosage(_ context.Context, name, dosage string) (*entity.Medicine, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, m := range r.db.medicines {
		if m.Name == name && m.Dosage == dosage {
			return m, nil
		}
	}
	return nil, nil
}

func (r memMedicines) List(_ context.Context, category string, limit, offset int) ([]*entity.Medicine, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*entity.Medicine
	for _, m := range r.db.medicines {
		if category == "" || m.Category == category {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r memMedicines) NamesByIDs(_ context.Context, ids []string) (map[string]string, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := make(map[string]string, len(ids))
	for _, id := range ids {
		if m, ok := r.db.medicines[id]; ok {
			out[id] = m.Name
		}
	}
	return out, nil
}

// ── users ─────────────────────────────────────────────────────────────────────

type memUsers struct{ db *memDB }

func (r memUsers) Create(_ context.Context, u *entity.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	cp := *u
	r.db.users[u.ID] = &cp
	return nil
}

func (r memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.db.users[id], nil
}

func (r memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

// ── batches ───────────────────────────────────────────────────────────────────

type memBatches struct{ db *memDB }

func (r memBatches) Create(_ context.Context, b *entity.Batch) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.batches[b.ID] = *b
	return nil
}

func (r memBatches) DecrementQuantity(_ context.Context, id string, qty int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	b, ok := r.db.batches[id]
	if !ok || b.Quantity < qty {
		return domain.ErrConflict
	}
	b.Quantity -= qty
	r.db.batches[id] = b
	return nil
}

func (r memBatches) GetByID(_ context.Context, id string) (*entity.Batch, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if b, ok := r.db.batches[id]; ok {
		return &b, nil
	}
	return nil, nil
}

func (r memBatches) ListAll(_ context.Context) ([]entity.Batch, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := make([]entity.Batch, 0, len(r.db.batches))
	for _, b := range r.db.batches {
		out = append(out, b)
	}
	return out, nil
}

func (r memBatches) ListByMedicine(ctx context.Context, medicineID string) ([]entity.Batch, error) {
	all, _ := r.ListAll(ctx)
	out := all[:0]
	for _, b := range all {
		if b.ProductID == medicineID {
			out = append(out, b)
		}
	}
	return out, nil
}

// ── transactions ──────────────────────────────────────────────────────────────

type memTxns struct{ db *memDB }

func (r memTxns) Create(_ context.Context, t *entity.Transaction) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	cp := *t
	cp.Items = nil
	r.db.txns[t.ID] = &cp
	return nil
}

func (r memTxns) CreateItems(_ context.Context, items []entity.TransactionItem) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, it := range items {
		if t, ok := r.db.txns[it.TransactionID]; ok {
			t.Items = append(t.Items, it)
		}
	}
	return nil
}

func (r memTxns) GetByID(_ context.Context, id string) (*entity.Transaction, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if t, ok := r.db.txns[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, nil
}

func (r memTxns) List(_ context.Context, txnType string, limit, offset int) ([]*entity.Transaction, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*entity.Transaction
	for _, t := range r.db.txns {
		if txnType == "" || t.Type == txnType {
			cp := *t
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r memTxns) UpdateStatus(_ context.Context, id, from, to string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	t, ok := r.db.txns[id]
	if !ok || t.Status != from {
		return domain.ErrConflict
	}
	t.Status = to
	return nil
}

// ── pdf ───────────────────────────────────────────────────────────────────────

type stubPDF struct{}

func (stubPDF) GenerateExpiryReportPDF(_ context.Context, _ *dto.ExpiryReportDTO) ([]byte, error) {
	return []byte("%PDF-1.3 stub"), nil
}
