package usecase

import (
	"context"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

// TransactionUseCase consulta de transacciones. Los cambios de estado pasan por OrderUseCase.
type TransactionUseCase struct {
	repo repository.TransactionRepository
}

// NewTransactionUseCase construye el caso de uso.
func NewTransactionUseCase(repo repository.TransactionRepository) *TransactionUseCase {
	return &TransactionUseCase{repo: repo}
}

// List lista transacciones, opcionalmente filtradas por tipo.
func (uc *TransactionUseCase) List(ctx context.Context, txnType string, limit, offset int) (*dto.TransactionListResponse, error) {
	if txnType != "" && !entity.IsValidTransactionType(txnType) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.List(ctx, txnType, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransactionResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTransactionResponse(t))
	}
	return &dto.TransactionListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// GetByID obtiene una transacción con sus ítems por lote.
func (uc *TransactionUseCase) GetByID(ctx context.Context, id string) (*dto.TransactionResponse, error) {
	txn, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, domain.ErrNotFound
	}
	return toTransactionResponse(txn), nil
}

func toTransactionResponse(t *entity.Transaction) *dto.TransactionResponse {
	out := &dto.TransactionResponse{
		ID:              t.ID,
		Type:            t.Type,
		ReferenceNumber: t.ReferenceNumber,
		MedicineID:      t.MedicineID,
		Quantity:        t.Quantity,
		TotalAmount:     t.TotalAmount,
		Status:          t.Status,
		CreatedBy:       t.CreatedBy,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
	for _, it := range t.Items {
		out.Items = append(out.Items, dto.TransactionItemResponse{
			BatchID:  it.BatchID,
			Quantity: it.Quantity,
			UnitCost: it.UnitCost,
		})
	}
	return out
}
