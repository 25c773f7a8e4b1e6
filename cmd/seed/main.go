// seed puebla el catálogo con medicamentos sintéticos y sus lotes iniciales.
//
// Uso: go run ./cmd/seed [-medicines 1000] [-seed 42] [-dry-run]
// Aplica las migraciones antes de insertar. Cada medicamento se inserta en su propia transacción
// junto con sus lotes y la compra que los registra; los que ya existen (nombre + dosis) se omiten.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Farmacia-api/pkg/config"
	"github.com/jhoicas/Farmacia-api/pkg/logger"
)

func main() {
	count := flag.Int("medicines", 1000, "cantidad de medicamentos a generar")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "semilla del generador")
	dryRun := flag.Bool("dry-run", false, "solo generar e informar totales, sin tocar la BD")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed"})

	if *count <= 0 {
		log.Error().Int("medicines", *count).Msg("-medicines debe ser positivo")
		os.Exit(2)
	}

	now := time.Now()
	items := generate(*count, *seed, now)
	batches, nearExpiry := summarize(items, now)
	log.Info().
		Int("medicines", len(items)).
		Int("batches", batches).
		Int("near_expiry", nearExpiry).
		Uint64("seed", *seed).
		Msg("datos generados")
	if *dryRun {
		return
	}

	if _, err := postgres.MigrateUp(cfg.DB.MigrationURL()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	inserted, skipped := 0, 0
	for _, it := range items {
		err := pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
			return insertItem(ctx, tx, it, now)
		})
		switch {
		case errors.Is(err, domain.ErrDuplicate):
			skipped++
		case err != nil:
			log.Fatal().Err(err).Str("medicine", it.Medicine.Name).Msg("insertar medicamento")
		default:
			inserted++
		}
	}
	log.Info().Int("inserted", inserted).Int("skipped", skipped).Msg("semilla completada")
}

// insertItem escribe medicamento, lotes y la compra de cada lote con los repositorios sobre tx.
func insertItem(ctx context.Context, tx pgx.Tx, it seedItem, now time.Time) error {
	medicines := postgres.NewMedicineRepository(tx)
	batchRepo := postgres.NewBatchRepository(tx)
	txnRepo := postgres.NewTransactionRepository(tx)

	if err := medicines.Create(ctx, &it.Medicine); err != nil {
		return err
	}
	for i := range it.Batches {
		b := &it.Batches[i]
		if err := batchRepo.Create(ctx, b); err != nil {
			return err
		}
		txn := &entity.Transaction{
			ID:              uuid.New().String(),
			Type:            entity.TransactionTypePurchase,
			ReferenceNumber: b.BatchNumber,
			MedicineID:      b.ProductID,
			Quantity:        b.Quantity,
			TotalAmount:     decimal.NewFromInt(b.Quantity).Mul(b.UnitCost),
			Status:          entity.TransactionStatusCompleted,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := txnRepo.Create(ctx, txn); err != nil {
			return err
		}
		if err := txnRepo.CreateItems(ctx, []entity.TransactionItem{{
			TransactionID: txn.ID, BatchID: b.ID, Quantity: b.Quantity, UnitCost: b.UnitCost,
		}}); err != nil {
			return err
		}
	}
	return nil
}

// summarize total de lotes y cuántos vencen en 90 días o menos.
func summarize(items []seedItem, now time.Time) (batches, nearExpiry int) {
	limit := entity.DateOf(now).AddDate(0, 0, 90)
	for _, it := range items {
		for _, b := range it.Batches {
			batches++
			if !b.ExpiryDate.After(limit) {
				nearExpiry++
			}
		}
	}
	return batches, nearExpiry
}
