package inventory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/jhoicas/inventory-movements-api/internal/domain"
	"github.com/jhoicas/inventory-movements-api/internal/domain/entity"
	domaininv "github.com/jhoicas/inventory-movements-api/internal/domain/inventory"
	"github.com/jhoicas/inventory-movements-api/internal/domain/repository"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ReconcileResult stock antes y después de una conciliación.
type ReconcileResult struct {
	ProductID     string
	PreviousStock int
	Stock         int
}

// Drift diferencia entre el stock derivado y el que estaba guardado.
func (r ReconcileResult) Drift() int {
	return r.Stock - r.PreviousStock
}

// ReconcileUseCase recalcula el stock materializado de un producto desde su historial.
type ReconcileUseCase struct {
	txRunner    TxRunner
	movRepo     repository.MovementRepository
	productRepo repository.ProductRepository
	log         zerolog.Logger
}

// NewReconcileUseCase construye el caso de uso. movRepo y productRepo (sobre el pool) solo se
// usan para lecturas: Check y el listado de IDs del barrido.
func NewReconcileUseCase(
	txRunner TxRunner,
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	log zerolog.Logger,
) *ReconcileUseCase {
	return &ReconcileUseCase{txRunner: txRunner, movRepo: movRepo, productRepo: productRepo, log: log}
}

// Reconcile bloquea el producto, suma sus movimientos y escribe el resultado en una sola transacción.
func (uc *ReconcileUseCase) Reconcile(ctx context.Context, productID string) (*ReconcileResult, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := ValidateID(productID); err != nil {
		return nil, err
	}
	var result *ReconcileResult
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error {
		locked, err := lockProducts(ctx, productRepo, productID)
		if err != nil {
			return err
		}
		res, err := applyStock(ctx, movRepo, productRepo, locked[productID])
		if err != nil {
			return err
		}
		result = &res
		return nil
	})
	if err != nil {
		return nil, err
	}
	if result.Drift() != 0 {
		uc.log.Warn().
			Str("product_id", productID).
			Int("previous_stock", result.PreviousStock).
			Int("stock", result.Stock).
			Msg("stock desincronizado corregido")
	}
	return result, nil
}

// Check calcula el stock derivado sin escribir nada (modo -dry-run).
func (uc *ReconcileUseCase) Check(ctx context.Context, productID string) (*ReconcileResult, error) {
	if err := ValidateID(productID); err != nil {
		return nil, err
	}
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	entries, err := uc.movRepo.ListStockEntries(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &ReconcileResult{
		ProductID:     productID,
		PreviousStock: product.Stock,
		Stock:         domaininv.CalculateStock(entries),
	}, nil
}

// SweepReport resultado de un barrido completo.
type SweepReport struct {
	Checked int
	Drifted []ReconcileResult // solo los productos cuyo stock guardado difería
}

// Sweep concilia (o solo verifica, con dryRun) todos los productos con a lo sumo workers
// en paralelo. El primer error cancela el resto.
func (uc *ReconcileUseCase) Sweep(ctx context.Context, workers int, dryRun bool) (*SweepReport, error) {
	if workers < 1 {
		workers = 1
	}
	ids, err := uc.productRepo.ListIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}

	var mu sync.Mutex
	report := &SweepReport{Checked: len(ids)}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, id := range ids {
		g.Go(func() error {
			var res *ReconcileResult
			var err error
			if dryRun {
				res, err = uc.Check(gctx, id)
			} else {
				res, err = uc.Reconcile(gctx, id)
			}
			if errors.Is(err, domain.ErrNotFound) {
				return nil // borrado durante el barrido
			}
			if err != nil {
				return fmt.Errorf("producto %s: %w", id, err)
			}
			if res.Drift() != 0 {
				mu.Lock()
				report.Drifted = append(report.Drifted, *res)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.Slice(report.Drifted, func(i, j int) bool {
		return report.Drifted[i].ProductID < report.Drifted[j].ProductID
	})
	return report, nil
}

// lockProducts bloquea (SELECT FOR UPDATE) los productos indicados en orden de ID, para que
// dos transacciones sobre los mismos productos no se bloqueen mutuamente.
// Devuelve ErrNotFound si alguno no existe.
func lockProducts(ctx context.Context, productRepo repository.ProductRepository, ids ...string) (map[string]*entity.Product, error) {
	unique := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id != "" && !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	sort.Strings(unique)

	locked := make(map[string]*entity.Product, len(unique))
	for _, id := range unique {
		p, err := productRepo.GetForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrNotFound
		}
		locked[id] = p
	}
	return locked, nil
}

// applyStock recalcula y escribe el stock de un producto ya bloqueado.
// Corre siempre, aunque el producto no tenga movimientos (queda en 0).
// product nil significa que la fila tocada apunta a un producto que esta transacción no bloqueó.
func applyStock(
	ctx context.Context,
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	product *entity.Product,
) (ReconcileResult, error) {
	if product == nil {
		return ReconcileResult{}, fmt.Errorf("%w: el movimiento cambió de producto durante la operación", domain.ErrConflict)
	}
	entries, err := movRepo.ListStockEntries(ctx, product.ID)
	if err != nil {
		return ReconcileResult{}, err
	}
	stock := domaininv.CalculateStock(entries)
	if err := productRepo.UpdateStock(ctx, product.ID, stock); err != nil {
		return ReconcileResult{}, err
	}
	res := ReconcileResult{ProductID: product.ID, PreviousStock: product.Stock, Stock: stock}
	product.Stock = stock
	return res, nil
}
