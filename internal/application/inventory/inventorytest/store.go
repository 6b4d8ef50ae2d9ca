// Package inventorytest ofrece un almacén en memoria que implementa los repositorios de
// productos y movimientos y un TxRunner con rollback, para tests de casos de uso y handlers.
package inventorytest

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/inventory-movements-api/internal/domain"
	"github.com/jhoicas/inventory-movements-api/internal/domain/entity"
	"github.com/jhoicas/inventory-movements-api/internal/domain/repository"
)

// ErrInjected error que devuelven las operaciones marcadas para fallar.
var ErrInjected = errors.New("inventorytest: fallo inyectado")

// Store estado en memoria. Run serializa las transacciones y restaura el estado si fn falla.
type Store struct {
	txMu sync.Mutex

	products  map[string]*entity.Product
	movements map[string]*entity.Movement
	clock     time.Time

	// FailUpdateStock hace fallar UpdateStock (simula un error de la conciliación).
	FailUpdateStock bool
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		products:  map[string]*entity.Product{},
		movements: map[string]*entity.Movement{},
		clock:     time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
	}
}

// Products repositorio de productos sobre el almacén.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

// Movements repositorio de movimientos sobre el almacén.
func (s *Store) Movements() *MovementRepo { return &MovementRepo{s: s} }

// Run ejecuta fn con repos del almacén; si fn devuelve error, o el contexto ya está
// cancelado al confirmar, el estado vuelve al anterior (como un Commit fallido).
func (s *Store) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	products, movements := s.snapshot()
	err := fn(s.Movements(), s.Products())
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		s.products, s.movements = products, movements
		return err
	}
	return nil
}

// Product devuelve una copia del producto guardado (nil si no existe).
func (s *Store) Product(id string) *entity.Product {
	p, ok := s.products[id]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

// MovementCount número de movimientos guardados.
func (s *Store) MovementCount() int { return len(s.movements) }

// SetStock escribe el stock sin pasar por movimientos (simula una edición manual).
func (s *Store) SetStock(id string, stock int) {
	if p, ok := s.products[id]; ok {
		p.Stock = stock
	}
}

func (s *Store) snapshot() (map[string]*entity.Product, map[string]*entity.Movement) {
	products := make(map[string]*entity.Product, len(s.products))
	for k, v := range s.products {
		cp := *v
		products[k] = &cp
	}
	movements := make(map[string]*entity.Movement, len(s.movements))
	for k, v := range s.movements {
		cp := *v
		movements[k] = &cp
	}
	return products, movements
}

func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

// ── Productos ────────────────────────────────────────────────────────────────

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de repository.ProductRepository.
type ProductRepo struct{ s *Store }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	for _, other := range r.s.products {
		if other.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = r.s.tick()
		p.UpdatedAt = p.CreatedAt
	}
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return r.s.Product(id), nil
}

func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	for id, p := range r.s.products {
		if p.SKU == sku {
			return r.s.Product(id), nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	if _, ok := r.s.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	for _, other := range r.s.products {
		if other.ID != p.ID && other.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *ProductRepo) UpdateStock(_ context.Context, id string, stock int) error {
	if r.s.FailUpdateStock {
		return ErrInjected
	}
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = stock
	return nil
}

func (r *ProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	list := make([]*entity.Product, 0, len(r.s.products))
	for id := range r.s.products {
		list = append(list, r.s.Product(id))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (r *ProductRepo) ListOptions(_ context.Context) ([]entity.ProductOption, error) {
	list := make([]entity.ProductOption, 0, len(r.s.products))
	for _, p := range r.s.products {
		list = append(list, entity.ProductOption{ID: p.ID, Name: p.Name})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *ProductRepo) ListIDs(_ context.Context) ([]string, error) {
	ids := make([]string, 0, len(r.s.products))
	for id := range r.s.products {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.s.products[id]; !ok {
		return domain.ErrNotFound
	}
	for _, m := range r.s.movements {
		if m.ProductID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.products, id)
	return nil
}

// ── Movimientos ──────────────────────────────────────────────────────────────

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación en memoria de repository.MovementRepository.
type MovementRepo struct{ s *Store }

func (r *MovementRepo) Create(_ context.Context, m *entity.Movement) error {
	if _, ok := r.s.products[m.ProductID]; !ok {
		return domain.ErrNotFound
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = r.s.tick()
	}
	cp := *m
	r.s.movements[m.ID] = &cp
	return nil
}

func (r *MovementRepo) GetByID(_ context.Context, id string) (*entity.Movement, error) {
	m, ok := r.s.movements[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *MovementRepo) GetForUpdate(ctx context.Context, id string) (*entity.Movement, error) {
	return r.GetByID(ctx, id)
}

func (r *MovementRepo) Update(_ context.Context, m *entity.Movement) error {
	current, ok := r.s.movements[m.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if _, ok := r.s.products[m.ProductID]; !ok {
		return domain.ErrNotFound
	}
	cp := *m
	cp.CreatedAt = current.CreatedAt
	r.s.movements[m.ID] = &cp
	return nil
}

func (r *MovementRepo) Delete(_ context.Context, id string) (*entity.Movement, error) {
	m, ok := r.s.movements[id]
	if !ok {
		return nil, nil
	}
	delete(r.s.movements, id)
	return m, nil
}

func (r *MovementRepo) DeleteByProduct(_ context.Context, productID string) (int64, error) {
	var n int64
	for id, m := range r.s.movements {
		if m.ProductID == productID {
			delete(r.s.movements, id)
			n++
		}
	}
	return n, nil
}

func (r *MovementRepo) ListByType(_ context.Context, t entity.MovementType) ([]*entity.Movement, error) {
	list := r.filter(func(m *entity.Movement) bool { return m.Type == t })
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.After(list[j].Date)
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

func (r *MovementRepo) ListByProduct(_ context.Context, productID string) ([]*entity.Movement, error) {
	list := r.filter(func(m *entity.Movement) bool { return m.ProductID == productID })
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (r *MovementRepo) ListStockEntries(_ context.Context, productID string) ([]entity.StockEntry, error) {
	var out []entity.StockEntry
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			out = append(out, entity.StockEntry{Type: m.Type, Quantity: m.Quantity})
		}
	}
	return out, nil
}

func (r *MovementRepo) CountByProduct(_ context.Context, productID string) (int, error) {
	return len(r.filter(func(m *entity.Movement) bool { return m.ProductID == productID })), nil
}

func (r *MovementRepo) filter(keep func(*entity.Movement) bool) []*entity.Movement {
	list := make([]*entity.Movement, 0)
	for _, m := range r.s.movements {
		if keep(m) {
			cp := *m
			list = append(list, &cp)
		}
	}
	return list
}
