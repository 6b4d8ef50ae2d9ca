package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/inventory-movements-api/internal/application/dto"
	"github.com/jhoicas/inventory-movements-api/internal/domain"
	"github.com/jhoicas/inventory-movements-api/internal/domain/entity"
	"github.com/jhoicas/inventory-movements-api/internal/domain/repository"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// MovementUseCase CRUD de entradas, salidas y ventas. Cada escritura concilia el stock del
// producto afectado dentro de la misma transacción.
type MovementUseCase struct {
	txRunner TxRunner
	movRepo  repository.MovementRepository
	log      zerolog.Logger
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(txRunner TxRunner, movRepo repository.MovementRepository, log zerolog.Logger) *MovementUseCase {
	return &MovementUseCase{txRunner: txRunner, movRepo: movRepo, log: log}
}

// List devuelve todos los movimientos del tipo indicado.
func (uc *MovementUseCase) List(ctx context.Context, kind entity.MovementType) (*dto.MovementListResponse, error) {
	if !kind.UserEditable() {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.movRepo.ListByType(ctx, kind)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, ToMovementResponse(m))
	}
	return &dto.MovementListResponse{Type: string(kind), Items: items, Total: len(items)}, nil
}

// Create registra un movimiento del tipo indicado y concilia el producto.
func (uc *MovementUseCase) Create(ctx context.Context, kind entity.MovementType, in dto.MovementRequest) (*dto.MovementResponse, error) {
	m, err := buildMovement(kind, in)
	if err != nil {
		return nil, err
	}
	m.ID = uuid.New().String()

	var res ReconcileResult
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error {
		locked, err := lockProducts(ctx, productRepo, m.ProductID)
		if err != nil {
			return err
		}
		if err := movRepo.Create(ctx, m); err != nil {
			return err
		}
		res, err = applyStock(ctx, movRepo, productRepo, locked[m.ProductID])
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.logReconciled("create", m, res)
	out := ToMovementResponse(m)
	return &out, nil
}

// Update reemplaza los campos de un movimiento del tipo indicado. Si cambia de producto,
// concilia tanto el producto anterior como el nuevo.
func (uc *MovementUseCase) Update(ctx context.Context, kind entity.MovementType, id string, in dto.MovementRequest) (*dto.MovementResponse, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := ValidateID(id); err != nil {
		return nil, err
	}
	m, err := buildMovement(kind, in)
	if err != nil {
		return nil, err
	}
	m.ID = id

	var results []ReconcileResult
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error {
		current, err := movRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if current == nil || current.Type != kind {
			return domain.ErrNotFound
		}
		locked, err := lockProducts(ctx, productRepo, current.ProductID, m.ProductID)
		if err != nil {
			return err
		}
		m.CreatedAt = current.CreatedAt
		if err := movRepo.Update(ctx, m); err != nil {
			return err
		}
		results = results[:0]
		for _, pid := range affected(current.ProductID, m.ProductID) {
			res, err := applyStock(ctx, movRepo, productRepo, locked[pid])
			if err != nil {
				return err
			}
			results = append(results, res)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, res := range results {
		uc.logReconciled("update", m, res)
	}
	out := ToMovementResponse(m)
	return &out, nil
}

// Delete elimina un movimiento del tipo indicado. El producto a conciliar sale de la fila
// borrada (DELETE ... RETURNING), no de un estado previo del cliente.
func (uc *MovementUseCase) Delete(ctx context.Context, kind entity.MovementType, id string) error {
	if !kind.UserEditable() || id == "" {
		return domain.ErrInvalidInput
	}
	if err := ValidateID(id); err != nil {
		return err
	}
	var deleted *entity.Movement
	var res ReconcileResult
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error {
		current, err := movRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if current == nil || current.Type != kind {
			return domain.ErrNotFound
		}
		locked, err := lockProducts(ctx, productRepo, current.ProductID)
		if err != nil {
			return err
		}
		deleted, err = movRepo.Delete(ctx, id)
		if err != nil {
			return err
		}
		if deleted == nil {
			return domain.ErrNotFound
		}
		res, err = applyStock(ctx, movRepo, productRepo, locked[deleted.ProductID])
		return err
	})
	if err != nil {
		return err
	}
	uc.logReconciled("delete", deleted, res)
	return nil
}

func (uc *MovementUseCase) logReconciled(op string, m *entity.Movement, res ReconcileResult) {
	uc.log.Debug().
		Str("op", op).
		Str("movement_id", m.ID).
		Str("type", string(m.Type)).
		Str("product_id", res.ProductID).
		Int("previous_stock", res.PreviousStock).
		Int("stock", res.Stock).
		Msg("stock conciliado")
}

// buildMovement valida la entrada y arma el movimiento del tipo indicado.
// Cantidad y precio ya vienen parseados de forma tolerante (vacío -> 0); aquí se rechazan
// los valores que el modelo no admite.
func buildMovement(kind entity.MovementType, in dto.MovementRequest) (*entity.Movement, error) {
	if !kind.UserEditable() {
		return nil, domain.ErrInvalidInput
	}
	productID := strings.TrimSpace(in.ProductID)
	if productID == "" {
		return nil, fmt.Errorf("%w: product_id es requerido", domain.ErrInvalidInput)
	}
	if _, err := uuid.Parse(productID); err != nil {
		return nil, fmt.Errorf("%w: product_id no es un UUID válido", domain.ErrInvalidInput)
	}
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity debe ser un entero mayor que 0", domain.ErrInvalidInput)
	}
	date, err := ParseDate(in.Date)
	if err != nil {
		return nil, err
	}
	m := &entity.Movement{
		ProductID:     productID,
		Type:          kind,
		Quantity:      int(in.Quantity),
		Date:          date,
		Note:          strings.TrimSpace(in.Note),
		Reason:        strings.TrimSpace(in.Reason),
		CustomerName:  strings.TrimSpace(in.CustomerName),
		Price:         in.Price.Decimal,
		PaymentStatus: strings.TrimSpace(in.PaymentStatus),
	}
	m.Normalize()
	if kind == entity.MovementTypeSale {
		if m.Price.LessThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: price no puede ser negativo", domain.ErrInvalidInput)
		}
		if !entity.ValidPaymentStatus(m.PaymentStatus) {
			return nil, fmt.Errorf("%w: payment_status debe ser pending o paid", domain.ErrInvalidInput)
		}
	}
	return m, nil
}

// ParseDate interpreta una fecha de calendario YYYY-MM-DD (obligatoria).
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: date es requerido", domain.ErrInvalidInput)
	}
	d, err := time.Parse(dto.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date debe tener formato YYYY-MM-DD", domain.ErrInvalidInput)
	}
	return d, nil
}

// ValidateID responde ErrNotFound para ids que no son UUID: no pueden existir y así no
// llegan a la base como parámetro inválido.
func ValidateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q no es un id válido", domain.ErrNotFound, id)
	}
	return nil
}

// affected productos a conciliar tras una edición (uno o dos, sin repetir).
func affected(previous, current string) []string {
	if previous == current {
		return []string{current}
	}
	return []string{previous, current}
}

// ToMovementResponse proyecta un movimiento con los campos propios de su tipo.
func ToMovementResponse(m *entity.Movement) dto.MovementResponse {
	out := dto.MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Type:      string(m.Type),
		Quantity:  m.Quantity,
		Date:      m.Date.Format(dto.DateLayout),
		CreatedAt: m.CreatedAt,
	}
	switch m.Type {
	case entity.MovementTypeInitial, entity.MovementTypeInput:
		out.Note = m.Note
	case entity.MovementTypeOutput:
		out.Reason = m.Reason
	case entity.MovementTypeSale:
		price := m.Price
		out.Note = m.Note
		out.CustomerName = m.CustomerName
		out.Price = &price
		out.PaymentStatus = m.PaymentStatus
	}
	return out
}
