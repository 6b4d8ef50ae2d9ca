package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/inventory-movements-api/internal/domain"
	"github.com/jhoicas/inventory-movements-api/internal/domain/entity"
	"github.com/jhoicas/inventory-movements-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, product_id, type, quantity, date, note, reason, customer_name, price, payment_status, created_at`

// MovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento. Si no trae ID se genera uno; created_at lo asigna el servidor si viene vacío.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, COALESCE($11::timestamptz, now()))
		RETURNING created_at`
	err := r.q.QueryRow(ctx, query,
		m.ID, m.ProductID, string(m.Type), m.Quantity, m.Date,
		nullable(m.Note), nullable(m.Reason), nullable(m.CustomerName),
		salePrice(m), nullable(m.PaymentStatus), nullTime(m),
	).Scan(&m.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID. Devuelve (nil, nil) si no existe.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, `SELECT `+movementColumns+` FROM movements WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// GetForUpdate obtiene el movimiento y bloquea su fila: un UPDATE concurrente que lo mueva
// de producto espera al commit de esta transacción.
func (r *MovementRepo) GetForUpdate(ctx context.Context, id string) (*entity.Movement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, `SELECT `+movementColumns+` FROM movements WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, fmt.Errorf("get movement for update: %w", err)
	}
	return m, nil
}

// Update reemplaza los campos del movimiento (tipo incluido) por clave primaria.
func (r *MovementRepo) Update(ctx context.Context, m *entity.Movement) error {
	query := `
		UPDATE movements SET product_id = $2, type = $3, quantity = $4, date = $5, note = $6, reason = $7,
			customer_name = $8, price = $9, payment_status = $10
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, string(m.Type), m.Quantity, m.Date,
		nullable(m.Note), nullable(m.Reason), nullable(m.CustomerName),
		salePrice(m), nullable(m.PaymentStatus),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update movement: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el movimiento y devuelve la fila borrada; (nil, nil) si no existía.
func (r *MovementRepo) Delete(ctx context.Context, id string) (*entity.Movement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, `DELETE FROM movements WHERE id = $1 RETURNING `+movementColumns, id))
	if err != nil {
		return nil, fmt.Errorf("delete movement: %w", err)
	}
	return m, nil
}

// DeleteByProduct elimina todos los movimientos de un producto (borrado en cascada).
func (r *MovementRepo) DeleteByProduct(ctx context.Context, productID string) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM movements WHERE product_id = $1`, productID)
	if err != nil {
		return 0, fmt.Errorf("delete movements by product: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// ListByType lista los movimientos de un tipo, por fecha y creación descendente.
func (r *MovementRepo) ListByType(ctx context.Context, movementType entity.MovementType) ([]*entity.Movement, error) {
	return r.list(ctx, `SELECT `+movementColumns+` FROM movements WHERE type = $1 ORDER BY date DESC, created_at DESC`,
		string(movementType))
}

// ListByProduct lista el historial de un producto por created_at descendente.
func (r *MovementRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Movement, error) {
	return r.list(ctx, `SELECT `+movementColumns+` FROM movements WHERE product_id = $1 ORDER BY created_at DESC`,
		productID)
}

// ListStockEntries devuelve solo tipo y cantidad de los movimientos del producto.
func (r *MovementRepo) ListStockEntries(ctx context.Context, productID string) ([]entity.StockEntry, error) {
	rows, err := r.q.Query(ctx, `SELECT type, quantity FROM movements WHERE product_id = $1`, productID)
	if err != nil {
		return nil, fmt.Errorf("list stock entries: %w", err)
	}
	defer rows.Close()
	var list []entity.StockEntry
	for rows.Next() {
		var e entity.StockEntry
		var t string
		if err := rows.Scan(&t, &e.Quantity); err != nil {
			return nil, fmt.Errorf("scan stock entry: %w", err)
		}
		e.Type = entity.MovementType(t)
		list = append(list, e)
	}
	return list, rows.Err()
}

// CountByProduct cuenta los movimientos que referencian al producto.
func (r *MovementRepo) CountByProduct(ctx context.Context, productID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM movements WHERE product_id = $1`, productID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return n, nil
}

func (r *MovementRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Movement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Movement, 0)
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	var t string
	var note, reason, customer, payment *string
	var price decimal.NullDecimal
	err := row.Scan(&m.ID, &m.ProductID, &t, &m.Quantity, &m.Date,
		&note, &reason, &customer, &price, &payment, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	m.Type = entity.MovementType(t)
	m.Note = deref(note)
	m.Reason = deref(reason)
	m.CustomerName = deref(customer)
	m.PaymentStatus = deref(payment)
	if price.Valid {
		m.Price = price.Decimal
	}
	return &m, nil
}

// salePrice solo persiste precio en ventas; el resto de tipos guarda NULL.
func salePrice(m *entity.Movement) decimal.NullDecimal {
	if m.Type != entity.MovementTypeSale {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: m.Price, Valid: true}
}

func nullTime(m *entity.Movement) any {
	if m.CreatedAt.IsZero() {
		return nil
	}
	return m.CreatedAt
}
