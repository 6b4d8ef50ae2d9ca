package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-movements-api/internal/application/dto"
	"github.com/jhoicas/inventory-movements-api/internal/application/inventory"
	"github.com/jhoicas/inventory-movements-api/internal/application/inventory/inventorytest"
	"github.com/jhoicas/inventory-movements-api/internal/domain"
	"github.com/jhoicas/inventory-movements-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	store *inventorytest.Store
	uc    *inventory.MovementUseCase
}

func newFixture() *fixture {
	store := inventorytest.NewStore()
	return &fixture{
		store: store,
		uc:    inventory.NewMovementUseCase(store, store.Movements(), zerolog.Nop()),
	}
}

// seedProduct crea un producto con un movimiento initial por stock (como lo hace el alta).
func (f *fixture) seedProduct(t *testing.T, sku string, stock int) string {
	t.Helper()
	ctx := context.Background()
	p := &entity.Product{ID: uuid.New().String(), Name: "Producto " + sku, SKU: sku, Stock: stock}
	require.NoError(t, f.store.Products().Create(ctx, p))
	if stock > 0 {
		require.NoError(t, f.store.Movements().Create(ctx, &entity.Movement{
			ID: uuid.New().String(), ProductID: p.ID, Type: entity.MovementTypeInitial,
			Quantity: stock, Date: time.Now(), Note: entity.InitialStockNote,
		}))
	}
	return p.ID
}

func (f *fixture) stock(t *testing.T, productID string) int {
	t.Helper()
	p := f.store.Product(productID)
	require.NotNil(t, p)
	return p.Stock
}

func req(productID string, qty string) dto.MovementRequest {
	return dto.MovementRequest{
		ProductID: productID,
		Quantity:  dto.FormInt(dto.ParseQuantity(qty)),
		Date:      "2024-05-31",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario completo
// ──────────────────────────────────────────────────────────────────────────────

// inicial 100 → venta 30 → salida 10 "damaged" → borrar venta.
func TestMovementUseCase_ExampleSequence(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	pid := f.seedProduct(t, "SKU-1", 100)
	assert.Equal(t, 100, f.stock(t, pid))

	sale := req(pid, "30")
	sale.CustomerName = "Ana"
	sale.Price = dto.FormDecimal{Decimal: decimal.RequireFromString("9.99")}
	created, err := f.uc.Create(ctx, entity.MovementTypeSale, sale)
	require.NoError(t, err)
	assert.Equal(t, 70, f.stock(t, pid))
	assert.Equal(t, entity.PaymentStatusPending, created.PaymentStatus, "sin estado → pending")

	out := req(pid, "10")
	out.Reason = "damaged"
	_, err = f.uc.Create(ctx, entity.MovementTypeOutput, out)
	require.NoError(t, err)
	assert.Equal(t, 60, f.stock(t, pid))

	require.NoError(t, f.uc.Delete(ctx, entity.MovementTypeSale, created.ID))
	assert.Equal(t, 90, f.stock(t, pid))
}

// Editar una venta de Q1 a Q2 cambia el stock en (Q1 − Q2).
func TestMovementUseCase_UpdateSaleQuantity(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	pid := f.seedProduct(t, "SKU-1", 50)

	created, err := f.uc.Create(ctx, entity.MovementTypeSale, req(pid, "8"))
	require.NoError(t, err)
	before := f.stock(t, pid)
	require.Equal(t, 42, before)

	_, err = f.uc.Update(ctx, entity.MovementTypeSale, created.ID, req(pid, "3"))
	require.NoError(t, err)
	assert.Equal(t, before+(8-3), f.stock(t, pid))
}

func TestMovementUseCase_UpdateMovedToOtherProduct_ReconcilesBoth(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a := f.seedProduct(t, "A", 10)
	b := f.seedProduct(t, "B", 10)

	created, err := f.uc.Create(ctx, entity.MovementTypeInput, req(a, "5"))
	require.NoError(t, err)
	require.Equal(t, 15, f.stock(t, a))

	_, err = f.uc.Update(ctx, entity.MovementTypeInput, created.ID, req(b, "5"))
	require.NoError(t, err)
	assert.Equal(t, 10, f.stock(t, a), "el producto anterior pierde la entrada")
	assert.Equal(t, 15, f.stock(t, b), "el nuevo producto la gana")
}

// Tras varias operaciones el stock guardado coincide con la suma de movimientos.
func TestMovementUseCase_StockMatchesHistory(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	pid := f.seedProduct(t, "SKU-1", 0)

	ops := []struct {
		kind entity.MovementType
		qty  string
	}{
		{entity.MovementTypeInput, "20"},
		{entity.MovementTypeSale, "4"},
		{entity.MovementTypeInput, "3"},
		{entity.MovementTypeOutput, "1"},
		{entity.MovementTypeSale, "30"},
	}
	for _, op := range ops {
		_, err := f.uc.Create(ctx, op.kind, req(pid, op.qty))
		require.NoError(t, err)
	}
	entries, err := f.store.Movements().ListStockEntries(ctx, pid)
	require.NoError(t, err)

	sum := 0
	for _, e := range entries {
		sum += e.Type.Sign() * e.Quantity
	}
	assert.Equal(t, sum, f.stock(t, pid))
	assert.Equal(t, -12, f.stock(t, pid))
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación y errores
// ──────────────────────────────────────────────────────────────────────────────

func TestMovementUseCase_Create_RejectsInvalidInput(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	pid := f.seedProduct(t, "SKU-1", 5)

	noQty := req(pid, "")
	badDate := req(pid, "2")
	badDate.Date = "31/05/2024"
	negPrice := req(pid, "1")
	negPrice.Price = dto.FormDecimal{Decimal: decimal.NewFromInt(-1)}
	badStatus := req(pid, "1")
	badStatus.PaymentStatus = "refunded"

	cases := []struct {
		name string
		kind entity.MovementType
		in   dto.MovementRequest
	}{
		{"cantidad vacía", entity.MovementTypeInput, noQty},
		{"sin producto", entity.MovementTypeInput, req("", "3")},
		{"producto no uuid", entity.MovementTypeInput, req("abc", "3")},
		{"fecha inválida", entity.MovementTypeInput, badDate},
		{"precio negativo", entity.MovementTypeSale, negPrice},
		{"estado de pago desconocido", entity.MovementTypeSale, badStatus},
		{"tipo initial no editable", entity.MovementTypeInitial, req(pid, "3")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.Create(ctx, tc.kind, tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Equal(t, 5, f.stock(t, pid), "nada se escribió")
}

func TestMovementUseCase_Create_UnknownProduct(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Create(context.Background(), entity.MovementTypeInput, req(uuid.New().String(), "3"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, f.store.MovementCount())
}

// El endpoint de ventas no ve ni borra entradas.
func TestMovementUseCase_WrongKindIsNotFound(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	pid := f.seedProduct(t, "SKU-1", 5)
	input, err := f.uc.Create(ctx, entity.MovementTypeInput, req(pid, "2"))
	require.NoError(t, err)

	err = f.uc.Delete(ctx, entity.MovementTypeSale, input.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.Update(ctx, entity.MovementTypeOutput, input.ID, req(pid, "1"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 7, f.stock(t, pid))
}

// Si la conciliación falla, el movimiento tampoco queda guardado.
func TestMovementUseCase_ReconcileFailureRollsBack(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	pid := f.seedProduct(t, "SKU-1", 5)
	before := f.store.MovementCount()

	f.store.FailUpdateStock = true
	_, err := f.uc.Create(ctx, entity.MovementTypeInput, req(pid, "2"))
	require.ErrorIs(t, err, inventorytest.ErrInjected)

	assert.Equal(t, before, f.store.MovementCount())
	assert.Equal(t, 5, f.stock(t, pid))
}

// ──────────────────────────────────────────────────────────────────────────────
// List y proyección
// ──────────────────────────────────────────────────────────────────────────────

func TestMovementUseCase_List_FiltersByType(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	pid := f.seedProduct(t, "SKU-1", 10)

	_, err := f.uc.Create(ctx, entity.MovementTypeInput, req(pid, "1"))
	require.NoError(t, err)
	_, err = f.uc.Create(ctx, entity.MovementTypeSale, req(pid, "2"))
	require.NoError(t, err)

	list, err := f.uc.List(ctx, entity.MovementTypeSale)
	require.NoError(t, err)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "sale", list.Items[0].Type)
	assert.Equal(t, 2, list.Items[0].Quantity)

	empty, err := f.uc.List(ctx, entity.MovementTypeOutput)
	require.NoError(t, err)
	assert.NotNil(t, empty.Items)
	assert.Zero(t, empty.Total)
}

func TestToMovementResponse_ProjectsKindFields(t *testing.T) {
	date := time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)

	out := inventory.ToMovementResponse(&entity.Movement{
		ID: "m1", Type: entity.MovementTypeOutput, Quantity: 3, Date: date, Reason: "damaged",
	})
	assert.Equal(t, "damaged", out.Reason)
	assert.Nil(t, out.Price, "una salida no lleva precio")
	assert.Equal(t, "2024-05-31", out.Date)

	sale := inventory.ToMovementResponse(&entity.Movement{
		ID: "m2", Type: entity.MovementTypeSale, Quantity: 1, Date: date,
		CustomerName: "Ana", Price: decimal.NewFromInt(5), PaymentStatus: "paid",
	})
	require.NotNil(t, sale.Price)
	assert.True(t, sale.Price.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, "Ana", sale.CustomerName)
	assert.Equal(t, "paid", sale.PaymentStatus)
	assert.Empty(t, sale.Reason)
}

func TestParseDate(t *testing.T) {
	d, err := inventory.ParseDate(" 2024-02-29 ")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), d)

	_, err = inventory.ParseDate("")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = inventory.ParseDate("2023-02-29")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
