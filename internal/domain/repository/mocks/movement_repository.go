package mocks

import (
	"context"

	"github.com/jhoicas/inventory-movements-api/internal/domain/entity"
	"github.com/jhoicas/inventory-movements-api/internal/domain/repository"
	"github.com/stretchr/testify/mock"
)

var _ repository.MovementRepository = (*MockMovementRepository)(nil)

type MockMovementRepository struct {
	mock.Mock
}

func (m *MockMovementRepository) Create(ctx context.Context, movement *entity.Movement) error {
	return m.Called(ctx, movement).Error(0)
}

func (m *MockMovementRepository) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	args := m.Called(ctx, id)
	return movementOrNil(args.Get(0)), args.Error(1)
}

func (m *MockMovementRepository) GetForUpdate(ctx context.Context, id string) (*entity.Movement, error) {
	args := m.Called(ctx, id)
	return movementOrNil(args.Get(0)), args.Error(1)
}

func (m *MockMovementRepository) Update(ctx context.Context, movement *entity.Movement) error {
	return m.Called(ctx, movement).Error(0)
}

func (m *MockMovementRepository) Delete(ctx context.Context, id string) (*entity.Movement, error) {
	args := m.Called(ctx, id)
	return movementOrNil(args.Get(0)), args.Error(1)
}

func (m *MockMovementRepository) DeleteByProduct(ctx context.Context, productID string) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMovementRepository) ListByType(ctx context.Context, movementType entity.MovementType) ([]*entity.Movement, error) {
	args := m.Called(ctx, movementType)
	return movementsOrNil(args.Get(0)), args.Error(1)
}

func (m *MockMovementRepository) ListByProduct(ctx context.Context, productID string) ([]*entity.Movement, error) {
	args := m.Called(ctx, productID)
	return movementsOrNil(args.Get(0)), args.Error(1)
}

func (m *MockMovementRepository) ListStockEntries(ctx context.Context, productID string) ([]entity.StockEntry, error) {
	args := m.Called(ctx, productID)
	var r0 []entity.StockEntry
	if args.Get(0) != nil {
		r0 = args.Get(0).([]entity.StockEntry)
	}
	return r0, args.Error(1)
}

func (m *MockMovementRepository) CountByProduct(ctx context.Context, productID string) (int, error) {
	args := m.Called(ctx, productID)
	return args.Int(0), args.Error(1)
}

func movementOrNil(v interface{}) *entity.Movement {
	if v == nil {
		return nil
	}
	return v.(*entity.Movement)
}

func movementsOrNil(v interface{}) []*entity.Movement {
	if v == nil {
		return nil
	}
	return v.([]*entity.Movement)
}
