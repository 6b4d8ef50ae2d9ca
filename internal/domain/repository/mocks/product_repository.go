package mocks

import (
	"context"

	"github.com/jhoicas/inventory-movements-api/internal/domain/entity"
	"github.com/jhoicas/inventory-movements-api/internal/domain/repository"
	"github.com/stretchr/testify/mock"
)

var _ repository.ProductRepository = (*MockProductRepository)(nil)

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *entity.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	args := m.Called(ctx, id)
	return productOrNil(args.Get(0)), args.Error(1)
}

func (m *MockProductRepository) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	args := m.Called(ctx, id)
	return productOrNil(args.Get(0)), args.Error(1)
}

func (m *MockProductRepository) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	args := m.Called(ctx, sku)
	return productOrNil(args.Get(0)), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, product *entity.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) UpdateStock(ctx context.Context, productID string, stock int) error {
	return m.Called(ctx, productID, stock).Error(0)
}

func (m *MockProductRepository) List(ctx context.Context) ([]*entity.Product, error) {
	args := m.Called(ctx)
	var r0 []*entity.Product
	if args.Get(0) != nil {
		r0 = args.Get(0).([]*entity.Product)
	}
	return r0, args.Error(1)
}

func (m *MockProductRepository) ListOptions(ctx context.Context) ([]entity.ProductOption, error) {
	args := m.Called(ctx)
	var r0 []entity.ProductOption
	if args.Get(0) != nil {
		r0 = args.Get(0).([]entity.ProductOption)
	}
	return r0, args.Error(1)
}

func (m *MockProductRepository) ListIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	var r0 []string
	if args.Get(0) != nil {
		r0 = args.Get(0).([]string)
	}
	return r0, args.Error(1)
}

func (m *MockProductRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func productOrNil(v interface{}) *entity.Product {
	if v == nil {
		return nil
	}
	return v.(*entity.Product)
}
