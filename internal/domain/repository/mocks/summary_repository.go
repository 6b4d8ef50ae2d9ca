package mocks

import (
	"context"

	"github.com/jhoicas/inventory-movements-api/internal/domain/repository"
	"github.com/stretchr/testify/mock"
)

var _ repository.SummaryRepository = (*MockSummaryRepository)(nil)

type MockSummaryRepository struct {
	mock.Mock
}

func (m *MockSummaryRepository) GetStockTotals(ctx context.Context) (repository.StockTotals, error) {
	args := m.Called(ctx)
	return args.Get(0).(repository.StockTotals), args.Error(1)
}

func (m *MockSummaryRepository) GetSalesTotals(ctx context.Context) (repository.SalesTotals, error) {
	args := m.Called(ctx)
	return args.Get(0).(repository.SalesTotals), args.Error(1)
}
