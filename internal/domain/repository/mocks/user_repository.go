package mocks

import (
	"context"

	"github.com/jhoicas/inventory-movements-api/internal/domain/entity"
	"github.com/jhoicas/inventory-movements-api/internal/domain/repository"
	"github.com/stretchr/testify/mock"
)

var _ repository.UserRepository = (*MockUserRepository)(nil)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	var r0 *entity.User
	if args.Get(0) != nil {
		r0 = args.Get(0).(*entity.User)
	}
	return r0, args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	var r0 *entity.User
	if args.Get(0) != nil {
		r0 = args.Get(0).(*entity.User)
	}
	return r0, args.Error(1)
}
