package usermock

import (
	"context"
	"errors"

	domain "p2p-lending-backend/internal/domain/user"

	"github.com/shopspring/decimal"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("usermock: method not implemented")

// Repo is a function-backed mock that satisfies domain.Repository.
// Writes default to a nil error, reads to errUnimplemented.
type Repo struct {
	CreateFn           func(ctx context.Context, u *domain.User) error
	GetByUsernameFn    func(ctx context.Context, username string) (*domain.User, error)
	GetByIDForUpdateFn func(ctx context.Context, id uint64) (*domain.User, error)
	UpdateBalanceFn    func(ctx context.Context, id uint64, balance decimal.Decimal) error
}

func (m *Repo) Create(ctx context.Context, u *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, u)
	}
	return nil
}

func (m *Repo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.GetByUsernameFn != nil {
		return m.GetByUsernameFn(ctx, username)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.User, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, errUnimplemented
}

func (m *Repo) UpdateBalance(ctx context.Context, id uint64, balance decimal.Decimal) error {
	if m.UpdateBalanceFn != nil {
		return m.UpdateBalanceFn(ctx, id, balance)
	}
	return nil
}
