package user

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByUsername(ctx context.Context, username string) (*User, error)

	// Row-locked read; only meaningful inside a UnitOfWork.
	GetByIDForUpdate(ctx context.Context, id uint64) (*User, error)
	UpdateBalance(ctx context.Context, id uint64, balance decimal.Decimal) error
}
