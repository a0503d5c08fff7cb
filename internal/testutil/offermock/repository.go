package offermock

import (
	"context"
	"errors"

	domain "p2p-lending-backend/internal/domain/loanoffer"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("offermock: method not implemented")

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn         func(ctx context.Context, o *domain.LoanOffer) error
	SaveFn           func(ctx context.Context, o *domain.LoanOffer) error
	GetForUpdateFn   func(ctx context.Context, f domain.LockFilter) (*domain.LoanOffer, error)
	ListByInvestorFn func(ctx context.Context, investorID uint64) ([]domain.LoanOffer, error)
}

func (m *Repo) Create(ctx context.Context, o *domain.LoanOffer) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, o)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, o *domain.LoanOffer) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, o)
	}
	return nil
}

func (m *Repo) GetForUpdate(ctx context.Context, f domain.LockFilter) (*domain.LoanOffer, error) {
	if m.GetForUpdateFn != nil {
		return m.GetForUpdateFn(ctx, f)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListByInvestor(ctx context.Context, investorID uint64) ([]domain.LoanOffer, error) {
	if m.ListByInvestorFn != nil {
		return m.ListByInvestorFn(ctx, investorID)
	}
	return nil, errUnimplemented
}
