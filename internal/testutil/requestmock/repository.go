package requestmock

import (
	"context"
	"errors"

	domain "p2p-lending-backend/internal/domain/loanrequest"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("requestmock: method not implemented")

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                func(ctx context.Context, r *domain.LoanRequest) error
	SaveFn                  func(ctx context.Context, r *domain.LoanRequest) error
	GetPendingByRequestIDFn func(ctx context.Context, requestID string) (*domain.LoanRequest, error)
	GetByIDForUpdateFn      func(ctx context.Context, id uint64) (*domain.LoanRequest, error)
	ListVisibleToFn         func(ctx context.Context, borrowerID uint64) ([]domain.LoanRequest, error)
}

func (m *Repo) Create(ctx context.Context, r *domain.LoanRequest) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, r *domain.LoanRequest) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, r)
	}
	return nil
}

func (m *Repo) GetPendingByRequestID(ctx context.Context, requestID string) (*domain.LoanRequest, error) {
	if m.GetPendingByRequestIDFn != nil {
		return m.GetPendingByRequestIDFn(ctx, requestID)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.LoanRequest, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListVisibleTo(ctx context.Context, borrowerID uint64) ([]domain.LoanRequest, error) {
	if m.ListVisibleToFn != nil {
		return m.ListVisibleToFn(ctx, borrowerID)
	}
	return nil, errUnimplemented
}
