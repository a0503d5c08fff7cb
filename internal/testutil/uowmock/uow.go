package uowmock

import (
	"context"
	"errors"

	"p2p-lending-backend/internal/domain/loanoffer"
	"p2p-lending-backend/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn      func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinOfferTxFn func(ctx context.Context, f loanoffer.LockFilter, fn func(r uow.Repos, o *loanoffer.LoanOffer) error) error
}

// Convenience fluent setters
func New() *UoW { return &UoW{} }
func (m *UoW) WithWithinTx(fn func(context.Context, func(uow.Repos) error) error) *UoW {
	m.WithinTxFn = fn
	return m
}
func (m *UoW) WithWithinOfferTx(fn func(context.Context, loanoffer.LockFilter, func(uow.Repos, *loanoffer.LoanOffer) error) error) *UoW {
	m.WithinOfferTxFn = fn
	return m
}
func (m *UoW) Reset() { *m = UoW{} }

// Passthrough runs every tx body directly against repos, locking the offer
// through repos.Offers.GetForUpdate the way the gorm implementation does.
func Passthrough(repos uow.Repos) *UoW {
	return &UoW{
		WithinTxFn: func(_ context.Context, fn func(uow.Repos) error) error {
			return fn(repos)
		},
		WithinOfferTxFn: func(ctx context.Context, f loanoffer.LockFilter, fn func(uow.Repos, *loanoffer.LoanOffer) error) error {
			o, err := repos.Offers.GetForUpdate(ctx, f)
			if err != nil {
				return err
			}
			return fn(repos, o)
		},
	}
}

// Methods implementing UnitOfWork
func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}
func (m *UoW) WithinOfferTx(ctx context.Context, f loanoffer.LockFilter, fn func(r uow.Repos, o *loanoffer.LoanOffer) error) error {
	if m.WithinOfferTxFn != nil {
		return m.WithinOfferTxFn(ctx, f, fn)
	}
	return errUnimplemented
}
