package uow

import (
	"context"

	"p2p-lending-backend/internal/domain/loanoffer"
	"p2p-lending-backend/internal/domain/loanrequest"
	"p2p-lending-backend/internal/domain/user"
)

// Repos are bound to the transaction of the UnitOfWork call that produced them.
type Repos struct {
	Users    user.Repository
	Requests loanrequest.Repository
	Offers   loanoffer.Repository
}

type UnitOfWork interface {
	// plain tx; fn's error rolls back every write made through r
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the offer selected by f first, then pass it in
	WithinOfferTx(ctx context.Context, f loanoffer.LockFilter, fn func(r Repos, o *loanoffer.LoanOffer) error) error
}
