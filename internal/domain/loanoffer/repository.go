package loanoffer

import "context"

// LockFilter selects the single offer a transition may act on. Zero-valued
// BorrowerID / InvestorID are not applied.
type LockFilter struct {
	OfferID    string
	BorrowerID uint64 // owner of the offer's loan request
	InvestorID uint64
	Status     Status
}

type Repository interface {
	Create(ctx context.Context, o *LoanOffer) error
	Save(ctx context.Context, o *LoanOffer) error

	// Exclusive row lock (SELECT ... FOR UPDATE); held until the enclosing tx ends.
	GetForUpdate(ctx context.Context, f LockFilter) (*LoanOffer, error)

	// Offers made by investorID, loan request preloaded.
	ListByInvestor(ctx context.Context, investorID uint64) ([]LoanOffer, error)
}
