package loanrequest

import "context"

type Repository interface {
	Create(ctx context.Context, r *LoanRequest) error
	Save(ctx context.Context, r *LoanRequest) error

	// Get by public request_id, Pending only
	GetPendingByRequestID(ctx context.Context, requestID string) (*LoanRequest, error)
	GetByIDForUpdate(ctx context.Context, id uint64) (*LoanRequest, error)

	// Requests owned by borrowerID plus every Pending request, borrower preloaded.
	ListVisibleTo(ctx context.Context, borrowerID uint64) ([]LoanRequest, error)
}
