package loanrequest

import (
	"context"

	domain "p2p-lending-backend/internal/domain/loanrequest"
	"p2p-lending-backend/pkg/id"

	"github.com/shopspring/decimal"
)

// decimal(10,2) upper bound
var maxLoanAmount = decimal.RequireFromString("99999999.99")

type Usecase struct{ repo domain.Repository }

func NewUsecase(r domain.Repository) *Usecase { return &Usecase{repo: r} }

func (u *Usecase) Submit(ctx context.Context, borrowerID uint64, in SubmitInput) (*LoanRequestDTO, error) {
	if in.LoanAmount == nil || in.LoanPeriod == nil {
		return nil, domain.ErrMissingFields
	}
	amount := *in.LoanAmount
	if !amount.IsPositive() || amount.GreaterThan(maxLoanAmount) || !amount.Equal(amount.Truncate(2)) || *in.LoanPeriod <= 0 {
		return nil, domain.ErrInvalidInput
	}

	r := &domain.LoanRequest{
		RequestID:  id.NewID32(),
		BorrowerID: borrowerID,
		LoanAmount: amount,
		LoanPeriod: *in.LoanPeriod,
		Status:     domain.StatusPending,
	}
	if err := u.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return toDTO(r), nil
}

// ListForUser returns the caller's own requests plus every Pending one.
func (u *Usecase) ListForUser(ctx context.Context, userID uint64) ([]LoanRequestDTO, error) {
	rows, err := u.repo.ListVisibleTo(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]LoanRequestDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *toDTO(&rows[i]))
	}
	return out, nil
}

func toDTO(r *domain.LoanRequest) *LoanRequestDTO {
	return &LoanRequestDTO{
		RequestID:  r.RequestID,
		Borrower:   r.Borrower.Username,
		LoanAmount: r.LoanAmount.StringFixed(2),
		LoanPeriod: r.LoanPeriod,
		Status:     string(r.Status),
		CreatedAt:  r.CreatedAt,
	}
}
