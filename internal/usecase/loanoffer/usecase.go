package loanoffer

import (
	"context"
	"errors"

	domain "p2p-lending-backend/internal/domain/loanoffer"
	"p2p-lending-backend/internal/domain/loanrequest"
	"p2p-lending-backend/internal/domain/uow"
	"p2p-lending-backend/internal/domain/user"
	"p2p-lending-backend/pkg/id"
	"p2p-lending-backend/pkg/money"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var errNoUnitOfWork = errors.New("loanoffer: unit of work not configured")

type Usecase struct {
	requests loanrequest.Repository
	offers   domain.Repository
	uow      uow.UnitOfWork
	log      *zap.Logger
}

// NewUsecase: plain repos serve reads and Create; the UoW runs Accept / Complete.
func NewUsecase(requests loanrequest.Repository, offers domain.Repository, tx uow.UnitOfWork, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{requests: requests, offers: offers, uow: tx, log: log}
}

func (u *Usecase) Create(ctx context.Context, investorID uint64, in CreateInput) (*LoanOfferDTO, error) {
	if in.LoanRequest == nil || in.AnnualInterestRate == nil {
		return nil, domain.ErrMissingFields
	}
	req, err := u.requests.GetPendingByRequestID(ctx, *in.LoanRequest)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loanrequest.ErrNotPending
		}
		return nil, err
	}
	// self-offer wins over a bad rate
	if req.BorrowerID == investorID {
		return nil, domain.ErrSelfOffer
	}
	if !domain.ValidRate(*in.AnnualInterestRate) {
		return nil, domain.ErrInvalidRate
	}

	o := &domain.LoanOffer{
		OfferID:            id.NewID32(),
		InvestorID:         investorID,
		LoanRequestID:      req.ID,
		AnnualInterestRate: *in.AnnualInterestRate,
		Status:             domain.StatusPending,
	}
	if err := u.offers.Create(ctx, o); err != nil {
		return nil, err
	}
	o.LoanRequest = *req
	return toDTO(o), nil
}

func (u *Usecase) ListForInvestor(ctx context.Context, investorID uint64) ([]LoanOfferDTO, error) {
	rows, err := u.offers.ListByInvestor(ctx, investorID)
	if err != nil {
		return nil, err
	}
	out := make([]LoanOfferDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *toDTO(&rows[i]))
	}
	return out, nil
}

// Accept is called by the borrower who owns the offer's request. The
// investor's balance is checked against the total due but not debited.
func (u *Usecase) Accept(ctx context.Context, offerID string, borrowerID uint64) (*SettlementDTO, error) {
	if u.uow == nil {
		return nil, errNoUnitOfWork
	}
	var dto *SettlementDTO

	f := domain.LockFilter{OfferID: offerID, BorrowerID: borrowerID, Status: domain.StatusPending}
	err := u.uow.WithinOfferTx(ctx, f, func(r uow.Repos, o *domain.LoanOffer) error {
		req, inv, err := lockParties(ctx, r, o)
		if err != nil {
			return err
		}

		due := money.TotalDue(req.LoanAmount, o.AnnualInterestRate, req.LoanPeriod)
		if !money.Sufficient(inv.Balance, due) {
			return domain.ErrInsufficientBalance
		}

		if err := o.TransitionTo(domain.StatusAccepted); err != nil {
			return err
		}
		if err := req.TransitionTo(loanrequest.StatusFunded); err != nil {
			return err
		}
		if err := r.Offers.Save(ctx, o); err != nil {
			return err
		}
		if err := r.Requests.Save(ctx, req); err != nil {
			return err
		}

		dto = settlement(o, req, due, inv)
		return nil
	})
	if err != nil {
		return nil, lockMiss(err, domain.ErrNotPending)
	}

	u.log.Info("loan offer accepted",
		zap.String("offer_id", dto.OfferID),
		zap.String("request_id", dto.RequestID),
		zap.Uint64("borrower_id", borrowerID),
		zap.String("total_due", dto.TotalDue),
	)
	return dto, nil
}

// Complete is called by the offer's investor and debits the total due.
func (u *Usecase) Complete(ctx context.Context, offerID string, investorID uint64) (*SettlementDTO, error) {
	if u.uow == nil {
		return nil, errNoUnitOfWork
	}
	var dto *SettlementDTO

	f := domain.LockFilter{OfferID: offerID, InvestorID: investorID, Status: domain.StatusAccepted}
	err := u.uow.WithinOfferTx(ctx, f, func(r uow.Repos, o *domain.LoanOffer) error {
		req, inv, err := lockParties(ctx, r, o)
		if err != nil {
			return err
		}

		due := money.TotalDue(req.LoanAmount, o.AnnualInterestRate, req.LoanPeriod)
		if !money.Sufficient(inv.Balance, due) {
			return domain.ErrInsufficientBalance
		}

		if err := o.TransitionTo(domain.StatusCompleted); err != nil {
			return err
		}
		if err := req.TransitionTo(loanrequest.StatusCompleted); err != nil {
			return err
		}

		inv.Balance = inv.Balance.Sub(due)
		if err := r.Users.UpdateBalance(ctx, inv.ID, inv.Balance); err != nil {
			return err
		}
		if err := r.Offers.Save(ctx, o); err != nil {
			return err
		}
		if err := r.Requests.Save(ctx, req); err != nil {
			return err
		}

		dto = settlement(o, req, due, inv)
		return nil
	})
	if err != nil {
		return nil, lockMiss(err, domain.ErrNotAccepted)
	}

	u.log.Info("loan offer completed",
		zap.String("offer_id", dto.OfferID),
		zap.String("request_id", dto.RequestID),
		zap.Uint64("investor_id", investorID),
		zap.String("total_due", dto.TotalDue),
		zap.String("investor_balance", dto.InvestorBalance),
	)
	return dto, nil
}

// lockParties locks the request then the investor, after the offer lock
// WithinOfferTx already holds.
func lockParties(ctx context.Context, r uow.Repos, o *domain.LoanOffer) (*loanrequest.LoanRequest, *user.User, error) {
	req, err := r.Requests.GetByIDForUpdate(ctx, o.LoanRequestID)
	if err != nil {
		return nil, nil, err
	}
	inv, err := r.Users.GetByIDForUpdate(ctx, o.InvestorID)
	if err != nil {
		return nil, nil, err
	}
	return req, inv, nil
}

// lockMiss turns "no row matched the lock filter" into the caller-facing miss.
func lockMiss(err, miss error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return miss
	}
	return err
}

func settlement(o *domain.LoanOffer, req *loanrequest.LoanRequest, due decimal.Decimal, inv *user.User) *SettlementDTO {
	return &SettlementDTO{
		OfferID:         o.OfferID,
		RequestID:       req.RequestID,
		OfferStatus:     string(o.Status),
		RequestStatus:   string(req.Status),
		TotalDue:        due.StringFixed(2),
		InvestorBalance: inv.Balance.StringFixed(2),
	}
}

func toDTO(o *domain.LoanOffer) *LoanOfferDTO {
	return &LoanOfferDTO{
		OfferID:            o.OfferID,
		LoanRequest:        o.LoanRequest.RequestID,
		AnnualInterestRate: o.AnnualInterestRate.StringFixed(2),
		Status:             string(o.Status),
		CreatedAt:          o.CreatedAt,
	}
}
