package loanoffer

import (
	"fmt"
	"time"

	"p2p-lending-backend/internal/domain/loanrequest"
	"p2p-lending-backend/internal/domain/user"
	"p2p-lending-backend/pkg/apperr"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "Pending"
	StatusAccepted  Status = "Accepted"
	StatusCompleted Status = "Completed"
)

var (
	ErrNotPending          = apperr.New(apperr.KindNotFound, "OFFER_NOT_PENDING", "Loan offer not found or not in Pending status")
	ErrNotAccepted         = apperr.New(apperr.KindNotFound, "OFFER_NOT_ACCEPTED", "Loan offer not found or not in Accepted status")
	ErrSelfOffer           = apperr.New(apperr.KindBadRequest, "SELF_OFFER", "You can't make an offer to yourself")
	ErrInsufficientBalance = apperr.New(apperr.KindInsufficientBalance, "INSUFFICIENT_BALANCE", "Investor does not have sufficient balance")
	ErrMissingFields       = apperr.New(apperr.KindValidation, "MISSING_FIELDS", "loan_request and annual_interest_rate are required fields")
	ErrInvalidRate         = apperr.New(apperr.KindValidation, "INVALID_RATE", "Annual interest rate must be between 0 and 100.")
	ErrInvalidTransition   = apperr.New(apperr.KindBadRequest, "OFFER_INVALID_TRANSITION", "invalid loan offer status transition")
)

var (
	MinRate = decimal.Zero
	MaxRate = decimal.NewFromInt(100)
)

// CanTransitionTo reports whether s -> next is a legal forward step.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusAccepted
	case StatusAccepted:
		return next == StatusCompleted
	case StatusCompleted:
		return false
	default:
		return false
	}
}

// ValidRate reports whether rate is within [0,100] with at most 2 decimals.
func ValidRate(rate decimal.Decimal) bool {
	if rate.LessThan(MinRate) || rate.GreaterThan(MaxRate) {
		return false
	}
	return rate.Equal(rate.Truncate(2))
}

// Table: loan_offers
type LoanOffer struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Public identifier (32-char lowercase hex)
	OfferID            string                  `gorm:"column:offer_id;type:char(32);not null;uniqueIndex:ux_loan_offers_offer_id" json:"offer_id"`
	InvestorID         uint64                  `gorm:"column:investor_id;not null;index:idx_loan_offers_investor" json:"-"`
	Investor           user.User               `gorm:"foreignKey:InvestorID;constraint:OnDelete:CASCADE" json:"-"`
	LoanRequestID      uint64                  `gorm:"column:loan_request_id;not null;index:idx_loan_offers_request" json:"-"`
	LoanRequest        loanrequest.LoanRequest `gorm:"foreignKey:LoanRequestID;constraint:OnDelete:CASCADE" json:"-"`
	AnnualInterestRate decimal.Decimal         `gorm:"column:annual_interest_rate;type:decimal(5,2);not null" json:"annual_interest_rate"`
	Status             Status                  `gorm:"column:status;type:varchar(16);not null;default:'Pending'" json:"status"`
	CreatedAt          time.Time               `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time               `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (LoanOffer) TableName() string { return "loan_offers" }

// TransitionTo moves the offer forward or fails without touching it.
func (o *LoanOffer) TransitionTo(next Status) error {
	if !o.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, next)
	}
	o.Status = next
	return nil
}
