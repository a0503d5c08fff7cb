package loanrequest

import (
	"fmt"
	"time"

	"p2p-lending-backend/internal/domain/user"
	"p2p-lending-backend/pkg/apperr"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "Pending"
	StatusFunded    Status = "Funded"
	StatusCompleted Status = "Completed"
)

var (
	ErrNotFound          = apperr.New(apperr.KindNotFound, "REQUEST_NOT_FOUND", "Loan request not found")
	ErrNotPending        = apperr.New(apperr.KindBadRequest, "REQUEST_NOT_PENDING", "Loan request not found or not in Pending status")
	ErrInvalidInput      = apperr.New(apperr.KindValidation, "INVALID_LOAN_REQUEST", "loan_amount and loan_period must be greater than 0")
	ErrMissingFields     = apperr.New(apperr.KindValidation, "MISSING_FIELDS", "loan_amount and loan_period are required fields")
	ErrInvalidTransition = apperr.New(apperr.KindBadRequest, "REQUEST_INVALID_TRANSITION", "invalid loan request status transition")
)

// CanTransitionTo reports whether s -> next is a legal forward step.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusFunded
	case StatusFunded:
		return next == StatusCompleted
	case StatusCompleted:
		return false
	default:
		return false
	}
}

// Table: loan_requests
type LoanRequest struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Public identifier (32-char lowercase hex)
	RequestID  string          `gorm:"column:request_id;type:char(32);not null;uniqueIndex:ux_loan_requests_request_id" json:"request_id"`
	BorrowerID uint64          `gorm:"column:borrower_id;not null;index:idx_loan_requests_borrower" json:"-"`
	Borrower   user.User       `gorm:"foreignKey:BorrowerID;constraint:OnDelete:CASCADE" json:"-"`
	LoanAmount decimal.Decimal `gorm:"column:loan_amount;type:decimal(10,2);not null" json:"loan_amount"`
	LoanPeriod int             `gorm:"column:loan_period;not null" json:"loan_period"`
	Status     Status          `gorm:"column:status;type:varchar(16);not null;default:'Pending';index:idx_loan_requests_status" json:"status"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (LoanRequest) TableName() string { return "loan_requests" }

// TransitionTo moves the request forward or fails without touching it.
func (r *LoanRequest) TransitionTo(next Status) error {
	if !r.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, r.Status, next)
	}
	r.Status = next
	return nil
}
