package loanrequest

import (
	"time"

	"github.com/shopspring/decimal"
)

// Pointer fields distinguish "missing" from zero.
type SubmitInput struct {
	LoanAmount *decimal.Decimal `json:"loan_amount"`
	LoanPeriod *int             `json:"loan_period"`
}

type LoanRequestDTO struct {
	RequestID  string    `json:"request_id"`
	Borrower   string    `json:"borrower"`
	LoanAmount string    `json:"loan_amount"`
	LoanPeriod int       `json:"loan_period"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}
