package loanoffer

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateInput struct {
	LoanRequest        *string          `json:"loan_request"` // public request_id
	AnnualInterestRate *decimal.Decimal `json:"annual_interest_rate"`
}

type LoanOfferDTO struct {
	OfferID            string    `json:"offer_id"`
	LoanRequest        string    `json:"loan_request"`
	AnnualInterestRate string    `json:"annual_interest_rate"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
}

// SettlementDTO reports the outcome of Accept / Complete.
type SettlementDTO struct {
	OfferID         string `json:"offer_id"`
	RequestID       string `json:"request_id"`
	OfferStatus     string `json:"offer_status"`
	RequestStatus   string `json:"request_status"`
	TotalDue        string `json:"total_due"`
	InvestorBalance string `json:"investor_balance"`
}
