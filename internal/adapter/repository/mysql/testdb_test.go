package mysql

import (
	"context"
	"testing"

	offerDomain "p2p-lending-backend/internal/domain/loanoffer"
	requestDomain "p2p-lending-backend/internal/domain/loanrequest"
	userDomain "p2p-lending-backend/internal/domain/user"
	"p2p-lending-backend/pkg/id"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openTestDB creates an in-memory sqlite DB with the full ledger schema.
// A single connection keeps every statement on the same in-memory database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&userDomain.User{}, &requestDomain.LoanRequest{}, &offerDomain.LoanOffer{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func seedUser(t *testing.T, db *gorm.DB, username, balance string) *userDomain.User {
	t.Helper()
	u := &userDomain.User{Username: username, PasswordHash: "x", Balance: dec(balance)}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return u
}

func seedRequest(t *testing.T, db *gorm.DB, borrowerID uint64, amount string, period int, st requestDomain.Status) *requestDomain.LoanRequest {
	t.Helper()
	lr := &requestDomain.LoanRequest{
		RequestID:  id.NewID32(),
		BorrowerID: borrowerID,
		LoanAmount: dec(amount),
		LoanPeriod: period,
		Status:     st,
	}
	if err := NewLoanRequestRepository(db).Create(context.Background(), lr); err != nil {
		t.Fatalf("seed request: %v", err)
	}
	return lr
}

func seedOffer(t *testing.T, db *gorm.DB, investorID, requestID uint64, rate string, st offerDomain.Status) *offerDomain.LoanOffer {
	t.Helper()
	o := &offerDomain.LoanOffer{
		OfferID:            id.NewID32(),
		InvestorID:         investorID,
		LoanRequestID:      requestID,
		AnnualInterestRate: dec(rate),
		Status:             st,
	}
	if err := NewLoanOfferRepository(db).Create(context.Background(), o); err != nil {
		t.Fatalf("seed offer: %v", err)
	}
	return o
}

func findRequest(ctx context.Context, db *gorm.DB, publicID string) (*requestDomain.LoanRequest, error) {
	var out requestDomain.LoanRequest
	err := db.WithContext(ctx).Where("request_id = ?", publicID).First(&out).Error
	return &out, err
}

func findOffer(ctx context.Context, db *gorm.DB, publicID string) (*offerDomain.LoanOffer, error) {
	var out offerDomain.LoanOffer
	err := db.WithContext(ctx).Where("offer_id = ?", publicID).First(&out).Error
	return &out, err
}
