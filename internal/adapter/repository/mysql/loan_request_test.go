package mysql

import (
	"context"
	"errors"
	"testing"

	requestDomain "p2p-lending-backend/internal/domain/loanrequest"
	"p2p-lending-backend/pkg/id"

	"gorm.io/gorm"
)

func TestLoanRequest_CreateAndGet(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	b := seedUser(t, db, "borrower", "0")
	lr := seedRequest(t, db, b.ID, "5000.00", 6, requestDomain.StatusPending)
	if lr.ID == 0 {
		t.Fatalf("Create did not set auto-increment ID")
	}

	got, err := findRequest(ctx, db, lr.RequestID)
	if err != nil {
		t.Fatalf("find request: %v", err)
	}
	if got.BorrowerID != b.ID || got.LoanPeriod != 6 || !got.LoanAmount.Equal(dec("5000")) {
		t.Errorf("unexpected request: %+v", got)
	}
	if got.Status != requestDomain.StatusPending {
		t.Errorf("status = %s, want Pending", got.Status)
	}
}

func TestLoanRequest_GetPendingByRequestID(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRequestRepository(db)
	ctx := context.Background()

	b := seedUser(t, db, "borrower", "0")
	pending := seedRequest(t, db, b.ID, "1000.00", 3, requestDomain.StatusPending)
	funded := seedRequest(t, db, b.ID, "1000.00", 3, requestDomain.StatusFunded)

	if _, err := repo.GetPendingByRequestID(ctx, pending.RequestID); err != nil {
		t.Fatalf("pending lookup: %v", err)
	}
	if _, err := repo.GetPendingByRequestID(ctx, funded.RequestID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("funded request must not match pending lookup, got %v", err)
	}
	if _, err := repo.GetPendingByRequestID(ctx, id.NewID32()); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("unknown request: expected ErrRecordNotFound, got %v", err)
	}
}

func TestLoanRequest_ListVisibleTo(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRequestRepository(db)
	ctx := context.Background()

	me := seedUser(t, db, "me", "0")
	other := seedUser(t, db, "other", "0")

	mine1 := seedRequest(t, db, me.ID, "100.00", 1, requestDomain.StatusPending)
	mine2 := seedRequest(t, db, me.ID, "200.00", 2, requestDomain.StatusCompleted)
	theirsOpen := seedRequest(t, db, other.ID, "300.00", 3, requestDomain.StatusPending)
	seedRequest(t, db, other.ID, "400.00", 4, requestDomain.StatusFunded) // hidden

	got, err := repo.ListVisibleTo(ctx, me.ID)
	if err != nil {
		t.Fatalf("ListVisibleTo: %v", err)
	}
	want := []string{mine1.RequestID, mine2.RequestID, theirsOpen.RequestID}
	if len(got) != len(want) {
		t.Fatalf("got %d rows, want %d: %+v", len(got), len(want), got)
	}
	for i, w := range want {
		if got[i].RequestID != w {
			t.Errorf("row %d = %s, want %s", i, got[i].RequestID, w)
		}
	}
	if got[2].Borrower.Username != "other" {
		t.Errorf("borrower not preloaded: %+v", got[2].Borrower)
	}
}

func TestLoanRequest_SaveAndLock(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRequestRepository(db)
	ctx := context.Background()

	b := seedUser(t, db, "borrower", "0")
	lr := seedRequest(t, db, b.ID, "5000.00", 6, requestDomain.StatusPending)

	locked, err := repo.GetByIDForUpdate(ctx, lr.ID)
	if err != nil {
		t.Fatalf("GetByIDForUpdate: %v", err)
	}
	locked.Status = requestDomain.StatusFunded
	if err := repo.Save(ctx, locked); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := findRequest(ctx, db, lr.RequestID)
	if err != nil {
		t.Fatalf("find request: %v", err)
	}
	if got.Status != requestDomain.StatusFunded {
		t.Fatalf("status = %s, want Funded", got.Status)
	}
}
