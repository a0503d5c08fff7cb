package mysql

import (
	"context"

	offerDomain "p2p-lending-backend/internal/domain/loanoffer"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LoanOfferRepository struct{ db *gorm.DB }

func NewLoanOfferRepository(db *gorm.DB) *LoanOfferRepository { return &LoanOfferRepository{db: db} }

func (r *LoanOfferRepository) Create(ctx context.Context, o *offerDomain.LoanOffer) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(o).Error
}

func (r *LoanOfferRepository) Save(ctx context.Context, o *offerDomain.LoanOffer) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(o).Error
}

// GetForUpdate locks the offer row (and, with a borrower filter, the joined
// request row). No row matching every filter yields gorm.ErrRecordNotFound.
func (r *LoanOfferRepository) GetForUpdate(ctx context.Context, f offerDomain.LockFilter) (*offerDomain.LoanOffer, error) {
	q := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("loan_offers.*").
		Where("loan_offers.offer_id = ? AND loan_offers.status = ?", f.OfferID, f.Status)
	if f.InvestorID != 0 {
		q = q.Where("loan_offers.investor_id = ?", f.InvestorID)
	}
	if f.BorrowerID != 0 {
		q = q.Joins("JOIN loan_requests ON loan_requests.id = loan_offers.loan_request_id").
			Where("loan_requests.borrower_id = ?", f.BorrowerID)
	}

	var out offerDomain.LoanOffer
	res := q.First(&out)
	return &out, res.Error
}

func (r *LoanOfferRepository) ListByInvestor(ctx context.Context, investorID uint64) ([]offerDomain.LoanOffer, error) {
	var out []offerDomain.LoanOffer
	res := r.db.WithContext(ctx).
		Preload("LoanRequest").
		Where("investor_id = ?", investorID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}
