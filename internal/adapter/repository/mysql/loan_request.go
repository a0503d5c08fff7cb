package mysql

import (
	"context"

	requestDomain "p2p-lending-backend/internal/domain/loanrequest"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LoanRequestRepository struct{ db *gorm.DB }

func NewLoanRequestRepository(db *gorm.DB) *LoanRequestRepository {
	return &LoanRequestRepository{db: db}
}

func (r *LoanRequestRepository) Create(ctx context.Context, lr *requestDomain.LoanRequest) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(lr).Error
}

func (r *LoanRequestRepository) Save(ctx context.Context, lr *requestDomain.LoanRequest) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(lr).Error
}

func (r *LoanRequestRepository) GetPendingByRequestID(ctx context.Context, requestID string) (*requestDomain.LoanRequest, error) {
	var out requestDomain.LoanRequest
	res := r.db.WithContext(ctx).
		Where("request_id = ? AND status = ?", requestID, requestDomain.StatusPending).
		First(&out)
	return &out, res.Error
}

func (r *LoanRequestRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*requestDomain.LoanRequest, error) {
	var out requestDomain.LoanRequest
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&out)
	return &out, res.Error
}

func (r *LoanRequestRepository) ListVisibleTo(ctx context.Context, borrowerID uint64) ([]requestDomain.LoanRequest, error) {
	var out []requestDomain.LoanRequest
	res := r.db.WithContext(ctx).
		Preload("Borrower").
		Where("borrower_id = ? OR status = ?", borrowerID, requestDomain.StatusPending).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}
