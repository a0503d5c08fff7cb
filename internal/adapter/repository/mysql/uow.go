package mysql

import (
	"context"
	"errors"

	"p2p-lending-backend/internal/domain/loanoffer"
	"p2p-lending-backend/internal/domain/uow"
	"p2p-lending-backend/pkg/apperr"

	mysqldrv "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// MySQL server error numbers that abort a transaction but are safe to retry.
const (
	erLockWaitTimeout = 1205
	erLockDeadlock    = 1213
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Users:    &UserRepository{db: tx},
		Requests: &LoanRequestRepository{db: tx},
		Offers:   &LoanOfferRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
	return translateTxError(err)
}

func (u *GormUoW) WithinOfferTx(ctx context.Context, f loanoffer.LockFilter, fn func(r uow.Repos, o *loanoffer.LoanOffer) error) error {
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		// lock the offer row up-front; concurrent transitions on it queue here
		o, err := r.Offers.GetForUpdate(ctx, f)
		if err != nil {
			return err
		}
		return fn(r, o)
	})
	return translateTxError(err)
}

func translateTxError(err error) error {
	var me *mysqldrv.MySQLError
	if errors.As(err, &me) && (me.Number == erLockWaitTimeout || me.Number == erLockDeadlock) {
		return apperr.Conflict(err)
	}
	return err
}
