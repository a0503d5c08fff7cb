package mysql

import (
	"context"
	"errors"

	userDomain "p2p-lending-backend/internal/domain/user"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) Create(ctx context.Context, u *userDomain.User) error {
	err := r.db.WithContext(ctx).Create(u).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return userDomain.ErrUsernameTaken
	}
	return err
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*userDomain.User, error) {
	var out userDomain.User
	res := r.db.WithContext(ctx).Where("username = ?", username).First(&out)
	return &out, res.Error
}

func (r *UserRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*userDomain.User, error) {
	var out userDomain.User
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&out)
	return &out, res.Error
}

func (r *UserRepository) UpdateBalance(ctx context.Context, id uint64, balance decimal.Decimal) error {
	return r.db.WithContext(ctx).
		Model(&userDomain.User{}).
		Where("id = ?", id).
		Update("balance", balance).Error
}
