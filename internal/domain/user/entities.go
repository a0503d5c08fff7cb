package user

import (
	"time"

	"p2p-lending-backend/pkg/apperr"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound           = apperr.New(apperr.KindNotFound, "USER_NOT_FOUND", "User not found")
	ErrUsernameTaken      = apperr.New(apperr.KindValidation, "USERNAME_TAKEN", "A user with that username already exists")
	ErrInvalidCredentials = apperr.New(apperr.KindUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password")
	ErrInvalidInput       = apperr.New(apperr.KindValidation, "INVALID_USER", "username and password (at most 72 bytes) are required, balance must be non-negative with at most 2 decimals")
)

// Table: users. Balance is only written by offer completion.
type User struct {
	ID           uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	Username     string          `gorm:"column:username;size:150;not null;uniqueIndex:ux_users_username" json:"username"`
	Email        string          `gorm:"column:email;size:254" json:"email"`
	PasswordHash string          `gorm:"column:password_hash;size:100;not null" json:"-"`
	Balance      decimal.Decimal `gorm:"column:balance;type:decimal(10,2);not null;default:0" json:"balance"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }
