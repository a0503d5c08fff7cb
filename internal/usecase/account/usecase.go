package account

import (
	"context"
	"errors"
	"strings"

	"p2p-lending-backend/internal/domain/uow"
	"p2p-lending-backend/internal/domain/user"
	"p2p-lending-backend/internal/security"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var errNoUnitOfWork = errors.New("account: unit of work not configured")

type Usecase struct {
	users  user.Repository
	uow    uow.UnitOfWork
	tokens security.TokenManager
}

// NewUsecase: Login reads through users; Register runs inside tx.
func NewUsecase(users user.Repository, tx uow.UnitOfWork, tokens security.TokenManager) *Usecase {
	return &Usecase{users: users, uow: tx, tokens: tokens}
}

func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*user.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, user.ErrInvalidInput
	}
	balance := decimal.Zero
	if in.Balance != nil {
		if in.Balance.IsNegative() {
			return nil, user.ErrInvalidInput
		}
		if !in.Balance.Equal(in.Balance.Truncate(2)) {
			return nil, user.ErrInvalidInput
		}
		balance = *in.Balance
	}
	if u.uow == nil {
		return nil, errNoUnitOfWork
	}

	hash, err := security.HashPassword(in.Password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, user.ErrInvalidInput
		}
		return nil, err
	}
	usr := &user.User{
		Username:     username,
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: hash,
		Balance:      balance,
	}

	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		_, err := r.Users.GetByUsername(ctx, username)
		switch {
		case err == nil:
			return user.ErrUsernameTaken
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}
		return r.Users.Create(ctx, usr)
	})
	if err != nil {
		return nil, err
	}
	return usr, nil
}

func (u *Usecase) Login(ctx context.Context, in LoginInput) (*TokenDTO, error) {
	usr, err := u.users.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrInvalidCredentials
		}
		return nil, err
	}
	if !security.CheckPassword(usr.PasswordHash, in.Password) {
		return nil, user.ErrInvalidCredentials
	}

	tok, err := u.tokens.GenerateAccessToken(usr.ID, usr.Username)
	if err != nil {
		return nil, err
	}
	return &TokenDTO{
		AccessToken: tok,
		TokenType:   "Bearer",
		ExpiresIn:   int64(u.tokens.TTL().Seconds()),
	}, nil
}
