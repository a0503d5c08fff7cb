package account

import "github.com/shopspring/decimal"

type RegisterInput struct {
	Username string           `json:"username"`
	Email    string           `json:"email"`
	Password string           `json:"password"`
	Balance  *decimal.Decimal `json:"balance"` // optional opening balance
}

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenDTO struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"` // seconds
}
