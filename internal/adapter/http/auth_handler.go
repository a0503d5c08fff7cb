package http

import (
	"net/http"

	"p2p-lending-backend/internal/usecase/account"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type AuthHandler struct{ uc *account.Usecase }

func NewAuthHandler(uc *account.Usecase) *AuthHandler { return &AuthHandler{uc: uc} }

type registerReq struct {
	Username string           `json:"username" validate:"required,max=150"`
	Email    string           `json:"email"    validate:"omitempty,email,max=254"`
	Password string           `json:"password" validate:"required,max=72"`
	Balance  *decimal.Decimal `json:"balance"  validate:"omitempty,gte=0,lte=99999999.99,dec2"`
}

type loginReq struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	if _, err := h.uc.Register(c.Request().Context(), account.RegisterInput(req)); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"message": "User registered successfully"})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	tok, err := h.uc.Login(c.Request().Context(), account.LoginInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, tok)
}
