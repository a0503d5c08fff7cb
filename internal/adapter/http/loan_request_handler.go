package http

import (
	"net/http"

	"p2p-lending-backend/internal/adapter/middleware"
	"p2p-lending-backend/internal/usecase/loanrequest"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type LoanRequestHandler struct{ uc *loanrequest.Usecase }

func NewLoanRequestHandler(uc *loanrequest.Usecase) *LoanRequestHandler {
	return &LoanRequestHandler{uc: uc}
}

// Presence is checked by the usecase so a missing field gets its own message.
type submitLoanRequestReq struct {
	LoanAmount *decimal.Decimal `json:"loan_amount" validate:"omitempty,gt=0,lte=99999999.99,dec2"`
	LoanPeriod *int             `json:"loan_period" validate:"omitempty,gt=0"`
}

func (h *LoanRequestHandler) List(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Authentication credentials were not provided."})
	}
	out, err := h.uc.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *LoanRequestHandler) Submit(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Authentication credentials were not provided."})
	}
	var req submitLoanRequestReq
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	if _, err := h.uc.Submit(c.Request().Context(), userID, loanrequest.SubmitInput(req)); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"message": "Loan request submitted successfully"})
}
