package http

import (
	"net/http"

	"p2p-lending-backend/internal/adapter/middleware"
	"p2p-lending-backend/internal/usecase/loanoffer"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type LoanOfferHandler struct{ uc *loanoffer.Usecase }

func NewLoanOfferHandler(uc *loanoffer.Usecase) *LoanOfferHandler { return &LoanOfferHandler{uc: uc} }

type createLoanOfferReq struct {
	LoanRequest *string `json:"loan_request" validate:"omitempty,hex32"`
	// range and precision are checked by the usecase, after the self-offer rule
	AnnualInterestRate *decimal.Decimal `json:"annual_interest_rate"`
}

func (h *LoanOfferHandler) List(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Authentication credentials were not provided."})
	}
	out, err := h.uc.ListForInvestor(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *LoanOfferHandler) Create(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Authentication credentials were not provided."})
	}
	var req createLoanOfferReq
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	if _, err := h.uc.Create(c.Request().Context(), userID, loanoffer.CreateInput(req)); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"message": "Loan offer submitted successfully"})
}

// Accept: the caller must own the offer's loan request.
func (h *LoanOfferHandler) Accept(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Authentication credentials were not provided."})
	}
	if _, err := h.uc.Accept(c.Request().Context(), c.Param("offer_id"), userID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Loan offer accepted and loan funded successfully"})
}

// Complete: the caller must be the offer's investor.
func (h *LoanOfferHandler) Complete(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Authentication credentials were not provided."})
	}
	if _, err := h.uc.Complete(c.Request().Context(), c.Param("offer_id"), userID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Loan offer Completed and loan Completed successfully"})
}
