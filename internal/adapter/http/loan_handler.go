package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	customerDomain "credit-approval/internal/domain/customer"
	loanDomain "credit-approval/internal/domain/loan"
	uc "credit-approval/internal/usecase/loan"
)

type LoanHandler struct{ uc *uc.Usecase }

func NewLoanHandler(u *uc.Usecase) *LoanHandler { return &LoanHandler{uc: u} }

type loanTermsReq struct {
	CustomerID   string  `json:"customer_id"   validate:"required,hex32"`
	LoanAmount   float64 `json:"loan_amount"   validate:"required,gt=0,dec2"`
	InterestRate float64 `json:"interest_rate" validate:"gte=0,lte=100,dec2"`
	Tenure       int     `json:"tenure"        validate:"required,min=1,max=360"`
}

func (r loanTermsReq) toInput() uc.EligibilityInput {
	return uc.EligibilityInput{
		CustomerID:   r.CustomerID,
		LoanAmount:   decimal.NewFromFloat(r.LoanAmount),
		InterestRate: decimal.NewFromFloat(r.InterestRate),
		Tenure:       r.Tenure,
	}
}

func (h *LoanHandler) bindTerms(c echo.Context) (*loanTermsReq, error) {
	var req loanTermsReq
	if err := c.Bind(&req); err != nil {
		return nil, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return nil, c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	return &req, nil
}

// CheckEligibility is read-only: a rejection still answers 200 with
// approval=false.
func (h *LoanHandler) CheckEligibility(c echo.Context) error {
	req, err := h.bindTerms(c)
	if req == nil {
		return err
	}
	dto, err := h.uc.CheckEligibility(c.Request().Context(), req.toInput())
	if err != nil {
		return mapLoanErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) CreateLoan(c echo.Context) error {
	req, err := h.bindTerms(c)
	if req == nil {
		return err
	}
	dto, err := h.uc.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return mapLoanErr(c, err)
	}
	if !dto.LoanApproved {
		return c.JSON(http.StatusOK, dto)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	loanID := c.Param("loan_id")
	if !reHex32.MatchString(loanID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan id format"})
	}
	dto, err := h.uc.Get(c.Request().Context(), loanID)
	if err != nil {
		return mapLoanErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) ListCustomerLoans(c echo.Context) error {
	customerID := c.Param("customer_id")
	if !reHex32.MatchString(customerID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid customer id format"})
	}
	dto, err := h.uc.ListByCustomer(c.Request().Context(), customerID)
	if err != nil {
		return mapLoanErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func mapLoanErr(c echo.Context, err error) error {
	switch {
	case errors.Is(err, customerDomain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "customer not found"})
	case errors.Is(err, loanDomain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "loan not found"})
	default:
		// keep the detail in server logs, not the response
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
