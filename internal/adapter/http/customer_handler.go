package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	customerDomain "credit-approval/internal/domain/customer"
	uc "credit-approval/internal/usecase/customer"
)

type CustomerHandler struct{ uc *uc.Usecase }

func NewCustomerHandler(u *uc.Usecase) *CustomerHandler { return &CustomerHandler{uc: u} }

type registerReq struct {
	FirstName     string  `json:"first_name"     validate:"required,max=100"`
	LastName      string  `json:"last_name"      validate:"required,max=100"`
	Age           int     `json:"age"            validate:"required,gte=18,lte=120"`
	MonthlyIncome float64 `json:"monthly_income" validate:"gte=0,dec2"`
	PhoneNumber   string  `json:"phone_number"   validate:"required,max=15,hasdigit"`
}

func (h *CustomerHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.uc.Register(c.Request().Context(), uc.RegisterInput{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Age:           req.Age,
		MonthlyIncome: decimal.NewFromFloat(req.MonthlyIncome),
		PhoneNumber:   req.PhoneNumber,
	})
	switch {
	case err == nil:
		return c.JSON(http.StatusCreated, dto)
	case errors.Is(err, customerDomain.ErrPhoneTaken), errors.Is(err, uc.ErrInvalidPhone):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
