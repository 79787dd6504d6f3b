package server

import (
	"verser/internal/models"
	"verser/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePaymentRequest is the payment creation payload. Amount is in minor
// units (cents).
type CreatePaymentRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// CreatePayment records a mock payment; it settles immediately
func (s *Server) CreatePayment(c *fiber.Ctx) error {
	var req CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	payment, err := s.paymentService.CreatePayment(c.UserContext(), service.CreatePaymentInput{
		UserID:   mustUserID(c),
		Amount:   req.Amount,
		Currency: req.Currency,
	})
	if err != nil {
		return respondAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(payment)
}

// GetPayments lists the authenticated user's payments
func (s *Server) GetPayments(c *fiber.Ctx) error {
	p := parsePagination(c)
	payments, err := s.paymentService.ListPayments(c.UserContext(), mustUserID(c), p.Limit, p.Offset)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"payments": payments})
}
