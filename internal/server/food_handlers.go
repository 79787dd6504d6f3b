package server

import (
	"verser/internal/models"
	"verser/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateFoodOrderRequest is the order payload.
type CreateFoodOrderRequest struct {
	Items []service.OrderLine `json:"items"`
}

// GetMenu lists available menu items
func (s *Server) GetMenu(c *fiber.Ctx) error {
	items, err := s.orderService.ListMenu(c.UserContext())
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"items": items})
}

// CreateFoodOrder places an order priced at current menu prices
func (s *Server) CreateFoodOrder(c *fiber.Ctx) error {
	var req CreateFoodOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	order, err := s.orderService.CreateOrder(c.UserContext(), service.CreateOrderInput{
		UserID: mustUserID(c),
		Lines:  req.Items,
	})
	if err != nil {
		return respondAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// GetFoodOrders lists the authenticated user's orders
func (s *Server) GetFoodOrders(c *fiber.Ctx) error {
	p := parsePagination(c)
	orders, err := s.orderService.ListOrders(c.UserContext(), mustUserID(c), p.Limit, p.Offset)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"orders": orders})
}
