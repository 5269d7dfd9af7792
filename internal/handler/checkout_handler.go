package handler

import (
	"errors"
	"fmt"

	"go-resell-sync/internal/repository"
	"go-resell-sync/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CheckoutHandler struct {
	sales service.SaleService
}

func NewCheckoutHandler(s service.SaleService) *CheckoutHandler {
	return &CheckoutHandler{sales: s}
}

type checkoutLine struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

type checkoutRequest struct {
	OrderRef string         `json:"order_ref"`
	Items    []checkoutLine `json:"items"`
}

// RecordCheckout registers the inventory side of a completed web order:
// one decrement and one audit row per line. The Clover push happens in the
// background and cannot fail this request.
func (h *CheckoutHandler) RecordCheckout(c *fiber.Ctx) error {
	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if len(req.Items) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Order has no items"})
	}

	note := "Web order"
	if req.OrderRef != "" {
		note = fmt.Sprintf("Web order %s", req.OrderRef)
	}

	results := make([]fiber.Map, 0, len(req.Items))
	for _, line := range req.Items {
		product, err := h.sales.RecordWebSale(c.Context(), line.ProductID, line.Quantity, note, getAdminEmail(c))
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return c.Status(404).JSON(fiber.Map{"error": fmt.Sprintf("Product %s not found", line.ProductID)})
			}
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		results = append(results, fiber.Map{
			"product_id": product.ID,
			"name":       product.Name,
			"stock":      product.Stock,
		})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Sale recorded", "items": results})
}
