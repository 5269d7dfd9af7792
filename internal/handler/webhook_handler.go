package handler

import (
	"context"
	"log"
	"strings"

	"go-resell-sync/internal/service"

	"github.com/gofiber/fiber/v2"
)

type WebhookHandler struct {
	sales service.SaleService
}

func NewWebhookHandler(s service.SaleService) *WebhookHandler {
	return &WebhookHandler{sales: s}
}

// cloverWebhookPayload mirrors Clover's delivery envelope: object ids are
// prefixed with a type tag, "O:<id>" for orders.
type cloverWebhookPayload struct {
	AppID     string `json:"appId"`
	Merchants map[string][]struct {
		ObjectID string `json:"objectId"`
		Type     string `json:"type"`
		TS       int64  `json:"ts"`
	} `json:"merchants"`
}

// HandleClover ACKs the delivery immediately and processes order events in
// the background; Clover retries on non-2xx, and inventory processing must
// never hold the delivery hostage.
func (h *WebhookHandler) HandleClover(c *fiber.Ctx) error {
	var payload cloverWebhookPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	var orderIDs []string
	for _, events := range payload.Merchants {
		for _, event := range events {
			if id, ok := strings.CutPrefix(event.ObjectID, "O:"); ok && id != "" {
				orderIDs = append(orderIDs, id)
			}
		}
	}

	if len(orderIDs) > 0 {
		go func() {
			ctx := context.Background()
			for _, orderID := range orderIDs {
				if err := h.sales.HandleCloverSale(ctx, orderID); err != nil {
					log.Printf("Warning: clover webhook order %s: %v", orderID, err)
				}
			}
		}()
	}

	return c.JSON(fiber.Map{"received": true, "orders": len(orderIDs)})
}
