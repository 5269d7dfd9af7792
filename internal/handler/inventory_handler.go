package handler

import (
	"errors"
	"strconv"

	"go-resell-sync/internal/model"
	"go-resell-sync/internal/repository"
	"go-resell-sync/internal/service"
	"go-resell-sync/pkg/money"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

// getAdminEmail reads the admin identity set by the auth middleware
func getAdminEmail(c *fiber.Ctx) string {
	email := c.Locals("admin_email")
	if email == nil {
		return "system"
	}
	return email.(string)
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// productRequest is the API shape: price arrives in dollars and is converted
// once, here, to the integer cents the model carries.
type productRequest struct {
	Name    string          `json:"name"`
	SKU     string          `json:"sku"`
	Barcode string          `json:"barcode"`
	Stock   int             `json:"stock"`
	Price   decimal.Decimal `json:"price"`
	Active  *bool           `json:"active"`
}

func (r *productRequest) toModel() *model.Product {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return &model.Product{
		Name:    r.Name,
		SKU:     r.SKU,
		Barcode: r.Barcode,
		Stock:   r.Stock,
		Price:   money.ToCents(r.Price),
		Active:  active,
	}
}

func (h *InventoryHandler) CreateProduct(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product := req.toModel()
	if err := h.service.CreateProduct(product, getAdminEmail(c)); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Product created", "data": product})
}

func (h *InventoryHandler) UpdateProduct(c *fiber.Ctx) error {
	productID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.service.UpdateProduct(productID, req.toModel(), getAdminEmail(c))
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Product not found"})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Product updated", "data": updated})
}

func (h *InventoryHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(products)
}

func (h *InventoryHandler) GetProduct(c *fiber.Ctx) error {
	productID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	product, err := h.service.GetProduct(productID)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Product not found"})
	}
	return c.JSON(product)
}

type manualAdjustmentRequest struct {
	Quantity int    `json:"quantity"`
	Note     string `json:"note"`
}

// AdjustProduct records a counted quantity (stock take) for one product.
func (h *InventoryHandler) AdjustProduct(c *fiber.Ctx) error {
	productID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var req manualAdjustmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.service.RecordManualAdjustment(productID, req.Quantity, req.Note, getAdminEmail(c))
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Product not found"})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Adjustment recorded", "data": product})
}

func adjustmentLimit(c *fiber.Ctx) int {
	limit, err := strconv.Atoi(c.Query("limit", "100"))
	if err != nil || limit <= 0 || limit > 500 {
		return 100
	}
	return limit
}

func (h *InventoryHandler) GetAdjustments(c *fiber.Ctx) error {
	adjustments, err := h.service.GetRecentAdjustments(adjustmentLimit(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(adjustments)
}

func (h *InventoryHandler) GetProductAdjustments(c *fiber.Ctx) error {
	productID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	adjustments, err := h.service.GetProductAdjustments(productID, adjustmentLimit(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(adjustments)
}
