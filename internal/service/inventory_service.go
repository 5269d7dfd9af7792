package service

import (
	"errors"
	"fmt"

	"go-resell-sync/internal/model"
	"go-resell-sync/internal/repository"
	"go-resell-sync/internal/ws"
	"go-resell-sync/pkg/validator"

	"github.com/google/uuid"
)

var ErrSKUExists = errors.New("SKU already exists")

type InventoryService interface {
	CreateProduct(req *model.Product, userID string) error
	UpdateProduct(id uuid.UUID, req *model.Product, userID string) (*model.Product, error)
	GetAllProducts() ([]model.Product, error)
	GetProduct(id uuid.UUID) (*model.Product, error)

	// RecordManualAdjustment sets a counted quantity and writes the audit row
	// (reason manual_count, source manual).
	RecordManualAdjustment(id uuid.UUID, newQty int, note, userID string) (*model.Product, error)

	GetRecentAdjustments(limit int) ([]model.Adjustment, error)
	GetProductAdjustments(id uuid.UUID, limit int) ([]model.Adjustment, error)
}

type inventoryService struct {
	productRepo    repository.ProductRepository
	adjustmentRepo repository.AdjustmentRepository
	hub            *ws.Hub
}

func NewInventoryService(pRepo repository.ProductRepository, aRepo repository.AdjustmentRepository, hub *ws.Hub) InventoryService {
	return &inventoryService{
		productRepo:    pRepo,
		adjustmentRepo: aRepo,
		hub:            hub,
	}
}

func validationError(errs []*validator.ErrorResponse) error {
	first := errs[0]
	return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
}

func (s *inventoryService) CreateProduct(req *model.Product, userID string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return validationError(errs)
	}

	if req.SKU != "" {
		existing, _ := s.productRepo.FindBySKU(req.SKU)
		if existing != nil && existing.ID != uuid.Nil {
			return ErrSKUExists
		}
	}

	req.CreatedBy = userID
	req.UpdatedBy = userID

	if err := s.productRepo.Create(req); err != nil {
		return err
	}

	s.hub.Publish("stock_update", "product_created", map[string]interface{}{
		"product_id": req.ID,
		"name":       req.Name,
		"sku":        req.SKU,
		"stock":      req.Stock,
	})
	return nil
}

func (s *inventoryService) UpdateProduct(id uuid.UUID, req *model.Product, userID string) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	existing, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	oldStock := existing.Stock
	existing.Name = req.Name
	existing.SKU = req.SKU
	existing.Barcode = req.Barcode
	existing.Stock = req.Stock
	existing.Price = req.Price
	existing.Active = req.Active
	existing.UpdatedBy = userID

	if err := s.productRepo.Update(existing); err != nil {
		return nil, err
	}

	s.hub.Publish("stock_update", "product_updated", map[string]interface{}{
		"product_id": existing.ID,
		"name":       existing.Name,
		"old_stock":  oldStock,
		"new_stock":  existing.Stock,
	})
	return existing, nil
}

func (s *inventoryService) GetAllProducts() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *inventoryService) GetProduct(id uuid.UUID) (*model.Product, error) {
	return s.productRepo.FindByID(id)
}

func (s *inventoryService) RecordManualAdjustment(id uuid.UUID, newQty int, note, userID string) (*model.Product, error) {
	if newQty < 0 {
		return nil, errors.New("counted quantity cannot be negative")
	}

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	prev, next, err := s.productRepo.AdjustStock(id, newQty-product.Stock, userID)
	if err != nil {
		return nil, err
	}
	product.Stock = next

	if prev != next {
		adj := &model.Adjustment{
			ProductID: id,
			Delta:     next - prev,
			Reason:    model.ReasonManualCount,
			Source:    model.SourceManual,
			PrevQty:   prev,
			NewQty:    next,
			Note:      note,
		}
		adj.CreatedBy = userID
		adj.UpdatedBy = userID
		if err := s.adjustmentRepo.Create(adj); err != nil {
			return nil, err
		}
	}

	s.hub.Publish("stock_update", "manual_adjustment", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
		"old_stock":  prev,
		"new_stock":  next,
	})
	return product, nil
}

func (s *inventoryService) GetRecentAdjustments(limit int) ([]model.Adjustment, error) {
	return s.adjustmentRepo.FindRecent(limit)
}

func (s *inventoryService) GetProductAdjustments(id uuid.UUID, limit int) ([]model.Adjustment, error) {
	return s.adjustmentRepo.FindByProduct(id, limit)
}
