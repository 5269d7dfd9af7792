package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"go-resell-sync/internal/clover"
	"go-resell-sync/internal/model"
	"go-resell-sync/internal/repository"
	"go-resell-sync/internal/ws"

	"github.com/google/uuid"
)

var ErrInvalidQuantity = errors.New("quantity must be greater than zero")

// SaleService records sales in the store ledger and nudges the Clover side
// so the two stay approximately consistent between full syncs. The nudges
// are fire-and-forget: they never block or fail the triggering sale.
type SaleService interface {
	// RecordWebSale decrements stock for a storefront sale (clamped at zero),
	// writes the audit row, and asynchronously pushes the new count to Clover
	// when the product is linked.
	RecordWebSale(ctx context.Context, productID uuid.UUID, quantity int, note, userID string) (*model.Product, error)

	// HandleCloverSale processes a POS sale delivered by webhook: fetches the
	// order's line items and decrements matched store products.
	HandleCloverSale(ctx context.Context, orderID string) error
}

type saleService struct {
	productRepo    repository.ProductRepository
	adjustmentRepo repository.AdjustmentRepository
	pos            clover.Client
	hub            *ws.Hub
	metrics        *SyncMetrics
}

func NewSaleService(
	pRepo repository.ProductRepository,
	aRepo repository.AdjustmentRepository,
	pos clover.Client,
	hub *ws.Hub,
	metrics *SyncMetrics,
) SaleService {
	return &saleService{
		productRepo:    pRepo,
		adjustmentRepo: aRepo,
		pos:            pos,
		hub:            hub,
		metrics:        metrics,
	}
}

func (s *saleService) RecordWebSale(ctx context.Context, productID uuid.UUID, quantity int, note, userID string) (*model.Product, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		return nil, err
	}

	prev, next, err := s.productRepo.AdjustStock(productID, -quantity, userID)
	if err != nil {
		return nil, err
	}
	product.Stock = next

	adj := &model.Adjustment{
		ProductID: productID,
		Delta:     next - prev,
		Reason:    model.ReasonSoldOnline,
		Source:    model.SourceWebOrder,
		PrevQty:   prev,
		NewQty:    next,
		Note:      note,
	}
	adj.CreatedBy = userID
	adj.UpdatedBy = userID
	if err := s.adjustmentRepo.Create(adj); err != nil {
		return nil, err
	}

	s.hub.Publish("stock_update", "web_sale", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
		"old_stock":  prev,
		"new_stock":  next,
	})

	// Nudge the POS after the sale is committed. Detached from the request
	// context so checkout latency never depends on Clover.
	go s.pushStockHook(context.Background(), product, next)

	return product, nil
}

// pushStockHook pushes a new on-hand count to Clover. An unlinked product or
// missing configuration is a silent no-op; real failures are logged and
// counted, never surfaced to the sale that triggered them.
func (s *saleService) pushStockHook(ctx context.Context, product *model.Product, newStock int) {
	if !product.Linked() || !s.pos.Connected() {
		return
	}
	if err := s.pos.UpdateStock(ctx, product.CloverItemID, newStock); err != nil {
		s.metrics.RecordHookFailure()
		log.Printf("Warning: failed to push stock for %s to clover item %s: %v", product.Name, product.CloverItemID, err)
	}
}

func (s *saleService) HandleCloverSale(ctx context.Context, orderID string) error {
	if !s.pos.Connected() {
		return fmt.Errorf("clover sale %s: %w", orderID, clover.ErrNotConfigured)
	}

	order, err := s.pos.GetOrder(ctx, orderID)
	if err != nil {
		return fmt.Errorf("fetch clover order %s: %w", orderID, err)
	}
	if order.LineItems == nil || len(order.LineItems.Elements) == 0 {
		return nil
	}

	products, err := s.productRepo.FindAll()
	if err != nil {
		return err
	}

	var failures []string
	for _, line := range order.LineItems.Elements {
		idx := matchLineItem(line, products)
		if idx == -1 {
			continue
		}
		product := &products[idx]

		prev, next, err := s.productRepo.AdjustStock(product.ID, -line.Quantity(), "clover_webhook")
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", product.Name, err))
			continue
		}
		product.Stock = next

		adj := &model.Adjustment{
			ProductID: product.ID,
			Delta:     next - prev,
			Reason:    model.ReasonSoldInstore,
			Source:    model.SourceCloverWebhook,
			PrevQty:   prev,
			NewQty:    next,
			Note:      fmt.Sprintf("Clover order %s", orderID),
		}
		adj.CreatedBy = "clover_webhook"
		adj.UpdatedBy = "clover_webhook"
		if err := s.adjustmentRepo.Create(adj); err != nil {
			failures = append(failures, fmt.Sprintf("%s: log adjustment: %v", product.Name, err))
		}

		s.hub.Publish("stock_update", "instore_sale", map[string]interface{}{
			"product_id": product.ID,
			"name":       product.Name,
			"old_stock":  prev,
			"new_stock":  next,
		})
	}

	if len(failures) > 0 {
		return fmt.Errorf("clover sale %s: %s", orderID, strings.Join(failures, "; "))
	}
	return nil
}
