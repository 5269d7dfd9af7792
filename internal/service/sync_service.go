package service

import (
	"context"
	"fmt"
	"time"

	"go-resell-sync/internal/clover"
	"go-resell-sync/internal/model"
	"go-resell-sync/internal/repository"
	"go-resell-sync/internal/ws"

	"github.com/google/uuid"
)

// SyncReport aggregates the outcome of one sync run. Per-item failures land
// in Errors and never abort the remaining items.
type SyncReport struct {
	Total   int      `json:"total"`
	Matched int      `json:"matched"`
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors"`
}

func (r *SyncReport) addError(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// StockMismatch is one (store product, clover item) pair whose quantities
// currently disagree, reported read-only by Status.
type StockMismatch struct {
	ProductID    uuid.UUID `json:"product_id"`
	Name         string    `json:"name"`
	SKU          string    `json:"sku"`
	StoreQty     int       `json:"store_qty"`
	CloverQty    int       `json:"clover_qty"`
	CloverItemID string    `json:"clover_item_id"`
}

type SyncStatus struct {
	Connected        bool            `json:"connected"`
	Merchant         string          `json:"merchant"`
	CloverItemCount  int             `json:"cloverItemCount"`
	WebsiteItemCount int             `json:"websiteItemCount"`
	LastSyncAt       *time.Time      `json:"lastSyncAt"`
	Mismatches       []StockMismatch `json:"mismatches"`
	HookFailures     int64           `json:"hookFailures"`
	Error            string          `json:"error,omitempty"`
}

type SyncService interface {
	// PullSync copies Clover quantities onto matched store products.
	PullSync(ctx context.Context) (*SyncReport, error)
	// PushProduct creates or updates the Clover item for one store product.
	PushProduct(ctx context.Context, id uuid.UUID) error
	// FullSync pulls first (the POS is authoritative for stock), then pushes
	// every store product that still lacks a Clover link.
	FullSync(ctx context.Context) (*SyncReport, error)
	// Status reports link health without mutating anything.
	Status(ctx context.Context) (*SyncStatus, error)
}

type syncService struct {
	productRepo    repository.ProductRepository
	adjustmentRepo repository.AdjustmentRepository
	settingsRepo   repository.SyncSettingsRepository
	pos            clover.Client
	lock           repository.SyncLocker
	hub            *ws.Hub
	metrics        *SyncMetrics
}

func NewSyncService(
	pRepo repository.ProductRepository,
	aRepo repository.AdjustmentRepository,
	sRepo repository.SyncSettingsRepository,
	pos clover.Client,
	lock repository.SyncLocker,
	hub *ws.Hub,
	metrics *SyncMetrics,
) SyncService {
	return &syncService{
		productRepo:    pRepo,
		adjustmentRepo: aRepo,
		settingsRepo:   sRepo,
		pos:            pos,
		lock:           lock,
		hub:            hub,
		metrics:        metrics,
	}
}

func (s *syncService) PullSync(ctx context.Context) (*SyncReport, error) {
	if err := s.lock.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.lock.Release(ctx)

	return s.pull(ctx)
}

// pull is the reconciliation pass. Caller holds the sync lock.
func (s *syncService) pull(ctx context.Context) (*SyncReport, error) {
	if !s.pos.Connected() {
		return nil, fmt.Errorf("pull sync: %w", clover.ErrNotConfigured)
	}

	items, err := s.pos.GetInventory(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch clover inventory: %w", err)
	}

	products, err := s.productRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("fetch store inventory: %w", err)
	}

	// Errors starts non-nil so the report always serializes "errors" as an
	// array, never null.
	report := &SyncReport{Errors: []string{}}

	for _, item := range items {
		report.Total++

		idx := matchProduct(item, products)
		if idx == -1 {
			report.Skipped++
			continue
		}
		report.Matched++

		product := &products[idx]
		posQty := item.StockCount()

		// Link repair: a SKU/barcode match backfills the link even when the
		// quantities agree, so the push phase never duplicates this item.
		backfill := ""
		if product.CloverItemID == "" {
			backfill = item.ID
		}

		if product.Stock == posQty {
			if backfill != "" {
				if err := s.productRepo.SetCloverLink(product.ID, backfill); err != nil {
					report.addError("link %s to clover item %s: %v", product.Name, item.ID, err)
					continue
				}
				product.CloverItemID = backfill
			}
			report.Skipped++
			continue
		}

		prev := product.Stock
		if err := s.productRepo.SyncStock(product.ID, posQty, backfill, "clover_sync"); err != nil {
			report.addError("update %s from clover item %s: %v", product.Name, item.ID, err)
			continue
		}
		if backfill != "" {
			product.CloverItemID = backfill
		}
		product.Stock = posQty

		adj := &model.Adjustment{
			ProductID: product.ID,
			Delta:     posQty - prev,
			Reason:    model.ReasonAdjustment,
			Source:    model.SourceCloverSync,
			PrevQty:   prev,
			NewQty:    posQty,
			Note:      fmt.Sprintf("Synced from Clover item %s", item.ID),
		}
		adj.CreatedBy = "clover_sync"
		adj.UpdatedBy = "clover_sync"
		if err := s.adjustmentRepo.Create(adj); err != nil {
			report.addError("log adjustment for %s: %v", product.Name, err)
		}

		report.Updated++
		s.hub.Publish("stock_update", "clover_sync", map[string]interface{}{
			"product_id": product.ID,
			"name":       product.Name,
			"old_stock":  prev,
			"new_stock":  posQty,
		})
	}

	// Touched even when the error list is non-empty; the run itself finished.
	if err := s.settingsRepo.TouchLastSync(time.Now()); err != nil {
		report.addError("update sync settings: %v", err)
	}

	return report, nil
}

func (s *syncService) PushProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return err
	}
	return s.push(ctx, product)
}

func (s *syncService) push(ctx context.Context, product *model.Product) error {
	if !s.pos.Connected() {
		return fmt.Errorf("push sync: %w", clover.ErrNotConfigured)
	}

	fields := clover.ItemFields{
		Name:   product.Name,
		SKU:    product.SKU,
		Code:   product.Barcode,
		Price:  product.Price, // already integer cents
		Hidden: !product.Active,
	}

	if product.Linked() {
		if err := s.pos.UpdateItem(ctx, product.CloverItemID, fields); err != nil {
			return fmt.Errorf("update clover item %s: %w", product.CloverItemID, err)
		}
		if err := s.pos.UpdateStock(ctx, product.CloverItemID, product.Stock); err != nil {
			return fmt.Errorf("push stock for clover item %s: %w", product.CloverItemID, err)
		}
		return nil
	}

	created, err := s.pos.CreateItem(ctx, fields)
	if err != nil {
		return fmt.Errorf("create clover item for %s: %w", product.Name, err)
	}

	// The link is persisted before the stock push; if the push below fails
	// the link survives, so a retry updates instead of duplicating.
	if err := s.productRepo.SetCloverLink(product.ID, created.ID); err != nil {
		return fmt.Errorf("persist clover link for %s: %w", product.Name, err)
	}
	product.CloverItemID = created.ID

	if err := s.pos.UpdateStock(ctx, created.ID, product.Stock); err != nil {
		return fmt.Errorf("push stock for clover item %s: %w", created.ID, err)
	}
	return nil
}

func (s *syncService) FullSync(ctx context.Context) (*SyncReport, error) {
	if err := s.lock.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.lock.Release(ctx)

	report, err := s.pull(ctx)
	if err != nil {
		return nil, err
	}

	// Re-read after the pull so link backfills are visible and already-linked
	// products are not pushed as new items.
	products, err := s.productRepo.FindAll()
	if err != nil {
		return report, fmt.Errorf("fetch store inventory for push: %w", err)
	}

	for i := range products {
		product := &products[i]
		if product.Linked() {
			continue
		}
		report.Total++
		if err := s.push(ctx, product); err != nil {
			report.addError("push %s: %v", product.Name, err)
			continue
		}
		report.Created++
	}

	return report, nil
}

func (s *syncService) Status(ctx context.Context) (*SyncStatus, error) {
	status := &SyncStatus{
		Connected:    s.pos.Connected(),
		Merchant:     s.pos.Merchant(),
		HookFailures: s.metrics.HookFailures(),
	}

	products, err := s.productRepo.FindAll()
	if err != nil {
		return nil, err
	}
	status.WebsiteItemCount = len(products)

	if settings, err := s.settingsRepo.Get(); err == nil {
		status.LastSyncAt = settings.LastSyncAt
	}

	if !status.Connected {
		return status, nil
	}

	items, err := s.pos.GetInventory(ctx)
	if err != nil {
		// Credentials are present but the provider is unreachable; the
		// status page reports that instead of failing.
		status.Error = err.Error()
		return status, nil
	}
	status.CloverItemCount = len(items)

	for _, item := range items {
		idx := matchProduct(item, products)
		if idx == -1 {
			continue
		}
		product := &products[idx]
		if product.Stock == item.StockCount() {
			continue
		}
		status.Mismatches = append(status.Mismatches, StockMismatch{
			ProductID:    product.ID,
			Name:         product.Name,
			SKU:          product.SKU,
			StoreQty:     product.Stock,
			CloverQty:    item.StockCount(),
			CloverItemID: item.ID,
		})
	}

	return status, nil
}
