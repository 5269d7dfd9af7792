package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go-resell-sync/internal/clover"
	"go-resell-sync/internal/model"
	"go-resell-sync/internal/repository"

	"github.com/google/uuid"
)

// ---- product repository fake ----

type fakeProductRepo struct {
	mu       sync.Mutex
	products []*model.Product

	failSyncStock map[uuid.UUID]error
}

func newFakeProductRepo(products ...*model.Product) *fakeProductRepo {
	repo := &fakeProductRepo{failSyncStock: map[uuid.UUID]error{}}
	for _, p := range products {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		repo.products = append(repo.products, p)
	}
	return repo
}

func (r *fakeProductRepo) get(id uuid.UUID) *model.Product {
	for _, p := range r.products {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (r *fakeProductRepo) Create(product *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	r.products = append(r.products, product)
	return nil
}

func (r *fakeProductRepo) FindAll() ([]model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeProductRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p := r.get(id); p != nil {
		cp := *p
		return &cp, nil
	}
	return nil, repository.ErrProductNotFound
}

func (r *fakeProductRepo) FindBySKU(sku string) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repository.ErrProductNotFound
}

func (r *fakeProductRepo) Update(product *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p := r.get(product.ID); p != nil {
		*p = *product
		return nil
	}
	return repository.ErrProductNotFound
}

func (r *fakeProductRepo) SyncStock(id uuid.UUID, newStock int, cloverID string, updatedBy string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failSyncStock[id]; err != nil {
		return err
	}
	p := r.get(id)
	if p == nil {
		return repository.ErrProductNotFound
	}
	p.Stock = newStock
	p.UpdatedBy = updatedBy
	if cloverID != "" {
		p.CloverItemID = cloverID
	}
	return nil
}

func (r *fakeProductRepo) SetCloverLink(id uuid.UUID, cloverID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.get(id)
	if p == nil {
		return repository.ErrProductNotFound
	}
	p.CloverItemID = cloverID
	return nil
}

func (r *fakeProductRepo) AdjustStock(id uuid.UUID, delta int, updatedBy string) (int, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.get(id)
	if p == nil {
		return 0, 0, repository.ErrProductNotFound
	}
	prev := p.Stock
	p.Stock = model.ClampQuantity(prev, delta)
	p.UpdatedBy = updatedBy
	return prev, p.Stock, nil
}

func (r *fakeProductRepo) CountAll() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.products)), nil
}

func (r *fakeProductRepo) CountLinked() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, p := range r.products {
		if p.CloverItemID != "" {
			n++
		}
	}
	return n, nil
}

func (r *fakeProductRepo) CountOutOfStock() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, p := range r.products {
		if p.Stock == 0 {
			n++
		}
	}
	return n, nil
}

func (r *fakeProductRepo) TotalValuation() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total int64
	for _, p := range r.products {
		total += int64(p.Stock) * p.Price
	}
	return total, nil
}

// ---- adjustment repository fake ----

type fakeAdjustmentRepo struct {
	mu          sync.Mutex
	adjustments []model.Adjustment
}

func newFakeAdjustmentRepo() *fakeAdjustmentRepo {
	return &fakeAdjustmentRepo{}
}

func (r *fakeAdjustmentRepo) Create(adj *model.Adjustment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if adj.ID == uuid.Nil {
		adj.ID = uuid.New()
	}
	r.adjustments = append(r.adjustments, *adj)
	return nil
}

func (r *fakeAdjustmentRepo) all() []model.Adjustment {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Adjustment, len(r.adjustments))
	copy(out, r.adjustments)
	return out
}

func (r *fakeAdjustmentRepo) FindRecent(limit int) ([]model.Adjustment, error) {
	adjustments := r.all()
	if len(adjustments) > limit {
		adjustments = adjustments[len(adjustments)-limit:]
	}
	return adjustments, nil
}

func (r *fakeAdjustmentRepo) FindByProduct(productID uuid.UUID, limit int) ([]model.Adjustment, error) {
	var out []model.Adjustment
	for _, adj := range r.all() {
		if adj.ProductID == productID {
			out = append(out, adj)
		}
	}
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (r *fakeAdjustmentRepo) GetStockMovement(startDate, endDate time.Time) ([]repository.StockMovementData, error) {
	return nil, nil
}

// ---- sync settings fake ----

type fakeSettingsRepo struct {
	mu       sync.Mutex
	settings model.SyncSettings
	touched  int
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{settings: model.SyncSettings{Active: true}}
}

func (r *fakeSettingsRepo) Get() (*model.SyncSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := r.settings
	return &cp, nil
}

func (r *fakeSettingsRepo) TouchLastSync(t time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settings.LastSyncAt = &t
	r.touched++
	return nil
}

// ---- sync lock fake ----

type fakeSyncLock struct {
	mu       sync.Mutex
	held     bool
	acquires int
}

func newFakeSyncLock() *fakeSyncLock {
	return &fakeSyncLock{}
}

func (l *fakeSyncLock) Acquire(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held {
		return repository.ErrSyncInProgress
	}
	l.held = true
	l.acquires++
	return nil
}

func (l *fakeSyncLock) Release(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.held = false
}

// ---- clover client fake ----

type stockCall struct {
	itemID string
	qty    int
}

type fakeClover struct {
	mu        sync.Mutex
	connected bool
	merchant  string
	items     []clover.Item
	orders    map[string]*clover.Order

	nextID       int
	created      []clover.ItemFields
	updatedItems map[string]clover.ItemFields
	stockCalls   []stockCall

	failUpdateStock error
	failInventory   error
}

func newFakeClover(items ...clover.Item) *fakeClover {
	return &fakeClover{
		connected:    true,
		merchant:     "TESTMERCHANT",
		items:        items,
		orders:       map[string]*clover.Order{},
		updatedItems: map[string]clover.ItemFields{},
	}
}

func (f *fakeClover) Connected() bool  { return f.connected }
func (f *fakeClover) Merchant() string { return f.merchant }

func (f *fakeClover) GetInventory(ctx context.Context) ([]clover.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failInventory != nil {
		return nil, f.failInventory
	}
	out := make([]clover.Item, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *fakeClover) CreateItem(ctx context.Context, fields clover.ItemFields) (*clover.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	item := clover.Item{
		ID:     fmt.Sprintf("cl-%d", f.nextID),
		Name:   fields.Name,
		SKU:    fields.SKU,
		Code:   fields.Code,
		Price:  fields.Price,
		Hidden: fields.Hidden,
	}
	f.items = append(f.items, item)
	f.created = append(f.created, fields)
	return &item, nil
}

func (f *fakeClover) UpdateItem(ctx context.Context, itemID string, fields clover.ItemFields) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updatedItems[itemID] = fields
	return nil
}

func (f *fakeClover) UpdateStock(ctx context.Context, itemID string, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpdateStock != nil {
		return f.failUpdateStock
	}
	f.stockCalls = append(f.stockCalls, stockCall{itemID: itemID, qty: quantity})
	for i := range f.items {
		if f.items[i].ID == itemID {
			f.items[i].ItemStock = &clover.ItemStock{Quantity: float64(quantity)}
		}
	}
	return nil
}

func (f *fakeClover) GetOrder(ctx context.Context, orderID string) (*clover.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderID]
	if !ok {
		return nil, fmt.Errorf("order %s not found", orderID)
	}
	return order, nil
}

func (f *fakeClover) stockCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.stockCalls)
}

func (f *fakeClover) lastStockCall() (stockCall, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.stockCalls) == 0 {
		return stockCall{}, false
	}
	return f.stockCalls[len(f.stockCalls)-1], true
}

// cloverStock reads the quantity the fake holds for an item id.
func (f *fakeClover) cloverStock(itemID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, item := range f.items {
		if item.ID == itemID {
			return item.StockCount()
		}
	}
	return -1
}
