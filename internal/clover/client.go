// Package clover is a thin client for the Clover v3 merchant REST API,
// covering only the inventory and order surfaces the sync flow needs.
package clover

import (
	"context"
	"errors"
)

var (
	// ErrNotConfigured is returned when merchant id or API token are absent.
	// Sync operations fail fast on it; sale-time hooks treat it as a no-op.
	ErrNotConfigured = errors.New("clover is not configured")
)

// Item is a read-only projection of a Clover inventory item.
type Item struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	SKU    string `json:"sku,omitempty"`
	Code   string `json:"code,omitempty"` // barcode / UPC field on the Clover side
	Price  int64  `json:"price"`          // cents
	Hidden bool   `json:"hidden"`

	ItemStock *ItemStock `json:"itemStock,omitempty"`
}

type ItemStock struct {
	Quantity float64 `json:"quantity"`
}

// StockCount returns the on-hand count Clover reports, zero when the item has
// no stock record at all.
func (it Item) StockCount() int {
	if it.ItemStock == nil {
		return 0
	}
	return int(it.ItemStock.Quantity)
}

// ItemFields is the writable subset used for create and update.
type ItemFields struct {
	Name   string `json:"name"`
	SKU    string `json:"sku,omitempty"`
	Code   string `json:"code,omitempty"`
	Price  int64  `json:"price"`
	Hidden bool   `json:"hidden"`
}

// Order is a Clover order with line items expanded.
type Order struct {
	ID        string     `json:"id"`
	LineItems *LineItems `json:"lineItems,omitempty"`
}

type LineItems struct {
	Elements []LineItem `json:"elements"`
}

// LineItem references the sold inventory item. UnitQty is Clover's
// thousandths representation for unit-priced quantities; absent means one.
type LineItem struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	UnitQty int64    `json:"unitQty,omitempty"`
	Item    *ItemRef `json:"item,omitempty"`
}

type ItemRef struct {
	ID string `json:"id"`
}

// Quantity converts UnitQty into whole sold units.
func (li LineItem) Quantity() int {
	if li.UnitQty >= 1000 {
		return int(li.UnitQty / 1000)
	}
	return 1
}

// Client is the POS provider boundary the sync and sale flows talk to.
type Client interface {
	// Connected reports whether credentials are present, without a network call.
	Connected() bool
	// Merchant returns the configured merchant id (empty when not configured).
	Merchant() string

	GetInventory(ctx context.Context) ([]Item, error)
	CreateItem(ctx context.Context, fields ItemFields) (*Item, error)
	UpdateItem(ctx context.Context, itemID string, fields ItemFields) error
	UpdateStock(ctx context.Context, itemID string, quantity int) error
	GetOrder(ctx context.Context, orderID string) (*Order, error)
}
