package model

// Product is one sellable line in the store catalog. Stock is the on-hand
// quantity the storefront sells from; CloverItemID links the product to its
// counterpart item in the Clover POS inventory when set.
type Product struct {
	BaseModel
	Name    string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	SKU     string `gorm:"type:varchar(50);index" json:"sku"`
	Barcode string `gorm:"type:varchar(50);index" json:"barcode"`
	Stock   int    `gorm:"default:0" json:"stock" validate:"gte=0"`
	Price   int64  `gorm:"default:0" json:"price"` // integer cents, converted at the API boundary
	Active  bool   `gorm:"default:true" json:"active"`

	// POS link. Empty means the product has never been pushed to or
	// matched against the Clover inventory.
	CloverItemID string `gorm:"type:varchar(64);index" json:"clover_item_id"`
}

// Linked reports whether the product is tied to a Clover item.
func (p *Product) Linked() bool {
	return p.CloverItemID != ""
}

// ClampQuantity applies a signed delta to a stock count without ever going
// below zero. Both the GORM repository and the sale paths use it so a sale of
// more units than on hand leaves the count at zero, not negative.
func ClampQuantity(current, delta int) int {
	next := current + delta
	if next < 0 {
		return 0
	}
	return next
}
