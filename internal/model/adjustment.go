package model

import "github.com/google/uuid"

type AdjustmentReason string

const (
	ReasonSoldOnline  AdjustmentReason = "sold_online"
	ReasonSoldInstore AdjustmentReason = "sold_instore"
	ReasonAdjustment  AdjustmentReason = "adjustment"
	ReasonManualCount AdjustmentReason = "manual_count"
)

type AdjustmentSource string

const (
	SourceWebOrder      AdjustmentSource = "web_order"
	SourceCloverWebhook AdjustmentSource = "clover_webhook"
	SourceCloverSync    AdjustmentSource = "clover_sync"
	SourceManual        AdjustmentSource = "manual"
)

// Adjustment is one append-only audit entry for a stock change. Rows are
// written once per detected change and never mutated or deleted.
type Adjustment struct {
	BaseModel
	ProductID uuid.UUID        `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product   *Product         `json:"product,omitempty" validate:"-"`
	Delta     int              `gorm:"not null" json:"delta"` // signed; new - previous
	Reason    AdjustmentReason `gorm:"type:varchar(20);not null" json:"reason" validate:"required,oneof=sold_online sold_instore adjustment manual_count"`
	Source    AdjustmentSource `gorm:"type:varchar(20);not null" json:"source" validate:"required,oneof=web_order clover_webhook clover_sync manual"`
	PrevQty   int              `gorm:"not null" json:"previous_quantity"`
	NewQty    int              `gorm:"not null" json:"new_quantity"`
	Note      string           `json:"note"`
}
