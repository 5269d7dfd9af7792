package model

import "time"

// SyncSettings is the single active configuration row for the Clover sync.
// LastSyncAt is touched at the end of every successful pull, even when the
// per-item error list was non-empty.
type SyncSettings struct {
	BaseModel
	LastSyncAt *time.Time `json:"last_sync_at"`
	Active     bool       `gorm:"default:true" json:"active"`
}
