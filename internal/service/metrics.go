package service

import "sync/atomic"

// SyncMetrics counts failures of the fire-and-forget sale hooks. The hooks
// swallow errors so checkout never blocks on the POS; these counters keep a
// sustained Clover outage visible on the status endpoint.
type SyncMetrics struct {
	hookFailures atomic.Int64
}

func NewSyncMetrics() *SyncMetrics {
	return &SyncMetrics{}
}

func (m *SyncMetrics) RecordHookFailure() {
	if m != nil {
		m.hookFailures.Add(1)
	}
}

func (m *SyncMetrics) HookFailures() int64 {
	if m == nil {
		return 0
	}
	return m.hookFailures.Load()
}
