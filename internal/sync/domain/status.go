// Package domain defines the sync engine's observable state.
package domain

import "time"

// ErrorClass labels a failed resync for the status surface.
type ErrorClass string

const (
	ErrorClassTimeout ErrorClass = "timeout"
	ErrorClassNetwork ErrorClass = "network"
	ErrorClassOther   ErrorClass = "other"
)

// SyncStatus is a point-in-time snapshot of one engine instance. It is
// owned exclusively by the engine and mutated only through its transition
// functions; callers receive copies.
type SyncStatus struct {
	IsPolling bool       `json:"is_polling"`
	IsSyncing bool       `json:"is_syncing"`
	LastSync  *time.Time `json:"last_sync,omitempty"`
	NextSync  *time.Time `json:"next_sync,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// SyncSummary reports what one resync touched.
type SyncSummary struct {
	Invoices int `json:"invoices"`
	Jobs     int `json:"jobs"`
}
