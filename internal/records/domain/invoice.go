// Package domain defines the cached record entities mirrored from the
// remote system-of-record.
package domain

import "time"

// Invoice is a locally cached invoice. The remote system holds the
// authoritative copy; SyncedAt records when this row last matched it.
type Invoice struct {
	ID         string
	JobID      string
	Status     string
	Total      float64
	BalanceDue float64
	IssuedOn   *time.Time
	SyncedAt   time.Time
}

// Amount returns the value a payment against this invoice should carry:
// the outstanding balance when one is recorded, otherwise the total.
func (i *Invoice) Amount() float64 {
	if i.BalanceDue > 0 {
		return i.BalanceDue
	}
	return i.Total
}
