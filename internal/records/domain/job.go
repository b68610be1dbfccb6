package domain

import "time"

// Job is a locally cached process-serving job.
type Job struct {
	ID        string
	Status    string
	Recipient string
	Reference string
	DueOn     *time.Time
	SyncedAt  time.Time
}
