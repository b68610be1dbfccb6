package servemanager

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	recordsDomain "github.com/adamdarley-hub/RealSMPortal-sub003/internal/records/domain"
)

type jobEnvelope struct {
	Jobs []jobWire `json:"jobs"`
}

type jobWire struct {
	ID           json.Number `json:"id"`
	Status       string      `json:"service_status"`
	Recipient    string      `json:"recipient_name"`
	ClientJobRef string      `json:"client_job_number"`
	DueDate      string      `json:"due_date"`
}

// ListJobs fetches one page of jobs. Pages start at 1; the second return
// value reports whether another page may exist.
func (c *Client) ListJobs(ctx context.Context, page int) ([]*recordsDomain.Job, bool, error) {
	path := fmt.Sprintf("/jobs?page=%d", page)
	raw, err := c.Request(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, false, err
	}

	var wire jobEnvelope
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, false, fmt.Errorf("failed to decode job page %d: %w", page, err)
	}

	jobs := make([]*recordsDomain.Job, 0, len(wire.Jobs))
	for _, w := range wire.Jobs {
		job := &recordsDomain.Job{
			ID:        w.ID.String(),
			Status:    w.Status,
			Recipient: w.Recipient,
			Reference: w.ClientJobRef,
		}
		if t, err := time.Parse("2006-01-02", w.DueDate); err == nil {
			job.DueOn = &t
		}
		jobs = append(jobs, job)
	}

	return jobs, len(jobs) == defaultPageSize, nil
}
