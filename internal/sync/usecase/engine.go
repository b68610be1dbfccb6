package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/sync/semaphore"

	apperrors "github.com/adamdarley-hub/RealSMPortal-sub003/internal/errors"
	"github.com/adamdarley-hub/RealSMPortal-sub003/internal/metrics"
	remoteUsecase "github.com/adamdarley-hub/RealSMPortal-sub003/internal/remoteconfig/usecase"
	"github.com/adamdarley-hub/RealSMPortal-sub003/internal/sync/domain"
)

// Config holds the engine's schedule parameters.
type Config struct {
	// Interval is the period between background resyncs.
	Interval time.Duration
	// Warmup delays the first resync after polling starts so it does not
	// compete with process startup.
	Warmup time.Duration
	// Timeout bounds one resync; on expiry the in-flight request is
	// cancelled, not abandoned.
	Timeout time.Duration
}

// Engine keeps the local cache fresh by polling the remote system-of-record.
//
// Resyncs are strictly serialized per engine instance: the in-flight
// semaphore (weight 1) makes the at-most-one guarantee structural, and a
// schedule fire that overlaps a resync is skipped, never queued. Remote
// failures are recorded and surfaced but never fatal; each completed
// resync arms the next one, with capped exponential backoff between
// attempts while the remote stays degraded.
type Engine struct {
	config       Config
	trigger      Trigger
	resolver     remoteUsecase.Resolver
	onDataUpdate func()
	business     metrics.BusinessMetrics
	logger       *slog.Logger

	// now is replaceable in tests.
	now func() time.Time

	inFlight *semaphore.Weighted

	mu     sync.Mutex
	status domain.SyncStatus
	stop   context.CancelFunc
	done   chan struct{}
}

// NewEngine creates a sync engine. onDataUpdate is invoked whenever fresh
// (or best-available cached) data should be re-read by consumers; it may be
// nil.
func NewEngine(
	config Config,
	trigger Trigger,
	resolver remoteUsecase.Resolver,
	onDataUpdate func(),
	business metrics.BusinessMetrics,
	logger *slog.Logger,
) *Engine {
	if business == nil {
		business = metrics.NoopBusinessMetrics()
	}
	return &Engine{
		config:       config,
		trigger:      trigger,
		resolver:     resolver,
		onDataUpdate: onDataUpdate,
		business:     business,
		logger:       logger,
		now:          time.Now,
		inFlight:     semaphore.NewWeighted(1),
	}
}

// StartPolling arms the warm-up timer; every completed resync then
// schedules the next one. No-op when polling is already active or the
// integration is disabled.
func (e *Engine) StartPolling(ctx context.Context) {
	if !e.resolver.Resolve(ctx).Enabled {
		if e.logger != nil {
			e.logger.Info("sync polling not started: integration disabled")
		}
		return
	}

	e.mu.Lock()
	if e.stop != nil {
		e.mu.Unlock()
		return
	}

	// The polling lifetime is owned by StopPolling, not by the caller's
	// request context.
	runCtx, cancel := context.WithCancel(context.Background())
	e.stop = cancel
	e.done = make(chan struct{})
	e.status.IsPolling = true
	next := e.now().Add(e.config.Warmup)
	e.status.NextSync = &next
	done := e.done
	e.mu.Unlock()

	if e.logger != nil {
		e.logger.Info("sync polling started",
			slog.Duration("interval", e.config.Interval),
			slog.Duration("warmup", e.config.Warmup),
		)
	}

	go e.run(runCtx, done)
}

// StopPolling cancels the schedule and waits for the polling goroutine to
// exit, so no timer outlives the stop. Idempotent.
func (e *Engine) StopPolling() {
	e.mu.Lock()
	if e.stop == nil {
		e.mu.Unlock()
		return
	}
	cancel := e.stop
	done := e.done
	e.stop = nil
	e.done = nil
	e.status.IsPolling = false
	e.status.NextSync = nil
	e.mu.Unlock()

	cancel()
	<-done

	if e.logger != nil {
		e.logger.Info("sync polling stopped")
	}
}

// ManualSync performs one user-initiated resync. Unlike background syncs it
// surfaces the error to the caller and does not retry. A manual sync that
// overlaps an in-flight resync is skipped and returns a nil summary.
func (e *Engine) ManualSync(ctx context.Context) (*domain.SyncSummary, error) {
	return e.TriggerSync(ctx, true)
}

// Status returns a copy of the engine state.
func (e *Engine) Status() domain.SyncStatus {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// run drives the resync schedule until cancelled. The timer is rearmed
// after each attempt completes, so the schedule anchors to the end of the
// last resync and matches the NextSync the status advertises.
func (e *Engine) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	policy := e.newBackoffPolicy()

	timer := time.NewTimer(e.config.Warmup)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			timer.Reset(e.backgroundSync(ctx, policy))
		}
	}
}

// backgroundSync runs one silent resync and returns the delay until the
// next attempt: the regular interval on success, the capped backoff delay
// while the remote stays degraded.
func (e *Engine) backgroundSync(ctx context.Context, policy *backoff.ExponentialBackOff) time.Duration {
	_, err := e.TriggerSync(ctx, false)

	if apperrors.Is(err, context.Canceled) {
		// Polling is shutting down; the loop exits on the next select.
		return e.config.Interval
	}

	if err != nil {
		delay := policy.NextBackOff()

		e.mu.Lock()
		if e.status.IsPolling {
			next := e.now().Add(delay)
			e.status.NextSync = &next
		}
		e.mu.Unlock()

		if e.logger != nil {
			e.logger.Debug("backing off before next resync",
				slog.Duration("delay", delay),
			)
		}
		return delay
	}

	policy.Reset()
	return e.config.Interval
}

// TriggerSync performs one resync bounded by the configured timeout.
//
// On success the status records the sync time and next schedule and the
// data-update callback fires. On failure the error is classified into
// {timeout, network, other}; a silent sync still fires the callback so
// consumers fall back to the best available cached data instead of
// freezing on stale state, while a user-initiated sync just surfaces the
// error. An invocation that overlaps an in-flight resync is a no-op.
func (e *Engine) TriggerSync(ctx context.Context, showLoading bool) (*domain.SyncSummary, error) {
	if !e.inFlight.TryAcquire(1) {
		e.business.RecordOperation(ctx, "sync", "resync", "skipped")
		return nil, nil
	}
	defer e.inFlight.Release(1)

	e.mu.Lock()
	e.status.IsSyncing = true
	e.mu.Unlock()

	syncCtx, cancel := context.WithTimeout(ctx, e.config.Timeout)
	defer cancel()

	start := e.now()
	summary, err := e.trigger.Sync(syncCtx)
	e.finish(err)

	status := "success"
	if err != nil {
		status = string(classifyError(err))
	}
	e.business.RecordOperation(ctx, "sync", "resync", status)
	e.business.RecordDuration(ctx, "sync", "resync", e.now().Sub(start), status)

	if err == nil {
		if e.logger != nil && summary != nil {
			e.logger.Info("resync completed",
				slog.Int("invoices", summary.Invoices),
				slog.Int("jobs", summary.Jobs),
			)
		}
		e.notifyDataUpdate()
		return summary, nil
	}

	if e.logger != nil {
		e.logger.Warn("resync failed",
			slog.String("class", status),
			slog.Bool("user_initiated", showLoading),
			slog.Any("error", err),
		)
	}

	if !showLoading {
		e.notifyDataUpdate()
	}

	return nil, err
}

// finish applies the post-sync status transition.
func (e *Engine) finish(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.status.IsSyncing = false

	// Cancellation means the caller or StopPolling gave up on this attempt,
	// not that the remote failed; the previous status stands.
	if apperrors.Is(err, context.Canceled) {
		return
	}

	if err != nil {
		e.status.Error = string(classifyError(err))
		return
	}

	now := e.now()
	e.status.LastSync = &now
	e.status.Error = ""
	if e.status.IsPolling {
		next := now.Add(e.config.Interval)
		e.status.NextSync = &next
	}
}

func (e *Engine) notifyDataUpdate() {
	if e.onDataUpdate != nil {
		e.onDataUpdate()
	}
}

// newBackoffPolicy builds the capped exponential schedule used while the
// remote stays degraded.
func (e *Engine) newBackoffPolicy() *backoff.ExponentialBackOff {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = e.config.Interval
	policy.MaxInterval = 10 * e.config.Interval
	policy.MaxElapsedTime = 0 // retried indefinitely
	policy.Reset()
	return policy
}

// classifyError maps a resync failure onto the status taxonomy.
func classifyError(err error) domain.ErrorClass {
	switch {
	case apperrors.Is(err, apperrors.ErrRemoteTimeout),
		apperrors.Is(err, context.DeadlineExceeded):
		return domain.ErrorClassTimeout
	case apperrors.Is(err, apperrors.ErrRemoteNetwork):
		return domain.ErrorClassNetwork
	default:
		return domain.ErrorClassOther
	}
}
