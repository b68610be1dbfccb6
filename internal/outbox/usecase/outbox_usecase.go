// Package usecase implements durable outbox event dispatch.
package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/adamdarley-hub/RealSMPortal-sub003/internal/broadcast"
	"github.com/adamdarley-hub/RealSMPortal-sub003/internal/database"
	"github.com/adamdarley-hub/RealSMPortal-sub003/internal/outbox/domain"
)

// Config holds outbox use case configuration.
type Config struct {
	Interval   time.Duration
	BatchSize  int
	MaxRetries int
}

// OutboxEventRepository defines outbox event repository operations.
type OutboxEventRepository interface {
	Create(ctx context.Context, event *domain.OutboxEvent) error
	GetPendingEvents(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	Update(ctx context.Context, event *domain.OutboxEvent) error
}

// UseCase defines the interface for outbox use cases.
type UseCase interface {
	Start(ctx context.Context) error
	ProcessEvents(ctx context.Context) error
}

// OutboxUseCase drains pending events to the broadcaster on a timer.
// Events stay pending until a dispatch pass succeeds, so an outcome
// recorded while no observer was connected is replayed later; observers
// must tolerate duplicates.
type OutboxUseCase struct {
	config      Config
	txManager   database.TxManager
	outboxRepo  OutboxEventRepository
	broadcaster broadcast.Broadcaster
	logger      *slog.Logger
}

// NewOutboxUseCase creates a new OutboxUseCase.
func NewOutboxUseCase(
	config Config,
	txManager database.TxManager,
	outboxRepo OutboxEventRepository,
	broadcaster broadcast.Broadcaster,
	logger *slog.Logger,
) *OutboxUseCase {
	return &OutboxUseCase{
		config:      config,
		txManager:   txManager,
		outboxRepo:  outboxRepo,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// Start runs the dispatch loop until the context is cancelled.
func (uc *OutboxUseCase) Start(ctx context.Context) error {
	if uc.logger != nil {
		uc.logger.Info("starting outbox dispatcher",
			slog.Duration("interval", uc.config.Interval),
			slog.Int("batch_size", uc.config.BatchSize),
		)
	}

	ticker := time.NewTicker(uc.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if uc.logger != nil {
				uc.logger.Info("stopping outbox dispatcher")
			}
			return ctx.Err()
		case <-ticker.C:
			if err := uc.ProcessEvents(ctx); err != nil {
				if uc.logger != nil {
					uc.logger.Error("failed to process outbox events", slog.Any("error", err))
				}
			}
		}
	}
}

// ProcessEvents retrieves and dispatches pending events in a transaction.
func (uc *OutboxUseCase) ProcessEvents(ctx context.Context) error {
	return uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		events, err := uc.outboxRepo.GetPendingEvents(ctx, uc.config.BatchSize)
		if err != nil {
			return err
		}

		if len(events) == 0 {
			return nil
		}

		for _, event := range events {
			if err := uc.dispatch(event); err != nil {
				if uc.logger != nil {
					uc.logger.Error("failed to dispatch event",
						slog.String("event_id", event.ID.String()),
						slog.String("event_type", event.EventType),
						slog.Any("error", err),
					)
				}

				event.Retries++
				errorMsg := err.Error()
				event.LastError = &errorMsg

				if event.Retries >= uc.config.MaxRetries {
					event.Status = domain.OutboxEventStatusFailed
				}

				if err := uc.outboxRepo.Update(ctx, event); err != nil {
					return err
				}
				continue
			}

			now := time.Now()
			event.Status = domain.OutboxEventStatusProcessed
			event.ProcessedAt = &now

			if err := uc.outboxRepo.Update(ctx, event); err != nil {
				return err
			}
		}

		return nil
	})
}

// dispatch decodes the payload and hands the event to the broadcaster.
// The broadcaster itself never fails; the only failure mode here is a
// corrupt payload.
func (uc *OutboxUseCase) dispatch(event *domain.OutboxEvent) error {
	var data any
	if err := json.Unmarshal([]byte(event.Payload), &data); err != nil {
		return err
	}

	uc.broadcaster.Broadcast(broadcast.Event{
		Type: event.EventType,
		Data: data,
	})

	return nil
}
