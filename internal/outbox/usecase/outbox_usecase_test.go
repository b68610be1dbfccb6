package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/adamdarley-hub/RealSMPortal-sub003/internal/broadcast"
	"github.com/adamdarley-hub/RealSMPortal-sub003/internal/outbox/domain"

	"github.com/google/uuid"
)

// MockTxManager executes the function directly without a real transaction.
type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}

// MockOutboxEventRepository is a mock implementation of OutboxEventRepository.
type MockOutboxEventRepository struct {
	mock.Mock
}

func (m *MockOutboxEventRepository) Create(ctx context.Context, event *domain.OutboxEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockOutboxEventRepository) GetPendingEvents(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.OutboxEvent), args.Error(1)
}

func (m *MockOutboxEventRepository) Update(ctx context.Context, event *domain.OutboxEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// captureBroadcaster records broadcast events for assertions.
type captureBroadcaster struct {
	mu     sync.Mutex
	events []broadcast.Event
}

func (b *captureBroadcaster) Broadcast(event broadcast.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *captureBroadcaster) captured() []broadcast.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]broadcast.Event(nil), b.events...)
}

func testOutboxConfig() Config {
	return Config{
		Interval:   10 * time.Millisecond,
		BatchSize:  10,
		MaxRetries: 3,
	}
}

func pendingEvent(payload string) *domain.OutboxEvent {
	return &domain.OutboxEvent{
		ID:        uuid.Must(uuid.NewV7()),
		EventType: "payment.applied",
		Payload:   payload,
		Status:    domain.OutboxEventStatusPending,
	}
}

func TestOutboxUseCase_ProcessEvents_Success(t *testing.T) {
	txManager := &MockTxManager{}
	txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)

	event := pendingEvent(`{"invoice_id":"inv-1","amount":75.5}`)

	outboxRepo := &MockOutboxEventRepository{}
	outboxRepo.On("GetPendingEvents", mock.Anything, 10).
		Return([]*domain.OutboxEvent{event}, nil)
	outboxRepo.On("Update", mock.Anything, mock.MatchedBy(func(e *domain.OutboxEvent) bool {
		return e.Status == domain.OutboxEventStatusProcessed && e.ProcessedAt != nil
	})).Return(nil)

	broadcaster := &captureBroadcaster{}
	uc := NewOutboxUseCase(testOutboxConfig(), txManager, outboxRepo, broadcaster, nil)

	err := uc.ProcessEvents(context.Background())
	require.NoError(t, err)

	events := broadcaster.captured()
	require.Len(t, events, 1)
	assert.Equal(t, "payment.applied", events[0].Type)
	outboxRepo.AssertExpectations(t)
}

func TestOutboxUseCase_ProcessEvents_NoPendingEvents(t *testing.T) {
	txManager := &MockTxManager{}
	txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)

	outboxRepo := &MockOutboxEventRepository{}
	outboxRepo.On("GetPendingEvents", mock.Anything, 10).
		Return([]*domain.OutboxEvent{}, nil)

	broadcaster := &captureBroadcaster{}
	uc := NewOutboxUseCase(testOutboxConfig(), txManager, outboxRepo, broadcaster, nil)

	err := uc.ProcessEvents(context.Background())
	require.NoError(t, err)

	assert.Empty(t, broadcaster.captured())
	outboxRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestOutboxUseCase_ProcessEvents_CorruptPayloadRetries(t *testing.T) {
	txManager := &MockTxManager{}
	txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)

	event := pendingEvent(`{not valid json`)

	outboxRepo := &MockOutboxEventRepository{}
	outboxRepo.On("GetPendingEvents", mock.Anything, 10).
		Return([]*domain.OutboxEvent{event}, nil)
	outboxRepo.On("Update", mock.Anything, mock.MatchedBy(func(e *domain.OutboxEvent) bool {
		return e.Status == domain.OutboxEventStatusPending &&
			e.Retries == 1 &&
			e.LastError != nil
	})).Return(nil)

	broadcaster := &captureBroadcaster{}
	uc := NewOutboxUseCase(testOutboxConfig(), txManager, outboxRepo, broadcaster, nil)

	err := uc.ProcessEvents(context.Background())
	require.NoError(t, err)

	assert.Empty(t, broadcaster.captured())
	outboxRepo.AssertExpectations(t)
}

func TestOutboxUseCase_ProcessEvents_MaxRetriesMarksFailed(t *testing.T) {
	txManager := &MockTxManager{}
	txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)

	event := pendingEvent(`{not valid json`)
	event.Retries = 2

	outboxRepo := &MockOutboxEventRepository{}
	outboxRepo.On("GetPendingEvents", mock.Anything, 10).
		Return([]*domain.OutboxEvent{event}, nil)
	outboxRepo.On("Update", mock.Anything, mock.MatchedBy(func(e *domain.OutboxEvent) bool {
		return e.Status == domain.OutboxEventStatusFailed && e.Retries == 3
	})).Return(nil)

	uc := NewOutboxUseCase(testOutboxConfig(), txManager, outboxRepo, &captureBroadcaster{}, nil)

	err := uc.ProcessEvents(context.Background())
	require.NoError(t, err)
	outboxRepo.AssertExpectations(t)
}

func TestOutboxUseCase_ProcessEvents_GetPendingError(t *testing.T) {
	txManager := &MockTxManager{}
	txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)

	repoErr := errors.New("connection refused")
	outboxRepo := &MockOutboxEventRepository{}
	outboxRepo.On("GetPendingEvents", mock.Anything, 10).Return(nil, repoErr)

	uc := NewOutboxUseCase(testOutboxConfig(), txManager, outboxRepo, &captureBroadcaster{}, nil)

	err := uc.ProcessEvents(context.Background())
	assert.ErrorIs(t, err, repoErr)
}

func TestOutboxUseCase_ProcessEvents_UpdateErrorAbortsBatch(t *testing.T) {
	txManager := &MockTxManager{}
	txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)

	updateErr := errors.New("deadlock detected")
	outboxRepo := &MockOutboxEventRepository{}
	outboxRepo.On("GetPendingEvents", mock.Anything, 10).
		Return([]*domain.OutboxEvent{pendingEvent(`{}`)}, nil)
	outboxRepo.On("Update", mock.Anything, mock.Anything).Return(updateErr)

	uc := NewOutboxUseCase(testOutboxConfig(), txManager, outboxRepo, &captureBroadcaster{}, nil)

	err := uc.ProcessEvents(context.Background())
	assert.ErrorIs(t, err, updateErr)
}

func TestOutboxUseCase_Start_StopsOnContextCancel(t *testing.T) {
	txManager := &MockTxManager{}
	txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)

	outboxRepo := &MockOutboxEventRepository{}
	outboxRepo.On("GetPendingEvents", mock.Anything, 10).
		Return([]*domain.OutboxEvent{}, nil)

	uc := NewOutboxUseCase(testOutboxConfig(), txManager, outboxRepo, &captureBroadcaster{}, nil)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- uc.Start(ctx)
	}()

	// Let at least one dispatch pass run before stopping.
	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("dispatcher did not stop after context cancellation")
	}
}
