package session

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/YusovID/capacity-planner-service/internal/cache"
	"github.com/YusovID/capacity-planner-service/internal/domain"
	"github.com/stretchr/testify/mock"
)

type SaverMock struct {
	mock.Mock
}

var _ Saver = (*SaverMock)(nil)

func (m *SaverMock) SaveWeeklyAllocation(ctx context.Context, resourceID string, change domain.PendingChange) error {
	args := m.Called(ctx, resourceID, change)
	return args.Error(0)
}

type InvalidatorMock struct {
	mock.Mock
}

var _ cache.Invalidator = (*InvalidatorMock)(nil)

func (m *InvalidatorMock) Invalidate(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

// gateSaver holds every save until release is closed.
type gateSaver struct {
	started chan domain.PendingChange
	release chan struct{}

	active atomic.Int32

	mu      sync.Mutex
	err     error
	written []float64
}

func newGateSaver() *gateSaver {
	return &gateSaver{
		started: make(chan domain.PendingChange, 16),
		release: make(chan struct{}),
	}
}

func (g *gateSaver) SaveWeeklyAllocation(ctx context.Context, _ string, change domain.PendingChange) error {
	g.active.Add(1)
	defer g.active.Add(-1)

	g.started <- change

	select {
	case <-g.release:
	case <-ctx.Done():
		return ctx.Err()
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.err == nil {
		g.written = append(g.written, change.Hours)
	}

	return g.err
}

// lastWritten is the value the server ended up with.
func (g *gateSaver) lastWritten() []float64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	return append([]float64(nil), g.written...)
}
