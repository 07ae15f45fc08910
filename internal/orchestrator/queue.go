package orchestrator

import (
	"context"
	"errors"

	"voxel-terrain/internal/config"
)

// ErrQueueClosed is returned by Send after Close.
var ErrQueueClosed = errors.New("update queue closed")

// Queue carries update batches from any number of producers to the frame
// loop. Batches from one producer are received in the order they were sent,
// and a batch is always received whole.
type Queue struct {
	batches chan []config.Update
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewQueue creates a queue holding at most capacity pending batches.
func NewQueue(capacity int) *Queue {
	ctx, cancel := context.WithCancel(context.Background())
	return &Queue{
		batches: make(chan []config.Update, max(capacity, 1)),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Send queues u, blocking while the queue is full. It fails when ctx ends
// or the queue is closed first.
func (q *Queue) Send(ctx context.Context, u config.Update) error {
	return q.SendBatch(ctx, []config.Update{u})
}

// SendBatch queues updates as one unit: the frame that receives them folds
// all of them before rebuilding. An empty batch is a no-op. The slice must
// not be modified after the call.
func (q *Queue) SendBatch(ctx context.Context, updates []config.Update) error {
	if q.ctx.Err() != nil {
		return ErrQueueClosed
	}
	if len(updates) == 0 {
		return nil
	}
	select {
	case q.batches <- updates:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-q.ctx.Done():
		return ErrQueueClosed
	}
}

// TryReceive returns the oldest pending batch without blocking.
func (q *Queue) TryReceive() ([]config.Update, bool) {
	select {
	case b := <-q.batches:
		return b, true
	default:
		return nil, false
	}
}

// Len returns the number of pending batches.
func (q *Queue) Len() int {
	return len(q.batches)
}

// Close stops accepting updates. Pending batches can still be received.
// The channel itself is never closed so a racing Send cannot panic.
func (q *Queue) Close() {
	q.cancel()
}
