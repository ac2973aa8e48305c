package memory

import (
	"context"
	"sync"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
)

type txContextKey struct{}

// Transactor serializes transactions with one lock, which is enough to
// stand in for row locks in tests. Nested calls join the outer transaction.
type Transactor struct {
	mu sync.Mutex
}

func NewTransactor() *Transactor {
	return &Transactor{}
}

func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txContextKey{}) != nil {
		return fn(ctx)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(context.WithValue(ctx, txContextKey{}, true))
}

var _ database.Transactor = (*Transactor)(nil)
