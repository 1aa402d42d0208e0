package bus

import (
	"context"
	"sync"

	"github.com/yungbote/brainsync-backend/internal/platform/logger"
	"github.com/yungbote/brainsync-backend/internal/realtime"
)

type subscription struct {
	types []realtime.EventType
	h     Handler
}

// memoryBus delivers events synchronously in process and logs each one. It backs
// deployments without Redis and tests.
type memoryBus struct {
	log *logger.Logger

	mu     sync.RWMutex
	subs   map[int]subscription
	nextID int
}

func NewMemoryBus(log *logger.Logger) Bus {
	return &memoryBus{log: log.With("service", "MemoryEventBus"), subs: map[int]subscription{}}
}

func (b *memoryBus) Publish(ctx context.Context, ev realtime.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.log.Debug("domain event", "type", string(ev.Type), "user_id", ev.UserID, "entity_id", ev.EntityID)
	b.mu.RLock()
	var handlers []Handler
	for _, s := range b.subs {
		if accepts(s.types, ev.Type) {
			handlers = append(handlers, s.h)
		}
	}
	b.mu.RUnlock()
	for _, h := range handlers {
		h(ev)
	}
	return nil
}

func (b *memoryBus) Subscribe(ctx context.Context, h Handler, types ...realtime.EventType) error {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = subscription{types: types, h: h}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}()
	return nil
}

func (b *memoryBus) Close() error {
	b.mu.Lock()
	b.subs = map[int]subscription{}
	b.mu.Unlock()
	return nil
}
