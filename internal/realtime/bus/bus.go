package bus

import (
	"context"
	"slices"

	"github.com/yungbote/brainsync-backend/internal/realtime"
)

type Handler func(ev realtime.Event)

// Bus moves domain events between the API and any listeners. Implementations are safe for
// concurrent use.
type Bus interface {
	Publish(ctx context.Context, ev realtime.Event) error
	// Subscribe calls h for each event of the given types until ctx is done. No types means
	// every event.
	Subscribe(ctx context.Context, h Handler, types ...realtime.EventType) error
	Close() error
}

func accepts(types []realtime.EventType, t realtime.EventType) bool {
	return len(types) == 0 || slices.Contains(types, t)
}
