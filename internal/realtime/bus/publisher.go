package bus

import (
	"context"
	"time"

	"github.com/yungbote/brainsync-backend/internal/observability"
	"github.com/yungbote/brainsync-backend/internal/platform/logger"
	"github.com/yungbote/brainsync-backend/internal/realtime"
)

const publishTimeout = 2 * time.Second

// Publisher emits events after a write has committed. A failed publish is logged and
// counted; it never fails the caller.
type Publisher struct {
	bus     Bus
	log     *logger.Logger
	metrics *observability.Metrics
}

func NewPublisher(b Bus, log *logger.Logger, m *observability.Metrics) *Publisher {
	return &Publisher{bus: b, log: log.With("service", "EventPublisher"), metrics: m}
}

func (p *Publisher) Emit(ctx context.Context, ev realtime.Event) {
	if p == nil || p.bus == nil {
		return
	}
	// Detached from the request so a client hanging up right after a write still publishes.
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := p.bus.Publish(pubCtx, ev); err != nil {
		p.metrics.IncEvent(string(ev.Type), "error")
		p.log.Warn("publish domain event failed", "type", string(ev.Type), "entity_id", ev.EntityID, "error", err)
		return
	}
	p.metrics.IncEvent(string(ev.Type), "ok")
}
