package bus

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/brainsync-backend/internal/platform/logger"
	"github.com/yungbote/brainsync-backend/internal/realtime"
)

const DefaultChannel = "brainsync-events"

// redisBus publishes each event on "<prefix>:<type>", e.g. "brainsync-events:note.created",
// so listeners can subscribe to a subset of types without decoding the rest.
type redisBus struct {
	log    *logger.Logger
	rdb    *goredis.Client
	prefix string
}

func NewRedisBus(log *logger.Logger, addr, prefix string) (Bus, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}
	if prefix = strings.TrimSpace(prefix); prefix == "" {
		prefix = DefaultChannel
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		WriteTimeout: publishTimeout,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}

	return &redisBus{
		log:    log.With("service", "RedisEventBus", "prefix", prefix),
		rdb:    rdb,
		prefix: prefix,
	}, nil
}

func (b *redisBus) channel(t realtime.EventType) string {
	return b.prefix + ":" + string(t)
}

func (b *redisBus) Publish(ctx context.Context, ev realtime.Event) error {
	raw, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", ev.Type, err)
	}
	return b.rdb.Publish(ctx, b.channel(ev.Type), raw).Err()
}

func (b *redisBus) Subscribe(ctx context.Context, h Handler, types ...realtime.EventType) error {
	if h == nil {
		return fmt.Errorf("event handler required")
	}

	var sub *goredis.PubSub
	if len(types) == 0 {
		sub = b.rdb.PSubscribe(ctx, b.prefix+":*")
	} else {
		channels := make([]string, 0, len(types))
		for _, t := range types {
			channels = append(channels, b.channel(t))
		}
		sub = b.rdb.Subscribe(ctx, channels...)
	}
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("redis subscribe: %w", err)
	}

	go func() {
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case m, ok := <-ch:
				if !ok {
					return
				}
				var ev realtime.Event
				if err := json.Unmarshal([]byte(m.Payload), &ev); err != nil {
					b.log.Warn("dropping malformed event", "channel", m.Channel, "error", err)
					continue
				}
				h(ev)
			}
		}
	}()
	return nil
}

func (b *redisBus) Close() error {
	return b.rdb.Close()
}
