package relay

import (
	"context"
	"log"
	"runtime/debug"

	"github.com/redis/go-redis/v9"
)

// envelopeChannel is the Redis pub/sub channel bridging relay instances for
// server-confirmed envelopes.
const envelopeChannel = "relay:envelopes"

// Notifier publishes relay envelopes into Redis so every instance's hub can
// broadcast them locally. A nil Redis client disables the bridge; publish
// and subscribe become no-ops.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// PublishEnvelope sends a wire-format envelope to the relay channel.
func (n *Notifier) PublishEnvelope(ctx context.Context, payload []byte) error {
	if n.rdb == nil {
		return nil
	}
	return n.rdb.Publish(ctx, envelopeChannel, payload).Err()
}

// StartSubscriber subscribes to the relay channel and calls onMessage for
// each incoming payload. The subscription loop exits when ctx is cancelled.
func (n *Notifier) StartSubscriber(
	ctx context.Context, onMessage func(payload string),
) error {
	if n.rdb == nil {
		return nil
	}
	sub := n.rdb.Subscribe(ctx, envelopeChannel)
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							log.Printf("PANIC in relay subscriber: %v\n%s", r, debug.Stack())
						}
					}()
					onMessage(msg.Payload)
				}()
			}
		}
	}()

	return nil
}
