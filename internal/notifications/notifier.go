// Package notifications relays forum events over Redis pub/sub to WebSocket
// clients watching a thread.
package notifications

import (
	"context"
	"log"
	"runtime/debug"
	"strings"

	"github.com/redis/go-redis/v9"
)

const threadChannelPrefix = "forum:thread:"

// Notifier publishes forum events into Redis channels.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
// A nil client turns every call into a no-op.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// PublishThread sends an event payload to the thread's channel.
func (n *Notifier) PublishThread(ctx context.Context, threadID, payload string) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	return n.rdb.Publish(ctx, ThreadChannel(threadID), payload).Err()
}

// StartPatternSubscriber subscribes to `forum:thread:*` and calls onMessage
// for each incoming message until ctx is cancelled.
func (n *Notifier) StartPatternSubscriber(
	ctx context.Context, onMessage func(channel string, payload string),
) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	sub := n.rdb.PSubscribe(ctx, threadChannelPrefix+"*")
	// Wait for the subscription confirmation so publishes right after start are not lost.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return err
	}
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
							log.Printf("PANIC in PatternSubscriber: %v\n%s", r, debug.Stack())
						}
					}()
					onMessage(msg.Channel, msg.Payload)
				}()
			}
		}
	}()

	return nil
}

// ThreadChannel derives the Redis channel name for a thread.
func ThreadChannel(threadID string) string {
	return threadChannelPrefix + threadID
}

// ThreadIDFromChannel extracts the thread id from a channel produced by ThreadChannel.
func ThreadIDFromChannel(channel string) (string, bool) {
	id, ok := strings.CutPrefix(channel, threadChannelPrefix)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
