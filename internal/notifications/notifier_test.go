package notifications

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testEventuallyTimeout = time.Second
	testPollInterval      = 10 * time.Millisecond
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestNotifier_NilRedisIsNoop(t *testing.T) {
	n := NewNotifier(nil)
	assert.NoError(t, n.PublishThread(context.Background(), "thread-1", "payload"))
	assert.NoError(t, n.StartPatternSubscriber(context.Background(), func(string, string) {
		t.Fatal("no messages expected")
	}))
}

func TestThreadChannel(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "forum:thread:thread-abc", ThreadChannel("thread-abc"))

	tests := []struct {
		channel string
		want    string
		ok      bool
	}{
		{"forum:thread:thread-abc", "thread-abc", true},
		{"forum:thread:", "", false},
		{"notifications:user:1", "", false},
	}
	for _, tt := range tests {
		got, ok := ThreadIDFromChannel(tt.channel)
		assert.Equal(t, tt.want, got, tt.channel)
		assert.Equal(t, tt.ok, ok, tt.channel)
	}
}

func TestNotifier_StartPatternSubscriber_StopsOnCancel(t *testing.T) {
	rdb := newTestRedis(t)
	n := NewNotifier(rdb)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	payloads := make(chan string, 4)
	require.NoError(t, n.StartPatternSubscriber(ctx, func(channel string, payload string) {
		assert.Equal(t, "forum:thread:thread-1", channel)
		payloads <- payload
	}))

	require.NoError(t, n.PublishThread(context.Background(), "thread-1", "before-cancel"))
	select {
	case got := <-payloads:
		assert.Equal(t, "before-cancel", got)
	case <-time.After(testEventuallyTimeout):
		t.Fatal("message not delivered")
	}

	cancel()
	time.Sleep(20 * time.Millisecond)

	require.NoError(t, n.PublishThread(context.Background(), "thread-1", "after-cancel"))
	assert.Never(t, func() bool {
		select {
		case payload := <-payloads:
			return payload == "after-cancel"
		default:
			return false
		}
	}, 200*time.Millisecond, testPollInterval)
}
