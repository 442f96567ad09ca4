package messaging_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/doughlab/doughcalc/internal/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockSubscriber struct {
	mu       sync.Mutex
	channels map[string]chan *message.Message
	closed   bool
	closeErr error
}

func newMockSubscriber() *mockSubscriber {
	return &mockSubscriber{
		channels: make(map[string]chan *message.Message),
	}
}

func (m *mockSubscriber) Subscribe(_ context.Context, topic string) (<-chan *message.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan *message.Message, 16)
	m.channels[topic] = ch

	return ch, nil
}

func (m *mockSubscriber) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true

	return m.closeErr
}

func (m *mockSubscriber) deliver(topic string, msg *message.Message) {
	m.mu.Lock()
	ch := m.channels[topic]
	m.mu.Unlock()

	ch <- msg
}

type consumerTestEvent struct {
	ID string `json:"id"`
}

// waitFor polls until the condition holds or the timeout expires.
func waitFor(t *testing.T, condition func() bool) {
	t.Helper()

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}

		time.Sleep(5 * time.Millisecond)
	}

	t.Fatal("condition not met within timeout")
}

func TestConsumer(t *testing.T) {
	t.Run("decodes and handles messages", func(t *testing.T) {
		sub := newMockSubscriber()

		var (
			mu       sync.Mutex
			received []string
		)

		consumer := messaging.NewConsumer(sub, "test.topic",
			func(_ context.Context, event *consumerTestEvent) error {
				mu.Lock()
				defer mu.Unlock()
				received = append(received, event.ID)

				return nil
			}, zap.NewNop())

		require.NoError(t, consumer.Start(context.Background()))
		defer func() { _ = consumer.Shutdown() }()

		msg := message.NewMessage("1", []byte(`{"id":"abc"}`))
		sub.deliver("test.topic", msg)

		waitFor(t, func() bool {
			mu.Lock()
			defer mu.Unlock()

			return len(received) == 1
		})

		mu.Lock()
		assert.Equal(t, []string{"abc"}, received)
		mu.Unlock()

		select {
		case <-msg.Acked():
		default:
			t.Fatal("message should be acked")
		}
	})

	t.Run("nacks undecodable messages", func(t *testing.T) {
		sub := newMockSubscriber()
		consumer := messaging.NewConsumer(sub, "test.topic",
			func(_ context.Context, _ *consumerTestEvent) error {
				t.Error("handler should not be called for bad payloads")

				return nil
			}, zap.NewNop())

		require.NoError(t, consumer.Start(context.Background()))
		defer func() { _ = consumer.Shutdown() }()

		msg := message.NewMessage("1", []byte(`not json`))
		sub.deliver("test.topic", msg)

		select {
		case <-msg.Nacked():
		case <-time.After(time.Second):
			t.Fatal("message should be nacked")
		}
	})

	t.Run("nacks when the handler fails", func(t *testing.T) {
		sub := newMockSubscriber()
		consumer := messaging.NewConsumer(sub, "test.topic",
			func(_ context.Context, _ *consumerTestEvent) error {
				return errors.New("handler error")
			}, zap.NewNop())

		require.NoError(t, consumer.Start(context.Background()))
		defer func() { _ = consumer.Shutdown() }()

		msg := message.NewMessage("1", []byte(`{"id":"abc"}`))
		sub.deliver("test.topic", msg)

		select {
		case <-msg.Nacked():
		case <-time.After(time.Second):
			t.Fatal("message should be nacked")
		}
	})

	t.Run("exposes its topic", func(t *testing.T) {
		consumer := messaging.NewConsumer(newMockSubscriber(), "test.topic",
			func(_ context.Context, _ *consumerTestEvent) error { return nil }, zap.NewNop())

		assert.Equal(t, "test.topic", consumer.Topic())
	})

	t.Run("shutdown drains the processing loop", func(t *testing.T) {
		sub := newMockSubscriber()
		consumer := messaging.NewConsumer(sub, "test.topic",
			func(_ context.Context, _ *consumerTestEvent) error { return nil }, zap.NewNop())

		require.NoError(t, consumer.Start(context.Background()))
		require.NoError(t, consumer.Shutdown())
	})
}
