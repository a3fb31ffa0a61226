package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mindcredit/mindcredit-api/internal/config"
	"github.com/mindcredit/mindcredit-api/internal/events"
	"github.com/mindcredit/mindcredit-api/internal/platform/logger"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafkago.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

// fakeReader serves queued messages, then blocks until the context ends.
type fakeReader struct {
	mu        sync.Mutex
	queue     []kafkago.Message
	committed []kafkago.Message
	fetchErr  error
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	r.mu.Lock()
	if len(r.queue) > 0 {
		msg := r.queue[0]
		r.queue = r.queue[1:]
		r.mu.Unlock()
		return msg, nil
	}
	err := r.fetchErr
	r.mu.Unlock()
	if err != nil {
		return kafkago.Message{}, err
	}
	<-ctx.Done()
	return kafkago.Message{}, ctx.Err()
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafkago.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.committed = append(r.committed, msgs...)
	return nil
}

func (r *fakeReader) Close() error { return nil }

func (r *fakeReader) committedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.committed)
}

func TestPublisherEmitEvent(t *testing.T) {
	t.Parallel()

	w := &fakeWriter{}
	p := newPublisher(w, "brain-interface", nil)

	event := events.NewRawSignalEvent("emotion", json.RawMessage(`{"intensity":3}`))
	require.NoError(t, p.EmitEvent(context.Background(), event))

	require.Len(t, w.msgs, 1)
	assert.Equal(t, "emotion", string(w.msgs[0].Key))
	assert.JSONEq(t, `{"intensity":3}`, string(w.msgs[0].Value))
	require.Len(t, w.msgs[0].Headers, 1)
	assert.Equal(t, event.ID.String(), string(w.msgs[0].Headers[0].Value))

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestPublisherEmitEventError(t *testing.T) {
	t.Parallel()

	writeErr := errors.New("leader not available")
	log, buf := logger.NewTestLogger()
	p := newPublisher(&fakeWriter{err: writeErr}, "brain-interface", log)

	err := p.EmitEvent(context.Background(), events.NewRawSignalEvent("thought", json.RawMessage(`{}`)))
	assert.ErrorIs(t, err, writeErr)
	assert.Contains(t, buf.String(), "failed to publish signal")
}

func TestConsumerCommitsEvenWhenHandlerFails(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	r := &fakeReader{queue: []kafkago.Message{
		{Key: []byte("emotion"), Value: []byte(`{"a":1}`), Offset: 1,
			Headers: []kafkago.Header{{Key: "event_id", Value: []byte(id.String())}}},
		{Key: []byte("thought"), Value: []byte(`{"b":2}`), Offset: 2},
	}}

	var (
		mu   sync.Mutex
		seen []*events.SignalEvent
	)
	handler := events.EventHandlerFunc(func(_ context.Context, e *events.SignalEvent) error {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, e)
		if e.Type == "emotion" {
			return errors.New("bad payload")
		}
		return nil
	})

	log, buf := logger.NewTestLogger()
	c := newConsumer(r, handler, log)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	require.Eventually(t, func() bool { return r.committedCount() == 2 }, time.Second, 5*time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, seen, 2)
	assert.Equal(t, id, seen[0].ID)
	assert.Equal(t, "thought", seen[1].Type)
	assert.NotEqual(t, uuid.Nil, seen[1].ID)
	assert.False(t, seen[1].CreatedAt.IsZero())
	assert.Contains(t, buf.String(), "failed to handle signal")
}

func TestConsumerFetchError(t *testing.T) {
	t.Parallel()

	fetchErr := errors.New("group coordinator unavailable")
	c := newConsumer(&fakeReader{fetchErr: fetchErr}, events.EventHandlerFunc(
		func(context.Context, *events.SignalEvent) error { return nil }), nil)

	assert.ErrorIs(t, c.Run(context.Background()), fetchErr)
}

func TestConstructorsRequireBrokers(t *testing.T) {
	t.Parallel()

	cfg := config.KafkaConfig{Topic: "brain-interface", GroupID: "g"}

	_, err := NewPublisher(cfg, nil)
	assert.ErrorIs(t, err, ErrNoBrokers)

	_, err = NewConsumer(cfg, events.EventHandlerFunc(
		func(context.Context, *events.SignalEvent) error { return nil }), nil)
	assert.ErrorIs(t, err, ErrNoBrokers)

	cfg.Brokers = []string{"localhost:9092"}
	_, err = NewConsumer(cfg, nil, nil)
	assert.Error(t, err)
}
