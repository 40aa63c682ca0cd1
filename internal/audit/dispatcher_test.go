package audit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type memSink struct {
	mu      sync.Mutex
	events  []Event
	started chan struct{}
	release chan struct{}
	once    sync.Once
	err     error
}

func (s *memSink) Record(_ context.Context, ev Event) error {
	if s.started != nil {
		s.once.Do(func() { close(s.started) })
		<-s.release
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return s.err
}

func (s *memSink) actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, len(s.events))
	for _, ev := range s.events {
		out = append(out, ev.Action)
	}
	return out
}

func TestDispatcher_DrainsOnClose(t *testing.T) {
	sink := &memSink{}
	d := NewDispatcher(sink, zaptest.NewLogger(t), 10)

	for _, a := range []string{"a", "b", "c"} {
		assert.True(t, d.Dispatch(Event{Action: a}))
	}

	require.NoError(t, d.Close(context.Background()))
	assert.Equal(t, []string{"a", "b", "c"}, sink.actions())

	assert.False(t, d.Dispatch(Event{Action: "late"}), "closed dispatcher drops events")
	require.NoError(t, d.Close(context.Background()), "close is idempotent")
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	sink := &memSink{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	d := NewDispatcher(sink, zaptest.NewLogger(t), 1)

	require.True(t, d.Dispatch(Event{Action: "first"}))

	select {
	case <-sink.started:
	case <-time.After(time.Second):
		t.Fatal("worker never picked up the first event")
	}

	assert.True(t, d.Dispatch(Event{Action: "queued"}))
	assert.False(t, d.Dispatch(Event{Action: "dropped"}))

	close(sink.release)
	require.NoError(t, d.Close(context.Background()))

	assert.Equal(t, []string{"first", "queued"}, sink.actions())
}

func TestDispatcher_SinkErrorDoesNotStopWorker(t *testing.T) {
	sink := &memSink{err: errors.New("db down")}
	d := NewDispatcher(sink, zaptest.NewLogger(t), 0)

	d.Dispatch(Event{Action: "a"})
	d.Dispatch(Event{Action: "b"})

	require.NoError(t, d.Close(context.Background()))
	assert.Len(t, sink.actions(), 2)
}

func TestToModel(t *testing.T) {
	m := toModel(Event{
		UserID:   "u1",
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: "b1",
		Metadata: map[string]string{"service_id": "s1"},
	})

	assert.Equal(t, "u1", m.UserID)
	assert.Equal(t, "booking_created", m.Action)
	assert.Equal(t, "b1", m.EntityID)
	assert.JSONEq(t, `{"service_id":"s1"}`, m.Metadata)
}

func TestListFilter_Normalize(t *testing.T) {
	tests := []struct {
		in          ListFilter
		page, limit int
	}{
		{ListFilter{}, 1, 50},
		{ListFilter{Page: 3, Limit: 10}, 3, 10},
		{ListFilter{Page: -1, Limit: 500}, 1, 50},
	}

	for _, tt := range tests {
		f := tt.in
		f.Normalize()
		assert.Equal(t, tt.page, f.Page)
		assert.Equal(t, tt.limit, f.Limit)
	}
}
