package rest

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/totegamma/todolist/internal/domain"
)

// feedStream forwards whatever is sent on events and reports when its
// context ends.
type feedStream struct {
	events  chan domain.ItemEvent
	stopped chan struct{}
	fail    error
}

func newFeedStream() *feedStream {
	return &feedStream{
		events:  make(chan domain.ItemEvent, 4),
		stopped: make(chan struct{}),
	}
}

func (f *feedStream) Realtime(ctx context.Context, output chan<- domain.ItemEvent) error {
	defer close(f.stopped)
	if f.fail != nil {
		return f.fail
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case event := <-f.events:
			select {
			case output <- event:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

func dialRealtime(t *testing.T, stream EventStream) *websocket.Conn {
	t.Helper()

	e := echo.New()
	NewHandler(nil, nil, stream, nil).RegisterRoutes(e)
	server := httptest.NewServer(e)
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/realtime"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestRealtimeForwardsEvents(t *testing.T) {
	stream := newFeedStream()
	conn := dialRealtime(t, stream)

	stream.events <- domain.ItemEvent{Type: domain.EventItemCreated, ItemID: 9}
	stream.events <- domain.ItemEvent{Type: domain.EventCategoryLinked, ItemID: 9, CategoryID: 1, JoinID: 3}

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	var first domain.ItemEvent
	require.NoError(t, conn.ReadJSON(&first))
	assert.Equal(t, domain.EventItemCreated, first.Type)
	assert.Equal(t, int64(9), first.ItemID)

	var second domain.ItemEvent
	require.NoError(t, conn.ReadJSON(&second))
	assert.Equal(t, domain.EventCategoryLinked, second.Type)
	assert.Equal(t, int64(3), second.JoinID)
}

func TestRealtimeIgnoresHeartbeat(t *testing.T) {
	stream := newFeedStream()
	conn := dialRealtime(t, stream)

	require.NoError(t, conn.WriteJSON(socketRequest{Type: "h"}))
	stream.events <- domain.ItemEvent{Type: domain.EventItemDeleted, ItemID: 4}

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event domain.ItemEvent
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, domain.EventItemDeleted, event.Type)
}

func TestRealtimeCancelsStreamWhenClientLeaves(t *testing.T) {
	stream := newFeedStream()
	conn := dialRealtime(t, stream)

	require.NoError(t, conn.Close())

	select {
	case <-stream.stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("stream context was not cancelled after the client closed")
	}
}

func TestRealtimeClosesSocketWhenStreamEnds(t *testing.T) {
	stream := newFeedStream()
	stream.fail = errors.New("redis gone")
	conn := dialRealtime(t, stream)

	<-stream.stopped

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event domain.ItemEvent
	err := conn.ReadJSON(&event)
	require.Error(t, err)

	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) {
		assert.False(t, netErr.Timeout(), "socket should be closed, not idle")
	}
}
