// Package realtime subscribes to the push-notification service that
// announces when background template processing finishes. The connection is
// opened on demand and torn down on idle: it exists only while at least one
// template is still PROCESSING.
package realtime

import (
	"context"
	"sync"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"go.uber.org/zap"

	"github.com/kyraongithub/compliance-gateway/internal/models"
)

const (
	channelName = "admin-channel"

	eventTemplateReady  = "TEMPLATE_READY"
	eventTemplateFailed = "TEMPLATE_FAILED"
)

type event struct {
	Event   string `json:"event"`
	Channel string `json:"channel,omitempty"`
}

// Watcher holds at most one subscription. A completion notification only
// triggers invalidate; the payload is never trusted as data, the refetch
// owns the truth.
type Watcher struct {
	url        string
	invalidate func()
	logger     *zap.Logger

	mu     sync.Mutex
	conn   *websocket.Conn
	cancel context.CancelFunc
	done   chan struct{}
}

// NewWatcher creates a watcher that calls invalidate whenever a processing
// notification arrives. An empty url disables the watcher.
func NewWatcher(url string, invalidate func(), logger *zap.Logger) *Watcher {
	return &Watcher{
		url:        url,
		invalidate: invalidate,
		logger:     logger.With(zap.String("component", "realtime")),
	}
}

// Update reconciles the subscription with the latest template list: connect
// while anything is PROCESSING, disconnect once nothing is.
func (w *Watcher) Update(ctx context.Context, templates []models.Template) {
	processing := models.AnyProcessing(templates)

	w.mu.Lock()
	defer w.mu.Unlock()

	if !processing {
		w.disconnectLocked()
		return
	}
	if w.url == "" || w.connectedLocked() {
		return
	}
	w.connectLocked(ctx)
}

// Close tears the subscription down unconditionally.
func (w *Watcher) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.disconnectLocked()
}

// Connected reports whether a subscription is currently open.
func (w *Watcher) Connected() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.connectedLocked()
}

// connectedLocked also reaps a connection whose reader has already exited,
// so a dropped connection is re-dialed by the next Update.
func (w *Watcher) connectedLocked() bool {
	if w.conn == nil {
		return false
	}
	select {
	case <-w.done:
		w.conn = nil
		w.cancel = nil
		return false
	default:
		return true
	}
}

func (w *Watcher) connectLocked(ctx context.Context) {
	conn, _, err := websocket.Dial(ctx, w.url, nil)
	if err != nil {
		w.logger.Warn("dial failed", zap.String("url", w.url), zap.Error(err))
		return
	}
	if err := wsjson.Write(ctx, conn, event{Event: "subscribe", Channel: channelName}); err != nil {
		w.logger.Warn("subscribe failed", zap.Error(err))
		conn.Close(websocket.StatusInternalError, "subscribe failed")
		return
	}

	// The reader outlives the dial context; disconnect cancels it.
	readCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	w.conn = conn
	w.cancel = cancel
	w.done = done

	w.logger.Info("subscribed", zap.String("channel", channelName))
	go w.read(readCtx, conn, done)
}

// read never takes w.mu; it only signals exit through done.
func (w *Watcher) read(ctx context.Context, conn *websocket.Conn, done chan struct{}) {
	defer close(done)
	defer conn.Close(websocket.StatusNormalClosure, "closed")
	for {
		var ev event
		if err := wsjson.Read(ctx, conn, &ev); err != nil {
			if ctx.Err() == nil {
				w.logger.Warn("subscription dropped", zap.Error(err))
			}
			return
		}
		switch ev.Event {
		case eventTemplateReady, eventTemplateFailed:
			w.logger.Info("processing finished", zap.String("event", ev.Event))
			w.invalidate()
		}
	}
}

func (w *Watcher) disconnectLocked() {
	if !w.connectedLocked() {
		return
	}
	w.cancel()
	w.conn.Close(websocket.StatusNormalClosure, "idle")
	<-w.done
	w.conn = nil
	w.cancel = nil
}
