package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/kapu/gok-stats-bot-go/internal/constants"
	"go.uber.org/zap"
)

// Handler receives every decoded message. It runs on the read goroutine and
// must hand long work off.
type Handler func(msg *Message)

// Listener reads bridge messages from a WebSocket and reconnects a bounded
// number of times after a dropped connection.
type Listener struct {
	url         string
	maxAttempts int
	delay       time.Duration
	logger      *zap.Logger

	mu       sync.Mutex
	conn     *websocket.Conn
	state    ListenerState
	handler  Handler
	started  bool
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewListener(url string, maxAttempts int, delay time.Duration, logger *zap.Logger) *Listener {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Listener{
		url:         url,
		maxAttempts: maxAttempts,
		delay:       delay,
		logger:      logger,
		state:       StateDisconnected,
		stopCh:      make(chan struct{}),
	}
}

// OnMessage sets the message handler. Call before Start.
func (l *Listener) OnMessage(h Handler) {
	l.mu.Lock()
	l.handler = h
	l.mu.Unlock()
}

// Start dials the bridge once and fails fast when it is unreachable. Later
// disconnects are retried in the background.
func (l *Listener) Start(ctx context.Context) error {
	l.mu.Lock()
	if l.started {
		l.mu.Unlock()
		return fmt.Errorf("listener already started")
	}
	l.started = true
	l.mu.Unlock()

	conn, err := l.dial(ctx)
	if err != nil {
		l.setState(StateFailed)
		return err
	}

	l.wg.Add(1)
	go l.run(ctx, conn)
	return nil
}

func (l *Listener) dial(ctx context.Context) (*websocket.Conn, error) {
	l.setState(StateConnecting)

	dialer := *websocket.DefaultDialer
	dialer.HandshakeTimeout = constants.WebSocketConfig.HandshakeTimeout

	conn, _, err := dialer.DialContext(ctx, l.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect websocket: %w", err)
	}

	l.mu.Lock()
	l.conn = conn
	l.mu.Unlock()
	l.setState(StateConnected)
	l.logger.Info("WebSocket connected", zap.String("url", l.url))
	return conn, nil
}

func (l *Listener) run(ctx context.Context, conn *websocket.Conn) {
	defer l.wg.Done()
	defer l.logger.Info("WebSocket listener stopped")

	for {
		l.read(conn)
		if l.stopping(ctx) {
			return
		}

		l.setState(StateDisconnected)
		next, ok := l.reconnect(ctx)
		if !ok {
			return
		}
		if l.stopping(ctx) {
			_ = next.Close()
			return
		}
		conn = next
	}
}

func (l *Listener) read(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			select {
			case <-l.stopCh:
			default:
				l.logger.Warn("WebSocket read error", zap.Error(err))
			}
			_ = conn.Close()
			return
		}
		l.dispatch(data)
	}
}

func (l *Listener) reconnect(ctx context.Context) (*websocket.Conn, bool) {
	for attempt := 1; attempt <= l.maxAttempts; attempt++ {
		l.setState(StateReconnecting)
		l.logger.Info("Scheduling reconnect",
			zap.Int("attempt", attempt),
			zap.Int("max", l.maxAttempts),
			zap.Duration("delay", l.delay),
		)

		select {
		case <-time.After(l.delay):
		case <-l.stopCh:
			return nil, false
		case <-ctx.Done():
			return nil, false
		}

		conn, err := l.dial(ctx)
		if err == nil {
			return conn, true
		}
		l.logger.Error("Reconnect failed", zap.Int("attempt", attempt), zap.Error(err))
	}

	l.logger.Error("Max reconnect attempts reached", zap.Int("attempts", l.maxAttempts))
	l.setState(StateFailed)
	return nil, false
}

func (l *Listener) dispatch(data []byte) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		preview := string(data)
		if len(preview) > 200 {
			preview = preview[:200]
		}
		l.logger.Error("Failed to parse message",
			zap.Error(err),
			zap.String("data", preview),
		)
		return
	}

	l.mu.Lock()
	handler := l.handler
	l.mu.Unlock()
	if handler != nil {
		handler(&msg)
	}
}

func (l *Listener) stopping(ctx context.Context) bool {
	select {
	case <-l.stopCh:
		return true
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

func (l *Listener) setState(next ListenerState) {
	l.mu.Lock()
	prev := l.state
	l.state = next
	l.mu.Unlock()

	if prev != next {
		l.logger.Debug("WebSocket state changed",
			zap.String("from", prev.String()),
			zap.String("to", next.String()),
		)
	}
}

func (l *Listener) State() ListenerState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Stop closes the connection and waits up to timeout for the read loop.
func (l *Listener) Stop(timeout time.Duration) {
	l.stopOnce.Do(func() {
		close(l.stopCh)
	})

	l.mu.Lock()
	conn := l.conn
	l.conn = nil
	l.mu.Unlock()

	if conn != nil {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		_ = conn.Close()
	}

	done := make(chan struct{})
	go func() {
		l.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		l.logger.Warn("Timeout waiting for listener to stop")
	}

	l.setState(StateDisconnected)
}
