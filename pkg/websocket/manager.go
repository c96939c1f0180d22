// Package websocket subscribes to the DEX websocket streams and routes
// incoming frames to per-stream handlers.
package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Klingon-tech/binance-chain-go/internal/log"
)

// DefaultPingInterval is how often a ping control frame is sent.
const DefaultPingInterval = 30 * time.Second

const writeWait = 10 * time.Second

// ErrNotConnected is returned when subscribing before Connect.
var ErrNotConnected = errors.New("websocket not connected")

// Message is one routed frame.
type Message struct {
	Stream string          `json:"stream"`
	Data   json.RawMessage `json:"data"`
}

// Handler receives frames of one stream.
type Handler func(Message)

// StreamError is an {"error": ...} frame sent by the server.
type StreamError struct {
	Code    int
	Message string
}

func (e *StreamError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("stream error %d: %s", e.Code, e.Message)
	}
	return "stream error: " + e.Message
}

// Manager owns one connection and its subscriptions.
type Manager struct {
	url          string
	dialer       *websocket.Dialer
	pingInterval time.Duration
	onError      func(error)

	mu       sync.RWMutex
	conn     *websocket.Conn
	handlers map[string]Handler

	writeMu sync.Mutex
}

// Option configures a Manager.
type Option func(*Manager)

// WithDialer replaces the default websocket dialer.
func WithDialer(d *websocket.Dialer) Option {
	return func(m *Manager) { m.dialer = d }
}

// WithPingInterval sets the keepalive interval. Zero disables pings.
func WithPingInterval(d time.Duration) Option {
	return func(m *Manager) { m.pingInterval = d }
}

// WithErrorHandler receives error frames and undecodable frames.
func WithErrorHandler(fn func(error)) Option {
	return func(m *Manager) { m.onError = fn }
}

// NewManager creates a manager for url, e.g. wss://testnet-dex.binance.org/api/ws.
func NewManager(url string, opts ...Option) *Manager {
	m := &Manager{
		url:          url,
		dialer:       websocket.DefaultDialer,
		pingInterval: DefaultPingInterval,
		handlers:     make(map[string]Handler),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Connect dials the endpoint. User streams (orders, accounts, transfers)
// need the connection opened on <url>/<address>; pass that URL to
// NewManager for those.
func (m *Manager) Connect(ctx context.Context) error {
	conn, _, err := m.dialer.DialContext(ctx, m.url, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", m.url, err)
	}
	m.mu.Lock()
	m.conn = conn
	m.mu.Unlock()
	log.WS.Debug().Str("url", m.url).Msg("Connected")
	return nil
}

func (m *Manager) connection() (*websocket.Conn, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.conn == nil {
		return nil, ErrNotConnected
	}
	return m.conn, nil
}

// Send writes one JSON message.
func (m *Manager) Send(v interface{}) error {
	conn, err := m.connection()
	if err != nil {
		return err
	}
	m.writeMu.Lock()
	defer m.writeMu.Unlock()
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(v)
}

type command struct {
	Method      string   `json:"method"`
	Topic       string   `json:"topic,omitempty"`
	Symbols     []string `json:"symbols,omitempty"`
	UserAddress string   `json:"userAddress,omitempty"`
}

// Subscribe registers h for topic and asks the server for the stream.
// The handler is keyed by topic, which is the stream name frames carry.
func (m *Manager) Subscribe(topic string, symbols []string, address string, h Handler) error {
	if _, err := m.connection(); err != nil {
		return err
	}
	m.mu.Lock()
	m.handlers[topic] = h
	m.mu.Unlock()

	err := m.Send(command{Method: "subscribe", Topic: topic, Symbols: symbols, UserAddress: address})
	if err != nil {
		m.mu.Lock()
		delete(m.handlers, topic)
		m.mu.Unlock()
		return fmt.Errorf("subscribe %s: %w", topic, err)
	}
	log.WS.Debug().Str("topic", topic).Strs("symbols", symbols).Msg("Subscribed")
	return nil
}

// Unsubscribe stops a stream. With no symbols the handler is removed.
func (m *Manager) Unsubscribe(topic string, symbols []string) error {
	if err := m.Send(command{Method: "unsubscribe", Topic: topic, Symbols: symbols}); err != nil {
		return fmt.Errorf("unsubscribe %s: %w", topic, err)
	}
	if len(symbols) == 0 {
		m.mu.Lock()
		delete(m.handlers, topic)
		m.mu.Unlock()
	}
	return nil
}

// KeepAlive asks the server to extend the connection lifetime.
func (m *Manager) KeepAlive() error {
	return m.Send(command{Method: "keepAlive"})
}

// Run reads frames until ctx is cancelled or the connection fails. It
// returns ctx.Err() after a cancellation.
func (m *Manager) Run(ctx context.Context) error {
	conn, err := m.connection()
	if err != nil {
		return err
	}

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			m.writeMu.Lock()
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			m.writeMu.Unlock()
			_ = conn.Close()
		case <-done:
		}
	}()

	if m.pingInterval > 0 {
		go m.pingLoop(conn, done)
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WS.Info().Msg("Connection closed by server")
				return nil
			}
			return fmt.Errorf("read: %w", err)
		}
		m.dispatch(data)
	}
}

func (m *Manager) pingLoop(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(m.pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				log.WS.Debug().Err(err).Msg("Ping failed")
				return
			}
		case <-done:
			return
		}
	}
}

func (m *Manager) dispatch(data []byte) {
	var frame struct {
		Stream string          `json:"stream"`
		Data   json.RawMessage `json:"data"`
		Error  json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(data, &frame); err != nil {
		m.reportError(fmt.Errorf("decode frame: %w", err))
		return
	}
	if len(frame.Error) > 0 && string(frame.Error) != "null" {
		m.reportError(parseStreamError(frame.Error))
		return
	}
	if frame.Stream == "" {
		log.WS.Warn().RawJSON("frame", data).Msg("Frame without stream")
		return
	}

	m.mu.RLock()
	h, ok := m.handlers[frame.Stream]
	m.mu.RUnlock()
	if !ok {
		log.WS.Debug().Str("stream", frame.Stream).Msg("No handler for stream")
		return
	}
	h(Message{Stream: frame.Stream, Data: frame.Data})
}

func (m *Manager) reportError(err error) {
	if m.onError != nil {
		m.onError(err)
		return
	}
	log.WS.Error().Err(err).Msg("Unhandled stream error")
}

// parseStreamError accepts "message" and {"code":..,"message":..} forms.
func parseStreamError(raw json.RawMessage) *StreamError {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return &StreamError{Message: s}
	}
	var obj struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Message != "" {
		return &StreamError{Code: obj.Code, Message: obj.Message}
	}
	return &StreamError{Message: string(raw)}
}

// Close closes the connection.
func (m *Manager) Close() error {
	m.mu.Lock()
	conn := m.conn
	m.conn = nil
	m.mu.Unlock()
	if conn == nil {
		return nil
	}
	return conn.Close()
}
