package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	openTimeout       = 10 * time.Second
	heartbeatInterval = 20 * time.Second
	reconnectAttempts = 5
	reconnectDelay    = time.Second
)

// Params locate the signaling relay. They arrive in the room descriptor.
type Params struct {
	Host   string
	Port   int
	Path   string
	Secure bool
}

func (p Params) url(id string) string {
	scheme := "ws"
	if p.Secure {
		scheme = "wss"
	}
	return fmt.Sprintf("%s://%s:%d%s?id=%s", scheme, p.Host, p.Port, p.Path, id)
}

type EventKind int

const (
	// EventMessage carries a forwarded wire message.
	EventMessage EventKind = iota
	// EventDisconnected means the signaling channel dropped; the client is
	// reconnecting (or, when Err is set, has given up).
	EventDisconnected
	// EventReconnected means the signaling channel is back. Media state is
	// untouched; only the channel was re-established.
	EventReconnected
)

type Event struct {
	Kind EventKind
	Msg  *Message
	Err  error
}

// Client holds one registration with the signaling relay. The relay accepts
// the id proposed at dial time or rejects it with ID-TAKEN, which usually
// means a stale prior session is still registered.
type Client struct {
	params Params
	id     string

	mu   sync.Mutex
	conn *websocket.Conn

	events chan Event
	done   chan struct{}
	once   sync.Once
}

// Dial connects to the relay and waits for the id to be accepted. An empty
// proposedID gets a fresh random one; reconnecting clients pass their
// previous id to keep it.
func Dial(ctx context.Context, params Params, proposedID string) (*Client, error) {
	if proposedID == "" {
		proposedID = uuid.NewString()
	}

	conn, err := connect(ctx, params, proposedID)
	if err != nil {
		return nil, err
	}

	c := &Client{
		params: params,
		id:     proposedID,
		conn:   conn,
		events: make(chan Event, 16),
		done:   make(chan struct{}),
	}

	go c.readLoop()
	go c.heartbeatLoop()

	return c, nil
}

func connect(ctx context.Context, params Params, id string) (*websocket.Conn, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, params.url(id), nil)
	if err != nil {
		return nil, newError(KindRelayUnavailable, err.Error())
	}

	_ = conn.SetReadDeadline(time.Now().Add(openTimeout))

	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		_ = conn.Close()
		return nil, newError(KindNetwork, err.Error())
	}

	_ = conn.SetReadDeadline(time.Time{})

	switch msg.Type {
	case MsgOpen:
		return conn, nil
	case MsgIDTaken:
		_ = conn.Close()
		return nil, newError(KindIDCollision, "peer id already registered")
	case MsgError:
		_ = conn.Close()
		var p ErrorPayload
		if json.Unmarshal(msg.Payload, &p) == nil && p.Kind != "" {
			return nil, newError(p.Kind, p.Message)
		}
		return nil, newError(KindNetwork, "relay rejected connection")
	default:
		_ = conn.Close()
		return nil, newError(KindNetwork, fmt.Sprintf("unexpected handshake message %q", msg.Type))
	}
}

// ID returns the peer id the relay registered for this client.
func (c *Client) ID() string {
	return c.id
}

// Events returns the inbound event stream. The channel closes when the
// client shuts down or the signaling channel is lost for good.
func (c *Client) Events() <-chan Event {
	return c.events
}

// Send forwards payload to the peer registered under dst.
func (c *Client) Send(dst string, typ MessageType, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	msg := Message{Type: typ, Src: c.id, Dst: dst, Payload: raw}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return newError(KindSignalingLost, "signaling channel down")
	}
	if err := c.conn.WriteJSON(msg); err != nil {
		return newError(KindNetwork, err.Error())
	}
	return nil
}

// Close tears down the signaling channel. Idempotent.
func (c *Client) Close() {
	c.once.Do(func() {
		close(c.done)
		c.mu.Lock()
		if c.conn != nil {
			_ = c.conn.Close()
		}
		c.mu.Unlock()
	})
}

func (c *Client) closed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

func (c *Client) readLoop() {
	defer close(c.events)

	for {
		c.mu.Lock()
		conn := c.conn
		c.mu.Unlock()

		var msg Message
		err := conn.ReadJSON(&msg)
		if err != nil {
			if c.closed() {
				return
			}
			if !c.reconnect() {
				return
			}
			continue
		}

		if msg.Type == MsgHeartbeat {
			continue
		}

		select {
		case c.events <- Event{Kind: EventMessage, Msg: &msg}:
		case <-c.done:
			return
		}
	}
}

// reconnect re-establishes the signaling channel under the same peer id.
// Media connections are not touched. Returns false when the channel is lost
// for good, after emitting a terminal disconnect event.
func (c *Client) reconnect() bool {
	c.mu.Lock()
	c.conn = nil
	c.mu.Unlock()

	select {
	case c.events <- Event{Kind: EventDisconnected}:
	case <-c.done:
		return false
	}

	for attempt := 0; attempt < reconnectAttempts; attempt++ {
		select {
		case <-c.done:
			return false
		case <-time.After(reconnectDelay):
		}

		ctx, cancel := context.WithTimeout(context.Background(), openTimeout)
		conn, err := connect(ctx, c.params, c.id)
		cancel()
		if err != nil {
			continue
		}

		c.mu.Lock()
		c.conn = conn
		c.mu.Unlock()

		select {
		case c.events <- Event{Kind: EventReconnected}:
		case <-c.done:
			return false
		}
		return true
	}

	select {
	case c.events <- Event{Kind: EventDisconnected, Err: newError(KindSignalingLost, "reconnect attempts exhausted")}:
	default:
	}
	return false
}

func (c *Client) heartbeatLoop() {
	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.mu.Lock()
			if c.conn != nil {
				_ = c.conn.WriteJSON(Message{Type: MsgHeartbeat, Src: c.id})
			}
			c.mu.Unlock()
		}
	}
}
