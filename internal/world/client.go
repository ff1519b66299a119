package world

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"flintmc/internal/domain"
	"flintmc/internal/protocol"
)

const (
	agentName    = "flintmc"
	queryTimeout = 5 * time.Second
	chatBuffer   = 256

	// Extra grace after joining so world data finishes syncing before the
	// first command.
	worldSyncGrace = 500 * time.Millisecond
)

type blockReply struct {
	msg protocol.BlockMsg
	err error
}

// Client is the websocket implementation of Channel. A background reader
// owns the connection until the joined handshake completes, then the client
// is handed to the orchestrator; the reader keeps routing inbound chat and
// query replies.
type Client struct {
	conn *websocket.Conn

	writeMu sync.Mutex

	joined chan struct{} // closed by the reader on JOINED
	done   chan struct{} // closed when the reader exits

	chat chan string

	mu      sync.Mutex
	seq     uint64
	pending chan blockReply // non-nil while one query is in flight

	errMu   sync.Mutex
	readErr error

	agentID string
}

// Connect dials the world-control endpoint and blocks until the session is
// fully joined, or fails with ErrConnectTimeout after timeout.
func Connect(addr string, timeout time.Duration) (*Client, error) {
	url := addr
	if !strings.Contains(url, "://") {
		url = "ws://" + url
	}
	if !strings.Contains(strings.TrimPrefix(url, "ws://"), "/") {
		url += "/v1/ws"
	}

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, &CommandError{Op: "dial " + url, Err: err}
	}

	c := &Client{
		conn:   conn,
		joined: make(chan struct{}),
		done:   make(chan struct{}),
		chat:   make(chan string, chatBuffer),
	}

	hello := protocol.HelloMsg{
		Type:            protocol.TypeHello,
		ProtocolVersion: protocol.Version,
		AgentName:       agentName,
	}
	if err := c.writeJSON(hello); err != nil {
		conn.Close()
		return nil, &CommandError{Op: "send HELLO", Err: err}
	}

	go c.readLoop()

	select {
	case <-c.joined:
	case <-c.done:
		conn.Close()
		return nil, &CommandError{Op: "join", Err: c.readError()}
	case <-time.After(timeout):
		conn.Close()
		return nil, ErrConnectTimeout
	}

	time.Sleep(worldSyncGrace)
	return c, nil
}

// AgentID returns the id the world assigned in the WELCOME message.
func (c *Client) AgentID() string { return c.agentID }

func (c *Client) readLoop() {
	defer close(c.done)
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			c.setReadError(err)
			c.failPending(err)
			return
		}
		base, err := protocol.DecodeBase(raw)
		if err != nil {
			continue
		}
		switch base.Type {
		case protocol.TypeWelcome:
			var w protocol.WelcomeMsg
			if json.Unmarshal(raw, &w) == nil {
				c.agentID = w.AgentID
			}
		case protocol.TypeJoined:
			select {
			case <-c.joined:
			default:
				close(c.joined)
			}
		case protocol.TypeChat:
			var m protocol.ChatMsg
			if json.Unmarshal(raw, &m) != nil {
				continue
			}
			select {
			case c.chat <- m.Text:
			default: // inbox full, drop
			}
		case protocol.TypeBlock:
			var b protocol.BlockMsg
			if json.Unmarshal(raw, &b) != nil {
				continue
			}
			c.deliver(blockReply{msg: b})
		case protocol.TypeError:
			var e protocol.ErrorMsg
			if json.Unmarshal(raw, &e) != nil {
				continue
			}
			err := fmt.Errorf("%s: %s", e.Code, e.Message)
			if e.Seq != 0 {
				c.deliver(blockReply{err: err})
			} else {
				c.setReadError(err)
				return
			}
		}
	}
}

func (c *Client) deliver(r blockReply) {
	c.mu.Lock()
	ch := c.pending
	c.pending = nil
	c.mu.Unlock()
	if ch != nil {
		ch <- r
	}
}

func (c *Client) failPending(err error) {
	c.deliver(blockReply{err: err})
}

func (c *Client) setReadError(err error) {
	c.errMu.Lock()
	if c.readErr == nil {
		c.readErr = err
	}
	c.errMu.Unlock()
}

func (c *Client) readError() error {
	c.errMu.Lock()
	defer c.errMu.Unlock()
	if c.readErr == nil {
		return fmt.Errorf("connection closed")
	}
	return c.readErr
}

func (c *Client) writeJSON(v any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(v)
}

// SendCommand fires a console command. A leading "/" is added when missing.
func (c *Client) SendCommand(text string) error {
	select {
	case <-c.done:
		return &CommandError{Op: "send command", Err: c.readError()}
	default:
	}
	if !strings.HasPrefix(text, "/") {
		text = "/" + text
	}
	msg := protocol.CommandMsg{
		Type:            protocol.TypeCommand,
		ProtocolVersion: protocol.Version,
		Text:            text,
	}
	if err := c.writeJSON(msg); err != nil {
		return &CommandError{Op: "send command", Err: err}
	}
	return nil
}

func (c *Client) query(pos domain.Vec3, property string) (protocol.BlockMsg, error) {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	ch := make(chan blockReply, 1)
	c.pending = ch
	c.mu.Unlock()

	msg := protocol.QueryMsg{
		Type:     protocol.TypeQuery,
		Seq:      seq,
		Pos:      pos,
		Property: property,
	}
	if err := c.writeJSON(msg); err != nil {
		c.mu.Lock()
		c.pending = nil
		c.mu.Unlock()
		return protocol.BlockMsg{}, &CommandError{Op: "query block", Err: err}
	}

	select {
	case r := <-ch:
		if r.err != nil {
			return protocol.BlockMsg{}, &CommandError{Op: "query block", Err: r.err}
		}
		return r.msg, nil
	case <-c.done:
		return protocol.BlockMsg{}, &CommandError{Op: "query block", Err: c.readError()}
	case <-time.After(queryTimeout):
		c.mu.Lock()
		c.pending = nil
		c.mu.Unlock()
		return protocol.BlockMsg{}, &CommandError{Op: "query block", Err: fmt.Errorf("timed out")}
	}
}

// GetBlock returns the block identifier at pos.
func (c *Client) GetBlock(pos domain.Vec3) (string, bool, error) {
	b, err := c.query(pos, "")
	if err != nil {
		return "", false, err
	}
	if !b.Present {
		return "", false, nil
	}
	return b.Block, true, nil
}

// GetBlockStateProperty returns the named state property at pos.
func (c *Client) GetBlockStateProperty(pos domain.Vec3, property string) (string, bool, error) {
	b, err := c.query(pos, property)
	if err != nil {
		return "", false, err
	}
	if !b.Present {
		return "", false, nil
	}
	v, ok := b.States[property]
	return v, ok, nil
}

// RecvChat returns the next inbound chat line, waiting up to timeout.
func (c *Client) RecvChat(timeout time.Duration) (string, bool) {
	if timeout <= 0 {
		select {
		case m := <-c.chat:
			return m, true
		default:
			return "", false
		}
	}
	select {
	case m := <-c.chat:
		return m, true
	case <-c.done:
		return "", false
	case <-time.After(timeout):
		return "", false
	}
}

func (c *Client) Close() error {
	return c.conn.Close()
}
