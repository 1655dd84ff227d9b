// Package websocket wraps gorilla/websocket connections in clients with a
// single reader and a single writer goroutine each, plus a manager that
// tracks the live clients.
package websocket

import (
	"context"
	"errors"
	"io"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var ErrClientClosed = errors.New("websocket client closed")

const (
	pongWait       = 60 * time.Second
	maxMessageSize = 512
	egressSize     = 32
)

// DefaultSetupConn limits message size and keeps the read deadline moving
// while pongs arrive.
func DefaultSetupConn(c *websocket.Conn) {
	c.SetReadLimit(maxMessageSize)
	_ = c.SetReadDeadline(time.Now().Add(pongWait))
	c.SetPongHandler(func(string) error {
		_ = c.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
}

// DefaultUpgrader accepts the listed origins, or any origin when the list is
// empty.
func DefaultUpgrader(origins []string) websocket.Upgrader {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
	upgrader.CheckOrigin = func(r *http.Request) bool {
		if len(origins) == 0 {
			return true
		}
		return slices.Contains(origins, r.Header.Get("Origin"))
	}
	return upgrader
}

// Client reads from and writes to one websocket connection.
type Client interface {
	io.Writer
	io.Closer

	ID() string
	Conn() *websocket.Conn
	Logger() *zerolog.Logger

	// WriteForever writes queued messages and pings until ctx is done.
	WriteForever(ctx context.Context, onDestroy func(Client), ping time.Duration)

	// ReadForever passes each received message to the handlers, in order,
	// until ctx is done or the connection fails.
	ReadForever(ctx context.Context, onDestroy func(Client), handlers ...MessageHandler)

	// Wait blocks until both loops have returned.
	Wait()
}

type MessageHandler func(Client, []byte)

// Handler configures ServeWS.
type Handler struct {
	Upgrader  websocket.Upgrader
	SetupConn func(*websocket.Conn)
	NewClient func(*websocket.Conn) Client
	// OnCreate runs once the client exists, before its loops start. ctx
	// carries the request's values but not its cancellation.
	OnCreate func(ctx context.Context, cancel context.CancelFunc, c Client)
	// OnDestroy runs once when the client's loops shut down.
	OnDestroy func(Client)
	Ping      time.Duration
	Handlers  []MessageHandler
}

// ServeWS upgrades the request and starts the client's read and write loops.
func ServeWS(h Handler) http.HandlerFunc {
	setup := h.SetupConn
	if setup == nil {
		setup = DefaultSetupConn
	}
	newClient := h.NewClient
	if newClient == nil {
		newClient = NewClient
	}
	ping := h.Ping
	if ping <= 0 {
		ping = pongWait * 9 / 10
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.Upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade has already replied to the client
			log.Warn().Err(err).Msg("websocket upgrade failed")
			return
		}
		setup(conn)
		client := newClient(conn)
		ctx, cancel := context.WithCancel(context.WithoutCancel(r.Context()))
		if h.OnCreate != nil {
			h.OnCreate(ctx, cancel, client)
		}
		onDestroy := h.OnDestroy
		if onDestroy == nil {
			onDestroy = func(c Client) {
				cancel()
				_ = c.Close()
			}
		}

		go client.WriteForever(ctx, onDestroy, ping)
		go client.ReadForever(ctx, onDestroy, h.Handlers...)
	}
}

type client struct {
	id      string
	conn    *websocket.Conn
	egress  chan []byte
	done    chan struct{}
	wg      sync.WaitGroup
	closing sync.Once
	destroy sync.Once
	logger  zerolog.Logger
}

// NewClient is the default client factory for ServeWS.
func NewClient(conn *websocket.Conn) Client {
	id := uuid.NewString()
	c := &client{
		id:     id,
		conn:   conn,
		egress: make(chan []byte, egressSize),
		done:   make(chan struct{}),
		logger: log.With().Str("client", id).Logger(),
	}
	c.wg.Add(2)
	return c
}

func (c *client) ID() string {
	return c.id
}

func (c *client) Conn() *websocket.Conn {
	return c.conn
}

func (c *client) Logger() *zerolog.Logger {
	return &c.logger
}

// Write queues p for the write loop.
func (c *client) Write(p []byte) (int, error) {
	select {
	case <-c.done:
		return 0, ErrClientClosed
	default:
	}
	select {
	case c.egress <- p:
		return len(p), nil
	case <-c.done:
		return 0, ErrClientClosed
	}
}

// Close sends a close frame and closes the connection. Calling it again is a
// no-op.
func (c *client) Close() error {
	var err error
	c.closing.Do(func() {
		close(c.done)
		_ = c.conn.WriteControl(websocket.CloseMessage, []byte{}, time.Now().Add(time.Second))
		err = c.conn.Close()
	})
	return err
}

func (c *client) onDestroy(fn func(Client)) {
	c.destroy.Do(func() {
		fn(c)
	})
}

func (c *client) WriteForever(ctx context.Context, onDestroy func(Client), ping time.Duration) {
	pingTicker := time.NewTicker(ping)
	defer func() {
		pingTicker.Stop()
		c.wg.Done()
		c.onDestroy(onDestroy)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.done:
			return
		case msg := <-c.egress:
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.logger.Error().Err(err).Msg("error writing message")
				return
			}
		case <-pingTicker.C:
			if err := c.conn.WriteMessage(websocket.PingMessage, []byte{}); err != nil {
				c.logger.Error().Err(err).Msg("error writing ping")
				return
			}
		}
	}
}

func (c *client) ReadForever(ctx context.Context, onDestroy func(Client), handlers ...MessageHandler) {
	defer func() {
		c.wg.Done()
		c.onDestroy(onDestroy)
	}()

	ingress := make(chan []byte)
	readErr := make(chan error, 1)
	go func() {
		for {
			_, payload, err := c.conn.ReadMessage()
			if err != nil {
				readErr <- err
				return
			}
			select {
			case ingress <- payload:
			case <-c.done:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			c.logger.Debug().Msg("read loop cancelled")
			return
		case err := <-readErr:
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				c.logger.Warn().Err(err).Msg("read loop closed unexpectedly")
			} else {
				c.logger.Debug().Msg("client connection closed")
			}
			return
		case payload := <-ingress:
			for _, h := range handlers {
				h(c, payload)
			}
		}
	}
}

func (c *client) Wait() {
	c.wg.Wait()
}
