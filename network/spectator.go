package network

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"

	"github.com/lixenwraith/oasis/engine"
	"github.com/lixenwraith/oasis/status"
)

const (
	writeWait      = 2 * time.Second
	maxMessageSize = 512
	shutdownWait   = 3 * time.Second
)

// client serializes writes to one viewer connection
type client struct {
	id   string
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *client) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.BinaryMessage, data)
}

func (c *client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.Close()
}

// Spectator broadcasts committed frames as msgpack binary messages to websocket viewers
// Frames whose content matches the previous broadcast (ignoring the tick counter) are skipped
type Spectator struct {
	addr     string
	path     string
	upgrader websocket.Upgrader
	logger   *zap.Logger
	metrics  *status.Registry

	mu      sync.RWMutex
	clients map[string]*client
	digest  uint64
	latest  []byte
}

// NewSpectator creates a spectator serving path on addr
func NewSpectator(addr, path string, logger *zap.Logger) *Spectator {
	if path == "" {
		path = "/"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Spectator{
		addr: addr,
		path: path,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger:  logger,
		metrics: status.NewRegistry(),
		clients: make(map[string]*client),
	}
}

// Handler returns the HTTP handler upgrading viewers on the configured path
func (s *Spectator) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(s.path, s.serveWS)
	return mux
}

// ListenAndServe runs the HTTP server until ctx is cancelled
func (s *Spectator) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("spectator listening", zap.String("addr", s.addr), zap.String("path", s.path))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("spectator: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownWait)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.closeAll()
	if err != nil {
		return fmt.Errorf("spectator shutdown: %w", err)
	}
	return nil
}

func (s *Spectator) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("spectator upgrade failed", zap.Error(err))
		return
	}

	c := &client{id: uuid.NewString(), conn: conn}

	// Late joiners get the current picture before any newer broadcast can reach them
	s.mu.Lock()
	if s.latest != nil {
		if err := c.write(s.latest); err != nil {
			s.mu.Unlock()
			c.close()
			s.logger.Info("spectator replay failed", zap.String("client", c.id), zap.Error(err))
			return
		}
	}
	s.clients[c.id] = c
	count := len(s.clients)
	s.mu.Unlock()
	s.metrics.Counter(status.SpectatorAccepted).Add(1)
	s.metrics.Gauge(status.SpectatorViewers).Set(float64(count))

	s.logger.Info("spectator connected",
		zap.String("client", c.id),
		zap.String("remote", r.RemoteAddr),
		zap.Int("clients", count))

	go s.readPump(c)
}

// readPump discards viewer input and detects disconnects
func (s *Spectator) readPump(c *client) {
	c.conn.SetReadLimit(maxMessageSize)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			s.drop(c, err)
			return
		}
	}
}

func (s *Spectator) drop(c *client, cause error) {
	s.mu.Lock()
	_, ok := s.clients[c.id]
	delete(s.clients, c.id)
	count := len(s.clients)
	s.mu.Unlock()

	if !ok {
		return
	}
	c.close()
	s.metrics.Gauge(status.SpectatorViewers).Set(float64(count))

	fields := []zap.Field{zap.String("client", c.id), zap.Int("clients", count)}
	if cause != nil && !websocket.IsCloseError(cause, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		fields = append(fields, zap.Error(cause))
	}
	s.logger.Info("spectator disconnected", fields...)
}

func (s *Spectator) closeAll() {
	s.mu.Lock()
	clients := s.clients
	s.clients = make(map[string]*client)
	s.mu.Unlock()
	s.metrics.Gauge(status.SpectatorViewers).Set(0)

	for _, c := range clients {
		c.close()
	}
}

// Render implements engine.Renderer
func (s *Spectator) Render(f engine.Frame) error {
	digest, err := frameDigest(f)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.latest != nil && digest == s.digest {
		s.mu.Unlock()
		s.metrics.Counter(status.FramesSkipped).Add(1)
		return nil
	}
	s.mu.Unlock()

	data, err := msgpack.Marshal(&f)
	if err != nil {
		return fmt.Errorf("encode frame %d: %w", f.Tick, err)
	}

	s.mu.Lock()
	s.digest = digest
	s.latest = data
	targets := make([]*client, 0, len(s.clients))
	for _, c := range s.clients {
		targets = append(targets, c)
	}
	s.mu.Unlock()
	s.metrics.Counter(status.FramesSent).Add(1)

	for _, c := range targets {
		if err := c.write(data); err != nil {
			s.drop(c, err)
		}
	}
	return nil
}

// frameDigest hashes the frame content without the tick counter
func frameDigest(f engine.Frame) (uint64, error) {
	f.Tick = 0
	data, err := msgpack.Marshal(&f)
	if err != nil {
		return 0, fmt.Errorf("digest frame: %w", err)
	}
	return xxhash.Sum64(data), nil
}

// Clients returns the number of connected viewers
func (s *Spectator) Clients() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Stats returns the broadcast and suppressed frame counts
func (s *Spectator) Stats() (sent, skipped uint64) {
	return uint64(s.metrics.Counter(status.FramesSent).Load()),
		uint64(s.metrics.Counter(status.FramesSkipped).Load())
}

// Metrics exposes the spectator counters
func (s *Spectator) Metrics() *status.Registry {
	return s.metrics
}
