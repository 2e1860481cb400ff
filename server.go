package tmpchat

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Server is the chat broker. Build one with NewServer and run it with
// Serve, matching the teacher's Listen/Accept split in aznet.go, adapted to
// an http.Server since the transport binding is a websocket upgrade rather
// than a raw net.Listener.
type Server struct {
	cfg      *Config
	registry *Registry
	queue    chan []byte
	bc       *Broadcaster

	httpSrv *http.Server

	closeOnce sync.Once
	closed    chan struct{}
	wg        sync.WaitGroup
}

// NewServer builds a Server with the given options applied over the
// defaults (DefaultListenAddr, DefaultMaxClients, and so on — see
// options.go), matching the teacher's functional-options constructor shape.
func NewServer(opts ...Option) (*Server, error) {
	cfg := applyConfig(opts)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Server{
		cfg:      cfg,
		registry: NewRegistry(),
		queue:    make(chan []byte, cfg.broadcastQueueSize),
		closed:   make(chan struct{}),
	}
	s.bc = NewBroadcaster(s.queue, s.registry, cfg.logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleUpgrade)
	s.httpSrv = &http.Server{
		Addr:    cfg.listenAddr,
		Handler: mux,
	}
	return s, nil
}

// Serve starts the broadcaster and the periodic occupancy printer, then
// blocks accepting connections until Close is called. It always returns a
// non-nil error: ErrServerClosed after a graceful Close, any other error on
// a listener failure, matching the net/http.Server.Serve convention the
// teacher's cmd/azurl also relies on.
func (s *Server) Serve() error {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.bc.Run()
	}()

	if s.cfg.metricsInterval > 0 {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.printOccupancyLoop()
		}()
	}

	err := s.httpSrv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return ErrServerClosed
	}
	return err
}

// Close shuts the HTTP server down, stops the broadcaster, and waits for
// background goroutines to exit.
func (s *Server) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.closed)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err = s.httpSrv.Shutdown(ctx)
		close(s.queue)
		s.wg.Wait()
	})
	return err
}

// printOccupancyLoop prints the current occupancy and registered names at
// cfg.metricsInterval, matching the original's "_server_metrics" 5-second
// print loop (original_source/tmp_server.py).
func (s *Server) printOccupancyLoop() {
	ticker := time.NewTicker(s.cfg.metricsInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.closed:
			return
		case <-ticker.C:
			s.cfg.logger.Printf("occupancy=%d names=%v", s.registry.Occupancy(), s.registry.Names())
		}
	}
}

// handleUpgrade upgrades an incoming HTTP request to a websocket and spawns
// a driver for it. Failed upgrades are logged and discarded; they never
// reach the registry or occupancy count, since occupancy is only ever
// incremented from within a driver's CONNECTED_INIT handler.
func (s *Server) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.cfg.logger.Printf("server: upgrade failed: %v", err)
		return
	}

	conn := NewConn(ws, uuid.NewString())
	d := newDriver(conn, s.registry, s.queue, s.cfg, s.cfg.logger, s.cfg.metrics)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if s.cfg.pingInterval > 0 {
			stop := make(chan struct{})
			defer close(stop)
			go s.keepAlive(conn, stop)
		}
		d.run()
	}()
}

// keepAlive sends a websocket ping every cfg.pingInterval until stop is
// closed. A failed ping means the socket is already going away; the
// driver's own recv deadline will notice and terminate the connection, so
// keepAlive simply returns rather than forcing closure itself.
func (s *Server) keepAlive(conn *Conn, stop <-chan struct{}) {
	ticker := time.NewTicker(s.cfg.pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if err := conn.Ping(); err != nil {
				return
			}
		}
	}
}
