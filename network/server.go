// Package network serves console sessions over TCP: one engine instance per
// accepted connection, with a minimal telnet filter so stock telnet clients
// work in character mode.
package network

import (
	"fmt"
	"log"
	"net"
	"os"
	"sync"

	"github.com/drake/tinycli/console"
	"github.com/drake/tinycli/internal/ring"
)

// sourceCapacity bounds the per-connection input ring; a client flooding
// faster than the session drains simply loses bytes, like a saturated RX
// buffer.
const sourceCapacity = 1024

// Server accepts TCP connections and runs one console session per client.
// cfg.Source and cfg.Sink are ignored; each connection supplies its own.
type Server struct {
	cfg    console.Config
	logger *log.Logger

	mu       sync.Mutex
	listener net.Listener
	conns    map[net.Conn]struct{}
	closed   bool
}

// NewServer creates a server from the session template cfg.
func NewServer(cfg console.Config) *Server {
	return &Server{
		cfg:    cfg,
		logger: log.New(os.Stderr, "", log.LstdFlags),
		conns:  make(map[net.Conn]struct{}),
	}
}

// ListenAndServe listens on addr and serves until Close.
func (s *Server) ListenAndServe(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("network: listen %s: %w", addr, err)
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln until Close. It takes ownership of ln.
func (s *Server) Serve(ln net.Listener) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		ln.Close()
		return nil
	}
	s.listener = ln
	s.mu.Unlock()

	for {
		conn, err := ln.Accept()
		if err != nil {
			s.mu.Lock()
			closed := s.closed
			s.mu.Unlock()
			if closed {
				return nil
			}
			return fmt.Errorf("network: accept: %w", err)
		}
		s.track(conn)
		go s.serveConn(conn)
	}
}

// Addr returns the bound listener address, or nil before Serve.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Close stops accepting and drops every live session.
func (s *Server) Close() error {
	s.mu.Lock()
	s.closed = true
	ln := s.listener
	conns := make([]net.Conn, 0, len(s.conns))
	for c := range s.conns {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	var err error
	if ln != nil {
		err = ln.Close()
	}
	for _, c := range conns {
		c.Close()
	}
	return err
}

func (s *Server) track(conn net.Conn) {
	s.mu.Lock()
	s.conns[conn] = struct{}{}
	s.mu.Unlock()
}

func (s *Server) untrack(conn net.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
}

// serveConn runs one session: a reader goroutine feeds the filtered byte
// stream into a ring source, while this goroutine pumps the engine whenever
// input arrives. The connection itself is the sink.
func (s *Server) serveConn(conn net.Conn) {
	defer s.untrack(conn)
	defer conn.Close()

	src := ring.New(sourceCapacity)
	done := make(chan struct{})

	go func() {
		defer close(done)
		var filter telnetFilter
		buf := make([]byte, 512)
		for {
			n, err := conn.Read(buf)
			for _, raw := range buf[:n] {
				b, ok, reply := filter.feed(raw)
				if len(reply) > 0 {
					if _, werr := conn.Write(reply); werr != nil {
						return
					}
				}
				if ok {
					src.Put(b)
				}
			}
			if err != nil {
				return
			}
		}
	}()

	cfg := s.cfg
	cfg.Source = src
	cfg.Sink = conn
	sess, err := console.New(cfg)
	if err != nil {
		s.logger.Printf("network: session for %s: %v", conn.RemoteAddr(), err)
		return
	}

	for {
		select {
		case <-done:
			// Drain whatever arrived before EOF, then hang up.
			sess.Pump()
			return
		case <-src.Wakeup():
			sess.Pump()
		}
	}
}
