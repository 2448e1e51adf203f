package main

import (
	"fmt"
	"log"
	"net"
	"time"
)

// Server owns the registry and configuration shared by every connection.
// Unlike the teacher's Server (ircd.go), which funnels every client event
// through one goroutine and a handful of channels (newClientChan,
// messageServerChan, deadClientChan), this Server hands each accepted
// connection its own goroutine and relies on Registry/User/Channel's own
// locking for safety (spec.md §9's Open Question resolution: per-entity
// locks plus one coarse registry lock, rather than a single-writer event
// loop). Serve below is still grounded in the teacher's accept loop
// shape, just without the central dispatch channel.
type Server struct {
	config   *Config
	registry *Registry
	resolver HostnameResolver

	startTime time.Time
}

// NewServer builds a Server ready to accept connections.
func NewServer(config *Config) *Server {
	return &Server{
		config:    config,
		registry:  newRegistry(),
		resolver:  dnsResolver{},
		startTime: time.Now(),
	}
}

// ListenAndServe listens on the configured (or overridden) address and
// accepts connections until the listener errors. Grounded in ircd.go's
// start/acceptConnections; the per-client read/write goroutine split is
// kept, the central event-loop channels are not.
func (s *Server) ListenAndServe(addrOverride string) error {
	addr := addrOverride
	if addr == "" {
		addr = fmt.Sprintf("%s:%s", s.config.ListenHost, s.config.ListenPort)
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen: %s", err)
	}
	defer func() { _ = ln.Close() }()

	log.Printf("listening on %s", addr)

	return s.Serve(ln)
}

// Serve accepts connections from ln until it errors, spawning one goroutine
// per connection. Split out from ListenAndServe so tests can harness a
// Server against a listener bound to an OS-chosen port.
func (s *Server) Serve(ln net.Listener) error {
	for {
		conn, err := ln.Accept()
		if err != nil {
			return fmt.Errorf("accept: %s", err)
		}

		go s.handleConnection(conn)
	}
}

func (s *Server) handleConnection(netConn net.Conn) {
	conn := NewConn(netConn)
	hostname := s.resolver.Resolve(conn.IP)

	client := newClient(s, conn, hostname)
	log.Printf("client %d: connected from %s (%s)", client.id, conn.RemoteAddr(), hostname)

	client.readLoop()
}
