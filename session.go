package main

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/horgh/irc"
)

// Client is a per-connection session, present for the connection's entire
// lifetime whether or not it is ever registered. It owns the connection,
// the bounded outbound queue, and (only until registration) the
// in-progress NICK/USER fields. Grounded in local_client.go's LocalClient,
// trimmed of every TS6 pre-registration field (PreRegPass, PreRegTS6SID,
// PreRegCapabs, ...) since server linking is out of scope.
//
// user is read and written only by this connection's single reader
// goroutine (readLoop/handle run sequentially for one connection), so it
// needs no synchronization of its own; User's own fields are what
// concurrent handlers on other connections actually touch, and those are
// guarded by User.mu.
type Client struct {
	id     uint64
	conn   Conn
	server *Server

	outboundMu     sync.Mutex
	outboundClosed bool
	outbound       chan irc.Message
	writerDone     chan struct{}

	connStart time.Time
	hostname  string

	// Pending-registration fields. Only the reader goroutine for this
	// connection touches these, so no lock is needed.
	preRegNick     string
	preRegUser     string
	preRegRealName string

	user *User // nil until registration completes
}

// clientIDCounter hands out per-connection IDs for logging, grounded in
// local_client.go's LocalClient.ID.
var clientIDCounter uint64

func newClient(server *Server, conn Conn, hostname string) *Client {
	id := atomic.AddUint64(&clientIDCounter, 1)
	return &Client{
		id:         id,
		conn:       conn,
		server:     server,
		outbound:   make(chan irc.Message, outboundQueueCap),
		writerDone: make(chan struct{}),
		connStart:  time.Now(),
		hostname:   hostname,
	}
}

// registered reports whether this connection has completed the handshake.
func (c *Client) registered() bool {
	return c.user != nil
}

// enqueue is the non-blocking send spec.md §4.7 requires: if the
// outbound queue is full, the message is dropped without error. Grounded
// in local_client.go's maybeQueueMessage select/default pattern.
//
// Other connections' goroutines call this on a User (a broadcast that
// snapshotted this client just before it disconnected, say), so it can
// race with this client's own teardown closing outbound. outboundMu
// makes the closed-check and the send atomic with respect to that close:
// without it, a send observing "not yet closed" could still land on a
// channel that closes a moment later, which panics even under
// select/default (spec.md §5 point 3 requires best-effort delivery to a
// departed member, not a crash).
func (c *Client) enqueue(m irc.Message) {
	c.outboundMu.Lock()
	defer c.outboundMu.Unlock()
	if c.outboundClosed {
		return
	}
	select {
	case c.outbound <- m:
	default:
	}
}

// writerLoop drains the outbound queue and writes each message until the
// connection errors or the queue is closed on teardown.
func (c *Client) writerLoop() {
	defer close(c.writerDone)
	for m := range c.outbound {
		if err := c.conn.WriteMessage(m); err != nil {
			// Writer failures silently sink further outbound messages until the
			// reader observes the I/O error and tears the session down
			// (spec.md §4.7). Draining and discarding keeps the queue from
			// filling up against a dead peer; enqueue itself never blocks.
			go drainForever(c.outbound)
			return
		}
	}
}

func drainForever(ch chan irc.Message) {
	for range ch {
	}
}

// readLoop is the per-connection reader task (spec.md §4.4). It parses
// and dispatches each line until EOF or an I/O error, then tears the
// session down.
func (c *Client) readLoop() {
	go c.writerLoop()

	for {
		line, err := c.conn.ReadLine()
		if err != nil {
			log.Printf("client %d: connection closed: %s", c.id, err)
			break
		}

		msg, err := irc.ParseMessage(line + "\n")
		if err != nil {
			log.Printf("client %d: parse error: %s", c.id, err)
			continue
		}

		if c.handle(Parse(msg)) {
			break
		}
	}

	c.teardown()
}

// handle routes a parsed command to the registration state machine or the
// registered-user dispatcher, depending on current state. It returns true
// when the connection should be torn down immediately, which is the case
// only for an explicit QUIT (spec.md §4.4: "A QUIT command causes an
// explicit graceful teardown after its broadcast and ERROR reply").
func (c *Client) handle(cmd Command) bool {
	if c.user != nil {
		c.user.touchActivity()
		if q, ok := cmd.(Quit); ok {
			c.server.cmdQuit(c.user, q)
			return true
		}
		c.server.dispatch(c.user, cmd)
		return false
	}
	c.server.handlePending(c, cmd)
	return false
}

// promote installs u as this connection's registered identity.
func (c *Client) promote(u *User) {
	c.user = u
}

// teardown runs connection cleanup: if the session never registered, its
// pending nickname reservation is dropped; if it did, RemoveUser handles
// channel membership and the nickname map (spec.md §4.4, §3 Lifecycle).
// Per spec.md §9's Open Question resolution, an abrupt TCP close is never
// translated into a synthetic QUIT broadcast.
func (c *Client) teardown() {
	if c.user != nil {
		c.server.registry.RemoveUser(c.user)
	} else {
		c.server.registry.RemoveUnregisteredNick(c.preRegNick)
	}
	c.outboundMu.Lock()
	c.outboundClosed = true
	close(c.outbound)
	c.outboundMu.Unlock()

	<-c.writerDone
	_ = c.conn.Close()
}
