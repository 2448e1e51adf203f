package main

import (
	"bufio"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/horgh/irc"
	"github.com/stretchr/testify/require"
)

// testClient is a minimal IRC client for end-to-end tests, grounded in the
// teacher's internal/client_test.go Client: a connect-then-register helper
// plus blocking reader/writer methods, trimmed of the multi-goroutine
// channel plumbing since these tests drive one exchange at a time.
type testClient struct {
	conn net.Conn
	rw   *bufio.ReadWriter
	nick string
}

func dialTestClient(t *testing.T, addr, nick string) *testClient {
	t.Helper()
	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err, "dial %s", addr)

	c := &testClient{
		conn: conn,
		rw:   bufio.NewReadWriter(bufio.NewReader(conn), bufio.NewWriter(conn)),
		nick: nick,
	}

	c.send(irc.Message{Command: "NICK", Params: []string{nick}})
	c.send(irc.Message{Command: "USER", Params: []string{nick, "0", "*", nick + " Example"}})
	c.waitFor(t, func(m irc.Message) bool { return m.Command == ReplyWelcome })

	return c
}

func (c *testClient) send(m irc.Message) {
	buf, err := m.Encode()
	if err != nil && err != irc.ErrTruncated {
		panic(err)
	}
	_, _ = c.rw.WriteString(buf)
	_ = c.rw.Flush()
}

func (c *testClient) readOne(t *testing.T) irc.Message {
	t.Helper()
	_ = c.conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	line, err := c.rw.ReadString('\n')
	require.NoError(t, err, "%s: read", c.nick)
	m, err := irc.ParseMessage(line)
	if err != irc.ErrTruncated {
		require.NoError(t, err, "%s: parse %q", c.nick, strings.TrimSpace(line))
	}
	return m
}

// waitFor reads messages until one matches pred, failing the test if none
// arrives before the deadline.
func (c *testClient) waitFor(t *testing.T, pred func(irc.Message) bool) irc.Message {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		m := c.readOne(t)
		if pred(m) {
			return m
		}
	}
	t.Fatalf("%s: timed out waiting for a matching message", c.nick)
	return irc.Message{}
}

func (c *testClient) close() {
	_ = c.conn.Close()
}

// startTestServer binds to an OS-chosen loopback port and serves it in the
// background for the lifetime of the test.
func startTestServer(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err, "listen")

	s := NewServer(&Config{
		ServerName: "irc.test",
		Version:    "test",
		MOTD:       "welcome",
		Network:    "TestNet",
	})

	go func() { _ = s.Serve(ln) }()
	t.Cleanup(func() { _ = ln.Close() })

	return ln.Addr().String()
}
