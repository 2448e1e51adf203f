package main

import (
	"bufio"
	"log"
	"net"
	"strings"

	"github.com/horgh/irc"
	"github.com/pkg/errors"
)

// Conn wraps a net.Conn with a buffered line reader/writer, grounded in
// the teacher's net.go Conn. Unlike the teacher, it has no per-operation
// I/O deadline: spec.md §5 explicitly rules out inactivity timeouts and
// server-side PINGs in this core, so the deadline/ioWait machinery
// net.go carries has nothing to ground it in this spec and is dropped
// (see DESIGN.md).
type Conn struct {
	conn net.Conn
	r    *bufio.Reader
	w    *bufio.Writer
	IP   net.IP
}

// NewConn wraps conn for line-oriented IRC I/O.
func NewConn(conn net.Conn) Conn {
	host, _, err := net.SplitHostPort(conn.RemoteAddr().String())
	var ip net.IP
	if err == nil {
		ip = net.ParseIP(host)
	}
	return Conn{
		conn: conn,
		r:    bufio.NewReader(conn),
		w:    bufio.NewWriter(conn),
		IP:   ip,
	}
}

// Close closes the underlying connection.
func (c Conn) Close() error {
	return c.conn.Close()
}

// RemoteAddr returns the remote network address.
func (c Conn) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

// ReadLine reads one protocol line terminated by LF or CRLF, and silently
// skips lines that turn out empty (a blank line, or a terminator pair with
// nothing between). A bare CR does not end a line: only the text before
// the first CR of an LF-terminated line is returned and the rest of that
// line is discarded (at connection close, text read before a CR is still
// returned). It returns io.EOF (wrapped) on connection close.
func (c Conn) ReadLine() (string, error) {
	for {
		line, err := c.r.ReadString('\n')
		if err != nil {
			// A bare-CR-terminated line with no trailing LF will come back as an
			// error from ReadString('\n') once the peer closes; try to salvage any
			// CR-terminated content already read.
			if line != "" {
				if idx := strings.IndexByte(line, '\r'); idx != -1 {
					trimmed := line[:idx]
					if trimmed != "" {
						return trimmed, nil
					}
				}
			}
			return "", errors.Wrap(err, "read")
		}

		line = strings.TrimRight(line, "\r\n")
		// A bare-CR-terminated segment may still have more after it if the
		// peer packed multiple CR-only lines before an LF; split eagerly.
		if idx := strings.IndexByte(line, '\r'); idx != -1 {
			// Push the remainder back is not supported by bufio.Reader directly;
			// in practice well-formed clients never do this, so we just use the
			// first segment and drop the rest of this particular read.
			line = line[:idx]
		}

		if line == "" {
			continue
		}

		if logWire {
			log.Printf("read: %s", line)
		}

		return line, nil
	}
}

// WriteMessage encodes and writes a single IRC message, terminated with
// CRLF per spec.md §6 ("server sends \r\n terminators").
func (c Conn) WriteMessage(m irc.Message) error {
	buf, err := m.Encode()
	if err != nil && err != irc.ErrTruncated {
		return errors.Wrap(err, "encode message")
	}

	if _, err := c.w.WriteString(buf); err != nil {
		return errors.Wrap(err, "write")
	}
	if err := c.w.Flush(); err != nil {
		return errors.Wrap(err, "flush")
	}

	if logWire {
		log.Printf("sent: %s", strings.TrimRight(buf, "\r\n"))
	}

	return nil
}

// HostnameResolver resolves a connection's hostname for display in its
// FQN. The default implementation does a DNS reverse lookup and falls
// back to the dotted IP on failure (spec.md §4.4/§4.7); tests can inject
// a deterministic stub, grounded in net.go's own isolation of `net` calls
// behind a small wrapper type.
type HostnameResolver interface {
	Resolve(ip net.IP) string
}

// dnsResolver is the default HostnameResolver.
type dnsResolver struct{}

func (dnsResolver) Resolve(ip net.IP) string {
	if ip == nil {
		return "unknown"
	}
	names, err := net.LookupAddr(ip.String())
	if err != nil || len(names) == 0 {
		return ip.String()
	}
	return strings.TrimSuffix(names[0], ".")
}

// logWire gates the teacher's per-line log.Printf diagnostics (net.go logs
// every Read/Sent) so tests can keep output quiet.
var logWire = false
