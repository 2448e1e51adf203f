package main

import (
	"fmt"
	"sync"
	"time"

	"github.com/horgh/irc"
)

// User is a registered, authenticated connection. It is created by
// Registry.RegisterUser once a Client completes the NICK+USER handshake.
// Every mutable field is guarded by mu; Client carries the connection's
// I/O and outbound queue, grounded in the teacher's split between
// LocalClient (connection) and LocalUser (registered identity) in
// local_client.go/local_user.go, collapsed here into Client/User since
// this spec has no server-link path requiring the extra layer.
type User struct {
	mu sync.RWMutex

	nickname string
	username string // includes the literal "~" prefix
	realname string
	hostname string
	modes    map[byte]struct{}
	channels map[string]*Channel // keyed by channel name, case-sensitive

	registeredAt  time.Time
	lastMessageAt time.Time

	client *Client
}

func newUser(client *Client, nickname, username, realname, hostname string) *User {
	return &User{
		nickname:      nickname,
		username:      username,
		realname:      realname,
		hostname:      hostname,
		modes:         make(map[byte]struct{}),
		channels:      make(map[string]*Channel),
		registeredAt:  time.Now(),
		lastMessageAt: time.Now(),
		client:        client,
	}
}

// Nickname returns the user's current nickname.
func (u *User) Nickname() string {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.nickname
}

func (u *User) setNickname(n string) {
	u.mu.Lock()
	u.nickname = n
	u.mu.Unlock()
}

// Username, Hostname, and RealName are frozen at registration (spec.md
// §3), so they need no lock.
func (u *User) Username() string { return u.username }
func (u *User) Hostname() string { return u.hostname }
func (u *User) RealName() string { return u.realname }

// FQN builds nickname!username@hostname, the source token this user is
// identified by on every message it originates. Invariant 5 requires all
// three fields be non-empty, which holds from registration onward.
func (u *User) FQN() string {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return fmt.Sprintf("%s!%s@%s", u.nickname, u.username, u.hostname)
}

func (u *User) touchActivity() {
	u.mu.Lock()
	u.lastMessageAt = time.Now()
	u.mu.Unlock()
}

func (u *User) idleSeconds() int64 {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return int64(time.Since(u.lastMessageAt).Seconds())
}

// Send enqueues a message to the user's own outbound queue. Non-blocking:
// if the queue is full the message is dropped silently, matching
// local_client.go's maybeQueueMessage "send or drop" pattern required by
// spec.md §4.7.
func (u *User) Send(m irc.Message) {
	u.client.enqueue(m)
}

// Reply builds "prefix numeric nick params..." and sends it to this user.
// params are passed through to irc.Message.Params untouched: the last one
// may contain spaces and will be colon-prefixed automatically by
// irc.Message.Encode, so callers must never prepend ":" themselves.
func (u *User) Reply(serverName, numeric string, params ...string) {
	all := make([]string, 0, len(params)+1)
	all = append(all, u.Nickname())
	all = append(all, params...)
	u.Send(irc.Message{Prefix: serverName, Command: numeric, Params: all})
}

// AddMode adds a user-mode flag, returning whether it changed membership.
func (u *User) AddMode(c byte) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	if _, ok := u.modes[c]; ok {
		return false
	}
	u.modes[c] = struct{}{}
	return true
}

// RemoveMode removes a user-mode flag, returning whether it changed
// membership.
func (u *User) RemoveMode(c byte) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	if _, ok := u.modes[c]; !ok {
		return false
	}
	delete(u.modes, c)
	return true
}

func (u *User) hasMode(c byte) bool {
	u.mu.RLock()
	defer u.mu.RUnlock()
	_, ok := u.modes[c]
	return ok
}

// modeString renders the current mode set as "+xyz", sorted for
// determinism in tests.
func (u *User) modeString() string {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return renderModes(u.modes)
}

func renderModes(modes map[byte]struct{}) string {
	s := "+"
	// usermodes/channelmodes are each a handful of flags; iterate the known
	// alphabet for deterministic ordering instead of ranging the map.
	for c := byte('a'); c <= 'z'; c++ {
		if _, ok := modes[c]; ok {
			s += string(c)
		}
	}
	return s
}

// onChannel reports membership without taking the channel's own lock
// (channel name equality is the fast, authoritative check per user-side
// state — symmetric with Channel.hasMember).
func (u *User) onChannel(name string) bool {
	u.mu.RLock()
	defer u.mu.RUnlock()
	_, ok := u.channels[name]
	return ok
}

func (u *User) addChannel(c *Channel) {
	u.mu.Lock()
	u.channels[c.name] = c
	u.mu.Unlock()
}

func (u *User) removeChannel(name string) {
	u.mu.Lock()
	delete(u.channels, name)
	u.mu.Unlock()
}

// channelSnapshot returns the channels this user currently occupies. The
// caller must not hold u.mu; this takes it itself and releases before
// returning, per the snapshot-then-send discipline spec.md §4.2/§5
// require (never iterate live state while holding a lock across a send).
func (u *User) channelSnapshot() []*Channel {
	u.mu.RLock()
	defer u.mu.RUnlock()
	out := make([]*Channel, 0, len(u.channels))
	for _, c := range u.channels {
		out = append(out, c)
	}
	return out
}

// Broadcast sends msg to the union of members across every channel this
// user occupies, deduplicated by nickname, optionally including the user
// itself. Grounded in local_user.go's nickCommand/quit, which both build
// an "informedClients"/"toldClients" dedup set before sending so a user
// in several shared channels is told only once.
func (u *User) Broadcast(m irc.Message, includeSelf bool) {
	seen := make(map[string]struct{})
	nick := u.Nickname()
	if includeSelf {
		seen[nick] = struct{}{}
		u.Send(m)
	} else {
		seen[nick] = struct{}{}
	}
	for _, c := range u.channelSnapshot() {
		for _, member := range c.MemberSnapshot() {
			mn := member.Nickname()
			if _, ok := seen[mn]; ok {
				continue
			}
			seen[mn] = struct{}{}
			member.Send(m)
		}
	}
}
