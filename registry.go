package main

import (
	"sync"

	"github.com/horgh/irc"
)

// Registry is the single process-wide map of nicknames to Users and names
// to Channels, guarded by one coarse lock. Its method set and semantics
// are grounded directly in original_source/server/src/server_state.rs's
// ServerState (contains_nick, try_update_nick, try_update_unregistered_nick,
// register_user, remove_user, create_channel, broadcast all have a
// same-behaved counterpart here, e.g. nickTaken, JoinChannel) — that Rust
// struct is what spec.md §4.3 was itself distilled from.
//
// Locking: inside the methods below, mu is taken before any User or
// Channel lock, and Broadcast releases mu before enqueueing. Command
// handlers do not hold mu themselves: they call these self-locking methods
// and the per-entity accessors (User.Nickname, Channel.hasMember, ...)
// one at a time. Every mutating method below takes mu internally
// rather than exposing Lock/Unlock, which is this module's resolution of
// the "locking token" open question: callers cannot forget to take the
// registry lock because there is no way to call these methods without it.
type Registry struct {
	mu sync.Mutex

	users        map[string]*User
	channels     map[string]*Channel
	pendingNicks map[string]struct{}
}

func newRegistry() *Registry {
	return &Registry{
		users:        make(map[string]*User),
		channels:     make(map[string]*Channel),
		pendingNicks: make(map[string]struct{}),
	}
}

func (r *Registry) nickTaken(nick string) bool {
	if _, ok := r.users[nick]; ok {
		return true
	}
	_, ok := r.pendingNicks[nick]
	return ok
}

// TryUpdateUnregisteredNick reserves newNick for a not-yet-registered
// connection, freeing old (which may be empty, for the first NICK).
// Fails if newNick is already taken by a registered or pending user.
func (r *Registry) TryUpdateUnregisteredNick(old, newNick string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.nickTaken(newNick) {
		return false
	}
	if old != "" {
		delete(r.pendingNicks, old)
	}
	r.pendingNicks[newNick] = struct{}{}
	return true
}

// RemoveUnregisteredNick clears a pending nickname reservation, e.g. on
// teardown of a connection that never completed registration.
func (r *Registry) RemoveUnregisteredNick(nick string) {
	if nick == "" {
		return
	}
	r.mu.Lock()
	delete(r.pendingNicks, nick)
	r.mu.Unlock()
}

// RegisterUser promotes a pending nickname to a registered User. The
// caller must have already reserved nickname via
// TryUpdateUnregisteredNick.
func (r *Registry) RegisterUser(client *Client, nickname, username, realname, hostname string) *User {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.pendingNicks, nickname)
	u := newUser(client, nickname, username, realname, hostname)
	r.users[nickname] = u
	return u
}

// TryUpdateNick renames a registered user, failing if the new nickname is
// taken. Atomic with respect to other registry mutations.
func (r *Registry) TryUpdateNick(user *User, newNick string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.nickTaken(newNick) {
		return false
	}
	old := user.Nickname()
	delete(r.users, old)
	user.setNickname(newNick)
	r.users[newNick] = user
	for _, c := range user.channelSnapshot() {
		c.renameMember(old, newNick, user)
	}
	return true
}

// RemoveUser removes user from every channel it is in (dropping channels
// that become empty) and then from the nickname map. Invariant 4 (no
// zero-member channels) is enforced here and in PartChannel.
func (r *Registry) RemoveUser(user *User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range user.channelSnapshot() {
		c.removeMember(user.Nickname())
		user.removeChannel(c.name)
		if c.memberCount() == 0 {
			delete(r.channels, c.name)
		}
	}
	delete(r.users, user.Nickname())
}

// GetUser looks up a registered user by exact, case-sensitive nickname.
func (r *Registry) GetUser(nick string) (*User, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[nick]
	return u, ok
}

// GetChannel looks up a channel by exact, case-sensitive name.
func (r *Registry) GetChannel(name string) (*Channel, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.channels[name]
	return c, ok
}

// Channels returns a snapshot of every channel currently in the registry.
func (r *Registry) Channels() []*Channel {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Channel, 0, len(r.channels))
	for _, c := range r.channels {
		out = append(out, c)
	}
	return out
}

// UserCount returns the number of registered users.
func (r *Registry) UserCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

// PendingCount returns the number of reserved-but-unregistered nicknames.
func (r *Registry) PendingCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pendingNicks)
}

// ChannelCount returns the number of channels currently in the registry.
func (r *Registry) ChannelCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.channels)
}

// JoinChannel adds user to the channel named name, creating it first if
// it does not exist. Returns the channel and whether it was created by
// this call.
func (r *Registry) JoinChannel(user *User, name string) (*Channel, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.channels[name]
	created := false
	if !ok {
		c = newChannel(name)
		r.channels[name] = c
		created = true
	}
	c.addMember(user)
	user.addChannel(c)
	return c, created
}

// PartChannel removes user from channel, dropping the channel from the
// registry if it becomes empty (invariant 4). Returns whether the
// channel was removed.
func (r *Registry) PartChannel(user *User, c *Channel) (channelRemoved bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.removeMember(user.Nickname())
	user.removeChannel(c.name)
	if c.memberCount() == 0 {
		delete(r.channels, c.name)
		return true
	}
	return false
}

// Broadcast enqueues msg to every registered user's outbound queue.
func (r *Registry) Broadcast(m irc.Message) {
	r.mu.Lock()
	users := make([]*User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	r.mu.Unlock()
	for _, u := range users {
		u.Send(m)
	}
}
