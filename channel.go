package main

import (
	"fmt"
	"sync"
	"time"

	"github.com/horgh/irc"
)

// Channel is a named chat room. Invariant 4 (no zero-member channel stays
// in the registry) is enforced by Registry.PartChannel/RemoveUser, not by
// Channel itself — Channel just tracks its own members and topic.
type Channel struct {
	mu sync.RWMutex

	name         string
	creationTime string
	members      map[string]*User // keyed by nickname

	hasTopic    bool
	topic       string
	topicSetter string
	topicSetAt  int64

	modes map[byte]struct{}
}

func newChannel(name string) *Channel {
	return &Channel{
		name:         name,
		creationTime: fmt.Sprintf("%d", time.Now().Unix()),
		members:      make(map[string]*User),
		modes:        make(map[byte]struct{}),
	}
}

// Name returns the channel's name.
func (c *Channel) Name() string {
	return c.name
}

func (c *Channel) hasMember(nick string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.members[nick]
	return ok
}

func (c *Channel) memberCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.members)
}

// MemberSnapshot returns the channel's current member set. Callers must
// not hold c.mu while iterating; this is the "stable snapshot" membership
// accessor spec.md §4.2 requires.
func (c *Channel) MemberSnapshot() []*User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*User, 0, len(c.members))
	for _, u := range c.members {
		out = append(out, u)
	}
	return out
}

func (c *Channel) addMember(u *User) {
	c.mu.Lock()
	c.members[u.Nickname()] = u
	c.mu.Unlock()
}

func (c *Channel) removeMember(nick string) {
	c.mu.Lock()
	delete(c.members, nick)
	c.mu.Unlock()
}

func (c *Channel) renameMember(old, new string, u *User) {
	c.mu.Lock()
	delete(c.members, old)
	c.members[new] = u
	c.mu.Unlock()
}

// Topic returns the current topic and whether one has been set.
func (c *Channel) Topic() (text, setter string, at int64, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.topic, c.topicSetter, c.topicSetAt, c.hasTopic
}

// SetTopic sets the topic, recording the setter's FQN and the current
// time, per spec.md §4.6 TOPIC.
func (c *Channel) SetTopic(text, setterFQN string) {
	c.mu.Lock()
	c.topic = truncate(text, topiclen)
	c.topicSetter = setterFQN
	c.topicSetAt = time.Now().Unix()
	c.hasTopic = true
	c.mu.Unlock()
}

// Broadcast fans msg out to every current member.
func (c *Channel) Broadcast(m irc.Message) {
	for _, u := range c.MemberSnapshot() {
		u.Send(m)
	}
}

func (c *Channel) hasModeLocked(m byte) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.modes[m]
	return ok
}

// SetModeTypeD toggles a parameterless (type-D) channel mode flag,
// returning whether it actually changed. "s" (secret) is the only
// channel mode this server implements, per CHANNELMODES in spec.md §6.
func (c *Channel) SetModeTypeD(m byte, enable bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, has := c.modes[m]
	if enable == has {
		return false
	}
	if enable {
		c.modes[m] = struct{}{}
	} else {
		delete(c.modes, m)
	}
	return true
}

func (c *Channel) modeString() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return renderModes(c.modes)
}

func (c *Channel) isSecret() bool {
	return c.hasModeLocked('s')
}

func (c *Channel) creationTimeStr() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.creationTime
}
