package main

import (
	"testing"

	"github.com/horgh/irc"
)

// newTestUser builds a User with a real but otherwise empty Client, so
// Send/Reply can be exercised without a live connection.
func newTestUser(nick string) *User {
	client := &Client{outbound: make(chan irc.Message, outboundQueueCap)}
	return newUser(client, nick, "~"+nick, nick+" Example", "example.org")
}

func TestUserFQN(t *testing.T) {
	u := newTestUser("alice")
	want := "alice!~alice@example.org"
	if got := u.FQN(); got != want {
		t.Errorf("FQN() = %q, want %q", got, want)
	}
}

func TestUserReplyPrependsNickname(t *testing.T) {
	u := newTestUser("alice")
	u.Reply("irc.example.org", ReplyNoTopic, "#test", "No topic is set")

	msg := <-u.client.outbound
	want := []string{"alice", "#test", "No topic is set"}
	if len(msg.Params) != len(want) {
		t.Fatalf("Params = %v, want %v", msg.Params, want)
	}
	for i := range want {
		if msg.Params[i] != want[i] {
			t.Errorf("Params[%d] = %q, want %q", i, msg.Params[i], want[i])
		}
	}
}

func TestUserAddRemoveMode(t *testing.T) {
	u := newTestUser("alice")

	if !u.AddMode('i') {
		t.Fatalf("AddMode('i') = false, want true on first add")
	}
	if u.AddMode('i') {
		t.Errorf("AddMode('i') = true, want false when already set")
	}
	if got := u.modeString(); got != "+i" {
		t.Errorf("modeString() = %q, want %q", got, "+i")
	}

	if !u.RemoveMode('i') {
		t.Fatalf("RemoveMode('i') = false, want true")
	}
	if u.RemoveMode('i') {
		t.Errorf("RemoveMode('i') = true, want false when already unset")
	}
	if got := u.modeString(); got != "+" {
		t.Errorf("modeString() after remove = %q, want %q", got, "+")
	}
}

func TestUserSendDropsOnFullQueue(t *testing.T) {
	client := &Client{outbound: make(chan irc.Message, 1)}
	u := newUser(client, "alice", "~alice", "Alice", "example.org")

	u.Send(irc.Message{Command: "PING"})
	u.Send(irc.Message{Command: "PING"}) // queue is full; must not block

	if len(client.outbound) != 1 {
		t.Errorf("outbound length = %d, want 1 (second send should be dropped)", len(client.outbound))
	}
}

func TestUserBroadcastDedupesAcrossSharedChannels(t *testing.T) {
	r := newRegistry()
	alice := registerTestUser(r, "alice")
	bob := registerTestUser(r, "bob")

	r.JoinChannel(alice, "#a")
	r.JoinChannel(alice, "#b")
	r.JoinChannel(bob, "#a")
	r.JoinChannel(bob, "#b")

	alice.Broadcast(irc.Message{Command: "NICK", Params: []string{"alice2"}}, false)

	if len(bob.client.outbound) != 1 {
		t.Errorf("bob received %d messages, want exactly 1 (deduped)", len(bob.client.outbound))
	}
	if len(alice.client.outbound) != 0 {
		t.Errorf("alice (excludeSelf) received %d messages, want 0", len(alice.client.outbound))
	}
}

// registerTestUser registers a user directly against a Registry for tests
// that need real registry-tracked users.
func registerTestUser(r *Registry, nick string) *User {
	client := &Client{outbound: make(chan irc.Message, outboundQueueCap)}
	return r.RegisterUser(client, nick, "~"+nick, nick+" Example", "example.org")
}
