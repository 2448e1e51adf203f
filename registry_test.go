package main

import "testing"

func TestRegistryNickReservationThenRegister(t *testing.T) {
	r := newRegistry()

	if !r.TryUpdateUnregisteredNick("", "alice") {
		t.Fatalf("TryUpdateUnregisteredNick failed for a free nick")
	}
	if r.TryUpdateUnregisteredNick("", "alice") {
		t.Fatalf("TryUpdateUnregisteredNick succeeded for a pending nick")
	}

	u := registerTestUser(r, "alice")
	if _, ok := r.GetUser("alice"); !ok {
		t.Fatalf("GetUser(alice) not found after RegisterUser")
	}
	if r.PendingCount() != 0 {
		t.Errorf("PendingCount() = %d, want 0 (RegisterUser clears the reservation)", r.PendingCount())
	}
	if u.Nickname() != "alice" {
		t.Errorf("Nickname() = %q, want %q", u.Nickname(), "alice")
	}
}

func TestRegistryTryUpdateNick(t *testing.T) {
	r := newRegistry()
	alice := registerTestUser(r, "alice")
	registerTestUser(r, "bob")

	if r.TryUpdateNick(alice, "bob") {
		t.Fatalf("TryUpdateNick succeeded renaming to a taken nick")
	}
	if !r.TryUpdateNick(alice, "alice2") {
		t.Fatalf("TryUpdateNick failed for a free nick")
	}
	if _, ok := r.GetUser("alice"); ok {
		t.Errorf("GetUser(alice) still found after rename")
	}
	if _, ok := r.GetUser("alice2"); !ok {
		t.Errorf("GetUser(alice2) not found after rename")
	}
}

func TestRegistryTryUpdateNickRenamesChannelMembership(t *testing.T) {
	r := newRegistry()
	alice := registerTestUser(r, "alice")
	c, _ := r.JoinChannel(alice, "#test")

	r.TryUpdateNick(alice, "alice2")

	if c.hasMember("alice") {
		t.Errorf("channel still has old nickname after rename")
	}
	if !c.hasMember("alice2") {
		t.Errorf("channel missing new nickname after rename")
	}
}

func TestRegistryJoinAndPartChannelRemovesWhenEmpty(t *testing.T) {
	r := newRegistry()
	alice := registerTestUser(r, "alice")

	c, created := r.JoinChannel(alice, "#test")
	if !created {
		t.Fatalf("JoinChannel created = false on first join")
	}
	if _, ok := r.GetChannel("#test"); !ok {
		t.Fatalf("GetChannel(#test) not found after join")
	}

	removed := r.PartChannel(alice, c)
	if !removed {
		t.Fatalf("PartChannel removed = false for the last member")
	}
	if _, ok := r.GetChannel("#test"); ok {
		t.Errorf("GetChannel(#test) still found after the last member parts")
	}
}

func TestRegistryRemoveUserLeavesAllChannels(t *testing.T) {
	r := newRegistry()
	alice := registerTestUser(r, "alice")
	bob := registerTestUser(r, "bob")
	r.JoinChannel(alice, "#a")
	r.JoinChannel(bob, "#a")
	r.JoinChannel(alice, "#b")

	r.RemoveUser(alice)

	if _, ok := r.GetUser("alice"); ok {
		t.Errorf("GetUser(alice) still found after RemoveUser")
	}
	if _, ok := r.GetChannel("#b"); ok {
		t.Errorf("GetChannel(#b) still found after its only member is removed")
	}
	c, ok := r.GetChannel("#a")
	if !ok {
		t.Fatalf("GetChannel(#a) missing; bob should still be a member")
	}
	if c.hasMember("alice") {
		t.Errorf("#a still lists alice as a member after RemoveUser")
	}
	if !c.hasMember("bob") {
		t.Errorf("#a no longer lists bob as a member")
	}
}

func TestRegistryCounts(t *testing.T) {
	r := newRegistry()
	registerTestUser(r, "alice")
	r.TryUpdateUnregisteredNick("", "pending1")

	if r.UserCount() != 1 {
		t.Errorf("UserCount() = %d, want 1", r.UserCount())
	}
	if r.PendingCount() != 1 {
		t.Errorf("PendingCount() = %d, want 1", r.PendingCount())
	}
}
