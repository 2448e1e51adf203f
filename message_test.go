package main

import (
	"testing"

	"github.com/horgh/irc"
)

func TestParseNick(t *testing.T) {
	cmd := Parse(irc.Message{Command: "NICK", Params: []string{"alice"}})
	n, ok := cmd.(Nick)
	if !ok {
		t.Fatalf("Parse(NICK) = %#v, want Nick", cmd)
	}
	if n.Nickname != "alice" {
		t.Errorf("Nickname = %q, want %q", n.Nickname, "alice")
	}
}

func TestParseNickMissing(t *testing.T) {
	cmd := Parse(irc.Message{Command: "NICK"})
	inv, ok := cmd.(Invalid)
	if !ok {
		t.Fatalf("Parse(NICK with no params) = %#v, want Invalid", cmd)
	}
	if inv.Numeric != ErrNoNicknameGiven {
		t.Errorf("Numeric = %s, want %s", inv.Numeric, ErrNoNicknameGiven)
	}
}

func TestParseNickInvalidChars(t *testing.T) {
	cmd := Parse(irc.Message{Command: "NICK", Params: []string{"9bad"}})
	inv, ok := cmd.(Invalid)
	if !ok {
		t.Fatalf("Parse(NICK 9bad) = %#v, want Invalid", cmd)
	}
	if inv.Numeric != ErrErroneusNickname {
		t.Errorf("Numeric = %s, want %s", inv.Numeric, ErrErroneusNickname)
	}
}

func TestParseUser(t *testing.T) {
	cmd := Parse(irc.Message{
		Command: "USER",
		Params:  []string{"alice", "0", "*", "Alice Example"},
	})
	u, ok := cmd.(UserCmd)
	if !ok {
		t.Fatalf("Parse(USER) = %#v, want UserCmd", cmd)
	}
	if u.Username != "alice" {
		t.Errorf("Username = %q, want %q", u.Username, "alice")
	}
	if u.RealName != "Alice Example" {
		t.Errorf("RealName = %q, want %q", u.RealName, "Alice Example")
	}
}

func TestParseUserNeedsMoreParams(t *testing.T) {
	cmd := Parse(irc.Message{Command: "USER", Params: []string{"alice"}})
	inv, ok := cmd.(Invalid)
	if !ok {
		t.Fatalf("Parse(USER with 1 param) = %#v, want Invalid", cmd)
	}
	if inv.Numeric != ErrNeedMoreParams {
		t.Errorf("Numeric = %s, want %s", inv.Numeric, ErrNeedMoreParams)
	}
}

func TestParseJoinPartAll(t *testing.T) {
	cmd := Parse(irc.Message{Command: "JOIN", Params: []string{"0"}})
	j, ok := cmd.(Join)
	if !ok {
		t.Fatalf("Parse(JOIN 0) = %#v, want Join", cmd)
	}
	if !j.PartAll {
		t.Errorf("PartAll = false, want true")
	}
}

func TestParseJoinMultiple(t *testing.T) {
	cmd := Parse(irc.Message{Command: "JOIN", Params: []string{"#a,#b"}})
	j, ok := cmd.(Join)
	if !ok {
		t.Fatalf("Parse(JOIN #a,#b) = %#v, want Join", cmd)
	}
	if len(j.Channels) != 2 || j.Channels[0] != "#a" || j.Channels[1] != "#b" {
		t.Errorf("Channels = %v, want [#a #b]", j.Channels)
	}
}

func TestParseModeSignScan(t *testing.T) {
	cmd := Parse(irc.Message{Command: "MODE", Params: []string{"#test", "+s-i+s"}})
	m, ok := cmd.(Mode)
	if !ok {
		t.Fatalf("Parse(MODE) = %#v, want Mode", cmd)
	}
	if m.ModeString != "+s-i+s" {
		t.Errorf("ModeString = %q, want %q", m.ModeString, "+s-i+s")
	}
}

func TestParsePrivmsgNoRecipient(t *testing.T) {
	cmd := Parse(irc.Message{Command: "PRIVMSG"})
	inv, ok := cmd.(Invalid)
	if !ok {
		t.Fatalf("Parse(PRIVMSG with no params) = %#v, want Invalid", cmd)
	}
	if inv.Numeric != ErrNoRecipient {
		t.Errorf("Numeric = %s, want %s", inv.Numeric, ErrNoRecipient)
	}
}

func TestParsePrivmsgNoText(t *testing.T) {
	cmd := Parse(irc.Message{Command: "PRIVMSG", Params: []string{"alice"}})
	inv, ok := cmd.(Invalid)
	if !ok {
		t.Fatalf("Parse(PRIVMSG with no text) = %#v, want Invalid", cmd)
	}
	if inv.Numeric != ErrNoTextToSend {
		t.Errorf("Numeric = %s, want %s", inv.Numeric, ErrNoTextToSend)
	}
}

func TestParseUnknownCommand(t *testing.T) {
	cmd := Parse(irc.Message{Command: "XYZZY"})
	inv, ok := cmd.(Invalid)
	if !ok {
		t.Fatalf("Parse(XYZZY) = %#v, want Invalid", cmd)
	}
	if inv.Numeric != ErrUnknownCommand {
		t.Errorf("Numeric = %s, want %s", inv.Numeric, ErrUnknownCommand)
	}
}

func TestParseQuitNoReason(t *testing.T) {
	cmd := Parse(irc.Message{Command: "QUIT"})
	q, ok := cmd.(Quit)
	if !ok {
		t.Fatalf("Parse(QUIT) = %#v, want Quit", cmd)
	}
	if q.Reason != "" {
		t.Errorf("Reason = %q, want empty", q.Reason)
	}
}
