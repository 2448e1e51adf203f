package main

import (
	"strings"

	"github.com/horgh/irc"
)

// cmdMode implements MODE for both user and channel targets, per spec.md
// §4.6 MODE. There is no single teacher equivalent (catbox's MODE
// handling is TS6-burst-oriented); the toggle-and-report shape below
// follows the spec's modestring scan directly.
func (s *Server) cmdMode(u *User, m Mode) {
	if isValidChannel(m.Target) {
		s.modeChannel(u, m)
		return
	}
	s.modeUser(u, m)
}

func (s *Server) modeUser(u *User, m Mode) {
	if m.Target != u.Nickname() {
		u.Reply(s.config.ServerName, ErrUsersDontMatch, "Cannot change mode for other users")
		return
	}

	if m.ModeString == "" {
		u.Reply(s.config.ServerName, ReplyUModeIs, u.modeString())
		return
	}

	sign := byte('+')
	for i := 0; i < len(m.ModeString); i++ {
		c := m.ModeString[i]
		if c == '+' || c == '-' {
			sign = c
			continue
		}
		if !strings.ContainsRune(usermodes, rune(c)) {
			u.Reply(s.config.ServerName, ErrUModeUnknownFlag, "Unknown MODE flag")
			return
		}
	}

	var rep strings.Builder
	repSign := byte(0)
	sign = '+'

	for i := 0; i < len(m.ModeString); i++ {
		c := m.ModeString[i]
		if c == '+' || c == '-' {
			sign = c
			continue
		}

		var changed bool
		if sign == '+' {
			changed = u.AddMode(c)
		} else {
			changed = u.RemoveMode(c)
		}
		if !changed {
			continue
		}
		if repSign != sign {
			rep.WriteByte(sign)
			repSign = sign
		}
		rep.WriteByte(c)
	}

	if rep.Len() == 0 {
		return
	}
	u.Send(irc.Message{
		Prefix:  u.FQN(),
		Command: "MODE",
		Params:  []string{u.Nickname(), rep.String()},
	})
}

func (s *Server) modeChannel(u *User, m Mode) {
	c, ok := s.registry.GetChannel(m.Target)
	if !ok {
		u.Reply(s.config.ServerName, ErrNoSuchChannel, m.Target, "No such channel")
		return
	}
	if !c.hasMember(u.Nickname()) {
		u.Reply(s.config.ServerName, ErrChanOPrivsNeeded, m.Target, "You're not a channel operator")
		return
	}

	if m.ModeString == "" {
		u.Reply(s.config.ServerName, ReplyChannelModeIs, c.Name(), c.modeString())
		u.Reply(s.config.ServerName, ReplyCreationTime, c.Name(), c.creationTimeStr())
		return
	}

	sign := byte('+')
	for i := 0; i < len(m.ModeString); i++ {
		ch := m.ModeString[i]
		if ch == '+' || ch == '-' {
			sign = ch
			continue
		}
		if !strings.ContainsRune(channelmodes, rune(ch)) {
			u.Reply(s.config.ServerName, ErrUnknownMode, string(ch), "is unknown mode char to me")
			return
		}
	}

	var rep strings.Builder
	repSign := byte(0)
	sign = '+'
	for i := 0; i < len(m.ModeString); i++ {
		ch := m.ModeString[i]
		if ch == '+' || ch == '-' {
			sign = ch
			continue
		}
		if !c.SetModeTypeD(ch, sign == '+') {
			continue
		}
		if repSign != sign {
			rep.WriteByte(sign)
			repSign = sign
		}
		rep.WriteByte(ch)
	}

	if rep.Len() == 0 {
		return
	}
	c.Broadcast(irc.Message{
		Prefix:  u.FQN(),
		Command: "MODE",
		Params:  []string{c.Name(), rep.String()},
	})
}
