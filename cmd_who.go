package main

import "github.com/horgh/irc"

// cmdWho implements WHO: a channel mask lists that channel's members, any
// other mask is matched against a single nickname. Grounded in spec.md
// §4.6 WHO; there is no teacher equivalent (catbox never implemented WHO
// outside TS6 server bursts), so the single RPL_WHOREPLY shape below
// follows the numeric's RFC 2812 field order directly.
func (s *Server) cmdWho(u *User, w Who) {
	var matches []*User

	if len(w.Mask) > 0 && w.Mask[0] == '#' {
		if c, ok := s.registry.GetChannel(w.Mask); ok {
			matches = c.MemberSnapshot()
		}
	} else if m, ok := s.registry.GetUser(w.Mask); ok {
		matches = []*User{m}
	}

	for _, m := range matches {
		u.Reply(s.config.ServerName, ReplyWhoReply,
			w.Mask, m.Username(), m.Hostname(), s.config.ServerName, m.Nickname(),
			"H", "0 "+m.RealName())
	}
	u.Reply(s.config.ServerName, ReplyEndOfWho, w.Mask, "End of /WHO list")
}

// cmdWhois implements WHOIS for a single nickname: user info, server info,
// idle time, and the terminating numeric. Added per SPEC_FULL.md (the
// teacher's superset of commands; the Rust original has no WHOIS at all).
func (s *Server) cmdWhois(u *User, w Whois) {
	m, ok := s.registry.GetUser(w.Nick)
	if !ok {
		u.Reply(s.config.ServerName, ErrNoSuchNick, w.Nick, "No such nick/channel")
		u.Reply(s.config.ServerName, ReplyEndOfWhois, w.Nick, "End of /WHOIS list")
		return
	}

	u.Reply(s.config.ServerName, ReplyWhoisUser,
		m.Nickname(), m.Username(), m.Hostname(), "*", m.RealName())
	u.Reply(s.config.ServerName, ReplyWhoisServer,
		m.Nickname(), s.config.ServerName, s.config.Network)
	u.Reply(s.config.ServerName, ReplyWhoisIdle,
		m.Nickname(), itoa64(m.idleSeconds()), "seconds idle")
	u.Reply(s.config.ServerName, ReplyEndOfWhois, m.Nickname(), "End of /WHOIS list")
}

// cmdLusers implements LUSERS. Added per SPEC_FULL.md: RPL_LUSERUNKNOWN
// and RPL_LUSERCHANNELS are only sent when the corresponding count is
// nonzero.
func (s *Server) cmdLusers(u *User) {
	u.Reply(s.config.ServerName, ReplyLUserClient,
		"There are "+itoa(s.registry.UserCount())+" users and 0 invisible on 1 server")
	if n := s.registry.PendingCount(); n > 0 {
		u.Reply(s.config.ServerName, ReplyLUserUnknown, itoa(n), "unknown connection(s)")
	}
	if n := s.registry.ChannelCount(); n > 0 {
		u.Reply(s.config.ServerName, ReplyLUserChannels, itoa(n), "channels formed")
	}
	u.Reply(s.config.ServerName, ReplyLUserMe, "I have "+itoa(s.registry.UserCount())+" clients and 1 server")
}

// cmdPrivmsg implements PRIVMSG/NOTICE fan-out to channel and user
// targets, per spec.md §4.6.
func (s *Server) cmdPrivmsg(u *User, p Privmsg) {
	for _, target := range p.Targets {
		msg := irc.Message{Prefix: u.FQN(), Command: "PRIVMSG", Params: []string{target, p.Text}}
		if p.Notice {
			msg.Command = "NOTICE"
		}

		if isValidChannel(target) {
			if c, ok := s.registry.GetChannel(target); ok {
				for _, m := range c.MemberSnapshot() {
					if m.Nickname() != u.Nickname() {
						m.Send(msg)
					}
				}
				continue
			}
		} else if m, ok := s.registry.GetUser(target); ok {
			m.Send(msg)
			continue
		}

		if !p.Notice {
			u.Reply(s.config.ServerName, ErrNoSuchNick, target, "No such nick/channel")
		}
	}
}

// cmdMotd implements MOTD, including the "target names another server"
// rejection (this server is always the only server).
func (s *Server) cmdMotd(u *User, m Motd) {
	if m.Target != "" && m.Target != s.config.ServerName {
		u.Reply(s.config.ServerName, ErrNoSuchServer, m.Target, "No such server")
		return
	}

	if s.config.MOTD == "" {
		u.Reply(s.config.ServerName, ErrNoMotd, "MOTD File is missing")
		return
	}

	u.Reply(s.config.ServerName, ReplyMotdStart, "- "+s.config.ServerName+" Message of the day -")
	u.Reply(s.config.ServerName, ReplyMotd, "- "+s.config.MOTD)
	u.Reply(s.config.ServerName, ReplyEndOfMotd, "End of /MOTD command")
}
