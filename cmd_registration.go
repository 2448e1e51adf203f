package main

import "github.com/horgh/irc"

// cmdPing answers a PING with a PONG carrying the same token, per spec.md
// §4.6. Grounded in ircd.go's pingCommand.
func (s *Server) cmdPing(u *User, p Ping) {
	u.Send(irc.Message{
		Prefix:  s.config.ServerName,
		Command: "PONG",
		Params:  []string{s.config.ServerName, p.Token},
	})
}

// cmdQuit broadcasts the quit to channel-mates and sends the ERROR close
// notice. The caller (Client.handle) tears the session down immediately
// afterward. Grounded in ircd.go's quitCommand and local_user.go's quit,
// adapted to this server's channel-mate-scoped broadcast (spec.md §4.6
// QUIT).
func (s *Server) cmdQuit(u *User, q Quit) {
	reason := q.Reason
	if reason == "" {
		reason = "Quit"
	}
	fqn := u.FQN()
	u.Broadcast(irc.Message{
		Prefix:  fqn,
		Command: "QUIT",
		Params:  []string{reason},
	}, false)

	u.Send(irc.Message{
		Prefix:  s.config.ServerName,
		Command: "ERROR",
		Params:  []string{"Closing Link: " + fqn + " (Client Quit)"},
	})
}

// cmdNick renames a registered user, broadcasting the change to every
// channel-mate (deduplicated, including self) on success, or replying
// ERR_NICKNAMEINUSE on failure. Grounded in ircd.go's nickCommand.
func (s *Server) cmdNick(u *User, n Nick) {
	old := u.FQN()
	if !s.registry.TryUpdateNick(u, n.Nickname) {
		u.Reply(s.config.ServerName, ErrNicknameInUse, n.Nickname, "Nickname is already in use")
		return
	}

	u.Broadcast(irc.Message{
		Prefix:  old,
		Command: "NICK",
		Params:  []string{n.Nickname},
	}, true)
}
