package main

// dispatch routes a parsed command from a registered user to its handler.
// Grounded in ircd.go's handleMessage switch, generalized from the
// teacher's string-keyed dispatch to a type switch over the typed Command
// values Parse produces.
func (s *Server) dispatch(u *User, cmd Command) {
	switch v := cmd.(type) {
	case Ping:
		s.cmdPing(u, v)
	case Pong:
		// no-op, per spec.md §4.6.
	case Quit:
		// Intercepted in Client.handle before reaching here so the
		// connection can be torn down right after the ERROR reply.
	case Nick:
		s.cmdNick(u, v)
	case UserCmd:
		u.Reply(s.config.ServerName, ErrAlreadyRegistered, "Unauthorized command (already registered)")
	case Join:
		s.cmdJoin(u, v)
	case Part:
		s.cmdPart(u, v)
	case Topic:
		s.cmdTopic(u, v)
	case List:
		s.cmdList(u, v)
	case Who:
		s.cmdWho(u, v)
	case Whois:
		s.cmdWhois(u, v)
	case Lusers:
		s.cmdLusers(u)
	case Privmsg:
		s.cmdPrivmsg(u, v)
	case Mode:
		s.cmdMode(u, v)
	case Motd:
		s.cmdMotd(u, v)
	case Invalid:
		if v.Numeric != "" {
			u.Reply(s.config.ServerName, v.Numeric, v.Params...)
		}
	default:
		// Unreachable: Parse only ever returns the types handled above.
	}
}
