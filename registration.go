package main

import (
	"fmt"
	"time"

	"github.com/horgh/irc"
)

// handlePending implements the Pending row of the registration state
// table in spec.md §4.5. It runs entirely on the connection's own reader
// goroutine, so it can freely read/write c's pending-registration fields
// without locking.
func (s *Server) handlePending(c *Client, cmd Command) {
	switch v := cmd.(type) {
	case Nick:
		if !s.registry.TryUpdateUnregisteredNick(c.preRegNick, v.Nickname) {
			s.replyPending(c, ErrNicknameInUse, v.Nickname, "Nickname is already in use")
		} else {
			c.preRegNick = v.Nickname
		}

	case UserCmd:
		c.preRegUser = "~" + truncate(v.Username, userlen-1)
		c.preRegRealName = v.RealName

	case Invalid:
		if (v.Name == "NICK" || v.Name == "USER") && v.Numeric != "" {
			s.replyPending(c, v.Numeric, v.Params...)
		}

	default:
		// Ignore everything else while pending, per spec.md §4.5.
	}

	if c.preRegNick != "" && c.preRegUser != "" {
		s.completeRegistration(c)
	}
}

// replyPending sends a numeric to a connection that has no nickname (or
// an unconfirmed one) yet, using "*" as the target per RFC convention for
// pre-registration numerics (mirrored from local_client.go's
// messageFromServer, which prepends "*" when there is no nick yet).
func (s *Server) replyPending(c *Client, numeric string, params ...string) {
	nick := c.preRegNick
	if nick == "" {
		nick = "*"
	}
	all := make([]string, 0, len(params)+1)
	all = append(all, nick)
	all = append(all, params...)
	c.enqueue(irc.Message{
		Prefix:  s.config.ServerName,
		Command: numeric,
		Params:  all,
	})
}

// completeRegistration promotes a pending connection to a registered
// User and sends the welcome burst, per spec.md §4.5.
func (s *Server) completeRegistration(c *Client) {
	u := s.registry.RegisterUser(c, c.preRegNick, c.preRegUser, c.preRegRealName, c.hostname)
	c.promote(u)

	fqn := u.FQN()
	u.Reply(s.config.ServerName, ReplyWelcome,
		fmt.Sprintf("Welcome to the Internet Relay Network %s", fqn))
	u.Reply(s.config.ServerName, ReplyYourHost,
		fmt.Sprintf("Your host is %s, running version %s", s.config.ServerName, s.config.Version))
	u.Reply(s.config.ServerName, ReplyCreated,
		fmt.Sprintf("This server was created %s", s.createdDate()))
	u.Send(irc.Message{
		Prefix:  s.config.ServerName,
		Command: ReplyMyInfo,
		Params: []string{
			u.Nickname(), s.config.ServerName, s.config.Version, usermodes, channelmodes, channelmodesWithParms,
		},
	})
	u.Send(irc.Message{
		Prefix:  s.config.ServerName,
		Command: ReplyISupport,
		Params: []string{
			u.Nickname(),
			"CHANMODES=,,,s",
			"CHANTYPES=#&",
			"NETWORK=" + s.config.Network,
			fmt.Sprintf("NICKLEN=%d", nicklen),
			fmt.Sprintf("TOPICLEN=%d", topiclen),
			fmt.Sprintf("USERLEN=%d", userlen),
			"are supported by this server",
		},
	})

	s.dispatch(u, Motd{})
}

func (s *Server) createdDate() string {
	if s.config.CreatedDate != "" {
		return s.config.CreatedDate
	}
	return s.startTime.Format(time.RFC1123)
}
