package main

import (
	"sort"
	"strings"

	"github.com/horgh/irc"
)

// cmdJoin implements JOIN, including the "JOIN 0" part-all shorthand.
// Grounded in ircd.go's joinCommand; channel creation, membership, and the
// post-join RPL_TOPIC/RPL_NAMREPLY burst are all per spec.md §4.6 JOIN.
func (s *Server) cmdJoin(u *User, j Join) {
	if j.PartAll {
		for _, c := range u.channelSnapshot() {
			s.partOne(u, c, "")
		}
		return
	}

	for _, name := range j.Channels {
		if !isValidChannel(name) {
			u.Reply(s.config.ServerName, ErrNoSuchChannel, name, "No such channel")
			continue
		}

		c, _ := s.registry.JoinChannel(u, name)

		c.Broadcast(irc.Message{
			Prefix:  u.FQN(),
			Command: "JOIN",
			Params:  []string{name},
		})

		s.sendTopic(u, c)
		s.sendNames(u, c)
	}
}

// cmdPart implements PART for each named channel.
func (s *Server) cmdPart(u *User, p Part) {
	for _, name := range p.Channels {
		c, ok := s.registry.GetChannel(name)
		if !ok {
			u.Reply(s.config.ServerName, ErrNoSuchChannel, name, "No such channel")
			continue
		}
		if !c.hasMember(u.Nickname()) {
			u.Reply(s.config.ServerName, ErrNotOnChannel, name, "You're not on that channel")
			continue
		}
		s.partOne(u, c, p.Reason)
	}
}

func (s *Server) partOne(u *User, c *Channel, reason string) {
	params := []string{c.Name()}
	if reason != "" {
		params = append(params, reason)
	}
	c.Broadcast(irc.Message{
		Prefix:  u.FQN(),
		Command: "PART",
		Params:  params,
	})
	s.registry.PartChannel(u, c)
}

// cmdTopic implements TOPIC as both a query (NewTopic == nil) and a set.
func (s *Server) cmdTopic(u *User, t Topic) {
	c, ok := s.registry.GetChannel(t.Channel)
	if !ok {
		u.Reply(s.config.ServerName, ErrNoSuchChannel, t.Channel, "No such channel")
		return
	}
	if !c.hasMember(u.Nickname()) {
		u.Reply(s.config.ServerName, ErrNotOnChannel, t.Channel, "You're not on that channel")
		return
	}

	if t.NewTopic == nil {
		s.sendTopic(u, c)
		return
	}

	c.SetTopic(*t.NewTopic, u.FQN())
	text, _, _, _ := c.Topic()
	c.Broadcast(irc.Message{
		Prefix:  u.FQN(),
		Command: "TOPIC",
		Params:  []string{c.Name(), text},
	})
}

// sendTopic sends RPL_TOPIC+RPL_TOPICWHOTIME, or RPL_NOTOPIC if none is
// set, to u about c.
func (s *Server) sendTopic(u *User, c *Channel) {
	text, setter, at, ok := c.Topic()
	if !ok {
		u.Reply(s.config.ServerName, ReplyNoTopic, c.Name(), "No topic is set")
		return
	}
	u.Reply(s.config.ServerName, ReplyTopic, c.Name(), text)
	u.Reply(s.config.ServerName, ReplyTopicWhoTime, c.Name(), setter, itoa64(at))
}

// sendNames sends RPL_NAMREPLY and RPL_ENDOFNAMES for c to u.
func (s *Server) sendNames(u *User, c *Channel) {
	members := c.MemberSnapshot()
	nicks := make([]string, 0, len(members))
	for _, m := range members {
		nicks = append(nicks, m.Nickname())
	}
	sort.Strings(nicks)
	u.Reply(s.config.ServerName, ReplyNameReply, "=", c.Name(), strings.Join(nicks, " "))
	u.Reply(s.config.ServerName, ReplyEndOfNames, c.Name(), "End of /NAMES list")
}

// cmdList implements LIST, optionally restricted to the given channels,
// always skipping secret (+s) channels.
func (s *Server) cmdList(u *User, l List) {
	u.Reply(s.config.ServerName, ReplyListStart, "Channel", "Users  Name")

	var wanted map[string]struct{}
	if len(l.Channels) > 0 {
		wanted = make(map[string]struct{}, len(l.Channels))
		for _, n := range l.Channels {
			wanted[n] = struct{}{}
		}
	}

	for _, c := range s.registry.Channels() {
		if c.isSecret() {
			continue
		}
		if wanted != nil {
			if _, ok := wanted[c.Name()]; !ok {
				continue
			}
		}
		text, _, _, hasTopic := c.Topic()
		if !hasTopic {
			text = ""
		}
		u.Reply(s.config.ServerName, ReplyList, c.Name(), itoa(c.memberCount()), text)
	}

	u.Reply(s.config.ServerName, ReplyListEnd, "End of /LIST")
}
