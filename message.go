package main

import (
	"strings"

	"github.com/horgh/irc"
)

// Command is the parsed, validated shape of a client command. Parse
// produces exactly one of the concrete types below (or Invalid), lifting
// the per-command parameter-count and shape checks the teacher inlines
// into each *Command handler (local_user.go's nickCommand/userCommand/
// joinCommand/...) into a single step so handlers never see malformed
// input. The shape of each variant and its validation failure modes are
// grounded in original_source/common/src/parse/command_parse.go's
// per-command parsers.
type Command interface {
	isCommand()
}

// Nick is the NICK command.
type Nick struct {
	Nickname string
}

// UserCmd is the USER command. Params 2 and 3 are discarded per spec.
type UserCmd struct {
	Username string
	RealName string
}

// Join is the JOIN command. PartAll is true for the literal "JOIN 0".
type Join struct {
	Channels []string
	Keys     []string
	PartAll  bool
}

// Part is the PART command.
type Part struct {
	Channels []string
	Reason   string
}

// Topic is the TOPIC command. NewTopic is nil when the caller is querying
// rather than setting (distinguishes "no topic given" from "set to empty
// string").
type Topic struct {
	Channel  string
	NewTopic *string
}

// List is the LIST command.
type List struct {
	Channels []string
}

// Mode is the MODE command, already scanned into a canonical +/- sequence
// paired with its arguments.
type Mode struct {
	Target     string
	ModeString string
	ModeArgs   []string
}

// Privmsg is PRIVMSG or NOTICE; Notice distinguishes the two since they
// share dispatch logic but PRIVMSG replies with errors and NOTICE never
// does.
type Privmsg struct {
	Targets []string
	Text    string
	Notice  bool
}

// Who is the WHO command.
type Who struct {
	Mask string
}

// Whois is the WHOIS command.
type Whois struct {
	Nick string
}

// Lusers is the LUSERS command.
type Lusers struct{}

// Motd is the MOTD command.
type Motd struct {
	Target string
}

// Ping is the PING command.
type Ping struct {
	Token string
}

// Pong is the PONG command. It is always a no-op.
type Pong struct{}

// Quit is the QUIT command.
type Quit struct {
	Reason string
}

// Invalid represents an unknown command, or a known command with
// malformed parameters. Numeric is "" when no reply should be sent.
// Params are the reply's parameters after the target nickname, in wire
// order; the caller (User.Reply) prepends the nickname itself. The last
// element may contain spaces — irc.Message.Encode prefixes it with ":"
// automatically, so it must never be pre-prefixed here.
type Invalid struct {
	Name    string
	Numeric string
	Params  []string
}

func (Nick) isCommand()    {}
func (UserCmd) isCommand() {}
func (Join) isCommand()    {}
func (Part) isCommand()    {}
func (Topic) isCommand()   {}
func (List) isCommand()    {}
func (Mode) isCommand()    {}
func (Privmsg) isCommand() {}
func (Who) isCommand()     {}
func (Whois) isCommand()   {}
func (Lusers) isCommand()  {}
func (Motd) isCommand()    {}
func (Ping) isCommand()    {}
func (Pong) isCommand()    {}
func (Quit) isCommand()    {}
func (Invalid) isCommand() {}

// Parse turns a wire-level irc.Message into a typed Command. Command names
// are matched case-insensitively, matching irc.ParseMessage's own
// uppercasing of the command token.
func Parse(m irc.Message) Command {
	switch strings.ToUpper(m.Command) {
	case "NICK":
		return parseNick(m.Params)
	case "USER":
		return parseUser(m.Params)
	case "JOIN":
		return parseJoin(m.Params)
	case "PART":
		return parsePart(m.Params)
	case "TOPIC":
		return parseTopic(m.Params)
	case "LIST":
		return parseList(m.Params)
	case "MODE":
		return parseMode(m.Params)
	case "PRIVMSG":
		return parsePrivmsg(m.Params, false)
	case "NOTICE":
		return parsePrivmsg(m.Params, true)
	case "WHO":
		return parseWho(m.Params)
	case "WHOIS":
		return parseWhois(m.Params)
	case "LUSERS":
		return Lusers{}
	case "MOTD":
		return parseMotd(m.Params)
	case "PING":
		return parsePing(m.Params)
	case "PONG":
		return Pong{}
	case "QUIT":
		return parseQuit(m.Params)
	default:
		return Invalid{
			Name:    m.Command,
			Numeric: ErrUnknownCommand,
			Params:  []string{m.Command, "Unknown command"},
		}
	}
}

func parseNick(params []string) Command {
	if len(params) == 0 {
		return Invalid{Name: "NICK", Numeric: ErrNoNicknameGiven, Params: []string{"No nickname given"}}
	}
	nick := truncate(params[0], nicklen)
	if !isValidNick(nick) {
		return Invalid{
			Name:    "NICK",
			Numeric: ErrErroneusNickname,
			Params:  []string{params[0], "Erroneus nickname"},
		}
	}
	return Nick{Nickname: nick}
}

func parseUser(params []string) Command {
	if len(params) < 4 {
		return Invalid{
			Name:    "USER",
			Numeric: ErrNeedMoreParams,
			Params:  []string{"USER", "Not enough parameters"},
		}
	}
	return UserCmd{
		Username: truncate(params[0], userlen-1),
		RealName: params[3],
	}
}

func parseJoin(params []string) Command {
	if len(params) == 0 {
		return Invalid{Name: "JOIN", Numeric: ErrNeedMoreParams, Params: []string{"JOIN", "Not enough parameters"}}
	}
	if params[0] == "0" {
		return Join{PartAll: true}
	}
	j := Join{Channels: splitCommaList(params[0])}
	if len(params) >= 2 {
		j.Keys = splitCommaList(params[1])
	}
	return j
}

func parsePart(params []string) Command {
	if len(params) == 0 {
		return Invalid{Name: "PART", Numeric: ErrNeedMoreParams, Params: []string{"PART", "Not enough parameters"}}
	}
	p := Part{Channels: splitCommaList(params[0])}
	if len(params) >= 2 {
		p.Reason = params[1]
	}
	return p
}

func parseTopic(params []string) Command {
	if len(params) == 0 {
		return Invalid{Name: "TOPIC", Numeric: ErrNeedMoreParams, Params: []string{"TOPIC", "Not enough parameters"}}
	}
	t := Topic{Channel: params[0]}
	if len(params) >= 2 {
		topic := params[1]
		t.NewTopic = &topic
	}
	return t
}

func parseList(params []string) Command {
	if len(params) == 0 {
		return List{}
	}
	return List{Channels: splitCommaList(params[0])}
}

func parseMode(params []string) Command {
	if len(params) == 0 {
		return Invalid{Name: "MODE", Numeric: ErrNeedMoreParams, Params: []string{"MODE", "Not enough parameters"}}
	}
	m := Mode{Target: params[0]}
	if len(params) >= 2 {
		var sb strings.Builder
		sign := byte('+')
		current := byte(0)
		numModes := 0
		for i := 0; i < len(params[1]); i++ {
			c := params[1][i]
			if c == '+' || c == '-' {
				sign = c
				continue
			}
			if current != sign {
				sb.WriteByte(sign)
				current = sign
			}
			sb.WriteByte(c)
			numModes++
		}
		m.ModeString = sb.String()
		for i := 2; i < len(params) && len(m.ModeArgs) < numModes; i++ {
			m.ModeArgs = append(m.ModeArgs, params[i])
		}
	}
	return m
}

func parsePrivmsg(params []string, notice bool) Command {
	name := "PRIVMSG"
	if notice {
		name = "NOTICE"
	}
	if len(params) == 0 {
		return Invalid{Name: name, Numeric: ErrNoRecipient, Params: []string{"No recipient given (" + name + ")"}}
	}
	if len(params) < 2 {
		return Invalid{Name: name, Numeric: ErrNoTextToSend, Params: []string{"No text to send"}}
	}
	return Privmsg{
		Targets: splitCommaList(params[0]),
		Text:    params[1],
		Notice:  notice,
	}
}

func parseWho(params []string) Command {
	if len(params) == 0 {
		return Invalid{Name: "WHO", Numeric: ErrNeedMoreParams, Params: []string{"WHO", "Not enough parameters"}}
	}
	return Who{Mask: params[0]}
}

func parseWhois(params []string) Command {
	if len(params) == 0 {
		return Invalid{Name: "WHOIS", Numeric: ErrNeedMoreParams, Params: []string{"WHOIS", "Not enough parameters"}}
	}
	return Whois{Nick: params[len(params)-1]}
}

func parseMotd(params []string) Command {
	if len(params) == 0 {
		return Motd{}
	}
	return Motd{Target: params[0]}
}

func parsePing(params []string) Command {
	if len(params) == 0 {
		return Invalid{Name: "PING", Numeric: ErrNeedMoreParams, Params: []string{"PING", "Not enough parameters"}}
	}
	return Ping{Token: params[0]}
}

func parseQuit(params []string) Command {
	if len(params) == 0 {
		return Quit{}
	}
	return Quit{Reason: params[0]}
}
