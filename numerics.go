package main

// Numeric reply codes, as three-digit strings since that is how they are
// rendered on the wire (see irc.Message.Command for ordinary commands;
// numerics reuse the same field per github.com/horgh/irc).
const (
	ReplyWelcome        = "001"
	ReplyYourHost       = "002"
	ReplyCreated        = "003"
	ReplyMyInfo         = "004"
	ReplyISupport       = "005"
	ReplyUModeIs        = "221"
	ReplyLUserClient    = "251"
	ReplyLUserUnknown   = "253"
	ReplyLUserChannels  = "254"
	ReplyLUserMe        = "255"
	ReplyWhoisUser      = "311"
	ReplyWhoisServer    = "312"
	ReplyWhoisIdle      = "317"
	ReplyEndOfWhois     = "318"
	ReplyEndOfWho       = "315"
	ReplyListStart      = "321"
	ReplyList           = "322"
	ReplyListEnd        = "323"
	ReplyChannelModeIs  = "324"
	ReplyCreationTime   = "329"
	ReplyNoTopic        = "331"
	ReplyTopic          = "332"
	ReplyTopicWhoTime   = "333"
	ReplyWhoReply       = "352"
	ReplyNameReply      = "353"
	ReplyEndOfNames     = "366"
	ReplyMotd           = "372"
	ReplyMotdStart      = "375"
	ReplyEndOfMotd      = "376"
	ErrNoSuchNick       = "401"
	ErrNoSuchServer     = "402"
	ErrNoSuchChannel    = "403"
	ErrCannotSendToChan = "404"
	ErrNoRecipient      = "411"
	ErrNoTextToSend     = "412"
	ErrUnknownCommand   = "421"
	ErrNoMotd           = "422"
	ErrNoNicknameGiven  = "431"
	ErrErroneusNickname = "432"
	ErrNicknameInUse    = "433"
	ErrNotOnChannel     = "442"
	ErrNeedMoreParams   = "461"
	ErrAlreadyRegistered = "462"
	ErrUnknownMode      = "472"
	ErrChanOPrivsNeeded = "482"
	ErrUModeUnknownFlag = "501"
	ErrUsersDontMatch   = "502"
)
