package adapter

import (
	"regexp"
	"strings"

	"github.com/kapu/gok-stats-bot-go/internal/chat"
	"github.com/kapu/gok-stats-bot-go/internal/constants"
)

var controlCharsPattern = regexp.MustCompile(`[\x00-\x1F\x7F]`)

// MessageAdapter turns chat messages into command names and positional args.
type MessageAdapter struct {
	prefixEnabled bool
	prefix        string
}

func NewMessageAdapter(prefixEnabled bool, prefix string) *MessageAdapter {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = constants.CommandDefaults.Prefix
	}
	return &MessageAdapter{prefixEnabled: prefixEnabled, prefix: prefix}
}

// Prefix returns the configured prefix, even when prefix mode is off.
func (ma *MessageAdapter) Prefix() string {
	return ma.prefix
}

// ParsedCommand is a message split into a command key and its arguments.
type ParsedCommand struct {
	Name       string
	Args       []string
	RawMessage string
}

// ParseMessage returns nil for messages the bot should ignore: empty text, and
// in prefix mode anything that does not start with the prefix.
func (ma *MessageAdapter) ParseMessage(message *chat.Message) *ParsedCommand {
	if message == nil {
		return nil
	}

	text := strings.TrimSpace(controlCharsPattern.ReplaceAllString(message.Msg, " "))
	if text == "" {
		return nil
	}

	if ma.prefixEnabled {
		if !strings.HasPrefix(text, ma.prefix) {
			return nil
		}
		text = strings.TrimSpace(text[len(ma.prefix):])
	}

	parts := strings.Fields(text)
	if len(parts) == 0 {
		return nil
	}

	return &ParsedCommand{
		Name:       parts[0],
		Args:       parts[1:],
		RawMessage: strings.TrimSpace(message.Msg),
	}
}
