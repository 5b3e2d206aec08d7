package domain

import "time"

// CommandContext carries the chat origin of a command through the pipeline.
type CommandContext struct {
	RequestID string
	Room      string
	Sender    string
	Message   string
	Timestamp time.Time
}

func NewCommandContext(requestID, room, sender, message string) *CommandContext {
	return &CommandContext{
		RequestID: requestID,
		Room:      room,
		Sender:    sender,
		Message:   message,
		Timestamp: time.Now(),
	}
}
