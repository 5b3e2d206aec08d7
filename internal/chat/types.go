package chat

// Reply types understood by the bridge.
const (
	ReplyText  = "text"
	ReplyImage = "image"
)

// ReplyRequest is the body of POST {base}/reply. Images travel as base64.
type ReplyRequest struct {
	Type string `json:"type"`
	Room string `json:"room"`
	Data string `json:"data"`
}

// Message is one incoming chat message pushed over the WebSocket.
type Message struct {
	Msg    string  `json:"msg"`
	Room   string  `json:"room"`
	Sender *string `json:"sender,omitempty"`
}

// SenderName returns the sender or an empty string.
func (m *Message) SenderName() string {
	if m == nil || m.Sender == nil {
		return ""
	}
	return *m.Sender
}

type ListenerState string

const (
	StateConnecting   ListenerState = "CONNECTING"
	StateConnected    ListenerState = "CONNECTED"
	StateDisconnected ListenerState = "DISCONNECTED"
	StateReconnecting ListenerState = "RECONNECTING"
	StateFailed       ListenerState = "FAILED"
)

func (s ListenerState) String() string {
	return string(s)
}
