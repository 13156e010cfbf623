package bus

// InboundMessage is a user message arriving from any channel.
type InboundMessage struct {
	Channel   string            `json:"channel"`
	SenderID  string            `json:"sender_id"`
	ChatID    string            `json:"chat_id"`
	SessionID string            `json:"session_id"`
	Content   string            `json:"content"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// OutboundMessage is a reply heading back to a channel.
type OutboundMessage struct {
	Channel   string   `json:"channel"`
	ChatID    string   `json:"chat_id"`
	SessionID string   `json:"session_id"`
	Content   string   `json:"content"`
	Warnings  []string `json:"warnings,omitempty"`
}
