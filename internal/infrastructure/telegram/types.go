package telegram

// Update is an incoming Bot API webhook payload, trimmed to what the
// bot actually reads
type Update struct {
	UpdateID int64    `json:"update_id"`
	Message  *Message `json:"message,omitempty"`
}

// Message is one chat message inside an update
type Message struct {
	MessageID int64  `json:"message_id"`
	From      *From  `json:"from,omitempty"`
	Chat      Chat   `json:"chat"`
	Text      string `json:"text,omitempty"`
}

// From identifies the sender of a message
type From struct {
	ID        int64  `json:"id"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// Chat identifies where a message was sent
type Chat struct {
	ID   int64  `json:"id"`
	Type string `json:"type,omitempty"`
}
