package gateway

import (
	"strings"

	"github.com/google/uuid"
)

const (
	MESSAGE_TEXT     = "text"
	MESSAGE_LOCATION = "location"

	// individual conversation, as opposed to groups and broadcast lists
	CHAT_USER = "user"
)

type (
	// Message is one inbound push from the WhatsApp gateway.
	Message struct {
		MessageID uuid.UUID `json:"message_id" binding:"required" example:"4e48509f-6366-4897-9544-46f006e47074"`
		Phone     string    `json:"phone" binding:"required" example:"557185350004"`
		ChatType  string    `json:"chat_type" example:"user"`

		Type   string `json:"message_type" binding:"required" example:"text"`
		Text   string `json:"text" example:"cardápio"`
		FromMe bool   `json:"from_me"`

		Location *Location `json:"location" binding:"omitempty"`
	}

	Location struct {
		Description string `json:"description"`
	}

	HookSetupRequest struct {
		Type string `json:"type"`
		Url  string `json:"url"`
	}

	SendRequest struct {
		Phone string `json:"phone"`
		Text  string `json:"text"`
	}

	NumberStatus struct {
		Exists bool `json:"exists"`
	}
)

// Body extracts the conversational text of the message. Shared locations
// carry their text in the description; the first line is the place name
// and is dropped when an address follows.
func (msg *Message) Body() string {
	if msg.Type == MESSAGE_LOCATION && msg.Location != nil {
		lines := strings.Split(msg.Location.Description, "\n")
		if len(lines) > 1 {
			return strings.TrimSpace(strings.Join(lines[1:], "\n"))
		}
		return strings.TrimSpace(msg.Location.Description)
	}
	return strings.TrimSpace(msg.Text)
}
