package session

import (
	"slices"

	"pizza-text-bot/internal/order"
)

// Conversation states. DONE never rests in the store: reaching it
// destroys the session in the same turn.
const (
	IDLE             = "IDLE"
	CHOOSING_OR_MENU = "CHOOSING_OR_MENU"
	AFTER_MENU       = "AFTER_MENU"
	ASK_NAME         = "ASK_NAME"
	CHOOSING_ITEMS   = "CHOOSING_ITEMS"
	ASK_ADDRESS      = "ASK_ADDRESS"
	ASK_PAYMENT      = "ASK_PAYMENT"
	ASK_OBSERVATION  = "ASK_OBSERVATION"
	CONFIRMING       = "CONFIRMING"
	DONE             = "DONE"
)

var knownStates = []string{
	IDLE, CHOOSING_OR_MENU, AFTER_MENU, ASK_NAME, CHOOSING_ITEMS,
	ASK_ADDRESS, ASK_PAYMENT, ASK_OBSERVATION, CONFIRMING, DONE,
}

// KnownState reports whether a stored state value belongs to the flow.
// Anything else means a corrupt session and forces a reset.
func KnownState(state string) bool {
	return slices.Contains(knownStates, state)
}

type (
	// Session binds one customer phone to its conversation state and draft.
	Session struct {
		State string      `json:"state" binding:"required" example:"IDLE"`
		Order order.Order `json:"order"`
	}
)

// New returns a fresh IDLE session with an empty draft for the phone.
func New(phone string) Session {
	return Session{
		State: IDLE,
		Order: order.New(phone),
	}
}
