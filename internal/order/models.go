package order

import "strings"

const (
	PAYMENT_PIX  = "pix"
	PAYMENT_CARD = "cartao"
	PAYMENT_CASH = "dinheiro"
)

type (
	// Order is the draft accumulated during one conversation.
	// It is owned by its session and never shared between customers.
	Order struct {
		// short human-shareable code, not guaranteed unique
		Code string `json:"code"`

		// insertion order is display order
		Products []LineItem `json:"products"`

		Customer    Customer `json:"customer"`
		Address     Address  `json:"address"`
		Payment     string   `json:"payment"`
		Observation string   `json:"observation,omitempty"`
	}

	// LineItem is one pizza entry; immutable once appended to Products.
	LineItem struct {
		// catalog identifiers, in the order the customer typed them
		Flavors []string `json:"flavors"`
		// display string "Size + Flavor1 + Flavor2..."
		Name     string `json:"name"`
		Size     string `json:"size"`
		Quantity int    `json:"quantity"`
	}

	Customer struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
	}

	Address struct {
		Street       string `json:"street"`
		Number       string `json:"number"`
		Neighborhood string `json:"neighborhood"`
		Complement   string `json:"complement"`
	}
)

// New creates an empty draft for a customer phone.
func New(phone string) Order {
	return Order{
		Code:     NewCode(),
		Products: []LineItem{},
		Customer: Customer{Phone: phone},
	}
}

// Complete reports whether the draft may reach final confirmation.
func (o Order) Complete() bool {
	return len(o.Products) > 0 &&
		o.Address.Street != "" &&
		o.Payment != "" &&
		o.Customer.Name != ""
}

// ParseAddress splits a validated free-text address into its parts.
// Empty segments are dropped, so a stray leading comma cannot produce an
// empty street. Everything after the third segment lands in the complement.
func ParseAddress(text string) Address {
	var fields []string
	for _, part := range strings.Split(text, ",") {
		if part = strings.TrimSpace(part); part != "" {
			fields = append(fields, part)
		}
	}

	var addr Address
	if len(fields) > 0 {
		addr.Street = fields[0]
	}
	if len(fields) > 1 {
		addr.Number = fields[1]
	}
	if len(fields) > 2 {
		addr.Neighborhood = fields[2]
	}
	if len(fields) > 3 {
		addr.Complement = strings.Join(fields[3:], ", ")
	}
	return addr
}

// Flat renders the structured address as the single line shown to the customer.
func (a Address) Flat() string {
	return a.Street + ", " + a.Number + ", " + a.Neighborhood + ", " + a.Complement
}

// NormalizePayment maps accepted payment spellings to their canonical code.
// Callers must reject unknown tokens first; the passthrough is a fallback only.
func NormalizePayment(payment string) string {
	switch {
	case payment == PAYMENT_PIX:
		return PAYMENT_PIX
	case strings.HasPrefix(payment, "cart"):
		return PAYMENT_CARD
	case payment == PAYMENT_CASH:
		return PAYMENT_CASH
	}
	return payment
}

// IsPayment reports whether the lower-cased token is an accepted payment method.
func IsPayment(token string) bool {
	switch token {
	case PAYMENT_PIX, PAYMENT_CARD, "cartão", PAYMENT_CASH:
		return true
	}
	return false
}
