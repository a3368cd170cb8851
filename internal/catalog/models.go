package catalog

import "github.com/google/uuid"

const (
	TYPE_TRADITIONAL = "TRADICIONAL"
	TYPE_SPECIAL     = "SPECIAL"
	TYPE_SWEET       = "DOCE"
)

type (
	// Flavor is one sellable catalog item as served by the order backend.
	Flavor struct {
		UUID        uuid.UUID `json:"uuid" binding:"required"`
		Name        string    `json:"name" binding:"required"`
		Type        string    `json:"type"`
		IsActive    bool      `json:"isActive"`
		Description string    `json:"description"`
		Prices      Prices    `json:"prices"`
	}

	// Prices per size, in centavos.
	Prices struct {
		Middle int64 `json:"middle"`
		Large  int64 `json:"large"`
		Family int64 `json:"family"`
	}
)
