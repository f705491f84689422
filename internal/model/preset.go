package model

import (
	"time"

	"github.com/passform/passform-go/internal/passgen"
)

// Preset represents a saved form configuration in the database.
type Preset struct {
	ID        int64
	OwnerID   string
	Name      string
	Length    int
	Classes   passgen.ClassSet
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PresetRequest represents a request to save a preset.
type PresetRequest struct {
	Name    string           `json:"name" validate:"required,max=64,printascii,excludesall=/"`
	Length  string           `json:"length"`
	Classes passgen.ClassSet `json:"classes"`
}

// PresetResponse represents a preset in API responses.
type PresetResponse struct {
	Name      string           `json:"name"`
	Length    int              `json:"length"`
	Classes   passgen.ClassSet `json:"classes"`
	UpdatedAt time.Time        `json:"updated_at"`
}
