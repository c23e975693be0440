package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is a two-level tree: a top category has ParentID == nil, a
// child points at its parent. Deeper nesting is not supported.
type Category struct {
	ID         uuid.UUID  `json:"id"`
	BusinessID uuid.UUID  `json:"business_id"`
	ParentID   *uuid.UUID `json:"parent_id,omitempty"`
	Name       string     `json:"name"`
	Active     bool       `json:"active"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
