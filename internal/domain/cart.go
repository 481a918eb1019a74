package domain

import (
	"time"

	"github.com/google/uuid"
)

// CartLine is one (user, product) pairing with a quantity. A user has at most
// one line per product; adding the same product again merges quantities.
type CartLine struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	ProductID int64     `json:"product_id"`
	Quantity  int32     `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}
