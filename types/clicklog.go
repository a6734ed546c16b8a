package types

import "time"

// Button names accepted by the click logger.
const (
	ButtonTelegram = "telegram"
	ButtonCompra   = "compra"
)

// ClickLog records a single button click by a user. Rows are append-only.
type ClickLog struct {
	ID         int64     `json:"id" db:"id"`
	UserID     int64     `json:"user_id" db:"user_id"`
	ButtonName string    `json:"button_name" db:"button_name"`
	ClickedAt  time.Time `json:"clicked_at" db:"clicked_at"`

	// Username is filled by list queries that join the users table.
	// Nil when the owning user no longer exists.
	Username *string `json:"username,omitempty" db:"-"`
}
