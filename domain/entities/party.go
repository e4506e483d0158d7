package entities

import (
	"time"
)

// Party groups bets and is the scope for net summaries
type Party struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
