package act

import (
	"time"

	"github.com/google/uuid"
)

// Score is a completed Asthma Control Test submission.
type Score struct {
	ID        uuid.UUID `json:"id" db:"id"`
	AccountID uuid.UUID `json:"account_id" db:"account_id"`
	Answers   []int32   `json:"answers" db:"answers"`
	Total     int       `json:"total" db:"total"`
	TakenAt   time.Time `json:"taken_at" db:"taken_at"`
}
