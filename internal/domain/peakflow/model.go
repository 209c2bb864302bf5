package peakflow

import (
	"time"

	"github.com/google/uuid"
)

// Reading is a single peak-flow measurement in litres per minute.
type Reading struct {
	ID         uuid.UUID `json:"id" db:"id"`
	AccountID  uuid.UUID `json:"account_id" db:"account_id"`
	Value      float64   `json:"value" db:"value"`
	Zone       Zone      `json:"zone" db:"zone"`
	RecordedAt time.Time `json:"recorded_at" db:"recorded_at"`
}
