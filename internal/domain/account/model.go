package account

import (
	"time"

	"github.com/google/uuid"
)

// Account maps to the accounts table. Email uniquely identifies at most one
// account; the stored comparison is case-sensitive. DoctorPhone and
// PersonalBest are optional; a nil value means "not set", never an empty
// sentinel scattered through call sites.
type Account struct {
	ID           uuid.UUID `db:"id" json:"id"`
	FullName     string    `db:"full_name" json:"full_name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	DoctorPhone  *string   `db:"doctor_phone" json:"doctor_phone,omitempty"`
	PersonalBest *float64  `db:"personal_best" json:"personal_best,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
