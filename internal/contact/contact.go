// Package contact manages the additional people attached to a client
// beyond its primary contact.
package contact

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("contact not found")

type Contact struct {
	ID        uuid.UUID
	ClientID  uuid.UUID
	Name      string
	Email     string
	Phone     string
	Role      string
	IsPrimary bool
	CreatedAt time.Time
}
