package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente is the CRM customer record. Only the fields the comanda engine
// needs are modeled here; the full CRM belongs to the application shell.
type Cliente struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome     string    `gorm:"not null"`
	Telefone *string
	Email    *string
	CreatedAt time.Time
}
