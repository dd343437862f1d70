package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Agendamento is a scheduled session. Scheduling itself lives in the
// application shell; the comanda engine only reads same-day agendamentos to
// materialize line items that were not added by hand.
type Agendamento struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ClienteID uuid.UUID       `gorm:"type:uuid;not null"`
	Data      time.Time       `gorm:"type:date;not null;index"`
	Valor     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Descricao string
	CreatedAt time.Time
}
