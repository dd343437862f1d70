package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Comanda is one day's cash session for one operator.
// Status: "aberta" | "fechada" — the only two states; fechar/reabrir are the
// only transitions. Data carries date-only semantics (the time component is
// always midnight UTC).
type Comanda struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Data         time.Time       `gorm:"type:date;not null;index"`
	ValorInicial decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// ValorFechamento is the closing cash count, set when the comanda is closed.
	ValorFechamento *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Status          string           `gorm:"type:varchar(20);not null;default:'aberta'"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Insertion order = display order.
	Clientes []ComandaCliente `gorm:"foreignKey:ComandaID"`
}

// ComandaCliente is one billable line on a comanda, optionally tied to a CRM
// Cliente and/or the Agendamento it originated from.
//
// ValorTotal is fixed at creation and never mutated by payment recording.
// Settlement status is NOT stored — it is derived via service.Conciliar on
// every read so that no cached copy can drift.
type ComandaCliente struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ComandaID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	ClienteID     *uuid.UUID `gorm:"type:uuid"`
	AgendamentoID *uuid.UUID `gorm:"type:uuid;index"`
	// Nome is required even when ClienteID is absent (walk-in clients).
	Nome       string          `gorm:"not null"`
	Descricao  string
	ValorTotal decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt  time.Time

	Pagamentos []Pagamento `gorm:"foreignKey:ComandaClienteID"`
}
