package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// CategoriaSinal marks a deposit collected at booking time.
	CategoriaSinal = "sinal"

	TipoEntrada = "entrada"
	TipoSaida   = "saida"
)

// RegistroFinanceiro is a row in the studio's financial ledger. The ledger is
// written by the finance module of the application shell; the reconciliation
// engine only reads entries with Categoria "sinal" and Tipo "entrada", summed
// per agendamento as money already received.
type RegistroFinanceiro struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	AgendamentoID *uuid.UUID `gorm:"type:uuid;index"`
	Categoria     string     `gorm:"type:varchar(30);not null"`
	Tipo          string     `gorm:"type:varchar(10);not null"`
	Valor         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Descricao     string
	CreatedAt     time.Time
}
