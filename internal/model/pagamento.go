package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment methods accepted on a comanda.
const (
	MetodoDinheiro         = "dinheiro"
	MetodoPix              = "pix"
	MetodoCreditoVista     = "credito-vista"
	MetodoCreditoParcelado = "credito-parcelado"
	MetodoDebito           = "debito"
)

// Pagamento is one instrument applied to a ComandaCliente. Payments are
// immutable — there is no update path; they are only ever created.
// Invariant: ValorBruto = ValorLiquido + ValorTaxa.
type Pagamento struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ComandaClienteID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Metodo           string          `gorm:"type:varchar(20);not null"`
	ValorBruto       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ValorTaxa        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ValorLiquido     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// Parcelas is set only for credito-parcelado (2–12).
	Parcelas *int
	// TaxaCliente records which fee-allocation policy produced the values:
	// true = the payer absorbed the processor fee (grossed-up charge).
	TaxaCliente bool `gorm:"not null;default:false"`
	CreatedAt   time.Time
}
