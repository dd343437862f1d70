package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ConfigTaxas holds the per-operator processor fee percentages. Nil fields
// fall back to the built-in defaults in the service layer.
//
// ParcelasTaxas maps installment count ("2".."12") to an installment-specific
// rate. A missing entry falls back to TaxaCreditoParcelado, then to the
// built-in default.
type ConfigTaxas struct {
	ID                   uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID            uuid.UUID        `gorm:"type:uuid;uniqueIndex;not null"`
	TaxaCreditoVista     *decimal.Decimal `gorm:"type:decimal(5,2)"`
	TaxaCreditoParcelado *decimal.Decimal `gorm:"type:decimal(5,2)"`
	TaxaDebito           *decimal.Decimal `gorm:"type:decimal(5,2)"`
	TaxaPix              *decimal.Decimal `gorm:"type:decimal(5,2)"`
	ParcelasTaxas        datatypes.JSONType[map[string]decimal.Decimal]
	UpdatedAt            time.Time
}
