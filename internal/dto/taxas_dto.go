package dto

import "github.com/shopspring/decimal"

// ConfigTaxasRequest carries percentage values in [0,100). 100% is rejected at
// configuration time because it makes the payer-pays-fee gross-up undefined.
type ConfigTaxasRequest struct {
	TaxaCreditoVista     *decimal.Decimal           `json:"taxa_credito_vista"`
	TaxaCreditoParcelado *decimal.Decimal           `json:"taxa_credito_parcelado"`
	TaxaDebito           *decimal.Decimal           `json:"taxa_debito"`
	TaxaPix              *decimal.Decimal           `json:"taxa_pix"`
	ParcelasTaxas        map[string]decimal.Decimal `json:"parcelas_taxas"`
}

// ConfigTaxasResponse reports the effective rates — defaults already applied
// for any field the operator left unset.
type ConfigTaxasResponse struct {
	TaxaCreditoVista     decimal.Decimal            `json:"taxa_credito_vista"`
	TaxaCreditoParcelado decimal.Decimal            `json:"taxa_credito_parcelado"`
	TaxaDebito           decimal.Decimal            `json:"taxa_debito"`
	TaxaPix              decimal.Decimal            `json:"taxa_pix"`
	ParcelasTaxas        map[string]decimal.Decimal `json:"parcelas_taxas"`
}
