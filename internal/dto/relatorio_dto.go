package dto

import "github.com/shopspring/decimal"

// PorMetodoResponse breaks the day's net receipts down by payment method.
type PorMetodoResponse struct {
	Dinheiro decimal.Decimal `json:"dinheiro"`
	Pix      decimal.Decimal `json:"pix"`
	Credito  decimal.Decimal `json:"credito"`
	Debito   decimal.Decimal `json:"debito"`
	Total    decimal.Decimal `json:"total"`
}

type ResumoDiarioResponse struct {
	Data      string            `json:"data"`
	Comandas  []ComandaResumo   `json:"comandas"`
	Totais    TotaisResponse    `json:"totais"`
	PorMetodo PorMetodoResponse `json:"por_metodo"`
}

type EnviarRelatorioRequest struct {
	Data  string `json:"data"  validate:"required,datetime=2006-01-02"`
	Email string `json:"email" validate:"required,email"`
}
