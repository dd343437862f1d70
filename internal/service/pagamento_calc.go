package service

import (
	"errors"

	"github.com/deivisontravizan/one-travvizan-sub000/internal/model"

	"github.com/shopspring/decimal"
)

// ErrTaxaInvalida is returned when a 100% fee rate reaches the payer-pays
// gross-up formula. Salvar on TaxasService rejects such rates, so hitting
// this means the configuration bypassed validation.
var ErrTaxaInvalida = errors.New("taxa de 100% inviabiliza o repasse ao cliente")

// ValoresPagamento is the fee-adjusted breakdown of one charge.
// Invariant: Bruto = Liquido + Taxa, exactly, after rounding.
type ValoresPagamento struct {
	Bruto   decimal.Decimal
	Taxa    decimal.Decimal
	Liquido decimal.Decimal
}

// CalcularPagamento splits an entered amount into gross/fee/net.
//
// With taxaCliente=true the entered amount is the NET the studio must
// receive: the charge is grossed up so the processor's cut of the gross
// still leaves exactly that net (taxa = liquido*r/(100-r)). Otherwise the
// entered amount is the GROSS charged and the fee is deducted from it.
//
// A non-positive amount yields an all-zero result, not an error — callers
// must reject it before persisting. parcelas only affects credito-parcelado.
// The fee is rounded to 2 decimal places and the third value derived from
// the other two, so the Bruto = Liquido + Taxa invariant always holds.
func CalcularPagamento(valor decimal.Decimal, metodo string, parcelas int, taxaCliente bool, cfg *model.ConfigTaxas) (ValoresPagamento, error) {
	zero := ValoresPagamento{Bruto: decimal.Zero, Taxa: decimal.Zero, Liquido: decimal.Zero}
	if !valor.IsPositive() {
		return zero, nil
	}

	taxa := ResolverTaxa(metodo, parcelas, cfg)

	if taxaCliente {
		if taxa.GreaterThanOrEqual(cem) {
			return zero, ErrTaxaInvalida
		}
		liquido := valor.Round(2)
		valorTaxa := liquido.Mul(taxa).Div(cem.Sub(taxa)).Round(2)
		return ValoresPagamento{
			Bruto:   liquido.Add(valorTaxa),
			Taxa:    valorTaxa,
			Liquido: liquido,
		}, nil
	}

	bruto := valor.Round(2)
	valorTaxa := bruto.Mul(taxa).Div(cem).Round(2)
	return ValoresPagamento{
		Bruto:   bruto,
		Taxa:    valorTaxa,
		Liquido: bruto.Sub(valorTaxa),
	}, nil
}
