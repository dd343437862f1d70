package service

import (
	"github.com/deivisontravizan/one-travvizan-sub000/internal/model"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// toleranciaQuitacao absorbs the rounding residue that repeated fee
// arithmetic leaves behind. Settlement is never tested with exact equality.
var toleranciaQuitacao = decimal.NewFromFloat(0.01)

const (
	StatusPendente = "pendente"
	StatusQuitado  = "quitado"
)

// Conciliacao is the derived settlement picture of one comanda line.
type Conciliacao struct {
	// PagoComanda is the sum of net amounts recorded directly on the line.
	PagoComanda decimal.Decimal
	// Sinal is the sum of booking-time deposits tied to the originating
	// agendamento.
	Sinal         decimal.Decimal
	TotalRecebido decimal.Decimal
	SaldoRestante decimal.Decimal
	Quitado       bool
}

// Status renders the tagged settlement state for display.
func (c Conciliacao) Status() string {
	if c.Quitado {
		return StatusQuitado
	}
	return StatusPendente
}

// Conciliar derives the settlement state of one line from every recorded
// payment plus any "sinal" ledger entries linked to its agendamento.
//
// Pure and linear: it never mutates its inputs and is cheap enough to run on
// every register view render. Malformed sub-records contribute zero instead
// of aborting — one corrupt payment must not blank the whole register.
func Conciliar(cliente *model.ComandaCliente, pagamentos []model.Pagamento, sinais []model.RegistroFinanceiro) Conciliacao {
	pago := decimal.Zero
	for _, p := range pagamentos {
		if p.ComandaClienteID != cliente.ID {
			continue
		}
		if p.ValorLiquido.IsNegative() {
			continue
		}
		pago = pago.Add(p.ValorLiquido)
	}

	sinal := decimal.Zero
	if cliente.AgendamentoID != nil {
		for _, r := range sinais {
			if r.AgendamentoID == nil || *r.AgendamentoID != *cliente.AgendamentoID {
				continue
			}
			if r.Categoria != model.CategoriaSinal || r.Tipo != model.TipoEntrada {
				continue
			}
			if r.Valor.IsNegative() {
				continue
			}
			sinal = sinal.Add(r.Valor)
		}
	}

	total := pago.Add(sinal)

	if cliente.ValorTotal.IsNegative() {
		log.Error().
			Str("comanda_cliente_id", cliente.ID.String()).
			Str("valor_total", cliente.ValorTotal.String()).
			Msg("conciliacao: valor total negativo, linha tratada como pendente")
		return Conciliacao{
			PagoComanda:   pago,
			Sinal:         sinal,
			TotalRecebido: total,
			SaldoRestante: decimal.Zero,
			Quitado:       false,
		}
	}

	saldo := cliente.ValorTotal.Sub(total)
	if saldo.IsNegative() {
		saldo = decimal.Zero
	}

	return Conciliacao{
		PagoComanda:   pago,
		Sinal:         sinal,
		TotalRecebido: total,
		SaldoRestante: saldo,
		Quitado:       total.Sub(cliente.ValorTotal).Abs().LessThan(toleranciaQuitacao),
	}
}
