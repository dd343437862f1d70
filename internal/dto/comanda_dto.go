package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AbrirComandaRequest struct {
	Data         string          `json:"data"          validate:"required,datetime=2006-01-02"`
	ValorInicial decimal.Decimal `json:"valor_inicial" validate:"min=0"`
}

type AdicionarClienteRequest struct {
	ClienteID     *string         `json:"cliente_id"     validate:"omitempty,uuid"`
	AgendamentoID *string         `json:"agendamento_id" validate:"omitempty,uuid"`
	Nome          string          `json:"nome"           validate:"required,min=1,max=150"`
	Descricao     string          `json:"descricao"`
	ValorTotal    decimal.Decimal `json:"valor_total"    validate:"min=0"`
}

// RegistrarPagamentoRequest targets either an existing line
// (comanda_cliente_id) or a transient one synthesized from an agendamento
// (agendamento_id) — the latter is promoted to a persisted line first.
type RegistrarPagamentoRequest struct {
	ComandaClienteID *string         `json:"comanda_cliente_id" validate:"omitempty,uuid"`
	AgendamentoID    *string         `json:"agendamento_id"     validate:"omitempty,uuid"`
	Metodo           string          `json:"metodo"             validate:"required,oneof=dinheiro pix credito-vista credito-parcelado debito"`
	Valor            decimal.Decimal `json:"valor"              validate:"required,gt=0"`
	Parcelas         *int            `json:"parcelas"           validate:"omitempty,min=2,max=12"`
	TaxaCliente      bool            `json:"taxa_cliente"`
}

type FecharComandaRequest struct {
	ValorFechamento *decimal.Decimal `json:"valor_fechamento" validate:"omitempty,min=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PagamentoResponse struct {
	ID           string          `json:"id"`
	Metodo       string          `json:"metodo"`
	ValorBruto   decimal.Decimal `json:"valor_bruto"`
	ValorTaxa    decimal.Decimal `json:"valor_taxa"`
	ValorLiquido decimal.Decimal `json:"valor_liquido"`
	Parcelas     *int            `json:"parcelas,omitempty"`
	TaxaCliente  bool            `json:"taxa_cliente"`
	CreatedAt    string          `json:"created_at"`
}

// ConciliacaoResponse carries the derived settlement picture of one line.
// Status: "pendente" | "quitado".
type ConciliacaoResponse struct {
	PagoComanda   decimal.Decimal `json:"pago_comanda"`
	Sinal         decimal.Decimal `json:"sinal"`
	TotalRecebido decimal.Decimal `json:"total_recebido"`
	SaldoRestante decimal.Decimal `json:"saldo_restante"`
	Status        string          `json:"status"`
}

// ComandaClienteResponse covers both persisted lines and transient candidates
// synthesized from same-day agendamentos. Transient lines have no ID yet —
// they only exist in storage after the first payment promotes them.
type ComandaClienteResponse struct {
	ID            *string             `json:"id,omitempty"`
	ClienteID     *string             `json:"cliente_id,omitempty"`
	AgendamentoID *string             `json:"agendamento_id,omitempty"`
	Nome          string              `json:"nome"`
	Descricao     string              `json:"descricao"`
	ValorTotal    decimal.Decimal     `json:"valor_total"`
	Transiente    bool                `json:"transiente"`
	Pagamentos    []PagamentoResponse `json:"pagamentos"`
	Conciliacao   ConciliacaoResponse `json:"conciliacao"`
	CreatedAt     *string             `json:"created_at,omitempty"`
}

type TotaisResponse struct {
	ServicosBrutos  decimal.Decimal `json:"servicos_brutos"`
	LiquidoRecebido decimal.Decimal `json:"liquido_recebido"`
	SaldoPendente   decimal.Decimal `json:"saldo_pendente"`
}

type ComandaResponse struct {
	ID              string                   `json:"id"`
	Data            string                   `json:"data"`
	Status          string                   `json:"status"`
	ValorInicial    decimal.Decimal          `json:"valor_inicial"`
	ValorFechamento *decimal.Decimal         `json:"valor_fechamento,omitempty"`
	Clientes        []ComandaClienteResponse `json:"clientes"`
	Totais          TotaisResponse           `json:"totais"`
	CreatedAt       string                   `json:"created_at"`
}

type ComandaResumo struct {
	ID           string          `json:"id"`
	Data         string          `json:"data"`
	Status       string          `json:"status"`
	ValorInicial decimal.Decimal `json:"valor_inicial"`
	Totais       TotaisResponse  `json:"totais"`
}
