package service

import (
	"context"
	"fmt"
	"time"

	"github.com/deivisontravizan/one-travvizan-sub000/internal/dto"
	"github.com/deivisontravizan/one-travvizan-sub000/internal/model"
	"github.com/deivisontravizan/one-travvizan-sub000/internal/repository"
	"github.com/deivisontravizan/one-travvizan-sub000/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CalcularTotais rolls up the displayed lines of a comanda:
// gross services charged, net actually received via the comanda, and the
// difference still pending. Sinais are deliberately excluded from
// LiquidoRecebido — they were collected elsewhere, before the comanda.
func CalcularTotais(linhas []dto.ComandaClienteResponse) dto.TotaisResponse {
	bruto := decimal.Zero
	liquido := decimal.Zero
	for _, l := range linhas {
		bruto = bruto.Add(l.ValorTotal)
		liquido = liquido.Add(l.Conciliacao.PagoComanda)
	}
	return dto.TotaisResponse{
		ServicosBrutos:  bruto,
		LiquidoRecebido: liquido,
		SaldoPendente:   bruto.Sub(liquido),
	}
}

// FiltrarPorData keeps the comandas whose calendar date (year, month, day)
// matches. Nil filter is the identity. Comandas store date-only semantics, so
// full timestamp equality would be wrong here.
func FiltrarPorData(comandas []model.Comanda, data *time.Time) []model.Comanda {
	if data == nil {
		return comandas
	}
	filtradas := make([]model.Comanda, 0, len(comandas))
	for _, c := range comandas {
		if c.Data.Year() == data.Year() && c.Data.Month() == data.Month() && c.Data.Day() == data.Day() {
			filtradas = append(filtradas, c)
		}
	}
	return filtradas
}

type RelatorioService interface {
	Resumo(ctx context.Context, usuarioID uuid.UUID, data *time.Time) (*dto.ResumoDiarioResponse, error)
	Enviar(ctx context.Context, usuarioID uuid.UUID, req dto.EnviarRelatorioRequest) error
}

type relatorioService struct {
	comandas   repository.ComandaRepository
	financeiro repository.FinanceiroRepository
	dispatcher *worker.Dispatcher
}

func NewRelatorioService(
	comandas repository.ComandaRepository,
	financeiro repository.FinanceiroRepository,
	dispatcher *worker.Dispatcher,
) RelatorioService {
	return &relatorioService{comandas: comandas, financeiro: financeiro, dispatcher: dispatcher}
}

func (s *relatorioService) Resumo(ctx context.Context, usuarioID uuid.UUID, data *time.Time) (*dto.ResumoDiarioResponse, error) {
	comandas, err := s.comandas.ListByUsuario(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	comandas = FiltrarPorData(comandas, data)

	sinais, err := s.financeiro.ListSinais(ctx, usuarioID)
	if err != nil {
		sinais = nil
	}

	resp := &dto.ResumoDiarioResponse{
		Comandas: make([]dto.ComandaResumo, 0, len(comandas)),
	}
	if data != nil {
		resp.Data = data.Format("2006-01-02")
	}

	totalBruto := decimal.Zero
	totalLiquido := decimal.Zero
	porMetodo := dto.PorMetodoResponse{
		Dinheiro: decimal.Zero,
		Pix:      decimal.Zero,
		Credito:  decimal.Zero,
		Debito:   decimal.Zero,
		Total:    decimal.Zero,
	}

	for i := range comandas {
		c := &comandas[i]
		linhas := make([]dto.ComandaClienteResponse, 0, len(c.Clientes))
		for j := range c.Clientes {
			cc := &c.Clientes[j]
			linhas = append(linhas, buildLinha(cc, sinais))
			for _, p := range cc.Pagamentos {
				if p.ValorLiquido.IsNegative() {
					continue
				}
				switch p.Metodo {
				case model.MetodoDinheiro:
					porMetodo.Dinheiro = porMetodo.Dinheiro.Add(p.ValorLiquido)
				case model.MetodoPix:
					porMetodo.Pix = porMetodo.Pix.Add(p.ValorLiquido)
				case model.MetodoCreditoVista, model.MetodoCreditoParcelado:
					porMetodo.Credito = porMetodo.Credito.Add(p.ValorLiquido)
				case model.MetodoDebito:
					porMetodo.Debito = porMetodo.Debito.Add(p.ValorLiquido)
				}
				porMetodo.Total = porMetodo.Total.Add(p.ValorLiquido)
			}
		}

		totais := CalcularTotais(linhas)
		totalBruto = totalBruto.Add(totais.ServicosBrutos)
		totalLiquido = totalLiquido.Add(totais.LiquidoRecebido)

		resp.Comandas = append(resp.Comandas, dto.ComandaResumo{
			ID:           c.ID.String(),
			Data:         c.Data.Format("2006-01-02"),
			Status:       c.Status,
			ValorInicial: c.ValorInicial,
			Totais:       totais,
		})
	}

	resp.Totais = dto.TotaisResponse{
		ServicosBrutos:  totalBruto,
		LiquidoRecebido: totalLiquido,
		SaldoPendente:   totalBruto.Sub(totalLiquido),
	}
	resp.PorMetodo = porMetodo
	return resp, nil
}

func (s *relatorioService) Enviar(ctx context.Context, usuarioID uuid.UUID, req dto.EnviarRelatorioRequest) error {
	data, err := time.Parse("2006-01-02", req.Data)
	if err != nil {
		return fmt.Errorf("data inválida: %w", err)
	}

	resumo, err := s.Resumo(ctx, usuarioID, &data)
	if err != nil {
		return err
	}

	if s.dispatcher == nil {
		return fmt.Errorf("envio de relatório indisponível")
	}
	return s.dispatcher.EnqueueRelatorio(ctx, worker.RelatorioJobPayload{
		Email:  req.Email,
		Resumo: *resumo,
	})
}
