package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/deivisontravizan/one-travvizan-sub000/internal/dto"
	"github.com/deivisontravizan/one-travvizan-sub000/internal/model"
	"github.com/deivisontravizan/one-travvizan-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrComandaFechada       = errors.New("comanda fechada: reabra antes de alterar")
	ErrValorInvalido        = errors.New("valor do pagamento deve ser maior que zero")
	ErrComandaNaoEncontrada = errors.New("comanda não encontrada")
	ErrLinhaNaoEncontrada   = errors.New("cliente da comanda não encontrado")
)

// nomeClienteDesconhecido is the placeholder used when the CRM lookup for an
// agendamento's cliente fails. The lookup failure never aborts the listing.
const nomeClienteDesconhecido = "Cliente não identificado"

type ComandaService interface {
	Abrir(ctx context.Context, usuarioID uuid.UUID, req dto.AbrirComandaRequest) (*dto.ComandaResponse, error)
	Obter(ctx context.Context, usuarioID, comandaID uuid.UUID) (*dto.ComandaResponse, error)
	Listar(ctx context.Context, usuarioID uuid.UUID, data *time.Time) ([]dto.ComandaResumo, error)
	AdicionarCliente(ctx context.Context, usuarioID, comandaID uuid.UUID, req dto.AdicionarClienteRequest) (*dto.ComandaClienteResponse, error)
	RegistrarPagamento(ctx context.Context, usuarioID, comandaID uuid.UUID, req dto.RegistrarPagamentoRequest) (*dto.ComandaClienteResponse, error)
	Fechar(ctx context.Context, usuarioID, comandaID uuid.UUID, req dto.FecharComandaRequest) error
	Reabrir(ctx context.Context, usuarioID, comandaID uuid.UUID) error
}

type comandaService struct {
	repo         repository.ComandaRepository
	agendamentos repository.AgendamentoRepository
	financeiro   repository.FinanceiroRepository
	clientes     repository.ClienteRepository
	taxas        TaxasService
}

func NewComandaService(
	repo repository.ComandaRepository,
	agendamentos repository.AgendamentoRepository,
	financeiro repository.FinanceiroRepository,
	clientes repository.ClienteRepository,
	taxas TaxasService,
) ComandaService {
	return &comandaService{
		repo:         repo,
		agendamentos: agendamentos,
		financeiro:   financeiro,
		clientes:     clientes,
		taxas:        taxas,
	}
}

// ── Abrir ─────────────────────────────────────────────────────────────────────

func (s *comandaService) Abrir(ctx context.Context, usuarioID uuid.UUID, req dto.AbrirComandaRequest) (*dto.ComandaResponse, error) {
	data, err := time.Parse("2006-01-02", req.Data)
	if err != nil {
		return nil, fmt.Errorf("data inválida: %w", err)
	}

	// One comanda per operator per date is a convention, not a constraint —
	// a second one on the same day is allowed but worth flagging.
	if existente, err := s.repo.FindByUsuarioEData(ctx, usuarioID, data); err == nil && existente != nil {
		log.Warn().
			Str("usuario_id", usuarioID.String()).
			Str("data", req.Data).
			Msg("comanda: já existe comanda para esta data")
	}

	comanda := &model.Comanda{
		UsuarioID:    usuarioID,
		Data:         data,
		ValorInicial: req.ValorInicial,
		Status:       "aberta",
	}
	if err := s.repo.Create(ctx, comanda); err != nil {
		return nil, err
	}
	return s.Obter(ctx, usuarioID, comanda.ID)
}

// ── Obter ─────────────────────────────────────────────────────────────────────
// The register view: persisted lines merged with transient candidates
// synthesized from same-day agendamentos, each carrying its reconciliation.

func (s *comandaService) Obter(ctx context.Context, usuarioID, comandaID uuid.UUID) (*dto.ComandaResponse, error) {
	comanda, err := s.obterDoOperador(ctx, usuarioID, comandaID)
	if err != nil {
		return nil, err
	}

	sinais := s.carregarSinais(ctx, comanda.UsuarioID)

	linhas := make([]dto.ComandaClienteResponse, 0, len(comanda.Clientes))
	agendados := make(map[uuid.UUID]bool)
	for i := range comanda.Clientes {
		cc := &comanda.Clientes[i]
		if cc.AgendamentoID != nil {
			agendados[*cc.AgendamentoID] = true
		}
		linhas = append(linhas, buildLinha(cc, sinais))
	}

	linhas = append(linhas, s.materializarAgendamentos(ctx, usuarioID, comanda, agendados, sinais)...)

	resp := comandaToResponse(comanda)
	resp.Clientes = linhas
	resp.Totais = CalcularTotais(linhas)
	return resp, nil
}

// materializarAgendamentos produces transient line candidates for every
// same-day agendamento not yet represented on the comanda. They exist only in
// the response — storage is untouched until a payment promotes them.
func (s *comandaService) materializarAgendamentos(ctx context.Context, usuarioID uuid.UUID, comanda *model.Comanda, agendados map[uuid.UUID]bool, sinais []model.RegistroFinanceiro) []dto.ComandaClienteResponse {
	ags, err := s.agendamentos.ListByData(ctx, usuarioID, comanda.Data)
	if err != nil {
		log.Warn().Err(err).Msg("comanda: falha ao listar agendamentos do dia")
		return nil
	}

	var linhas []dto.ComandaClienteResponse
	for _, ag := range ags {
		if agendados[ag.ID] {
			continue
		}
		agID := ag.ID
		clienteID := ag.ClienteID
		candidato := model.ComandaCliente{
			ComandaID:     comanda.ID,
			ClienteID:     &clienteID,
			AgendamentoID: &agID,
			Nome:          s.resolverNome(ctx, ag.ClienteID),
			Descricao:     ag.Descricao,
			ValorTotal:    ag.Valor,
		}
		linha := buildLinha(&candidato, sinais)
		linha.ID = nil
		linha.Transiente = true
		linha.CreatedAt = nil
		linhas = append(linhas, linha)
	}
	return linhas
}

// ── Listar ────────────────────────────────────────────────────────────────────

func (s *comandaService) Listar(ctx context.Context, usuarioID uuid.UUID, data *time.Time) ([]dto.ComandaResumo, error) {
	comandas, err := s.repo.ListByUsuario(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	comandas = FiltrarPorData(comandas, data)

	sinais := s.carregarSinais(ctx, usuarioID)

	resumos := make([]dto.ComandaResumo, 0, len(comandas))
	for i := range comandas {
		c := &comandas[i]
		linhas := make([]dto.ComandaClienteResponse, 0, len(c.Clientes))
		for j := range c.Clientes {
			linhas = append(linhas, buildLinha(&c.Clientes[j], sinais))
		}
		resumos = append(resumos, dto.ComandaResumo{
			ID:           c.ID.String(),
			Data:         c.Data.Format("2006-01-02"),
			Status:       c.Status,
			ValorInicial: c.ValorInicial,
			Totais:       CalcularTotais(linhas),
		})
	}
	return resumos, nil
}

// ── AdicionarCliente ──────────────────────────────────────────────────────────

func (s *comandaService) AdicionarCliente(ctx context.Context, usuarioID, comandaID uuid.UUID, req dto.AdicionarClienteRequest) (*dto.ComandaClienteResponse, error) {
	comanda, err := s.obterDoOperador(ctx, usuarioID, comandaID)
	if err != nil {
		return nil, err
	}
	if comanda.Status != "aberta" {
		return nil, ErrComandaFechada
	}

	cc := &model.ComandaCliente{
		ComandaID:  comandaID,
		Nome:       req.Nome,
		Descricao:  req.Descricao,
		ValorTotal: req.ValorTotal,
	}
	if req.ClienteID != nil {
		id, err := uuid.Parse(*req.ClienteID)
		if err != nil {
			return nil, fmt.Errorf("cliente_id inválido: %w", err)
		}
		cc.ClienteID = &id
	}
	if req.AgendamentoID != nil {
		id, err := uuid.Parse(*req.AgendamentoID)
		if err != nil {
			return nil, fmt.Errorf("agendamento_id inválido: %w", err)
		}
		cc.AgendamentoID = &id
	}

	if err := s.repo.CreateCliente(ctx, cc); err != nil {
		return nil, err
	}

	linha := buildLinha(cc, s.carregarSinais(ctx, comanda.UsuarioID))
	return &linha, nil
}

// ── RegistrarPagamento ────────────────────────────────────────────────────────
// Targets a persisted line or, via agendamento_id, a transient one — which is
// promoted (persisted) before the payment is written. The line's settlement
// status is never stored; reconciliation recomputes it on the way out.

func (s *comandaService) RegistrarPagamento(ctx context.Context, usuarioID, comandaID uuid.UUID, req dto.RegistrarPagamentoRequest) (*dto.ComandaClienteResponse, error) {
	comanda, err := s.obterDoOperador(ctx, usuarioID, comandaID)
	if err != nil {
		return nil, err
	}
	if comanda.Status != "aberta" {
		return nil, ErrComandaFechada
	}

	cc, err := s.resolverLinha(ctx, comanda, req)
	if err != nil {
		return nil, err
	}

	cfg := s.taxas.ConfigDoOperador(ctx, usuarioID)
	parcelas := 0
	if req.Metodo == model.MetodoCreditoParcelado && req.Parcelas != nil {
		parcelas = *req.Parcelas
	}

	valores, err := CalcularPagamento(req.Valor, req.Metodo, parcelas, req.TaxaCliente, cfg)
	if err != nil {
		return nil, err
	}
	if !valores.Bruto.IsPositive() || !valores.Liquido.IsPositive() {
		return nil, ErrValorInvalido
	}

	pagamento := &model.Pagamento{
		ComandaClienteID: cc.ID,
		Metodo:           req.Metodo,
		ValorBruto:       valores.Bruto,
		ValorTaxa:        valores.Taxa,
		ValorLiquido:     valores.Liquido,
		TaxaCliente:      req.TaxaCliente,
	}
	if parcelas > 0 {
		pagamento.Parcelas = &parcelas
	}
	if err := s.repo.CreatePagamento(ctx, pagamento); err != nil {
		return nil, err
	}

	atualizado, err := s.repo.FindClienteByID(ctx, cc.ID)
	if err != nil {
		return nil, err
	}
	linha := buildLinha(atualizado, s.carregarSinais(ctx, comanda.UsuarioID))
	return &linha, nil
}

// resolverLinha finds the payment's target line, promoting a transient
// agendamento candidate into a persisted line when needed.
func (s *comandaService) resolverLinha(ctx context.Context, comanda *model.Comanda, req dto.RegistrarPagamentoRequest) (*model.ComandaCliente, error) {
	if req.ComandaClienteID != nil {
		id, err := uuid.Parse(*req.ComandaClienteID)
		if err != nil {
			return nil, fmt.Errorf("comanda_cliente_id inválido: %w", err)
		}
		cc, err := s.repo.FindClienteByID(ctx, id)
		if err != nil || cc.ComandaID != comanda.ID {
			return nil, ErrLinhaNaoEncontrada
		}
		return cc, nil
	}

	if req.AgendamentoID == nil {
		return nil, ErrLinhaNaoEncontrada
	}
	agID, err := uuid.Parse(*req.AgendamentoID)
	if err != nil {
		return nil, fmt.Errorf("agendamento_id inválido: %w", err)
	}

	// Already promoted by an earlier payment?
	if cc, err := s.repo.FindClienteByAgendamento(ctx, comanda.ID, agID); err == nil {
		return cc, nil
	}

	ag, err := s.agendamentos.FindByID(ctx, agID)
	if err != nil {
		return nil, ErrLinhaNaoEncontrada
	}
	clienteID := ag.ClienteID
	cc := &model.ComandaCliente{
		ComandaID:     comanda.ID,
		ClienteID:     &clienteID,
		AgendamentoID: &agID,
		Nome:          s.resolverNome(ctx, ag.ClienteID),
		Descricao:     ag.Descricao,
		ValorTotal:    ag.Valor,
	}
	if err := s.repo.CreateCliente(ctx, cc); err != nil {
		return nil, err
	}
	return cc, nil
}

// ── Fechar / Reabrir ──────────────────────────────────────────────────────────
// Pure status flips. Closing does NOT require every line to be settled —
// partially paid comandas close normally at end of day.

func (s *comandaService) Fechar(ctx context.Context, usuarioID, comandaID uuid.UUID, req dto.FecharComandaRequest) error {
	comanda, err := s.obterDoOperador(ctx, usuarioID, comandaID)
	if err != nil {
		return err
	}
	if comanda.Status == "fechada" {
		return errors.New("comanda já está fechada")
	}
	return s.repo.UpdateStatus(ctx, comandaID, "fechada", req.ValorFechamento)
}

func (s *comandaService) Reabrir(ctx context.Context, usuarioID, comandaID uuid.UUID) error {
	comanda, err := s.obterDoOperador(ctx, usuarioID, comandaID)
	if err != nil {
		return err
	}
	if comanda.Status == "aberta" {
		return errors.New("comanda já está aberta")
	}
	return s.repo.UpdateStatus(ctx, comandaID, "aberta", nil)
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// obterDoOperador loads a comanda and hides it from anyone but its owner.
// A mismatch reads the same as a missing comanda so ids are not probeable.
func (s *comandaService) obterDoOperador(ctx context.Context, usuarioID, comandaID uuid.UUID) (*model.Comanda, error) {
	comanda, err := s.repo.FindByID(ctx, comandaID)
	if err != nil || comanda.UsuarioID != usuarioID {
		return nil, ErrComandaNaoEncontrada
	}
	return comanda, nil
}

func (s *comandaService) carregarSinais(ctx context.Context, usuarioID uuid.UUID) []model.RegistroFinanceiro {
	sinais, err := s.financeiro.ListSinais(ctx, usuarioID)
	if err != nil {
		// Reconciliation still works without sinais; balances just show higher.
		log.Warn().Err(err).Msg("comanda: falha ao carregar sinais do financeiro")
		return nil
	}
	return sinais
}

func (s *comandaService) resolverNome(ctx context.Context, clienteID uuid.UUID) string {
	cliente, err := s.clientes.FindByID(ctx, clienteID)
	if err != nil {
		log.Warn().
			Str("cliente_id", clienteID.String()).
			Msg("comanda: cliente do agendamento não encontrado")
		return nomeClienteDesconhecido
	}
	return cliente.Nome
}

func buildLinha(cc *model.ComandaCliente, sinais []model.RegistroFinanceiro) dto.ComandaClienteResponse {
	conc := Conciliar(cc, cc.Pagamentos, sinais)

	pagamentos := make([]dto.PagamentoResponse, 0, len(cc.Pagamentos))
	for _, p := range cc.Pagamentos {
		pagamentos = append(pagamentos, dto.PagamentoResponse{
			ID:           p.ID.String(),
			Metodo:       p.Metodo,
			ValorBruto:   p.ValorBruto,
			ValorTaxa:    p.ValorTaxa,
			ValorLiquido: p.ValorLiquido,
			Parcelas:     p.Parcelas,
			TaxaCliente:  p.TaxaCliente,
			CreatedAt:    p.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	linha := dto.ComandaClienteResponse{
		Nome:       cc.Nome,
		Descricao:  cc.Descricao,
		ValorTotal: cc.ValorTotal,
		Pagamentos: pagamentos,
		Conciliacao: dto.ConciliacaoResponse{
			PagoComanda:   conc.PagoComanda,
			Sinal:         conc.Sinal,
			TotalRecebido: conc.TotalRecebido,
			SaldoRestante: conc.SaldoRestante,
			Status:        conc.Status(),
		},
	}
	if cc.ID != uuid.Nil {
		id := cc.ID.String()
		linha.ID = &id
		createdAt := cc.CreatedAt.UTC().Format(time.RFC3339)
		linha.CreatedAt = &createdAt
	}
	if cc.ClienteID != nil {
		id := cc.ClienteID.String()
		linha.ClienteID = &id
	}
	if cc.AgendamentoID != nil {
		id := cc.AgendamentoID.String()
		linha.AgendamentoID = &id
	}
	return linha
}

func comandaToResponse(c *model.Comanda) *dto.ComandaResponse {
	return &dto.ComandaResponse{
		ID:              c.ID.String(),
		Data:            c.Data.Format("2006-01-02"),
		Status:          c.Status,
		ValorInicial:    c.ValorInicial,
		ValorFechamento: c.ValorFechamento,
		CreatedAt:       c.CreatedAt.UTC().Format(time.RFC3339),
	}
}
