package tests

import (
	"context"
	"testing"
	"time"

	"github.com/deivisontravizan/one-travvizan-sub000/internal/dto"
	"github.com/deivisontravizan/one-travvizan-sub000/internal/model"
	"github.com/deivisontravizan/one-travvizan-sub000/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Harness ──────────────────────────────────────────────────────────────────

type comandaEnv struct {
	svc          service.ComandaService
	repo         *memComandaRepo
	agendamentos *memAgendamentoRepo
	financeiro   *memFinanceiroRepo
	clientes     *memClienteRepo
	taxas        *memTaxasRepo
	usuarioID    uuid.UUID
}

func newComandaEnv() *comandaEnv {
	env := &comandaEnv{
		repo:         newMemComandaRepo(),
		agendamentos: &memAgendamentoRepo{},
		financeiro:   &memFinanceiroRepo{},
		clientes:     newMemClienteRepo(),
		taxas:        newMemTaxasRepo(),
		usuarioID:    uuid.New(),
	}
	taxasSvc := service.NewTaxasService(env.taxas, nil)
	env.svc = service.NewComandaService(env.repo, env.agendamentos, env.financeiro, env.clientes, taxasSvc)
	return env
}

func (e *comandaEnv) abrir(t *testing.T, data string, valorInicial float64) *dto.ComandaResponse {
	t.Helper()
	resp, err := e.svc.Abrir(context.Background(), e.usuarioID, dto.AbrirComandaRequest{
		Data:         data,
		ValorInicial: decimal.NewFromFloat(valorInicial),
	})
	require.NoError(t, err)
	return resp
}

func (e *comandaEnv) adicionarCliente(t *testing.T, comandaID string, nome string, total float64) *dto.ComandaClienteResponse {
	t.Helper()
	linha, err := e.svc.AdicionarCliente(context.Background(), e.usuarioID, uuid.MustParse(comandaID), dto.AdicionarClienteRequest{
		Nome:       nome,
		ValorTotal: decimal.NewFromFloat(total),
	})
	require.NoError(t, err)
	return linha
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestAbrirComanda(t *testing.T) {
	env := newComandaEnv()

	resp := env.abrir(t, "2026-08-30", 150)

	assert.Equal(t, "aberta", resp.Status)
	assert.Equal(t, "2026-08-30", resp.Data)
	assert.Equal(t, "150", resp.ValorInicial.String())
	assert.Empty(t, resp.Clientes)
}

func TestAbrirComandaDataInvalida(t *testing.T) {
	env := newComandaEnv()
	_, err := env.svc.Abrir(context.Background(), env.usuarioID, dto.AbrirComandaRequest{
		Data: "30/08/2026",
	})
	assert.Error(t, err)
}

func TestAbrirSegundaComandaNoMesmoDiaPermitido(t *testing.T) {
	// Uma comanda por operador por dia é convenção, não restrição
	env := newComandaEnv()
	env.abrir(t, "2026-08-30", 100)
	resp := env.abrir(t, "2026-08-30", 50)
	assert.Equal(t, "aberta", resp.Status)
}

func TestAdicionarClienteEObter(t *testing.T) {
	env := newComandaEnv()
	comanda := env.abrir(t, "2026-08-30", 0)

	env.adicionarCliente(t, comanda.ID, "Ana", 300)
	env.adicionarCliente(t, comanda.ID, "Bruno", 450)

	resp, err := env.svc.Obter(context.Background(), env.usuarioID, uuid.MustParse(comanda.ID))
	require.NoError(t, err)
	require.Len(t, resp.Clientes, 2)
	// Ordem de inserção preservada
	assert.Equal(t, "Ana", resp.Clientes[0].Nome)
	assert.Equal(t, "Bruno", resp.Clientes[1].Nome)
	assert.Equal(t, "750", resp.Totais.ServicosBrutos.String())
	assert.Equal(t, "750", resp.Totais.SaldoPendente.String())
}

func TestComandaFechadaRejeitaAlteracoes(t *testing.T) {
	env := newComandaEnv()
	comanda := env.abrir(t, "2026-08-30", 0)
	linha := env.adicionarCliente(t, comanda.ID, "Carla", 200)
	comandaID := uuid.MustParse(comanda.ID)

	require.NoError(t, env.svc.Fechar(context.Background(), env.usuarioID, comandaID, dto.FecharComandaRequest{}))

	_, err := env.svc.AdicionarCliente(context.Background(), env.usuarioID, comandaID, dto.AdicionarClienteRequest{
		Nome: "Diego", ValorTotal: decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, service.ErrComandaFechada)

	_, err = env.svc.RegistrarPagamento(context.Background(), env.usuarioID, comandaID, dto.RegistrarPagamentoRequest{
		ComandaClienteID: linha.ID,
		Metodo:           model.MetodoPix,
		Valor:            decimal.NewFromInt(200),
	})
	assert.ErrorIs(t, err, service.ErrComandaFechada)
}

func TestReabrirPermiteCorrecao(t *testing.T) {
	env := newComandaEnv()
	comanda := env.abrir(t, "2026-08-30", 0)
	linha := env.adicionarCliente(t, comanda.ID, "Elisa", 200)
	comandaID := uuid.MustParse(comanda.ID)

	require.NoError(t, env.svc.Fechar(context.Background(), env.usuarioID, comandaID, dto.FecharComandaRequest{}))
	require.NoError(t, env.svc.Reabrir(context.Background(), env.usuarioID, comandaID))

	// Depois de reaberta o pagamento entra normalmente
	atualizada, err := env.svc.RegistrarPagamento(context.Background(), env.usuarioID, comandaID, dto.RegistrarPagamentoRequest{
		ComandaClienteID: linha.ID,
		Metodo:           model.MetodoDinheiro,
		Valor:            decimal.NewFromInt(200),
	})
	require.NoError(t, err)
	assert.Equal(t, service.StatusQuitado, atualizada.Conciliacao.Status)
}

func TestFecharDuasVezesFalha(t *testing.T) {
	env := newComandaEnv()
	comanda := env.abrir(t, "2026-08-30", 0)
	comandaID := uuid.MustParse(comanda.ID)

	require.NoError(t, env.svc.Fechar(context.Background(), env.usuarioID, comandaID, dto.FecharComandaRequest{}))
	err := env.svc.Fechar(context.Background(), env.usuarioID, comandaID, dto.FecharComandaRequest{})
	assert.ErrorContains(t, err, "já está fechada")
}

func TestFecharComPendenciasEhPermitido(t *testing.T) {
	// Fechamento de fim de dia não exige linhas quitadas
	env := newComandaEnv()
	comanda := env.abrir(t, "2026-08-30", 100)
	linha := env.adicionarCliente(t, comanda.ID, "Fabio", 500)
	comandaID := uuid.MustParse(comanda.ID)

	_, err := env.svc.RegistrarPagamento(context.Background(), env.usuarioID, comandaID, dto.RegistrarPagamentoRequest{
		ComandaClienteID: linha.ID,
		Metodo:           model.MetodoPix,
		Valor:            decimal.NewFromInt(200),
	})
	require.NoError(t, err)

	fechamento := decimal.NewFromFloat(300)
	require.NoError(t, env.svc.Fechar(context.Background(), env.usuarioID, comandaID, dto.FecharComandaRequest{
		ValorFechamento: &fechamento,
	}))

	resp, err := env.svc.Obter(context.Background(), env.usuarioID, comandaID)
	require.NoError(t, err)
	assert.Equal(t, "fechada", resp.Status)
	require.NotNil(t, resp.ValorFechamento)
	assert.Equal(t, "300", resp.ValorFechamento.String())
	// A pendência continua visível
	assert.Equal(t, "300", resp.Totais.SaldoPendente.String())
}

func TestRegistrarPagamentoComTaxa(t *testing.T) {
	env := newComandaEnv()
	comanda := env.abrir(t, "2026-08-30", 0)
	linha := env.adicionarCliente(t, comanda.ID, "Gustavo", 100)

	atualizada, err := env.svc.RegistrarPagamento(context.Background(), env.usuarioID, uuid.MustParse(comanda.ID), dto.RegistrarPagamentoRequest{
		ComandaClienteID: linha.ID,
		Metodo:           model.MetodoCreditoVista,
		Valor:            decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	require.Len(t, atualizada.Pagamentos, 1)
	p := atualizada.Pagamentos[0]
	assert.Equal(t, "100", p.ValorBruto.String())
	assert.Equal(t, "3.5", p.ValorTaxa.String())
	assert.Equal(t, "96.5", p.ValorLiquido.String())
	// 96.5 recebidos de 100 → fora da tolerância → pendente
	assert.Equal(t, service.StatusPendente, atualizada.Conciliacao.Status)
	assert.Equal(t, "3.5", atualizada.Conciliacao.SaldoRestante.String())
}

func TestRegistrarPagamentoValorNaoPositivo(t *testing.T) {
	env := newComandaEnv()
	comanda := env.abrir(t, "2026-08-30", 0)
	linha := env.adicionarCliente(t, comanda.ID, "Helena", 100)

	_, err := env.svc.RegistrarPagamento(context.Background(), env.usuarioID, uuid.MustParse(comanda.ID), dto.RegistrarPagamentoRequest{
		ComandaClienteID: linha.ID,
		Metodo:           model.MetodoPix,
		Valor:            decimal.Zero,
	})
	assert.ErrorIs(t, err, service.ErrValorInvalido)
	assert.Empty(t, env.repo.pagamentos)
}

func TestObterMaterializaAgendamentosDoDia(t *testing.T) {
	env := newComandaEnv()

	cliente := &model.Cliente{Nome: "Igor"}
	require.NoError(t, env.clientes.Create(context.Background(), cliente))

	dia := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	ag := &model.Agendamento{
		UsuarioID: env.usuarioID,
		ClienteID: cliente.ID,
		Data:      dia,
		Valor:     decimal.NewFromInt(400),
		Descricao: "Fechamento de braço",
	}
	require.NoError(t, env.agendamentos.Create(context.Background(), ag))

	comanda := env.abrir(t, "2026-08-30", 0)

	resp, err := env.svc.Obter(context.Background(), env.usuarioID, uuid.MustParse(comanda.ID))
	require.NoError(t, err)
	require.Len(t, resp.Clientes, 1)

	transiente := resp.Clientes[0]
	assert.True(t, transiente.Transiente)
	assert.Nil(t, transiente.ID)
	assert.Equal(t, "Igor", transiente.Nome)
	assert.Equal(t, "400", transiente.ValorTotal.String())
	// Nada foi persistido
	assert.Empty(t, env.repo.clientes)
}

func TestPagamentoPromoveLinhaTransiente(t *testing.T) {
	env := newComandaEnv()

	cliente := &model.Cliente{Nome: "Joana"}
	require.NoError(t, env.clientes.Create(context.Background(), cliente))

	dia := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	ag := &model.Agendamento{
		UsuarioID: env.usuarioID,
		ClienteID: cliente.ID,
		Data:      dia,
		Valor:     decimal.NewFromInt(250),
	}
	require.NoError(t, env.agendamentos.Create(context.Background(), ag))

	comanda := env.abrir(t, "2026-08-30", 0)
	comandaID := uuid.MustParse(comanda.ID)
	agID := ag.ID.String()

	linha, err := env.svc.RegistrarPagamento(context.Background(), env.usuarioID, comandaID, dto.RegistrarPagamentoRequest{
		AgendamentoID: &agID,
		Metodo:        model.MetodoDinheiro,
		Valor:         decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	require.NotNil(t, linha.ID)
	assert.False(t, linha.Transiente)
	assert.Len(t, env.repo.clientes, 1)

	// Segundo pagamento reutiliza a linha promovida em vez de duplicá-la
	_, err = env.svc.RegistrarPagamento(context.Background(), env.usuarioID, comandaID, dto.RegistrarPagamentoRequest{
		AgendamentoID: &agID,
		Metodo:        model.MetodoPix,
		Valor:         decimal.NewFromInt(150),
	})
	require.NoError(t, err)
	assert.Len(t, env.repo.clientes, 1)
	assert.Len(t, env.repo.pagamentos, 2)

	// A linha some da lista de transientes no Obter
	resp, err := env.svc.Obter(context.Background(), env.usuarioID, comandaID)
	require.NoError(t, err)
	require.Len(t, resp.Clientes, 1)
	assert.False(t, resp.Clientes[0].Transiente)
	assert.Equal(t, service.StatusQuitado, resp.Clientes[0].Conciliacao.Status)
}

func TestSinalDoAgendamentoEntraNaConciliacao(t *testing.T) {
	env := newComandaEnv()

	cliente := &model.Cliente{Nome: "Karen"}
	require.NoError(t, env.clientes.Create(context.Background(), cliente))

	dia := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	ag := &model.Agendamento{
		UsuarioID: env.usuarioID,
		ClienteID: cliente.ID,
		Data:      dia,
		Valor:     decimal.NewFromInt(300),
	}
	require.NoError(t, env.agendamentos.Create(context.Background(), ag))

	agID := ag.ID
	require.NoError(t, env.financeiro.Create(context.Background(), &model.RegistroFinanceiro{
		UsuarioID:     env.usuarioID,
		AgendamentoID: &agID,
		Categoria:     model.CategoriaSinal,
		Tipo:          model.TipoEntrada,
		Valor:         decimal.NewFromInt(100),
	}))

	comanda := env.abrir(t, "2026-08-30", 0)
	agIDStr := ag.ID.String()

	linha, err := env.svc.RegistrarPagamento(context.Background(), env.usuarioID, uuid.MustParse(comanda.ID), dto.RegistrarPagamentoRequest{
		AgendamentoID: &agIDStr,
		Metodo:        model.MetodoDinheiro,
		Valor:         decimal.NewFromInt(200),
	})
	require.NoError(t, err)

	assert.Equal(t, "100", linha.Conciliacao.Sinal.String())
	assert.Equal(t, "300", linha.Conciliacao.TotalRecebido.String())
	assert.Equal(t, service.StatusQuitado, linha.Conciliacao.Status)
}

func TestFinanceiroIndisponivelDegradaSemSinais(t *testing.T) {
	// Falha no módulo financeiro não derruba a comanda — os saldos apenas
	// aparecem maiores até o financeiro voltar
	env := newComandaEnv()
	env.financeiro.falha = errNotFound

	comanda := env.abrir(t, "2026-08-30", 0)
	env.adicionarCliente(t, comanda.ID, "Lia", 100)

	resp, err := env.svc.Obter(context.Background(), env.usuarioID, uuid.MustParse(comanda.ID))
	require.NoError(t, err)
	require.Len(t, resp.Clientes, 1)
	assert.True(t, resp.Clientes[0].Conciliacao.Sinal.IsZero())
}

func TestClienteDoAgendamentoSemCadastro(t *testing.T) {
	// Agendamento cujo cliente sumiu do CRM vira linha com nome placeholder
	env := newComandaEnv()

	dia := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	ag := &model.Agendamento{
		UsuarioID: env.usuarioID,
		ClienteID: uuid.New(), // não existe no CRM
		Data:      dia,
		Valor:     decimal.NewFromInt(150),
	}
	require.NoError(t, env.agendamentos.Create(context.Background(), ag))

	comanda := env.abrir(t, "2026-08-30", 0)
	resp, err := env.svc.Obter(context.Background(), env.usuarioID, uuid.MustParse(comanda.ID))
	require.NoError(t, err)
	require.Len(t, resp.Clientes, 1)
	assert.Equal(t, "Cliente não identificado", resp.Clientes[0].Nome)
}

func TestObterComandaInexistente(t *testing.T) {
	env := newComandaEnv()
	_, err := env.svc.Obter(context.Background(), env.usuarioID, uuid.New())
	assert.ErrorIs(t, err, service.ErrComandaNaoEncontrada)
}

func TestComandaDeOutroOperadorNaoEhVisivel(t *testing.T) {
	// Um operador autenticado não enxerga nem altera a comanda de outro —
	// o mismatch responde como comanda inexistente
	env := newComandaEnv()

	cliente := &model.Cliente{Nome: "Nina"}
	require.NoError(t, env.clientes.Create(context.Background(), cliente))

	dia := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	ag := &model.Agendamento{
		UsuarioID: env.usuarioID,
		ClienteID: cliente.ID,
		Data:      dia,
		Valor:     decimal.NewFromInt(300),
	}
	require.NoError(t, env.agendamentos.Create(context.Background(), ag))
	agID := ag.ID
	require.NoError(t, env.financeiro.Create(context.Background(), &model.RegistroFinanceiro{
		UsuarioID:     env.usuarioID,
		AgendamentoID: &agID,
		Categoria:     model.CategoriaSinal,
		Tipo:          model.TipoEntrada,
		Valor:         decimal.NewFromInt(100),
	}))

	comanda := env.abrir(t, "2026-08-30", 0)
	comandaID := uuid.MustParse(comanda.ID)
	agIDStr := ag.ID.String()
	linha, err := env.svc.RegistrarPagamento(context.Background(), env.usuarioID, comandaID, dto.RegistrarPagamentoRequest{
		AgendamentoID: &agIDStr,
		Metodo:        model.MetodoPix,
		Valor:         decimal.NewFromInt(200),
	})
	require.NoError(t, err)

	intruso := uuid.New()

	_, err = env.svc.Obter(context.Background(), intruso, comandaID)
	assert.ErrorIs(t, err, service.ErrComandaNaoEncontrada)

	_, err = env.svc.AdicionarCliente(context.Background(), intruso, comandaID, dto.AdicionarClienteRequest{
		Nome: "Penetra", ValorTotal: decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, service.ErrComandaNaoEncontrada)

	_, err = env.svc.RegistrarPagamento(context.Background(), intruso, comandaID, dto.RegistrarPagamentoRequest{
		ComandaClienteID: linha.ID,
		Metodo:           model.MetodoPix,
		Valor:            decimal.NewFromInt(50),
	})
	assert.ErrorIs(t, err, service.ErrComandaNaoEncontrada)

	assert.ErrorIs(t, env.svc.Fechar(context.Background(), intruso, comandaID, dto.FecharComandaRequest{}), service.ErrComandaNaoEncontrada)
	assert.ErrorIs(t, env.svc.Reabrir(context.Background(), intruso, comandaID), service.ErrComandaNaoEncontrada)

	// A visão do dono segue íntegra: sinal conciliado, linha quitada
	resp, err := env.svc.Obter(context.Background(), env.usuarioID, comandaID)
	require.NoError(t, err)
	require.Len(t, resp.Clientes, 1)
	assert.Equal(t, "100", resp.Clientes[0].Conciliacao.Sinal.String())
	assert.Equal(t, service.StatusQuitado, resp.Clientes[0].Conciliacao.Status)
	assert.Equal(t, "aberta", resp.Status)
}

func TestLinhaCreatedAtEmUTC(t *testing.T) {
	// Timestamps saem em RFC3339 no instante correto mesmo quando o banco
	// devolve horário com fuso local
	env := newComandaEnv()
	comanda := env.abrir(t, "2026-08-30", 0)
	env.adicionarCliente(t, comanda.ID, "Otto", 100)

	brt := time.FixedZone("BRT", -3*3600)
	env.repo.clientes[0].CreatedAt = time.Date(2026, 8, 30, 12, 0, 0, 0, brt)

	resp, err := env.svc.Obter(context.Background(), env.usuarioID, uuid.MustParse(comanda.ID))
	require.NoError(t, err)
	require.Len(t, resp.Clientes, 1)
	require.NotNil(t, resp.Clientes[0].CreatedAt)
	assert.Equal(t, "2026-08-30T15:00:00Z", *resp.Clientes[0].CreatedAt)

	ts, err := time.Parse(time.RFC3339, *resp.Clientes[0].CreatedAt)
	require.NoError(t, err)
	assert.True(t, ts.Equal(time.Date(2026, 8, 30, 15, 0, 0, 0, time.UTC)))
}

func TestRegistrarPagamentoLinhaDeOutraComanda(t *testing.T) {
	env := newComandaEnv()
	primeira := env.abrir(t, "2026-08-29", 0)
	segunda := env.abrir(t, "2026-08-30", 0)
	linha := env.adicionarCliente(t, primeira.ID, "Marcos", 100)

	_, err := env.svc.RegistrarPagamento(context.Background(), env.usuarioID, uuid.MustParse(segunda.ID), dto.RegistrarPagamentoRequest{
		ComandaClienteID: linha.ID,
		Metodo:           model.MetodoPix,
		Valor:            decimal.NewFromInt(50),
	})
	assert.ErrorIs(t, err, service.ErrLinhaNaoEncontrada)
}
