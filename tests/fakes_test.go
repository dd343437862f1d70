package tests

// fakes_test.go
// In-memory repository implementations shared by the service tests.

import (
	"context"
	"errors"
	"time"

	"github.com/deivisontravizan/one-travvizan-sub000/internal/model"
	"github.com/deivisontravizan/one-travvizan-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var errNotFound = errors.New("not found")

// ── ComandaRepository ────────────────────────────────────────────────────────

type memComandaRepo struct {
	comandas   map[uuid.UUID]*model.Comanda
	clientes   []*model.ComandaCliente // insertion order = display order
	pagamentos []model.Pagamento
}

func newMemComandaRepo() *memComandaRepo {
	return &memComandaRepo{comandas: make(map[uuid.UUID]*model.Comanda)}
}

func (r *memComandaRepo) Create(_ context.Context, c *model.Comanda) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()
	r.comandas[c.ID] = c
	return nil
}

func (r *memComandaRepo) clientesDe(comandaID uuid.UUID) []model.ComandaCliente {
	var out []model.ComandaCliente
	for _, cc := range r.clientes {
		if cc.ComandaID != comandaID {
			continue
		}
		copia := *cc
		copia.Pagamentos = r.pagamentosDe(cc.ID)
		out = append(out, copia)
	}
	return out
}

func (r *memComandaRepo) pagamentosDe(clienteID uuid.UUID) []model.Pagamento {
	var out []model.Pagamento
	for _, p := range r.pagamentos {
		if p.ComandaClienteID == clienteID {
			out = append(out, p)
		}
	}
	return out
}

func (r *memComandaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Comanda, error) {
	c, ok := r.comandas[id]
	if !ok {
		return nil, errNotFound
	}
	copia := *c
	copia.Clientes = r.clientesDe(id)
	return &copia, nil
}

func (r *memComandaRepo) FindByUsuarioEData(_ context.Context, usuarioID uuid.UUID, data time.Time) (*model.Comanda, error) {
	for _, c := range r.comandas {
		if c.UsuarioID == usuarioID && mesmaData(c.Data, data) {
			copia := *c
			return &copia, nil
		}
	}
	return nil, errNotFound
}

func (r *memComandaRepo) ListByUsuario(_ context.Context, usuarioID uuid.UUID) ([]model.Comanda, error) {
	var out []model.Comanda
	for id, c := range r.comandas {
		if c.UsuarioID != usuarioID {
			continue
		}
		copia := *c
		copia.Clientes = r.clientesDe(id)
		out = append(out, copia)
	}
	return out, nil
}

func (r *memComandaRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string, valorFechamento *decimal.Decimal) error {
	c, ok := r.comandas[id]
	if !ok {
		return errNotFound
	}
	c.Status = status
	if valorFechamento != nil {
		c.ValorFechamento = valorFechamento
	}
	return nil
}

func (r *memComandaRepo) Update(_ context.Context, c *model.Comanda) error {
	r.comandas[c.ID] = c
	return nil
}

func (r *memComandaRepo) CreateCliente(_ context.Context, cc *model.ComandaCliente) error {
	if cc.ID == uuid.Nil {
		cc.ID = uuid.New()
	}
	cc.CreatedAt = time.Now()
	r.clientes = append(r.clientes, cc)
	return nil
}

func (r *memComandaRepo) FindClienteByID(_ context.Context, id uuid.UUID) (*model.ComandaCliente, error) {
	for _, cc := range r.clientes {
		if cc.ID == id {
			copia := *cc
			copia.Pagamentos = r.pagamentosDe(id)
			return &copia, nil
		}
	}
	return nil, errNotFound
}

func (r *memComandaRepo) FindClienteByAgendamento(_ context.Context, comandaID, agendamentoID uuid.UUID) (*model.ComandaCliente, error) {
	for _, cc := range r.clientes {
		if cc.ComandaID == comandaID && cc.AgendamentoID != nil && *cc.AgendamentoID == agendamentoID {
			copia := *cc
			copia.Pagamentos = r.pagamentosDe(cc.ID)
			return &copia, nil
		}
	}
	return nil, errNotFound
}

func (r *memComandaRepo) CreatePagamento(_ context.Context, p *model.Pagamento) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	r.pagamentos = append(r.pagamentos, *p)
	return nil
}

func (r *memComandaRepo) ListPagamentos(_ context.Context, comandaClienteID uuid.UUID) ([]model.Pagamento, error) {
	return r.pagamentosDe(comandaClienteID), nil
}

var _ repository.ComandaRepository = (*memComandaRepo)(nil)

func mesmaData(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// ── AgendamentoRepository ────────────────────────────────────────────────────

type memAgendamentoRepo struct {
	agendamentos []model.Agendamento
}

func (r *memAgendamentoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Agendamento, error) {
	for i := range r.agendamentos {
		if r.agendamentos[i].ID == id {
			copia := r.agendamentos[i]
			return &copia, nil
		}
	}
	return nil, errNotFound
}

func (r *memAgendamentoRepo) ListByData(_ context.Context, usuarioID uuid.UUID, data time.Time) ([]model.Agendamento, error) {
	var out []model.Agendamento
	for _, a := range r.agendamentos {
		if a.UsuarioID == usuarioID && mesmaData(a.Data, data) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memAgendamentoRepo) Create(_ context.Context, a *model.Agendamento) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.agendamentos = append(r.agendamentos, *a)
	return nil
}

var _ repository.AgendamentoRepository = (*memAgendamentoRepo)(nil)

// ── FinanceiroRepository ─────────────────────────────────────────────────────

type memFinanceiroRepo struct {
	registros []model.RegistroFinanceiro
	falha     error // when set, ListSinais fails (degradation path)
}

func (r *memFinanceiroRepo) ListSinais(_ context.Context, usuarioID uuid.UUID) ([]model.RegistroFinanceiro, error) {
	if r.falha != nil {
		return nil, r.falha
	}
	var out []model.RegistroFinanceiro
	for _, reg := range r.registros {
		if reg.UsuarioID == usuarioID && reg.Categoria == model.CategoriaSinal && reg.Tipo == model.TipoEntrada {
			out = append(out, reg)
		}
	}
	return out, nil
}

func (r *memFinanceiroRepo) Create(_ context.Context, reg *model.RegistroFinanceiro) error {
	if reg.ID == uuid.Nil {
		reg.ID = uuid.New()
	}
	r.registros = append(r.registros, *reg)
	return nil
}

var _ repository.FinanceiroRepository = (*memFinanceiroRepo)(nil)

// ── ClienteRepository ────────────────────────────────────────────────────────

type memClienteRepo struct {
	clientes map[uuid.UUID]*model.Cliente
}

func newMemClienteRepo() *memClienteRepo {
	return &memClienteRepo{clientes: make(map[uuid.UUID]*model.Cliente)}
}

func (r *memClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, errNotFound
	}
	return c, nil
}

func (r *memClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.clientes[c.ID] = c
	return nil
}

var _ repository.ClienteRepository = (*memClienteRepo)(nil)

// ── TaxasRepository ──────────────────────────────────────────────────────────

type memTaxasRepo struct {
	configs map[uuid.UUID]*model.ConfigTaxas
}

func newMemTaxasRepo() *memTaxasRepo {
	return &memTaxasRepo{configs: make(map[uuid.UUID]*model.ConfigTaxas)}
}

func (r *memTaxasRepo) FindByUsuario(_ context.Context, usuarioID uuid.UUID) (*model.ConfigTaxas, error) {
	cfg, ok := r.configs[usuarioID]
	if !ok {
		return nil, errNotFound
	}
	return cfg, nil
}

func (r *memTaxasRepo) Upsert(_ context.Context, cfg *model.ConfigTaxas) error {
	if cfg.ID == uuid.Nil {
		cfg.ID = uuid.New()
	}
	r.configs[cfg.UsuarioID] = cfg
	return nil
}

var _ repository.TaxasRepository = (*memTaxasRepo)(nil)

// ── UsuarioRepository ────────────────────────────────────────────────────────

type memUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

func newMemUsuarioRepo() *memUsuarioRepo {
	return &memUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (r *memUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.usuarios[u.ID] = u
	return nil
}

func (r *memUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Username == username && u.Ativo {
			return u, nil
		}
	}
	return nil, errNotFound
}

func (r *memUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, errNotFound
	}
	return u, nil
}

var _ repository.UsuarioRepository = (*memUsuarioRepo)(nil)
