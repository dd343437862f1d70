package repository

import (
	"context"
	"time"

	"github.com/deivisontravizan/one-travvizan-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ComandaRepository interface {
	Create(ctx context.Context, c *model.Comanda) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Comanda, error)
	FindByUsuarioEData(ctx context.Context, usuarioID uuid.UUID, data time.Time) (*model.Comanda, error)
	ListByUsuario(ctx context.Context, usuarioID uuid.UUID) ([]model.Comanda, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, valorFechamento *decimal.Decimal) error
	Update(ctx context.Context, c *model.Comanda) error

	CreateCliente(ctx context.Context, cc *model.ComandaCliente) error
	FindClienteByID(ctx context.Context, id uuid.UUID) (*model.ComandaCliente, error)
	FindClienteByAgendamento(ctx context.Context, comandaID, agendamentoID uuid.UUID) (*model.ComandaCliente, error)

	CreatePagamento(ctx context.Context, p *model.Pagamento) error
	ListPagamentos(ctx context.Context, comandaClienteID uuid.UUID) ([]model.Pagamento, error)
}

type comandaRepo struct{ db *gorm.DB }

func NewComandaRepository(db *gorm.DB) ComandaRepository { return &comandaRepo{db: db} }

func (r *comandaRepo) Create(ctx context.Context, c *model.Comanda) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *comandaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Comanda, error) {
	var c model.Comanda
	err := r.db.WithContext(ctx).
		Preload("Clientes", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Clientes.Pagamentos").
		First(&c, id).Error
	return &c, err
}

func (r *comandaRepo) FindByUsuarioEData(ctx context.Context, usuarioID uuid.UUID, data time.Time) (*model.Comanda, error) {
	var c model.Comanda
	err := r.db.WithContext(ctx).
		Where("usuario_id = ? AND data = ?", usuarioID, data.Format("2006-01-02")).
		First(&c).Error
	return &c, err
}

func (r *comandaRepo) ListByUsuario(ctx context.Context, usuarioID uuid.UUID) ([]model.Comanda, error) {
	var comandas []model.Comanda
	err := r.db.WithContext(ctx).
		Preload("Clientes", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Clientes.Pagamentos").
		Where("usuario_id = ?", usuarioID).
		Order("data DESC").
		Find(&comandas).Error
	return comandas, err
}

func (r *comandaRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string, valorFechamento *decimal.Decimal) error {
	updates := map[string]interface{}{"status": status}
	if valorFechamento != nil {
		updates["valor_fechamento"] = *valorFechamento
	}
	return r.db.WithContext(ctx).Model(&model.Comanda{}).Where("id = ?", id).Updates(updates).Error
}

func (r *comandaRepo) Update(ctx context.Context, c *model.Comanda) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *comandaRepo) CreateCliente(ctx context.Context, cc *model.ComandaCliente) error {
	return r.db.WithContext(ctx).Create(cc).Error
}

func (r *comandaRepo) FindClienteByID(ctx context.Context, id uuid.UUID) (*model.ComandaCliente, error) {
	var cc model.ComandaCliente
	err := r.db.WithContext(ctx).Preload("Pagamentos").First(&cc, id).Error
	return &cc, err
}

func (r *comandaRepo) FindClienteByAgendamento(ctx context.Context, comandaID, agendamentoID uuid.UUID) (*model.ComandaCliente, error) {
	var cc model.ComandaCliente
	err := r.db.WithContext(ctx).
		Preload("Pagamentos").
		Where("comanda_id = ? AND agendamento_id = ?", comandaID, agendamentoID).
		First(&cc).Error
	return &cc, err
}

func (r *comandaRepo) CreatePagamento(ctx context.Context, p *model.Pagamento) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *comandaRepo) ListPagamentos(ctx context.Context, comandaClienteID uuid.UUID) ([]model.Pagamento, error) {
	var pagamentos []model.Pagamento
	err := r.db.WithContext(ctx).
		Where("comanda_cliente_id = ?", comandaClienteID).
		Order("created_at ASC").
		Find(&pagamentos).Error
	return pagamentos, err
}
