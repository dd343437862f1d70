package repository

import (
	"context"
	"time"

	"github.com/deivisontravizan/one-travvizan-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AgendamentoRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Agendamento, error)
	ListByData(ctx context.Context, usuarioID uuid.UUID, data time.Time) ([]model.Agendamento, error)
	Create(ctx context.Context, a *model.Agendamento) error
}

type agendamentoRepo struct{ db *gorm.DB }

func NewAgendamentoRepository(db *gorm.DB) AgendamentoRepository { return &agendamentoRepo{db: db} }

func (r *agendamentoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Agendamento, error) {
	var a model.Agendamento
	err := r.db.WithContext(ctx).First(&a, id).Error
	return &a, err
}

func (r *agendamentoRepo) ListByData(ctx context.Context, usuarioID uuid.UUID, data time.Time) ([]model.Agendamento, error) {
	var ags []model.Agendamento
	err := r.db.WithContext(ctx).
		Where("usuario_id = ? AND data = ?", usuarioID, data.Format("2006-01-02")).
		Order("created_at ASC").
		Find(&ags).Error
	return ags, err
}

func (r *agendamentoRepo) Create(ctx context.Context, a *model.Agendamento) error {
	return r.db.WithContext(ctx).Create(a).Error
}
