package repository

import (
	"context"

	"github.com/deivisontravizan/one-travvizan-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FinanceiroRepository interface {
	// ListSinais returns the operator's booking-deposit entries. The
	// reconciliation engine re-checks categoria/tipo defensively, but the
	// query already narrows to "sinal"/"entrada" rows.
	ListSinais(ctx context.Context, usuarioID uuid.UUID) ([]model.RegistroFinanceiro, error)
	Create(ctx context.Context, r *model.RegistroFinanceiro) error
}

type financeiroRepo struct{ db *gorm.DB }

func NewFinanceiroRepository(db *gorm.DB) FinanceiroRepository { return &financeiroRepo{db: db} }

func (r *financeiroRepo) ListSinais(ctx context.Context, usuarioID uuid.UUID) ([]model.RegistroFinanceiro, error) {
	var registros []model.RegistroFinanceiro
	err := r.db.WithContext(ctx).
		Where("usuario_id = ? AND categoria = ? AND tipo = ?", usuarioID, model.CategoriaSinal, model.TipoEntrada).
		Find(&registros).Error
	return registros, err
}

func (r *financeiroRepo) Create(ctx context.Context, reg *model.RegistroFinanceiro) error {
	return r.db.WithContext(ctx).Create(reg).Error
}
