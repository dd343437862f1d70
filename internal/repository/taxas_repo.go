package repository

import (
	"context"

	"github.com/deivisontravizan/one-travvizan-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TaxasRepository interface {
	FindByUsuario(ctx context.Context, usuarioID uuid.UUID) (*model.ConfigTaxas, error)
	Upsert(ctx context.Context, cfg *model.ConfigTaxas) error
}

type taxasRepo struct{ db *gorm.DB }

func NewTaxasRepository(db *gorm.DB) TaxasRepository { return &taxasRepo{db: db} }

func (r *taxasRepo) FindByUsuario(ctx context.Context, usuarioID uuid.UUID) (*model.ConfigTaxas, error) {
	var cfg model.ConfigTaxas
	err := r.db.WithContext(ctx).Where("usuario_id = ?", usuarioID).First(&cfg).Error
	return &cfg, err
}

func (r *taxasRepo) Upsert(ctx context.Context, cfg *model.ConfigTaxas) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "usuario_id"}},
		UpdateAll: true,
	}).Create(cfg).Error
}
