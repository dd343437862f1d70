package infra

import (
	"fmt"

	"github.com/deivisontravizan/one-travvizan-sub000/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and runs AutoMigrate
// to create / update all tables.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return db, nil
}

// RunMigrations applies the schema via GORM AutoMigrate. Also used by the
// integration tests against a throwaway container.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Cliente{},
		&model.Agendamento{},
		&model.Comanda{},
		&model.ComandaCliente{},
		&model.Pagamento{},
		&model.RegistroFinanceiro{},
		&model.ConfigTaxas{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// one comanda lookup per operator+date happens on every payment
		`CREATE INDEX IF NOT EXISTS idx_comandas_usuario_data ON comandas (usuario_id, data)`,
		// sinal lookups filter by agendamento, categoria and tipo
		`CREATE INDEX IF NOT EXISTS idx_registros_sinal
		    ON registro_financeiros (agendamento_id)
		    WHERE categoria = 'sinal' AND tipo = 'entrada'`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
