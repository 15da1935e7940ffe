package infra

import (
	"fmt"

	"github.com/wontivero/POS-2025-sub000/internal/model"

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

// RunMigrations applies the schema. Also used by the seed command.
func RunMigrations(db *gorm.DB) error {
	// gen_random_uuid() defaults need pgcrypto on PG < 13; harmless otherwise.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return err
	}
	return db.AutoMigrate(
		&model.Producto{},
		&model.Cliente{},
		&model.Usuario{},
		&model.SesionCaja{},
		&model.CajaMovimiento{},
		&model.Venta{},
		&model.VentaItem{},
		&model.MovimientoStock{},
		&model.HistorialPrecio{},
		&model.LoyaltyLog{},
		&model.AppSettings{},
		&model.TicketCounter{},
	)
}
