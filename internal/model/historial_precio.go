package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// HistorialPrecio is the append-only trail of price changes. One row per
// product per change, with both sides of the move frozen.
type HistorialPrecio struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID          uuid.UUID       `gorm:"type:uuid;index;not null"`
	PrecioCostoAnterior decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PrecioCostoNuevo    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PrecioVentaAnterior decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PrecioVentaNuevo    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// Motivo: "actualizacion" for a single edit, "masivo <rubro> +X%" for a
	// bulk change.
	Motivo    string `gorm:"not null"`
	CreatedAt time.Time
}

func (HistorialPrecio) TableName() string { return "historial_precios" }
