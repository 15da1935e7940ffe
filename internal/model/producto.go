package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto is a catalog entry. Stock is mutated only through the inventory
// ledger (sale / void / manual adjustment) so that every change leaves a
// MovimientoStock row behind.
type Producto struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CodigoBarras *string   `gorm:"uniqueIndex"`
	Nombre       string    `gorm:"index;not null"`
	Marca        string
	Color        string
	Rubro        string          `gorm:"index;not null"`
	PrecioCosto  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PrecioVenta  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// MargenPct is derived from (PrecioVenta - PrecioCosto) / PrecioCosto * 100
	MargenPct   decimal.Decimal `gorm:"type:decimal(6,2)"`
	StockActual int             `gorm:"not null;default:0"`
	// StockMinimo is the reorder threshold used by the low-stock alert query.
	StockMinimo int  `gorm:"not null;default:0"`
	Activo      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Producto) TableName() string { return "productos" }
