package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AppSettings is the single global configuration row (id = 1).
// The sale pipeline reads it; only administrators write it.
type AppSettings struct {
	ID int `gorm:"primaryKey"`

	// Recargo aplicado a la porción de la venta cobrada con crédito.
	RecargoCreditoPct decimal.Decimal `gorm:"type:decimal(6,2);not null;default:10"`

	// Loyalty program configuration. Porcentaje is applied over the sale
	// total: puntos = floor(total * porcentaje / 100).
	LoyaltyHabilitado bool            `gorm:"not null;default:false"`
	LoyaltyPorcentaje decimal.Decimal `gorm:"type:decimal(6,2);not null;default:1"`
	LoyaltyImprimir   bool            `gorm:"not null;default:true"`
	// Expiration flags are persisted configuration only — no sweep runs here.
	LoyaltyExpira     bool `gorm:"not null;default:false"`
	LoyaltyExpiraDias int  `gorm:"not null;default:365"`
	// When set, voiding a sale also debits the points it granted.
	LoyaltyRevertirAlAnular bool `gorm:"not null;default:false"`

	// When set, a sale may drive stock below zero; the venta is flagged
	// conflicto_stock for supervisor review instead of being rejected.
	PermitirStockNegativo bool `gorm:"not null;default:false"`

	// Company info printed on tickets.
	NombreComercio    string `gorm:"not null;default:''"`
	DireccionComercio string `gorm:"not null;default:''"`
	CUITComercio      string `gorm:"column:cuit_comercio;not null;default:''"`

	UpdatedAt time.Time
}

func (AppSettings) TableName() string { return "app_settings" }
