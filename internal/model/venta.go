package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Venta is one sale ticket. Created atomically by VentaService and mutated
// exactly once afterwards: the estado flip to "anulada". Every other field is
// immutable post-creation — reports rely on that.
// Estado: "finalizada" | "anulada"
type Venta struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NumeroTicket int       `gorm:"uniqueIndex;not null"`
	// Fecha is the ISO date (YYYY-MM-DD) used by range queries;
	// FechaDisplay is the fixed DD/MM/YYYY HH:mm form printed on tickets.
	Fecha        string `gorm:"type:varchar(10);index;not null"`
	FechaDisplay string `gorm:"type:varchar(16);not null"`

	// Nil for sales settled without cash while no drawer session is open.
	SesionCajaID *uuid.UUID `gorm:"type:uuid;index"`

	// Vendedor snapshot — not a live relation.
	UsuarioID     uuid.UUID `gorm:"type:uuid;not null"`
	VendedorEmail string    `gorm:"not null"`
	VendedorNombre string   `gorm:"not null"`

	// Cliente snapshot, denormalized at sale time. Nil for anonymous sales.
	ClienteID        *uuid.UUID `gorm:"type:uuid;index"`
	ClienteNombre    *string
	ClienteCUIT      *string `gorm:"column:cliente_cuit;type:varchar(20)"`
	ClienteDomicilio *string

	Items []VentaItem `gorm:"foreignKey:VentaID"`

	// Payment breakdown. Amounts in currency units; RecargoCreditoPct is the
	// percentage surcharge applied to the credit-settled portion.
	PagoContado       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PagoTransferencia decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PagoDebito        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PagoCredito       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	RecargoCreditoPct decimal.Decimal `gorm:"type:decimal(6,2);not null;default:0"`

	Total    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Ganancia decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Estado string `gorm:"type:varchar(20);not null;default:'finalizada'"`

	// Loyalty snapshot taken right after accrual, for ticket printing.
	PuntosGanados       int  `gorm:"not null;default:0"`
	PuntosTotalSnapshot *int

	// ConflictoStock flags sales committed with negative stock under the
	// permitir_stock_negativo policy, for supervisor review.
	ConflictoStock bool `gorm:"not null;default:false"`

	CreatedAt time.Time
}

func (Venta) TableName() string { return "ventas" }

// VentaItem is one cart line, with the product data frozen at sale time.
// EsGenerico lines carry an operator-entered price and never move stock.
type VentaItem struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID    uuid.UUID  `gorm:"type:uuid;index;not null"`
	ProductoID *uuid.UUID `gorm:"type:uuid;index"`
	Nombre     string     `gorm:"not null"`
	Marca      string
	Color      string
	Rubro      string
	Cantidad   int             `gorm:"not null"`
	Precio     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Costo      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	EsGenerico bool            `gorm:"not null;default:false"`
	Subtotal   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

func (VentaItem) TableName() string { return "venta_items" }
