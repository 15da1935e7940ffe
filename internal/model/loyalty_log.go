package model

import (
	"time"

	"github.com/google/uuid"
)

// LoyaltyLog is the append-only audit trail of the loyalty balance.
// Rows are never updated or deleted; the signed sum of Monto per client must
// equal that client's current Puntos.
type LoyaltyLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteID uuid.UUID `gorm:"type:uuid;index;not null"`
	// Monto is the signed point delta (positive = accrual, negative = debit).
	Monto    int    `gorm:"not null"`
	Concepto string `gorm:"not null"`
	Usuario  string `gorm:"not null"`
	// VentaID links accruals (and policy reversals) to their sale.
	VentaID   *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time
}

func (LoyaltyLog) TableName() string { return "loyalty_logs" }
