package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente is a registered customer with a loyalty point balance.
// Puntos is NEVER set to an absolute value: every mutation goes through an
// atomic SQL increment paired with a LoyaltyLog row, so the signed sum of the
// log always equals the balance.
type Cliente struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"index;not null"`
	CUIT      *string   `gorm:"column:cuit;type:varchar(20)"`
	Email     *string
	Telefono  *string
	Domicilio *string
	Puntos    int  `gorm:"not null;default:0"`
	Activo    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Cliente) TableName() string { return "clientes" }
