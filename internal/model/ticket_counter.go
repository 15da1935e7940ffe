package model

// TicketCounter is the single counter row behind sequential ticket numbers.
// It is read FOR UPDATE and incremented inside the sale transaction; a missing
// row is fatal and must be provisioned by the operator (cmd/seed).
type TicketCounter struct {
	ID    string `gorm:"type:varchar(30);primaryKey"`
	Valor int    `gorm:"not null"`
}

// CounterVentas is the ID of the row backing sale ticket numbers.
const CounterVentas = "ventas"

func (TicketCounter) TableName() string { return "ticket_counters" }
