// Package pricing holds the pure arithmetic of the sale pipeline: line and
// ticket totals, the credit-card surcharge, suggested-price rounding, margin
// derivation and loyalty accrual. No I/O — everything here is deterministic
// and unit-testable in isolation.
package pricing

import (
	"github.com/shopspring/decimal"
)

var (
	cien      = decimal.NewFromInt(100)
	cincuenta = decimal.NewFromInt(50)
)

// LineaVenta is the minimal shape the calculator needs from a cart line.
type LineaVenta struct {
	Precio     decimal.Decimal
	Costo      decimal.Decimal
	Cantidad   int
	EsGenerico bool
}

// Pagos is the payment breakdown of one ticket. Amounts are currency units;
// RecargoCreditoPct is a percentage.
type Pagos struct {
	Contado           decimal.Decimal
	Transferencia     decimal.Decimal
	Debito            decimal.Decimal
	Credito           decimal.Decimal
	RecargoCreditoPct decimal.Decimal
}

// LineTotal returns precio × cantidad.
func LineTotal(l LineaVenta) decimal.Decimal {
	return l.Precio.Mul(decimal.NewFromInt(int64(l.Cantidad)))
}

// RecargoCredito computes the surcharge amount embedded in the credit-settled
// portion: credito − credito / (1 + pct/100). Zero when no credit was used.
func RecargoCredito(credito, pct decimal.Decimal) decimal.Decimal {
	if !credito.IsPositive() || !pct.IsPositive() {
		return decimal.Zero
	}
	divisor := decimal.NewFromInt(1).Add(pct.Div(cien))
	return credito.Sub(credito.DivRound(divisor, 2))
}

// TicketTotal returns the sum of line totals plus the credit surcharge.
func TicketTotal(lineas []LineaVenta, pagos Pagos) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lineas {
		total = total.Add(LineTotal(l))
	}
	return total.Add(RecargoCredito(pagos.Credito, pagos.RecargoCreditoPct))
}

// Ganancia returns the per-ticket profit: Σ (precio − costo) × cantidad.
// Generic lines carry no tracked cost, so their whole line total counts.
func Ganancia(lineas []LineaVenta) decimal.Decimal {
	g := decimal.Zero
	for _, l := range lineas {
		costo := l.Costo
		if l.EsGenerico {
			costo = decimal.Zero
		}
		g = g.Add(l.Precio.Sub(costo).Mul(decimal.NewFromInt(int64(l.Cantidad))))
	}
	return g
}

// RoundUpTo50 rounds a suggested price up to the nearest multiple of 50.
// Non-positive inputs yield zero.
func RoundUpTo50(x decimal.Decimal) decimal.Decimal {
	if !x.IsPositive() {
		return decimal.Zero
	}
	return x.Div(cincuenta).Ceil().Mul(cincuenta)
}

// PrecioDesdeMargen derives a list price from cost and desired margin,
// rounded up to the nearest 50.
func PrecioDesdeMargen(costo, margenPct decimal.Decimal) decimal.Decimal {
	return RoundUpTo50(costo.Mul(decimal.NewFromInt(1).Add(margenPct.Div(cien))))
}

// MargenDesdePrecio derives the margin percentage from cost and price.
// Cost zero with a positive price is treated as 100%.
func MargenDesdePrecio(costo, precio decimal.Decimal) decimal.Decimal {
	if costo.IsPositive() {
		return precio.Sub(costo).DivRound(costo, 4).Mul(cien)
	}
	if precio.IsPositive() {
		return cien
	}
	return decimal.Zero
}

// PuntosGanados returns floor(total × porcentaje / 100) — the loyalty points
// a sale accrues when the program is enabled.
func PuntosGanados(total, porcentaje decimal.Decimal) int {
	if !total.IsPositive() || !porcentaje.IsPositive() {
		return 0
	}
	return int(total.Mul(porcentaje).Div(cien).Floor().IntPart())
}

// TotalPagado returns the sum of every settled amount of the ticket.
func TotalPagado(p Pagos) decimal.Decimal {
	return p.Contado.Add(p.Transferencia).Add(p.Debito).Add(p.Credito)
}
