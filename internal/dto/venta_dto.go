package dto

import "github.com/shopspring/decimal"

// ─── Requests ────────────────────────────────────────────────────────────────

// ItemVentaRequest is one cart line. Catalog lines carry producto_id and the
// server resolves price/cost; generic lines (services, custom-priced goods)
// carry es_generico with an operator-entered nombre and precio.
type ItemVentaRequest struct {
	ProductoID *string         `json:"producto_id" validate:"omitempty,uuid"`
	Nombre     string          `json:"nombre"`
	Precio     decimal.Decimal `json:"precio"`
	Cantidad   int             `json:"cantidad" validate:"required,min=1"`
	EsGenerico bool            `json:"es_generico"`
}

// PagosRequest is the payment breakdown of the ticket. RecargoCreditoPct
// defaults to the configured surcharge when omitted.
type PagosRequest struct {
	Contado           decimal.Decimal `json:"contado"        validate:"min=0"`
	Transferencia     decimal.Decimal `json:"transferencia"  validate:"min=0"`
	Debito            decimal.Decimal `json:"debito"         validate:"min=0"`
	Credito           decimal.Decimal `json:"credito"        validate:"min=0"`
	RecargoCreditoPct decimal.Decimal `json:"recargo_credito" validate:"min=0"`
}

type RegistrarVentaRequest struct {
	Items []ItemVentaRequest `json:"items" validate:"required,min=1,dive"`
	Pagos PagosRequest       `json:"pagos"`
	// ClienteID enables loyalty accrual; nil = anonymous sale.
	ClienteID *string `json:"cliente_id" validate:"omitempty,uuid"`
}

type AnularVentaRequest struct {
	Motivo string `json:"motivo" validate:"required,min=5"`
}

// VentaFilter is bound from query string of GET /v1/ventas.
type VentaFilter struct {
	Desde  string `form:"desde"`  // YYYY-MM-DD; empty = today
	Hasta  string `form:"hasta"`  // YYYY-MM-DD; empty = desde
	Estado string `form:"estado"` // finalizada | anulada | all
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type ItemVentaResponse struct {
	ProductoID *string         `json:"producto_id"`
	Nombre     string          `json:"nombre"`
	Marca      string          `json:"marca,omitempty"`
	Cantidad   int             `json:"cantidad"`
	Precio     decimal.Decimal `json:"precio"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	EsGenerico bool            `json:"es_generico"`
}

type PagosResponse struct {
	Contado           decimal.Decimal `json:"contado"`
	Transferencia     decimal.Decimal `json:"transferencia"`
	Debito            decimal.Decimal `json:"debito"`
	Credito           decimal.Decimal `json:"credito"`
	RecargoCreditoPct decimal.Decimal `json:"recargo_credito"`
	RecargoMonto      decimal.Decimal `json:"recargo_monto"`
}

type VentaResponse struct {
	ID                  string              `json:"id"`
	NumeroTicket        int                 `json:"numero_ticket"`
	Fecha               string              `json:"fecha"`
	FechaDisplay        string              `json:"fecha_display"`
	Items               []ItemVentaResponse `json:"items"`
	Pagos               PagosResponse       `json:"pagos"`
	Total               decimal.Decimal     `json:"total"`
	Ganancia            decimal.Decimal     `json:"ganancia"`
	Vuelto              decimal.Decimal     `json:"vuelto"`
	Estado              string              `json:"estado"`
	ClienteNombre       *string             `json:"cliente_nombre,omitempty"`
	VendedorNombre      string              `json:"vendedor_nombre"`
	PuntosGanados       int                 `json:"puntos_ganados"`
	PuntosTotalSnapshot *int                `json:"puntos_total_snapshot,omitempty"`
	ConflictoStock      bool                `json:"conflicto_stock"`
}

type VentaListResponse struct {
	Data  []VentaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
