package dto

import "github.com/shopspring/decimal"

// ─── Requests ───────────────────────────────────────────────────────────────

type AbrirCajaRequest struct {
	MontoInicial decimal.Decimal `json:"monto_inicial" validate:"min=0"`
}

// MovimientoManualRequest records a manual cash ingress or egress.
type MovimientoManualRequest struct {
	Tipo        string          `json:"tipo"        validate:"required,oneof=ingreso egreso"`
	Monto       decimal.Decimal `json:"monto"       validate:"required"`
	Descripcion string          `json:"descripcion" validate:"required,min=3"`
}

// ArqueoRequest closes the session with the blind cash count.
type ArqueoRequest struct {
	MontoDeclarado decimal.Decimal `json:"monto_declarado" validate:"min=0"`
	Observaciones  *string         `json:"observaciones"`
}

// ─── Responses ──────────────────────────────────────────────────────────────

type MovimientoCajaResponse struct {
	ID          string          `json:"id"`
	Tipo        string          `json:"tipo"`
	MetodoPago  *string         `json:"metodo_pago,omitempty"`
	Monto       decimal.Decimal `json:"monto"`
	Descripcion string          `json:"descripcion"`
	Usuario     string          `json:"usuario"`
	Fecha       string          `json:"fecha"`
}

type ReporteCajaResponse struct {
	SesionCajaID   string                   `json:"sesion_caja_id"`
	MontoInicial   decimal.Decimal          `json:"monto_inicial"`
	MontoEsperado  decimal.Decimal          `json:"monto_esperado"`
	MontoDeclarado *decimal.Decimal         `json:"monto_declarado,omitempty"`
	Desvio         *decimal.Decimal         `json:"desvio,omitempty"`
	Estado         string                   `json:"estado"`
	Observaciones  *string                  `json:"observaciones,omitempty"`
	Movimientos    []MovimientoCajaResponse `json:"movimientos"`
	OpenedAt       string                   `json:"opened_at"`
	ClosedAt       *string                  `json:"closed_at,omitempty"`
}
