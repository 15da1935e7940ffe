package dto

// ─── Requests ───────────────────────────────────────────────────────────────

type CrearClienteRequest struct {
	Nombre    string  `json:"nombre" validate:"required"`
	CUIT      *string `json:"cuit"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Telefono  *string `json:"telefono"`
	Domicilio *string `json:"domicilio"`
}

type ActualizarClienteRequest struct {
	Nombre    string  `json:"nombre" validate:"required"`
	CUIT      *string `json:"cuit"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Telefono  *string `json:"telefono"`
	Domicilio *string `json:"domicilio"`
}

// AjustePuntosRequest is a manual loyalty adjustment. Direction is an explicit
// operator choice, never inferred from sign; Puntos is always a magnitude.
type AjustePuntosRequest struct {
	Tipo     string `json:"tipo"     validate:"required,oneof=credito debito"`
	Puntos   int    `json:"puntos"   validate:"required,min=1"`
	Concepto string `json:"concepto" validate:"required,min=3"`
}

// ─── Responses ──────────────────────────────────────────────────────────────

type ClienteResponse struct {
	ID        string  `json:"id"`
	Nombre    string  `json:"nombre"`
	CUIT      *string `json:"cuit,omitempty"`
	Email     *string `json:"email,omitempty"`
	Telefono  *string `json:"telefono,omitempty"`
	Domicilio *string `json:"domicilio,omitempty"`
	Puntos    int     `json:"puntos"`
	Activo    bool    `json:"activo"`
}

type ClienteListResponse struct {
	Data  []ClienteResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

type LoyaltyLogResponse struct {
	ID        string  `json:"id"`
	ClienteID string  `json:"cliente_id"`
	Monto     int     `json:"monto"`
	Concepto  string  `json:"concepto"`
	Usuario   string  `json:"usuario"`
	VentaID   *string `json:"venta_id,omitempty"`
	Fecha     string  `json:"fecha"`
}
