package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

type ProductoFilter struct {
	Nombre  string `form:"nombre"`
	Rubro   string `form:"rubro"`
	Marca   string `form:"marca"`
	Barcode string `form:"barcode"`
	Activo  string `form:"activo"` // "false" = inactivos, "all" = todos, default activos
	Page    int    `form:"page,default=1"   validate:"min=1"`
	Limit   int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Requests ───────────────────────────────────────────────────────────────

// CrearProductoRequest accepts either an explicit precio_venta or a margen_pct
// from which the suggested price is derived (rounded up to the nearest 50).
type CrearProductoRequest struct {
	CodigoBarras *string          `json:"codigo_barras"`
	Nombre       string           `json:"nombre" validate:"required"`
	Marca        string           `json:"marca"`
	Color        string           `json:"color"`
	Rubro        string           `json:"rubro"  validate:"required"`
	PrecioCosto  decimal.Decimal  `json:"precio_costo" validate:"min=0"`
	PrecioVenta  *decimal.Decimal `json:"precio_venta"`
	MargenPct    *decimal.Decimal `json:"margen_pct"`
	StockActual  int              `json:"stock_actual" validate:"min=0"`
	StockMinimo  int              `json:"stock_minimo" validate:"min=0"`
}

type ActualizarProductoRequest struct {
	CodigoBarras *string          `json:"codigo_barras"`
	Nombre       string           `json:"nombre" validate:"required"`
	Marca        string           `json:"marca"`
	Color        string           `json:"color"`
	Rubro        string           `json:"rubro"  validate:"required"`
	PrecioCosto  decimal.Decimal  `json:"precio_costo" validate:"min=0"`
	PrecioVenta  *decimal.Decimal `json:"precio_venta"`
	MargenPct    *decimal.Decimal `json:"margen_pct"`
	StockMinimo  int              `json:"stock_minimo" validate:"min=0"`
}

// AjustarStockRequest applies a manual signed stock delta outside a sale.
type AjustarStockRequest struct {
	Delta  int    `json:"delta"  validate:"required"`
	Motivo string `json:"motivo" validate:"required,min=3"`
}

// ActualizarPreciosMasivoRequest raises every cost in a rubro by a percentage
// and re-derives list prices from the product's stored margin.
type ActualizarPreciosMasivoRequest struct {
	Rubro            string          `json:"rubro"             validate:"required"`
	PorcentajeCambio decimal.Decimal `json:"porcentaje_cambio" validate:"required"`
}

// ─── Responses ──────────────────────────────────────────────────────────────

type ProductoResponse struct {
	ID           string          `json:"id"`
	CodigoBarras *string         `json:"codigo_barras,omitempty"`
	Nombre       string          `json:"nombre"`
	Marca        string          `json:"marca"`
	Color        string          `json:"color"`
	Rubro        string          `json:"rubro"`
	PrecioCosto  decimal.Decimal `json:"precio_costo"`
	PrecioVenta  decimal.Decimal `json:"precio_venta"`
	MargenPct    decimal.Decimal `json:"margen_pct"`
	StockActual  int             `json:"stock_actual"`
	StockMinimo  int             `json:"stock_minimo"`
	Activo       bool            `json:"activo"`
}

type ProductoListResponse struct {
	Data  []ProductoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

type PreciosMasivoResponse struct {
	Rubro        string `json:"rubro"`
	Actualizados int    `json:"actualizados"`
}

type AlertaStockResponse struct {
	ProductoID  string `json:"producto_id"`
	Nombre      string `json:"nombre"`
	Rubro       string `json:"rubro"`
	StockActual int    `json:"stock_actual"`
	StockMinimo int    `json:"stock_minimo"`
}

type HistorialPrecioResponse struct {
	ID                  string          `json:"id"`
	ProductoID          string          `json:"producto_id"`
	PrecioCostoAnterior decimal.Decimal `json:"precio_costo_anterior"`
	PrecioCostoNuevo    decimal.Decimal `json:"precio_costo_nuevo"`
	PrecioVentaAnterior decimal.Decimal `json:"precio_venta_anterior"`
	PrecioVentaNuevo    decimal.Decimal `json:"precio_venta_nuevo"`
	Motivo              string          `json:"motivo"`
	Fecha               string          `json:"fecha"`
}

// ConsultaPreciosResponse is served by the public, cached price endpoint.
type ConsultaPreciosResponse struct {
	Nombre          string          `json:"nombre"`
	Marca           string          `json:"marca"`
	PrecioVenta     decimal.Decimal `json:"precio_venta"`
	StockDisponible int             `json:"stock_disponible"`
	Rubro           string          `json:"rubro"`
}
