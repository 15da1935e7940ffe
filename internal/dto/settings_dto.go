package dto

import "github.com/shopspring/decimal"

// SettingsResponse mirrors the single app_settings row.
type SettingsResponse struct {
	RecargoCreditoPct       decimal.Decimal `json:"recargo_credito_pct"`
	LoyaltyHabilitado       bool            `json:"loyalty_habilitado"`
	LoyaltyPorcentaje       decimal.Decimal `json:"loyalty_porcentaje"`
	LoyaltyImprimir         bool            `json:"loyalty_imprimir"`
	LoyaltyExpira           bool            `json:"loyalty_expira"`
	LoyaltyExpiraDias       int             `json:"loyalty_expira_dias"`
	LoyaltyRevertirAlAnular bool            `json:"loyalty_revertir_al_anular"`
	PermitirStockNegativo   bool            `json:"permitir_stock_negativo"`
	NombreComercio          string          `json:"nombre_comercio"`
	DireccionComercio       string          `json:"direccion_comercio"`
	CUITComercio            string          `json:"cuit_comercio"`
}

type ActualizarSettingsRequest struct {
	RecargoCreditoPct       decimal.Decimal `json:"recargo_credito_pct" validate:"min=0"`
	LoyaltyHabilitado       bool            `json:"loyalty_habilitado"`
	LoyaltyPorcentaje       decimal.Decimal `json:"loyalty_porcentaje"  validate:"min=0"`
	LoyaltyImprimir         bool            `json:"loyalty_imprimir"`
	LoyaltyExpira           bool            `json:"loyalty_expira"`
	LoyaltyExpiraDias       int             `json:"loyalty_expira_dias" validate:"min=0"`
	LoyaltyRevertirAlAnular bool            `json:"loyalty_revertir_al_anular"`
	PermitirStockNegativo   bool            `json:"permitir_stock_negativo"`
	NombreComercio          string          `json:"nombre_comercio"`
	DireccionComercio       string          `json:"direccion_comercio"`
	CUITComercio            string          `json:"cuit_comercio"`
}
