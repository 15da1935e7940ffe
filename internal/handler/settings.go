package handler

import (
	"net/http"

	"github.com/wontivero/POS-2025-sub000/internal/apierror"
	"github.com/wontivero/POS-2025-sub000/internal/dto"
	"github.com/wontivero/POS-2025-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct{ svc service.SettingsService }

func NewSettingsHandler(svc service.SettingsService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

// Obtener godoc
// @Summary      Obtener configuración global
// @Tags         settings
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.SettingsResponse
// @Router       /v1/settings [get]
func (h *SettingsHandler) Obtener(c *gin.Context) {
	s, err := h.svc.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al leer la configuración"))
		return
	}
	c.JSON(http.StatusOK, dto.SettingsResponse{
		RecargoCreditoPct:       s.RecargoCreditoPct,
		LoyaltyHabilitado:       s.LoyaltyHabilitado,
		LoyaltyPorcentaje:       s.LoyaltyPorcentaje,
		LoyaltyImprimir:         s.LoyaltyImprimir,
		LoyaltyExpira:           s.LoyaltyExpira,
		LoyaltyExpiraDias:       s.LoyaltyExpiraDias,
		LoyaltyRevertirAlAnular: s.LoyaltyRevertirAlAnular,
		PermitirStockNegativo:   s.PermitirStockNegativo,
		NombreComercio:          s.NombreComercio,
		DireccionComercio:       s.DireccionComercio,
		CUITComercio:            s.CUITComercio,
	})
}

// Actualizar godoc
// @Summary      Actualizar configuración global
// @Description  Solo administradores. Los cambios aplican a las próximas ventas, nunca retroactivamente.
// @Tags         settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.ActualizarSettingsRequest true "Configuración"
// @Success      200  {object} dto.SettingsResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/settings [put]
func (h *SettingsHandler) Actualizar(c *gin.Context) {
	var req dto.ActualizarSettingsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
