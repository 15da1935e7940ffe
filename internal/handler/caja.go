package handler

import (
	"net/http"

	"github.com/wontivero/POS-2025-sub000/internal/apierror"
	"github.com/wontivero/POS-2025-sub000/internal/dto"
	"github.com/wontivero/POS-2025-sub000/internal/middleware"
	"github.com/wontivero/POS-2025-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CajaHandler struct{ svc service.CajaService }

func NewCajaHandler(svc service.CajaService) *CajaHandler { return &CajaHandler{svc: svc} }

// Abrir godoc
// @Summary      Abrir sesión de caja
// @Description  Abre la caja con el monto inicial declarado. Falla si ya hay una sesión abierta.
// @Tags         caja
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.AbrirCajaRequest true "Monto inicial"
// @Success      201  {object} dto.ReporteCajaResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/caja/abrir [post]
func (h *CajaHandler) Abrir(c *gin.Context) {
	var req dto.AbrirCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Abrir(c.Request.Context(), usuarioID, claims.Email, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// RegistrarMovimiento godoc
// @Summary      Registrar ingreso/egreso manual de caja
// @Tags         caja
// @Accept       json
// @Security     BearerAuth
// @Param        body body dto.MovimientoManualRequest true "Movimiento"
// @Success      204
// @Failure      400 {object} apierror.APIError
// @Router       /v1/caja/movimientos [post]
func (h *CajaHandler) RegistrarMovimiento(c *gin.Context) {
	var req dto.MovimientoManualRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	if err := h.svc.RegistrarMovimiento(c.Request.Context(), claims.Email, req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// Arqueo godoc
// @Summary      Cerrar caja con arqueo ciego
// @Description  El operador declara el efectivo contado; el sistema calcula esperado y desvío, y cierra la sesión.
// @Tags         caja
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.ArqueoRequest true "Monto declarado"
// @Success      200  {object} dto.ReporteCajaResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/caja/arqueo [post]
func (h *CajaHandler) Arqueo(c *gin.Context) {
	var req dto.ArqueoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Arqueo(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Estado godoc
// @Summary      Estado de la caja actual
// @Description  Retorna el reporte de la sesión abierta, o 404 si no hay ninguna.
// @Tags         caja
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.ReporteCajaResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/caja/estado [get]
func (h *CajaHandler) Estado(c *gin.Context) {
	sesion, err := h.svc.SesionAbierta(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al consultar la caja"))
		return
	}
	if sesion == nil {
		c.JSON(http.StatusNotFound, apierror.New("No hay sesión de caja abierta"))
		return
	}
	resp, err := h.svc.ObtenerReporte(c.Request.Context(), sesion.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al armar el reporte de caja"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Reporte godoc
// @Summary      Reporte de una sesión de caja
// @Tags         caja
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la sesión"
// @Success      200 {object} dto.ReporteCajaResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/caja/{id} [get]
func (h *CajaHandler) Reporte(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ObtenerReporte(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
