package service

import (
	"context"
	"errors"
	"time"

	"github.com/wontivero/POS-2025-sub000/internal/dto"
	"github.com/wontivero/POS-2025-sub000/internal/model"
	"github.com/wontivero/POS-2025-sub000/internal/repository"

	"github.com/google/uuid"
)

type CajaService interface {
	Abrir(ctx context.Context, usuarioID uuid.UUID, usuario string, req dto.AbrirCajaRequest) (*dto.ReporteCajaResponse, error)
	RegistrarMovimiento(ctx context.Context, usuario string, req dto.MovimientoManualRequest) error
	Arqueo(ctx context.Context, req dto.ArqueoRequest) (*dto.ReporteCajaResponse, error)
	ObtenerReporte(ctx context.Context, sesionID uuid.UUID) (*dto.ReporteCajaResponse, error)
	// SesionAbierta is consumed by the sale pipeline to gate cash operations
	// and to tag cash movements. Returns nil when no session is open.
	SesionAbierta(ctx context.Context) (*model.SesionCaja, error)
}

type cajaService struct {
	repo repository.CajaRepository
}

func NewCajaService(repo repository.CajaRepository) CajaService {
	return &cajaService{repo: repo}
}

// ── Abrir ─────────────────────────────────────────────────────────────────────

func (s *cajaService) Abrir(ctx context.Context, usuarioID uuid.UUID, usuario string, req dto.AbrirCajaRequest) (*dto.ReporteCajaResponse, error) {
	if existing, err := s.repo.FindSesionAbierta(ctx); err == nil && existing != nil {
		return nil, errors.New("ya existe una caja abierta")
	}

	sesion := &model.SesionCaja{
		UsuarioID:    usuarioID,
		MontoInicial: req.MontoInicial,
		Estado:       "abierta",
		OpenedAt:     time.Now(),
	}
	if err := s.repo.CreateSesion(ctx, sesion); err != nil {
		return nil, err
	}
	return s.buildReporte(ctx, sesion)
}

// ── RegistrarMovimiento ───────────────────────────────────────────────────────
// Ingreso / egreso manual. Movements are immutable — no Update/Delete.

func (s *cajaService) RegistrarMovimiento(ctx context.Context, usuario string, req dto.MovimientoManualRequest) error {
	sesion, err := s.SesionAbierta(ctx)
	if err != nil || sesion == nil {
		return errors.New("no hay sesión de caja abierta")
	}
	if !req.Monto.IsPositive() {
		return errors.New("el monto debe ser positivo")
	}

	monto := req.Monto
	if req.Tipo == "egreso" {
		monto = req.Monto.Neg()
	}
	mov := &model.CajaMovimiento{
		SesionCajaID: sesion.ID,
		Tipo:         req.Tipo,
		Monto:        monto,
		Descripcion:  req.Descripcion,
		Usuario:      usuario,
	}
	return s.repo.CreateMovimiento(ctx, mov)
}

// ── Arqueo ────────────────────────────────────────────────────────────────────
// Blind count: the desvío is computed only after the operator declares the
// drawer contents. Closes the session.

func (s *cajaService) Arqueo(ctx context.Context, req dto.ArqueoRequest) (*dto.ReporteCajaResponse, error) {
	sesion, err := s.SesionAbierta(ctx)
	if err != nil || sesion == nil {
		return nil, errors.New("no hay sesión de caja abierta")
	}

	efectivo, err := s.repo.SumEfectivo(ctx, sesion.ID)
	if err != nil {
		return nil, err
	}
	esperado := sesion.MontoInicial.Add(efectivo)
	desvio := req.MontoDeclarado.Sub(esperado)

	now := time.Now()
	declarado := req.MontoDeclarado
	sesion.MontoEsperado = &esperado
	sesion.MontoDeclarado = &declarado
	sesion.Desvio = &desvio
	sesion.Estado = "cerrada"
	sesion.Observaciones = req.Observaciones
	sesion.ClosedAt = &now

	if err := s.repo.UpdateSesion(ctx, sesion); err != nil {
		return nil, err
	}
	return s.buildReporte(ctx, sesion)
}

// ── ObtenerReporte ────────────────────────────────────────────────────────────

func (s *cajaService) ObtenerReporte(ctx context.Context, sesionID uuid.UUID) (*dto.ReporteCajaResponse, error) {
	sesion, err := s.repo.FindSesionByID(ctx, sesionID)
	if err != nil {
		return nil, errors.New("sesión de caja no encontrada")
	}
	return s.buildReporte(ctx, sesion)
}

// ── SesionAbierta ─────────────────────────────────────────────────────────────

func (s *cajaService) SesionAbierta(ctx context.Context) (*model.SesionCaja, error) {
	sesion, err := s.repo.FindSesionAbierta(ctx)
	if err != nil {
		return nil, nil
	}
	if sesion == nil || sesion.Estado != "abierta" {
		return nil, nil
	}
	return sesion, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func (s *cajaService) buildReporte(ctx context.Context, sesion *model.SesionCaja) (*dto.ReporteCajaResponse, error) {
	efectivo, err := s.repo.SumEfectivo(ctx, sesion.ID)
	if err != nil {
		return nil, err
	}
	movs, err := s.repo.ListMovimientos(ctx, sesion.ID)
	if err != nil {
		return nil, err
	}

	movimientos := make([]dto.MovimientoCajaResponse, 0, len(movs))
	for _, m := range movs {
		movimientos = append(movimientos, dto.MovimientoCajaResponse{
			ID:          m.ID.String(),
			Tipo:        m.Tipo,
			MetodoPago:  m.MetodoPago,
			Monto:       m.Monto,
			Descripcion: m.Descripcion,
			Usuario:     m.Usuario,
			Fecha:       m.CreatedAt.Format("2006-01-02T15:04:05Z"),
		})
	}

	reporte := &dto.ReporteCajaResponse{
		SesionCajaID:   sesion.ID.String(),
		MontoInicial:   sesion.MontoInicial,
		MontoEsperado:  sesion.MontoInicial.Add(efectivo),
		MontoDeclarado: sesion.MontoDeclarado,
		Desvio:         sesion.Desvio,
		Estado:         sesion.Estado,
		Observaciones:  sesion.Observaciones,
		Movimientos:    movimientos,
		OpenedAt:       sesion.OpenedAt.Format("2006-01-02T15:04:05Z"),
	}
	if sesion.ClosedAt != nil {
		t := sesion.ClosedAt.Format("2006-01-02T15:04:05Z")
		reporte.ClosedAt = &t
	}
	return reporte, nil
}
