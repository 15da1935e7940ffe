package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/wontivero/POS-2025-sub000/internal/dto"
	"github.com/wontivero/POS-2025-sub000/internal/model"
	"github.com/wontivero/POS-2025-sub000/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrStockInsuficiente rejects a sale whose decrement would drive stock below
// zero while permitir_stock_negativo is off.
var ErrStockInsuficiente = errors.New("stock insuficiente")

// InventarioService is the inventory ledger: every stock change goes through
// here so that an immutable MovimientoStock row is written alongside it.
type InventarioService interface {
	// DescontarStockTx decrements stock for one sale line inside the sale
	// transaction. Returns conflicto=true when the decrement went negative
	// under the permitirNegativo policy.
	DescontarStockTx(ctx context.Context, tx *gorm.DB, productoID uuid.UUID, cantidad int, ventaID uuid.UUID, numeroTicket int, permitirNegativo bool) (bool, error)
	// RestaurarStockTx is the void-side inverse, inside the void transaction.
	RestaurarStockTx(ctx context.Context, tx *gorm.DB, productoID uuid.UUID, cantidad int, ventaID uuid.UUID, numeroTicket int, motivo string) error
	// AjustarStock applies a manual signed delta outside any sale.
	AjustarStock(ctx context.Context, productoID uuid.UUID, delta int, motivo string) error
	ObtenerAlertas(ctx context.Context) ([]dto.AlertaStockResponse, error)
	ListarMovimientos(ctx context.Context, productoID uuid.UUID, limit int) ([]model.MovimientoStock, error)
}

type inventarioService struct {
	productos   repository.ProductoRepository
	movimientos repository.MovimientoStockRepository
}

func NewInventarioService(productos repository.ProductoRepository, movimientos repository.MovimientoStockRepository) InventarioService {
	return &inventarioService{productos: productos, movimientos: movimientos}
}

func (s *inventarioService) DescontarStockTx(ctx context.Context, tx *gorm.DB, productoID uuid.UUID, cantidad int, ventaID uuid.UUID, numeroTicket int, permitirNegativo bool) (bool, error) {
	// Locked read: the floor guard and the before/after snapshot must hold
	// against concurrent sales touching the same row.
	p, err := s.productos.FindByIDForUpdateTx(tx, productoID)
	if err != nil {
		return false, fmt.Errorf("producto %s no encontrado", productoID)
	}

	conflicto := false
	if p.StockActual-cantidad < 0 {
		if !permitirNegativo {
			return false, fmt.Errorf("%w: %s (disponible %d, solicitado %d)",
				ErrStockInsuficiente, p.Nombre, p.StockActual, cantidad)
		}
		conflicto = true
	}

	if err := s.productos.UpdateStockTx(tx, productoID, -cantidad); err != nil {
		return false, err
	}

	ventaRef := ventaID
	mov := &model.MovimientoStock{
		ProductoID:    productoID,
		Tipo:          "venta",
		Cantidad:      -cantidad,
		StockAnterior: p.StockActual,
		StockNuevo:    p.StockActual - cantidad,
		Motivo:        fmt.Sprintf("Venta #%d", numeroTicket),
		ReferenciaID:  &ventaRef,
	}
	return conflicto, s.movimientos.CreateTx(tx, mov)
}

func (s *inventarioService) RestaurarStockTx(ctx context.Context, tx *gorm.DB, productoID uuid.UUID, cantidad int, ventaID uuid.UUID, numeroTicket int, motivo string) error {
	p, err := s.productos.FindByIDForUpdateTx(tx, productoID)
	if err != nil {
		// Product removed from catalog after the sale — nothing to restore.
		return nil
	}

	if err := s.productos.UpdateStockTx(tx, productoID, cantidad); err != nil {
		return err
	}

	ventaRef := ventaID
	mov := &model.MovimientoStock{
		ProductoID:    productoID,
		Tipo:          "restore_anulacion",
		Cantidad:      cantidad,
		StockAnterior: p.StockActual,
		StockNuevo:    p.StockActual + cantidad,
		Motivo:        fmt.Sprintf("Anulación venta #%d — %s", numeroTicket, motivo),
		ReferenciaID:  &ventaRef,
	}
	return s.movimientos.CreateTx(tx, mov)
}

func (s *inventarioService) AjustarStock(ctx context.Context, productoID uuid.UUID, delta int, motivo string) error {
	return runTx(ctx, s.productos.DB(), func(tx *gorm.DB) error {
		p, err := s.productos.FindByIDForUpdateTx(tx, productoID)
		if err != nil {
			return errors.New("producto no encontrado")
		}
		if p.StockActual+delta < 0 {
			return fmt.Errorf("%w: %s (disponible %d, ajuste %d)",
				ErrStockInsuficiente, p.Nombre, p.StockActual, delta)
		}
		if err := s.productos.UpdateStockTx(tx, productoID, delta); err != nil {
			return err
		}
		mov := &model.MovimientoStock{
			ProductoID:    productoID,
			Tipo:          "ajuste_manual",
			Cantidad:      delta,
			StockAnterior: p.StockActual,
			StockNuevo:    p.StockActual + delta,
			Motivo:        motivo,
		}
		return s.movimientos.CreateTx(tx, mov)
	})
}

func (s *inventarioService) ObtenerAlertas(ctx context.Context) ([]dto.AlertaStockResponse, error) {
	productos, err := s.productos.AlertasStock(ctx)
	if err != nil {
		return nil, err
	}
	alertas := make([]dto.AlertaStockResponse, 0, len(productos))
	for _, p := range productos {
		alertas = append(alertas, dto.AlertaStockResponse{
			ProductoID:  p.ID.String(),
			Nombre:      p.Nombre,
			Rubro:       p.Rubro,
			StockActual: p.StockActual,
			StockMinimo: p.StockMinimo,
		})
	}
	return alertas, nil
}

func (s *inventarioService) ListarMovimientos(ctx context.Context, productoID uuid.UUID, limit int) ([]model.MovimientoStock, error) {
	return s.movimientos.ListByProducto(ctx, productoID, limit)
}
