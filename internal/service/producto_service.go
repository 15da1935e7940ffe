package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/wontivero/POS-2025-sub000/internal/dto"
	"github.com/wontivero/POS-2025-sub000/internal/model"
	"github.com/wontivero/POS-2025-sub000/internal/pricing"
	"github.com/wontivero/POS-2025-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductoService defines the business logic contract for the catalog.
type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
	// ActualizarPreciosMasivo raises every cost in a rubro by a percentage and
	// re-derives list prices from each product's margin, rounded up to 50.
	ActualizarPreciosMasivo(ctx context.Context, req dto.ActualizarPreciosMasivoRequest) (*dto.PreciosMasivoResponse, error)
	ListarHistorialPrecios(ctx context.Context, productoID uuid.UUID, limit int) ([]dto.HistorialPrecioResponse, error)
}

type productoService struct {
	repo      repository.ProductoRepository
	historial repository.HistorialPrecioRepository
	rdb       *redis.Client
}

func NewProductoService(repo repository.ProductoRepository, historial repository.HistorialPrecioRepository, rdb *redis.Client) ProductoService {
	return &productoService{repo: repo, historial: historial, rdb: rdb}
}

// derivarPrecios resolves the precio/margen pair: an explicit price wins and
// fixes the margin; otherwise the price is suggested from cost and margin.
func derivarPrecios(costo decimal.Decimal, precioVenta, margenPct *decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	switch {
	case precioVenta != nil:
		return *precioVenta, pricing.MargenDesdePrecio(costo, *precioVenta), nil
	case margenPct != nil:
		precio := pricing.PrecioDesdeMargen(costo, *margenPct)
		return precio, *margenPct, nil
	default:
		return decimal.Zero, decimal.Zero, errors.New("se requiere precio_venta o margen_pct")
	}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	precio, margen, err := derivarPrecios(req.PrecioCosto, req.PrecioVenta, req.MargenPct)
	if err != nil {
		return nil, err
	}
	p := &model.Producto{
		CodigoBarras: req.CodigoBarras,
		Nombre:       req.Nombre,
		Marca:        req.Marca,
		Color:        req.Color,
		Rubro:        req.Rubro,
		PrecioCosto:  req.PrecioCosto,
		PrecioVenta:  precio,
		MargenPct:    margen,
		StockActual:  req.StockActual,
		StockMinimo:  req.StockMinimo,
		Activo:       true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.invalidarPrecioCache(ctx, p)
	resp := productoToResponse(p)
	return &resp, nil
}

func (s *productoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("producto no encontrado")
	}
	resp := productoToResponse(p)
	return &resp, nil
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	productos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		items = append(items, productoToResponse(&productos[i]))
	}
	return &dto.ProductoListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("producto no encontrado")
	}
	precio, margen, err := derivarPrecios(req.PrecioCosto, req.PrecioVenta, req.MargenPct)
	if err != nil {
		return nil, err
	}
	costoAnterior := p.PrecioCosto
	ventaAnterior := p.PrecioVenta
	p.CodigoBarras = req.CodigoBarras
	p.Nombre = req.Nombre
	p.Marca = req.Marca
	p.Color = req.Color
	p.Rubro = req.Rubro
	p.PrecioCosto = req.PrecioCosto
	p.PrecioVenta = precio
	p.MargenPct = margen
	p.StockMinimo = req.StockMinimo

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	if !costoAnterior.Equal(p.PrecioCosto) || !ventaAnterior.Equal(p.PrecioVenta) {
		h := &model.HistorialPrecio{
			ProductoID:          p.ID,
			PrecioCostoAnterior: costoAnterior,
			PrecioCostoNuevo:    p.PrecioCosto,
			PrecioVentaAnterior: ventaAnterior,
			PrecioVentaNuevo:    p.PrecioVenta,
			Motivo:              "actualizacion",
		}
		if err := s.historial.CreateTx(s.repo.DB(), h); err != nil {
			return nil, err
		}
	}
	s.invalidarPrecioCache(ctx, p)
	resp := productoToResponse(p)
	return &resp, nil
}

func (s *productoService) Desactivar(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *productoService) Reactivar(ctx context.Context, id uuid.UUID) error {
	return s.repo.Reactivar(ctx, id)
}

func (s *productoService) ActualizarPreciosMasivo(ctx context.Context, req dto.ActualizarPreciosMasivoRequest) (*dto.PreciosMasivoResponse, error) {
	productos, err := s.repo.ListPorRubro(ctx, req.Rubro)
	if err != nil {
		return nil, err
	}
	if len(productos) == 0 {
		return nil, errors.New("no hay productos activos en ese rubro")
	}

	factor := decimal.NewFromInt(1).Add(req.PorcentajeCambio.Div(decimal.NewFromInt(100)))

	actualizados := 0
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		motivo := fmt.Sprintf("masivo %s %s%%", req.Rubro, req.PorcentajeCambio.String())
		for i := range productos {
			p := &productos[i]
			nuevoCosto := p.PrecioCosto.Mul(factor).Round(2)
			nuevaVenta := pricing.PrecioDesdeMargen(nuevoCosto, p.MargenPct)
			if err := s.repo.UpdatePreciosTx(tx, p.ID, nuevoCosto, nuevaVenta, p.MargenPct); err != nil {
				return err
			}
			h := &model.HistorialPrecio{
				ProductoID:          p.ID,
				PrecioCostoAnterior: p.PrecioCosto,
				PrecioCostoNuevo:    nuevoCosto,
				PrecioVentaAnterior: p.PrecioVenta,
				PrecioVentaNuevo:    nuevaVenta,
				Motivo:              motivo,
			}
			if err := s.historial.CreateTx(tx, h); err != nil {
				return err
			}
			actualizados++
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// Bulk change invalidates whatever is cached for the rubro's products.
	for i := range productos {
		s.invalidarPrecioCache(ctx, &productos[i])
	}

	return &dto.PreciosMasivoResponse{Rubro: req.Rubro, Actualizados: actualizados}, nil
}

func (s *productoService) ListarHistorialPrecios(ctx context.Context, productoID uuid.UUID, limit int) ([]dto.HistorialPrecioResponse, error) {
	rows, err := s.historial.ListByProducto(ctx, productoID, limit)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.HistorialPrecioResponse, 0, len(rows))
	for _, h := range rows {
		resp = append(resp, dto.HistorialPrecioResponse{
			ID:                  h.ID.String(),
			ProductoID:          h.ProductoID.String(),
			PrecioCostoAnterior: h.PrecioCostoAnterior,
			PrecioCostoNuevo:    h.PrecioCostoNuevo,
			PrecioVentaAnterior: h.PrecioVentaAnterior,
			PrecioVentaNuevo:    h.PrecioVentaNuevo,
			Motivo:              h.Motivo,
			Fecha:               h.CreatedAt.Format("2006-01-02T15:04:05Z"),
		})
	}
	return resp, nil
}

func (s *productoService) invalidarPrecioCache(ctx context.Context, p *model.Producto) {
	if s.rdb == nil || p.CodigoBarras == nil {
		return
	}
	_ = s.rdb.Del(ctx, "precio:"+*p.CodigoBarras).Err()
}

func productoToResponse(p *model.Producto) dto.ProductoResponse {
	return dto.ProductoResponse{
		ID:           p.ID.String(),
		CodigoBarras: p.CodigoBarras,
		Nombre:       p.Nombre,
		Marca:        p.Marca,
		Color:        p.Color,
		Rubro:        p.Rubro,
		PrecioCosto:  p.PrecioCosto,
		PrecioVenta:  p.PrecioVenta,
		MargenPct:    p.MargenPct,
		StockActual:  p.StockActual,
		StockMinimo:  p.StockMinimo,
		Activo:       p.Activo,
	}
}
