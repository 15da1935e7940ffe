package service

import (
	"context"
	"testing"

	"github.com/wontivero/POS-2025-sub000/internal/dto"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductoSvc() (ProductoService, *stubProductoRepo, *stubHistorialPrecioRepo) {
	repo := newStubProductoRepo()
	historial := &stubHistorialPrecioRepo{}
	return NewProductoService(repo, historial, nil), repo, historial
}

func decPtr(s string) *decimal.Decimal {
	v := dec(s)
	return &v
}

func TestCrearProductoConPrecioExplicito(t *testing.T) {
	svc, _, _ := newProductoSvc()

	// Un precio explícito fija el margen: (900−500)/500 = 80%.
	resp, err := svc.Crear(context.Background(), dto.CrearProductoRequest{
		Nombre:      "Remera lisa",
		Rubro:       "indumentaria",
		PrecioCosto: dec("500"),
		PrecioVenta: decPtr("900"),
		StockActual: 10,
	})
	require.NoError(t, err)
	assert.True(t, dec("900").Equal(resp.PrecioVenta))
	assert.True(t, dec("80").Equal(resp.MargenPct))
	assert.True(t, resp.Activo)
}

func TestCrearProductoConMargen(t *testing.T) {
	svc, _, _ := newProductoSvc()

	// Sin precio explícito se sugiere desde el margen: 500×1.70 = 850.
	resp, err := svc.Crear(context.Background(), dto.CrearProductoRequest{
		Nombre:      "Remera lisa",
		Rubro:       "indumentaria",
		PrecioCosto: dec("500"),
		MargenPct:   decPtr("70"),
	})
	require.NoError(t, err)
	assert.True(t, dec("850").Equal(resp.PrecioVenta))
	assert.True(t, dec("70").Equal(resp.MargenPct))
}

func TestCrearProductoSinPrecioNiMargen(t *testing.T) {
	svc, _, _ := newProductoSvc()

	_, err := svc.Crear(context.Background(), dto.CrearProductoRequest{
		Nombre:      "Remera lisa",
		Rubro:       "indumentaria",
		PrecioCosto: dec("500"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "precio_venta o margen_pct")
}

func TestActualizarProducto(t *testing.T) {
	svc, repo, historial := newProductoSvc()
	creado, err := svc.Crear(context.Background(), dto.CrearProductoRequest{
		Nombre:      "Remera lisa",
		Rubro:       "indumentaria",
		PrecioCosto: dec("500"),
		MargenPct:   decPtr("70"),
	})
	require.NoError(t, err)
	id := uuid.MustParse(creado.ID)

	resp, err := svc.Actualizar(context.Background(), id, dto.ActualizarProductoRequest{
		Nombre:      "Remera estampada",
		Rubro:       "indumentaria",
		PrecioCosto: dec("600"),
		MargenPct:   decPtr("70"),
		StockMinimo: 3,
	})
	require.NoError(t, err)
	// 600×1.70 = 1020 → redondeado a 1050.
	assert.True(t, dec("1050").Equal(resp.PrecioVenta))
	assert.Equal(t, "Remera estampada", repo.productos[id].Nombre)
	assert.Equal(t, 3, repo.productos[id].StockMinimo)

	// El cambio de precio deja su registro en el historial.
	require.Len(t, historial.rows, 1)
	h := historial.rows[0]
	assert.True(t, dec("500").Equal(h.PrecioCostoAnterior))
	assert.True(t, dec("600").Equal(h.PrecioCostoNuevo))
	assert.True(t, dec("850").Equal(h.PrecioVentaAnterior))
	assert.True(t, dec("1050").Equal(h.PrecioVentaNuevo))
	assert.Equal(t, "actualizacion", h.Motivo)
}

func TestDesactivarYReactivarProducto(t *testing.T) {
	svc, repo, _ := newProductoSvc()
	creado, err := svc.Crear(context.Background(), dto.CrearProductoRequest{
		Nombre: "Remera lisa", Rubro: "indumentaria", PrecioCosto: dec("500"), MargenPct: decPtr("70"),
	})
	require.NoError(t, err)
	id := uuid.MustParse(creado.ID)

	require.NoError(t, svc.Desactivar(context.Background(), id))
	assert.False(t, repo.productos[id].Activo)
	require.NoError(t, svc.Reactivar(context.Background(), id))
	assert.True(t, repo.productos[id].Activo)
}

func TestActualizarPreciosMasivo(t *testing.T) {
	svc, repo, historial := newProductoSvc()
	creado, err := svc.Crear(context.Background(), dto.CrearProductoRequest{
		Nombre:      "Caramelos",
		Rubro:       "golosinas",
		PrecioCosto: dec("1000"),
		MargenPct:   decPtr("50"),
	})
	require.NoError(t, err)
	id := uuid.MustParse(creado.ID)
	_, err = svc.Crear(context.Background(), dto.CrearProductoRequest{
		Nombre: "Remera lisa", Rubro: "indumentaria", PrecioCosto: dec("500"), MargenPct: decPtr("70"),
	})
	require.NoError(t, err)

	resp, err := svc.ActualizarPreciosMasivo(context.Background(), dto.ActualizarPreciosMasivoRequest{
		Rubro:            "golosinas",
		PorcentajeCambio: dec("10"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Actualizados)

	// Costo 1000 +10% = 1100; precio re-derivado 1100×1.50 = 1650.
	p := repo.productos[id]
	assert.True(t, dec("1100").Equal(p.PrecioCosto))
	assert.True(t, dec("1650").Equal(p.PrecioVenta))
	assert.True(t, dec("50").Equal(p.MargenPct))

	// Un registro de historial por producto actualizado, con ambos lados.
	require.Len(t, historial.rows, 1)
	h := historial.rows[0]
	assert.Equal(t, id, h.ProductoID)
	assert.True(t, dec("1000").Equal(h.PrecioCostoAnterior))
	assert.True(t, dec("1100").Equal(h.PrecioCostoNuevo))
	assert.True(t, dec("1500").Equal(h.PrecioVentaAnterior))
	assert.True(t, dec("1650").Equal(h.PrecioVentaNuevo))
	assert.Contains(t, h.Motivo, "golosinas")
}

func TestActualizarPreciosMasivoRubroVacio(t *testing.T) {
	svc, _, _ := newProductoSvc()
	_, err := svc.ActualizarPreciosMasivo(context.Background(), dto.ActualizarPreciosMasivoRequest{
		Rubro:            "inexistente",
		PorcentajeCambio: dec("10"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no hay productos")
}
