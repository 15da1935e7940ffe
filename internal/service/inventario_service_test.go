package service

import (
	"context"
	"errors"
	"testing"

	"github.com/wontivero/POS-2025-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inventarioEnv struct {
	productos *stubProductoRepo
	movs      *stubMovimientoStockRepo
	svc       InventarioService
}

func newInventarioEnv() *inventarioEnv {
	e := &inventarioEnv{productos: newStubProductoRepo(), movs: &stubMovimientoStockRepo{}}
	e.svc = NewInventarioService(e.productos, e.movs)
	return e
}

func (e *inventarioEnv) addProducto(stock, minimo int) *model.Producto {
	p := &model.Producto{
		ID:          uuid.New(),
		Nombre:      "Remera",
		Rubro:       "indumentaria",
		PrecioCosto: dec("500"),
		PrecioVenta: dec("850"),
		StockActual: stock,
		StockMinimo: minimo,
		Activo:      true,
	}
	e.productos.productos[p.ID] = p
	return p
}

func TestAjustarStockManual(t *testing.T) {
	e := newInventarioEnv()
	p := e.addProducto(10, 0)

	require.NoError(t, e.svc.AjustarStock(context.Background(), p.ID, 5, "Recuento físico"))
	assert.Equal(t, 15, e.productos.productos[p.ID].StockActual)

	require.NoError(t, e.svc.AjustarStock(context.Background(), p.ID, -3, "Rotura en depósito"))
	assert.Equal(t, 12, e.productos.productos[p.ID].StockActual)

	require.Len(t, e.movs.movs, 2)
	assert.Equal(t, "ajuste_manual", e.movs.movs[0].Tipo)
	assert.Equal(t, 5, e.movs.movs[0].Cantidad)
	assert.Equal(t, 10, e.movs.movs[0].StockAnterior)
	assert.Equal(t, 15, e.movs.movs[0].StockNuevo)
	assert.Equal(t, "Recuento físico", e.movs.movs[0].Motivo)
	assert.Equal(t, -3, e.movs.movs[1].Cantidad)
}

func TestAjustarStockNoPermiteNegativo(t *testing.T) {
	e := newInventarioEnv()
	p := e.addProducto(3, 0)

	err := e.svc.AjustarStock(context.Background(), p.ID, -5, "Rotura en depósito")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStockInsuficiente))
	assert.Equal(t, 3, e.productos.productos[p.ID].StockActual)
	assert.Empty(t, e.movs.movs)
}

// El guard de piso y las instantáneas del ledger deben salir de la lectura
// bloqueada, no de una instantánea vieja que otra venta concurrente ya dejó
// atrás. El stub simula ese desfase: la lectura sin lock reporta el stock que
// había antes de que la otra transacción comprometiera su descuento.
func TestDescontarStockUsaSaldoBloqueado(t *testing.T) {
	e := newInventarioEnv()
	p := e.addProducto(0, 0)
	e.productos.stockVistoSinLock = map[uuid.UUID]int{p.ID: 1}

	// Con la instantánea vieja (stock 1) el descuento pasaría; el saldo real
	// bloqueado es 0 y la venta se rechaza.
	_, err := e.svc.DescontarStockTx(context.Background(), nil, p.ID, 1, uuid.New(), 1, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStockInsuficiente))
	assert.Equal(t, 0, e.productos.productos[p.ID].StockActual)
	assert.Empty(t, e.movs.movs)
}

func TestDescontarStockLedgerConSaldoBloqueado(t *testing.T) {
	e := newInventarioEnv()
	p := e.addProducto(1, 0)
	e.productos.stockVistoSinLock = map[uuid.UUID]int{p.ID: 5}

	conflicto, err := e.svc.DescontarStockTx(context.Background(), nil, p.ID, 1, uuid.New(), 1, false)
	require.NoError(t, err)
	assert.False(t, conflicto)

	// Las columnas antes/después reflejan el saldo real, no el desfasado.
	require.Len(t, e.movs.movs, 1)
	assert.Equal(t, 1, e.movs.movs[0].StockAnterior)
	assert.Equal(t, 0, e.movs.movs[0].StockNuevo)
	assert.Equal(t, 0, e.productos.productos[p.ID].StockActual)
}

func TestAjustarStockProductoInexistente(t *testing.T) {
	e := newInventarioEnv()
	err := e.svc.AjustarStock(context.Background(), uuid.New(), 5, "Recuento físico")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no encontrado")
}

func TestRestaurarStockProductoEliminado(t *testing.T) {
	e := newInventarioEnv()
	// El producto ya no existe en el catálogo: la anulación no falla, solo
	// omite la restauración.
	err := e.svc.RestaurarStockTx(context.Background(), nil, uuid.New(), 2, uuid.New(), 7, "devolución")
	require.NoError(t, err)
	assert.Empty(t, e.movs.movs)
}

func TestObtenerAlertas(t *testing.T) {
	e := newInventarioEnv()
	bajo := e.addProducto(2, 5)
	e.addProducto(50, 5)
	inactivo := e.addProducto(0, 5)
	inactivo.Activo = false

	alertas, err := e.svc.ObtenerAlertas(context.Background())
	require.NoError(t, err)
	require.Len(t, alertas, 1)
	assert.Equal(t, bajo.ID.String(), alertas[0].ProductoID)
	assert.Equal(t, 2, alertas[0].StockActual)
	assert.Equal(t, 5, alertas[0].StockMinimo)
}

func TestListarMovimientosStock(t *testing.T) {
	e := newInventarioEnv()
	p := e.addProducto(10, 0)
	require.NoError(t, e.svc.AjustarStock(context.Background(), p.ID, 1, "Recuento físico"))
	require.NoError(t, e.svc.AjustarStock(context.Background(), p.ID, 1, "Recuento físico"))

	movs, err := e.svc.ListarMovimientos(context.Background(), p.ID, 1)
	require.NoError(t, err)
	assert.Len(t, movs, 1)
}
