package service

import (
	"context"
	"testing"

	"github.com/wontivero/POS-2025-sub000/internal/dto"
	"github.com/wontivero/POS-2025-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loyaltyEnv struct {
	clientes *stubClienteRepo
	logs     *stubLoyaltyLogRepo
	svc      LoyaltyService
}

func newLoyaltyEnv() *loyaltyEnv {
	e := &loyaltyEnv{clientes: newStubClienteRepo(), logs: &stubLoyaltyLogRepo{}}
	e.svc = NewLoyaltyService(e.clientes, e.logs)
	return e
}

func (e *loyaltyEnv) addCliente(puntos int) *model.Cliente {
	c := &model.Cliente{ID: uuid.New(), Nombre: "Ana López", Puntos: puntos, Activo: true}
	e.clientes.clientes[c.ID] = c
	return c
}

func TestAjustarPuntosCredito(t *testing.T) {
	e := newLoyaltyEnv()
	c := e.addCliente(0)

	resp, err := e.svc.AjustarPuntos(context.Background(), c.ID, "supervisor@test.local", dto.AjustePuntosRequest{
		Tipo: "credito", Puntos: 30, Concepto: "Compensación por demora",
	})
	require.NoError(t, err)
	assert.Equal(t, 30, resp.Puntos)
	assert.Equal(t, 30, e.clientes.clientes[c.ID].Puntos)

	require.Len(t, e.logs.entries, 1)
	assert.Equal(t, 30, e.logs.entries[0].Monto)
	assert.Equal(t, "Compensación por demora", e.logs.entries[0].Concepto)
	assert.Equal(t, "supervisor@test.local", e.logs.entries[0].Usuario)
	assert.Nil(t, e.logs.entries[0].VentaID)
}

func TestAjustarPuntosDebito(t *testing.T) {
	e := newLoyaltyEnv()
	c := e.addCliente(0)

	_, err := e.svc.AjustarPuntos(context.Background(), c.ID, "supervisor@test.local", dto.AjustePuntosRequest{
		Tipo: "credito", Puntos: 40, Concepto: "Carga inicial",
	})
	require.NoError(t, err)
	resp, err := e.svc.AjustarPuntos(context.Background(), c.ID, "supervisor@test.local", dto.AjustePuntosRequest{
		Tipo: "debito", Puntos: 15, Concepto: "Canje por descuento",
	})
	require.NoError(t, err)

	assert.Equal(t, 25, resp.Puntos)
	assert.Equal(t, -15, e.logs.entries[1].Monto)

	// La suma del log siempre coincide con el balance.
	sum, _ := e.logs.SumByCliente(context.Background(), c.ID)
	assert.Equal(t, e.clientes.clientes[c.ID].Puntos, sum)
}

func TestAjustarPuntosDebitoInsuficiente(t *testing.T) {
	e := newLoyaltyEnv()
	c := e.addCliente(10)

	_, err := e.svc.AjustarPuntos(context.Background(), c.ID, "supervisor@test.local", dto.AjustePuntosRequest{
		Tipo: "debito", Puntos: 25, Concepto: "Canje por descuento",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "solo tiene 10 puntos")
	assert.Equal(t, 10, e.clientes.clientes[c.ID].Puntos)
	assert.Empty(t, e.logs.entries)
}

// El guard de saldo corre dentro de la transacción sobre la lectura
// bloqueada: un débito concurrente que ya bajó el balance no puede colarse
// detrás de una instantánea vieja.
func TestAjustarPuntosDebitoUsaSaldoBloqueado(t *testing.T) {
	e := newLoyaltyEnv()
	c := e.addCliente(0)
	e.clientes.puntosVistosSinLock = map[uuid.UUID]int{c.ID: 10}

	_, err := e.svc.AjustarPuntos(context.Background(), c.ID, "supervisor@test.local", dto.AjustePuntosRequest{
		Tipo: "debito", Puntos: 5, Concepto: "Canje por descuento",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "solo tiene 0 puntos")
	assert.Equal(t, 0, e.clientes.clientes[c.ID].Puntos)
	assert.Empty(t, e.logs.entries)
}

func TestAjustarPuntosValidaciones(t *testing.T) {
	e := newLoyaltyEnv()
	c := e.addCliente(0)

	_, err := e.svc.AjustarPuntos(context.Background(), c.ID, "u", dto.AjustePuntosRequest{Tipo: "credito", Puntos: 0, Concepto: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "positiva")

	_, err = e.svc.AjustarPuntos(context.Background(), c.ID, "u", dto.AjustePuntosRequest{Tipo: "credito", Puntos: 10})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "concepto")

	_, err = e.svc.AjustarPuntos(context.Background(), uuid.New(), "u", dto.AjustePuntosRequest{Tipo: "credito", Puntos: 10, Concepto: "Carga"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no encontrado")
}

func TestAcreditarVentaTxSnapshot(t *testing.T) {
	e := newLoyaltyEnv()
	c := e.addCliente(50)
	ventaID := uuid.New()

	snapshot, err := e.svc.AcreditarVentaTx(nil, c.ID, 21, ventaID, 7, "cajero@test.local")
	require.NoError(t, err)
	assert.Equal(t, 71, snapshot)

	require.Len(t, e.logs.entries, 1)
	entry := e.logs.entries[0]
	assert.Equal(t, 21, entry.Monto)
	assert.Equal(t, "Compra Ticket #7", entry.Concepto)
	require.NotNil(t, entry.VentaID)
	assert.Equal(t, ventaID, *entry.VentaID)

	_, err = e.svc.AcreditarVentaTx(nil, c.ID, 0, ventaID, 8, "cajero@test.local")
	require.Error(t, err)
}

func TestRevertirVentaTx(t *testing.T) {
	e := newLoyaltyEnv()
	c := e.addCliente(21)
	ventaID := uuid.New()
	cid := c.ID

	venta := &model.Venta{ID: ventaID, NumeroTicket: 7, ClienteID: &cid, PuntosGanados: 21}
	require.NoError(t, e.svc.RevertirVentaTx(nil, venta, "supervisor@test.local"))

	assert.Equal(t, 0, e.clientes.clientes[c.ID].Puntos)
	require.Len(t, e.logs.entries, 1)
	assert.Equal(t, -21, e.logs.entries[0].Monto)
	assert.Equal(t, "Anulación Ticket #7", e.logs.entries[0].Concepto)
}

func TestRevertirVentaTxAnonimaNoHaceNada(t *testing.T) {
	e := newLoyaltyEnv()
	venta := &model.Venta{ID: uuid.New(), NumeroTicket: 7, PuntosGanados: 21}
	require.NoError(t, e.svc.RevertirVentaTx(nil, venta, "supervisor@test.local"))
	assert.Empty(t, e.logs.entries)
}

func TestListarMovimientosLoyalty(t *testing.T) {
	e := newLoyaltyEnv()
	c := e.addCliente(0)

	_, err := e.svc.AjustarPuntos(context.Background(), c.ID, "supervisor@test.local", dto.AjustePuntosRequest{
		Tipo: "credito", Puntos: 10, Concepto: "Carga inicial",
	})
	require.NoError(t, err)

	movs, err := e.svc.ListarMovimientos(context.Background(), c.ID)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, 10, movs[0].Monto)
	assert.Equal(t, c.ID.String(), movs[0].ClienteID)
}
