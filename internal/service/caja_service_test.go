package service

import (
	"context"
	"testing"

	"github.com/wontivero/POS-2025-sub000/internal/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAbrirCaja(t *testing.T) {
	repo := newStubCajaRepo()
	svc := NewCajaService(repo)

	reporte, err := svc.Abrir(context.Background(), uuid.New(), "cajero@test.local", dto.AbrirCajaRequest{MontoInicial: dec("1000")})
	require.NoError(t, err)
	assert.True(t, dec("1000").Equal(reporte.MontoInicial))
	assert.True(t, dec("1000").Equal(reporte.MontoEsperado))
	assert.Equal(t, "abierta", reporte.Estado)

	// Solo una sesión abierta por vez.
	_, err = svc.Abrir(context.Background(), uuid.New(), "otro@test.local", dto.AbrirCajaRequest{MontoInicial: dec("500")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ya existe")
}

func TestRegistrarMovimientoManual(t *testing.T) {
	repo := newStubCajaRepo()
	svc := NewCajaService(repo)

	// Sin caja abierta se rechaza.
	err := svc.RegistrarMovimiento(context.Background(), "cajero@test.local", dto.MovimientoManualRequest{
		Tipo: "ingreso", Monto: dec("500"), Descripcion: "Fondo extra",
	})
	require.Error(t, err)

	repo.abrirSesion(dec("1000"))

	require.NoError(t, svc.RegistrarMovimiento(context.Background(), "cajero@test.local", dto.MovimientoManualRequest{
		Tipo: "ingreso", Monto: dec("500"), Descripcion: "Fondo extra",
	}))
	require.NoError(t, svc.RegistrarMovimiento(context.Background(), "cajero@test.local", dto.MovimientoManualRequest{
		Tipo: "egreso", Monto: dec("200"), Descripcion: "Pago a proveedor",
	}))

	// El egreso se persiste con signo negativo; el monto del request siempre
	// es una magnitud positiva.
	require.Len(t, repo.movimientos, 2)
	assert.True(t, dec("500").Equal(repo.movimientos[0].Monto))
	assert.True(t, dec("-200").Equal(repo.movimientos[1].Monto))

	err = svc.RegistrarMovimiento(context.Background(), "cajero@test.local", dto.MovimientoManualRequest{
		Tipo: "egreso", Monto: dec("-50"), Descripcion: "Monto inválido",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "positivo")
}

func TestArqueoCierraConDesvio(t *testing.T) {
	repo := newStubCajaRepo()
	svc := NewCajaService(repo)
	repo.abrirSesion(dec("1000"))

	require.NoError(t, svc.RegistrarMovimiento(context.Background(), "cajero@test.local", dto.MovimientoManualRequest{
		Tipo: "ingreso", Monto: dec("200"), Descripcion: "Fondo extra",
	}))
	require.NoError(t, svc.RegistrarMovimiento(context.Background(), "cajero@test.local", dto.MovimientoManualRequest{
		Tipo: "egreso", Monto: dec("100"), Descripcion: "Pago a proveedor",
	}))

	// Esperado 1100; el conteo ciego declara 1050 → desvío −50.
	reporte, err := svc.Arqueo(context.Background(), dto.ArqueoRequest{MontoDeclarado: dec("1050")})
	require.NoError(t, err)
	assert.Equal(t, "cerrada", reporte.Estado)
	assert.True(t, dec("1100").Equal(reporte.MontoEsperado))
	require.NotNil(t, reporte.MontoDeclarado)
	assert.True(t, dec("1050").Equal(*reporte.MontoDeclarado))
	require.NotNil(t, reporte.Desvio)
	assert.True(t, dec("-50").Equal(*reporte.Desvio))
	require.NotNil(t, reporte.ClosedAt)

	// Cerrada la sesión, no hay más arqueos ni movimientos.
	_, err = svc.Arqueo(context.Background(), dto.ArqueoRequest{MontoDeclarado: dec("0")})
	require.Error(t, err)

	sesion, err := svc.SesionAbierta(context.Background())
	require.NoError(t, err)
	assert.Nil(t, sesion)
}

func TestObtenerReporteIncluyeMovimientos(t *testing.T) {
	repo := newStubCajaRepo()
	svc := NewCajaService(repo)
	sesion := repo.abrirSesion(dec("1000"))

	require.NoError(t, svc.RegistrarMovimiento(context.Background(), "cajero@test.local", dto.MovimientoManualRequest{
		Tipo: "ingreso", Monto: dec("300"), Descripcion: "Fondo extra",
	}))

	reporte, err := svc.ObtenerReporte(context.Background(), sesion.ID)
	require.NoError(t, err)
	assert.True(t, dec("1300").Equal(reporte.MontoEsperado))
	require.Len(t, reporte.Movimientos, 1)
	assert.Equal(t, "ingreso", reporte.Movimientos[0].Tipo)

	_, err = svc.ObtenerReporte(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no encontrada")
}
