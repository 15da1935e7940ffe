package service

import (
	"context"
	"time"

	"github.com/wontivero/POS-2025-sub000/internal/dto"
	"github.com/wontivero/POS-2025-sub000/internal/model"
	"github.com/wontivero/POS-2025-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory repository stubs. Every DB() returns nil so runTx executes the
// transaction body directly, letting the services run without a database.

// ── txJournal ─────────────────────────────────────────────────────────────────

// txJournal collects undo closures for writes made through the Tx-suffixed
// stub methods. Calling rollback replays them in reverse, emulating what the
// database does when the surrounding transaction aborts. A nil journal is a
// no-op, so stubs work unchanged in tests that never roll back.
type txJournal struct {
	undo []func()
}

func (j *txJournal) anotar(fn func()) {
	if j != nil {
		j.undo = append(j.undo, fn)
	}
}

func (j *txJournal) rollback() {
	for i := len(j.undo) - 1; i >= 0; i-- {
		j.undo[i]()
	}
	j.undo = nil
}

// ── VentaRepository ───────────────────────────────────────────────────────────

type stubVentaRepo struct {
	ventas     map[uuid.UUID]*model.Venta
	seq        int
	counterErr error
	journal    *txJournal
}

func newStubVentaRepo() *stubVentaRepo {
	return &stubVentaRepo{ventas: make(map[uuid.UUID]*model.Venta)}
}

func (r *stubVentaRepo) Create(_ context.Context, _ *gorm.DB, v *model.Venta) error {
	r.ventas[v.ID] = v
	r.journal.anotar(func() { delete(r.ventas, v.ID) })
	return nil
}

func (r *stubVentaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venta, error) {
	v, ok := r.ventas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func (r *stubVentaRepo) UpdateEstadoTx(_ *gorm.DB, id uuid.UUID, estado string) error {
	v, ok := r.ventas[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	anterior := v.Estado
	v.Estado = estado
	r.journal.anotar(func() { v.Estado = anterior })
	return nil
}

func (r *stubVentaRepo) NextTicketNumber(_ context.Context, _ *gorm.DB) (int, error) {
	if r.counterErr != nil {
		return 0, r.counterErr
	}
	r.seq++
	r.journal.anotar(func() { r.seq-- })
	return r.seq, nil
}

func (r *stubVentaRepo) List(_ context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error) {
	var out []model.Venta
	for _, v := range r.ventas {
		if filter.Estado != "" && filter.Estado != "all" && v.Estado != filter.Estado {
			continue
		}
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

func (r *stubVentaRepo) DB() *gorm.DB { return nil }

var _ repository.VentaRepository = (*stubVentaRepo)(nil)

// ── ProductoRepository ────────────────────────────────────────────────────────

type stubProductoRepo struct {
	productos map[uuid.UUID]*model.Producto
	journal   *txJournal
	// stockVistoSinLock, when set for a product, is what the unlocked
	// FindByIDTx reports: a snapshot taken while another transaction still
	// holds the row. The locked read always sees the committed value.
	stockVistoSinLock map[uuid.UUID]int
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{productos: make(map[uuid.UUID]*model.Producto)}
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductoRepo) FindByBarcode(_ context.Context, barcode string) (*model.Producto, error) {
	for _, p := range r.productos {
		if p.CodigoBarras != nil && *p.CodigoBarras == barcode && p.Activo {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductoRepo) List(_ context.Context, _ dto.ProductoFilter) ([]model.Producto, int64, error) {
	var out []model.Producto
	for _, p := range r.productos {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductoRepo) ListPorRubro(_ context.Context, rubro string) ([]model.Producto, error) {
	var out []model.Producto
	for _, p := range r.productos {
		if p.Rubro == rubro && p.Activo {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Activo = false
	return nil
}

func (r *stubProductoRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Activo = true
	return nil
}

func (r *stubProductoRepo) AlertasStock(_ context.Context) ([]model.Producto, error) {
	var out []model.Producto
	for _, p := range r.productos {
		if p.Activo && p.StockActual <= p.StockMinimo {
			out = append(out, *p)
		}
	}
	return out, nil
}

// FindByIDTx returns a copy, like a real row scan, so stock snapshots taken
// before UpdateStockTx stay untouched by the update.
func (r *stubProductoRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	if stale, ok := r.stockVistoSinLock[id]; ok {
		cp.StockActual = stale
	}
	return &cp, nil
}

func (r *stubProductoRepo) FindByIDForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductoRepo) UpdateStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.StockActual += delta
	r.journal.anotar(func() { p.StockActual -= delta })
	return nil
}

func (r *stubProductoRepo) UpdatePreciosTx(_ *gorm.DB, id uuid.UUID, nuevoCosto, nuevaVenta, margen decimal.Decimal) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.PrecioCosto = nuevoCosto
	p.PrecioVenta = nuevaVenta
	p.MargenPct = margen
	return nil
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

// ── ClienteRepository ─────────────────────────────────────────────────────────

type stubClienteRepo struct {
	clientes map[uuid.UUID]*model.Cliente
	journal  *txJournal
	// puntosVistosSinLock plays the same role as stockVistoSinLock: the
	// balance an unlocked read would report while another debit is in flight.
	puntosVistosSinLock map[uuid.UUID]int
}

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{clientes: make(map[uuid.UUID]*model.Cliente)}
}

func (r *stubClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	if stale, ok := r.puntosVistosSinLock[id]; ok {
		cp.Puntos = stale
	}
	return &cp, nil
}

func (r *stubClienteRepo) List(_ context.Context, _ string, _, _ int) ([]model.Cliente, int64, error) {
	var out []model.Cliente
	for _, c := range r.clientes {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *stubClienteRepo) Update(_ context.Context, c *model.Cliente) error {
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	c, ok := r.clientes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Activo = false
	return nil
}

func (r *stubClienteRepo) IncrementPuntosTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	c, ok := r.clientes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Puntos += delta
	r.journal.anotar(func() { c.Puntos -= delta })
	return nil
}

func (r *stubClienteRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Cliente, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubClienteRepo) FindByIDForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubClienteRepo) DB() *gorm.DB { return nil }

var _ repository.ClienteRepository = (*stubClienteRepo)(nil)

// ── MovimientoStockRepository ─────────────────────────────────────────────────

type stubMovimientoStockRepo struct {
	movs    []model.MovimientoStock
	journal *txJournal
}

func (r *stubMovimientoStockRepo) CreateTx(_ *gorm.DB, m *model.MovimientoStock) error {
	m.ID = uuid.New()
	m.CreatedAt = time.Now()
	r.movs = append(r.movs, *m)
	r.journal.anotar(func() { r.movs = r.movs[:len(r.movs)-1] })
	return nil
}

func (r *stubMovimientoStockRepo) ListByProducto(_ context.Context, productoID uuid.UUID, limit int) ([]model.MovimientoStock, error) {
	var out []model.MovimientoStock
	for _, m := range r.movs {
		if m.ProductoID == productoID {
			out = append(out, m)
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

var _ repository.MovimientoStockRepository = (*stubMovimientoStockRepo)(nil)

// ── HistorialPrecioRepository ─────────────────────────────────────────────────

type stubHistorialPrecioRepo struct {
	rows []model.HistorialPrecio
}

func (r *stubHistorialPrecioRepo) CreateTx(_ *gorm.DB, h *model.HistorialPrecio) error {
	h.ID = uuid.New()
	h.CreatedAt = time.Now()
	r.rows = append(r.rows, *h)
	return nil
}

func (r *stubHistorialPrecioRepo) ListByProducto(_ context.Context, productoID uuid.UUID, limit int) ([]model.HistorialPrecio, error) {
	var out []model.HistorialPrecio
	for _, h := range r.rows {
		if h.ProductoID == productoID {
			out = append(out, h)
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

var _ repository.HistorialPrecioRepository = (*stubHistorialPrecioRepo)(nil)

// ── LoyaltyLogRepository ──────────────────────────────────────────────────────

type stubLoyaltyLogRepo struct {
	entries   []model.LoyaltyLog
	journal   *txJournal
	createErr error
}

func (r *stubLoyaltyLogRepo) CreateTx(_ *gorm.DB, entry *model.LoyaltyLog) error {
	if r.createErr != nil {
		return r.createErr
	}
	entry.ID = uuid.New()
	entry.CreatedAt = time.Now()
	r.entries = append(r.entries, *entry)
	r.journal.anotar(func() { r.entries = r.entries[:len(r.entries)-1] })
	return nil
}

func (r *stubLoyaltyLogRepo) ListByCliente(_ context.Context, clienteID uuid.UUID) ([]model.LoyaltyLog, error) {
	var out []model.LoyaltyLog
	for _, e := range r.entries {
		if e.ClienteID == clienteID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *stubLoyaltyLogRepo) SumByCliente(_ context.Context, clienteID uuid.UUID) (int, error) {
	sum := 0
	for _, e := range r.entries {
		if e.ClienteID == clienteID {
			sum += e.Monto
		}
	}
	return sum, nil
}

var _ repository.LoyaltyLogRepository = (*stubLoyaltyLogRepo)(nil)

// ── CajaRepository ────────────────────────────────────────────────────────────

type stubCajaRepo struct {
	sesiones    map[uuid.UUID]*model.SesionCaja
	movimientos []model.CajaMovimiento
	journal     *txJournal
}

func newStubCajaRepo() *stubCajaRepo {
	return &stubCajaRepo{sesiones: make(map[uuid.UUID]*model.SesionCaja)}
}

func (r *stubCajaRepo) abrirSesion(montoInicial decimal.Decimal) *model.SesionCaja {
	s := &model.SesionCaja{
		ID:           uuid.New(),
		UsuarioID:    uuid.New(),
		MontoInicial: montoInicial,
		Estado:       "abierta",
		OpenedAt:     time.Now(),
	}
	r.sesiones[s.ID] = s
	return s
}

func (r *stubCajaRepo) CreateSesion(_ context.Context, s *model.SesionCaja) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sesiones[s.ID] = s
	return nil
}

func (r *stubCajaRepo) FindSesionAbierta(_ context.Context) (*model.SesionCaja, error) {
	for _, s := range r.sesiones {
		if s.Estado == "abierta" {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCajaRepo) FindSesionByID(_ context.Context, id uuid.UUID) (*model.SesionCaja, error) {
	s, ok := r.sesiones[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubCajaRepo) UpdateSesion(_ context.Context, s *model.SesionCaja) error {
	r.sesiones[s.ID] = s
	return nil
}

func (r *stubCajaRepo) CreateMovimiento(_ context.Context, m *model.CajaMovimiento) error {
	// Non-transactional write: deliberately not journaled.
	m.ID = uuid.New()
	m.CreatedAt = time.Now()
	r.movimientos = append(r.movimientos, *m)
	return nil
}

func (r *stubCajaRepo) CreateMovimientoTx(_ *gorm.DB, m *model.CajaMovimiento) error {
	m.ID = uuid.New()
	m.CreatedAt = time.Now()
	r.movimientos = append(r.movimientos, *m)
	r.journal.anotar(func() { r.movimientos = r.movimientos[:len(r.movimientos)-1] })
	return nil
}

func (r *stubCajaRepo) ListMovimientos(_ context.Context, sesionCajaID uuid.UUID) ([]model.CajaMovimiento, error) {
	var out []model.CajaMovimiento
	for _, m := range r.movimientos {
		if m.SesionCajaID == sesionCajaID {
			out = append(out, m)
		}
	}
	return out, nil
}

// SumEfectivo mirrors the SQL: sales settled in cash plus signed manual and
// void movements.
func (r *stubCajaRepo) SumEfectivo(_ context.Context, sesionCajaID uuid.UUID) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, m := range r.movimientos {
		if m.SesionCajaID != sesionCajaID {
			continue
		}
		switch m.Tipo {
		case "venta":
			if m.MetodoPago != nil && *m.MetodoPago == "contado" {
				sum = sum.Add(m.Monto)
			}
		case "ingreso", "egreso", "anulacion":
			sum = sum.Add(m.Monto)
		}
	}
	return sum, nil
}

var _ repository.CajaRepository = (*stubCajaRepo)(nil)

// ── SettingsService ───────────────────────────────────────────────────────────

type stubSettingsService struct {
	cfg model.AppSettings
}

func (s *stubSettingsService) Get(_ context.Context) (*model.AppSettings, error) {
	cfg := s.cfg
	return &cfg, nil
}

func (s *stubSettingsService) Actualizar(_ context.Context, _ dto.ActualizarSettingsRequest) (*dto.SettingsResponse, error) {
	return nil, nil
}

var _ SettingsService = (*stubSettingsService)(nil)
