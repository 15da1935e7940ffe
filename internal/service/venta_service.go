package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wontivero/POS-2025-sub000/internal/dto"
	"github.com/wontivero/POS-2025-sub000/internal/model"
	"github.com/wontivero/POS-2025-sub000/internal/pricing"
	"github.com/wontivero/POS-2025-sub000/internal/repository"
	"github.com/wontivero/POS-2025-sub000/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Vendedor is the operator snapshot frozen onto every sale.
type Vendedor struct {
	ID     uuid.UUID
	Email  string
	Nombre string
}

type VentaService interface {
	RegistrarVenta(ctx context.Context, vendedor Vendedor, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error)
	AnularVenta(ctx context.Context, id uuid.UUID, usuario string, motivo string) error
	ObtenerVenta(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error)
	ListVentas(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error)
}

type ventaService struct {
	repo       repository.VentaRepository
	inventario InventarioService
	loyalty    LoyaltyService
	caja       CajaService
	cajaRepo   repository.CajaRepository
	productos  repository.ProductoRepository
	clientes   repository.ClienteRepository
	settings   SettingsService
	dispatcher *worker.Dispatcher
}

func NewVentaService(
	repo repository.VentaRepository,
	inventario InventarioService,
	loyalty LoyaltyService,
	caja CajaService,
	cajaRepo repository.CajaRepository,
	productos repository.ProductoRepository,
	clientes repository.ClienteRepository,
	settings SettingsService,
	dispatcher *worker.Dispatcher,
) VentaService {
	return &ventaService{
		repo:       repo,
		inventario: inventario,
		loyalty:    loyalty,
		caja:       caja,
		cajaRepo:   cajaRepo,
		productos:  productos,
		clientes:   clientes,
		settings:   settings,
		dispatcher: dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// resolvedItem is a cart line after catalog resolution, with the product data
// frozen for the venta snapshot.
type resolvedItem struct {
	productoID *uuid.UUID
	nombre     string
	marca      string
	color      string
	rubro      string
	precio     decimal.Decimal
	costo      decimal.Decimal
	cantidad   int
	esGenerico bool
	subtotal   decimal.Decimal
}

// ── RegistrarVenta ────────────────────────────────────────────────────────────
// All-or-nothing pipeline:
//   1. Validate: cart non-empty, products resolvable, pagos cover the total,
//      caja abierta when the sale settles cash.
//   2. BEGIN TX: next ticket number, descontar stock + movimientos, acreditar
//      puntos + log, create venta with snapshots, movimientos de caja.
//   3. COMMIT — any failure rolls every write back.
//   4. (async) dispatch ticket PDF job, best-effort.

func (s *ventaService) RegistrarVenta(ctx context.Context, vendedor Vendedor, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error) {
	if len(req.Items) == 0 {
		return nil, errors.New("el carrito está vacío")
	}

	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("configuración no disponible: %w", err)
	}

	// Resolve products and freeze snapshots (pre-flight, outside TX).
	resolved := make([]resolvedItem, 0, len(req.Items))
	lineas := make([]pricing.LineaVenta, 0, len(req.Items))
	for _, item := range req.Items {
		r, err := s.resolveItem(ctx, item)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, r)
		lineas = append(lineas, pricing.LineaVenta{
			Precio:     r.precio,
			Costo:      r.costo,
			Cantidad:   r.cantidad,
			EsGenerico: r.esGenerico,
		})
	}

	// Payment breakdown. Surcharge percentage defaults to the configured one.
	recargoPct := req.Pagos.RecargoCreditoPct
	if req.Pagos.Credito.IsPositive() && recargoPct.IsZero() {
		recargoPct = cfg.RecargoCreditoPct
	}
	pagos := pricing.Pagos{
		Contado:           req.Pagos.Contado,
		Transferencia:     req.Pagos.Transferencia,
		Debito:            req.Pagos.Debito,
		Credito:           req.Pagos.Credito,
		RecargoCreditoPct: recargoPct,
	}

	total := pricing.TicketTotal(lineas, pagos)
	ganancia := pricing.Ganancia(lineas)

	totalPagado := pricing.TotalPagado(pagos)
	if totalPagado.LessThan(total) {
		return nil, errors.New("el monto total de pagos es insuficiente")
	}
	vuelto := totalPagado.Sub(total)

	// Caja gating: a cash-settled sale requires an open drawer session.
	sesion, _ := s.caja.SesionAbierta(ctx)
	if req.Pagos.Contado.IsPositive() && sesion == nil {
		return nil, errors.New("no hay sesión de caja abierta")
	}

	// Cliente resolution — enables loyalty accrual.
	var cliente *model.Cliente
	if req.ClienteID != nil {
		cid, err := uuid.Parse(*req.ClienteID)
		if err != nil {
			return nil, fmt.Errorf("cliente_id inválido: %w", err)
		}
		cliente, err = s.clientes.FindByID(ctx, cid)
		if err != nil {
			return nil, errors.New("cliente no encontrado")
		}
	}

	puntosGanados := 0
	if cfg.LoyaltyHabilitado && cliente != nil {
		puntosGanados = pricing.PuntosGanados(total, cfg.LoyaltyPorcentaje)
	}

	now := time.Now()
	venta := model.Venta{
		// Pre-assigned so in-TX ledger rows can reference the sale.
		ID:                uuid.New(),
		Fecha:             now.Format("2006-01-02"),
		FechaDisplay:      now.Format("02/01/2006 15:04"),
		UsuarioID:         vendedor.ID,
		VendedorEmail:     vendedor.Email,
		VendedorNombre:    vendedor.Nombre,
		PagoContado:       pagos.Contado,
		PagoTransferencia: pagos.Transferencia,
		PagoDebito:        pagos.Debito,
		PagoCredito:       pagos.Credito,
		RecargoCreditoPct: recargoPct,
		Total:             total,
		Ganancia:          ganancia,
		Estado:            "finalizada",
		PuntosGanados:     puntosGanados,
	}
	if sesion != nil {
		sid := sesion.ID
		venta.SesionCajaID = &sid
	}
	if cliente != nil {
		cid := cliente.ID
		venta.ClienteID = &cid
		nombre := cliente.Nombre
		venta.ClienteNombre = &nombre
		venta.ClienteCUIT = cliente.CUIT
		venta.ClienteDomicilio = cliente.Domicilio
	}
	for _, r := range resolved {
		venta.Items = append(venta.Items, model.VentaItem{
			ProductoID: r.productoID,
			Nombre:     r.nombre,
			Marca:      r.marca,
			Color:      r.color,
			Rubro:      r.rubro,
			Cantidad:   r.cantidad,
			Precio:     r.precio,
			Costo:      r.costo,
			EsGenerico: r.esGenerico,
			Subtotal:   r.subtotal,
		})
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		ticketNum, err := s.repo.NextTicketNumber(ctx, tx)
		if err != nil {
			return err
		}
		venta.NumeroTicket = ticketNum

		// Inventory ledger — generic lines never move stock.
		for _, r := range resolved {
			if r.esGenerico || r.productoID == nil {
				continue
			}
			conflicto, err := s.inventario.DescontarStockTx(ctx, tx, *r.productoID, r.cantidad, venta.ID, ticketNum, cfg.PermitirStockNegativo)
			if err != nil {
				return err
			}
			if conflicto {
				venta.ConflictoStock = true
			}
		}

		// Loyalty accrual: atomic increment + append-only log + snapshot.
		if puntosGanados > 0 && cliente != nil {
			snapshot, err := s.loyalty.AcreditarVentaTx(tx, cliente.ID, puntosGanados, venta.ID, ticketNum, vendedor.Email)
			if err != nil {
				return err
			}
			venta.PuntosTotalSnapshot = &snapshot
		}

		if err := s.repo.Create(ctx, tx, &venta); err != nil {
			return err
		}

		// Cash-drawer ledger — one movement per settled payment method.
		if sesion != nil {
			for metodo, monto := range map[string]decimal.Decimal{
				"contado":       pagos.Contado,
				"transferencia": pagos.Transferencia,
				"debito":        pagos.Debito,
				"credito":       pagos.Credito,
			} {
				if !monto.IsPositive() {
					continue
				}
				m := metodo
				mov := model.CajaMovimiento{
					SesionCajaID: sesion.ID,
					Tipo:         "venta",
					MetodoPago:   &m,
					Monto:        monto,
					Descripcion:  fmt.Sprintf("Venta #%d", ticketNum),
					Usuario:      vendedor.Email,
					ReferenciaID: &venta.ID,
				}
				if err := s.cajaRepo.CreateMovimientoTx(tx, &mov); err != nil {
					return err
				}
			}
		}

		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// Async ticket PDF + email — best-effort, fire & forget.
	if s.dispatcher != nil {
		payload := map[string]interface{}{"venta_id": venta.ID.String()}
		if cliente != nil && cliente.Email != nil && *cliente.Email != "" {
			payload["cliente_email"] = *cliente.Email
		}
		_ = s.dispatcher.EnqueueTicket(ctx, payload)
	}

	resp := ventaToResponse(&venta)
	resp.Vuelto = vuelto
	return resp, nil
}

func (s *ventaService) resolveItem(ctx context.Context, item dto.ItemVentaRequest) (resolvedItem, error) {
	if item.EsGenerico || item.ProductoID == nil {
		if item.Nombre == "" {
			return resolvedItem{}, errors.New("un ítem genérico requiere nombre")
		}
		if !item.Precio.IsPositive() {
			return resolvedItem{}, fmt.Errorf("el ítem %q requiere un precio positivo", item.Nombre)
		}
		return resolvedItem{
			nombre:     item.Nombre,
			precio:     item.Precio,
			cantidad:   item.Cantidad,
			esGenerico: true,
			subtotal:   item.Precio.Mul(decimal.NewFromInt(int64(item.Cantidad))),
		}, nil
	}

	pid, err := uuid.Parse(*item.ProductoID)
	if err != nil {
		return resolvedItem{}, fmt.Errorf("producto_id inválido: %w", err)
	}
	p, err := s.productos.FindByID(ctx, pid)
	if err != nil {
		return resolvedItem{}, fmt.Errorf("producto %s no encontrado", *item.ProductoID)
	}
	if !p.Activo {
		return resolvedItem{}, fmt.Errorf("producto %s está inactivo y no puede venderse", p.Nombre)
	}
	id := p.ID
	return resolvedItem{
		productoID: &id,
		nombre:     p.Nombre,
		marca:      p.Marca,
		color:      p.Color,
		rubro:      p.Rubro,
		precio:     p.PrecioVenta,
		costo:      p.PrecioCosto,
		cantidad:   item.Cantidad,
		subtotal:   p.PrecioVenta.Mul(decimal.NewFromInt(int64(item.Cantidad))),
	}, nil
}

// ── AnularVenta ───────────────────────────────────────────────────────────────
// Compensating void: restores stock, optionally reverses loyalty per policy,
// flips estado to "anulada" — all in one transaction. The cash egress
// movement is recorded afterwards against the currently open session.

func (s *ventaService) AnularVenta(ctx context.Context, id uuid.UUID, usuario string, motivo string) error {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("venta no encontrada")
	}
	if venta.Estado == "anulada" {
		return errors.New("la venta ya está anulada")
	}

	// Cash refunds need an open drawer to record the egress.
	var sesion *model.SesionCaja
	if venta.PagoContado.IsPositive() {
		sesion, _ = s.caja.SesionAbierta(ctx)
		if sesion == nil {
			return errors.New("para anular una venta en efectivo la caja debe estar abierta")
		}
	}

	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return fmt.Errorf("configuración no disponible: %w", err)
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for _, item := range venta.Items {
			if item.EsGenerico || item.ProductoID == nil {
				continue
			}
			if err := s.inventario.RestaurarStockTx(ctx, tx, *item.ProductoID, item.Cantidad, venta.ID, venta.NumeroTicket, motivo); err != nil {
				return err
			}
		}

		if cfg.LoyaltyRevertirAlAnular {
			if err := s.loyalty.RevertirVentaTx(tx, venta, usuario); err != nil {
				return err
			}
		}

		return s.repo.UpdateEstadoTx(tx, id, "anulada")
	})
	if txErr != nil {
		return txErr
	}

	// Egress for the refunded cash, outside the void transaction.
	if venta.PagoContado.IsPositive() && sesion != nil {
		metodo := "contado"
		mov := &model.CajaMovimiento{
			SesionCajaID: sesion.ID,
			Tipo:         "anulacion",
			MetodoPago:   &metodo,
			Monto:        venta.PagoContado.Neg(),
			Descripcion:  fmt.Sprintf("Anulación venta #%d — %s", venta.NumeroTicket, motivo),
			Usuario:      usuario,
			ReferenciaID: &venta.ID,
		}
		if err := s.cajaRepo.CreateMovimiento(ctx, mov); err != nil {
			return fmt.Errorf("venta anulada pero el egreso de caja falló: %w", err)
		}
	}

	return nil
}

// ── Queries ──────────────────────────────────────────────────────────────────

func (s *ventaService) ObtenerVenta(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("venta no encontrada")
	}
	return ventaToResponse(venta), nil
}

func (s *ventaService) ListVentas(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	if filter.Estado == "" {
		filter.Estado = "finalizada"
	}
	ventas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VentaResponse, 0, len(ventas))
	for i := range ventas {
		items = append(items, *ventaToResponse(&ventas[i]))
	}
	return &dto.VentaListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func ventaToResponse(v *model.Venta) *dto.VentaResponse {
	items := make([]dto.ItemVentaResponse, 0, len(v.Items))
	for _, item := range v.Items {
		var pid *string
		if item.ProductoID != nil {
			s := item.ProductoID.String()
			pid = &s
		}
		items = append(items, dto.ItemVentaResponse{
			ProductoID: pid,
			Nombre:     item.Nombre,
			Marca:      item.Marca,
			Cantidad:   item.Cantidad,
			Precio:     item.Precio,
			Subtotal:   item.Subtotal,
			EsGenerico: item.EsGenerico,
		})
	}
	return &dto.VentaResponse{
		ID:           v.ID.String(),
		NumeroTicket: v.NumeroTicket,
		Fecha:        v.Fecha,
		FechaDisplay: v.FechaDisplay,
		Items:        items,
		Pagos: dto.PagosResponse{
			Contado:           v.PagoContado,
			Transferencia:     v.PagoTransferencia,
			Debito:            v.PagoDebito,
			Credito:           v.PagoCredito,
			RecargoCreditoPct: v.RecargoCreditoPct,
			RecargoMonto:      pricing.RecargoCredito(v.PagoCredito, v.RecargoCreditoPct),
		},
		Total:               v.Total,
		Ganancia:            v.Ganancia,
		Estado:              v.Estado,
		ClienteNombre:       v.ClienteNombre,
		VendedorNombre:      v.VendedorNombre,
		PuntosGanados:       v.PuntosGanados,
		PuntosTotalSnapshot: v.PuntosTotalSnapshot,
		ConflictoStock:      v.ConflictoStock,
	}
}
