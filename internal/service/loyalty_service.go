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

// LoyaltyService maintains customer point balances. Every mutation is an
// atomic increment paired with one append-only LoyaltyLog row in the same
// transaction, so the signed log sum always equals the balance.
type LoyaltyService interface {
	// AcreditarVentaTx accrues puntos for a sale inside the sale transaction
	// and returns the balance snapshot right after the increment.
	AcreditarVentaTx(tx *gorm.DB, clienteID uuid.UUID, puntos int, ventaID uuid.UUID, numeroTicket int, usuario string) (int, error)
	// RevertirVentaTx debits the points a voided sale granted, inside the
	// void transaction. Applied only under the loyalty_revertir_al_anular policy.
	RevertirVentaTx(tx *gorm.DB, venta *model.Venta, usuario string) error
	// AjustarPuntos applies a manual signed adjustment: explicit direction,
	// positive magnitude, mandatory justification.
	AjustarPuntos(ctx context.Context, clienteID uuid.UUID, usuario string, req dto.AjustePuntosRequest) (*dto.ClienteResponse, error)
	ListarMovimientos(ctx context.Context, clienteID uuid.UUID) ([]dto.LoyaltyLogResponse, error)
}

type loyaltyService struct {
	clientes repository.ClienteRepository
	logs     repository.LoyaltyLogRepository
}

func NewLoyaltyService(clientes repository.ClienteRepository, logs repository.LoyaltyLogRepository) LoyaltyService {
	return &loyaltyService{clientes: clientes, logs: logs}
}

func (s *loyaltyService) AcreditarVentaTx(tx *gorm.DB, clienteID uuid.UUID, puntos int, ventaID uuid.UUID, numeroTicket int, usuario string) (int, error) {
	if puntos <= 0 {
		return 0, errors.New("puntos a acreditar debe ser positivo")
	}
	if err := s.clientes.IncrementPuntosTx(tx, clienteID, puntos); err != nil {
		return 0, err
	}
	c, err := s.clientes.FindByIDTx(tx, clienteID)
	if err != nil {
		return 0, err
	}
	ventaRef := ventaID
	entry := &model.LoyaltyLog{
		ClienteID: clienteID,
		Monto:     puntos,
		Concepto:  fmt.Sprintf("Compra Ticket #%d", numeroTicket),
		Usuario:   usuario,
		VentaID:   &ventaRef,
	}
	if err := s.logs.CreateTx(tx, entry); err != nil {
		return 0, err
	}
	return c.Puntos, nil
}

func (s *loyaltyService) RevertirVentaTx(tx *gorm.DB, venta *model.Venta, usuario string) error {
	if venta.ClienteID == nil || venta.PuntosGanados <= 0 {
		return nil
	}
	if err := s.clientes.IncrementPuntosTx(tx, *venta.ClienteID, -venta.PuntosGanados); err != nil {
		return err
	}
	ventaRef := venta.ID
	entry := &model.LoyaltyLog{
		ClienteID: *venta.ClienteID,
		Monto:     -venta.PuntosGanados,
		Concepto:  fmt.Sprintf("Anulación Ticket #%d", venta.NumeroTicket),
		Usuario:   usuario,
		VentaID:   &ventaRef,
	}
	return s.logs.CreateTx(tx, entry)
}

func (s *loyaltyService) AjustarPuntos(ctx context.Context, clienteID uuid.UUID, usuario string, req dto.AjustePuntosRequest) (*dto.ClienteResponse, error) {
	if req.Puntos <= 0 {
		return nil, errors.New("la cantidad de puntos debe ser positiva")
	}
	if req.Concepto == "" {
		return nil, errors.New("el concepto del ajuste es obligatorio")
	}

	delta := req.Puntos
	if req.Tipo == "debito" {
		delta = -req.Puntos
	}

	txErr := runTx(ctx, s.clientes.DB(), func(tx *gorm.DB) error {
		// Balance guard on a locked read, so a concurrent debit cannot drive
		// the balance below zero between check and increment.
		cliente, err := s.clientes.FindByIDForUpdateTx(tx, clienteID)
		if err != nil {
			return errors.New("cliente no encontrado")
		}
		if delta < 0 && cliente.Puntos+delta < 0 {
			return fmt.Errorf("el cliente solo tiene %d puntos", cliente.Puntos)
		}
		if err := s.clientes.IncrementPuntosTx(tx, clienteID, delta); err != nil {
			return err
		}
		entry := &model.LoyaltyLog{
			ClienteID: clienteID,
			Monto:     delta,
			Concepto:  req.Concepto,
			Usuario:   usuario,
		}
		return s.logs.CreateTx(tx, entry)
	})
	if txErr != nil {
		return nil, txErr
	}

	actualizado, err := s.clientes.FindByID(ctx, clienteID)
	if err != nil {
		return nil, err
	}
	resp := clienteToResponse(actualizado)
	return &resp, nil
}

func (s *loyaltyService) ListarMovimientos(ctx context.Context, clienteID uuid.UUID) ([]dto.LoyaltyLogResponse, error) {
	logs, err := s.logs.ListByCliente(ctx, clienteID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.LoyaltyLogResponse, 0, len(logs))
	for _, l := range logs {
		item := dto.LoyaltyLogResponse{
			ID:        l.ID.String(),
			ClienteID: l.ClienteID.String(),
			Monto:     l.Monto,
			Concepto:  l.Concepto,
			Usuario:   l.Usuario,
			Fecha:     l.CreatedAt.Format("2006-01-02T15:04:05Z"),
		}
		if l.VentaID != nil {
			v := l.VentaID.String()
			item.VentaID = &v
		}
		resp = append(resp, item)
	}
	return resp, nil
}
