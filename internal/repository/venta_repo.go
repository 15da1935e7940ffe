package repository

import (
	"context"
	"errors"

	"github.com/wontivero/POS-2025-sub000/internal/dto"
	"github.com/wontivero/POS-2025-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrContadorNoInicializado is fatal: the ticket counter row must be
// provisioned by the operator (cmd/seed) before any sale can commit.
var ErrContadorNoInicializado = errors.New("contador de tickets no inicializado")

type VentaRepository interface {
	Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error)
	UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error
	// NextTicketNumber locks the counter row, increments it and returns the
	// new value. Must run inside the sale transaction.
	NextTicketNumber(ctx context.Context, tx *gorm.DB) (int, error)
	List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error)
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) DB() *gorm.DB { return r.db }

func (r *ventaRepo) Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error {
	return tx.WithContext(ctx).Create(v).Error
}

func (r *ventaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).Preload("Items").First(&v, id).Error
	return &v, err
}

func (r *ventaRepo) UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error {
	return tx.Model(&model.Venta{}).Where("id = ?", id).Update("estado", estado).Error
}

func (r *ventaRepo) NextTicketNumber(ctx context.Context, tx *gorm.DB) (int, error) {
	var c model.TicketCounter
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", model.CounterVentas).
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrContadorNoInicializado
	}
	if err != nil {
		return 0, err
	}
	c.Valor++
	if err := tx.Model(&model.TicketCounter{}).Where("id = ?", c.ID).Update("valor", c.Valor).Error; err != nil {
		return 0, err
	}
	return c.Valor, nil
}

func (r *ventaRepo) List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error) {
	var ventas []model.Venta
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Venta{})

	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	}
	switch {
	case filter.Desde != "" && filter.Hasta != "":
		q = q.Where("fecha BETWEEN ? AND ?", filter.Desde, filter.Hasta)
	case filter.Desde != "":
		q = q.Where("fecha = ?", filter.Desde)
	default:
		q = q.Where("fecha = CURRENT_DATE::text")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Items").
		Order("numero_ticket DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&ventas).Error

	return ventas, total, err
}
