package repository

import (
	"context"

	"github.com/wontivero/POS-2025-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LoyaltyLogRepository is append-only: no Update or Delete exists on purpose.
type LoyaltyLogRepository interface {
	CreateTx(tx *gorm.DB, entry *model.LoyaltyLog) error
	ListByCliente(ctx context.Context, clienteID uuid.UUID) ([]model.LoyaltyLog, error)
	// SumByCliente returns the signed sum of all deltas for a client — must
	// always equal the client's current puntos balance.
	SumByCliente(ctx context.Context, clienteID uuid.UUID) (int, error)
}

type loyaltyLogRepo struct{ db *gorm.DB }

func NewLoyaltyLogRepository(db *gorm.DB) LoyaltyLogRepository { return &loyaltyLogRepo{db: db} }

func (r *loyaltyLogRepo) CreateTx(tx *gorm.DB, entry *model.LoyaltyLog) error {
	return tx.Create(entry).Error
}

func (r *loyaltyLogRepo) ListByCliente(ctx context.Context, clienteID uuid.UUID) ([]model.LoyaltyLog, error) {
	var logs []model.LoyaltyLog
	err := r.db.WithContext(ctx).
		Where("cliente_id = ?", clienteID).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, err
}

func (r *loyaltyLogRepo) SumByCliente(ctx context.Context, clienteID uuid.UUID) (int, error) {
	var sum *int
	err := r.db.WithContext(ctx).Model(&model.LoyaltyLog{}).
		Select("SUM(monto)").
		Where("cliente_id = ?", clienteID).
		Scan(&sum).Error
	if err != nil || sum == nil {
		return 0, err
	}
	return *sum, nil
}
