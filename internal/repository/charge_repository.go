package repository

import (
	"context"

	"github.com/sjperalta/frontdesk-api/internal/models"

	"gorm.io/gorm"
)

// ChargeRepository defines the interface for posted charge data access
type ChargeRepository interface {
	WithTx(tx *gorm.DB) ChargeRepository
	Create(ctx context.Context, charge *models.Charge) error
	ListForFolio(ctx context.Context, folioNo string) ([]models.Charge, error)
	ListForBill(ctx context.Context, billNo string) ([]models.Charge, error)
	FindByIDs(ctx context.Context, ids []uint) ([]models.Charge, error)
	CountForBill(ctx context.Context, billNo string) (int64, error)
	ReparentFromFolio(ctx context.Context, folioNo string, ids []uint, billNo string) (int64, error)
	Reparent(ctx context.Context, ids []uint, fromBillNo, toBillNo string) (int64, error)
}

type chargeRepository struct {
	db *gorm.DB
}

// NewChargeRepository creates a new charge repository
func NewChargeRepository(db *gorm.DB) ChargeRepository {
	return &chargeRepository{db: db}
}

// WithTx returns a copy bound to an open transaction
func (r *chargeRepository) WithTx(tx *gorm.DB) ChargeRepository {
	return &chargeRepository{db: tx}
}

func (r *chargeRepository) Create(ctx context.Context, charge *models.Charge) error {
	return r.db.WithContext(ctx).Create(charge).Error
}

// ListForFolio retrieves the charges posted to a folio that no bill owns yet
func (r *chargeRepository) ListForFolio(ctx context.Context, folioNo string) ([]models.Charge, error) {
	var charges []models.Charge
	err := r.db.WithContext(ctx).
		Where("folio_no = ? AND bill_no = ?", folioNo, "").
		Order("posted_at ASC, id ASC").
		Find(&charges).Error
	return charges, err
}

// ListForBill retrieves the charges a bill currently owns
func (r *chargeRepository) ListForBill(ctx context.Context, billNo string) ([]models.Charge, error) {
	var charges []models.Charge
	err := r.db.WithContext(ctx).
		Where("bill_no = ?", billNo).
		Order("posted_at ASC, id ASC").
		Find(&charges).Error
	return charges, err
}

func (r *chargeRepository) FindByIDs(ctx context.Context, ids []uint) ([]models.Charge, error) {
	var charges []models.Charge
	if len(ids) == 0 {
		return charges, nil
	}
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&charges).Error
	return charges, err
}

func (r *chargeRepository) CountForBill(ctx context.Context, billNo string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Charge{}).
		Where("bill_no = ?", billNo).
		Count(&count).Error
	return count, err
}

// ReparentFromFolio moves unbilled folio charges onto a bill.
// It returns how many rows moved so callers can detect a concurrent claim.
func (r *chargeRepository) ReparentFromFolio(ctx context.Context, folioNo string, ids []uint, billNo string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Model(&models.Charge{}).
		Where("id IN ? AND folio_no = ? AND bill_no = ?", ids, folioNo, "").
		Update("bill_no", billNo)
	return result.RowsAffected, result.Error
}

// Reparent moves charges between bills. Only rows still owned by fromBillNo move.
func (r *chargeRepository) Reparent(ctx context.Context, ids []uint, fromBillNo, toBillNo string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Model(&models.Charge{}).
		Where("id IN ? AND bill_no = ?", ids, fromBillNo).
		Update("bill_no", toBillNo)
	return result.RowsAffected, result.Error
}
