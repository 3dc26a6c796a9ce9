package repository

import (
	"context"

	"github.com/sjperalta/frontdesk-api/internal/models"

	"gorm.io/gorm"
)

// AdvanceRepository defines the interface for advance and receipt data access
type AdvanceRepository interface {
	WithTx(tx *gorm.DB) AdvanceRepository
	Create(ctx context.Context, advance *models.Advance) error
	ListForFolio(ctx context.Context, folioNo string) ([]models.Advance, error)
	ListForBill(ctx context.Context, billNo string) ([]models.Advance, error)
	ReparentFromFolio(ctx context.Context, folioNo string, ids []uint, billNo string) (int64, error)
}

type advanceRepository struct {
	db *gorm.DB
}

// NewAdvanceRepository creates a new advance repository
func NewAdvanceRepository(db *gorm.DB) AdvanceRepository {
	return &advanceRepository{db: db}
}

// WithTx returns a copy bound to an open transaction
func (r *advanceRepository) WithTx(tx *gorm.DB) AdvanceRepository {
	return &advanceRepository{db: tx}
}

func (r *advanceRepository) Create(ctx context.Context, advance *models.Advance) error {
	return translateCreateError(r.db.WithContext(ctx).Create(advance).Error)
}

// ListForFolio retrieves guest advances on a folio that no bill has absorbed yet.
// Settlement receipts are excluded: they already live in a bill's paid amount.
func (r *advanceRepository) ListForFolio(ctx context.Context, folioNo string) ([]models.Advance, error) {
	var advances []models.Advance
	err := r.db.WithContext(ctx).
		Where("folio_no = ? AND bill_no = ? AND kind = ?", folioNo, "", models.AdvanceKindGuest).
		Order("received_at ASC, id ASC").
		Find(&advances).Error
	return advances, err
}

// ListForBill retrieves every advance and settlement receipt attached to a bill
func (r *advanceRepository) ListForBill(ctx context.Context, billNo string) ([]models.Advance, error) {
	var advances []models.Advance
	err := r.db.WithContext(ctx).
		Where("bill_no = ?", billNo).
		Order("received_at ASC, id ASC").
		Find(&advances).Error
	return advances, err
}

func (r *advanceRepository) ReparentFromFolio(ctx context.Context, folioNo string, ids []uint, billNo string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Model(&models.Advance{}).
		Where("id IN ? AND folio_no = ? AND bill_no = ?", ids, folioNo, "").
		Update("bill_no", billNo)
	return result.RowsAffected, result.Error
}
