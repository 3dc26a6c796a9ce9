package repository

import (
	"context"

	"github.com/sjperalta/frontdesk-api/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BillRepository defines the interface for bill data access
type BillRepository interface {
	WithTx(tx *gorm.DB) BillRepository
	FindByBillNo(ctx context.Context, billNo string) (*models.Bill, error)
	FindByBillNoForUpdate(ctx context.Context, billNo string) (*models.Bill, error)
	FindByBillNoWithNotes(ctx context.Context, billNo string) (*models.Bill, error)
	FindByFolio(ctx context.Context, folioNo string) ([]models.Bill, error)
	FindSplits(ctx context.Context, rootBillNo string) ([]models.Bill, error)
	CountSplits(ctx context.Context, rootBillNo string) (int64, error)
	ListOpen(ctx context.Context, query *ListQuery) ([]models.Bill, int64, error)
	Create(ctx context.Context, bill *models.Bill) error
	Update(ctx context.Context, bill *models.Bill) error
	AppendPaymentNote(ctx context.Context, note *models.PaymentNote) error
	FindPaymentNotes(ctx context.Context, billNo string) ([]models.PaymentNote, error)
}

type billRepository struct {
	db *gorm.DB
}

// NewBillRepository creates a new bill repository
func NewBillRepository(db *gorm.DB) BillRepository {
	return &billRepository{db: db}
}

// WithTx returns a copy bound to an open transaction
func (r *billRepository) WithTx(tx *gorm.DB) BillRepository {
	return &billRepository{db: tx}
}

func (r *billRepository) FindByBillNo(ctx context.Context, billNo string) (*models.Bill, error) {
	var bill models.Bill
	err := r.db.WithContext(ctx).Where("bill_no = ?", billNo).First(&bill).Error
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

// FindByBillNoForUpdate row-locks the bill until the surrounding transaction ends.
// Split and settlement use it to serialize their read-modify-write of amounts.
func (r *billRepository) FindByBillNoForUpdate(ctx context.Context, billNo string) (*models.Bill, error) {
	var bill models.Bill
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("bill_no = ?", billNo).
		First(&bill).Error
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

func (r *billRepository) FindByBillNoWithNotes(ctx context.Context, billNo string) (*models.Bill, error) {
	var bill models.Bill
	err := r.db.WithContext(ctx).
		Preload("PaymentNotes", func(db *gorm.DB) *gorm.DB {
			return db.Order("recorded_at ASC, id ASC")
		}).
		Where("bill_no = ?", billNo).
		First(&bill).Error
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

func (r *billRepository) FindByFolio(ctx context.Context, folioNo string) ([]models.Bill, error) {
	var bills []models.Bill
	err := r.db.WithContext(ctx).
		Where("folio_no = ?", folioNo).
		Order("created_at ASC, id ASC").
		Find(&bills).Error
	return bills, err
}

// FindSplits returns every split of a root bill ordered by split sequence
func (r *billRepository) FindSplits(ctx context.Context, rootBillNo string) ([]models.Bill, error) {
	var bills []models.Bill
	err := r.db.WithContext(ctx).
		Where("original_bill_no = ? AND is_split_bill = ?", rootBillNo, true).
		Order("split_sequence ASC").
		Find(&bills).Error
	return bills, err
}

func (r *billRepository) CountSplits(ctx context.Context, rootBillNo string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Bill{}).
		Where("original_bill_no = ? AND is_split_bill = ?", rootBillNo, true).
		Count(&count).Error
	return count, err
}

// ListOpen returns bills still PENDING or PARTIAL, oldest first
func (r *billRepository) ListOpen(ctx context.Context, query *ListQuery) ([]models.Bill, int64, error) {
	var bills []models.Bill
	var total int64

	db := r.db.WithContext(ctx).
		Model(&models.Bill{}).
		Where("settlement_status IN ?", models.OpenSettlementStatuses)

	if val, ok := query.Filters["folio_no"]; ok && val != "" {
		db = db.Where("folio_no = ?", val)
	}
	if val, ok := query.Filters["status"]; ok && val != "" {
		db = db.Where("settlement_status = ?", val)
	}
	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Where("guest_name LIKE ? OR bill_no LIKE ?", search, search)
	}

	countDB := db.Session(&gorm.Session{})
	if err := countDB.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	db = db.Order("created_at ASC, id ASC")
	if query.PerPage > 0 {
		db = db.Offset(query.Offset()).Limit(query.PerPage)
	}

	err := db.Preload("PaymentNotes", func(db *gorm.DB) *gorm.DB {
		return db.Order("recorded_at ASC, id ASC")
	}).Find(&bills).Error
	return bills, total, err
}

func (r *billRepository) Create(ctx context.Context, bill *models.Bill) error {
	return translateCreateError(r.db.WithContext(ctx).Omit(clause.Associations).Create(bill).Error)
}

func (r *billRepository) Update(ctx context.Context, bill *models.Bill) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(bill).Error
}

func (r *billRepository) AppendPaymentNote(ctx context.Context, note *models.PaymentNote) error {
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *billRepository) FindPaymentNotes(ctx context.Context, billNo string) ([]models.PaymentNote, error) {
	var notes []models.PaymentNote
	err := r.db.WithContext(ctx).
		Where("bill_no = ?", billNo).
		Order("recorded_at ASC, id ASC").
		Find(&notes).Error
	return notes, err
}
