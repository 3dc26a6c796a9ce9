package repository

import (
	"context"

	"github.com/sjperalta/frontdesk-api/internal/models"

	"gorm.io/gorm"
)

// StayRepository reads stay records owned by the reservation module
type StayRepository interface {
	FindByFolio(ctx context.Context, folioNo string) (*models.Stay, error)
}

// RoomRepository reads room records owned by the housekeeping module
type RoomRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Room, error)
}

// PaymentModeRepository reads the payment mode catalogue
type PaymentModeRepository interface {
	FindByID(ctx context.Context, id uint) (*models.PaymentMode, error)
	ListActive(ctx context.Context) ([]models.PaymentMode, error)
}

type stayRepository struct {
	db *gorm.DB
}

// NewStayRepository creates a new stay repository
func NewStayRepository(db *gorm.DB) StayRepository {
	return &stayRepository{db: db}
}

func (r *stayRepository) FindByFolio(ctx context.Context, folioNo string) (*models.Stay, error) {
	var stay models.Stay
	err := r.db.WithContext(ctx).Where("folio_no = ?", folioNo).First(&stay).Error
	if err != nil {
		return nil, err
	}
	return &stay, nil
}

type roomRepository struct {
	db *gorm.DB
}

// NewRoomRepository creates a new room repository
func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &roomRepository{db: db}
}

func (r *roomRepository) FindByID(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	err := r.db.WithContext(ctx).First(&room, id).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

type paymentModeRepository struct {
	db *gorm.DB
}

// NewPaymentModeRepository creates a new payment mode repository
func NewPaymentModeRepository(db *gorm.DB) PaymentModeRepository {
	return &paymentModeRepository{db: db}
}

func (r *paymentModeRepository) FindByID(ctx context.Context, id uint) (*models.PaymentMode, error) {
	var mode models.PaymentMode
	err := r.db.WithContext(ctx).First(&mode, id).Error
	if err != nil {
		return nil, err
	}
	return &mode, nil
}

func (r *paymentModeRepository) ListActive(ctx context.Context) ([]models.PaymentMode, error) {
	var modes []models.PaymentMode
	err := r.db.WithContext(ctx).Where("active = ?", true).Order("name ASC").Find(&modes).Error
	return modes, err
}
