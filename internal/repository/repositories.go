package repository

import (
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	Bill        BillRepository
	Charge      ChargeRepository
	Advance     AdvanceRepository
	Audit       AuditRepository
	Stay        StayRepository
	Room        RoomRepository
	PaymentMode PaymentModeRepository
}

// NewRepositories creates all repository instances
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Bill:        NewBillRepository(db),
		Charge:      NewChargeRepository(db),
		Advance:     NewAdvanceRepository(db),
		Audit:       NewAuditRepository(db),
		Stay:        NewStayRepository(db),
		Room:        NewRoomRepository(db),
		PaymentMode: NewPaymentModeRepository(db),
	}
}
