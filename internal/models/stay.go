package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// The records below are owned by the reservation, room and reference-data
// modules. The ledger only reads them.

// Stay is a guest check-in. FolioNo identifies the running account of the stay.
type Stay struct {
	ID            uint             `gorm:"primaryKey" json:"id"`
	FolioNo       string           `gorm:"size:40;not null;uniqueIndex" json:"folio_no"`
	ReservationNo string           `gorm:"size:40;index" json:"reservation_no"`
	GuestName     string           `gorm:"size:150;not null" json:"guest_name"`
	GuestEmail    string           `gorm:"size:150" json:"guest_email"`
	RoomID        uint             `gorm:"not null;index" json:"room_id"`
	RoomRate      *decimal.Decimal `gorm:"type:decimal(15,2)" json:"room_rate"`
	Active        bool             `gorm:"not null;index" json:"active"`
	CheckInAt     time.Time        `json:"check_in_at"`
	CheckOutAt    *time.Time       `json:"check_out_at"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// TableName specifies the table name for Stay
func (Stay) TableName() string {
	return "stays"
}

// Room is a sellable room in inventory
type Room struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RoomNo    string    `gorm:"size:20;not null;uniqueIndex" json:"room_no"`
	Status    string    `gorm:"size:20;not null" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for Room
func (Room) TableName() string {
	return "rooms"
}

// PaymentMode is a reference entry such as Cash, Card or Bank Transfer
type PaymentMode struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:80;not null" json:"name"`
	Active    bool      `gorm:"not null" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for PaymentMode
func (PaymentMode) TableName() string {
	return "payment_modes"
}
