package models

import (
	"time"
)

// Audit actions written by the ledger
const (
	AuditActionGenerate = "GENERATE"
	AuditActionSplit    = "SPLIT"
	AuditActionSettle   = "SETTLE"
)

// AuditEntityBill is the entity name used for bill audit rows
const AuditEntityBill = "Bill"

// AuditLog represents a system audit entry
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Action    string    `gorm:"size:50;not null" json:"action"`
	Entity    string    `gorm:"size:50;not null" json:"entity"`
	EntityRef string    `gorm:"size:60;not null;index" json:"entity_ref"` // bill number for ledger rows
	Details   string    `gorm:"type:text" json:"details"`
	IPAddress string    `gorm:"size:45" json:"ip_address"`
	UserAgent string    `gorm:"size:255" json:"user_agent"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for AuditLog
func (AuditLog) TableName() string {
	return "audit_logs"
}

// Actor identifies who triggered a ledger mutation
type Actor struct {
	UserID    uint
	IP        string
	UserAgent string
}
