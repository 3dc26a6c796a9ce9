package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/frontdesk-api/internal/repository"

	"gorm.io/gorm"
)

// StayContext is what the ledger needs to know about a folio's stay
type StayContext struct {
	FolioNo       string
	ReservationNo string
	Rate          *decimal.Decimal
	GuestName     string
	GuestEmail    string
	RoomID        uint
	Active        bool
}

// HasContractedRate reports whether a usable room rate was agreed for the stay.
// A nil context has none.
func (s *StayContext) HasContractedRate() bool {
	return s != nil && s.Rate != nil && s.Rate.IsPositive()
}

// StayResolver looks up stay details for a folio. It returns ErrFolioNotFound
// when the folio has no stay record at all.
type StayResolver interface {
	ResolveStayRateAndGuest(ctx context.Context, folioNo string) (*StayContext, error)
}

// RoomResolver maps a room id to its room number
type RoomResolver interface {
	ResolveRoomNumber(ctx context.Context, roomID uint) (string, error)
}

// PaymentModeResolver maps a payment mode id to its display name.
// It returns ErrInvalidPaymentMode when the mode is unknown or inactive.
type PaymentModeResolver interface {
	ResolvePaymentModeName(ctx context.Context, paymentModeID uint) (string, error)
}

// FrontOffice answers collaborator lookups from the reservation, room and
// reference-data tables.
type FrontOffice struct {
	stays repository.StayRepository
	rooms repository.RoomRepository
	modes repository.PaymentModeRepository
}

// NewFrontOffice creates the collaborator directory over the shared database
func NewFrontOffice(stays repository.StayRepository, rooms repository.RoomRepository, modes repository.PaymentModeRepository) *FrontOffice {
	return &FrontOffice{stays: stays, rooms: rooms, modes: modes}
}

func (f *FrontOffice) ResolveStayRateAndGuest(ctx context.Context, folioNo string) (*StayContext, error) {
	stay, err := f.stays.FindByFolio(ctx, folioNo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFolioNotFound
		}
		return nil, fmt.Errorf("resolve stay for folio %s: %w", folioNo, err)
	}
	return &StayContext{
		FolioNo:       stay.FolioNo,
		ReservationNo: stay.ReservationNo,
		Rate:          stay.RoomRate,
		GuestName:     stay.GuestName,
		GuestEmail:    stay.GuestEmail,
		RoomID:        stay.RoomID,
		Active:        stay.Active,
	}, nil
}

// ResolveRoomNumber returns an empty string for rooms that no longer exist
func (f *FrontOffice) ResolveRoomNumber(ctx context.Context, roomID uint) (string, error) {
	if roomID == 0 {
		return "", nil
	}
	room, err := f.rooms.FindByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("resolve room %d: %w", roomID, err)
	}
	return room.RoomNo, nil
}

func (f *FrontOffice) ResolvePaymentModeName(ctx context.Context, paymentModeID uint) (string, error) {
	mode, err := f.modes.FindByID(ctx, paymentModeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidPaymentMode
		}
		return "", fmt.Errorf("resolve payment mode %d: %w", paymentModeID, err)
	}
	if !mode.Active {
		return "", ErrInvalidPaymentMode
	}
	return mode.Name, nil
}
