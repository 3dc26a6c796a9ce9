package services

import (
	"context"

	"github.com/sjperalta/frontdesk-api/internal/models"
	"github.com/sjperalta/frontdesk-api/internal/repository"

	"gorm.io/gorm"
)

type AuditService struct {
	repo repository.AuditRepository
}

func NewAuditService(repo repository.AuditRepository) *AuditService {
	return &AuditService{repo: repo}
}

// Log records an audit entry for a bill. Pass the open transaction so the
// entry commits or rolls back with the mutation it describes; nil writes
// outside any transaction.
func (s *AuditService) Log(ctx context.Context, tx *gorm.DB, actor models.Actor, action, billNo, details string) error {
	repo := s.repo
	if tx != nil {
		repo = repo.WithTx(tx)
	}
	return repo.Create(ctx, &models.AuditLog{
		UserID:    actor.UserID,
		Action:    action,
		Entity:    models.AuditEntityBill,
		EntityRef: billNo,
		Details:   details,
		IPAddress: actor.IP,
		UserAgent: actor.UserAgent,
	})
}

// List retrieves audit logs with filters
func (s *AuditService) List(ctx context.Context, query *repository.ListQuery) ([]models.AuditLog, int64, error) {
	return s.repo.List(ctx, query)
}
