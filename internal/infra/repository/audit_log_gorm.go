package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/nannyhub/babysitter-api/internal/audit"
	"github.com/nannyhub/babysitter-api/internal/models"
)

type AuditLogGormRepository struct {
	db *gorm.DB
}

func NewAuditLogGormRepository(db *gorm.DB) *AuditLogGormRepository {
	return &AuditLogGormRepository{db: db}
}

// List is always scoped to q.UserID.
func (r *AuditLogGormRepository) List(ctx context.Context, q audit.Query) ([]models.AuditLog, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&models.AuditLog{}).
		Where("user_id = ?", q.UserID)

	if q.Action != "" {
		base = base.Where("action = ?", q.Action)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count audit logs: %w", err)
	}

	var logs []models.AuditLog
	if err := base.
		Order("created_at DESC, id DESC").
		Limit(q.Limit).
		Offset(q.Offset()).
		Find(&logs).Error; err != nil {
		return nil, 0, fmt.Errorf("list audit logs: %w", err)
	}

	return logs, total, nil
}
