// Package repository persists audit log entries.
package repository

import (
	"context"

	"unibook/backend/internal/audit/domain"
)

type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
}
