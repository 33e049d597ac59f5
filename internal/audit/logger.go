// Package audit records security-relevant actions. Writes are best effort;
// a failed audit write never fails the calling operation.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"unibook/backend/internal/audit/domain"
	"unibook/backend/internal/audit/repository"
)

// IPExtractor resolves the client IP for the current request, if any.
type IPExtractor func(ctx context.Context) string

// Logger writes audit entries through an AuditRepository.
type Logger struct {
	repo      repository.AuditRepository
	extractIP IPExtractor
	log       *zap.Logger
	nowF      func() time.Time
}

func NewLogger(repo repository.AuditRepository, extractIP IPExtractor, log *zap.Logger) *Logger {
	if extractIP == nil {
		extractIP = func(context.Context) string { return "" }
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Logger{repo: repo, extractIP: extractIP, log: log, nowF: time.Now}
}

// Record persists one audit entry. Failures are logged and swallowed.
func (l *Logger) Record(ctx context.Context, userID, action, resource, metadata string) {
	if l == nil || l.repo == nil {
		return
	}
	entry := &domain.AuditLog{
		ID:        uuid.NewString(),
		UserID:    userID,
		Action:    action,
		Resource:  resource,
		IP:        l.extractIP(ctx),
		Metadata:  metadata,
		CreatedAt: l.nowF().UTC(),
	}
	if err := l.repo.Create(ctx, entry); err != nil {
		l.log.Warn("audit write failed",
			zap.String("action", action),
			zap.String("resource", resource),
			zap.Error(err))
	}
}
