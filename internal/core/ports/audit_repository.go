package ports

import (
	"context"
	"time"

	"github.com/zeyang/login-system/internal/core/domain"
)

// AuditRepository is the append-only sink for authentication events.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuthLog) error
	// FindByAccount returns the account's entries, most recent first.
	FindByAccount(ctx context.Context, accountID string) ([]domain.AuthLog, error)
	FindByTimeRange(ctx context.Context, start, end time.Time) ([]domain.AuthLog, error)
}
