package ports

import (
	"context"

	"svw.info/pairing/internal/domain"
)

// Storage persists finished session reports as flat result files.
type Storage interface {
	Save(ctx context.Context, r *domain.Report) (domain.ReportMeta, error)
	List(ctx context.Context) ([]domain.ReportMeta, error)
	Load(ctx context.Context, name string) ([]byte, error)
}
