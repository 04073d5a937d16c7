package assessment

import "context"

// Repository is append-only by design: there is no update or delete.
type Repository interface {
	Append(ctx context.Context, a *Assessment) error
	Latest(ctx context.Context, enterpriseNumericID uint64) (*Assessment, error)
	History(ctx context.Context, enterpriseNumericID uint64, limit int) ([]Assessment, error)
	GradeDistribution(ctx context.Context) (map[string]int64, error)
}
