package ports

import (
	"context"

	"visit-dashboard-service/internal/statistics/core/domain"
)

// StatisticsFetcherPort performs a single call against a statistics source.
// A nil record with a nil error is treated as "no statistics".
type StatisticsFetcherPort interface {
	FetchStatistics(ctx context.Context) (*domain.RawStatistics, error)
}
