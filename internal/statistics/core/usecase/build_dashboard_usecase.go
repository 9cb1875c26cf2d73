package usecase

import (
	"context"
	"errors"
	"fmt"

	"visit-dashboard-service/internal/statistics/core/domain"
	"visit-dashboard-service/internal/statistics/core/ports"

	"go.uber.org/zap"
)

var (
	ErrStatisticsUnavailable = errors.New("no statistics available")
	ErrTaskCancelled         = errors.New("dashboard load cancelled")
)

type BuildDashboardUseCase struct {
	fetcher ports.StatisticsFetcherPort
	logger  *zap.Logger
}

func NewBuildDashboardUseCase(fetcher ports.StatisticsFetcherPort, logger *zap.Logger) *BuildDashboardUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BuildDashboardUseCase{fetcher: fetcher, logger: logger}
}

// Execute fetches the statistics once and reshapes them. On a failed fetch it
// returns the empty dashboard together with ErrStatisticsUnavailable; the
// returned dashboard is never nil.
func (uc *BuildDashboardUseCase) Execute(ctx context.Context) (*domain.Dashboard, error) {
	empty := domain.EmptyDashboard()

	raw, err := uc.fetcher.FetchStatistics(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return &empty, ctxErr
		}
		uc.logger.Warn("statistics fetch failed", zap.Error(err))
		return &empty, fmt.Errorf("%w: %w", ErrStatisticsUnavailable, err)
	}
	if raw == nil {
		return &empty, ErrStatisticsUnavailable
	}

	dash := uc.Build(*raw)
	return &dash, nil
}

// Build reshapes an already fetched record.
func (uc *BuildDashboardUseCase) Build(raw domain.RawStatistics) domain.Dashboard {
	week, weekAligned := reshapeSeries(raw, domain.GranularityWeek)
	if !weekAligned {
		uc.logger.Warn("week series labels and values differ in length",
			zap.Int("labels", len(raw.WeekLabels.OrElse(nil))),
			zap.Int("pv", len(raw.WeekPV.OrElse(nil))),
			zap.Int("uv", len(raw.WeekUV.OrElse(nil))))
	}

	day, dayAligned := reshapeSeries(raw, domain.GranularityDay)
	if !dayAligned {
		uc.logger.Warn("day series labels and values differ in length",
			zap.Int("labels", len(raw.DateLabels.OrElse(nil))),
			zap.Int("pv", len(raw.DatePV.OrElse(nil))),
			zap.Int("uv", len(raw.DateUV.OrElse(nil))))
	}

	return domain.Dashboard{
		Available: true,
		KPIs:      ExtractScalars(raw),
		Week:      week,
		Day:       day,
		Breakdown: Breakdown(raw),
	}
}
