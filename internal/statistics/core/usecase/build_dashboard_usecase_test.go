package usecase_test

import (
	"context"
	"errors"
	"testing"

	"visit-dashboard-service/internal/statistics/core/domain"
	"visit-dashboard-service/internal/statistics/core/usecase"

	"go.uber.org/zap"
)

// fakeFetcher stands in for StatisticsFetcherPort.
type fakeFetcher struct {
	FetchFn func(ctx context.Context) (*domain.RawStatistics, error)
	calls   int
}

func (f *fakeFetcher) FetchStatistics(ctx context.Context) (*domain.RawStatistics, error) {
	f.calls++
	if f.FetchFn != nil {
		return f.FetchFn(ctx)
	}
	return nil, nil
}

func fullStatistics() *domain.RawStatistics {
	return &domain.RawStatistics{
		CurrHourUV:  domain.Some[int64](3),
		CurrDatePV:  domain.Some[int64](120),
		CurrDateUV:  domain.Some[int64](40),
		CurrWeekPV:  domain.Some[int64](800),
		CurrMonthPV: domain.Some[int64](3100),
		WeekLabels:  domain.Some([]string{"Mon", "Tue"}),
		WeekPV:      domain.Some([]int64{10, 20}),
		WeekUV:      domain.Some([]int64{5, 8}),
		DateLabels:  domain.Some([]string{"09:00"}),
		DatePV:      domain.Some([]int64{4}),
		DateUV:      domain.Some([]int64{2}),
		BrowserBreakdown: domain.Some([]domain.BreakdownItem{
			{Name: "Chrome", Value: 7},
		}),
	}
}

func assertEmptyDashboard(t *testing.T, d *domain.Dashboard) {
	t.Helper()
	if d == nil {
		t.Fatalf("expected non-nil dashboard")
	}
	if d.Available {
		t.Fatalf("expected available=false")
	}
	if d.Week == nil || len(d.Week) != 0 {
		t.Fatalf("expected empty week series, got %+v", d.Week)
	}
	if d.Day == nil || len(d.Day) != 0 {
		t.Fatalf("expected empty day series, got %+v", d.Day)
	}
	if d.Breakdown == nil || len(d.Breakdown) != 0 {
		t.Fatalf("expected empty breakdown, got %+v", d.Breakdown)
	}
	for _, e := range d.KPIs.Entries() {
		if e.Value.IsPresent() {
			t.Fatalf("expected %s absent", e.Key)
		}
	}
}

// ------------------------------------------------------------
// SUCCESS
// ------------------------------------------------------------

func TestBuildDashboard_Success(t *testing.T) {
	fetcher := &fakeFetcher{
		FetchFn: func(ctx context.Context) (*domain.RawStatistics, error) {
			return fullStatistics(), nil
		},
	}

	uc := usecase.NewBuildDashboardUseCase(fetcher, zap.NewNop())

	out, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Available {
		t.Fatalf("expected available=true")
	}
	if len(out.Week) != 4 || len(out.Day) != 2 {
		t.Fatalf("unexpected series sizes: week=%d day=%d", len(out.Week), len(out.Day))
	}
	if v, _ := out.KPIs.MonthlyPageViews.Get(); v != 3100 {
		t.Fatalf("expected monthly pv 3100, got %d", v)
	}
	if len(out.Breakdown) != 1 || out.Breakdown[0].Name != "Chrome" {
		t.Fatalf("unexpected breakdown: %+v", out.Breakdown)
	}
	if fetcher.calls != 1 {
		t.Fatalf("expected exactly one fetch, got %d", fetcher.calls)
	}
}

// ------------------------------------------------------------
// PARTIAL: series fields missing, KPIs still delivered
// ------------------------------------------------------------

func TestBuildDashboard_PartialRecord(t *testing.T) {
	fetcher := &fakeFetcher{
		FetchFn: func(ctx context.Context) (*domain.RawStatistics, error) {
			return &domain.RawStatistics{
				CurrHourUV: domain.Some[int64](42),
				WeekLabels: domain.Some([]string{"Mon"}),
			}, nil
		},
	}

	uc := usecase.NewBuildDashboardUseCase(fetcher, zap.NewNop())

	out, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Available {
		t.Fatalf("expected available=true")
	}
	if v, ok := out.KPIs.HourlyUniqueVisitors.Get(); !ok || v != 42 {
		t.Fatalf("expected hourly uv 42, got %v", v)
	}
	if out.KPIs.DailyPageViews.IsPresent() {
		t.Fatalf("expected daily pv absent")
	}
	if len(out.Week) != 0 || len(out.Day) != 0 || len(out.Breakdown) != 0 {
		t.Fatalf("expected empty series and breakdown, got %+v", out)
	}
}

// ------------------------------------------------------------
// FETCH FAILURE
// ------------------------------------------------------------

func TestBuildDashboard_FetchFailure(t *testing.T) {
	cause := errors.New("connection refused")
	fetcher := &fakeFetcher{
		FetchFn: func(ctx context.Context) (*domain.RawStatistics, error) {
			return nil, cause
		},
	}

	uc := usecase.NewBuildDashboardUseCase(fetcher, zap.NewNop())

	out, err := uc.Execute(context.Background())
	if !errors.Is(err, usecase.ErrStatisticsUnavailable) {
		t.Fatalf("expected ErrStatisticsUnavailable, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be wrapped, got %v", err)
	}
	assertEmptyDashboard(t, out)
	if fetcher.calls != 1 {
		t.Fatalf("fetch must not be retried, got %d calls", fetcher.calls)
	}
}

func TestBuildDashboard_NilRecord(t *testing.T) {
	uc := usecase.NewBuildDashboardUseCase(&fakeFetcher{}, zap.NewNop())

	out, err := uc.Execute(context.Background())
	if !errors.Is(err, usecase.ErrStatisticsUnavailable) {
		t.Fatalf("expected ErrStatisticsUnavailable, got %v", err)
	}
	assertEmptyDashboard(t, out)
}

func TestBuildDashboard_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetcher := &fakeFetcher{
		FetchFn: func(ctx context.Context) (*domain.RawStatistics, error) {
			return nil, ctx.Err()
		},
	}
	uc := usecase.NewBuildDashboardUseCase(fetcher, nil)

	out, err := uc.Execute(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	assertEmptyDashboard(t, out)
}

// ------------------------------------------------------------
// MISALIGNED SERIES are delivered, not rejected
// ------------------------------------------------------------

func TestBuild_MisalignedSeries(t *testing.T) {
	uc := usecase.NewBuildDashboardUseCase(&fakeFetcher{}, zap.NewNop())

	out := uc.Build(domain.RawStatistics{
		DateLabels: domain.Some([]string{"00:00"}),
		DatePV:     domain.Some([]int64{1, 2}),
		DateUV:     domain.Some([]int64{1, 2}),
	})

	if len(out.Day) != 4 {
		t.Fatalf("expected 4 day points, got %d", len(out.Day))
	}
	if out.Day[1].Label != "" {
		t.Fatalf("expected empty label past the end, got %q", out.Day[1].Label)
	}
}
