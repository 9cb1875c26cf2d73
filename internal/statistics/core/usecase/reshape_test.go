package usecase_test

import (
	"reflect"
	"testing"

	"visit-dashboard-service/internal/statistics/core/domain"
	"visit-dashboard-service/internal/statistics/core/usecase"
)

func pv(label string, v int64) domain.SeriesPoint {
	return domain.SeriesPoint{SeriesName: domain.SeriesPageViews, Label: label, Value: v}
}

func uv(label string, v int64) domain.SeriesPoint {
	return domain.SeriesPoint{SeriesName: domain.SeriesUniqueVisitors, Label: label, Value: v}
}

// ------------------------------------------------------------
// Reshape: week scenario
// ------------------------------------------------------------

func TestReshape_Week(t *testing.T) {
	raw := domain.RawStatistics{
		WeekLabels: domain.Some([]string{"Mon", "Tue"}),
		WeekPV:     domain.Some([]int64{10, 20}),
		WeekUV:     domain.Some([]int64{5, 8}),
	}

	got := usecase.Reshape(raw, domain.GranularityWeek)

	want := []domain.SeriesPoint{
		pv("Mon", 10), pv("Tue", 20),
		uv("Mon", 5), uv("Tue", 8),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected points:\n got  %+v\n want %+v", got, want)
	}
}

func TestReshape_Day(t *testing.T) {
	raw := domain.RawStatistics{
		DateLabels: domain.Some([]string{"00:00", "01:00", "02:00"}),
		DatePV:     domain.Some([]int64{3, 0, 7}),
		DateUV:     domain.Some([]int64{1, 0, 2}),
		// week fields must not leak into the day series
		WeekLabels: domain.Some([]string{"Mon"}),
		WeekPV:     domain.Some([]int64{99}),
		WeekUV:     domain.Some([]int64{99}),
	}

	got := usecase.Reshape(raw, domain.GranularityDay)

	want := []domain.SeriesPoint{
		pv("00:00", 3), pv("01:00", 0), pv("02:00", 7),
		uv("00:00", 1), uv("01:00", 0), uv("02:00", 2),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected points:\n got  %+v\n want %+v", got, want)
	}
}

// ------------------------------------------------------------
// Reshape: length and alignment over several sizes
// ------------------------------------------------------------

func TestReshape_LengthAndAlignment(t *testing.T) {
	for _, n := range []int{0, 1, 2, 7, 24} {
		labels := make([]string, n)
		pvs := make([]int64, n)
		uvs := make([]int64, n)
		for i := 0; i < n; i++ {
			labels[i] = string(rune('a' + i))
			pvs[i] = int64(i * 10)
			uvs[i] = int64(i)
		}

		raw := domain.RawStatistics{
			WeekLabels: domain.Some(labels),
			WeekPV:     domain.Some(pvs),
			WeekUV:     domain.Some(uvs),
		}
		got := usecase.Reshape(raw, domain.GranularityWeek)

		if len(got) != 2*n {
			t.Fatalf("n=%d: expected %d points, got %d", n, 2*n, len(got))
		}
		for i := 0; i < n; i++ {
			p := got[i]
			if p.SeriesName != domain.SeriesPageViews || p.Label != labels[i] || p.Value != pvs[i] {
				t.Fatalf("n=%d: bad pv point %d: %+v", n, i, p)
			}
			u := got[n+i]
			if u.SeriesName != domain.SeriesUniqueVisitors || u.Label != labels[i] || u.Value != uvs[i] {
				t.Fatalf("n=%d: bad uv point %d: %+v", n, i, u)
			}
		}
	}
}

// ------------------------------------------------------------
// Reshape: missing fields
// ------------------------------------------------------------

func TestReshape_MissingField_ReturnsEmpty(t *testing.T) {
	full := domain.RawStatistics{
		WeekLabels: domain.Some([]string{"Mon"}),
		WeekPV:     domain.Some([]int64{1}),
		WeekUV:     domain.Some([]int64{1}),
	}

	cases := map[string]func(r *domain.RawStatistics){
		"labels": func(r *domain.RawStatistics) { r.WeekLabels = domain.None[[]string]() },
		"pv":     func(r *domain.RawStatistics) { r.WeekPV = domain.None[[]int64]() },
		"uv":     func(r *domain.RawStatistics) { r.WeekUV = domain.None[[]int64]() },
	}

	for name, drop := range cases {
		t.Run(name, func(t *testing.T) {
			raw := full
			drop(&raw)

			got := usecase.Reshape(raw, domain.GranularityWeek)
			if got == nil {
				t.Fatalf("expected empty non-nil slice, got nil")
			}
			if len(got) != 0 {
				t.Fatalf("expected 0 points, got %d", len(got))
			}
		})
	}
}

func TestReshape_EmptyRecord(t *testing.T) {
	got := usecase.Reshape(domain.RawStatistics{}, domain.GranularityDay)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty slice, got %+v", got)
	}
}

func TestReshape_UnknownGranularity(t *testing.T) {
	raw := domain.RawStatistics{
		WeekLabels: domain.Some([]string{"Mon"}),
		WeekPV:     domain.Some([]int64{1}),
		WeekUV:     domain.Some([]int64{1}),
	}
	if got := usecase.Reshape(raw, domain.Granularity("month")); len(got) != 0 {
		t.Fatalf("expected no points, got %+v", got)
	}
}

// ------------------------------------------------------------
// Reshape: mismatched lengths
// ------------------------------------------------------------

func TestReshape_MismatchedLengths(t *testing.T) {
	raw := domain.RawStatistics{
		WeekLabels: domain.Some([]string{"Mon"}),
		WeekPV:     domain.Some([]int64{10, 20, 30}),
		WeekUV:     domain.Some([]int64{5}),
	}

	got := usecase.Reshape(raw, domain.GranularityWeek)

	// each value sequence is walked over its own length; labels past the end are empty
	want := []domain.SeriesPoint{
		pv("Mon", 10), pv("", 20), pv("", 30),
		uv("Mon", 5),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected points:\n got  %+v\n want %+v", got, want)
	}
}

func TestReshape_MoreLabelsThanValues(t *testing.T) {
	raw := domain.RawStatistics{
		DateLabels: domain.Some([]string{"a", "b", "c"}),
		DatePV:     domain.Some([]int64{1}),
		DateUV:     domain.Some([]int64{}),
	}

	got := usecase.Reshape(raw, domain.GranularityDay)

	want := []domain.SeriesPoint{pv("a", 1)}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected points: %+v", got)
	}
}

func TestReshape_DoesNotAliasInput(t *testing.T) {
	labels := []string{"Mon"}
	raw := domain.RawStatistics{
		WeekLabels: domain.Some(labels),
		WeekPV:     domain.Some([]int64{1}),
		WeekUV:     domain.Some([]int64{2}),
	}

	first := usecase.Reshape(raw, domain.GranularityWeek)
	first[0].Value = 1000

	second := usecase.Reshape(raw, domain.GranularityWeek)
	if second[0].Value != 1 {
		t.Fatalf("expected a fresh series on every call, got %+v", second[0])
	}
}

// ------------------------------------------------------------
// ExtractScalars
// ------------------------------------------------------------

func TestExtractScalars_OnlyHourlyUV(t *testing.T) {
	kpis := usecase.ExtractScalars(domain.RawStatistics{CurrHourUV: domain.Some[int64](42)})

	if v, ok := kpis.HourlyUniqueVisitors.Get(); !ok || v != 42 {
		t.Fatalf("expected hourly uv 42, got %v (present=%v)", v, ok)
	}
	for _, o := range []domain.Optional[int64]{
		kpis.DailyPageViews,
		kpis.DailyUniqueVisitors,
		kpis.WeeklyPageViews,
		kpis.MonthlyPageViews,
	} {
		if o.IsPresent() {
			t.Fatalf("expected absent KPI, got %+v", o)
		}
	}
}

func TestExtractScalars_ZeroIsPresent(t *testing.T) {
	kpis := usecase.ExtractScalars(domain.RawStatistics{
		CurrHourUV:  domain.Some[int64](0),
		CurrDatePV:  domain.Some[int64](1),
		CurrDateUV:  domain.Some[int64](2),
		CurrWeekPV:  domain.Some[int64](3),
		CurrMonthPV: domain.Some[int64](4),
	})

	entries := kpis.Entries()
	wantKeys := []string{
		domain.KPIHourlyUniqueVisitors,
		domain.KPIDailyPageViews,
		domain.KPIDailyUniqueVisitors,
		domain.KPIWeeklyPageViews,
		domain.KPIMonthlyPageViews,
	}
	if len(entries) != len(wantKeys) {
		t.Fatalf("expected %d entries, got %d", len(wantKeys), len(entries))
	}
	for i, e := range entries {
		if e.Key != wantKeys[i] {
			t.Fatalf("entry %d: expected key %s, got %s", i, wantKeys[i], e.Key)
		}
		v, ok := e.Value.Get()
		if !ok || v != int64(i) {
			t.Fatalf("entry %d: expected %d present, got %v (present=%v)", i, i, v, ok)
		}
	}
}

func TestExtractScalars_EmptyRecord(t *testing.T) {
	kpis := usecase.ExtractScalars(domain.RawStatistics{})
	for _, e := range kpis.Entries() {
		if e.Value.IsPresent() {
			t.Fatalf("expected %s absent", e.Key)
		}
	}
}

// ------------------------------------------------------------
// Breakdown
// ------------------------------------------------------------

func TestBreakdown_Absent(t *testing.T) {
	got := usecase.Breakdown(domain.RawStatistics{})
	if got == nil {
		t.Fatalf("expected empty non-nil slice")
	}
	if len(got) != 0 {
		t.Fatalf("expected no items, got %+v", got)
	}
}

func TestBreakdown_PassThrough(t *testing.T) {
	items := []domain.BreakdownItem{{Name: "Chrome", Value: 60}, {Name: "Firefox", Value: 12.5}}
	got := usecase.Breakdown(domain.RawStatistics{BrowserBreakdown: domain.Some(items)})

	if !reflect.DeepEqual(got, items) {
		t.Fatalf("expected %+v, got %+v", items, got)
	}

	got[0].Value = 0
	if items[0].Value != 60 {
		t.Fatalf("breakdown must be copied, input was mutated")
	}
}
