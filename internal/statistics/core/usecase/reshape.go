package usecase

import (
	"visit-dashboard-service/internal/statistics/core/domain"
)

// zipResult is the outcome of pairing a value sequence with its labels.
// Aligned is false when the two sequences had different lengths.
type zipResult struct {
	Points  []domain.SeriesPoint
	Aligned bool
}

// zipLabeled walks values and tags each one with seriesName and the label at the
// same index. Indexes past the end of labels get an empty label.
func zipLabeled(seriesName string, labels []string, values []int64) zipResult {
	points := make([]domain.SeriesPoint, 0, len(values))
	for i, v := range values {
		var label string
		if i < len(labels) {
			label = labels[i]
		}
		points = append(points, domain.SeriesPoint{
			SeriesName: seriesName,
			Label:      label,
			Value:      v,
		})
	}
	return zipResult{Points: points, Aligned: len(labels) == len(values)}
}

func seriesFields(raw domain.RawStatistics, g domain.Granularity) (labels domain.Optional[[]string], pv, uv domain.Optional[[]int64]) {
	switch g {
	case domain.GranularityWeek:
		return raw.WeekLabels, raw.WeekPV, raw.WeekUV
	case domain.GranularityDay:
		return raw.DateLabels, raw.DatePV, raw.DateUV
	default:
		return domain.None[[]string](), domain.None[[]int64](), domain.None[[]int64]()
	}
}

// reshapeSeries returns the long-format series plus whether every value
// sequence lined up with the labels.
func reshapeSeries(raw domain.RawStatistics, g domain.Granularity) ([]domain.SeriesPoint, bool) {
	labelsOpt, pvOpt, uvOpt := seriesFields(raw, g)

	labels, okLabels := labelsOpt.Get()
	pv, okPV := pvOpt.Get()
	uv, okUV := uvOpt.Get()
	if !okLabels || !okPV || !okUV {
		return []domain.SeriesPoint{}, true
	}

	pvRes := zipLabeled(domain.SeriesPageViews, labels, pv)
	uvRes := zipLabeled(domain.SeriesUniqueVisitors, labels, uv)

	points := make([]domain.SeriesPoint, 0, len(pvRes.Points)+len(uvRes.Points))
	points = append(points, pvRes.Points...)
	points = append(points, uvRes.Points...)

	return points, pvRes.Aligned && uvRes.Aligned
}

// Reshape turns the wide-format week or day fields of raw into chart-ready points:
// all page-view points first, then all unique-visitor points. If labels, pv or uv
// is missing the result is empty.
func Reshape(raw domain.RawStatistics, g domain.Granularity) []domain.SeriesPoint {
	points, _ := reshapeSeries(raw, g)
	return points
}

// ExtractScalars selects the five KPI fields as they are.
func ExtractScalars(raw domain.RawStatistics) domain.KpiSet {
	return domain.KpiSet{
		HourlyUniqueVisitors: raw.CurrHourUV,
		DailyPageViews:       raw.CurrDatePV,
		DailyUniqueVisitors:  raw.CurrDateUV,
		WeeklyPageViews:      raw.CurrWeekPV,
		MonthlyPageViews:     raw.CurrMonthPV,
	}
}

// Breakdown returns a copy of the browser breakdown, or an empty slice if absent.
func Breakdown(raw domain.RawStatistics) []domain.BreakdownItem {
	items, ok := raw.BrowserBreakdown.Get()
	if !ok {
		return []domain.BreakdownItem{}
	}
	out := make([]domain.BreakdownItem, len(items))
	copy(out, items)
	return out
}
