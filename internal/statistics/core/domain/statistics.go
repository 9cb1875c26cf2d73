package domain

import (
	"errors"
	"strings"
)

// RawStatistics is the flat record returned by a statistics source.
// Every field is independently optional.
type RawStatistics struct {
	CurrHourUV  Optional[int64] `json:"currHour_uv"`
	CurrDatePV  Optional[int64] `json:"currDate_pv"`
	CurrDateUV  Optional[int64] `json:"currDate_uv"`
	CurrWeekPV  Optional[int64] `json:"currWeek_pv"`
	CurrMonthPV Optional[int64] `json:"currMonth_pv"`

	WeekLabels Optional[[]string] `json:"statWeek_items"`
	WeekPV     Optional[[]int64]  `json:"statWeek_pv"`
	WeekUV     Optional[[]int64]  `json:"statWeek_uv"`

	DateLabels Optional[[]string] `json:"statDate_items"`
	DatePV     Optional[[]int64]  `json:"statDate_pv"`
	DateUV     Optional[[]int64]  `json:"statDate_uv"`

	BrowserBreakdown Optional[[]BreakdownItem] `json:"browser_datas"`
}

type BreakdownItem struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Series names double as chart legend keys; keep them stable.
const (
	SeriesPageViews      = "page views (PV)"
	SeriesUniqueVisitors = "unique visitors (UV)"
)

type SeriesPoint struct {
	SeriesName string `json:"type"`
	Label      string `json:"date"`
	Value      int64  `json:"value"`
}

type Granularity string

const (
	GranularityWeek Granularity = "week"
	GranularityDay  Granularity = "day"
)

var ErrInvalidGranularity = errors.New("invalid granularity")

func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(strings.ToLower(strings.TrimSpace(s))) {
	case GranularityWeek:
		return GranularityWeek, nil
	case GranularityDay:
		return GranularityDay, nil
	default:
		return "", ErrInvalidGranularity
	}
}
