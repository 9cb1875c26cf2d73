package fiber

import "visit-dashboard-service/internal/statistics/core/domain"

// KPIsResponse uses null for KPIs without data.
type KPIsResponse struct {
	HourlyUniqueVisitors *int64 `json:"hourly_uv" swaggertype:"integer" extensions:"x-nullable"`
	DailyPageViews       *int64 `json:"daily_pv" swaggertype:"integer" extensions:"x-nullable"`
	DailyUniqueVisitors  *int64 `json:"daily_uv" swaggertype:"integer" extensions:"x-nullable"`
	WeeklyPageViews      *int64 `json:"weekly_pv" swaggertype:"integer" extensions:"x-nullable"`
	MonthlyPageViews     *int64 `json:"monthly_pv" swaggertype:"integer" extensions:"x-nullable"`
}

type KPICardResponse struct {
	Key   string `json:"key" example:"hourly_uv"`
	Title string `json:"title" example:"Online visitors (hour)"`
	Value *int64 `json:"value" extensions:"x-nullable"`
}

type SeriesPointResponse struct {
	Type  string `json:"type" example:"page views (PV)"`
	Date  string `json:"date" example:"12-10"`
	Value int64  `json:"value" example:"120"`
}

type BreakdownItemResponse struct {
	Name  string  `json:"name" example:"Chrome"`
	Value float64 `json:"value" example:"90"`
}

type DashboardResponse struct {
	Available bool                    `json:"available"`
	Message   string                  `json:"message,omitempty"`
	KPIs      KPIsResponse            `json:"kpis"`
	KPICards  []KPICardResponse       `json:"kpi_cards"`
	Week      []SeriesPointResponse   `json:"week"`
	Day       []SeriesPointResponse   `json:"day"`
	Breakdown []BreakdownItemResponse `json:"breakdown"`
}

type KPIsEnvelope struct {
	Available bool              `json:"available"`
	KPIs      KPIsResponse      `json:"kpis"`
	KPICards  []KPICardResponse `json:"kpi_cards"`
}

type SeriesResponse struct {
	Available   bool                  `json:"available"`
	Granularity string                `json:"granularity" example:"week"`
	Points      []SeriesPointResponse `json:"points"`
}

type BreakdownResponse struct {
	Available bool                    `json:"available"`
	Items     []BreakdownItemResponse `json:"items"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_granularity"`
	Message string `json:"message" example:"granularity must be week or day"`
}

func optionalPtr(o domain.Optional[int64]) *int64 {
	v, ok := o.Get()
	if !ok {
		return nil
	}
	return &v
}

func toKPIs(k domain.KpiSet) KPIsResponse {
	return KPIsResponse{
		HourlyUniqueVisitors: optionalPtr(k.HourlyUniqueVisitors),
		DailyPageViews:       optionalPtr(k.DailyPageViews),
		DailyUniqueVisitors:  optionalPtr(k.DailyUniqueVisitors),
		WeeklyPageViews:      optionalPtr(k.WeeklyPageViews),
		MonthlyPageViews:     optionalPtr(k.MonthlyPageViews),
	}
}

func toKPICards(k domain.KpiSet) []KPICardResponse {
	entries := k.Entries()
	cards := make([]KPICardResponse, 0, len(entries))
	for _, e := range entries {
		cards = append(cards, KPICardResponse{
			Key:   e.Key,
			Title: e.Title,
			Value: optionalPtr(e.Value),
		})
	}
	return cards
}

func toSeries(points []domain.SeriesPoint) []SeriesPointResponse {
	out := make([]SeriesPointResponse, 0, len(points))
	for _, p := range points {
		out = append(out, SeriesPointResponse{
			Type:  p.SeriesName,
			Date:  p.Label,
			Value: p.Value,
		})
	}
	return out
}

func toBreakdown(items []domain.BreakdownItem) []BreakdownItemResponse {
	out := make([]BreakdownItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, BreakdownItemResponse{Name: it.Name, Value: it.Value})
	}
	return out
}

func toDashboardResponse(d domain.Dashboard) DashboardResponse {
	return DashboardResponse{
		Available: d.Available,
		KPIs:      toKPIs(d.KPIs),
		KPICards:  toKPICards(d.KPIs),
		Week:      toSeries(d.Week),
		Day:       toSeries(d.Day),
		Breakdown: toBreakdown(d.Breakdown),
	}
}
