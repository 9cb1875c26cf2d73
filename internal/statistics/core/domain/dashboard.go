package domain

// KPI keys in card order.
const (
	KPIHourlyUniqueVisitors = "hourly_uv"
	KPIDailyPageViews       = "daily_pv"
	KPIDailyUniqueVisitors  = "daily_uv"
	KPIWeeklyPageViews      = "weekly_pv"
	KPIMonthlyPageViews     = "monthly_pv"
)

// KpiSet keeps "no data yet" apart from zero visits: absent inputs stay absent.
type KpiSet struct {
	HourlyUniqueVisitors Optional[int64]
	DailyPageViews       Optional[int64]
	DailyUniqueVisitors  Optional[int64]
	WeeklyPageViews      Optional[int64]
	MonthlyPageViews     Optional[int64]
}

type KPI struct {
	Key   string
	Title string
	Value Optional[int64]
}

// Entries lists the KPIs in the order the summary cards show them.
func (k KpiSet) Entries() []KPI {
	return []KPI{
		{Key: KPIHourlyUniqueVisitors, Title: "Online visitors (hour)", Value: k.HourlyUniqueVisitors},
		{Key: KPIDailyPageViews, Title: "PV (day)", Value: k.DailyPageViews},
		{Key: KPIDailyUniqueVisitors, Title: "UV (day)", Value: k.DailyUniqueVisitors},
		{Key: KPIWeeklyPageViews, Title: "Page views (week)", Value: k.WeeklyPageViews},
		{Key: KPIMonthlyPageViews, Title: "Page views (month)", Value: k.MonthlyPageViews},
	}
}

// Dashboard is everything the rendering layer consumes for one load.
type Dashboard struct {
	Available bool
	KPIs      KpiSet
	Week      []SeriesPoint
	Day       []SeriesPoint
	Breakdown []BreakdownItem
}

// EmptyDashboard is the well-formed default shown when no statistics are available.
func EmptyDashboard() Dashboard {
	return Dashboard{
		Week:      []SeriesPoint{},
		Day:       []SeriesPoint{},
		Breakdown: []BreakdownItem{},
	}
}
