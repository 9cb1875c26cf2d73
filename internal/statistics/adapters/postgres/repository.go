package postgres

import (
	"context"
	"fmt"
	"time"

	"visit-dashboard-service/internal/statistics/core/domain"
	"visit-dashboard-service/internal/statistics/core/ports"

	"golang.org/x/sync/errgroup"
)

type RowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

type DB interface {
	QueryContext(ctx context.Context, query string, args ...any) (RowScanner, error)
}

const DefaultEventName = "page_view"

type Options struct {
	EventName string
	Location  *time.Location
	Now       func() time.Time
}

// StatisticsRepository aggregates the events table into a RawStatistics record.
type StatisticsRepository struct {
	db        DB
	eventName string
	loc       *time.Location
	now       func() time.Time
}

var _ ports.StatisticsFetcherPort = (*StatisticsRepository)(nil)

func NewStatisticsRepository(db DB, opts Options) *StatisticsRepository {
	if opts.EventName == "" {
		opts.EventName = DefaultEventName
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &StatisticsRepository{
		db:        db,
		eventName: opts.EventName,
		loc:       opts.Location,
		now:       opts.Now,
	}
}

// windows holds the bucket boundaries for one fetch, all in the repository location.
type windows struct {
	now        time.Time
	hourStart  time.Time
	dayStart   time.Time
	weekStart  time.Time // monday
	monthStart time.Time
	weekSeries time.Time // six days before dayStart
}

func windowsAt(now time.Time, loc *time.Location) windows {
	now = now.In(loc)
	y, m, d := now.Date()

	wd := int(now.Weekday())
	if wd == 0 {
		wd = 7
	}

	return windows{
		now:        now,
		hourStart:  startOfHour(now),
		dayStart:   time.Date(y, m, d, 0, 0, 0, 0, loc),
		weekStart:  time.Date(y, m, d-wd+1, 0, 0, 0, 0, loc),
		monthStart: time.Date(y, m, 1, 0, 0, 0, 0, loc),
		weekSeries: time.Date(y, m, d-6, 0, 0, 0, 0, loc),
	}
}

// startOfHour steps back from t to the top of its wall-clock hour. Unlike
// time.Date it stays unambiguous inside an hour repeated by a DST fall-back.
func startOfHour(t time.Time) time.Time {
	return t.Add(-time.Duration(t.Minute())*time.Minute -
		time.Duration(t.Second())*time.Second -
		time.Duration(t.Nanosecond()))
}

func (w windows) scalarsFrom() time.Time {
	if w.weekStart.Before(w.monthStart) {
		return w.weekStart
	}
	return w.monthStart
}

type bucketCount struct {
	pv int64
	uv int64
}

// FetchStatistics runs the scalar, series and browser queries concurrently.
func (r *StatisticsRepository) FetchStatistics(ctx context.Context) (*domain.RawStatistics, error) {
	w := windowsAt(r.now(), r.loc)

	var (
		scalars  [5]int64
		daily    map[string]bucketCount
		hourly   map[string]bucketCount
		browsers []domain.BreakdownItem
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		scalars, err = r.queryScalars(gctx, w)
		return err
	})
	g.Go(func() error {
		var err error
		daily, err = r.queryBuckets(gctx, "day", w.weekSeries, w.now)
		return err
	})
	g.Go(func() error {
		var err error
		hourly, err = r.queryBuckets(gctx, "hour", w.dayStart, w.now)
		return err
	})
	g.Go(func() error {
		var err error
		browsers, err = r.queryBrowsers(gctx, w.weekStart, w.now)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	raw := &domain.RawStatistics{
		CurrHourUV:       domain.Some(scalars[0]),
		CurrDatePV:       domain.Some(scalars[1]),
		CurrDateUV:       domain.Some(scalars[2]),
		CurrWeekPV:       domain.Some(scalars[3]),
		CurrMonthPV:      domain.Some(scalars[4]),
		BrowserBreakdown: domain.Some(browsers),
	}

	labels, pvs, uvs := fillSeries(dayBuckets(w), daily, "01-02")
	raw.WeekLabels = domain.Some(labels)
	raw.WeekPV = domain.Some(pvs)
	raw.WeekUV = domain.Some(uvs)

	labels, pvs, uvs = fillSeries(hourBuckets(w), hourly, "15:04")
	raw.DateLabels = domain.Some(labels)
	raw.DatePV = domain.Some(pvs)
	raw.DateUV = domain.Some(uvs)

	return raw, nil
}

const scalarsSQL = `
SELECT
    COUNT(DISTINCT user_id) FILTER (WHERE event_time >= $2) AS curr_hour_uv,
    COUNT(*) FILTER (WHERE event_time >= $3) AS curr_date_pv,
    COUNT(DISTINCT user_id) FILTER (WHERE event_time >= $3) AS curr_date_uv,
    COUNT(*) FILTER (WHERE event_time >= $4) AS curr_week_pv,
    COUNT(*) FILTER (WHERE event_time >= $5) AS curr_month_pv
FROM events
WHERE event_name = $1 AND event_time >= $6 AND event_time <= $7`

func (r *StatisticsRepository) queryScalars(ctx context.Context, w windows) ([5]int64, error) {
	var out [5]int64

	rows, err := r.db.QueryContext(ctx, scalarsSQL,
		r.eventName,
		w.hourStart,
		w.dayStart,
		w.weekStart,
		w.monthStart,
		w.scalarsFrom(),
		w.now,
	)
	if err != nil {
		return out, fmt.Errorf("query scalars: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&out[0], &out[1], &out[2], &out[3], &out[4]); err != nil {
			return out, fmt.Errorf("scan scalars: %w", err)
		}
	}

	if err := rows.Err(); err != nil {
		return out, fmt.Errorf("query scalars: %w", err)
	}

	return out, nil
}

// queryBuckets groups by interval ("day" or "hour") in the repository location.
// Bucket keys are wall-clock times formatted with bucketKeyLayout.
func (r *StatisticsRepository) queryBuckets(ctx context.Context, interval string, from, to time.Time) (map[string]bucketCount, error) {
	query := fmt.Sprintf(`
SELECT
    date_trunc('%s', event_time AT TIME ZONE $4) AS bucket,
    COUNT(*) AS total_count,
    COUNT(DISTINCT user_id) AS unique_users
FROM events
WHERE event_name = $1 AND event_time >= $2 AND event_time <= $3
GROUP BY bucket
ORDER BY bucket
`, interval)

	rows, err := r.db.QueryContext(ctx, query, r.eventName, from, to, r.loc.String())
	if err != nil {
		return nil, fmt.Errorf("query %s buckets: %w", interval, err)
	}
	defer rows.Close()

	buckets := make(map[string]bucketCount)
	for rows.Next() {
		var ts time.Time
		var total, unique int64

		if err := rows.Scan(&ts, &total, &unique); err != nil {
			return nil, fmt.Errorf("scan %s bucket: %w", interval, err)
		}

		// timestamp without time zone comes back as a UTC wall clock
		buckets[ts.Format(bucketKeyLayout)] = bucketCount{pv: total, uv: unique}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query %s buckets: %w", interval, err)
	}

	return buckets, nil
}

const browsersSQL = `
SELECT
    COALESCE(NULLIF(metadata->>'browser', ''), 'Other') AS browser,
    COUNT(*) AS total_count
FROM events
WHERE event_name = $1 AND event_time >= $2 AND event_time <= $3
GROUP BY browser
ORDER BY total_count DESC, browser`

func (r *StatisticsRepository) queryBrowsers(ctx context.Context, from, to time.Time) ([]domain.BreakdownItem, error) {
	rows, err := r.db.QueryContext(ctx, browsersSQL, r.eventName, from, to)
	if err != nil {
		return nil, fmt.Errorf("query browsers: %w", err)
	}
	defer rows.Close()

	items := []domain.BreakdownItem{}
	for rows.Next() {
		var name string
		var total int64

		if err := rows.Scan(&name, &total); err != nil {
			return nil, fmt.Errorf("scan browser: %w", err)
		}
		items = append(items, domain.BreakdownItem{Name: name, Value: float64(total)})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query browsers: %w", err)
	}

	return items, nil
}

const bucketKeyLayout = "2006-01-02T15"

func dayBuckets(w windows) []time.Time {
	out := make([]time.Time, 0, 7)
	y, m, d := w.weekSeries.Date()
	for i := 0; i < 7; i++ {
		out = append(out, time.Date(y, m, d+i, 0, 0, 0, 0, w.weekSeries.Location()))
	}
	return out
}

// hourBuckets lists today's wall-clock hours up to the current one. The SQL
// groups by local wall clock, so an hour repeated by a DST fall-back is a
// single bucket and an hour skipped by spring-forward has none.
func hourBuckets(w windows) []time.Time {
	var out []time.Time
	seen := make(map[string]struct{})
	for b := w.dayStart; !b.After(w.hourStart); b = b.Add(time.Hour) {
		key := b.Format(bucketKeyLayout)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, b)
	}
	return out
}

// fillSeries lines counts up with the expected buckets, filling gaps with zero,
// so labels, pv and uv always have the same length.
func fillSeries(buckets []time.Time, counts map[string]bucketCount, labelLayout string) ([]string, []int64, []int64) {
	labels := make([]string, 0, len(buckets))
	pvs := make([]int64, 0, len(buckets))
	uvs := make([]int64, 0, len(buckets))

	for _, b := range buckets {
		c := counts[b.Format(bucketKeyLayout)]
		labels = append(labels, b.Format(labelLayout))
		pvs = append(pvs, c.pv)
		uvs = append(uvs, c.uv)
	}

	return labels, pvs, uvs
}
