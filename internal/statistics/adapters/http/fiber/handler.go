package fiber

import (
	"context"
	"errors"
	"net/http"
	"time"

	"visit-dashboard-service/internal/statistics/core/domain"
	"visit-dashboard-service/internal/statistics/core/usecase"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type BuildDashboardUseCase interface {
	Execute(ctx context.Context) (*domain.Dashboard, error)
}

type DashboardHandler struct {
	uc          BuildDashboardUseCase
	loadTimeout time.Duration
	logger      *zap.Logger
}

// NewDashboardHandler builds the handler. A zero loadTimeout means no deadline
// beyond the request's own context.
func NewDashboardHandler(uc BuildDashboardUseCase, loadTimeout time.Duration, logger *zap.Logger) *DashboardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardHandler{uc: uc, loadTimeout: loadTimeout, logger: logger}
}

func (h *DashboardHandler) Register(router fiber.Router) {
	router.Get("/dashboard", h.GetDashboard)
	router.Get("/dashboard/kpis", h.GetKPIs)
	router.Get("/dashboard/series/:granularity", h.GetSeries)
	router.Get("/dashboard/breakdown", h.GetBreakdown)
}

// load runs one dashboard task for the request and tears it down when the
// handler returns. ok is false when a response has already been written.
func (h *DashboardHandler) load(c *fiber.Ctx) (domain.Dashboard, string, bool, error) {
	ctx := c.UserContext()
	if h.loadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.loadTimeout)
		defer cancel()
	}

	task := usecase.StartDashboardTask(ctx, h.uc, h.logger)
	defer task.Cancel()

	dash, err := task.Wait(ctx)
	switch {
	case err == nil:
		return dash, "", true, nil
	case errors.Is(err, usecase.ErrStatisticsUnavailable):
		// empty charts and cards, not an error banner
		return dash, usecase.ErrStatisticsUnavailable.Error(), true, nil
	case errors.Is(err, usecase.ErrTaskCancelled):
		h.logger.Info("dashboard load cancelled", zap.String("task_id", task.ID()))
		return dash, "", false, c.Status(http.StatusServiceUnavailable).JSON(ErrorResponse{
			Error:   "load_cancelled",
			Message: err.Error(),
		})
	default:
		h.logger.Error("dashboard load failed", zap.String("task_id", task.ID()), zap.Error(err))
		return dash, "", false, c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}
}

// GetDashboard godoc
// @Summary Dashboard bundle
// @Description KPIs, week and day traffic series and the browser breakdown, reshaped for charts
// @Tags Dashboard
// @Produce json
// @Success 200 {object} DashboardResponse
// @Failure 503 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	dash, message, ok, err := h.load(c)
	if !ok {
		return err
	}

	resp := toDashboardResponse(dash)
	resp.Message = message
	return c.Status(http.StatusOK).JSON(resp)
}

// GetKPIs godoc
// @Summary Summary card KPIs
// @Description Hourly UV, daily PV/UV, weekly and monthly PV; null when no data
// @Tags Dashboard
// @Produce json
// @Success 200 {object} KPIsEnvelope
// @Failure 503 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /dashboard/kpis [get]
func (h *DashboardHandler) GetKPIs(c *fiber.Ctx) error {
	dash, _, ok, err := h.load(c)
	if !ok {
		return err
	}

	return c.Status(http.StatusOK).JSON(KPIsEnvelope{
		Available: dash.Available,
		KPIs:      toKPIs(dash.KPIs),
		KPICards:  toKPICards(dash.KPIs),
	})
}

// GetSeries godoc
// @Summary Traffic series
// @Description Long-format PV and UV series for one granularity
// @Tags Dashboard
// @Produce json
// @Param granularity path string true "Granularity: week | day"
// @Success 200 {object} SeriesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /dashboard/series/{granularity} [get]
func (h *DashboardHandler) GetSeries(c *fiber.Ctx) error {
	g, err := domain.ParseGranularity(c.Params("granularity"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_granularity",
			Message: "granularity must be week or day",
		})
	}

	dash, _, ok, err := h.load(c)
	if !ok {
		return err
	}

	points := dash.Week
	if g == domain.GranularityDay {
		points = dash.Day
	}

	return c.Status(http.StatusOK).JSON(SeriesResponse{
		Available:   dash.Available,
		Granularity: string(g),
		Points:      toSeries(points),
	})
}

// GetBreakdown godoc
// @Summary Browser breakdown
// @Description Name/value pairs for the proportion chart; empty when no data
// @Tags Dashboard
// @Produce json
// @Success 200 {object} BreakdownResponse
// @Failure 503 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /dashboard/breakdown [get]
func (h *DashboardHandler) GetBreakdown(c *fiber.Ctx) error {
	dash, _, ok, err := h.load(c)
	if !ok {
		return err
	}

	return c.Status(http.StatusOK).JSON(BreakdownResponse{
		Available: dash.Available,
		Items:     toBreakdown(dash.Breakdown),
	})
}
