package service

import (
	"context"
	"time"

	"restaurante/internal/model"
	"restaurante/internal/report"
	"restaurante/internal/repository"

	"github.com/rs/zerolog"
)

const dateLayout = "2006-01-02"

// reportService implements ReportService.
type reportService struct {
	reportRepo repository.ReportRepository
	orderRepo  repository.OrderRepository
	location   *time.Location
	now        func() time.Time
	logger     zerolog.Logger
}

// NewReportService creates a dashboard service that buckets sales by calendar
// day in loc.
func NewReportService(
	reportRepo repository.ReportRepository,
	orderRepo repository.OrderRepository,
	loc *time.Location,
	logger zerolog.Logger,
) ReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &reportService{
		reportRepo: reportRepo,
		orderRepo:  orderRepo,
		location:   loc,
		now:        time.Now,
		logger:     logger.With().Str("service", "report").Logger(),
	}
}

// Dashboard builds today's sales, the Monday-to-Sunday series, the recent
// orders and the best sellers for the reference date.
func (s *reportService) Dashboard(ctx context.Context, date string) (*model.Dashboard, error) {
	ref, err := s.referenceDate(date)
	if err != nil {
		return nil, err
	}

	dayStart, dayEnd := report.DayBounds(ref)
	weekStart, weekEnd := report.WeekBounds(ref)

	today, err := s.reportRepo.Sales(ctx, dayStart, dayEnd)
	if err != nil {
		s.logger.Error().Err(err).Time("date", dayStart).Msg("failed to load today's sales")
		return nil, wrapErr(err, "failed to build dashboard")
	}

	week, err := s.reportRepo.Sales(ctx, weekStart, weekEnd)
	if err != nil {
		s.logger.Error().Err(err).Time("week", weekStart).Msg("failed to load weekly sales")
		return nil, wrapErr(err, "failed to build dashboard")
	}

	daily, err := s.reportRepo.DailySales(ctx, weekStart, weekEnd, s.location.String())
	if err != nil {
		s.logger.Error().Err(err).Time("week", weekStart).Msg("failed to load daily sales")
		return nil, wrapErr(err, "failed to build dashboard")
	}

	recent, err := s.orderRepo.List(ctx, model.OrderFilter{Limit: report.RecentOrdersLimit})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load recent orders")
		return nil, wrapErr(err, "failed to build dashboard")
	}

	top, err := s.reportRepo.TopDishes(ctx, report.TopDishesLimit)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load top dishes")
		return nil, wrapErr(err, "failed to build dashboard")
	}

	dashboard := &model.Dashboard{
		Date:         dayStart,
		TodaySales:   today,
		WeekOrders:   week.OrderCount,
		WeeklySales:  report.FillWeek(weekStart, daily),
		RecentOrders: recent,
		TopDishes:    report.RankDishes(top, report.TopDishesLimit),
	}

	s.logger.Debug().
		Str("date", dayStart.Format(dateLayout)).
		Str("today_total", today.Total.StringFixed(2)).
		Int("today_orders", today.OrderCount).
		Int("week_orders", week.OrderCount).
		Msg("dashboard built")

	return dashboard, nil
}

// referenceDate resolves the requested day in the report location.
func (s *reportService) referenceDate(date string) (time.Time, error) {
	if date == "" {
		return s.now().In(s.location), nil
	}

	ref, err := time.ParseInLocation(dateLayout, date, s.location)
	if err != nil {
		s.logger.Warn().Str("date", date).Msg("invalid dashboard date")
		return time.Time{}, model.ValidationError("Date must use the YYYY-MM-DD format")
	}
	return ref, nil
}
