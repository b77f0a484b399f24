// Package report holds the calendar arithmetic and rollup shaping used by the
// sales dashboard. Sums themselves are computed by the database; this package
// turns the grouped rows into the fixed-shape series the dashboard expects.
package report

import (
	"sort"
	"time"

	"restaurante/internal/model"

	"github.com/shopspring/decimal"
)

const (
	// DaysPerWeek is the length of the weekly sales series.
	DaysPerWeek = 7

	// TopDishesLimit caps the best-seller ranking.
	TopDishesLimit = 10

	// RecentOrdersLimit is the number of orders shown on the dashboard.
	RecentOrdersLimit = 5
)

// StartOfDay truncates t to local midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DayBounds returns the half-open interval [start, end) covering ref's calendar day.
func DayBounds(ref time.Time) (time.Time, time.Time) {
	start := StartOfDay(ref)
	return start, start.AddDate(0, 0, 1)
}

// WeekBounds returns the half-open interval [monday, next monday) of the
// Monday-to-Sunday week containing ref.
func WeekBounds(ref time.Time) (time.Time, time.Time) {
	day := StartOfDay(ref)
	offset := (int(day.Weekday()) + 6) % 7
	monday := day.AddDate(0, 0, -offset)
	return monday, monday.AddDate(0, 0, DaysPerWeek)
}

// FillWeek returns exactly seven entries, Monday first, taking totals from
// rows and reporting zero for days without sales. Rows outside the week are ignored.
func FillWeek(monday time.Time, rows []model.DailySales) []model.DailySales {
	totals := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		key := dayKey(row.Date)
		totals[key] = totals[key].Add(row.Total)
	}

	week := make([]model.DailySales, 0, DaysPerWeek)
	for i := 0; i < DaysPerWeek; i++ {
		day := monday.AddDate(0, 0, i)
		total, ok := totals[dayKey(day)]
		if !ok {
			total = decimal.Zero
		}
		week = append(week, model.DailySales{Date: day, Total: total})
	}
	return week
}

// RankDishes orders dish rollups by units sold, descending, and keeps at most
// limit entries. Equal unit counts fall back to ascending dish id.
func RankDishes(rows []model.DishSales, limit int) []model.DishSales {
	ranked := make([]model.DishSales, len(rows))
	copy(ranked, rows)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Units != ranked[j].Units {
			return ranked[i].Units > ranked[j].Units
		}
		return ranked[i].DishID < ranked[j].DishID
	})

	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// dayKey identifies a calendar day independent of location and clock time.
func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
