package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesSummary is revenue and order count over a set of paid orders.
type SalesSummary struct {
	Total      decimal.Decimal
	OrderCount int
}

// DailySales is the revenue of paid orders on one calendar day.
type DailySales struct {
	Date  time.Time
	Total decimal.Decimal
}

// DishSales is the units sold and revenue of one dish across paid orders.
type DishSales struct {
	DishID       int64
	DishName     string
	CategoryName string
	Units        int
	Revenue      decimal.Decimal
}

// Dashboard is the data a dashboard view renders for a reference date.
type Dashboard struct {
	Date         time.Time
	TodaySales   SalesSummary
	WeekOrders   int
	WeeklySales  []DailySales
	RecentOrders []Order
	TopDishes    []DishSales
}
