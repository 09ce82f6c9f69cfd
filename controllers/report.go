// controllers/report.go
package controllers

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"restropos-backend/models"
	"restropos-backend/store"
	"restropos-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ReportController handles all reporting functions
type ReportController struct {
	Store *store.Store
}

// AnalyticsSummary represents the Analytics data
type AnalyticsSummary struct {
	CurrentMonthRevenue   decimal.Decimal           `json:"currentMonthRevenue"`
	MonthGrowth           float64                   `json:"monthGrowth"`
	CurrentQuarterRevenue decimal.Decimal           `json:"currentQuarterRevenue"`
	QuarterGrowth         float64                   `json:"quarterGrowth"`
	CurrentYearRevenue    decimal.Decimal           `json:"currentYearRevenue"`
	YearGrowth            float64                   `json:"yearGrowth"`
	TopItems              []ItemSummary             `json:"topItems"`
	QuickStats            QuickStatistics           `json:"quickStats"`
	Attendance            []store.AttendanceSummary `json:"attendance"`
}

type ItemSummary struct {
	Name    string          `json:"name"`
	Count   int             `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

type QuickStatistics struct {
	TotalOrders     int             `json:"totalOrders"`
	CancelledOrders int             `json:"cancelledOrders"`
	AvgOrderValue   decimal.Decimal `json:"avgOrderValue"`
	DineInOrders    int             `json:"dineInOrders"`
	TakeoutOrders   int             `json:"takeoutOrders"`
	DeliveryOrders  int             `json:"deliveryOrders"`
}

// GetReportAnalytics returns the complete analytics summary
func (rc *ReportController) GetReportAnalytics(c *gin.Context) {
	now := time.Now()
	currentYear, currentMonth, _ := now.Date()
	currentLocation := now.Location()

	firstOfMonth := time.Date(currentYear, currentMonth, 1, 0, 0, 0, 0, currentLocation)
	nextMonth := firstOfMonth.AddDate(0, 1, 0)

	currentMonthRevenue := rc.getRevenue(firstOfMonth, nextMonth)
	lastMonthRevenue := rc.getRevenue(firstOfMonth.AddDate(0, -1, 0), firstOfMonth)

	quarterStart := rc.getQuarterStart(now)
	currentQuarterRevenue := rc.getRevenue(quarterStart, quarterStart.AddDate(0, 3, 0))
	lastQuarterRevenue := rc.getRevenue(quarterStart.AddDate(0, -3, 0), quarterStart)

	yearStart := time.Date(currentYear, 1, 1, 0, 0, 0, 0, currentLocation)
	currentYearRevenue := rc.getRevenue(yearStart, yearStart.AddDate(1, 0, 0))
	lastYearRevenue := rc.getRevenue(yearStart.AddDate(-1, 0, 0), yearStart)

	summary := AnalyticsSummary{
		CurrentMonthRevenue:   currentMonthRevenue,
		MonthGrowth:           rc.calculateGrowthPercentage(currentMonthRevenue, lastMonthRevenue),
		CurrentQuarterRevenue: currentQuarterRevenue,
		QuarterGrowth:         rc.calculateGrowthPercentage(currentQuarterRevenue, lastQuarterRevenue),
		CurrentYearRevenue:    currentYearRevenue,
		YearGrowth:            rc.calculateGrowthPercentage(currentYearRevenue, lastYearRevenue),
		TopItems:              rc.getTopItems(firstOfMonth, nextMonth, 4),
		QuickStats:            rc.getQuickStatistics(),
		Attendance:            rc.Store.AttendanceSummaries(),
	}

	c.JSON(http.StatusOK, summary)
}

// Helper functions for reports

// getRevenue sums totals of non-cancelled orders created in [start, end).
func (rc *ReportController) getRevenue(start, end time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, order := range rc.Store.OrdersBetween(start, end) {
		if order.Status == models.OrderCancelled {
			continue
		}
		total = total.Add(order.Total)
	}
	return total
}

func (rc *ReportController) getQuarterStart(date time.Time) time.Time {
	quarter := (int(date.Month())-1)/3 + 1
	startMonth := time.Month((quarter-1)*3 + 1)
	return time.Date(date.Year(), startMonth, 1, 0, 0, 0, 0, date.Location())
}

func (rc *ReportController) calculateGrowthPercentage(current, previous decimal.Decimal) float64 {
	if previous.IsZero() {
		if current.IsZero() {
			return 0
		}
		return 100
	}
	growth, _ := current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).Float64()
	return growth
}

func (rc *ReportController) getTopItems(start, end time.Time, limit int) []ItemSummary {
	byName := make(map[string]*ItemSummary)
	for _, order := range rc.Store.OrdersBetween(start, end) {
		if order.Status == models.OrderCancelled {
			continue
		}
		for _, item := range order.Items {
			summary, ok := byName[item.Name]
			if !ok {
				summary = &ItemSummary{Name: item.Name, Revenue: decimal.Zero}
				byName[item.Name] = summary
			}
			summary.Count += item.Quantity
			summary.Revenue = summary.Revenue.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}
	}

	items := make([]ItemSummary, 0, len(byName))
	for _, summary := range byName {
		items = append(items, *summary)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Revenue.GreaterThan(items[j].Revenue)
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items
}

func (rc *ReportController) getQuickStatistics() QuickStatistics {
	var stats QuickStatistics
	revenue := decimal.Zero
	billed := 0

	for _, order := range rc.Store.Orders("", "") {
		stats.TotalOrders++
		switch order.Type {
		case models.OrderDineIn:
			stats.DineInOrders++
		case models.OrderTakeout:
			stats.TakeoutOrders++
		case models.OrderDelivery:
			stats.DeliveryOrders++
		}
		if order.Status == models.OrderCancelled {
			stats.CancelledOrders++
			continue
		}
		revenue = revenue.Add(order.Total)
		billed++
	}

	stats.AvgOrderValue = decimal.Zero
	if billed > 0 {
		stats.AvgOrderValue = revenue.Div(decimal.NewFromInt(int64(billed))).Round(2)
	}
	return stats
}

// GetDailyRevenue lists per-day revenue for the past ?days= (default 7)
func (rc *ReportController) GetDailyRevenue(c *gin.Context) {
	days := 7
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			utils.RespondWithError(c, http.StatusBadRequest, "days must be a positive number")
			return
		}
		days = parsed
	}

	type dayRevenue struct {
		Date    string          `json:"date"`
		Orders  int             `json:"orders"`
		Revenue decimal.Decimal `json:"revenue"`
	}

	today := utils.BeginningOfDay(time.Now())
	out := make([]dayRevenue, 0, days)
	for i := days - 1; i >= 0; i-- {
		start := today.AddDate(0, 0, -i)
		end := start.AddDate(0, 0, 1)
		entry := dayRevenue{Date: start.Format("2006-01-02"), Revenue: decimal.Zero}
		for _, order := range rc.Store.OrdersBetween(start, end) {
			if order.Status == models.OrderCancelled {
				continue
			}
			entry.Orders++
			entry.Revenue = entry.Revenue.Add(order.Total)
		}
		out = append(out, entry)
	}
	c.JSON(http.StatusOK, gin.H{"days": out})
}
