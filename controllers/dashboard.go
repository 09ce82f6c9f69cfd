// controllers/dashboard.go
package controllers

import (
	"fmt"
	"net/http"
	"time"

	"restropos-backend/models"
	"restropos-backend/store"
	"restropos-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// DashboardController serves the front-of-house overview screen.
type DashboardController struct {
	Store *store.Store
}

type DashboardOverview struct {
	TodayRevenue   decimal.Decimal            `json:"todayRevenue"`
	TodayOrders    int                        `json:"todayOrders"`
	OpenOrders     []OpenOrderSummary         `json:"openOrders"`
	TablesByStatus map[models.TableStatus]int `json:"tablesByStatus"`
	CheckedInStaff []CheckedInStaff           `json:"checkedInStaff"`
}

type OpenOrderSummary struct {
	OrderNumber string             `json:"orderNumber"`
	Type        models.OrderType   `json:"type"`
	Status      models.OrderStatus `json:"status"`
	Total       decimal.Decimal    `json:"total"`
	Placed      string             `json:"placed"` // e.g. "5 minutes ago"
}

type CheckedInStaff struct {
	Name    string      `json:"name"`
	Role    models.Role `json:"role"`
	Since   string      `json:"since"`
	OnBreak bool        `json:"onBreak"`
}

// GetDashboardOverview summarizes today's trade, the floor and the staff
func (dc *DashboardController) GetDashboardOverview(c *gin.Context) {
	now := time.Now()
	today := utils.BeginningOfDay(now)
	tomorrow := today.AddDate(0, 0, 1)

	overview := DashboardOverview{
		TodayRevenue:   decimal.Zero,
		TablesByStatus: make(map[models.TableStatus]int),
	}

	for _, order := range dc.Store.OrdersBetween(today, tomorrow) {
		if order.Status == models.OrderCancelled {
			continue
		}
		overview.TodayOrders++
		overview.TodayRevenue = overview.TodayRevenue.Add(order.Total)
	}

	// Orders still moving through the kitchen pipeline
	for _, order := range dc.Store.Orders("", "") {
		switch order.Status {
		case models.OrderCompleted, models.OrderCancelled:
			continue
		}
		overview.OpenOrders = append(overview.OpenOrders, OpenOrderSummary{
			OrderNumber: order.OrderNumber,
			Type:        order.Type,
			Status:      order.Status,
			Total:       order.Total,
			Placed:      relativeTime(now.Sub(order.CreatedAt)),
		})
	}

	settings := dc.Store.Settings()
	for _, table := range settings.Tables {
		overview.TablesByStatus[table.Status]++
	}

	for _, entry := range dc.Store.TimeLogs(nil, today.Format("2006-01-02")) {
		if !entry.IsOpen() {
			continue
		}
		overview.CheckedInStaff = append(overview.CheckedInStaff, CheckedInStaff{
			Name:    entry.UserName,
			Role:    entry.UserRole,
			Since:   entry.CheckIn.Format("15:04"),
			OnBreak: entry.OnBreak(),
		})
	}

	c.JSON(http.StatusOK, overview)
}

func relativeTime(elapsed time.Duration) string {
	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		return fmt.Sprintf("%d minutes ago", int(elapsed.Minutes()))
	default:
		return fmt.Sprintf("%d hours ago", int(elapsed.Hours()))
	}
}
