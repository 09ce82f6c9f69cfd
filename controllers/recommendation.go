// controllers/recommendation.go
package controllers

import (
	"net/http"
	"time"

	"restropos-backend/models"
	"restropos-backend/services"
	"restropos-backend/store"

	"github.com/gin-gonic/gin"
)

// RecommendationController bridges the dish recommender. The result is
// displayed verbatim; a failed or malformed call is a recoverable error.
type RecommendationController struct {
	Store   *store.Store
	Service *services.RecommendationService
}

// GetRecommendation asks the external recommender for a dish suggestion
// based on the time of day and recently ordered dishes.
func (rc *RecommendationController) GetRecommendation(c *gin.Context) {
	now := time.Now()
	history := rc.recentItemNames(20)

	recommendation, err := rc.Service.Recommend(c.Request.Context(), services.RecommendationRequest{
		TimeOfDay:    services.TimeOfDay(now),
		OrderHistory: history,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendation": recommendation})
}

// recentItemNames collects dish names from the newest orders, most recent
// first, capped at limit.
func (rc *RecommendationController) recentItemNames(limit int) []string {
	orders := rc.Store.Orders("", "")
	names := make([]string, 0, limit)
	for i := len(orders) - 1; i >= 0 && len(names) < limit; i-- {
		if orders[i].Status == models.OrderCancelled {
			continue
		}
		for _, item := range orders[i].Items {
			if len(names) == limit {
				break
			}
			names = append(names, item.Name)
		}
	}
	return names
}
