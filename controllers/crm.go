package controllers

import (
	"net/http"

	"crmportal-backend/config"
	"crmportal-backend/models"
	"crmportal-backend/utils"

	"github.com/gin-gonic/gin"
)

// CRMStats are the summary counts shown at the top of the CRM view.
type CRMStats struct {
	TotalActivities     int `json:"totalActivities"`
	PendingActivities   int `json:"pendingActivities"`
	CompletedActivities int `json:"completedActivities"`
	TotalCustomers      int `json:"totalCustomers"`
}

// ComputeCRMStats derives the summary counts from the full activity list and
// the customer count. Pure function; recomputed on every refresh. Cancelled
// activities count toward the total but neither pending nor completed.
func ComputeCRMStats(activities []models.SalesActivity, customerCount int) CRMStats {
	stats := CRMStats{
		TotalActivities: len(activities),
		TotalCustomers:  customerCount,
	}
	for _, a := range activities {
		switch a.Status {
		case models.ActivityPending:
			stats.PendingActivities++
		case models.ActivityCompleted:
			stats.CompletedActivities++
		case models.ActivityCancelled:
			// counted in total only
		}
	}
	return stats
}

// GetCRMOverview returns the stats together with the activity list. The two
// fetches are independent; a failure in either surfaces on its own.
func GetCRMOverview(c *gin.Context) {
	var activities []models.SalesActivity
	if err := config.DB.Preload("Customer").Order("created_at DESC").
		Find(&activities).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve activities")
		return
	}

	var customerCount int64
	if err := config.DB.Model(&models.Customer{}).Count(&customerCount).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count customers")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":      ComputeCRMStats(activities, int(customerCount)),
		"activities": activities,
	})
}
