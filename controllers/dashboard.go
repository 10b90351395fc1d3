package controllers

import (
	"net/http"

	"crmportal-backend/config"
	"crmportal-backend/models"
	"crmportal-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetDashboardOverview returns the caller-scoped counts for the customer
// portal landing page. Callers without a customer record get zeros.
func GetDashboardOverview(c *gin.Context) {
	customerID, ok, err := callerCustomerID(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	var activeServices, totalInvoices, openActivities int64
	if ok {
		config.DB.Model(&models.Service{}).
			Where("customer_id = ? AND status = ?", customerID, models.ServiceActive).
			Count(&activeServices)
		config.DB.Model(&models.Invoice{}).
			Where("customer_id = ?", customerID).
			Count(&totalInvoices)
		config.DB.Model(&models.SalesActivity{}).
			Where("customer_id = ? AND status = ?", customerID, models.ActivityPending).
			Count(&openActivities)
	}

	c.JSON(http.StatusOK, gin.H{
		"activeServices": activeServices,
		"totalInvoices":  totalInvoices,
		"openActivities": openActivities,
	})
}
