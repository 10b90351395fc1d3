// controllers/service.go
package controllers

import (
	"errors"
	"net/http"
	"strings"

	"crmportal-backend/config"
	"crmportal-backend/models"
	"crmportal-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreateServiceInput defines the expected JSON structure for creating a service
type CreateServiceInput struct {
	CustomerID   string          `json:"customer_id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Status       string          `json:"status"`
	MonthlyPrice decimal.Decimal `json:"monthly_price"`
}

// UpdateServiceInput defines the expected JSON structure for updating a service
type UpdateServiceInput struct {
	Name         *string          `json:"name"`
	Description  *string          `json:"description"`
	Status       *string          `json:"status"`
	MonthlyPrice *decimal.Decimal `json:"monthly_price"`
}

// CreateService attaches a new service to a customer
func CreateService(c *gin.Context) {
	var input CreateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	errs := make(map[string]string)
	if strings.TrimSpace(input.Name) == "" {
		errs["name"] = "Name is required"
	}
	if strings.TrimSpace(input.CustomerID) == "" {
		errs["customer_id"] = "Customer is required"
	}
	if input.Status != "" && !models.ServiceStatus(input.Status).Valid() {
		errs["status"] = "Invalid status"
	}
	if len(errs) > 0 {
		utils.RespondWithFieldErrors(c, errs)
		return
	}

	customerUUID, err := uuid.Parse(input.CustomerID)
	if err != nil {
		utils.RespondWithFieldErrors(c, map[string]string{"customer_id": "Invalid customer ID format"})
		return
	}

	var customer models.Customer
	if err := config.DB.Select("id").First(&customer, "id = ?", customerUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	service := models.Service{
		CustomerID:   customerUUID,
		Name:         input.Name,
		Description:  input.Description,
		Status:       models.ServiceStatus(input.Status),
		MonthlyPrice: input.MonthlyPrice,
	}

	if err := config.DB.Create(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create service")
		return
	}

	c.JSON(http.StatusCreated, service)
}

// UpdateService updates an existing service
func UpdateService(c *gin.Context) {
	serviceUUID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input UpdateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Status != nil && !models.ServiceStatus(*input.Status).Valid() {
		utils.RespondWithFieldErrors(c, map[string]string{"status": "Invalid status"})
		return
	}

	var service models.Service
	if err := config.DB.First(&service, "id = ?", serviceUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		service.Name = *input.Name
	}
	if input.Description != nil {
		service.Description = *input.Description
	}
	if input.Status != nil {
		service.Status = models.ServiceStatus(*input.Status)
	}
	if input.MonthlyPrice != nil {
		service.MonthlyPrice = *input.MonthlyPrice
	}

	if err := config.DB.Save(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update service")
		return
	}

	c.JSON(http.StatusOK, service)
}

// GetMyServices lists the services belonging to the caller's own customer
// record, newest first. Callers without a customer record get an empty list.
func GetMyServices(c *gin.Context) {
	customerID, ok, err := callerCustomerID(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if !ok {
		c.JSON(http.StatusOK, []models.Service{})
		return
	}

	var services []models.Service
	if err := config.DB.Where("customer_id = ?", customerID).
		Order("created_at DESC").Find(&services).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	c.JSON(http.StatusOK, services)
}

// callerCustomerID resolves the authenticated user's customer record, if any.
func callerCustomerID(c *gin.Context) (uuid.UUID, bool, error) {
	userID, exists := c.Get("userId")
	if !exists {
		return uuid.Nil, false, models.ErrUnauthorized
	}

	var customer models.Customer
	err := config.DB.Select("id").First(&customer, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, err
	}
	return customer.ID, true, nil
}
