package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"crmportal-backend/config"
	"crmportal-backend/models"
	"crmportal-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CreateActivityInput defines the expected JSON structure for creating a sales activity
type CreateActivityInput struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	ActivityType  string     `json:"activity_type"`
	Priority      string     `json:"priority"`
	CustomerID    string     `json:"customer_id"`
	ScheduledDate *time.Time `json:"scheduled_date"`
}

func validateCreateActivity(input CreateActivityInput) map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(input.Title) == "" {
		errs["title"] = "Title is required"
	}
	if !models.ActivityType(input.ActivityType).Valid() {
		errs["activity_type"] = "Invalid activity type"
	}
	if !models.ActivityPriority(input.Priority).Valid() {
		errs["priority"] = "Invalid priority"
	}

	return errs
}

// CreateActivity creates a sales activity authored by the caller. The
// customer link is optional; activities without one are general.
func CreateActivity(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	var input CreateActivityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if errs := validateCreateActivity(input); len(errs) > 0 {
		utils.RespondWithFieldErrors(c, errs)
		return
	}

	var customerID *uuid.UUID
	if input.CustomerID != "" {
		parsed, err := uuid.Parse(input.CustomerID)
		if err != nil {
			utils.RespondWithFieldErrors(c, map[string]string{"customer_id": "Invalid customer ID format"})
			return
		}
		var customer models.Customer
		if err := config.DB.Select("id").First(&customer, "id = ?", parsed).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithFieldErrors(c, map[string]string{"customer_id": "Customer not found"})
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}
		customerID = &parsed
	}

	activity := models.SalesActivity{
		UserID:        userUUID,
		CustomerID:    customerID,
		Title:         input.Title,
		Description:   input.Description,
		ActivityType:  models.ActivityType(input.ActivityType),
		Priority:      models.ActivityPriority(input.Priority),
		Status:        models.ActivityPending,
		ScheduledDate: input.ScheduledDate,
	}

	if err := config.DB.Create(&activity).Error; err != nil {
		config.Logger.Error("create activity failed", zap.Error(err))
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create activity")
		return
	}

	c.JSON(http.StatusCreated, activity)
}

// GetActivities lists sales activities newest first, with the linked
// customer preloaded for display. Optional ?status= filter.
func GetActivities(c *gin.Context) {
	query := config.DB.Preload("Customer").Order("created_at DESC")

	if status := c.Query("status"); status != "" {
		if !models.ActivityStatus(status).Valid() {
			utils.RespondWithFieldErrors(c, map[string]string{"status": "Invalid status"})
			return
		}
		query = query.Where("status = ?", status)
	}

	var activities []models.SalesActivity
	if err := query.Find(&activities).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve activities")
		return
	}

	c.JSON(http.StatusOK, activities)
}

// CompleteActivity marks a pending activity as completed, stamping the
// completion time server-side. Completing an already completed activity is a
// no-op; cancelled activities are terminal and yield 409.
func CompleteActivity(c *gin.Context) {
	activityUUID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var activity models.SalesActivity
	if err := config.DB.First(&activity, "id = ?", activityUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Activity not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	alreadyCompleted := activity.Status == models.ActivityCompleted

	if err := activity.MarkCompleted(time.Now()); err != nil {
		if errors.Is(err, models.ErrConflict) {
			utils.RespondWithError(c, http.StatusConflict, "Activity is cancelled and cannot be completed")
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update activity")
		return
	}

	if !alreadyCompleted {
		if err := config.DB.Model(&activity).Updates(map[string]interface{}{
			"status":         activity.Status,
			"completed_date": activity.CompletedDate,
		}).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update activity")
			return
		}
	}

	c.JSON(http.StatusOK, activity)
}
