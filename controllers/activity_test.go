package controllers

import (
	"net/http"
	"testing"
	"time"

	"crmportal-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activityRouter(userID uuid.UUID) *gin.Engine {
	r := gin.New()
	r.Use(withUser(userID))
	r.POST("/activities", CreateActivity)
	r.GET("/activities", GetActivities)
	r.POST("/activities/:id/complete", CompleteActivity)
	return r
}

func TestCreateActivitySuccess(t *testing.T) {
	db := setupTestDB(t)
	author := uuid.New()
	router := activityRouter(author)

	w := performJSON(t, router, http.MethodPost, "/activities", gin.H{
		"title":         "Call about renewal",
		"activity_type": "call",
		"priority":      "high",
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var activity models.SalesActivity
	require.NoError(t, db.First(&activity, "title = ?", "Call about renewal").Error)
	assert.Equal(t, author, activity.UserID, "author comes from the session, not the body")
	assert.Equal(t, models.ActivityPending, activity.Status)
	assert.Nil(t, activity.CustomerID)
	assert.Nil(t, activity.CompletedDate)
}

func TestCreateActivityValidation(t *testing.T) {
	db := setupTestDB(t)
	router := activityRouter(uuid.New())

	w := performJSON(t, router, http.MethodPost, "/activities", gin.H{
		"activity_type": "fax",
		"priority":      "urgent",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	errs := fieldErrors(t, w)
	assert.Equal(t, "Title is required", errs["title"])
	assert.Equal(t, "Invalid activity type", errs["activity_type"])
	assert.Equal(t, "Invalid priority", errs["priority"])

	var count int64
	db.Model(&models.SalesActivity{}).Count(&count)
	assert.Zero(t, count)
}

func TestCreateActivityUnknownCustomer(t *testing.T) {
	setupTestDB(t)
	router := activityRouter(uuid.New())

	w := performJSON(t, router, http.MethodPost, "/activities", gin.H{
		"title":         "Quote follow-up",
		"activity_type": "quote",
		"priority":      "medium",
		"customer_id":   uuid.NewString(),
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	errs := fieldErrors(t, w)
	assert.Equal(t, "Customer not found", errs["customer_id"])
}

func TestCompleteActivity(t *testing.T) {
	db := setupTestDB(t)
	router := activityRouter(uuid.New())

	activity := createTestActivity(t, db, models.ActivityPending)

	w := performJSON(t, router, http.MethodPost, "/activities/"+activity.ID.String()+"/complete", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var refreshed models.SalesActivity
	require.NoError(t, db.First(&refreshed, "id = ?", activity.ID).Error)
	assert.Equal(t, models.ActivityCompleted, refreshed.Status)
	require.NotNil(t, refreshed.CompletedDate)
	assert.WithinDuration(t, time.Now(), *refreshed.CompletedDate, 5*time.Second)
}

// TestCompleteActivityIdempotent completes the same activity twice and
// expects the second call to succeed without re-stamping the completion time.
func TestCompleteActivityIdempotent(t *testing.T) {
	db := setupTestDB(t)
	router := activityRouter(uuid.New())

	activity := createTestActivity(t, db, models.ActivityCompleted)
	first := *activity.CompletedDate

	w := performJSON(t, router, http.MethodPost, "/activities/"+activity.ID.String()+"/complete", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var refreshed models.SalesActivity
	require.NoError(t, db.First(&refreshed, "id = ?", activity.ID).Error)
	assert.Equal(t, models.ActivityCompleted, refreshed.Status)
	require.NotNil(t, refreshed.CompletedDate)
	assert.WithinDuration(t, first, *refreshed.CompletedDate, time.Second)
}

func TestCompleteActivityCancelled(t *testing.T) {
	db := setupTestDB(t)
	router := activityRouter(uuid.New())

	activity := createTestActivity(t, db, models.ActivityCancelled)

	w := performJSON(t, router, http.MethodPost, "/activities/"+activity.ID.String()+"/complete", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	var refreshed models.SalesActivity
	require.NoError(t, db.First(&refreshed, "id = ?", activity.ID).Error)
	assert.Equal(t, models.ActivityCancelled, refreshed.Status)
	assert.Nil(t, refreshed.CompletedDate)
}

func TestCompleteActivityNotFound(t *testing.T) {
	setupTestDB(t)
	router := activityRouter(uuid.New())

	w := performJSON(t, router, http.MethodPost, "/activities/"+uuid.NewString()+"/complete", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetActivitiesStatusFilter(t *testing.T) {
	db := setupTestDB(t)
	router := activityRouter(uuid.New())

	createTestActivity(t, db, models.ActivityPending)
	createTestActivity(t, db, models.ActivityCompleted)
	createTestActivity(t, db, models.ActivityCompleted)

	w := performJSON(t, router, http.MethodGet, "/activities?status=completed", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var activities []models.SalesActivity
	decodeBody(t, w, &activities)
	require.Len(t, activities, 2)
	for _, a := range activities {
		assert.Equal(t, models.ActivityCompleted, a.Status)
	}

	w = performJSON(t, router, http.MethodGet, "/activities?status=archived", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetActivitiesPreloadsCustomer(t *testing.T) {
	db := setupTestDB(t)
	router := activityRouter(uuid.New())

	customer := createTestCustomer(t, db, "Acme AB")
	require.NoError(t, db.Create(&models.SalesActivity{
		CustomerID:   &customer.ID,
		UserID:       uuid.New(),
		Title:        "Linked activity",
		ActivityType: models.ActivityMeeting,
	}).Error)

	w := performJSON(t, router, http.MethodGet, "/activities", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var activities []models.SalesActivity
	decodeBody(t, w, &activities)
	require.Len(t, activities, 1)
	require.NotNil(t, activities[0].Customer)
	assert.Equal(t, "Acme AB", activities[0].Customer.CompanyName)
}
