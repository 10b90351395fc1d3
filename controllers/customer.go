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
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CreateCustomerInput defines the expected JSON structure for creating a customer
type CreateCustomerInput struct {
	UserID        string `json:"user_id"`
	CompanyName   string `json:"company_name"`
	ContactPerson string `json:"contact_person"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	City          string `json:"city"`
	PostalCode    string `json:"postal_code"`
	Country       string `json:"country"`
	Status        string `json:"status"`
	Notes         string `json:"notes"`
}

// UpdateCustomerInput defines the expected JSON structure for updating a customer
type UpdateCustomerInput struct {
	CompanyName   *string `json:"company_name"`
	ContactPerson *string `json:"contact_person"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
	City          *string `json:"city"`
	PostalCode    *string `json:"postal_code"`
	Country       *string `json:"country"`
	Status        *string `json:"status"`
	Notes         *string `json:"notes"`
}

func validateCreateCustomer(input CreateCustomerInput) map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(input.UserID) == "" {
		errs["user_id"] = "Select a user for the customer"
	}
	if strings.TrimSpace(input.CompanyName) == "" {
		errs["company_name"] = "Company name is required"
	}
	if input.Email != "" && !utils.ValidateEmail(input.Email) {
		errs["email"] = "Invalid email address"
	}
	if input.Status != "" && !models.CustomerStatus(input.Status).Valid() {
		errs["status"] = "Invalid status"
	}

	return errs
}

// CreateCustomer creates a customer record for an eligible profile (one that
// has no customer yet). The selected user id is required; nothing is written
// when validation fails.
func CreateCustomer(c *gin.Context) {
	var input CreateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if errs := validateCreateCustomer(input); len(errs) > 0 {
		utils.RespondWithFieldErrors(c, errs)
		return
	}

	userUUID, err := uuid.Parse(input.UserID)
	if err != nil {
		utils.RespondWithFieldErrors(c, map[string]string{"user_id": "Invalid user ID format"})
		return
	}

	// Only profiles without a customer record are eligible
	var profile models.Profile
	if err := config.DB.First(&profile, "user_id = ?", userUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithFieldErrors(c, map[string]string{"user_id": "No profile found for selected user"})
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var existing models.Customer
	if err := config.DB.Where("user_id = ?", userUUID).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "User already has a customer record")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	customer := models.Customer{
		UserID:        userUUID,
		CompanyName:   input.CompanyName,
		ContactPerson: input.ContactPerson,
		Email:         input.Email,
		Phone:         input.Phone,
		Address:       input.Address,
		City:          input.City,
		PostalCode:    input.PostalCode,
		Country:       input.Country,
		Status:        models.CustomerStatus(input.Status),
		Notes:         input.Notes,
	}

	if err := config.DB.Create(&customer).Error; err != nil {
		config.Logger.Error("create customer failed", zap.Error(err))
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create customer")
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// GetCustomers retrieves all customers, newest first
func GetCustomers(c *gin.Context) {
	var customers []models.Customer
	if err := config.DB.Order("created_at DESC").Find(&customers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}

	c.JSON(http.StatusOK, customers)
}

// GetCustomer retrieves a specific customer by ID
func GetCustomer(c *gin.Context) {
	customerUUID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var customer models.Customer
	if err := config.DB.First(&customer, "id = ?", customerUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, customer)
}

// UpdateCustomer updates an existing customer
func UpdateCustomer(c *gin.Context) {
	customerUUID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input UpdateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	errs := make(map[string]string)
	if input.CompanyName != nil && strings.TrimSpace(*input.CompanyName) == "" {
		errs["company_name"] = "Company name is required"
	}
	if input.Email != nil && *input.Email != "" && !utils.ValidateEmail(*input.Email) {
		errs["email"] = "Invalid email address"
	}
	if input.Status != nil && !models.CustomerStatus(*input.Status).Valid() {
		errs["status"] = "Invalid status"
	}
	if len(errs) > 0 {
		utils.RespondWithFieldErrors(c, errs)
		return
	}

	var customer models.Customer
	if err := config.DB.First(&customer, "id = ?", customerUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// Update fields if provided
	if input.CompanyName != nil {
		customer.CompanyName = *input.CompanyName
	}
	if input.ContactPerson != nil {
		customer.ContactPerson = *input.ContactPerson
	}
	if input.Email != nil {
		customer.Email = *input.Email
	}
	if input.Phone != nil {
		customer.Phone = *input.Phone
	}
	if input.Address != nil {
		customer.Address = *input.Address
	}
	if input.City != nil {
		customer.City = *input.City
	}
	if input.PostalCode != nil {
		customer.PostalCode = *input.PostalCode
	}
	if input.Country != nil {
		customer.Country = *input.Country
	}
	if input.Status != nil {
		customer.Status = models.CustomerStatus(*input.Status)
	}
	if input.Notes != nil {
		customer.Notes = *input.Notes
	}

	if err := config.DB.Save(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer")
		return
	}

	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer hard deletes a customer together with its services,
// invoices and activities, in one transaction.
func DeleteCustomer(c *gin.Context) {
	customerUUID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var deleted int64
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("customer_id = ?", customerUUID).Delete(&models.Service{}).Error; err != nil {
			return err
		}
		if err := tx.Where("customer_id = ?", customerUUID).Delete(&models.Invoice{}).Error; err != nil {
			return err
		}
		if err := tx.Where("customer_id = ?", customerUUID).Delete(&models.SalesActivity{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", customerUUID).Delete(&models.Customer{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	})

	if err != nil {
		config.Logger.Error("delete customer failed", zap.String("customer_id", customerUUID.String()), zap.Error(err))
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete customer")
		return
	}

	if deleted == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}

// GetEligibleUsers lists profiles without a customer record, the candidate
// set for CreateCustomer.
func GetEligibleUsers(c *gin.Context) {
	var profiles []models.Profile
	subQuery := config.DB.Model(&models.Customer{}).Select("user_id")
	if err := config.DB.Where("user_id NOT IN (?)", subQuery).Find(&profiles).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve eligible users")
		return
	}

	c.JSON(http.StatusOK, profiles)
}

// GetCustomerServices lists a customer's services, newest first
func GetCustomerServices(c *gin.Context) {
	customerUUID, ok := requireCustomer(c)
	if !ok {
		return
	}

	var services []models.Service
	if err := config.DB.Where("customer_id = ?", customerUUID).
		Order("created_at DESC").Find(&services).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	c.JSON(http.StatusOK, services)
}

// GetCustomerInvoices lists a customer's invoices, newest first
func GetCustomerInvoices(c *gin.Context) {
	customerUUID, ok := requireCustomer(c)
	if !ok {
		return
	}

	var invoices []models.Invoice
	if err := config.DB.Where("customer_id = ?", customerUUID).
		Order("created_at DESC").Find(&invoices).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve invoices")
		return
	}

	c.JSON(http.StatusOK, invoices)
}

// GetCustomerActivities lists a customer's sales activities, newest first
func GetCustomerActivities(c *gin.Context) {
	customerUUID, ok := requireCustomer(c)
	if !ok {
		return
	}

	var activities []models.SalesActivity
	if err := config.DB.Where("customer_id = ?", customerUUID).
		Order("created_at DESC").Find(&activities).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve activities")
		return
	}

	c.JSON(http.StatusOK, activities)
}

// parseIDParam parses the :id route parameter, responding 400 on bad input.
func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid ID format")
		return uuid.Nil, false
	}
	return id, true
}

// requireCustomer parses :id and verifies the customer exists.
func requireCustomer(c *gin.Context) (uuid.UUID, bool) {
	customerUUID, ok := parseIDParam(c)
	if !ok {
		return uuid.Nil, false
	}

	var customer models.Customer
	if err := config.DB.Select("id").First(&customer, "id = ?", customerUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return uuid.Nil, false
	}
	return customerUUID, true
}
