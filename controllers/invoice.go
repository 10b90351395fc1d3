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
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreateInvoiceInput defines the expected JSON structure for creating an invoice
type CreateInvoiceInput struct {
	CustomerID    string          `json:"customer_id"`
	InvoiceNumber string          `json:"invoice_number"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Status        string          `json:"status"`
	DueDate       *time.Time      `json:"due_date"`
}

// UpdateInvoiceInput defines the expected JSON structure for updating an invoice
type UpdateInvoiceInput struct {
	Amount   *decimal.Decimal `json:"amount"`
	Currency *string          `json:"currency"`
	Status   *string          `json:"status"`
	DueDate  *time.Time       `json:"due_date"`
}

// CreateInvoice attaches a new invoice to a customer
func CreateInvoice(c *gin.Context) {
	var input CreateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	errs := make(map[string]string)
	if strings.TrimSpace(input.InvoiceNumber) == "" {
		errs["invoice_number"] = "Invoice number is required"
	}
	if strings.TrimSpace(input.CustomerID) == "" {
		errs["customer_id"] = "Customer is required"
	}
	if input.Status != "" && !models.InvoiceStatus(input.Status).Valid() {
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

	invoice := models.Invoice{
		CustomerID:    customerUUID,
		InvoiceNumber: input.InvoiceNumber,
		Amount:        input.Amount,
		Currency:      input.Currency,
		Status:        models.InvoiceStatus(input.Status),
		DueDate:       input.DueDate,
	}

	if err := config.DB.Create(&invoice).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create invoice")
		return
	}

	c.JSON(http.StatusCreated, invoice)
}

// UpdateInvoice updates an existing invoice
func UpdateInvoice(c *gin.Context) {
	invoiceUUID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input UpdateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Status != nil && !models.InvoiceStatus(*input.Status).Valid() {
		utils.RespondWithFieldErrors(c, map[string]string{"status": "Invalid status"})
		return
	}

	var invoice models.Invoice
	if err := config.DB.First(&invoice, "id = ?", invoiceUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Amount != nil {
		invoice.Amount = *input.Amount
	}
	if input.Currency != nil {
		invoice.Currency = *input.Currency
	}
	if input.Status != nil {
		invoice.Status = models.InvoiceStatus(*input.Status)
	}
	if input.DueDate != nil {
		invoice.DueDate = input.DueDate
	}

	if err := config.DB.Save(&invoice).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update invoice")
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// GetMyInvoices lists the invoices belonging to the caller's own customer
// record, newest first. Callers without a customer record get an empty list.
func GetMyInvoices(c *gin.Context) {
	customerID, ok, err := callerCustomerID(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if !ok {
		c.JSON(http.StatusOK, []models.Invoice{})
		return
	}

	var invoices []models.Invoice
	if err := config.DB.Where("customer_id = ?", customerID).
		Order("created_at DESC").Find(&invoices).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve invoices")
		return
	}

	c.JSON(http.StatusOK, invoices)
}
