// services/invoice_sweeper.go
package services

import (
	"time"

	"crmportal-backend/models"
	"crmportal-backend/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// InvoiceSweeper marks sent and pending invoices as overdue once their due
// date has passed. Each row is updated on its own; one failure does not stop
// the sweep.
type InvoiceSweeper struct {
	db     *gorm.DB
	logger *zap.Logger
	cron   *cron.Cron
}

func NewInvoiceSweeper(db *gorm.DB, logger *zap.Logger) *InvoiceSweeper {
	return &InvoiceSweeper{
		db:     db,
		logger: logger.Named("invoice_sweeper"),
		cron:   cron.New(),
	}
}

// StartScheduler runs one sweep immediately and then every day at 6 AM.
func (s *InvoiceSweeper) StartScheduler() {
	s.SweepOverdue(time.Now())

	if _, err := s.cron.AddFunc("0 6 * * *", func() {
		s.SweepOverdue(time.Now())
	}); err != nil {
		s.logger.Error("failed to schedule sweep", zap.Error(err))
		return
	}

	s.cron.Start()
	s.logger.Info("invoice sweeper started")
}

func (s *InvoiceSweeper) Stop() {
	s.cron.Stop()
}

// SweepOverdue flips invoices whose due date is before the start of the
// given day and whose status is still sent or pending. Returns the number of
// rows updated.
func (s *InvoiceSweeper) SweepOverdue(now time.Time) int {
	cutoff := utils.BeginningOfDay(now)

	var invoices []models.Invoice
	err := s.db.
		Where("status IN ?", []models.InvoiceStatus{models.InvoiceSent, models.InvoicePending}).
		Where("due_date IS NOT NULL AND due_date < ?", cutoff).
		Find(&invoices).Error
	if err != nil {
		s.logger.Error("failed to fetch due invoices", zap.Error(err))
		return 0
	}

	updated := 0
	for _, invoice := range invoices {
		err := s.db.Model(&invoice).Update("status", models.InvoiceOverdue).Error
		if err != nil {
			s.logger.Error("failed to mark invoice overdue",
				zap.String("invoice_number", invoice.InvoiceNumber),
				zap.Error(err),
			)
			continue
		}
		updated++
		s.logger.Info("invoice marked overdue",
			zap.String("invoice_number", invoice.InvoiceNumber),
			zap.Timep("due_date", invoice.DueDate),
		)
	}

	return updated
}
