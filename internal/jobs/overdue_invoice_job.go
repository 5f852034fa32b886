package jobs

import (
	"context"
	"time"

	"github.com/solstice-events/bookings-api/internal/domain"
	"go.uber.org/zap"
)

// OverdueReminderJobName is the name of the overdue invoice reminder job
const OverdueReminderJobName = "overdue_invoice_reminder"

// OverdueLister returns sent and partly paid invoices past their due
// date. The job goes through this interface so it doesn't import the
// repository package directly.
type OverdueLister interface {
	ListOverdue(ctx context.Context, now time.Time) ([]domain.Invoice, error)
}

// OverdueInvoiceJob logs late invoices nightly so they can be chased.
// Invoice statuses are never rewritten here: the overdue list filter
// is computed at query time from SENT and PARTIAL rows, and a stored
// OVERDUE status is only set through an explicit lifecycle update.
type OverdueInvoiceJob struct {
	lister  OverdueLister
	logger  *zap.Logger
	timeout time.Duration
}

func NewOverdueInvoiceJob(lister OverdueLister, logger *zap.Logger, timeout time.Duration) *OverdueInvoiceJob {
	return &OverdueInvoiceJob{
		lister:  lister,
		logger:  logger,
		timeout: timeout,
	}
}

// Run executes the reminder pass. Called by the scheduler.
func (j *OverdueInvoiceJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()

	invoices, err := j.lister.ListOverdue(ctx, start.UTC())
	if err != nil {
		j.logger.Error("overdue invoice reminder failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	for _, inv := range invoices {
		fields := []zap.Field{
			zap.String("invoice_number", inv.InvoiceNumber),
			zap.String("amount_due", inv.AmountDue.StringFixed(2)),
			zap.Int("days_overdue", int(start.UTC().Sub(inv.DueDate).Hours()/24)),
		}
		if inv.Company != nil {
			fields = append(fields, zap.String("company", inv.Company.Name))
		}
		j.logger.Warn("invoice overdue", fields...)
	}

	j.logger.Info("overdue invoice reminder completed",
		zap.Int("invoices_overdue", len(invoices)),
		zap.Duration("duration", time.Since(start)))
}

// RegisterOverdueInvoiceJob registers the reminder with the scheduler.
func RegisterOverdueInvoiceJob(scheduler *Scheduler, lister OverdueLister, logger *zap.Logger, cronExpr string, timeout time.Duration) error {
	job := NewOverdueInvoiceJob(lister, logger, timeout)
	return scheduler.AddJob(OverdueReminderJobName, cronExpr, job.Run)
}
