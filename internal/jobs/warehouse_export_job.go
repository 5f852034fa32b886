package jobs

import (
	"context"
	"time"

	"github.com/solstice-events/bookings-api/internal/domain"
	"go.uber.org/zap"
)

// WarehouseExportJobName is the name of the warehouse export job
const WarehouseExportJobName = "warehouse_export"

// DefaultExportWindow is how far back each export run looks for newly
// settled invoices. Slightly more than a day so the nightly runs overlap;
// the export upserts, so re-sending a row is harmless.
const DefaultExportWindow = 26 * time.Hour

// PaidInvoiceSource lists invoices settled at or after the cutoff.
type PaidInvoiceSource interface {
	ListPaidSince(ctx context.Context, cutoff time.Time) ([]domain.Invoice, error)
}

// InvoiceExporter writes settled invoices to the reporting warehouse.
type InvoiceExporter interface {
	ExportPaidInvoices(ctx context.Context, invoices []domain.Invoice) (int, error)
}

// WarehouseExportJob pushes recently settled invoices to the warehouse.
type WarehouseExportJob struct {
	source   PaidInvoiceSource
	exporter InvoiceExporter
	logger   *zap.Logger
	timeout  time.Duration
	window   time.Duration
}

func NewWarehouseExportJob(source PaidInvoiceSource, exporter InvoiceExporter, logger *zap.Logger, timeout time.Duration) *WarehouseExportJob {
	return &WarehouseExportJob{
		source:   source,
		exporter: exporter,
		logger:   logger,
		timeout:  timeout,
		window:   DefaultExportWindow,
	}
}

// Run executes the export. Called by the scheduler.
func (j *WarehouseExportJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	cutoff := start.UTC().Add(-j.window)

	invoices, err := j.source.ListPaidSince(ctx, cutoff)
	if err != nil {
		j.logger.Error("failed to list settled invoices for export",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}
	if len(invoices) == 0 {
		j.logger.Info("no settled invoices to export",
			zap.Time("cutoff", cutoff))
		return
	}

	written, err := j.exporter.ExportPaidInvoices(ctx, invoices)
	if err != nil {
		j.logger.Error("warehouse export failed",
			zap.Error(err),
			zap.Int("rows_written", written),
			zap.Int("rows_pending", len(invoices)-written),
			zap.Duration("duration", time.Since(start)))
		return
	}

	j.logger.Info("warehouse export completed",
		zap.Int("rows_written", written),
		zap.Duration("duration", time.Since(start)))
}

// RegisterWarehouseExportJob registers the export with the scheduler.
func RegisterWarehouseExportJob(scheduler *Scheduler, source PaidInvoiceSource, exporter InvoiceExporter, logger *zap.Logger, cronExpr string, timeout time.Duration) error {
	job := NewWarehouseExportJob(source, exporter, logger, timeout)
	return scheduler.AddJob(WarehouseExportJobName, cronExpr, job.Run)
}
