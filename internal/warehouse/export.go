package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/solstice-events/bookings-api/internal/domain"
	"go.uber.org/zap"
)

// Exporter pushes settled invoices into the warehouse revenue table.
// Rows are upserted by invoice id so re-running an export window is safe.
type Exporter struct {
	client *Client
	logger *zap.Logger
}

func NewExporter(client *Client, logger *zap.Logger) *Exporter {
	return &Exporter{client: client, logger: logger}
}

const upsertInvoiceStmt = `
MERGE %s.paid_invoices AS target
USING (SELECT @p1 AS invoice_id) AS source
ON target.invoice_id = source.invoice_id
WHEN MATCHED THEN UPDATE SET
	invoice_number = @p2,
	company_name = @p3,
	currency = @p4,
	subtotal = @p5,
	vat_amount = @p6,
	total = @p7,
	invoice_date = @p8,
	due_date = @p9,
	settled_at = @p10
WHEN NOT MATCHED THEN INSERT
	(invoice_id, invoice_number, company_name, currency, subtotal, vat_amount, total, invoice_date, due_date, settled_at)
	VALUES (@p1, @p2, @p3, @p4, @p5, @p6, @p7, @p8, @p9, @p10);`

// ExportPaidInvoices writes the given invoices to the warehouse.
// Returns the number of rows written; stops at the first write failure.
func (e *Exporter) ExportPaidInvoices(ctx context.Context, invoices []domain.Invoice) (int, error) {
	if !e.client.IsEnabled() {
		return 0, fmt.Errorf("warehouse client not initialized")
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.client.queryTimeout)
		defer cancel()
	}

	stmt := fmt.Sprintf(upsertInvoiceStmt, e.client.config.Schema)

	start := time.Now()
	written := 0
	for i := range invoices {
		inv := &invoices[i]

		companyName := sql.NullString{}
		if inv.Company != nil {
			companyName = sql.NullString{String: inv.Company.Name, Valid: true}
		}

		subtotal, _ := inv.Subtotal.Float64()
		vatAmount, _ := inv.VATAmount.Float64()
		total, _ := inv.Total.Float64()

		_, err := e.client.db.ExecContext(ctx, stmt,
			inv.ID.String(),
			inv.InvoiceNumber,
			companyName,
			inv.Currency,
			subtotal,
			vatAmount,
			total,
			inv.InvoiceDate,
			inv.DueDate,
			inv.UpdatedAt,
		)
		if err != nil {
			e.logger.Error("warehouse invoice export failed",
				zap.String("invoiceNumber", inv.InvoiceNumber),
				zap.Error(err),
			)
			return written, fmt.Errorf("failed to export invoice %s: %w", inv.InvoiceNumber, err)
		}
		written++
	}

	e.logger.Info("warehouse invoice export completed",
		zap.Int("rows_written", written),
		zap.Duration("duration", time.Since(start)),
	)

	return written, nil
}
