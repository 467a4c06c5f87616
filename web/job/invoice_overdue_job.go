package job

import (
	"time"

	"github.com/daftarhq/daftar/logger"
	"github.com/daftarhq/daftar/util/common"
	"github.com/daftarhq/daftar/web/service"
)

// InvoiceOverdueJob flips unpaid invoices past their due date to overdue.
type InvoiceOverdueJob struct {
	invoiceService service.InvoiceService
}

func NewInvoiceOverdueJob() *InvoiceOverdueJob {
	return new(InvoiceOverdueJob)
}

func (j *InvoiceOverdueJob) Run() {
	defer common.Recover("invoice overdue job")

	updated, err := j.invoiceService.MarkOverdue(time.Now())
	if err != nil {
		logger.Warning("invoice overdue job:", err)
		return
	}
	if updated > 0 {
		logger.Infof("%d invoices marked overdue", updated)
	}
}
