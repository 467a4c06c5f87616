package job

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/op/go-logging"

	"github.com/daftarhq/daftar/database"
	"github.com/daftarhq/daftar/database/model"
	"github.com/daftarhq/daftar/logger"
	"github.com/daftarhq/daftar/web/service"
)

func TestInvoiceOverdueJobRun(t *testing.T) {
	logger.InitLogger(logging.ERROR)
	if err := database.InitDB(filepath.Join(t.TempDir(), "daftar.db")); err != nil {
		t.Fatalf("init test db: %v", err)
	}

	client := &model.Client{Name: "Gulf Builders", Phone: "0501234567"}
	if err := (&service.ClientService{}).Create(client); err != nil {
		t.Fatalf("create client: %v", err)
	}

	invoiceService := service.InvoiceService{}
	now := time.Now()
	invoices := []model.Invoice{
		{ClientId: client.Id, Status: model.InvoiceSent, DueDate: now.AddDate(0, 0, -2)},
		{ClientId: client.Id, Status: model.InvoicePaid, DueDate: now.AddDate(0, 0, -2)},
		{ClientId: client.Id, Status: model.InvoiceSent, DueDate: now.AddDate(0, 0, 2)},
	}
	for i := range invoices {
		if err := invoiceService.Create(&invoices[i]); err != nil {
			t.Fatalf("create invoice: %v", err)
		}
	}

	NewInvoiceOverdueJob().Run()

	all, err := invoiceService.GetAll()
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	overdue := 0
	for _, inv := range all {
		if inv.Status == model.InvoiceOverdue {
			overdue++
		}
	}
	if overdue != 1 {
		t.Errorf("expected 1 overdue invoice, got %d", overdue)
	}

	// rerun is a no-op
	NewInvoiceOverdueJob().Run()
}
