package service

import (
	"fmt"
	"time"

	"github.com/daftarhq/daftar/database"
	"github.com/daftarhq/daftar/database/model"
	"github.com/daftarhq/daftar/util/common"
	"github.com/daftarhq/daftar/util/json_util"
)

type InvoiceService struct {
	settingService SettingService
}

func (s *InvoiceService) GetAll() ([]model.Invoice, error) {
	db := database.GetDB()
	var invoices []model.Invoice
	err := db.Preload("Client").
		Preload("Project").
		Order("created_at desc").
		Find(&invoices).Error
	return invoices, err
}

// NextInvoiceNumber produces INV-<year>-<seq>, seq padded to four digits.
func (s *InvoiceService) NextInvoiceNumber() (string, error) {
	db := database.GetDB()
	var count int64
	if err := db.Model(model.Invoice{}).Count(&count).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("INV-%d-%04d", time.Now().Year(), count+1), nil
}

// Create stores an invoice, generating the invoice number when the caller
// did not provide one.
func (s *InvoiceService) Create(invoice *model.Invoice) error {
	if invoice.InvoiceNumber == "" {
		number, err := s.NextInvoiceNumber()
		if err != nil {
			return err
		}
		invoice.InvoiceNumber = number
	}
	if invoice.Status == "" {
		invoice.Status = model.InvoiceDraft
	}
	if invoice.IssueDate.IsZero() {
		invoice.IssueDate = time.Now()
	}
	if invoice.TotalAmount == 0 && len(invoice.Items) > 0 {
		total, err := sumInvoiceItems(invoice.Items)
		if err != nil {
			return err
		}
		invoice.TotalAmount = total
	}
	db := database.GetDB()
	return db.Create(invoice).Error
}

// sumInvoiceItems totals the serialized line items, deriving a line total
// from quantity and unit price when it was left out.
func sumInvoiceItems(raw json_util.RawMessage) (float64, error) {
	var items []model.InvoiceItem
	if err := json_util.FromRawMessage(raw, &items); err != nil {
		return 0, common.NewErrorf("invalid invoice items: %v", err)
	}
	var total float64
	for _, item := range items {
		lineTotal := item.Total
		if lineTotal == 0 {
			lineTotal = float64(item.Quantity) * item.UnitPrice
		}
		total += lineTotal
	}
	return total, nil
}

// MarkOverdue flips unpaid invoices past their due date to overdue and
// returns how many were updated.
func (s *InvoiceService) MarkOverdue(now time.Time) (int64, error) {
	db := database.GetDB()
	result := db.Model(model.Invoice{}).
		Where("status IN ?", []model.InvoiceStatus{model.InvoiceDraft, model.InvoiceSent}).
		Where("due_date < ?", now).
		Update("status", model.InvoiceOverdue)
	return result.RowsAffected, result.Error
}
