package service

import (
	"fmt"
	"time"

	"github.com/daftarhq/daftar/database"
	"github.com/daftarhq/daftar/database/model"
	"github.com/daftarhq/daftar/logger"
	"github.com/daftarhq/daftar/util/crypto"
	"github.com/daftarhq/daftar/util/json_util"
)

// SeedService populates the database with demo data so a fresh install has
// something to look at. Seeding is idempotent: it refuses to run twice.
type SeedService struct{}

// Seed inserts the demo dataset. Returns false without touching the database
// when demo data is already present.
func (s *SeedService) Seed() (bool, error) {
	db := database.GetDB()

	var count int64
	if err := db.Model(&model.Client{}).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	hash, err := crypto.HashPassword("password123")
	if err != nil {
		return false, err
	}

	users := []model.User{
		{Name: "Sara Manager", Email: "sara@example.com", Password: hash, Role: model.RoleManager},
		{Name: "Omar Engineer", Email: "omar@example.com", Password: hash, Role: model.RoleEngineer},
		{Name: "Lina Accountant", Email: "lina@example.com", Password: hash, Role: model.RoleAccountant},
		{Name: "Karim Drafter", Email: "karim@example.com", Password: hash, Role: model.RoleDrafter},
	}
	for i := range users {
		if err := db.Where(model.User{Email: users[i].Email}).
			FirstOrCreate(&users[i]).Error; err != nil {
			return false, err
		}
	}

	clients := []model.Client{
		{
			Name:        "Hassan Al-Rashid",
			Email:       "hassan@rashidgroup.com",
			Phone:       "0501234567",
			CompanyName: "Rashid Development Group",
			Address:     "King Fahd Road, Riyadh",
		},
		{
			Name:        "Mona Khalil",
			Email:       "mona@khalil-estates.com",
			Phone:       "0559876543",
			CompanyName: "Khalil Estates",
			Address:     "Corniche Street, Jeddah",
		},
		{
			Name:  "Fadi Nassar",
			Phone: "0533334444",
			Notes: "Walk-in client, villa renovation inquiry",
		},
	}
	if err := db.Create(&clients).Error; err != nil {
		return false, err
	}

	now := time.Now()
	projects := []model.Project{
		{
			Title:       "Rashid Tower Structural Design",
			ClientId:    clients[0].Id,
			Status:      model.ProjectInProgress,
			Budget:      450000,
			StartDate:   now.AddDate(0, -2, 0),
			EndDate:     now.AddDate(0, 4, 0),
			Team:        []model.User{users[0], users[1]},
			Description: "Full structural package for a 12-floor office tower",
		},
		{
			Title:     "Khalil Residential Compound",
			ClientId:  clients[1].Id,
			Status:    model.ProjectNew,
			Budget:    180000,
			StartDate: now.AddDate(0, 0, 14),
			EndDate:   now.AddDate(0, 6, 14),
			Team:      []model.User{users[1], users[3]},
		},
	}
	if err := db.Create(&projects).Error; err != nil {
		return false, err
	}

	dueSoon := now.AddDate(0, 0, 7)
	tasks := []model.Task{
		{
			Title:      "Foundation load calculations",
			ProjectId:  projects[0].Id,
			AssigneeId: &users[1].Id,
			Status:     model.TaskInProgress,
			Priority:   model.PriorityHigh,
			DueDate:    &dueSoon,
		},
		{
			Title:      "Elevation drawings v2",
			ProjectId:  projects[0].Id,
			AssigneeId: &users[3].Id,
			Status:     model.TaskTodo,
			Priority:   model.PriorityMedium,
		},
		{
			Title:     "Site survey report",
			ProjectId: projects[1].Id,
			Status:    model.TaskDone,
			Priority:  model.PriorityLow,
		},
	}
	if err := db.Create(&tasks).Error; err != nil {
		return false, err
	}

	items, err := json_util.ToRawMessage([]model.InvoiceItem{
		{Description: "Structural design phase 1", Quantity: 1, UnitPrice: 120000, Total: 120000},
		{Description: "Soil study coordination", Quantity: 1, UnitPrice: 15000, Total: 15000},
	})
	if err != nil {
		return false, err
	}
	invoices := []model.Invoice{
		{
			InvoiceNumber: fmt.Sprintf("INV-%d-%04d", now.Year(), 1),
			ClientId:      clients[0].Id,
			ProjectId:     &projects[0].Id,
			Items:         items,
			TotalAmount:   135000,
			Status:        model.InvoicePaid,
			IssueDate:     now.AddDate(0, -1, 0),
			DueDate:       now.AddDate(0, 0, -10),
			CreatedBy:     users[2].Id,
		},
		{
			InvoiceNumber: fmt.Sprintf("INV-%d-%04d", now.Year(), 2),
			ClientId:      clients[1].Id,
			TotalAmount:   45000,
			Status:        model.InvoiceSent,
			IssueDate:     now,
			DueDate:       now.AddDate(0, 1, 0),
			CreatedBy:     users[2].Id,
		},
	}
	if err := db.Create(&invoices).Error; err != nil {
		return false, err
	}

	expenses := []model.Expense{
		{Title: "AutoCAD license renewal", Amount: 7200, Category: model.ExpenseSoftware, Date: now.AddDate(0, 0, -20)},
		{Title: "Office rent", Amount: 18000, Category: model.ExpenseOffice, Date: now.AddDate(0, 0, -5)},
		{Title: "Plotter paper and ink", Amount: 950, Category: model.ExpenseOther, Date: now.AddDate(0, 0, -2)},
	}
	if err := db.Create(&expenses).Error; err != nil {
		return false, err
	}

	transactions := []model.Transaction{
		{
			Type:        model.Income,
			Amount:      135000,
			Category:    "invoice_payment",
			Description: "Payment for " + invoices[0].InvoiceNumber,
			Date:        now.AddDate(0, 0, -8),
			ProjectId:   &projects[0].Id,
			ClientId:    &clients[0].Id,
			CreatedBy:   users[2].Id,
		},
		{
			Type:      model.Outcome,
			Amount:    18000,
			Category:  "office",
			Date:      now.AddDate(0, 0, -5),
			CreatedBy: users[2].Id,
		},
		{
			Type:      model.Outcome,
			Amount:    7200,
			Category:  "software",
			Date:      now.AddDate(0, 0, -20),
			CreatedBy: users[2].Id,
		},
	}
	if err := db.Create(&transactions).Error; err != nil {
		return false, err
	}

	logger.Info("demo data seeded")
	return true, nil
}
