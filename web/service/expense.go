package service

import (
	"github.com/daftarhq/daftar/database"
	"github.com/daftarhq/daftar/database/model"
)

type ExpenseService struct{}

func (s *ExpenseService) GetAll() ([]model.Expense, error) {
	db := database.GetDB()
	var expenses []model.Expense
	err := db.Order("date desc").Find(&expenses).Error
	return expenses, err
}

func (s *ExpenseService) Create(expense *model.Expense) error {
	if expense.Category == "" {
		expense.Category = model.ExpenseOther
	}
	db := database.GetDB()
	return db.Create(expense).Error
}
