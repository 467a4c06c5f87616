package service

import (
	"github.com/daftarhq/daftar/database"
	"github.com/daftarhq/daftar/database/model"
)

type ClientService struct{}

func (s *ClientService) GetAll() ([]model.Client, error) {
	db := database.GetDB()
	var clients []model.Client
	err := db.Order("created_at desc").Find(&clients).Error
	return clients, err
}

func (s *ClientService) GetByID(id int) (*model.Client, error) {
	db := database.GetDB()
	var client model.Client
	err := db.First(&client, id).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (s *ClientService) Create(client *model.Client) error {
	db := database.GetDB()
	return db.Create(client).Error
}

// QuickCreate finds a client by name or creates a minimal record. Used by
// the invoice dialog to add a client without leaving the form.
func (s *ClientService) QuickCreate(name, phone string) (*model.Client, error) {
	db := database.GetDB()

	client := &model.Client{}
	err := db.Where("name = ?", name).First(client).Error
	if err == nil {
		return client, nil
	}
	if !database.IsNotFound(err) {
		return nil, err
	}

	if phone == "" {
		phone = "0000000000"
	}
	client = &model.Client{
		Name:  name,
		Phone: phone,
		Notes: "Created via quick add",
	}
	if err := db.Create(client).Error; err != nil {
		return nil, err
	}
	return client, nil
}

func (s *ClientService) Count() (int64, error) {
	db := database.GetDB()
	var count int64
	err := db.Model(model.Client{}).Count(&count).Error
	return count, err
}
