package service

import (
	"github.com/daftarhq/daftar/database"
	"github.com/daftarhq/daftar/database/model"
)

type ProjectService struct{}

func (s *ProjectService) GetAll() ([]model.Project, error) {
	db := database.GetDB()
	var projects []model.Project
	err := db.Preload("Client").
		Preload("Team").
		Order("created_at desc").
		Find(&projects).Error
	return projects, err
}

func (s *ProjectService) GetByID(id int) (*model.Project, error) {
	db := database.GetDB()
	var project model.Project
	err := db.Preload("Client").Preload("Team").First(&project, id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *ProjectService) Create(project *model.Project) error {
	if project.Status == "" {
		project.Status = model.ProjectNew
	}
	db := database.GetDB()
	return db.Create(project).Error
}

func (s *ProjectService) Count() (int64, error) {
	db := database.GetDB()
	var count int64
	err := db.Model(model.Project{}).Count(&count).Error
	return count, err
}
