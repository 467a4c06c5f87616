package service

import (
	"github.com/daftarhq/daftar/database"
	"github.com/daftarhq/daftar/database/model"
)

type TaskService struct{}

func (s *TaskService) GetAll() ([]model.Task, error) {
	db := database.GetDB()
	var tasks []model.Task
	err := db.Preload("Project").
		Preload("Assignee").
		Order("created_at desc").
		Find(&tasks).Error
	return tasks, err
}

func (s *TaskService) Create(task *model.Task) error {
	if task.Status == "" {
		task.Status = model.TaskTodo
	}
	if task.Priority == "" {
		task.Priority = model.PriorityMedium
	}
	db := database.GetDB()
	return db.Create(task).Error
}

// CountPending counts tasks that are not done yet, for the dashboard.
func (s *TaskService) CountPending() (int64, error) {
	db := database.GetDB()
	var count int64
	err := db.Model(model.Task{}).
		Where("status <> ?", model.TaskDone).
		Count(&count).Error
	return count, err
}
