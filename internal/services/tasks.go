package services

import (
	"tasktrack/internal/models"

	"gorm.io/gorm"
)

// TaskService scopes every lookup by owner. A task id that exists but
// belongs to someone else surfaces as gorm.ErrRecordNotFound, so callers
// cannot learn whether foreign tasks exist.
type TaskService interface {
	CreateTask(db *gorm.DB, task *models.Task) error
	GetTaskByID(db *gorm.DB, ownerID, id uint) (models.Task, error)
	GetTasks(db *gorm.DB, ownerID uint) ([]models.Task, error)
	UpdateTask(db *gorm.DB, ownerID, id uint, updated models.Task) (models.Task, error)
	DeleteTask(db *gorm.DB, ownerID, id uint) error
}

type TaskServiceImpl struct{}

func NewTaskService() *TaskServiceImpl {
	return &TaskServiceImpl{}
}

func (s *TaskServiceImpl) CreateTask(db *gorm.DB, task *models.Task) error {
	if task.Status == "" {
		task.Status = models.StatusPending
	}
	return db.Create(task).Error
}

func (s *TaskServiceImpl) GetTaskByID(db *gorm.DB, ownerID, id uint) (models.Task, error) {
	var task models.Task
	err := db.Where("id = ? AND owner_id = ?", id, ownerID).First(&task).Error
	return task, err
}

func (s *TaskServiceImpl) GetTasks(db *gorm.DB, ownerID uint) ([]models.Task, error) {
	tasks := []models.Task{}
	err := db.Where("owner_id = ?", ownerID).Order("id").Find(&tasks).Error
	return tasks, err
}

// UpdateTask replaces the full updatable field set. The merge is an
// enumerated field list so nothing outside title, description, and
// status is ever writable through the API.
func (s *TaskServiceImpl) UpdateTask(db *gorm.DB, ownerID, id uint, updated models.Task) (models.Task, error) {
	var task models.Task
	if err := db.Where("id = ? AND owner_id = ?", id, ownerID).First(&task).Error; err != nil {
		return models.Task{}, err
	}

	task.Title = updated.Title
	task.Description = updated.Description
	if updated.Status == "" {
		task.Status = models.StatusPending
	} else {
		task.Status = updated.Status
	}

	if err := db.Save(&task).Error; err != nil {
		return models.Task{}, err
	}
	return task, nil
}

func (s *TaskServiceImpl) DeleteTask(db *gorm.DB, ownerID, id uint) error {
	result := db.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&models.Task{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
