package repository

import (
	"time"

	"github.com/fieldnote/fieldnote-api/internal/database"
	"github.com/fieldnote/fieldnote-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a task together with its dependency edges
func (r *GormTaskRepository) Create(task *models.Task, dependencies []*models.Task) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(task).Error; err != nil {
			return err
		}

		if len(dependencies) > 0 {
			if err := tx.Model(task).Association("Dependencies").Append(dependencies); err != nil {
				return err
			}
		}

		return nil
	})
}

// FindByIDInCompany finds a task by ID scoped to a company with dependencies preloaded
func (r *GormTaskRepository) FindByIDInCompany(id, companyID uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.Preload("Dependencies").
		Scopes(database.TaskInCompany(companyID)).
		Where("tasks.id = ?", id).
		First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByProject lists a project's tasks in gantt order with dependencies preloaded
func (r *GormTaskRepository) ListByProject(projectID uint64) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.Preload("Dependencies").
		Where("project_id = ?", projectID).
		Order("start_date, end_date, id").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListSiblings lists the other tasks of the same project, self excluded
func (r *GormTaskRepository) ListSiblings(projectID, excludeTaskID uint64) ([]models.Task, error) {
	var tasks []models.Task
	query := r.db.Where("project_id = ?", projectID)
	if excludeTaskID != 0 {
		query = query.Where("id <> ?", excludeTaskID)
	}
	if err := query.Order("start_date, end_date, id").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindInProject finds tasks by ID restricted to one project
func (r *GormTaskRepository) FindInProject(taskIDs []uint64, projectID uint64) ([]*models.Task, error) {
	if len(taskIDs) == 0 {
		return nil, nil
	}
	var tasks []*models.Task
	if err := r.db.Where("id IN ? AND project_id = ?", taskIDs, projectID).
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Omit("Dependencies").Save(task).Error
}

// ReplaceDependencies replaces the task's outgoing dependency edges
func (r *GormTaskRepository) ReplaceDependencies(task *models.Task, dependencies []*models.Task) error {
	return r.db.Model(task).Association("Dependencies").Replace(dependencies)
}

// Delete removes a task and every dependency edge it appears in, on either
// side. Dependent tasks are otherwise left untouched.
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM task_dependencies WHERE task_id = ? OR dependency_id = ?",
			id, id).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Task{}, id).Error
	})
}

// DueSoon lists the company's unfinished tasks ending on or before the limit,
// ordered by end date. Tasks without an end date never qualify.
func (r *GormTaskRepository) DueSoon(companyID uint64, limit time.Time) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.Preload("Project").
		Scopes(database.TaskInCompany(companyID)).
		Where("tasks.end_date <= ? AND tasks.progress < ?", limit, 100).
		Order("tasks.end_date").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}
