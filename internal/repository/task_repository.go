package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"taskbot/internal/model"
)

// allowedUpdateFields is the closed set of columns a partial update may touch.
// Anything else in the updates map is silently dropped.
var allowedUpdateFields = map[string]struct{}{
	"text":        {},
	"deadline":    {},
	"priority":    {},
	"category":    {},
	"status":      {},
	"reminder_at": {},
}

// TaskRepository handles CRUD for tasks. Every operation except
// DueReminders is scoped to the owning user.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// List returns the user's tasks, newest first. An empty status means all.
func (r *TaskRepository) List(ctx context.Context, userID int64, status model.Status) ([]model.Task, error) {
	var tasks []model.Task
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Order("id DESC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, userID int64, taskID uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, taskID).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// Update applies a partial update restricted to the allowed field set.
// A nil value sets the column to NULL. Updating a task that does not
// belong to the user is a no-op.
func (r *TaskRepository) Update(ctx context.Context, userID int64, taskID uint, updates map[string]interface{}) error {
	filtered := make(map[string]interface{}, len(updates))
	for field, value := range updates {
		if _, ok := allowedUpdateFields[field]; ok {
			filtered[field] = value
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("user_id = ? AND id = ?", userID, taskID).
		Updates(filtered).Error; err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

// Delete removes a task for the given user. Deleting an absent task is a no-op.
func (r *TaskRepository) Delete(ctx context.Context, userID int64, taskID uint) error {
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, taskID).
		Delete(&model.Task{}).Error; err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// DueReminders returns every active task across all users whose reminder
// is set and due at or before asOf.
func (r *TaskRepository) DueReminders(ctx context.Context, asOf time.Time) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("status = ? AND reminder_at IS NOT NULL AND reminder_at <= ?", model.StatusActive, asOf).
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ClearReminder drops the task's reminder so it is not delivered again.
func (r *TaskRepository) ClearReminder(ctx context.Context, userID int64, taskID uint) error {
	return r.Update(ctx, userID, taskID, map[string]interface{}{"reminder_at": nil})
}
