package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"taskbot/internal/classifier"
	"taskbot/internal/model"
	"taskbot/internal/repository"
)

// TaskService wraps task-related business logic: creation with
// automatic classification, field updates, and reminder scheduling.
type TaskService struct {
	taskRepo   *repository.TaskRepository
	classifier *classifier.Classifier
}

func NewTaskService(taskRepo *repository.TaskRepository, clf *classifier.Classifier) *TaskService {
	return &TaskService{taskRepo: taskRepo, classifier: clf}
}

// CreateTask classifies the text and stores a new active task.
func (s *TaskService) CreateTask(ctx context.Context, userID int64, text string, deadline *time.Time) (*model.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("text is required")
	}

	result := s.classifier.Classify(ctx, text)

	task := model.Task{
		UserID:   userID,
		Text:     text,
		Deadline: deadline,
		Priority: result.Priority,
		Category: result.Category,
		Status:   model.StatusActive,
	}
	if err := s.taskRepo.Create(ctx, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// List returns the user's tasks, newest first. An empty status means all.
func (s *TaskService) List(ctx context.Context, userID int64, status model.Status) ([]model.Task, error) {
	return s.taskRepo.List(ctx, userID, status)
}

func (s *TaskService) GetTask(ctx context.Context, userID int64, taskID uint) (*model.Task, error) {
	return s.taskRepo.FindByID(ctx, userID, taskID)
}

func (s *TaskService) UpdateText(ctx context.Context, userID int64, taskID uint, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("text is required")
	}
	return s.taskRepo.Update(ctx, userID, taskID, map[string]interface{}{"text": text})
}

func (s *TaskService) SetDeadline(ctx context.Context, userID int64, taskID uint, deadline time.Time) error {
	return s.taskRepo.Update(ctx, userID, taskID, map[string]interface{}{"deadline": deadline.UTC()})
}

func (s *TaskService) ClearDeadline(ctx context.Context, userID int64, taskID uint) error {
	return s.taskRepo.Update(ctx, userID, taskID, map[string]interface{}{"deadline": nil})
}

func (s *TaskService) SetPriority(ctx context.Context, userID int64, taskID uint, priority model.Priority) error {
	if !priority.Valid() {
		return fmt.Errorf("unknown priority %q", priority)
	}
	return s.taskRepo.Update(ctx, userID, taskID, map[string]interface{}{"priority": priority})
}

func (s *TaskService) SetCategory(ctx context.Context, userID int64, taskID uint, category model.Category) error {
	if !category.Valid() {
		return fmt.Errorf("unknown category %q", category)
	}
	return s.taskRepo.Update(ctx, userID, taskID, map[string]interface{}{"category": category})
}

// MarkDone closes the task. The transition is one-way.
func (s *TaskService) MarkDone(ctx context.Context, userID int64, taskID uint) error {
	return s.taskRepo.Update(ctx, userID, taskID, map[string]interface{}{"status": model.StatusDone})
}

func (s *TaskService) DeleteTask(ctx context.Context, userID int64, taskID uint) error {
	return s.taskRepo.Delete(ctx, userID, taskID)
}

// SetQuickReminder schedules a reminder at now+offset. If the task has
// a deadline earlier than that, the reminder is moved to offset before
// the deadline instead, so it never fires after the deadline it warns
// about. Returns the scheduled time.
func (s *TaskService) SetQuickReminder(ctx context.Context, userID int64, taskID uint, offset time.Duration, now time.Time) (time.Time, error) {
	task, err := s.taskRepo.FindByID(ctx, userID, taskID)
	if err != nil {
		return time.Time{}, err
	}

	reminderAt := now.UTC().Add(offset)
	if task.Deadline != nil && task.Deadline.Before(reminderAt) {
		reminderAt = task.Deadline.UTC().Add(-offset)
	}

	if err := s.taskRepo.Update(ctx, userID, taskID, map[string]interface{}{"reminder_at": reminderAt}); err != nil {
		return time.Time{}, err
	}
	return reminderAt, nil
}

func (s *TaskService) ClearReminder(ctx context.Context, userID int64, taskID uint) error {
	return s.taskRepo.ClearReminder(ctx, userID, taskID)
}
