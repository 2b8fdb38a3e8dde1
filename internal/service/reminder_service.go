package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"taskbot/internal/model"
	"taskbot/internal/repository"
)

// Notifier delivers a reminder message to a user.
type Notifier interface {
	SendReminder(ctx context.Context, userID int64, text string) error
}

// ReminderService scans for due reminders and pushes notifications.
// A reminder is cleared only after successful delivery; failed
// deliveries are retried on every subsequent scan.
type ReminderService struct {
	taskRepo *repository.TaskRepository
	notifier Notifier
}

func NewReminderService(taskRepo *repository.TaskRepository, notifier Notifier) *ReminderService {
	return &ReminderService{taskRepo: taskRepo, notifier: notifier}
}

// Scan delivers every reminder due at the given time. Delivery failures
// are logged and skipped; the reminder stays set for the next scan.
func (s *ReminderService) Scan(ctx context.Context, now time.Time) error {
	tasks, err := s.taskRepo.DueReminders(ctx, now.UTC())
	if err != nil {
		return fmt.Errorf("due reminders: %w", err)
	}

	for _, task := range tasks {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := s.notifier.SendReminder(ctx, task.UserID, composeReminder(task)); err != nil {
			log.Printf("send reminder task=%d user=%d: %v", task.ID, task.UserID, err)
			continue
		}
		if err := s.taskRepo.ClearReminder(ctx, task.UserID, task.ID); err != nil {
			log.Printf("clear reminder task=%d: %v", task.ID, err)
		}
	}
	return nil
}

func composeReminder(task model.Task) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🔔 Напоминание по задаче #%d:\n%s", task.ID, task.Text))
	if task.Deadline != nil {
		b.WriteString(fmt.Sprintf("\nДедлайн: %s", task.Deadline.UTC().Format("02.01.2006 15:04")))
	}
	return b.String()
}
