package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"taskbot/internal/classifier"
	"taskbot/internal/model"
	"taskbot/internal/repository"
)

func newTestTaskService(t *testing.T) (*TaskService, *repository.TaskRepository) {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := repository.NewDB(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	repo := repository.NewTaskRepository(db)
	return NewTaskService(repo, classifier.New(nil)), repo
}

func TestCreateTaskClassifiesText(t *testing.T) {
	svc, _ := newTestTaskService(t)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, 1, "срочно сдать курсовую", nil)
	require.NoError(t, err)
	assert.Equal(t, model.CategoryStudy, task.Category)
	assert.Equal(t, model.PriorityHigh, task.Priority)
	assert.Equal(t, model.StatusActive, task.Status)

	stored, err := svc.GetTask(ctx, 1, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "срочно сдать курсовую", stored.Text)
}

func TestCreateTaskRequiresText(t *testing.T) {
	svc, _ := newTestTaskService(t)

	_, err := svc.CreateTask(context.Background(), 1, "   ", nil)
	assert.Error(t, err)
}

func TestMarkDoneIsOneWay(t *testing.T) {
	svc, _ := newTestTaskService(t)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, 2, "задача", nil)
	require.NoError(t, err)
	require.NoError(t, svc.MarkDone(ctx, 2, task.ID))

	got, err := svc.GetTask(ctx, 2, task.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDone, got.Status)
}

func TestSetAndClearDeadline(t *testing.T) {
	svc, _ := newTestTaskService(t)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, 3, "задача", nil)
	require.NoError(t, err)

	deadline := time.Date(2026, 12, 31, 18, 0, 0, 0, time.UTC)
	require.NoError(t, svc.SetDeadline(ctx, 3, task.ID, deadline))

	got, err := svc.GetTask(ctx, 3, task.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Deadline)
	assert.True(t, got.Deadline.Equal(deadline))

	require.NoError(t, svc.ClearDeadline(ctx, 3, task.ID))
	got, err = svc.GetTask(ctx, 3, task.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Deadline)
}

func TestSetPriorityRejectsUnknownValue(t *testing.T) {
	svc, _ := newTestTaskService(t)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, 4, "задача", nil)
	require.NoError(t, err)

	assert.Error(t, svc.SetPriority(ctx, 4, task.ID, model.Priority("critical")))
	assert.NoError(t, svc.SetPriority(ctx, 4, task.ID, model.PriorityHigh))
}

func TestSetQuickReminderPlain(t *testing.T) {
	svc, _ := newTestTaskService(t)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, 5, "задача", nil)
	require.NoError(t, err)

	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	reminderAt, err := svc.SetQuickReminder(ctx, 5, task.ID, time.Hour, now)
	require.NoError(t, err)
	assert.True(t, reminderAt.Equal(now.Add(time.Hour)))

	got, err := svc.GetTask(ctx, 5, task.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ReminderAt)
	assert.True(t, got.ReminderAt.Equal(reminderAt))
}

func TestSetQuickReminderClampedToDeadline(t *testing.T) {
	svc, _ := newTestTaskService(t)
	ctx := context.Background()

	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	deadline := now.Add(10 * time.Minute)
	task, err := svc.CreateTask(ctx, 6, "задача", &deadline)
	require.NoError(t, err)

	// now+1h would land after the deadline, so the reminder moves to
	// one hour before the deadline, even though that is in the past.
	reminderAt, err := svc.SetQuickReminder(ctx, 6, task.ID, time.Hour, now)
	require.NoError(t, err)
	assert.True(t, reminderAt.Equal(deadline.Add(-time.Hour)))
}

func TestSetQuickReminderBeforeDistantDeadline(t *testing.T) {
	svc, _ := newTestTaskService(t)
	ctx := context.Background()

	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	deadline := now.Add(48 * time.Hour)
	task, err := svc.CreateTask(ctx, 7, "задача", &deadline)
	require.NoError(t, err)

	reminderAt, err := svc.SetQuickReminder(ctx, 7, task.ID, 30*time.Minute, now)
	require.NoError(t, err)
	assert.True(t, reminderAt.Equal(now.Add(30*time.Minute)))
}

func TestSetQuickReminderUnknownTask(t *testing.T) {
	svc, _ := newTestTaskService(t)

	_, err := svc.SetQuickReminder(context.Background(), 8, 12345, time.Hour, time.Now())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
