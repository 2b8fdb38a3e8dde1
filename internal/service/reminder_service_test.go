package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskbot/internal/model"
	"taskbot/internal/repository"
)

type fakeNotifier struct {
	fail     bool
	messages []string
	userIDs  []int64
}

func (f *fakeNotifier) SendReminder(ctx context.Context, userID int64, text string) error {
	if f.fail {
		return fmt.Errorf("user unreachable")
	}
	f.userIDs = append(f.userIDs, userID)
	f.messages = append(f.messages, text)
	return nil
}

func newReminderFixture(t *testing.T, notifier Notifier) (*ReminderService, *repository.TaskRepository) {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := repository.NewDB(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	repo := repository.NewTaskRepository(db)
	return NewReminderService(repo, notifier), repo
}

func TestScanDeliversAndClearsReminder(t *testing.T) {
	notifier := &fakeNotifier{}
	svc, repo := newReminderFixture(t, notifier)
	ctx := context.Background()

	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	due := now.Add(-time.Minute)
	deadline := now.Add(2 * time.Hour)
	task := &model.Task{UserID: 42, Text: "сдать отчёт", Deadline: &deadline, ReminderAt: &due}
	require.NoError(t, repo.Create(ctx, task))

	require.NoError(t, svc.Scan(ctx, now))

	require.Len(t, notifier.messages, 1)
	assert.Equal(t, int64(42), notifier.userIDs[0])
	assert.Contains(t, notifier.messages[0], fmt.Sprintf("#%d", task.ID))
	assert.Contains(t, notifier.messages[0], "сдать отчёт")
	assert.Contains(t, notifier.messages[0], "Дедлайн:")

	got, err := repo.FindByID(ctx, 42, task.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ReminderAt)

	// Nothing left for the next tick.
	remaining, err := repo.DueReminders(ctx, now.Add(time.Minute))
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestScanKeepsReminderOnDeliveryFailure(t *testing.T) {
	notifier := &fakeNotifier{fail: true}
	svc, repo := newReminderFixture(t, notifier)
	ctx := context.Background()

	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	due := now.Add(-time.Minute)
	task := &model.Task{UserID: 43, Text: "позвонить", ReminderAt: &due}
	require.NoError(t, repo.Create(ctx, task))

	require.NoError(t, svc.Scan(ctx, now))

	got, err := repo.FindByID(ctx, 43, task.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ReminderAt)
	assert.True(t, got.ReminderAt.Equal(due))

	// The reminder reappears on the next scan.
	remaining, err := repo.DueReminders(ctx, now.Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, task.ID, remaining[0].ID)
}

func TestScanSkipsTasksWithoutDueReminder(t *testing.T) {
	notifier := &fakeNotifier{}
	svc, repo := newReminderFixture(t, notifier)
	ctx := context.Background()

	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	future := now.Add(time.Hour)
	require.NoError(t, repo.Create(ctx, &model.Task{UserID: 44, Text: "потом", ReminderAt: &future}))
	require.NoError(t, repo.Create(ctx, &model.Task{UserID: 44, Text: "без напоминания"}))

	require.NoError(t, svc.Scan(ctx, now))
	assert.Empty(t, notifier.messages)
}

func TestComposeReminderWithoutDeadline(t *testing.T) {
	msg := composeReminder(model.Task{ID: 7, Text: "полить цветы"})
	assert.Equal(t, "🔔 Напоминание по задаче #7:\nполить цветы", msg)
}
