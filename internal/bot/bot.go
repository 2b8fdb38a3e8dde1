package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"gorm.io/gorm"

	"taskbot/internal/model"
	"taskbot/internal/service"
)

const dateFormatHint = "Не удалось распознать дату. Попробуй формат <code>25.11.2026 18:00</code>, <code>2026-11-25</code> или ISO."

// telegramAPI is the slice of tgbotapi.BotAPI the bot uses.
type telegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Bot aggregates the Telegram API with the task service and per-user
// dialog sessions. It also implements service.Notifier for reminder
// delivery.
type Bot struct {
	api      telegramAPI
	taskSvc  *service.TaskService
	sessions *sessionStore
}

func New(token string, taskSvc *service.TaskService) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	log.Printf("[info] bot authorized on account %s", api.Self.UserName)

	return &Bot{
		api:      api,
		taskSvc:  taskSvc,
		sessions: newSessionStore(),
	}, nil
}

// Start begins polling updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	log.Println("[info] start polling updates")

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		switch {
		case update.CallbackQuery != nil:
			if err := b.handleCallback(ctx, update.CallbackQuery); err != nil {
				log.Printf("handle callback: %v", err)
			}
		case update.Message != nil:
			if update.Message.Chat == nil || !update.Message.Chat.IsPrivate() {
				continue
			}
			if err := b.handleMessage(ctx, update.Message); err != nil {
				log.Printf("handle message: %v", err)
			}
		}
	}

	return nil
}

// SendReminder delivers a due-reminder notification. It implements
// service.Notifier.
func (b *Bot) SendReminder(ctx context.Context, userID int64, text string) error {
	msg := tgbotapi.NewMessage(userID, text)
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if msg.From == nil {
		return nil
	}

	if msg.IsCommand() {
		log.Printf("[info] command from %d: /%s %s", msg.From.ID, msg.Command(), msg.CommandArguments())
		return b.handleCommand(ctx, msg)
	}

	if sess := b.sessions.get(msg.From.ID); sess.state != stateIdle {
		return b.handleSessionInput(ctx, msg, sess)
	}

	return b.sendText(msg.Chat.ID, "Я пока не понял сообщение. Создай задачу через /new или загляни в /help.")
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) error {
	switch msg.Command() {
	case "start", "help":
		return b.handleHelp(msg)
	case "new":
		return b.handleNew(ctx, msg)
	case "list":
		return b.handleList(ctx, msg, "")
	case "active":
		return b.handleList(ctx, msg, model.StatusActive)
	case "done":
		return b.handleList(ctx, msg, model.StatusDone)
	case "cancel":
		b.sessions.clear(msg.From.ID)
		return b.sendText(msg.Chat.ID, "⏪ Текущий ввод отменён.")
	default:
		return b.sendText(msg.Chat.ID, "Команда не поддерживается. Загляни в /help.")
	}
}

func (b *Bot) handleHelp(msg *tgbotapi.Message) error {
	text := "👋 Привет! Я — менеджер задач с inline-меню.\n" +
		"• /new Текст задачи | дедлайн (опционально) — создать задачу\n" +
		"• /list — показать все задачи\n" +
		"• /active — только активные\n" +
		"• /done — только выполненные\n" +
		"• /cancel — отменить текущий ввод\n\n" +
		"Остальные действия — редактирование, дедлайн, напоминание, приоритет, категория — доступны по кнопкам под задачей."
	return b.sendText(msg.Chat.ID, text)
}

// handleNew parses "/new text | deadline", classifies the text, and
// stores the task.
func (b *Bot) handleNew(ctx context.Context, msg *tgbotapi.Message) error {
	payload := strings.TrimSpace(msg.CommandArguments())
	if payload == "" {
		return b.sendText(msg.Chat.ID, "Использование: /new Текст задачи | дедлайн (опционально)")
	}

	text := payload
	var deadline *time.Time
	if before, after, found := strings.Cut(payload, "|"); found {
		text = strings.TrimSpace(before)
		parsed, err := service.ParseDateTime(after)
		if err != nil {
			return b.sendText(msg.Chat.ID, dateFormatHint)
		}
		deadline = &parsed
	}

	task, err := b.taskSvc.CreateTask(ctx, msg.From.ID, text, deadline)
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Не удалось сохранить задачу: %s", escape(err.Error())))
	}

	log.Printf("[info] task created id=%d user=%d category=%s priority=%s", task.ID, task.UserID, task.Category, task.Priority)
	return b.sendText(msg.Chat.ID, fmt.Sprintf(
		"✅ Задача создана #%d\nПриоритет: %s\nКатегория: %s",
		task.ID, task.Priority.Label(), task.Category.Label(),
	))
}

func (b *Bot) handleList(ctx context.Context, msg *tgbotapi.Message, status model.Status) error {
	tasks, err := b.taskSvc.List(ctx, msg.From.ID, status)
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Не удалось получить задачи: %s", escape(err.Error())))
	}
	if len(tasks) == 0 {
		return b.sendText(msg.Chat.ID, "Задач нет.")
	}

	for _, task := range tasks {
		if err := b.sendWithReplyMarkup(msg.Chat.ID, formatTask(task), taskKeyboard(task.ID)); err != nil {
			return err
		}
	}
	return nil
}

// handleSessionInput consumes the next freeform message of a user with
// a pending edit or deadline flow.
func (b *Bot) handleSessionInput(ctx context.Context, msg *tgbotapi.Message, sess session) error {
	switch sess.state {
	case stateAwaitingText:
		b.sessions.clear(msg.From.ID)
		if err := b.taskSvc.UpdateText(ctx, msg.From.ID, sess.taskID, msg.Text); err != nil {
			return b.sendText(msg.Chat.ID, fmt.Sprintf("Не удалось обновить текст: %s", escape(err.Error())))
		}
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Текст задачи #%d обновлён.", sess.taskID))
	case stateAwaitingDeadline:
		parsed, err := service.ParseDateTime(msg.Text)
		if err != nil {
			// Session stays armed: the user can retry or /cancel.
			return b.sendText(msg.Chat.ID, dateFormatHint)
		}
		b.sessions.clear(msg.From.ID)
		if err := b.taskSvc.SetDeadline(ctx, msg.From.ID, sess.taskID, parsed); err != nil {
			return b.sendText(msg.Chat.ID, fmt.Sprintf("Не удалось установить дедлайн: %s", escape(err.Error())))
		}
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Дедлайн для #%d установлен: %s", sess.taskID, parsed.Format(timeLayout)))
	default:
		b.sessions.clear(msg.From.ID)
		return nil
	}
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	if cb == nil || cb.From == nil || cb.Message == nil {
		return nil
	}

	data := cb.Data
	userID := cb.From.ID
	chatID := cb.Message.Chat.ID

	switch {
	case strings.HasPrefix(data, cbEditPrefix):
		taskID, err := parseTaskID(data, cbEditPrefix)
		if err != nil {
			b.ack(cb.ID, "")
			return nil
		}
		b.sessions.awaitText(userID, taskID)
		b.ack(cb.ID, "")
		return b.sendText(chatID, fmt.Sprintf("Отправь новый текст для задачи #%d", taskID))

	case strings.HasPrefix(data, cbDeadlineMenuPrefix):
		taskID, err := parseTaskID(data, cbDeadlineMenuPrefix)
		if err != nil {
			b.ack(cb.ID, "")
			return nil
		}
		b.ack(cb.ID, "")
		return b.sendWithReplyMarkup(chatID, "Меню дедлайна:", deadlineMenuKeyboard(taskID))

	case strings.HasPrefix(data, cbDeadlineSetPrefix):
		taskID, err := parseTaskID(data, cbDeadlineSetPrefix)
		if err != nil {
			b.ack(cb.ID, "")
			return nil
		}
		b.sessions.awaitDeadline(userID, taskID)
		b.ack(cb.ID, "")
		return b.sendText(chatID, fmt.Sprintf("Отправь дату/время для дедлайна задачи #%d (например: 25.11.2026 18:00)", taskID))

	case strings.HasPrefix(data, cbDeadlineClearPrefix):
		taskID, err := parseTaskID(data, cbDeadlineClearPrefix)
		if err != nil {
			b.ack(cb.ID, "")
			return nil
		}
		if err := b.taskSvc.ClearDeadline(ctx, userID, taskID); err != nil {
			b.ack(cb.ID, "")
			return err
		}
		b.ack(cb.ID, "Дедлайн удалён")
		return b.sendText(chatID, fmt.Sprintf("Дедлайн для #%d удалён.", taskID))

	case strings.HasPrefix(data, cbReminderMenuPrefix):
		taskID, err := parseTaskID(data, cbReminderMenuPrefix)
		if err != nil {
			b.ack(cb.ID, "")
			return nil
		}
		b.ack(cb.ID, "")
		return b.sendWithReplyMarkup(chatID, "Выбери быстрый вариант напоминания:", reminderMenuKeyboard(taskID))

	case strings.HasPrefix(data, cbReminderPrefix):
		return b.handleReminderCallback(ctx, cb)

	case strings.HasPrefix(data, cbPriorityMenuPrefix):
		taskID, err := parseTaskID(data, cbPriorityMenuPrefix)
		if err != nil {
			b.ack(cb.ID, "")
			return nil
		}
		b.ack(cb.ID, "")
		return b.sendWithReplyMarkup(chatID, "Выбери приоритет:", priorityMenuKeyboard(taskID))

	case strings.HasPrefix(data, cbSetPriorityPrefix):
		value, taskID, err := parseValueAndTaskID(data, cbSetPriorityPrefix)
		if err != nil {
			b.ack(cb.ID, "")
			return nil
		}
		priority := model.Priority(value)
		if err := b.taskSvc.SetPriority(ctx, userID, taskID, priority); err != nil {
			b.ack(cb.ID, "")
			return b.sendText(chatID, fmt.Sprintf("Ошибка: %s", escape(err.Error())))
		}
		b.ack(cb.ID, "Приоритет обновлён")
		return b.sendText(chatID, fmt.Sprintf("Приоритет для #%d установлен: %s", taskID, priority.Label()))

	case strings.HasPrefix(data, cbCategoryMenuPrefix):
		taskID, err := parseTaskID(data, cbCategoryMenuPrefix)
		if err != nil {
			b.ack(cb.ID, "")
			return nil
		}
		b.ack(cb.ID, "")
		return b.sendWithReplyMarkup(chatID, "Выбери категорию:", categoryMenuKeyboard(taskID))

	case strings.HasPrefix(data, cbSetCategoryPrefix):
		value, taskID, err := parseValueAndTaskID(data, cbSetCategoryPrefix)
		if err != nil {
			b.ack(cb.ID, "")
			return nil
		}
		category := model.Category(value)
		if err := b.taskSvc.SetCategory(ctx, userID, taskID, category); err != nil {
			b.ack(cb.ID, "")
			return b.sendText(chatID, fmt.Sprintf("Ошибка: %s", escape(err.Error())))
		}
		b.ack(cb.ID, "Категория обновлена")
		return b.sendText(chatID, fmt.Sprintf("Категория для #%d установлена: %s", taskID, category.Label()))

	case strings.HasPrefix(data, cbDonePrefix):
		taskID, err := parseTaskID(data, cbDonePrefix)
		if err != nil {
			b.ack(cb.ID, "")
			return nil
		}
		if err := b.taskSvc.MarkDone(ctx, userID, taskID); err != nil {
			b.ack(cb.ID, "")
			return err
		}
		log.Printf("[info] task done id=%d user=%d", taskID, userID)
		b.ack(cb.ID, "Отмечено как выполнено")
		return b.sendText(chatID, fmt.Sprintf("✔ Задача #%d помечена как выполненная.", taskID))

	case strings.HasPrefix(data, cbDeletePrefix):
		taskID, err := parseTaskID(data, cbDeletePrefix)
		if err != nil {
			b.ack(cb.ID, "")
			return nil
		}
		if err := b.taskSvc.DeleteTask(ctx, userID, taskID); err != nil {
			b.ack(cb.ID, "")
			return err
		}
		log.Printf("[info] task deleted id=%d user=%d", taskID, userID)
		b.ack(cb.ID, "Удалено")
		return b.sendText(chatID, fmt.Sprintf("❌ Задача #%d удалена.", taskID))

	default:
		b.ack(cb.ID, "")
		return nil
	}
}

// handleReminderCallback dispatches "rem:<minutes|clear>:<id>".
func (b *Bot) handleReminderCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	userID := cb.From.ID
	chatID := cb.Message.Chat.ID

	action, taskID, err := parseValueAndTaskID(cb.Data, cbReminderPrefix)
	if err != nil {
		b.ack(cb.ID, "")
		return nil
	}

	if action == "clear" {
		if err := b.taskSvc.ClearReminder(ctx, userID, taskID); err != nil {
			b.ack(cb.ID, "")
			return err
		}
		b.ack(cb.ID, "Напоминание удалено")
		return b.sendText(chatID, fmt.Sprintf("Напоминание для #%d удалено.", taskID))
	}

	minutes, err := strconv.Atoi(action)
	if err != nil || minutes <= 0 {
		b.ack(cb.ID, "Ошибка формата")
		return nil
	}

	reminderAt, err := b.taskSvc.SetQuickReminder(ctx, userID, taskID, time.Duration(minutes)*time.Minute, time.Now())
	if err != nil {
		b.ack(cb.ID, "")
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return b.sendText(chatID, "Задача не найдена.")
		}
		return b.sendText(chatID, fmt.Sprintf("Ошибка: %s", escape(err.Error())))
	}
	b.ack(cb.ID, "Напоминание установлено")
	return b.sendText(chatID, fmt.Sprintf("Напоминание для задачи #%d установлено на %s", taskID, reminderAt.Format(timeLayout)))
}

// ack answers the callback query, optionally with a short toast.
func (b *Bot) ack(callbackID, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		log.Printf("callback ack: %v", err)
	}
}

func (b *Bot) sendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) sendWithReplyMarkup(chatID int64, text string, markup interface{}) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = markup
	_, err := b.api.Send(msg)
	return err
}

func parseTaskID(data, prefix string) (uint, error) {
	raw := strings.TrimPrefix(data, prefix)
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(value), nil
}

// parseValueAndTaskID splits "<prefix><value>:<id>".
func parseValueAndTaskID(data, prefix string) (string, uint, error) {
	rest := strings.TrimPrefix(data, prefix)
	value, rawID, found := strings.Cut(rest, ":")
	if !found {
		return "", 0, fmt.Errorf("malformed callback data %q", data)
	}
	id, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil {
		return "", 0, err
	}
	return value, uint(id), nil
}
