package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"taskbot/internal/model"
)

// Callback-data prefixes. Menu actions carry the task id after the
// prefix; rem/set_pr/set_cat carry a value between prefix and id.
const (
	cbEditPrefix          = "edit:"
	cbDeadlineMenuPrefix  = "deadline_menu:"
	cbDeadlineSetPrefix   = "deadline_set:"
	cbDeadlineClearPrefix = "deadline_clear:"
	cbReminderMenuPrefix  = "reminder_menu:"
	cbReminderPrefix      = "rem:"
	cbPriorityMenuPrefix  = "priority_menu:"
	cbSetPriorityPrefix   = "set_pr:"
	cbCategoryMenuPrefix  = "category_menu:"
	cbSetCategoryPrefix   = "set_cat:"
	cbDonePrefix          = "done:"
	cbDeletePrefix        = "delete:"
)

// taskKeyboard is the action menu rendered under every task block.
func taskKeyboard(taskID uint) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📝 Редактировать", fmt.Sprintf("%s%d", cbEditPrefix, taskID)),
			tgbotapi.NewInlineKeyboardButtonData("📅 Дедлайн", fmt.Sprintf("%s%d", cbDeadlineMenuPrefix, taskID)),
			tgbotapi.NewInlineKeyboardButtonData("⏰ Напоминание", fmt.Sprintf("%s%d", cbReminderMenuPrefix, taskID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⭐ Приоритет", fmt.Sprintf("%s%d", cbPriorityMenuPrefix, taskID)),
			tgbotapi.NewInlineKeyboardButtonData("🗂 Категория", fmt.Sprintf("%s%d", cbCategoryMenuPrefix, taskID)),
			tgbotapi.NewInlineKeyboardButtonData("✔ Выполнено", fmt.Sprintf("%s%d", cbDonePrefix, taskID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ Удалить", fmt.Sprintf("%s%d", cbDeletePrefix, taskID)),
		),
	)
}

func deadlineMenuKeyboard(taskID uint) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Установить дедлайн (ввести дату)", fmt.Sprintf("%s%d", cbDeadlineSetPrefix, taskID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Удалить дедлайн", fmt.Sprintf("%s%d", cbDeadlineClearPrefix, taskID)),
		),
	)
}

func reminderMenuKeyboard(taskID uint) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("30 мин", fmt.Sprintf("%s30:%d", cbReminderPrefix, taskID)),
			tgbotapi.NewInlineKeyboardButtonData("1 час", fmt.Sprintf("%s60:%d", cbReminderPrefix, taskID)),
			tgbotapi.NewInlineKeyboardButtonData("1 день", fmt.Sprintf("%s1440:%d", cbReminderPrefix, taskID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Удалить напоминание", fmt.Sprintf("%sclear:%d", cbReminderPrefix, taskID)),
		),
	)
}

func priorityMenuKeyboard(taskID uint) tgbotapi.InlineKeyboardMarkup {
	row := make([]tgbotapi.InlineKeyboardButton, 0, len(model.Priorities))
	for _, p := range model.Priorities {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(p.Label(), fmt.Sprintf("%s%s:%d", cbSetPriorityPrefix, p, taskID)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(row...))
}

func categoryMenuKeyboard(taskID uint) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, c := range model.Categories {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(c.Label(), fmt.Sprintf("%s%s:%d", cbSetCategoryPrefix, c, taskID)))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
