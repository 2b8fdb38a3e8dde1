package bot

import (
	"fmt"
	"html"
	"strings"
	"time"

	"taskbot/internal/model"
)

const timeLayout = "02.01.2006 15:04"

// formatTask renders the fixed task block shown for every list entry.
func formatTask(task model.Task) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🆔 <b>ID:</b> %d\n", task.ID))
	b.WriteString(fmt.Sprintf("📌 <b>Текст:</b> %s\n", escape(task.Text)))
	b.WriteString(fmt.Sprintf("📅 <b>Дедлайн:</b> %s\n", formatOptionalTime(task.Deadline)))
	b.WriteString(fmt.Sprintf("⏰ <b>Напоминание:</b> %s\n", formatOptionalTime(task.ReminderAt)))
	b.WriteString(fmt.Sprintf("⭐ <b>Приоритет:</b> %s\n", task.Priority.Label()))
	b.WriteString(fmt.Sprintf("🗂 <b>Категория:</b> %s\n", task.Category.Label()))
	b.WriteString(fmt.Sprintf("<b>Статус:</b> %s", task.Status.Label()))
	return b.String()
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return "—"
	}
	return t.UTC().Format(timeLayout)
}

func escape(s string) string {
	return html.EscapeString(s)
}
