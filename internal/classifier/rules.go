package classifier

import (
	"strings"

	"taskbot/internal/model"
)

// Keyword lists for the rule-based fallback. Category lists are tested
// in order; the first list with a match wins.
var categoryKeywords = []struct {
	category model.Category
	words    []string
}{
	{model.CategoryStudy, []string{"дз", "контрольн", "семинар", "лаб", "учеб", "урок", "задач", "экзамен", "курсов"}},
	{model.CategoryWork, []string{"работ", "заказ", "встреч", "дедлайн", "проект", "клиент", "заплат"}},
	{model.CategoryHome, []string{"убор", "посуд", "магазин", "ремонт", "домаш", "купить", "прач"}},
	{model.CategoryPersonal, []string{"себя", "спорт", "хобби", "отдых", "звонок маме", "позвон", "личн"}},
}

var (
	urgentKeywords    = []string{"срочно", "как можно скорее", "немедлен", "очень важно", "вчера"}
	importantKeywords = []string{"важн", "в приоритете", "нужно"}
)

// RuleBased classifies text by keyword presence. Category and priority
// are determined independently.
func RuleBased(text string) Result {
	lower := strings.ToLower(text)

	result := Result{Category: model.CategoryOther, Priority: model.PriorityLow}
	for _, entry := range categoryKeywords {
		if containsAny(lower, entry.words) {
			result.Category = entry.category
			break
		}
	}

	switch {
	case containsAny(lower, urgentKeywords):
		result.Priority = model.PriorityHigh
	case containsAny(lower, importantKeywords):
		result.Priority = model.PriorityMedium
	}

	return result
}

func containsAny(text string, words []string) bool {
	for _, word := range words {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}
