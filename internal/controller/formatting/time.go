package formatting

import (
	"fmt"
	"time"

	"github.com/grishdev/slotbot/internal/model"
)

// FormatDateTime форматирует дату и время
func FormatDateTime(t time.Time) string {
	return t.Format("02.01.2006 15:04")
}

// FormatDate форматирует только дату
func FormatDate(t time.Time) string {
	return t.Format("02.01.2006")
}

// FormatTime форматирует только время
func FormatTime(t time.Time) string {
	return t.Format("15:04")
}

// FormatSlotRange форматирует слот как "02.01.2006 15:04 - 16:00"
func FormatSlotRange(slot *model.TimeSlot) string {
	return fmt.Sprintf("%s - %s", slot.StartTime.Format("02.01.2006 15:04"), slot.EndTime.Format("15:04"))
}

// StateLabel возвращает статус слота на русском
func StateLabel(st model.SlotState) string {
	switch st {
	case model.SlotStateFree:
		return "Свободен"
	case model.SlotStateRequested:
		return "Ожидает подтверждения"
	case model.SlotStateConfirmed:
		return "Подтверждён"
	default:
		return "Неизвестно"
	}
}

// StateEmoji возвращает эмодзи статуса для списков
func StateEmoji(st model.SlotState) string {
	switch st {
	case model.SlotStateFree:
		return "🟢"
	case model.SlotStateRequested:
		return "🟡"
	case model.SlotStateConfirmed:
		return "🔴"
	default:
		return "⚪"
	}
}

// GetWeekdayShort возвращает короткое название дня недели на русском
func GetWeekdayShort(weekday time.Weekday) string {
	names := []string{"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"}
	return names[int(weekday)%7]
}

// GetMonthName возвращает название месяца на русском
func GetMonthName(month time.Month) string {
	names := map[time.Month]string{
		time.January:   "Январь",
		time.February:  "Февраль",
		time.March:     "Март",
		time.April:     "Апрель",
		time.May:       "Май",
		time.June:      "Июнь",
		time.July:      "Июль",
		time.August:    "Август",
		time.September: "Сентябрь",
		time.October:   "Октябрь",
		time.November:  "Ноябрь",
		time.December:  "Декабрь",
	}
	return names[month]
}
