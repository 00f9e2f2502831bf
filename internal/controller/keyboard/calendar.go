package keyboard

import (
	"fmt"
	"time"

	"github.com/go-telegram/bot/models"
	"github.com/grishdev/slotbot/internal/controller/formatting"
)

// DayKey - формат даты в callback data календаря
const DayKey = "2006-01-02"

// MonthKey - формат месяца в callback data навигации
const MonthKey = "2006-01"

// MonthGrid описывает месячную сетку календаря. Кликабельны только даты из
// Selectable, остальные дни рисуются пустыми кнопками - получается
// "разреженный" календарь, как и нужно студенту для выбора свободного дня.
type MonthGrid struct {
	Year         int
	Month        time.Month
	Selectable   map[string]bool // даты в формате DayKey
	SelectPrefix string          // префикс callback для выбора даты
	NavPrefix    string          // префикс callback для смены месяца
	HasPrev      bool
	HasNext      bool
	BackCallback string
}

// Markup строит inline клавиатуру календаря
func (g MonthGrid) Markup() *models.InlineKeyboardMarkup {
	b := NewBuilder()

	header := fmt.Sprintf("%s %d", formatting.GetMonthName(g.Month), g.Year)
	b.Row(Button(header, "noop"))

	weekDays := []string{"Пн", "Вт", "Ср", "Чт", "Пт", "Сб", "Вс"}
	var headerRow []models.InlineKeyboardButton
	for _, day := range weekDays {
		headerRow = append(headerRow, Button(day, "noop"))
	}
	b.Row(headerRow...)

	firstDay := time.Date(g.Year, g.Month, 1, 0, 0, 0, 0, time.Local)
	daysInMonth := firstDay.AddDate(0, 1, -1).Day()
	// Понедельник - первый день недели
	offset := (int(firstDay.Weekday()) + 6) % 7

	row := make([]models.InlineKeyboardButton, 0, 7)
	for i := 0; i < offset; i++ {
		row = append(row, Button(" ", "noop"))
	}

	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(g.Year, g.Month, day, 0, 0, 0, 0, time.Local)
		key := date.Format(DayKey)

		if g.Selectable[key] {
			row = append(row, Button(fmt.Sprintf("%d", day), g.SelectPrefix+key))
		} else {
			row = append(row, Button(" ", "noop"))
		}

		if len(row) == 7 {
			b.Row(row...)
			row = make([]models.InlineKeyboardButton, 0, 7)
		}
	}

	if len(row) > 0 {
		for len(row) < 7 {
			row = append(row, Button(" ", "noop"))
		}
		b.Row(row...)
	}

	var nav []models.InlineKeyboardButton
	if g.HasPrev {
		prev := time.Date(g.Year, g.Month, 1, 0, 0, 0, 0, time.Local).AddDate(0, -1, 0)
		nav = append(nav, Button("◀️", g.NavPrefix+prev.Format(MonthKey)))
	}
	nav = append(nav, Button("📅", "noop"))
	if g.HasNext {
		next := time.Date(g.Year, g.Month, 1, 0, 0, 0, 0, time.Local).AddDate(0, 1, 0)
		nav = append(nav, Button("▶️", g.NavPrefix+next.Format(MonthKey)))
	}
	b.Row(nav...)

	if g.BackCallback != "" {
		b.Row(BackButton(g.BackCallback))
	}

	return b.Build()
}

// DatesToSet переводит список дат в множество ключей DayKey
func DatesToSet(dates []time.Time) map[string]bool {
	set := make(map[string]bool, len(dates))
	for _, d := range dates {
		set[d.Format(DayKey)] = true
	}
	return set
}

// MonthHasDates проверяет есть ли в множестве хоть одна дата месяца
func MonthHasDates(set map[string]bool, year int, month time.Month) bool {
	prefix := time.Date(year, month, 1, 0, 0, 0, 0, time.Local).Format(MonthKey)
	for key := range set {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			return true
		}
	}
	return false
}

// DateRangeSet возвращает множество всех дат от from до to включительно.
// Используется для календаря админа, где выбрать можно любой будущий день.
func DateRangeSet(from, to time.Time) map[string]bool {
	set := make(map[string]bool)
	day := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.Local)
	last := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.Local)
	for !day.After(last) {
		set[day.Format(DayKey)] = true
		day = day.AddDate(0, 0, 1)
	}
	return set
}
