package callbacks

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/grishdev/slotbot/internal/controller/keyboard"
	"go.uber.org/zap"
)

// AnswerCallback отвечает на callback query (без alert)
func AnswerCallback(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       false,
	})
}

// AnswerCallbackAlert отвечает на callback query с alert (всплывающее окно)
func AnswerCallbackAlert(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       true,
	})
}

// GetMessageFromCallback извлекает сообщение из callback query
func GetMessageFromCallback(callback *models.CallbackQuery) *models.Message {
	if callback.Message.Message != nil {
		return callback.Message.Message
	}
	return nil
}

// ParseIDFromCallback извлекает ID из callback data
// Например: "admin_slot:123" -> 123
func ParseIDFromCallback(data string) (int64, error) {
	parts := strings.Split(data, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid callback data format")
	}
	return strconv.ParseInt(parts[1], 10, 64)
}

// ParseDateFromCallback извлекает дату из callback data
// Например: "select_date:2025-03-01" -> 1 марта 2025
func ParseDateFromCallback(data string) (time.Time, error) {
	parts := strings.SplitN(data, ":", 2)
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("invalid callback data format")
	}
	return time.ParseInLocation(keyboard.DayKey, parts[1], time.Local)
}

// ParseMonthFromCallback извлекает год и месяц из callback data
// Например: "user_calendar:2025-03" -> 2025, март
func ParseMonthFromCallback(data string) (int, time.Month, error) {
	parts := strings.SplitN(data, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid callback data format")
	}
	month, err := time.ParseInLocation(keyboard.MonthKey, parts[1], time.Local)
	if err != nil {
		return 0, 0, err
	}
	return month.Year(), month.Month(), nil
}

// showMainMenu показывает главное меню по роли пользователя
func showMainMenu(hc *HandlerContext) {
	var err error
	if hc.IsAdmin() {
		err = hc.EditMessage("Выберите действие:", keyboard.AdminMenu())
	} else {
		err = hc.EditMessage("Выберите действие:", keyboard.UserMenu())
	}
	if err != nil {
		hc.Handler.Logger.Error("Failed to show main menu", zap.Error(err))
	}
}

func backToMainKeyboard() *models.InlineKeyboardMarkup {
	return keyboard.NewBuilder().Row(keyboard.BackToMainButton()).Build()
}

// clampMonth ограничивает месяц горизонтом [текущий месяц, текущий + год]
func clampMonth(year int, month time.Month, now time.Time) (int, time.Month) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	minFirst := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
	maxDate := now.AddDate(0, 0, horizonDays)
	maxFirst := time.Date(maxDate.Year(), maxDate.Month(), 1, 0, 0, 0, 0, time.Local)

	if first.Before(minFirst) {
		return minFirst.Year(), minFirst.Month()
	}
	if first.After(maxFirst) {
		return maxFirst.Year(), maxFirst.Month()
	}
	return year, month
}
