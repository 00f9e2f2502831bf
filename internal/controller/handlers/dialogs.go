package handlers

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/grishdev/slotbot/internal/controller/formatting"
	"github.com/grishdev/slotbot/internal/controller/keyboard"
	"github.com/grishdev/slotbot/internal/controller/state"
	"github.com/grishdev/slotbot/internal/model"
	"go.uber.org/zap"
)

var timeRangePattern = regexp.MustCompile(`^(\d{2}:\d{2})\s*-\s*(\d{2}:\d{2})$`)

// HandleTextMessage обрабатывает текст в зависимости от состояния диалога
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	telegramID := update.Message.From.ID
	switch h.stateManager.GetState(telegramID) {
	case state.StateWaitingForTime:
		h.handleTimeInput(ctx, b, update)
	default:
		// Текст вне диалога игнорируем
	}
}

// handleTimeInput разбирает "HH:MM - HH:MM" и создаёт слот на выбранную
// дату. При любой ошибке ввода состояние остаётся активным для повторного
// ввода; в базу ничего не пишется, пока ввод не пройдёт все проверки.
func (h *Handlers) handleTimeInput(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID

	raw, ok := h.stateManager.GetData(telegramID, state.DataSelectedDate)
	if !ok {
		// Дата потерялась (например, рестарт бота) - начинаем сначала
		h.stateManager.ClearState(telegramID)
		h.reply(ctx, b, update, "Дата не выбрана. Начните заново через меню.", keyboard.AdminMenu())
		return
	}
	dateStr, _ := raw.(string)

	matches := timeRangePattern.FindStringSubmatch(update.Message.Text)
	if matches == nil {
		h.reply(ctx, b, update,
			"Неверный формат времени. Пожалуйста, введите время в формате HH:MM - HH:MM, например, 12:00 - 13:00.",
			backKeyboard())
		return
	}

	start, err := time.ParseInLocation("2006-01-02 15:04", dateStr+" "+matches[1], time.Local)
	if err != nil {
		h.reply(ctx, b, update, "Ошибка формата. Пожалуйста, введите время заново:", backKeyboard())
		return
	}
	end, err := time.ParseInLocation("2006-01-02 15:04", dateStr+" "+matches[2], time.Local)
	if err != nil {
		h.reply(ctx, b, update, "Ошибка формата. Пожалуйста, введите время заново:", backKeyboard())
		return
	}

	slot, err := h.scheduleService.CreateSlot(ctx, telegramID, start, end, "")
	switch {
	case errors.Is(err, model.ErrInvalidRange):
		h.reply(ctx, b, update,
			"Ошибка: время окончания должно быть позже времени начала.\nПожалуйста, введите время заново:",
			backKeyboard())
		return
	case errors.Is(err, model.ErrOverlap):
		h.reply(ctx, b, update,
			fmt.Sprintf("⚠️ Такой временной слот уже существует!\nДата: %s\n\nПожалуйста, введите другое время:", dateStr),
			backKeyboard())
		return
	case err != nil:
		h.logger.Error("Failed to create slot",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err))
		h.reply(ctx, b, update, "Произошла ошибка. Пожалуйста, попробуйте ещё раз:", backKeyboard())
		return
	}

	// Состояние чистим только при успешном добавлении
	h.stateManager.ClearState(telegramID)
	h.reply(ctx, b, update,
		fmt.Sprintf("Слот успешно добавлен: %s ✅", formatting.FormatSlotRange(slot)),
		keyboard.AdminMenu())
}

func backKeyboard() *models.InlineKeyboardMarkup {
	return keyboard.NewBuilder().Row(keyboard.BackToMainButton()).Build()
}
