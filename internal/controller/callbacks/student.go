package callbacks

import (
	"context"
	"fmt"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/grishdev/slotbot/internal/controller/formatting"
	"github.com/grishdev/slotbot/internal/controller/keyboard"
	"github.com/grishdev/slotbot/internal/model"
	"go.uber.org/zap"
)

// studentCalendarMarkup строит разреженный календарь: кликабельны только
// даты со свободными слотами, стрелки - только в месяцы, где они есть
func studentCalendarMarkup(hc *HandlerContext, year int, month time.Month) (*models.InlineKeyboardMarkup, error) {
	now := time.Now()
	year, month = clampMonth(year, month, now)

	freeDates, err := hc.Handler.ScheduleService.FreeDates(hc.Ctx, now, now.AddDate(0, 0, horizonDays))
	if err != nil {
		return nil, err
	}

	set := keyboard.DatesToSet(freeDates)

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	prev := first.AddDate(0, -1, 0)
	next := first.AddDate(0, 1, 0)

	return keyboard.MonthGrid{
		Year:         year,
		Month:        month,
		Selectable:   set,
		SelectPrefix: UserDay,
		NavPrefix:    UserCalendarNav,
		HasPrev:      keyboard.MonthHasDates(set, prev.Year(), prev.Month()),
		HasNext:      keyboard.MonthHasDates(set, next.Year(), next.Month()),
		BackCallback: BackToMain,
	}.Markup(), nil
}

// HandleSignUp открывает студенту календарь свободных дней
func HandleSignUp(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) {
	WithUser(ctx, b, callback, h, func(hc *HandlerContext) {
		now := time.Now()
		markup, err := studentCalendarMarkup(hc, now.Year(), now.Month())
		if err != nil {
			HandleError(hc, err, "sign up")
			return
		}

		hc.Answer("")
		if err := hc.EditMessage("Выбери свободный день:", markup); err != nil {
			h.Logger.Error("Failed to show user calendar", zap.Error(err))
		}
	})
}

// HandleUserCalendarNav листает календарь студента по месяцам
func HandleUserCalendarNav(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) {
	WithUser(ctx, b, callback, h, func(hc *HandlerContext) {
		year, month, err := ParseMonthFromCallback(callback.Data)
		if err != nil {
			HandleError(hc, ErrInvalidFormat, "user calendar nav")
			return
		}

		markup, err := studentCalendarMarkup(hc, year, month)
		if err != nil {
			HandleError(hc, err, "user calendar nav")
			return
		}

		hc.Answer("")
		if err := hc.EditMessage("Выбери свободный день:", markup); err != nil {
			h.Logger.Error("Failed to page user calendar", zap.Error(err))
		}
	})
}

// HandleUserDay показывает свободные слоты выбранного дня
func HandleUserDay(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) {
	WithUser(ctx, b, callback, h, func(hc *HandlerContext) {
		day, err := ParseDateFromCallback(callback.Data)
		if err != nil {
			HandleError(hc, ErrInvalidFormat, "user day")
			return
		}

		slots, err := h.ScheduleService.FreeSlotsOnDate(hc.Ctx, day)
		if err != nil {
			HandleError(hc, err, "user day")
			return
		}

		if len(slots) == 0 {
			// Кто-то успел занять последний слот, пока открывался календарь
			hc.AnswerAlert("На эту дату нет свободных слотов.")
			return
		}

		hc.Answer("")
		if err := hc.EditMessage("Выбери время:", keyboard.FreeSlotsOnDate(slots)); err != nil {
			h.Logger.Error("Failed to show day slots", zap.Error(err))
		}
	})
}

// HandleRequestSlot подаёт заявку на слот
func HandleRequestSlot(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) {
	WithUser(ctx, b, callback, h, func(hc *HandlerContext) {
		slotID, err := ParseIDFromCallback(callback.Data)
		if err != nil {
			HandleError(hc, ErrInvalidFormat, "request slot")
			return
		}

		slot, intents, err := h.BookingService.Apply(hc.Ctx, hc.TelegramID, slotID, model.ActionRequest)
		if err != nil {
			HandleError(hc, err, "request slot")
			return
		}

		hc.Answer("")
		text := fmt.Sprintf(
			"✅ Ваша заявка на слот %s отправлена.\nОжидайте подтверждения от администратора. Вы получите уведомление, когда заявка будет обработана.",
			formatting.FormatSlotRange(slot),
		)
		if err := hc.EditMessage(text, backToMainKeyboard()); err != nil {
			h.Logger.Error("Failed to confirm request", zap.Error(err))
		}

		DeliverNotifications(hc.Ctx, b, h.Logger, intents)
	})
}

// HandleMyLessons показывает заявки и записи студента
func HandleMyLessons(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) {
	WithUser(ctx, b, callback, h, func(hc *HandlerContext) {
		slots, err := h.ScheduleService.StudentSlots(hc.Ctx, hc.User.ID)
		if err != nil {
			HandleError(hc, err, "my lessons")
			return
		}

		hc.Answer("")

		if len(slots) == 0 {
			if err := hc.EditMessage("У вас пока нет записей на занятия 📚", signUpKeyboard()); err != nil {
				h.Logger.Error("Failed to show empty lessons", zap.Error(err))
			}
			return
		}

		if err := hc.EditMessage("Ваши занятия:", keyboard.StudentLessons(slots)); err != nil {
			h.Logger.Error("Failed to show lessons", zap.Error(err))
		}
	})
}

// HandleLessonInfo показывает занятие студента с действиями
func HandleLessonInfo(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) {
	WithUser(ctx, b, callback, h, func(hc *HandlerContext) {
		slotID, err := ParseIDFromCallback(callback.Data)
		if err != nil {
			HandleError(hc, ErrInvalidFormat, "lesson info")
			return
		}

		slot, err := h.ScheduleService.GetSlot(hc.Ctx, slotID)
		if err != nil {
			HandleError(hc, err, "lesson info")
			return
		}

		if !slot.RequestedBy(hc.User.ID) {
			HandleError(hc, model.ErrNotOwner, "lesson info")
			return
		}

		hc.Answer("")
		text := fmt.Sprintf("🗓 <b>Дата:</b> %s\nСтатус: %s",
			formatting.FormatSlotRange(slot),
			formatting.StateLabel(slot.State))
		if slot.Subject != "" {
			text += fmt.Sprintf("\n📚 Тема: %s", slot.Subject)
		}

		if err := hc.EditMessage(text, keyboard.StudentLessonActions(slot)); err != nil {
			h.Logger.Error("Failed to show lesson info", zap.Error(err))
		}
	})
}

// HandleWithdrawSlot отзывает ещё не подтверждённую заявку
func HandleWithdrawSlot(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) {
	applyStudentAction(ctx, b, callback, h, model.ActionWithdraw,
		"Заявка отозвана ✅")
}

// HandleCancelLesson отменяет подтверждённую запись
func HandleCancelLesson(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) {
	applyStudentAction(ctx, b, callback, h, model.ActionCancelByStudent,
		"Вы успешно отменили запись ✅")
}

func applyStudentAction(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *Handler,
	action model.SlotAction,
	successText string,
) {
	WithUser(ctx, b, callback, h, func(hc *HandlerContext) {
		slotID, err := ParseIDFromCallback(callback.Data)
		if err != nil {
			HandleError(hc, ErrInvalidFormat, string(action))
			return
		}

		_, intents, err := h.BookingService.Apply(hc.Ctx, hc.TelegramID, slotID, action)
		if err != nil {
			HandleError(hc, err, string(action))
			return
		}

		hc.Answer("")
		if err := hc.EditMessage(successText, backToMainKeyboard()); err != nil {
			h.Logger.Error("Failed to confirm student action", zap.Error(err))
		}

		DeliverNotifications(hc.Ctx, b, h.Logger, intents)
	})
}

func signUpKeyboard() *models.InlineKeyboardMarkup {
	return keyboard.NewBuilder().
		Row(keyboard.Button("📅 Записаться на занятие", SignUp)).
		Row(keyboard.BackToMainButton()).
		Build()
}
