package callbacks

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/grishdev/slotbot/internal/controller/formatting"
	"github.com/grishdev/slotbot/internal/controller/keyboard"
	"github.com/grishdev/slotbot/internal/controller/render"
	"github.com/grishdev/slotbot/internal/controller/state"
	"github.com/grishdev/slotbot/internal/model"
	"github.com/grishdev/slotbot/internal/repository"
	"go.uber.org/zap"
)

// adminCalendarMarkup строит календарь админа: кликабелен любой день от
// сегодняшнего и на год вперёд
func adminCalendarMarkup(year int, month time.Month, now time.Time) *models.InlineKeyboardMarkup {
	year, month = clampMonth(year, month, now)

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	horizon := today.AddDate(0, 0, horizonDays)

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	minFirst := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
	maxFirst := time.Date(horizon.Year(), horizon.Month(), 1, 0, 0, 0, 0, time.Local)

	return keyboard.MonthGrid{
		Year:         year,
		Month:        month,
		Selectable:   keyboard.DateRangeSet(today, horizon),
		SelectPrefix: SelectDate,
		NavPrefix:    AdminCalendarNav,
		HasPrev:      first.After(minFirst),
		HasNext:      first.Before(maxFirst),
		BackCallback: BackToMain,
	}.Markup()
}

// HandleAddSchedule открывает календарь для добавления слота
func HandleAddSchedule(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) {
	WithAdmin(ctx, b, callback, h, func(hc *HandlerContext) {
		hc.Answer("")
		now := time.Now()
		err := hc.EditMessage("Настрой своё расписание", adminCalendarMarkup(now.Year(), now.Month(), now))
		if err != nil {
			h.Logger.Error("Failed to show admin calendar", zap.Error(err))
		}
	})
}

// HandleAdminCalendarNav листает календарь админа по месяцам
func HandleAdminCalendarNav(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) {
	WithAdmin(ctx, b, callback, h, func(hc *HandlerContext) {
		year, month, err := ParseMonthFromCallback(callback.Data)
		if err != nil {
			HandleError(hc, ErrInvalidFormat, "admin calendar nav")
			return
		}

		hc.Answer("")
		if err := hc.EditMessage("Настрой своё расписание", adminCalendarMarkup(year, month, time.Now())); err != nil {
			h.Logger.Error("Failed to page admin calendar", zap.Error(err))
		}
	})
}

// HandleSelectDate запоминает выбранную дату и просит ввести время текстом
func HandleSelectDate(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) {
	WithAdmin(ctx, b, callback, h, func(hc *HandlerContext) {
		date, err := ParseDateFromCallback(callback.Data)
		if err != nil {
			HandleError(hc, ErrInvalidFormat, "select date")
			return
		}

		dateStr := date.Format(keyboard.DayKey)
		hc.SetData(state.DataSelectedDate, dateStr)
		hc.SetState(state.StateWaitingForTime)

		hc.Answer("")
		text := fmt.Sprintf(
			"Введите время для %s в формате HH:MM - HH:MM, например, 12:00 - 13:00.",
			formatting.FormatDate(date),
		)
		if err := hc.EditMessage(text, backToMainKeyboard()); err != nil {
			h.Logger.Error("Failed to prompt for time", zap.Error(err))
		}
	})
}

// HandleViewSchedule показывает список слотов админа
func HandleViewSchedule(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) {
	WithAdmin(ctx, b, callback, h, func(hc *HandlerContext) {
		hc.Answer("")

		from := time.Now()
		slots, err := h.ScheduleService.ListSlots(hc.Ctx, repository.SlotFilter{
			OwnerID: hc.User.ID,
			From:    &from,
		})
		if err != nil {
			HandleError(hc, err, "view schedule")
			return
		}

		if len(slots) == 0 {
			if err := hc.EditMessage("У вас пока нет созданных слотов.", backToMainKeyboard()); err != nil {
				h.Logger.Error("Failed to show empty schedule", zap.Error(err))
			}
			return
		}

		err = hc.EditMessage(
			"Ваше текущее расписание (нажмите, чтобы посмотреть информацию):",
			keyboard.AdminSlotList(slots),
		)
		if err != nil {
			h.Logger.Error("Failed to show schedule", zap.Error(err))
		}
	})
}

// HandleAdminSlot показывает информацию о слоте с действиями по состоянию
func HandleAdminSlot(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) {
	WithAdmin(ctx, b, callback, h, func(hc *HandlerContext) {
		slotID, err := ParseIDFromCallback(callback.Data)
		if err != nil {
			HandleError(hc, ErrInvalidFormat, "admin slot info")
			return
		}

		slot, err := h.ScheduleService.GetSlot(hc.Ctx, slotID)
		if err != nil {
			HandleError(hc, err, "admin slot info")
			return
		}

		hc.Answer("")

		text := fmt.Sprintf("Запись на %s\nСтатус: %s",
			formatting.FormatSlotRange(slot),
			formatting.StateLabel(slot.State))
		if slot.Requester != nil {
			text += fmt.Sprintf("\n👤 Студент: %s", slot.Requester.DisplayName())
		}

		if err := hc.EditMessage(text, keyboard.AdminSlotActions(slot)); err != nil {
			h.Logger.Error("Failed to show slot info", zap.Error(err))
		}
	})
}

// HandleApproveSlot принимает заявку студента
func HandleApproveSlot(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) {
	applySlotAction(ctx, b, callback, h, model.ActionApprove, func(slot *model.TimeSlot) string {
		return fmt.Sprintf("Отлично! Вы приняли запись на %s, удачной работы)", formatting.FormatSlotRange(slot))
	})
}

// HandleRejectSlot отклоняет заявку студента
func HandleRejectSlot(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) {
	applySlotAction(ctx, b, callback, h, model.ActionReject, func(slot *model.TimeSlot) string {
		return fmt.Sprintf("Вы отклонили заявку на %s.\nСлот снова свободен для записи.", formatting.FormatSlotRange(slot))
	})
}

// HandleCancelSlot отменяет подтверждённую запись
func HandleCancelSlot(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) {
	applySlotAction(ctx, b, callback, h, model.ActionCancelByAdmin, func(slot *model.TimeSlot) string {
		return fmt.Sprintf("Вы отменили запись на %s\nНа слот всё ещё могут записаться другие пользователи!", formatting.FormatSlotRange(slot))
	})
}

// HandleDeleteSlot удаляет слот (принудительно, в любом состоянии)
func HandleDeleteSlot(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) {
	WithAdmin(ctx, b, callback, h, func(hc *HandlerContext) {
		slotID, err := ParseIDFromCallback(callback.Data)
		if err != nil {
			HandleError(hc, ErrInvalidFormat, "delete slot")
			return
		}

		intents, err := h.ScheduleService.DeleteSlot(hc.Ctx, hc.TelegramID, slotID)
		if err != nil {
			HandleError(hc, err, "delete slot")
			return
		}

		hc.Answer("")
		if err := hc.EditMessage("Слот успешно удалён ✅", backToMainKeyboard()); err != nil {
			h.Logger.Error("Failed to confirm deletion", zap.Error(err))
		}

		DeliverNotifications(hc.Ctx, b, h.Logger, intents)
	})
}

// HandleWeekView рисует расписание текущей недели картинкой
func HandleWeekView(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) {
	WithAdmin(ctx, b, callback, h, func(hc *HandlerContext) {
		now := time.Now()
		// Начало недели - понедельник
		weekStart := now.AddDate(0, 0, -((int(now.Weekday()) + 6) % 7))
		weekStart = time.Date(weekStart.Year(), weekStart.Month(), weekStart.Day(), 0, 0, 0, 0, time.Local)
		weekEnd := weekStart.AddDate(0, 0, 7).Add(-time.Nanosecond)

		slots, err := h.ScheduleService.ListSlots(hc.Ctx, repository.SlotFilter{
			OwnerID: hc.User.ID,
			From:    &weekStart,
			To:      &weekEnd,
		})
		if err != nil {
			HandleError(hc, err, "week view")
			return
		}

		img, err := render.WeekImage(slots, weekStart)
		if err != nil {
			HandleError(hc, err, "week view render")
			return
		}

		hc.Answer("")
		_, err = b.SendPhoto(hc.Ctx, &bot.SendPhotoParams{
			ChatID: hc.ChatID,
			Photo: &models.InputFileUpload{
				Filename: "week.png",
				Data:     bytes.NewReader(img),
			},
			Caption: fmt.Sprintf("Неделя с %s", formatting.FormatDate(weekStart)),
		})
		if err != nil {
			h.Logger.Error("Failed to send week image", zap.Error(err))
		}
	})
}

// applySlotAction - общий путь admin-переходов: применяем действие,
// показываем результат и доставляем уведомления
func applySlotAction(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *Handler,
	action model.SlotAction,
	successText func(slot *model.TimeSlot) string,
) {
	WithAdmin(ctx, b, callback, h, func(hc *HandlerContext) {
		slotID, err := ParseIDFromCallback(callback.Data)
		if err != nil {
			HandleError(hc, ErrInvalidFormat, string(action))
			return
		}

		slot, intents, err := h.BookingService.Apply(hc.Ctx, hc.TelegramID, slotID, action)
		if err != nil {
			HandleError(hc, err, string(action))
			return
		}

		hc.Answer("")
		if err := hc.EditMessage(successText(slot), backToMainKeyboard()); err != nil {
			h.Logger.Error("Failed to show action result", zap.Error(err))
		}

		DeliverNotifications(hc.Ctx, b, h.Logger, intents)
	})
}
