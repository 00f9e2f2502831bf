package callbacks

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Callback Data Patterns
// ========================

// Общие
const (
	BackToMain = "back_to_main"
	AboutUs    = "about_us"
)

// Админ: расписание и слоты
const (
	AddSchedule      = "add_schedule"
	AdminCalendarNav = "admin_calendar:" // admin_calendar:2025-03
	SelectDate       = "select_date:"    // select_date:2025-03-01
	ViewSchedule     = "view_schedule"
	WeekView         = "week_view"
	AdminSlot        = "admin_slot:"   // admin_slot:123
	ApproveSlot      = "approve_slot:" // approve_slot:123
	RejectSlot       = "reject_slot:"  // reject_slot:123
	CancelSlot       = "cancel_slot:"  // cancel_slot:123
	DeleteSlot       = "delete_slot:"  // delete_slot:123
)

// Студент: запись и занятия
const (
	SignUp          = "sign_up"
	UserCalendarNav = "user_calendar:" // user_calendar:2025-03
	UserDay         = "user_day:"      // user_day:2025-03-01
	RequestSlot     = "request_slot:"  // request_slot:123
	MyLessons       = "my_lessons"
	LessonInfo      = "lesson_info:"   // lesson_info:123
	WithdrawSlot    = "withdraw_slot:" // withdraw_slot:123
	CancelLesson    = "cancel_lesson:" // cancel_lesson:123
)

// HandleCallbackQuery - точка входа для нажатий на inline кнопки
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	Route(ctx, b, update.CallbackQuery, h)
}

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) {
	data := callback.Data

	h.Logger.Info("Routing callback",
		zap.String("data", data),
		zap.Int64("user_id", callback.From.ID))

	switch {
	// ===== Общая навигация =====
	case data == BackToMain:
		HandleBackToMain(ctx, b, callback, h)
	case data == AboutUs:
		HandleAboutUs(ctx, b, callback, h)
	case data == "noop":
		// Заглушки календаря - просто подтверждаем callback
		AnswerCallback(ctx, b, callback.ID, "")

	// ===== Админ =====
	case data == AddSchedule:
		HandleAddSchedule(ctx, b, callback, h)
	case strings.HasPrefix(data, AdminCalendarNav):
		HandleAdminCalendarNav(ctx, b, callback, h)
	case strings.HasPrefix(data, SelectDate):
		HandleSelectDate(ctx, b, callback, h)
	case data == ViewSchedule:
		HandleViewSchedule(ctx, b, callback, h)
	case data == WeekView:
		HandleWeekView(ctx, b, callback, h)
	case strings.HasPrefix(data, AdminSlot):
		HandleAdminSlot(ctx, b, callback, h)
	case strings.HasPrefix(data, ApproveSlot):
		HandleApproveSlot(ctx, b, callback, h)
	case strings.HasPrefix(data, RejectSlot):
		HandleRejectSlot(ctx, b, callback, h)
	case strings.HasPrefix(data, CancelSlot):
		HandleCancelSlot(ctx, b, callback, h)
	case strings.HasPrefix(data, DeleteSlot):
		HandleDeleteSlot(ctx, b, callback, h)

	// ===== Студент =====
	case data == SignUp:
		HandleSignUp(ctx, b, callback, h)
	case strings.HasPrefix(data, UserCalendarNav):
		HandleUserCalendarNav(ctx, b, callback, h)
	case strings.HasPrefix(data, UserDay):
		HandleUserDay(ctx, b, callback, h)
	case strings.HasPrefix(data, RequestSlot):
		HandleRequestSlot(ctx, b, callback, h)
	case data == MyLessons:
		HandleMyLessons(ctx, b, callback, h)
	case strings.HasPrefix(data, LessonInfo):
		HandleLessonInfo(ctx, b, callback, h)
	case strings.HasPrefix(data, WithdrawSlot):
		HandleWithdrawSlot(ctx, b, callback, h)
	case strings.HasPrefix(data, CancelLesson):
		HandleCancelLesson(ctx, b, callback, h)

	default:
		h.Logger.Warn("Unknown callback", zap.String("data", data))
		AnswerCallback(ctx, b, callback.ID, "")
	}
}

// HandleBackToMain возвращает пользователя в главное меню его роли
func HandleBackToMain(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) {
	WithUser(ctx, b, callback, h, func(hc *HandlerContext) {
		hc.ClearState()
		hc.Answer("")
		showMainMenu(hc)
	})
}

// HandleAboutUs показывает информацию о боте
func HandleAboutUs(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) {
	hc := NewHandlerContext(ctx, b, callback, h)
	hc.Answer("")
	if err := hc.EditMessage("Мы - команда, которая делает обучение удобным!", backToMainKeyboard()); err != nil {
		h.Logger.Error("Failed to show about", zap.Error(err))
	}
}
