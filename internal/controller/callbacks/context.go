package callbacks

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/grishdev/slotbot/internal/controller/state"
	"github.com/grishdev/slotbot/internal/model"
	"go.uber.org/zap"
)

// HandlerContext содержит общие данные для обработки callback.
// Это избавляет от дублирования кода получения пользователя, сообщения и т.д.
type HandlerContext struct {
	Ctx        context.Context
	Bot        *bot.Bot
	Callback   *models.CallbackQuery
	Handler    *Handler
	Message    *models.Message
	User       *model.User
	TelegramID int64
	ChatID     int64
}

// NewHandlerContext создаёт новый контекст обработчика
func NewHandlerContext(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) *HandlerContext {
	msg := GetMessageFromCallback(callback)
	var chatID int64
	if msg != nil {
		chatID = msg.Chat.ID
	}

	return &HandlerContext{
		Ctx:        ctx,
		Bot:        b,
		Callback:   callback,
		Handler:    h,
		Message:    msg,
		TelegramID: callback.From.ID,
		ChatID:     chatID,
	}
}

// IsAdmin проверяет что callback пришёл от администратора
func (hc *HandlerContext) IsAdmin() bool {
	return hc.TelegramID == hc.Handler.AdminID
}

// LoadUser загружает пользователя в контекст
func (hc *HandlerContext) LoadUser() error {
	user, err := hc.Handler.UserService.GetByTelegramID(hc.Ctx, hc.TelegramID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	hc.User = user
	return nil
}

// RequireAdmin проверяет что пользователь - администратор
func (hc *HandlerContext) RequireAdmin() error {
	if !hc.IsAdmin() {
		return model.ErrForbidden
	}
	return hc.LoadUser()
}

// Answer отвечает на callback query
func (hc *HandlerContext) Answer(text string) {
	AnswerCallback(hc.Ctx, hc.Bot, hc.Callback.ID, text)
}

// AnswerAlert отвечает на callback query с alert
func (hc *HandlerContext) AnswerAlert(text string) {
	AnswerCallbackAlert(hc.Ctx, hc.Bot, hc.Callback.ID, text)
}

// EditMessage редактирует сообщение
func (hc *HandlerContext) EditMessage(text string, keyboard *models.InlineKeyboardMarkup) error {
	if hc.Message == nil {
		return ErrNoMessage
	}

	_, err := hc.Bot.EditMessageText(hc.Ctx, &bot.EditMessageTextParams{
		ChatID:      hc.ChatID,
		MessageID:   hc.Message.ID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: keyboard,
	})

	// "message is not modified" - не настоящая ошибка
	if IsMessageNotModifiedError(err) {
		return nil
	}

	return err
}

// SendMessage отправляет новое сообщение
func (hc *HandlerContext) SendMessage(text string, keyboard *models.InlineKeyboardMarkup) error {
	_, err := hc.Bot.SendMessage(hc.Ctx, &bot.SendMessageParams{
		ChatID:      hc.ChatID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: keyboard,
	})

	return err
}

// SetState устанавливает состояние пользователя
func (hc *HandlerContext) SetState(st state.UserState) {
	hc.Handler.StateManager.SetState(hc.TelegramID, st)
}

// SetData устанавливает данные в state
func (hc *HandlerContext) SetData(key string, value interface{}) {
	hc.Handler.StateManager.SetData(hc.TelegramID, key, value)
}

// ClearState очищает состояние пользователя
func (hc *HandlerContext) ClearState() {
	hc.Handler.StateManager.ClearState(hc.TelegramID)
}

// WithUser создаёт HandlerContext и загружает пользователя.
// При ошибке сам отвечает на callback
func WithUser(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler, handler func(*HandlerContext)) {
	hc := NewHandlerContext(ctx, b, callback, h)

	if err := hc.LoadUser(); err != nil {
		h.Logger.Error("Failed to load user",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Error(err))
		hc.AnswerAlert(ErrorMessage(err))
		return
	}

	handler(hc)
}

// WithAdmin создаёт HandlerContext и проверяет что пользователь - админ
func WithAdmin(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler, handler func(*HandlerContext)) {
	hc := NewHandlerContext(ctx, b, callback, h)

	if err := hc.RequireAdmin(); err != nil {
		h.Logger.Error("Admin check failed",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Error(err))
		hc.AnswerAlert(ErrorMessage(err))
		return
	}

	handler(hc)
}

// HandleError обрабатывает ошибку и отвечает пользователю
func HandleError(hc *HandlerContext, err error, operation string) {
	hc.Handler.Logger.Error("Operation failed",
		zap.String("operation", operation),
		zap.Int64("telegram_id", hc.TelegramID),
		zap.Error(err))
	hc.AnswerAlert(ErrorMessage(err))
}
