package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/grishdev/slotbot/internal/controller/keyboard"
	"go.uber.org/zap"
)

// HandleStart регистрирует пользователя и показывает меню его роли.
// Участник создаётся лениво, при первом контакте.
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	from := update.Message.From
	user, err := h.userService.RegisterUser(ctx, from.ID, from.Username, from.FirstName, from.LastName)
	if err != nil {
		h.logger.Error("Failed to register user",
			zap.Int64("telegram_id", from.ID),
			zap.Error(err))
		h.reply(ctx, b, update, "Произошла ошибка, попробуйте позже.", nil)
		return
	}

	if from.ID == h.adminID {
		text := fmt.Sprintf("Добро пожаловать, %s, вы админ! Выберите действие:", user.DisplayName())
		h.reply(ctx, b, update, text, keyboard.AdminMenu())
		return
	}

	text := fmt.Sprintf("Добро пожаловать, %s! Выберите действие:", user.DisplayName())
	h.reply(ctx, b, update, text, keyboard.UserMenu())
}

// HandleHelp показывает справку по командам
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	text := "Доступные команды:\n" +
		"/start - главное меню\n" +
		"/id - ваш telegram id\n" +
		"/help - эта справка"
	h.reply(ctx, b, update, text, nil)
}

// HandleID показывает telegram id пользователя
func (h *Handlers) HandleID(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	h.reply(ctx, b, update, fmt.Sprintf("Ваш id: %d", update.Message.From.ID), nil)
}

func (h *Handlers) reply(ctx context.Context, b *bot.Bot, update *models.Update, text string, kb *models.InlineKeyboardMarkup) {
	if update.Message == nil {
		return
	}

	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      update.Message.Chat.ID,
		Text:        text,
		ReplyMarkup: kb,
	})
	if err != nil {
		h.logger.Error("Failed to send reply", zap.Error(err))
	}
}
