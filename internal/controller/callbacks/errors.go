package callbacks

import (
	"errors"
	"strings"

	"github.com/grishdev/slotbot/internal/model"
)

// Ошибки уровня обработчиков
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrNoMessage     = errors.New("no message in callback")
	ErrInvalidFormat = errors.New("invalid callback format")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return "❌ Пользователь не найден. Используйте /start"
	case errors.Is(err, ErrNoMessage):
		return "❌ Ошибка обработки сообщения"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Неверный формат данных"
	case errors.Is(err, model.ErrNotFound):
		return "❌ Слот не найден"
	case errors.Is(err, model.ErrAlreadyTaken):
		return "⚠️ Этот слот уже забронирован"
	case errors.Is(err, model.ErrInvalidState):
		return "⚠️ Действие уже неактуально, обновите список"
	case errors.Is(err, model.ErrNotOwner):
		return "❌ Вы не записаны на это занятие"
	case errors.Is(err, model.ErrForbidden):
		return "❌ Это действие вам недоступно"
	case errors.Is(err, model.ErrInvalidRange):
		return "❌ Время окончания должно быть позже времени начала"
	case errors.Is(err, model.ErrOverlap):
		return "⚠️ Такой временной слот уже существует"
	case errors.Is(err, model.ErrConflict):
		return "⚠️ Слот обновляется, попробуйте ещё раз"
	default:
		return "❌ Произошла ошибка"
	}
}

// IsMessageNotModifiedError проверяет ошибку Telegram "message is not modified"
func IsMessageNotModifiedError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "message is not modified")
}
