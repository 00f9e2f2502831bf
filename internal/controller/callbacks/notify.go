package callbacks

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/grishdev/slotbot/internal/controller/formatting"
	"github.com/grishdev/slotbot/internal/controller/keyboard"
	"github.com/grishdev/slotbot/internal/model"
	"go.uber.org/zap"
)

// DeliverNotifications доставляет уведомления best-effort: неудачная
// отправка логируется и не влияет на уже сохранённый переход.
func DeliverNotifications(ctx context.Context, b *bot.Bot, logger *zap.Logger, intents []model.NotificationIntent) {
	for _, intent := range intents {
		text, kb := renderNotification(intent)
		if text == "" {
			continue
		}

		_, err := b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      intent.RecipientID,
			Text:        text,
			ReplyMarkup: kb,
		})
		if err != nil {
			logger.Warn("Failed to deliver notification",
				zap.Int64("recipient_id", intent.RecipientID),
				zap.String("kind", string(intent.Kind)),
				zap.Error(err))
		}
	}
}

func renderNotification(intent model.NotificationIntent) (string, *models.InlineKeyboardMarkup) {
	slot := intent.Slot
	dateStr := formatting.FormatSlotRange(&slot)

	student := "студент"
	if slot.Requester != nil {
		student = slot.Requester.DisplayName()
	}

	switch intent.Kind {
	case model.NotifyRequested:
		text := fmt.Sprintf("Новая заявка на слот:\nДата: %s\n👤 Студент: %s", dateStr, student)
		return text, keyboard.ApproveRejectSlot(slot.ID)

	case model.NotifyApproved:
		return fmt.Sprintf("Администратор одобрил вашу заявку на %s, хороших уроков!", dateStr),
			okKeyboard()

	case model.NotifyRejected:
		return fmt.Sprintf("Администратор отклонил вашу заявку на %s", dateStr),
			okKeyboard()

	case model.NotifyCanceledByAdmin:
		return fmt.Sprintf("Администратор отменил вашу запись на %s", dateStr),
			okKeyboard()

	case model.NotifyCanceledByStudent:
		return fmt.Sprintf("%s отменил запись на %s", student, dateStr), nil

	case model.NotifyWithdrawn:
		return fmt.Sprintf("%s отозвал заявку на %s", student, dateStr), nil

	case model.NotifySlotDeleted:
		return fmt.Sprintf("Слот %s удалён администратором, ваша запись отменена", dateStr),
			okKeyboard()

	default:
		return "", nil
	}
}

func okKeyboard() *models.InlineKeyboardMarkup {
	return keyboard.NewBuilder().Row(keyboard.OkToMainRow()...).Build()
}
