package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/grishdev/slotbot/internal/model"
	"github.com/grishdev/slotbot/internal/repository"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

// Сколько раз повторяем попытку при конфликте блокировки на том же слоте
const (
	applyMaxRetries   = 3
	applyRetryBackoff = 25 * time.Millisecond
)

// UserGetter - доступ к пользователям, нужный координатору
type UserGetter interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error)
}

// BookingService - координатор переходов слота. Загружает слот в рамках
// одной транзакции хранилища, применяет чистую функцию переходов и
// возвращает сохранённый слот вместе с набором уведомлений. Само решение
// о переходе принимает model.Transition, здесь только оркестрация.
type BookingService struct {
	slots   repository.SlotStore
	users   UserGetter
	adminID int64 // telegram id администратора, задаётся конфигом
	logger  *zap.Logger
}

func NewBookingService(
	slots repository.SlotStore,
	users UserGetter,
	adminID int64,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		slots:   slots,
		users:   users,
		adminID: adminID,
		logger:  logger,
	}
}

// Apply применяет действие к слоту от имени пользователя.
// Возвращает слот после перехода и уведомления, которые должен доставить
// вызывающий. Отклонённый переход не оставляет в базе никаких изменений.
func (s *BookingService) Apply(
	ctx context.Context,
	actorTelegramID int64,
	slotID int64,
	action model.SlotAction,
) (*model.TimeSlot, []model.NotificationIntent, error) {
	correlationID := uuid.New().String()

	actorUser, err := s.users.GetByTelegramID(ctx, actorTelegramID)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve actor: %w", err)
	}

	actor := model.Actor{IsAdmin: actorTelegramID == s.adminID}
	if actorUser != nil {
		actor.UserID = actorUser.ID
	} else if !actor.IsAdmin {
		// Неизвестный пользователь не может быть ни админом, ни заявителем
		return nil, nil, model.ErrForbidden
	}

	var (
		updated   *model.TimeSlot
		notices   []model.Notice
		concerned *model.User // заявитель на момент до перехода
	)

	backoff := retry.WithMaxRetries(applyMaxRetries, retry.NewConstant(applyRetryBackoff))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		notices = nil
		concerned = nil

		var mutateErr error
		updated, mutateErr = s.slots.Mutate(ctx, slotID, func(slot *model.TimeSlot) error {
			effect, trErr := model.Transition(slot, actor, action)
			if trErr != nil {
				return trErr
			}

			concerned = slot.Requester
			notices = effect.Notices
			slot.State = effect.NextState
			slot.RequesterID = effect.RequesterID
			return nil
		})

		if errors.Is(mutateErr, model.ErrConflict) {
			return retry.RetryableError(mutateErr)
		}
		return mutateErr
	})
	if err != nil {
		return nil, nil, err
	}

	// Приводим joined-поле заявителя в соответствие новому состоянию
	switch {
	case updated.RequesterID == nil:
		updated.Requester = nil
	case actorUser != nil && *updated.RequesterID == actorUser.ID:
		updated.Requester = actorUser
	}

	intents := s.buildIntents(notices, updated, concerned)

	s.logger.Info("Slot transition applied",
		zap.String("correlation_id", correlationID),
		zap.Int64("slot_id", updated.ID),
		zap.String("action", string(action)),
		zap.String("state", string(updated.State)),
		zap.Int64("actor_telegram_id", actorTelegramID),
		zap.Bool("is_admin", actor.IsAdmin),
		zap.Int("intents", len(intents)),
	)

	return updated, intents, nil
}

// buildIntents собирает уведомления по итогам перехода. Сборка намеренно
// не может провалить уже закоммиченный переход: если получателя не удалось
// определить, уведомление просто пропускается с записью в лог.
func (s *BookingService) buildIntents(
	notices []model.Notice,
	slot *model.TimeSlot,
	concerned *model.User,
) []model.NotificationIntent {
	intents := make([]model.NotificationIntent, 0, len(notices))

	for _, notice := range notices {
		var recipientID int64

		switch notice.To {
		case model.NoticeToAdmin:
			recipientID = s.adminID
		case model.NoticeToRequester:
			requester := concerned
			if requester == nil {
				requester = slot.Requester
			}
			if requester == nil {
				s.logger.Warn("No requester to notify",
					zap.Int64("slot_id", slot.ID),
					zap.String("kind", string(notice.Kind)))
				continue
			}
			recipientID = requester.TelegramID
		default:
			continue
		}

		snapshot := *slot
		if concerned != nil && snapshot.Requester == nil {
			// В снимке оставляем данные бывшего заявителя: транспорту
			// нужно имя студента в тексте уведомления
			snapshot.Requester = concerned
		}

		intents = append(intents, model.NotificationIntent{
			RecipientID: recipientID,
			Kind:        notice.Kind,
			Slot:        snapshot,
		})
	}

	return intents
}
