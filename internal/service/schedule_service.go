package service

import (
	"context"
	"fmt"
	"time"

	"github.com/grishdev/slotbot/internal/model"
	"github.com/grishdev/slotbot/internal/repository"
	"go.uber.org/zap"
)

// ScheduleService управляет расписанием админа: создание и удаление слотов,
// выборки для просмотра и индекс доступности для календаря.
type ScheduleService struct {
	slots   repository.SlotStore
	users   UserGetter
	adminID int64
	logger  *zap.Logger
}

func NewScheduleService(
	slots repository.SlotStore,
	users UserGetter,
	adminID int64,
	logger *zap.Logger,
) *ScheduleService {
	return &ScheduleService{
		slots:   slots,
		users:   users,
		adminID: adminID,
		logger:  logger,
	}
}

// AdminUser возвращает запись администратора (создаётся при /start)
func (s *ScheduleService) AdminUser(ctx context.Context) (*model.User, error) {
	admin, err := s.users.GetByTelegramID(ctx, s.adminID)
	if err != nil {
		return nil, fmt.Errorf("get admin user: %w", err)
	}
	if admin == nil {
		return nil, model.ErrNotFound
	}
	return admin, nil
}

// CreateSlot создаёт свободный слот. Только для админа.
// end <= start отклоняется как ErrInvalidRange, пересечение с существующим
// слотом - как ErrOverlap; в обоих случаях в базе ничего не остаётся.
func (s *ScheduleService) CreateSlot(
	ctx context.Context,
	actorTelegramID int64,
	start, end time.Time,
	subject string,
) (*model.TimeSlot, error) {
	if actorTelegramID != s.adminID {
		return nil, model.ErrForbidden
	}

	if !end.After(start) {
		return nil, model.ErrInvalidRange
	}

	admin, err := s.AdminUser(ctx)
	if err != nil {
		return nil, err
	}

	slot := &model.TimeSlot{
		OwnerID:   admin.ID,
		StartTime: start,
		EndTime:   end,
		Subject:   subject,
		State:     model.SlotStateFree,
	}

	if err := s.slots.Create(ctx, slot); err != nil {
		return nil, err
	}

	s.logger.Info("Slot created",
		zap.Int64("slot_id", slot.ID),
		zap.Time("start", start),
		zap.Time("end", end),
	)

	return slot, nil
}

// DeleteSlot удаляет слот безусловно. Только для админа. Если на слоте была
// заявка или подтверждённая запись, заявитель получает уведомление об отмене.
func (s *ScheduleService) DeleteSlot(
	ctx context.Context,
	actorTelegramID int64,
	slotID int64,
) ([]model.NotificationIntent, error) {
	if actorTelegramID != s.adminID {
		return nil, model.ErrForbidden
	}

	deleted, err := s.slots.Delete(ctx, slotID)
	if err != nil {
		return nil, err
	}

	var intents []model.NotificationIntent
	if deleted.Requester != nil {
		intents = append(intents, model.NotificationIntent{
			RecipientID: deleted.Requester.TelegramID,
			Kind:        model.NotifySlotDeleted,
			Slot:        *deleted,
		})
	}

	s.logger.Info("Slot deleted",
		zap.Int64("slot_id", slotID),
		zap.String("state", string(deleted.State)),
		zap.Bool("had_requester", deleted.Requester != nil),
	)

	return intents, nil
}

// GetSlot возвращает слот по ID
func (s *ScheduleService) GetSlot(ctx context.Context, slotID int64) (*model.TimeSlot, error) {
	return s.slots.GetByID(ctx, slotID)
}

// ListSlots возвращает слоты по фильтру
func (s *ScheduleService) ListSlots(ctx context.Context, filter repository.SlotFilter) ([]*model.TimeSlot, error) {
	return s.slots.List(ctx, filter)
}

// FreeSlotsOnDate возвращает свободные слоты админа на календарную дату
func (s *ScheduleService) FreeSlotsOnDate(ctx context.Context, day time.Time) ([]*model.TimeSlot, error) {
	admin, err := s.AdminUser(ctx)
	if err != nil {
		return nil, err
	}

	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	to := from.AddDate(0, 0, 1).Add(-time.Nanosecond)

	return s.slots.List(ctx, repository.SlotFilter{
		OwnerID: admin.ID,
		States:  []model.SlotState{model.SlotStateFree},
		From:    &from,
		To:      &to,
	})
}

// FreeDates возвращает даты, на которые у админа есть хотя бы один
// свободный слот в диапазоне [from, to]. Читает напрямую из базы, без
// кэша: устаревший календарь означал бы заявки на уже занятые слоты.
func (s *ScheduleService) FreeDates(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	admin, err := s.AdminUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.slots.FreeDates(ctx, admin.ID, from, to)
}

// StudentSlots возвращает заявки и записи студента
func (s *ScheduleService) StudentSlots(ctx context.Context, studentID int64) ([]*model.TimeSlot, error) {
	admin, err := s.AdminUser(ctx)
	if err != nil {
		return nil, err
	}

	return s.slots.List(ctx, repository.SlotFilter{
		OwnerID:     admin.ID,
		RequesterID: &studentID,
		States:      []model.SlotState{model.SlotStateRequested, model.SlotStateConfirmed},
	})
}
