package repository

import (
	"context"
	"time"

	"github.com/grishdev/slotbot/internal/model"
)

// SlotFilter - параметры выборки слотов
type SlotFilter struct {
	OwnerID     int64
	RequesterID *int64
	States      []model.SlotState
	From        *time.Time
	To          *time.Time
}

// SlotStore - граница хранилища слотов. Все мутации состояния идут через
// Mutate: fn выполняется над строкой, заблокированной на время транзакции,
// и либо применяется целиком, либо не применяется вовсе.
type SlotStore interface {
	// Create сохраняет новый слот. Возвращает model.ErrOverlap если интервал
	// пересекается с существующим слотом того же владельца.
	Create(ctx context.Context, slot *model.TimeSlot) error

	// GetByID возвращает слот или model.ErrNotFound.
	GetByID(ctx context.Context, id int64) (*model.TimeSlot, error)

	// List возвращает слоты по фильтру, отсортированные по start_time.
	List(ctx context.Context, filter SlotFilter) ([]*model.TimeSlot, error)

	// FreeDates возвращает различные календарные даты (начала дня), на
	// которые у владельца есть хотя бы один свободный слот с start_time
	// в [from, to].
	FreeDates(ctx context.Context, ownerID int64, from, to time.Time) ([]time.Time, error)

	// Mutate загружает слот под эксклюзивной блокировкой, вызывает fn и
	// сохраняет изменённые state/requester_id. Ошибка fn откатывает
	// транзакцию. Конфликт блокировки возвращается как model.ErrConflict.
	Mutate(ctx context.Context, id int64, fn func(slot *model.TimeSlot) error) (*model.TimeSlot, error)

	// Delete удаляет слот безусловно и возвращает удалённую запись.
	Delete(ctx context.Context, id int64) (*model.TimeSlot, error)
}
