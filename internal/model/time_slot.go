package model

import "time"

type SlotState string

const (
	SlotStateFree      SlotState = "free"      // Свободен, можно подать заявку
	SlotStateRequested SlotState = "requested" // Заявка ждёт решения админа
	SlotStateConfirmed SlotState = "confirmed" // Заявка подтверждена
)

type TimeSlot struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"owner_id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Subject     string    `json:"subject"`
	State       SlotState `json:"state"`
	RequesterID *int64    `json:"requester_id"` // указатель - может быть nil
	CreatedAt   time.Time `json:"created_at"`

	// Дополнительные поля для удобства (не из БД)
	Requester *User `json:"requester,omitempty"`
	Owner     *User `json:"owner,omitempty"`
}

func (s *TimeSlot) IsFree() bool {
	return s.State == SlotStateFree
}

func (s *TimeSlot) IsRequested() bool {
	return s.State == SlotStateRequested
}

func (s *TimeSlot) IsConfirmed() bool {
	return s.State == SlotStateConfirmed
}

// RequestedBy проверяет что слот занят именно этим пользователем
func (s *TimeSlot) RequestedBy(userID int64) bool {
	return s.RequesterID != nil && *s.RequesterID == userID
}

// Overlaps проверяет пересечение с интервалом [start, end)
func (s *TimeSlot) Overlaps(start, end time.Time) bool {
	return s.StartTime.Before(end) && start.Before(s.EndTime)
}
