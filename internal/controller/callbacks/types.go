package callbacks

import (
	"github.com/grishdev/slotbot/internal/controller/state"
	"github.com/grishdev/slotbot/internal/service"
	"go.uber.org/zap"
)

// Горизонт календарей: с сегодняшнего дня и максимум на год вперёд
const horizonDays = 365

// StateManager интерфейс для управления состоянием пользователей
type StateManager interface {
	GetState(telegramID int64) state.UserState
	SetState(telegramID int64, st state.UserState)
	SetData(telegramID int64, key string, value interface{})
	GetData(telegramID int64, key string) (interface{}, bool)
	ClearState(telegramID int64)
}

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	UserService     *service.UserService
	BookingService  *service.BookingService
	ScheduleService *service.ScheduleService
	StateManager    StateManager
	AdminID         int64
	Logger          *zap.Logger
}

func NewHandler(
	userService *service.UserService,
	bookingService *service.BookingService,
	scheduleService *service.ScheduleService,
	stateManager StateManager,
	adminID int64,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		UserService:     userService,
		BookingService:  bookingService,
		ScheduleService: scheduleService,
		StateManager:    stateManager,
		AdminID:         adminID,
		Logger:          logger,
	}
}
