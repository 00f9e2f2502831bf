package handlers

import (
	"github.com/grishdev/slotbot/internal/controller/state"
	"github.com/grishdev/slotbot/internal/service"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	userService     *service.UserService
	scheduleService *service.ScheduleService
	stateManager    *state.Manager
	adminID         int64
	logger          *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	userService *service.UserService,
	scheduleService *service.ScheduleService,
	stateManager *state.Manager,
	adminID int64,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		userService:     userService,
		scheduleService: scheduleService,
		stateManager:    stateManager,
		adminID:         adminID,
		logger:          logger,
	}
}
