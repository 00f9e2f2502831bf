package model

import "errors"

// Ожидаемые исходы операций над слотами. Возвращаются сервисами как есть,
// в пользовательский текст переводятся только на уровне контроллера.
var (
	ErrNotFound     = errors.New("slot not found")
	ErrInvalidState = errors.New("slot is not in a suitable state")
	ErrAlreadyTaken = errors.New("slot is already taken")
	ErrNotOwner     = errors.New("user is not the requester of this slot")
	ErrForbidden    = errors.New("action is not allowed for this user")
	ErrInvalidRange = errors.New("slot end time must be after start time")
	ErrOverlap      = errors.New("slot overlaps an existing one")
	ErrConflict     = errors.New("concurrent slot update, retry")
)
