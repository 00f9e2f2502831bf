package state

import (
	"sync"
)

// userData хранит состояние диалога и временные данные одного пользователя
type userData struct {
	state UserState
	data  map[string]interface{}
}

// Manager управляет состояниями пользователей. Всё хранится в памяти
// процесса: брошенный на полпути диалог просто исчезает, база при этом
// не трогается.
type Manager struct {
	mu     sync.RWMutex
	states map[int64]*userData // telegramID -> userData
}

// NewManager создаёт новый менеджер состояний
func NewManager() *Manager {
	return &Manager{
		states: make(map[int64]*userData),
	}
}

// GetState получает текущее состояние пользователя
func (sm *Manager) GetState(telegramID int64) UserState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if ud, exists := sm.states[telegramID]; exists {
		return ud.state
	}
	return StateNone
}

// SetState устанавливает состояние пользователя
func (sm *Manager) SetState(telegramID int64, st UserState) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if st == StateNone {
		delete(sm.states, telegramID)
		return
	}

	if ud, exists := sm.states[telegramID]; exists {
		ud.state = st
		return
	}
	sm.states[telegramID] = &userData{
		state: st,
		data:  make(map[string]interface{}),
	}
}

// GetData получает временные данные пользователя
func (sm *Manager) GetData(telegramID int64, key string) (interface{}, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if ud, exists := sm.states[telegramID]; exists {
		value, ok := ud.data[key]
		return value, ok
	}
	return nil, false
}

// SetData устанавливает временные данные пользователя
func (sm *Manager) SetData(telegramID int64, key string, value interface{}) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ud, exists := sm.states[telegramID]
	if !exists {
		ud = &userData{
			state: StateNone,
			data:  make(map[string]interface{}),
		}
		sm.states[telegramID] = ud
	}
	ud.data[key] = value
}

// ClearState очищает состояние и данные пользователя
func (sm *Manager) ClearState(telegramID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.states, telegramID)
}
