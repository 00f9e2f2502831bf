package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/grishdev/slotbot/internal/model"
	"github.com/grishdev/slotbot/internal/repository"
)

// fakeUsers - UserGetter поверх карты в памяти
type fakeUsers struct {
	byID map[int64]*model.User
}

func newFakeUsers(users ...*model.User) *fakeUsers {
	f := &fakeUsers{byID: make(map[int64]*model.User)}
	for _, u := range users {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*model.User, error) {
	return f.byID[id], nil
}

func (f *fakeUsers) GetByTelegramID(_ context.Context, telegramID int64) (*model.User, error) {
	for _, u := range f.byID {
		if u.TelegramID == telegramID {
			return u, nil
		}
	}
	return nil, nil
}

// fakeSlotStore - SlotStore в памяти. Mutate сериализует мутации общим
// мьютексом, то есть даёт те же гарантии изоляции, что строчная блокировка
// в настоящем хранилище. mutateErrs позволяет подсунуть ошибки первым
// вызовам Mutate.
type fakeSlotStore struct {
	mu         sync.Mutex
	seq        int64
	slots      map[int64]*model.TimeSlot
	users      *fakeUsers
	mutateErrs []error
}

var _ repository.SlotStore = (*fakeSlotStore)(nil)

func newFakeSlotStore(users *fakeUsers) *fakeSlotStore {
	return &fakeSlotStore{
		slots: make(map[int64]*model.TimeSlot),
		users: users,
	}
}

// joined возвращает копию слота с подтянутым заявителем
func (f *fakeSlotStore) joined(slot *model.TimeSlot) *model.TimeSlot {
	cp := *slot
	cp.Requester = nil
	if cp.RequesterID != nil {
		cp.Requester = f.users.byID[*cp.RequesterID]
	}
	return &cp
}

func (f *fakeSlotStore) Create(_ context.Context, slot *model.TimeSlot) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.slots {
		if existing.OwnerID == slot.OwnerID && existing.Overlaps(slot.StartTime, slot.EndTime) {
			return model.ErrOverlap
		}
	}

	f.seq++
	slot.ID = f.seq
	slot.CreatedAt = time.Now()

	cp := *slot
	f.slots[slot.ID] = &cp
	return nil
}

func (f *fakeSlotStore) GetByID(_ context.Context, id int64) (*model.TimeSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	slot, ok := f.slots[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	return f.joined(slot), nil
}

func (f *fakeSlotStore) List(_ context.Context, filter repository.SlotFilter) ([]*model.TimeSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []*model.TimeSlot
	for _, slot := range f.slots {
		if filter.OwnerID != 0 && slot.OwnerID != filter.OwnerID {
			continue
		}
		if filter.RequesterID != nil {
			if slot.RequesterID == nil || *slot.RequesterID != *filter.RequesterID {
				continue
			}
		}
		if len(filter.States) > 0 {
			found := false
			for _, st := range filter.States {
				if slot.State == st {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		if filter.From != nil && slot.StartTime.Before(*filter.From) {
			continue
		}
		if filter.To != nil && slot.StartTime.After(*filter.To) {
			continue
		}
		result = append(result, f.joined(slot))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].StartTime.Before(result[j].StartTime)
	})
	return result, nil
}

func (f *fakeSlotStore) FreeDates(_ context.Context, ownerID int64, from, to time.Time) ([]time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	seen := make(map[time.Time]bool)
	for _, slot := range f.slots {
		if slot.OwnerID != ownerID || !slot.IsFree() {
			continue
		}
		if slot.StartTime.Before(from) || slot.StartTime.After(to) {
			continue
		}
		day := time.Date(slot.StartTime.Year(), slot.StartTime.Month(), slot.StartTime.Day(),
			0, 0, 0, 0, slot.StartTime.Location())
		seen[day] = true
	}

	dates := make([]time.Time, 0, len(seen))
	for day := range seen {
		dates = append(dates, day)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates, nil
}

func (f *fakeSlotStore) Mutate(_ context.Context, id int64, fn func(slot *model.TimeSlot) error) (*model.TimeSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.mutateErrs) > 0 {
		err := f.mutateErrs[0]
		f.mutateErrs = f.mutateErrs[1:]
		return nil, err
	}

	slot, ok := f.slots[id]
	if !ok {
		return nil, model.ErrNotFound
	}

	working := f.joined(slot)
	if err := fn(working); err != nil {
		return nil, err
	}

	slot.State = working.State
	slot.RequesterID = working.RequesterID
	return f.joined(slot), nil
}

func (f *fakeSlotStore) Delete(_ context.Context, id int64) (*model.TimeSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	slot, ok := f.slots[id]
	if !ok {
		return nil, model.ErrNotFound
	}

	deleted := f.joined(slot)
	delete(f.slots, id)
	return deleted, nil
}
