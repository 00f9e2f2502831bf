package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grishdev/slotbot/internal/model"
	"github.com/grishdev/slotbot/internal/repository"
)

func TestCreateSlotValidation(t *testing.T) {
	fx := newBookingFixture(t)
	ctx := context.Background()
	start := testSlotStart()

	t.Run("not admin", func(t *testing.T) {
		_, err := fx.schedule.CreateSlot(ctx, testStudentTelegramID, start, start.Add(time.Hour), "")
		require.ErrorIs(t, err, model.ErrForbidden)
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := fx.schedule.CreateSlot(ctx, testAdminTelegramID, start, start.Add(-time.Hour), "")
		require.ErrorIs(t, err, model.ErrInvalidRange)
	})

	t.Run("zero length", func(t *testing.T) {
		_, err := fx.schedule.CreateSlot(ctx, testAdminTelegramID, start, start, "")
		require.ErrorIs(t, err, model.ErrInvalidRange)
	})

	// Ни одна из отклонённых попыток не оставила слота в хранилище
	slots, err := fx.store.List(ctx, listAllFilter(fx))
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestCreateSlotRejectsOverlap(t *testing.T) {
	fx := newBookingFixture(t)
	ctx := context.Background()
	start := testSlotStart()

	_, err := fx.schedule.CreateSlot(ctx, testAdminTelegramID, start, start.Add(time.Hour), "")
	require.NoError(t, err)

	// Пересечение в середине существующего слота
	_, err = fx.schedule.CreateSlot(ctx, testAdminTelegramID, start.Add(30*time.Minute), start.Add(90*time.Minute), "")
	require.ErrorIs(t, err, model.ErrOverlap)

	// Встык - не пересечение
	_, err = fx.schedule.CreateSlot(ctx, testAdminTelegramID, start.Add(time.Hour), start.Add(2*time.Hour), "")
	require.NoError(t, err)

	slots, err := fx.store.List(ctx, listAllFilter(fx))
	require.NoError(t, err)
	assert.Len(t, slots, 2)
}

func TestDeleteSlotNotifiesRequester(t *testing.T) {
	fx := newBookingFixture(t)
	ctx := context.Background()
	slot := fx.createSlot(t, testSlotStart())

	t.Run("free slot deleted silently", func(t *testing.T) {
		intents, err := fx.schedule.DeleteSlot(ctx, testAdminTelegramID, slot.ID)
		require.NoError(t, err)
		assert.Empty(t, intents)
	})

	slot = fx.createSlot(t, testSlotStart().Add(24*time.Hour))
	_, _, err := fx.booking.Apply(ctx, testStudentTelegramID, slot.ID, model.ActionRequest)
	require.NoError(t, err)

	t.Run("requested slot notifies requester", func(t *testing.T) {
		intents, err := fx.schedule.DeleteSlot(ctx, testAdminTelegramID, slot.ID)
		require.NoError(t, err)
		require.Len(t, intents, 1)
		assert.Equal(t, testStudentTelegramID, intents[0].RecipientID)
		assert.Equal(t, model.NotifySlotDeleted, intents[0].Kind)
	})

	t.Run("slot is gone", func(t *testing.T) {
		_, err := fx.schedule.GetSlot(ctx, slot.ID)
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("not admin", func(t *testing.T) {
		_, err := fx.schedule.DeleteSlot(ctx, testStudentTelegramID, 1)
		require.ErrorIs(t, err, model.ErrForbidden)
	})
}

func TestFreeDatesReflectsState(t *testing.T) {
	fx := newBookingFixture(t)
	ctx := context.Background()

	day1 := time.Date(2025, 4, 7, 15, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 4, 8, 10, 0, 0, 0, time.UTC)

	slot1 := fx.createSlot(t, day1)
	fx.createSlot(t, day2)

	from := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 4, 30, 23, 59, 59, 0, time.UTC)

	dates, err := fx.schedule.FreeDates(ctx, from, to)
	require.NoError(t, err)
	require.Len(t, dates, 2)

	// Единственный слот дня заняли - дата пропадает из календаря
	_, _, err = fx.booking.Apply(ctx, testStudentTelegramID, slot1.ID, model.ActionRequest)
	require.NoError(t, err)

	dates, err = fx.schedule.FreeDates(ctx, from, to)
	require.NoError(t, err)
	require.Len(t, dates, 1)
	assert.Equal(t, 8, dates[0].Day())
}

func TestFreeSlotsOnDate(t *testing.T) {
	fx := newBookingFixture(t)
	ctx := context.Background()

	day := time.Date(2025, 4, 7, 0, 0, 0, 0, time.UTC)
	slot1 := fx.createSlot(t, day.Add(10*time.Hour))
	fx.createSlot(t, day.Add(15*time.Hour))
	fx.createSlot(t, day.AddDate(0, 0, 1).Add(10*time.Hour))

	_, _, err := fx.booking.Apply(ctx, testStudentTelegramID, slot1.ID, model.ActionRequest)
	require.NoError(t, err)

	free, err := fx.schedule.FreeSlotsOnDate(ctx, day)
	require.NoError(t, err)
	require.Len(t, free, 1)
	assert.Equal(t, 15, free[0].StartTime.Hour())
}

func TestStudentSlots(t *testing.T) {
	fx := newBookingFixture(t)
	ctx := context.Background()

	slot1 := fx.createSlot(t, testSlotStart())
	slot2 := fx.createSlot(t, testSlotStart().Add(24*time.Hour))
	fx.createSlot(t, testSlotStart().Add(48*time.Hour))

	_, _, err := fx.booking.Apply(ctx, testStudentTelegramID, slot1.ID, model.ActionRequest)
	require.NoError(t, err)
	_, _, err = fx.booking.Apply(ctx, testStudentTelegramID, slot2.ID, model.ActionRequest)
	require.NoError(t, err)
	_, _, err = fx.booking.Apply(ctx, testAdminTelegramID, slot2.ID, model.ActionApprove)
	require.NoError(t, err)

	lessons, err := fx.schedule.StudentSlots(ctx, fx.student.ID)
	require.NoError(t, err)
	require.Len(t, lessons, 2)
	assert.Equal(t, model.SlotStateRequested, lessons[0].State)
	assert.Equal(t, model.SlotStateConfirmed, lessons[1].State)

	lessons, err = fx.schedule.StudentSlots(ctx, fx.other.ID)
	require.NoError(t, err)
	assert.Empty(t, lessons)
}

// Полный сценарий: создание, заявка, подтверждение, отмена, повторная заявка
func TestBookingLifecycleScenario(t *testing.T) {
	fx := newBookingFixture(t)
	ctx := context.Background()

	slot, err := fx.schedule.CreateSlot(ctx, testAdminTelegramID, testSlotStart(), testSlotStart().Add(time.Hour), "Гитара")
	require.NoError(t, err)
	assert.True(t, slot.IsFree())

	_, _, err = fx.booking.Apply(ctx, testStudentTelegramID, slot.ID, model.ActionRequest)
	require.NoError(t, err)

	// Второй студент опоздал
	_, _, err = fx.booking.Apply(ctx, testOtherTelegramID, slot.ID, model.ActionRequest)
	require.ErrorIs(t, err, model.ErrAlreadyTaken)

	_, _, err = fx.booking.Apply(ctx, testAdminTelegramID, slot.ID, model.ActionApprove)
	require.NoError(t, err)

	updated, _, err := fx.booking.Apply(ctx, testAdminTelegramID, slot.ID, model.ActionCancelByAdmin)
	require.NoError(t, err)
	assert.True(t, updated.IsFree())

	// После отмены слот снова доступен второму студенту
	updated, _, err = fx.booking.Apply(ctx, testOtherTelegramID, slot.ID, model.ActionRequest)
	require.NoError(t, err)
	assert.True(t, updated.IsRequested())
	require.NotNil(t, updated.Requester)
	assert.Equal(t, "petya", updated.Requester.Username)
}

func listAllFilter(fx *bookingFixture) repository.SlotFilter {
	return repository.SlotFilter{OwnerID: fx.admin.ID}
}
