package model

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSlot(state SlotState, requesterID *int64) *TimeSlot {
	start := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	return &TimeSlot{
		ID:          1,
		OwnerID:     1,
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
		State:       state,
		RequesterID: requesterID,
	}
}

func int64Ptr(v int64) *int64 { return &v }

func TestTransitionTable(t *testing.T) {
	admin := Actor{UserID: 1, IsAdmin: true}
	student := Actor{UserID: 42, IsAdmin: false}
	otherStudent := Actor{UserID: 43, IsAdmin: false}

	tests := []struct {
		name        string
		slot        *TimeSlot
		actor       Actor
		action      SlotAction
		wantErr     error
		wantState   SlotState
		wantReqID   *int64
		wantNotices []Notice
	}{
		{
			name:        "student requests free slot",
			slot:        newSlot(SlotStateFree, nil),
			actor:       student,
			action:      ActionRequest,
			wantState:   SlotStateRequested,
			wantReqID:   int64Ptr(42),
			wantNotices: []Notice{{To: NoticeToAdmin, Kind: NotifyRequested}},
		},
		{
			name:    "admin cannot request own slot",
			slot:    newSlot(SlotStateFree, nil),
			actor:   admin,
			action:  ActionRequest,
			wantErr: ErrForbidden,
		},
		{
			name:    "request on requested slot rejected",
			slot:    newSlot(SlotStateRequested, int64Ptr(42)),
			actor:   otherStudent,
			action:  ActionRequest,
			wantErr: ErrAlreadyTaken,
		},
		{
			name:    "request on confirmed slot rejected",
			slot:    newSlot(SlotStateConfirmed, int64Ptr(42)),
			actor:   otherStudent,
			action:  ActionRequest,
			wantErr: ErrAlreadyTaken,
		},
		{
			name:        "admin approves requested slot",
			slot:        newSlot(SlotStateRequested, int64Ptr(42)),
			actor:       admin,
			action:      ActionApprove,
			wantState:   SlotStateConfirmed,
			wantReqID:   int64Ptr(42),
			wantNotices: []Notice{{To: NoticeToRequester, Kind: NotifyApproved}},
		},
		{
			name:    "student cannot approve",
			slot:    newSlot(SlotStateRequested, int64Ptr(42)),
			actor:   student,
			action:  ActionApprove,
			wantErr: ErrForbidden,
		},
		{
			name:    "approve free slot invalid",
			slot:    newSlot(SlotStateFree, nil),
			actor:   admin,
			action:  ActionApprove,
			wantErr: ErrInvalidState,
		},
		{
			name:    "approve confirmed slot invalid",
			slot:    newSlot(SlotStateConfirmed, int64Ptr(42)),
			actor:   admin,
			action:  ActionApprove,
			wantErr: ErrInvalidState,
		},
		{
			name:        "admin rejects requested slot",
			slot:        newSlot(SlotStateRequested, int64Ptr(42)),
			actor:       admin,
			action:      ActionReject,
			wantState:   SlotStateFree,
			wantReqID:   nil,
			wantNotices: []Notice{{To: NoticeToRequester, Kind: NotifyRejected}},
		},
		{
			name:    "student cannot reject",
			slot:    newSlot(SlotStateRequested, int64Ptr(42)),
			actor:   student,
			action:  ActionReject,
			wantErr: ErrForbidden,
		},
		{
			name:        "requester withdraws own request",
			slot:        newSlot(SlotStateRequested, int64Ptr(42)),
			actor:       student,
			action:      ActionWithdraw,
			wantState:   SlotStateFree,
			wantReqID:   nil,
			wantNotices: []Notice{{To: NoticeToAdmin, Kind: NotifyWithdrawn}},
		},
		{
			name:    "other student cannot withdraw foreign request",
			slot:    newSlot(SlotStateRequested, int64Ptr(42)),
			actor:   otherStudent,
			action:  ActionWithdraw,
			wantErr: ErrNotOwner,
		},
		{
			name:    "withdraw on free slot invalid",
			slot:    newSlot(SlotStateFree, nil),
			actor:   student,
			action:  ActionWithdraw,
			wantErr: ErrInvalidState,
		},
		{
			name:        "admin cancels confirmed lesson",
			slot:        newSlot(SlotStateConfirmed, int64Ptr(42)),
			actor:       admin,
			action:      ActionCancelByAdmin,
			wantState:   SlotStateFree,
			wantReqID:   nil,
			wantNotices: []Notice{{To: NoticeToRequester, Kind: NotifyCanceledByAdmin}},
		},
		{
			name:    "cancel by admin on requested slot invalid",
			slot:    newSlot(SlotStateRequested, int64Ptr(42)),
			actor:   admin,
			action:  ActionCancelByAdmin,
			wantErr: ErrInvalidState,
		},
		{
			name:        "student cancels own confirmed lesson",
			slot:        newSlot(SlotStateConfirmed, int64Ptr(42)),
			actor:       student,
			action:      ActionCancelByStudent,
			wantState:   SlotStateFree,
			wantReqID:   nil,
			wantNotices: []Notice{{To: NoticeToAdmin, Kind: NotifyCanceledByStudent}},
		},
		{
			name:    "other student cannot cancel foreign lesson",
			slot:    newSlot(SlotStateConfirmed, int64Ptr(42)),
			actor:   otherStudent,
			action:  ActionCancelByStudent,
			wantErr: ErrNotOwner,
		},
		{
			name:    "unknown action invalid",
			slot:    newSlot(SlotStateFree, nil),
			actor:   student,
			action:  SlotAction("explode"),
			wantErr: ErrInvalidState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			effect, err := Transition(tt.slot, tt.actor, tt.action)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantState, effect.NextState)
			assert.Equal(t, tt.wantNotices, effect.Notices)

			if tt.wantReqID == nil {
				assert.Nil(t, effect.RequesterID)
			} else {
				require.NotNil(t, effect.RequesterID)
				assert.Equal(t, *tt.wantReqID, *effect.RequesterID)
			}
		})
	}
}

// Transition не должна мутировать переданный слот
func TestTransitionDoesNotMutateSlot(t *testing.T) {
	slot := newSlot(SlotStateFree, nil)
	_, err := Transition(slot, Actor{UserID: 42}, ActionRequest)
	require.NoError(t, err)

	assert.Equal(t, SlotStateFree, slot.State)
	assert.Nil(t, slot.RequesterID)
}

// На любой последовательности допустимых переходов заявитель заполнен
// ровно тогда, когда слот не свободен
func TestTransitionRequesterInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	actors := []Actor{
		{UserID: 1, IsAdmin: true},
		{UserID: 42},
		{UserID: 43},
	}
	actions := []SlotAction{
		ActionRequest, ActionApprove, ActionReject,
		ActionWithdraw, ActionCancelByAdmin, ActionCancelByStudent,
	}

	slot := newSlot(SlotStateFree, nil)
	for i := 0; i < 500; i++ {
		actor := actors[rng.Intn(len(actors))]
		action := actions[rng.Intn(len(actions))]

		effect, err := Transition(slot, actor, action)
		if err != nil {
			continue
		}

		slot.State = effect.NextState
		slot.RequesterID = effect.RequesterID

		if slot.State == SlotStateFree {
			assert.Nil(t, slot.RequesterID, "free slot must have no requester")
		} else {
			assert.NotNil(t, slot.RequesterID, "taken slot must have a requester")
		}
	}
}
