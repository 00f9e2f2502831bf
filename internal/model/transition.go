package model

// SlotAction - действие над слотом
type SlotAction string

const (
	ActionRequest         SlotAction = "request"
	ActionApprove         SlotAction = "approve"
	ActionReject          SlotAction = "reject"
	ActionWithdraw        SlotAction = "withdraw"
	ActionCancelByAdmin   SlotAction = "cancel_by_admin"
	ActionCancelByStudent SlotAction = "cancel_by_student"
)

// Actor - участник, выполняющий действие. Роль определяется координатором
// по сконфигурированному ADMIN_ID, а не полем в базе.
type Actor struct {
	UserID  int64
	IsAdmin bool
}

// NoticeRecipient - роль получателя уведомления
type NoticeRecipient string

const (
	NoticeToRequester NoticeRecipient = "requester"
	NoticeToAdmin     NoticeRecipient = "admin"
)

type Notice struct {
	To   NoticeRecipient
	Kind NotificationKind
}

// Effect - результат перехода: новое состояние и кого уведомить.
// RequesterID относится к состоянию после перехода.
type Effect struct {
	NextState   SlotState
	RequesterID *int64
	Notices     []Notice
}

// Transition - чистая функция переходов слота.
// Не меняет slot, не ходит в базу; все инварианты жизненного цикла живут здесь.
//
//	Free      --Request(студент)-->        Requested
//	Requested --Approve(админ)-->          Confirmed
//	Requested --Reject(админ)-->           Free
//	Requested --Withdraw(заявитель)-->     Free
//	Confirmed --CancelByAdmin(админ)-->    Free
//	Confirmed --CancelByStudent(заявитель)--> Free
func Transition(slot *TimeSlot, actor Actor, action SlotAction) (Effect, error) {
	switch action {
	case ActionRequest:
		if actor.IsAdmin {
			return Effect{}, ErrForbidden
		}
		if !slot.IsFree() {
			return Effect{}, ErrAlreadyTaken
		}
		requesterID := actor.UserID
		return Effect{
			NextState:   SlotStateRequested,
			RequesterID: &requesterID,
			Notices:     []Notice{{To: NoticeToAdmin, Kind: NotifyRequested}},
		}, nil

	case ActionApprove:
		if !actor.IsAdmin {
			return Effect{}, ErrForbidden
		}
		if !slot.IsRequested() || slot.RequesterID == nil {
			return Effect{}, ErrInvalidState
		}
		return Effect{
			NextState:   SlotStateConfirmed,
			RequesterID: slot.RequesterID,
			Notices:     []Notice{{To: NoticeToRequester, Kind: NotifyApproved}},
		}, nil

	case ActionReject:
		if !actor.IsAdmin {
			return Effect{}, ErrForbidden
		}
		if !slot.IsRequested() || slot.RequesterID == nil {
			return Effect{}, ErrInvalidState
		}
		return Effect{
			NextState: SlotStateFree,
			Notices:   []Notice{{To: NoticeToRequester, Kind: NotifyRejected}},
		}, nil

	case ActionWithdraw:
		if actor.IsAdmin {
			return Effect{}, ErrForbidden
		}
		if !slot.IsRequested() {
			return Effect{}, ErrInvalidState
		}
		if !slot.RequestedBy(actor.UserID) {
			return Effect{}, ErrNotOwner
		}
		return Effect{
			NextState: SlotStateFree,
			Notices:   []Notice{{To: NoticeToAdmin, Kind: NotifyWithdrawn}},
		}, nil

	case ActionCancelByAdmin:
		if !actor.IsAdmin {
			return Effect{}, ErrForbidden
		}
		if !slot.IsConfirmed() {
			return Effect{}, ErrInvalidState
		}
		return Effect{
			NextState: SlotStateFree,
			Notices:   []Notice{{To: NoticeToRequester, Kind: NotifyCanceledByAdmin}},
		}, nil

	case ActionCancelByStudent:
		if actor.IsAdmin {
			return Effect{}, ErrForbidden
		}
		if !slot.IsConfirmed() {
			return Effect{}, ErrInvalidState
		}
		if !slot.RequestedBy(actor.UserID) {
			return Effect{}, ErrNotOwner
		}
		return Effect{
			NextState: SlotStateFree,
			Notices:   []Notice{{To: NoticeToAdmin, Kind: NotifyCanceledByStudent}},
		}, nil

	default:
		return Effect{}, ErrInvalidState
	}
}
