package model

type NotificationKind string

const (
	NotifyRequested          NotificationKind = "requested"            // админу: новая заявка
	NotifyApproved           NotificationKind = "approved"             // студенту: заявка одобрена
	NotifyRejected           NotificationKind = "rejected"             // студенту: заявка отклонена
	NotifyCanceledByAdmin    NotificationKind = "canceled_by_admin"    // студенту: занятие отменено админом
	NotifyCanceledByStudent  NotificationKind = "canceled_by_student"  // админу: студент отменил занятие
	NotifyWithdrawn          NotificationKind = "withdrawn"            // админу: студент отозвал заявку
	NotifySlotDeleted        NotificationKind = "slot_deleted"         // студенту: слот удалён
)

// NotificationIntent описывает кого и о чём нужно уведомить после перехода.
// Доставка - забота транспортного слоя и она best-effort: неудачная отправка
// не откатывает уже сохранённое состояние.
type NotificationIntent struct {
	RecipientID int64            `json:"recipient_id"` // telegram id получателя
	Kind        NotificationKind `json:"kind"`
	Slot        TimeSlot         `json:"slot"` // снимок слота на момент перехода
}
