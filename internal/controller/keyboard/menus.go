package keyboard

import (
	"fmt"

	"github.com/go-telegram/bot/models"
	"github.com/grishdev/slotbot/internal/controller/formatting"
	"github.com/grishdev/slotbot/internal/model"
)

// AdminMenu - главное меню администратора
func AdminMenu() *models.InlineKeyboardMarkup {
	return NewBuilder().
		Row(Button("📅 Добавить расписание", "add_schedule")).
		Row(Button("🗓️ Посмотреть расписание", "view_schedule")).
		Row(Button("🖼 Неделя картинкой", "week_view")).
		Build()
}

// UserMenu - главное меню студента
func UserMenu() *models.InlineKeyboardMarkup {
	return NewBuilder().
		Row(Button("📅 Записаться", "sign_up")).
		Row(Button("🗓️ Мои занятия", "my_lessons")).
		Row(Button("ℹ️ О нас", "about_us")).
		Build()
}

// AdminSlotList - список слотов админа, по кнопке на слот
func AdminSlotList(slots []*model.TimeSlot) *models.InlineKeyboardMarkup {
	b := NewBuilder()
	for _, slot := range slots {
		label := fmt.Sprintf("%s %s", formatting.StateEmoji(slot.State), formatting.FormatSlotRange(slot))
		b.Row(Button(label, fmt.Sprintf("admin_slot:%d", slot.ID)))
	}
	b.Row(BackToMainButton())
	return b.Build()
}

// AdminSlotActions - действия над слотом в зависимости от его состояния
func AdminSlotActions(slot *model.TimeSlot) *models.InlineKeyboardMarkup {
	b := NewBuilder()
	switch slot.State {
	case model.SlotStateRequested:
		b.Row(
			Button("✅ Принять", fmt.Sprintf("approve_slot:%d", slot.ID)),
			Button("❌ Отклонить", fmt.Sprintf("reject_slot:%d", slot.ID)),
		)
	case model.SlotStateConfirmed:
		b.Row(Button("❌ Отменить запись", fmt.Sprintf("cancel_slot:%d", slot.ID)))
	}
	b.Row(Button("🗑 Удалить слот", fmt.Sprintf("delete_slot:%d", slot.ID)))
	b.Row(BackButton("view_schedule"))
	return b.Build()
}

// ApproveRejectSlot - кнопки принятия заявки в уведомлении админу
func ApproveRejectSlot(slotID int64) *models.InlineKeyboardMarkup {
	return NewBuilder().
		Row(
			Button("✅ Принять", fmt.Sprintf("approve_slot:%d", slotID)),
			Button("❌ Отклонить", fmt.Sprintf("reject_slot:%d", slotID)),
		).
		Build()
}

// FreeSlotsOnDate - свободные слоты дня для записи студента
func FreeSlotsOnDate(slots []*model.TimeSlot) *models.InlineKeyboardMarkup {
	b := NewBuilder()
	for _, slot := range slots {
		b.Row(Button(formatting.FormatSlotRange(slot), fmt.Sprintf("request_slot:%d", slot.ID)))
	}
	b.Row(BackButton("sign_up"))
	return b.Build()
}

// StudentLessons - занятия студента
func StudentLessons(slots []*model.TimeSlot) *models.InlineKeyboardMarkup {
	b := NewBuilder()
	for _, slot := range slots {
		label := fmt.Sprintf("%s %s", formatting.StateEmoji(slot.State), formatting.FormatSlotRange(slot))
		b.Row(Button(label, fmt.Sprintf("lesson_info:%d", slot.ID)))
	}
	b.Row(BackToMainButton())
	return b.Build()
}

// StudentLessonActions - действия студента над своим занятием
func StudentLessonActions(slot *model.TimeSlot) *models.InlineKeyboardMarkup {
	b := NewBuilder()
	switch slot.State {
	case model.SlotStateRequested:
		b.Row(Button("↩️ Отозвать заявку", fmt.Sprintf("withdraw_slot:%d", slot.ID)))
	case model.SlotStateConfirmed:
		b.Row(Button("❌ Отменить запись", fmt.Sprintf("cancel_lesson:%d", slot.ID)))
	}
	b.Row(BackButton("my_lessons"))
	return b.Build()
}
