package keyboard

import "github.com/go-telegram/bot/models"

// Builder упрощает создание inline клавиатур
type Builder struct {
	rows [][]models.InlineKeyboardButton
}

// NewBuilder создаёт новый builder клавиатуры
func NewBuilder() *Builder {
	return &Builder{
		rows: make([][]models.InlineKeyboardButton, 0),
	}
}

// Row добавляет новый ряд кнопок
func (b *Builder) Row(buttons ...models.InlineKeyboardButton) *Builder {
	if len(buttons) > 0 {
		b.rows = append(b.rows, buttons)
	}
	return b
}

// AddRows добавляет несколько рядов кнопок
func (b *Builder) AddRows(rows [][]models.InlineKeyboardButton) *Builder {
	b.rows = append(b.rows, rows...)
	return b
}

// Build создаёт финальную клавиатуру
func (b *Builder) Build() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: b.rows,
	}
}

// Button создаёт кнопку
func Button(text, callbackData string) models.InlineKeyboardButton {
	return models.InlineKeyboardButton{
		Text:         text,
		CallbackData: callbackData,
	}
}

// BackButton создаёт кнопку "Назад"
func BackButton(callbackData string) models.InlineKeyboardButton {
	return Button("↩️ Назад", callbackData)
}

// BackToMainButton создаёт кнопку "В главное меню"
func BackToMainButton() models.InlineKeyboardButton {
	return Button("🏠 В главное меню", "back_to_main")
}

// OkToMainRow создаёт ряд с кнопкой "Ок"
func OkToMainRow() []models.InlineKeyboardButton {
	return []models.InlineKeyboardButton{Button("👌 Ок", "back_to_main")}
}
