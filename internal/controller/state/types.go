package state

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

const (
	StateNone UserState = "" // Нет активного состояния

	// Админ выбрал дату в календаре и вводит время слота текстом
	StateWaitingForTime UserState = "waiting_for_time"
)

// Ключи временных данных диалога
const (
	DataSelectedDate = "selected_date" // дата в формате 2006-01-02
)
