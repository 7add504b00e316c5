package telegram

// KeyboardBuilder collects inline buttons and lays them out into rows.
type KeyboardBuilder struct {
	buttons []InlineKeyboardButton
	rows    [][]InlineKeyboardButton
}

func NewKeyboardBuilder() *KeyboardBuilder {
	return &KeyboardBuilder{}
}

func (b *KeyboardBuilder) Button(text, callbackData string) *KeyboardBuilder {
	b.buttons = append(b.buttons, InlineKeyboardButton{Text: text, CallbackData: callbackData})
	return b
}

// Row flushes pending buttons into a single dedicated row.
func (b *KeyboardBuilder) Row() *KeyboardBuilder {
	if len(b.buttons) > 0 {
		b.rows = append(b.rows, b.buttons)
		b.buttons = nil
	}
	return b
}

// Adjust flushes pending buttons into rows of at most rowWidth buttons.
func (b *KeyboardBuilder) Adjust(rowWidth int) *KeyboardBuilder {
	if rowWidth < 1 {
		rowWidth = 1
	}
	for len(b.buttons) > 0 {
		n := rowWidth
		if n > len(b.buttons) {
			n = len(b.buttons)
		}
		b.rows = append(b.rows, b.buttons[:n])
		b.buttons = b.buttons[n:]
	}
	return b
}

func (b *KeyboardBuilder) Markup() *InlineKeyboardMarkup {
	b.Row()
	return &InlineKeyboardMarkup{InlineKeyboard: b.rows}
}
