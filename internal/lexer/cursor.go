package lexer

import (
	"unicode/utf8"
)

// Cursor walks a single line rune by rune and tracks the 1-based column.
type Cursor struct {
	Text string
	Off  int    // байтовое смещение текущей руны
	Col  uint32 // колонка текущей руны, считается в символах
}

// NewCursor creates a cursor positioned on the first character of text.
func NewCursor(text string) Cursor {
	return Cursor{Text: text, Off: 0, Col: 1}
}

// EOL проверяет, достигнут ли конец строки
func (c *Cursor) EOL() bool {
	return c.Off >= len(c.Text)
}

// Peek возвращает текущую руну и её размер, не сдвигая курсор; (0, 0) в конце строки.
func (c *Cursor) Peek() (rune, int) {
	if c.EOL() {
		return 0, 0
	}
	b := c.Text[c.Off]
	if b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRuneInString(c.Text[c.Off:])
}

// Bump сдвигает курсор на одну руну и возвращает её.
// Невалидный UTF-8 байт читается как utf8.RuneError и занимает одну колонку.
func (c *Cursor) Bump() rune {
	r, sz := c.Peek()
	if sz == 0 {
		return 0
	}
	c.Off += sz
	c.Col++
	return r
}

// Mark это метка позиции, чтобы восстанавливать лексему и координату
type Mark struct {
	Off int
	Col uint32
}

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark{Off: c.Off, Col: c.Col}
}
