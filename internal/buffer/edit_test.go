package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsert(t *testing.T) {
	b, _ := newTestBuffer(t, "hello")
	b.SetCursor(5)

	b.Insert(", world")
	l, _ := b.Focus()
	assert.Equal(t, "hello, world", l.Text())
	assert.Equal(t, 12, l.Cursor())

	b.Insert("\nnext\nlast")
	b.MaterializeAll()
	assert.Equal(t, []string{"hello, world", "next", "last"}, texts(b))
	l, pos := b.Focus()
	assert.Equal(t, 2, pos)
	assert.Equal(t, 4, l.Cursor())
}

func TestInsertTab(t *testing.T) {
	b, _ := newTestBuffer(t, "ab")
	b.SetCursor(2)
	b.InsertTab()
	l, _ := b.Focus()
	assert.Equal(t, "ab  ", l.Text())
	assert.Equal(t, 4, l.Cursor())
}

func TestInsertTypedTabUsesCursorColumn(t *testing.T) {
	b, _ := newTestBuffer(t, "ab")
	b.SetCursor(2)
	b.Insert("\tx\ty")
	l, _ := b.Focus()
	assert.Equal(t, "ab  x   y", l.Text())
	assert.Equal(t, 9, l.Cursor())
}

func TestBackspaceAndDelete(t *testing.T) {
	b, _ := newTestBuffer(t, "héllo\nworld")
	b.SetCursor(2)

	b.Backspace()
	l, _ := b.Focus()
	assert.Equal(t, "hllo", l.Text())
	assert.Equal(t, 1, l.Cursor())

	b.DeleteForward()
	assert.Equal(t, "hlo", l.Text())

	b.End()
	b.DeleteForward()
	assert.Equal(t, "hloworld", l.Text())

	b.Goto(1, 1)
	b.Backspace()
	assert.Equal(t, "hloworld", l.Text(), "backspace at the top is a no-op")
}

func TestBackspaceJoinsLines(t *testing.T) {
	b, _ := newTestBuffer(t, "foo\nbar")
	b.Goto(2, 1)
	b.Backspace()

	l, pos := b.Focus()
	assert.Equal(t, 0, pos)
	assert.Equal(t, "foobar", l.Text())
	assert.Equal(t, 3, l.Cursor())
}

func TestMoveLeftRightWrap(t *testing.T) {
	b, _ := newTestBuffer(t, "ab\ncd")
	b.End()

	b.MoveRight()
	line, col := b.Coords()
	assert.Equal(t, [2]int{2, 1}, [2]int{line, col})

	b.MoveLeft()
	line, col = b.Coords()
	assert.Equal(t, [2]int{1, 3}, [2]int{line, col})
}

func TestMoveUpDownKeepsColumn(t *testing.T) {
	b, _ := newTestBuffer(t, "long line\nab\nanother")
	b.SetCursor(6)

	b.MoveDown()
	line, col := b.Coords()
	assert.Equal(t, [2]int{2, 3}, [2]int{line, col})

	b.MoveUp()
	line, col = b.Coords()
	assert.Equal(t, [2]int{1, 3}, [2]int{line, col})
}

func TestSmartHome(t *testing.T) {
	b, _ := newTestBuffer(t, "    indented")
	b.End()

	b.Home()
	l, _ := b.Focus()
	assert.Equal(t, 4, l.Cursor())

	b.Home()
	assert.Equal(t, 0, l.Cursor())

	b.Home()
	assert.Equal(t, 4, l.Cursor())
}

func TestWordMotion(t *testing.T) {
	b, _ := newTestBuffer(t, "foo bar-baz")
	l, _ := b.Focus()

	b.WordRight(false)
	assert.Equal(t, 3, l.Cursor())
	b.WordRight(false)
	assert.Equal(t, 7, l.Cursor())
	b.WordRight(true)
	assert.Equal(t, 8, l.Cursor())

	b.End()
	b.WordLeft(false)
	assert.Equal(t, 8, l.Cursor())
	b.WordLeft(false)
	assert.Equal(t, 4, l.Cursor())
	b.WordLeft(true)
	assert.Equal(t, 3, l.Cursor())

	b.SetCursor(0)
	b.WordLeft(false)
	assert.Equal(t, 0, l.Cursor(), "no word before the cursor")
}
