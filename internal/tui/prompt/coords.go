package prompt

import (
	"strings"
	"unicode/utf8"
)

// OffsetFromRowCol converts a textarea position (line, rune column) into a
// byte offset into text. Out of range positions are clamped.
func OffsetFromRowCol(text string, row, col int) int {
	offset := 0
	lines := strings.Split(text, "\n")
	if row >= len(lines) {
		row = len(lines) - 1
	}
	for i := 0; i < row; i++ {
		offset += len(lines[i]) + 1
	}
	if row < 0 {
		return 0
	}
	line := lines[row]
	for col > 0 && len(line) > 0 {
		_, size := utf8.DecodeRuneInString(line)
		offset += size
		line = line[size:]
		col--
	}
	return offset
}

// RowColFromOffset is the inverse of OffsetFromRowCol.
func RowColFromOffset(text string, offset int) (row, col int) {
	if offset > len(text) {
		offset = len(text)
	}
	if offset < 0 {
		offset = 0
	}
	before := text[:offset]
	row = strings.Count(before, "\n")
	if i := strings.LastIndexByte(before, '\n'); i >= 0 {
		before = before[i+1:]
	}
	return row, utf8.RuneCountInString(before)
}
