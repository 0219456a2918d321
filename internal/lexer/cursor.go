package lexer

import (
	"tracelet/internal/source"
)

// Cursor is a byte-offset walker over one file's content.
type Cursor struct {
	file *source.File
	off  uint32
}

func NewCursor(file *source.File) Cursor {
	return Cursor{file: file}
}

func (c *Cursor) EOF() bool {
	return int(c.off) >= len(c.file.Content)
}

// Peek returns the current byte, or 0 at EOF.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.file.Content[c.off]
}

// PeekAt returns the byte k positions ahead, or 0 past EOF.
func (c *Cursor) PeekAt(k uint32) byte {
	if int(c.off+k) >= len(c.file.Content) {
		return 0
	}
	return c.file.Content[c.off+k]
}

func (c *Cursor) Advance() {
	if !c.EOF() {
		c.off++
	}
}

func (c *Cursor) Offset() uint32 {
	return c.off
}

// Slice returns the source text in [start, end).
func (c *Cursor) Slice(start, end uint32) string {
	return string(c.file.Content[start:end])
}

func (c *Cursor) span(start, end uint32) source.Span {
	return source.Span{File: c.file.ID, Start: start, End: end}
}
