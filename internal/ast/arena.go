package ast

// Arena is a flat append-only store; IDs are 1-based so that the zero
// value of an ID type means "absent".
type Arena[T any] struct {
	data []T
}

// NewArena allocates an arena whose backing slice has capacity capHint.
func NewArena[T any](capHint uint) *Arena[T] {
	return &Arena[T]{
		data: make([]T, 0, capHint),
	}
}

// Allocate appends value and returns its 1-based index.
func (a *Arena[T]) Allocate(value T) uint32 {
	a.data = append(a.data, value)
	return uint32(len(a.data))
}

// Get returns a pointer into the arena, or nil for index 0.
func (a *Arena[T]) Get(index uint32) *T {
	if index == 0 {
		return nil
	}
	return &a.data[index-1]
}

// Slice exposes the backing store. Treat it as read-only.
func (a *Arena[T]) Slice() []T {
	return a.data
}

// SetSlice replaces the backing store (used when decoding a bundle).
func (a *Arena[T]) SetSlice(data []T) {
	a.data = data
}

func (a *Arena[T]) Len() uint32 {
	return uint32(len(a.data))
}
