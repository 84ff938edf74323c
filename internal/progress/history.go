package progress

// History is a fixed-capacity ring of the most recent items. Push inserts at
// the front; once full, the oldest item is dropped.
type History[T any] struct {
	buf  []T
	head int // index of the newest item
	size int
}

func NewHistory[T any](capacity int) *History[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &History[T]{buf: make([]T, capacity), head: -1}
}

func (h *History[T]) Cap() int { return len(h.buf) }
func (h *History[T]) Len() int { return h.size }

func (h *History[T]) Push(v T) {
	h.head = (h.head + 1) % len(h.buf)
	h.buf[h.head] = v
	if h.size < len(h.buf) {
		h.size++
	}
}

// Each visits items newest first until fn returns false.
func (h *History[T]) Each(fn func(T) bool) {
	for i := 0; i < h.size; i++ {
		idx := (h.head - i + len(h.buf)) % len(h.buf)
		if !fn(h.buf[idx]) {
			return
		}
	}
}

// Items returns a newest-first copy.
func (h *History[T]) Items() []T {
	out := make([]T, 0, h.size)
	h.Each(func(v T) bool {
		out = append(out, v)
		return true
	})
	return out
}
