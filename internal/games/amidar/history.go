package amidar

import (
	"encoding/json"
	"fmt"
)

// History is a fixed-capacity deque of visited junction ids. The front is
// the most recent visit; pushing onto a full history evicts the back.
type History struct {
	buf  []uint32
	head int
	n    int
}

// NewHistory creates an empty history holding at most capacity entries.
func NewHistory(capacity int) *History {
	return &History{buf: make([]uint32, max(capacity, 0))}
}

// Cap returns the capacity.
func (h *History) Cap() int {
	return len(h.buf)
}

// Len returns the number of stored entries.
func (h *History) Len() int {
	return h.n
}

// Empty reports whether the history holds nothing.
func (h *History) Empty() bool {
	return h.n == 0
}

// PushFront records a visit, evicting the oldest entry when full.
func (h *History) PushFront(id uint32) {
	if len(h.buf) == 0 {
		return
	}
	h.head = (h.head - 1 + len(h.buf)) % len(h.buf)
	h.buf[h.head] = id
	if h.n < len(h.buf) {
		h.n++
	}
}

// Front returns the most recent entry.
func (h *History) Front() (uint32, bool) {
	if h.n == 0 {
		return 0, false
	}
	return h.buf[h.head], true
}

// At returns the i-th entry counting from the front.
func (h *History) At(i int) uint32 {
	if i < 0 || i >= h.n {
		panic(fmt.Sprintf("amidar: history index %d out of range [0,%d)", i, h.n))
	}
	return h.buf[(h.head+i)%len(h.buf)]
}

// PopBack removes the oldest entry.
func (h *History) PopBack() (uint32, bool) {
	if h.n == 0 {
		return 0, false
	}
	id := h.At(h.n - 1)
	h.n--
	return id, true
}

// Clear removes every entry.
func (h *History) Clear() {
	h.head = 0
	h.n = 0
}

// Items returns the entries front to back.
func (h *History) Items() []uint32 {
	out := make([]uint32, h.n)
	for i := range out {
		out[i] = h.At(i)
	}
	return out
}

// Resize changes the capacity, keeping the most recent entries.
func (h *History) Resize(capacity int) {
	items := h.Items()
	h.buf = make([]uint32, max(capacity, 0))
	h.Clear()
	for i := min(len(items), len(h.buf)) - 1; i >= 0; i-- {
		h.PushFront(items[i])
	}
}

// Clone returns an independent copy.
func (h *History) Clone() *History {
	c := &History{buf: make([]uint32, len(h.buf)), head: h.head, n: h.n}
	copy(c.buf, h.buf)
	return c
}

// MarshalJSON encodes the entries front to back.
func (h *History) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.Items())
}

// UnmarshalJSON decodes entries front to back. The capacity grows to fit
// them; owners restore the configured limit with Resize.
func (h *History) UnmarshalJSON(data []byte) error {
	var items []uint32
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	h.buf = make([]uint32, max(len(items), len(h.buf)))
	h.Clear()
	for i := len(items) - 1; i >= 0; i-- {
		h.PushFront(items[i])
	}
	return nil
}
