// Package sse fans run events out to Server-Sent Events subscribers.
package sse

import "sync"

// Hub routes messages by run ID.
type Hub struct {
	mu    sync.Mutex
	conns map[string][]chan string
	size  int
}

// NewHub returns a hub whose subscriber channels buffer size messages.
func NewHub(size int) *Hub {
	if size <= 0 {
		size = 16
	}
	return &Hub{conns: map[string][]chan string{}, size: size}
}

// Subscribe registers a listener for id and returns its channel and an
// unsubscribe function.
func (h *Hub) Subscribe(id string) (<-chan string, func()) {
	ch := make(chan string, h.size)

	h.mu.Lock()
	h.conns[id] = append(h.conns[id], ch)
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		list := h.conns[id]
		for i, c := range list {
			if c == ch {
				h.conns[id] = append(list[:i:i], list[i+1:]...)
				break
			}
		}
		if len(h.conns[id]) == 0 {
			delete(h.conns, id)
		}
	}

	return ch, cancel
}

// Publish sends msg to every subscriber of id. A subscriber whose buffer
// is full misses the message.
func (h *Hub) Publish(id, msg string) {
	h.mu.Lock()
	list := append([]chan string(nil), h.conns[id]...)
	h.mu.Unlock()

	for _, ch := range list {
		select {
		case ch <- msg:
		default:
		}
	}
}

// Subscribers returns the number of listeners on id.
func (h *Hub) Subscribers(id string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns[id])
}
