// Package mailbox provides an unbounded in-process queue used for the event
// and action channels. Senders never block and nothing is ever dropped; the
// cost is memory proportional to the backlog, which is acceptable for an
// interactive UI where the single consumer drains continuously.
package mailbox

import "sync"

// Mailbox is an unbounded many-producer/single-consumer FIFO queue.
//
// Values enqueued by Send are delivered on Out in enqueue order. After Close,
// Send reports failure and Out is closed once the backlog has been drained.
type Mailbox[T any] struct {
	mu     sync.Mutex
	queue  []T
	closed bool

	wake chan struct{}
	out  chan T
}

// New creates a mailbox and starts its delivery goroutine.
func New[T any]() *Mailbox[T] {
	m := &Mailbox[T]{
		wake: make(chan struct{}, 1),
		out:  make(chan T),
	}
	go m.pump()
	return m
}

// Send enqueues a value without blocking. It reports false when the mailbox
// has been closed, which producers must treat as unrecoverable for the
// session.
func (m *Mailbox[T]) Send(v T) bool {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return false
	}
	m.queue = append(m.queue, v)
	m.mu.Unlock()

	select {
	case m.wake <- struct{}{}:
	default:
	}
	return true
}

// Out returns the single-consumer delivery channel. It is closed after Close
// once every enqueued value has been delivered.
func (m *Mailbox[T]) Out() <-chan T {
	return m.out
}

// Len reports the current backlog size.
func (m *Mailbox[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

// Close marks the mailbox closed. Subsequent Send calls fail; the delivery
// channel is closed after the remaining backlog drains.
func (m *Mailbox[T]) Close() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()

	select {
	case m.wake <- struct{}{}:
	default:
	}
}

func (m *Mailbox[T]) pump() {
	for {
		m.mu.Lock()
		if len(m.queue) == 0 {
			if m.closed {
				m.mu.Unlock()
				close(m.out)
				return
			}
			m.mu.Unlock()
			<-m.wake
			continue
		}
		v := m.queue[0]
		m.queue = m.queue[1:]
		m.mu.Unlock()

		m.out <- v
	}
}
