package store

import (
	"context"
	"sync"
)

// Memory is a process-local Persistence. Values do not survive restarts.
type Memory struct {
	mu    sync.Mutex
	slots map[Slot][]byte
	subs  []chan Event
}

// NewMemory returns an empty in-memory Persistence.
func NewMemory() *Memory {
	return &Memory{slots: make(map[Slot][]byte)}
}

func (m *Memory) Get(slot Slot) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.slots[slot]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), val...), nil
}

func (m *Memory) Set(slot Slot, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[slot] = append([]byte(nil), value...)
	for _, ch := range m.subs {
		select {
		case ch <- Event{Type: EventSlotChanged, Slot: slot}:
		default:
		}
	}
	return nil
}

func (m *Memory) Has(slot Slot) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.slots[slot]
	return ok
}

// Watch emits an event for every Set until ctx is cancelled.
func (m *Memory) Watch(ctx context.Context) (<-chan Event, error) {
	ch := make(chan Event, 64)
	m.mu.Lock()
	m.subs = append(m.subs, ch)
	m.mu.Unlock()

	go func() {
		<-ctx.Done()
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, sub := range m.subs {
			if sub == ch {
				m.subs = append(m.subs[:i], m.subs[i+1:]...)
				break
			}
		}
		close(ch)
	}()
	return ch, nil
}
