package realtime

import (
	"sync"
)

// Dispatcher keeps the table handlers of a Listener.
type Dispatcher struct {
	mu       sync.RWMutex
	next     uint64
	handlers map[string]map[uint64]Handler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[string]map[uint64]Handler)}
}

func (d *Dispatcher) Subscribe(table string, handler Handler) func() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.next++
	id := d.next

	if d.handlers[table] == nil {
		d.handlers[table] = make(map[uint64]Handler)
	}

	d.handlers[table][id] = handler

	var once sync.Once

	return func() {
		once.Do(func() {
			d.mu.Lock()
			defer d.mu.Unlock()

			delete(d.handlers[table], id)

			if len(d.handlers[table]) == 0 {
				delete(d.handlers, table)
			}
		})
	}
}

// Dispatch runs the handlers of the event's table. Handlers are called outside
// the lock so they may subscribe or unsubscribe.
func (d *Dispatcher) Dispatch(event Event) {
	for _, handler := range d.snapshot(event.Table) {
		handler(event)
	}
}

// Broadcast reports a change of the given kind on every subscribed table.
func (d *Dispatcher) Broadcast(kind string) {
	d.mu.RLock()
	tables := make([]string, 0, len(d.handlers))
	for table := range d.handlers {
		tables = append(tables, table)
	}
	d.mu.RUnlock()

	for _, table := range tables {
		d.Dispatch(Event{Event: kind, Table: table})
	}
}

// Tables returns how many tables currently have handlers.
func (d *Dispatcher) Tables() int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return len(d.handlers)
}

func (d *Dispatcher) snapshot(table string) []Handler {
	d.mu.RLock()
	defer d.mu.RUnlock()

	handlers := make([]Handler, 0, len(d.handlers[table]))
	for _, handler := range d.handlers[table] {
		handlers = append(handlers, handler)
	}

	return handlers
}
