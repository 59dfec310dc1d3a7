package realtime_test

import (
	"testing"

	"hotel/infras/realtime"

	"github.com/stretchr/testify/assert"
)

func TestDispatcher_Dispatch(t *testing.T) {
	dispatcher := realtime.NewDispatcher()

	var rooms, reservations []realtime.Event

	dispatcher.Subscribe("rooms", func(event realtime.Event) { rooms = append(rooms, event) })
	dispatcher.Subscribe("reservations", func(event realtime.Event) { reservations = append(reservations, event) })

	dispatcher.Dispatch(realtime.Event{Event: realtime.EventUpdate, Schema: "public", Table: "rooms"})
	dispatcher.Dispatch(realtime.Event{Event: realtime.EventInsert, Schema: "public", Table: "blogs"})

	assert.Equal(t, []realtime.Event{{Event: realtime.EventUpdate, Schema: "public", Table: "rooms"}}, rooms)
	assert.Empty(t, reservations)
}

func TestDispatcher_Unsubscribe(t *testing.T) {
	dispatcher := realtime.NewDispatcher()

	calls := 0
	unsubscribe := dispatcher.Subscribe("rooms", func(realtime.Event) { calls++ })
	other := dispatcher.Subscribe("rooms", func(realtime.Event) {})

	assert.Equal(t, 1, dispatcher.Tables())

	unsubscribe()
	unsubscribe()
	dispatcher.Dispatch(realtime.Event{Table: "rooms"})

	assert.Equal(t, 0, calls)
	assert.Equal(t, 1, dispatcher.Tables())

	other()

	assert.Equal(t, 0, dispatcher.Tables())
}

func TestDispatcher_Broadcast(t *testing.T) {
	dispatcher := realtime.NewDispatcher()

	seen := map[string]string{}
	for _, table := range []string{"rooms", "reservations"} {
		dispatcher.Subscribe(table, func(event realtime.Event) { seen[event.Table] = event.Event })
	}

	dispatcher.Broadcast(realtime.EventReconnect)

	assert.Equal(t, map[string]string{
		"rooms":        realtime.EventReconnect,
		"reservations": realtime.EventReconnect,
	}, seen)
}

func TestDispatcher_HandlerMayUnsubscribe(t *testing.T) {
	dispatcher := realtime.NewDispatcher()

	var unsubscribe func()
	calls := 0
	unsubscribe = dispatcher.Subscribe("rooms", func(realtime.Event) {
		calls++
		unsubscribe()
	})

	dispatcher.Dispatch(realtime.Event{Table: "rooms"})
	dispatcher.Dispatch(realtime.Event{Table: "rooms"})

	assert.Equal(t, 1, calls)
}
