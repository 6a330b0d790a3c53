package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/tanks/internal/game/core"
	"github.com/mitchelldurbincs/tanks/internal/testutil"
)

func TestEventBus(t *testing.T) {
	bus := NewEventBusWithLogger(testutil.NopLogger())

	received := false
	var receivedEvent Event

	bus.SubscribeFunc(TypeSimulationStarted, func(e Event) {
		received = true
		receivedEvent = e
	})

	event := NewSimulationStartedEvent("test-game", 10, []TankRef{{Glyph: "H"}, {Glyph: "O"}})
	bus.Publish(event)

	assert.True(t, received, "Event handler should have been called")
	require.NotNil(t, receivedEvent)
	assert.Equal(t, TypeSimulationStarted, receivedEvent.Type())
	assert.Equal(t, "test-game", receivedEvent.GameID())
}

func TestEventBusMultipleSubscribers(t *testing.T) {
	bus := NewEventBusWithLogger(testutil.NopLogger())

	handler1Called := false
	handler2Called := false

	id1 := bus.SubscribeFunc(TypeTurnStarted, func(e Event) {
		handler1Called = true
	})
	id2 := bus.SubscribeFunc(TypeTurnStarted, func(e Event) {
		handler2Called = true
	})

	bus.Publish(NewTurnStartedEvent("test-game", 1))

	assert.True(t, handler1Called, "Handler 1 should have been called")
	assert.True(t, handler2Called, "Handler 2 should have been called")
	assert.NotEqual(t, id1, id2, "handler ids should be distinct")
	assert.Equal(t, TypeTurnStarted+"#2", id2)
}

// TestSubscriber is a test implementation of Subscriber
type TestSubscriber struct {
	id              string
	interestedTypes map[string]bool
	receivedEvents  []Event
}

func (ts *TestSubscriber) ID() string {
	return ts.id
}

func (ts *TestSubscriber) HandleEvent(e Event) {
	ts.receivedEvents = append(ts.receivedEvents, e)
}

func (ts *TestSubscriber) InterestedIn(eventType string) bool {
	if ts.interestedTypes == nil {
		return true
	}
	return ts.interestedTypes[eventType]
}

func TestEventBusSubscriber(t *testing.T) {
	bus := NewEventBusWithLogger(testutil.NopLogger())

	subscriber := &TestSubscriber{
		id: "test-subscriber",
		interestedTypes: map[string]bool{
			TypeSimulationStarted: true,
			TypeSimulationEnded:   true,
		},
	}

	bus.Subscribe(subscriber)

	bus.Publish(NewSimulationStartedEvent("test-game", 10, nil))
	bus.Publish(NewTurnStartedEvent("test-game", 1))
	bus.Publish(NewSimulationEndedEvent("test-game", 100, time.Minute, "completed"))

	// Should only receive started and ended
	require.Len(t, subscriber.receivedEvents, 2)
	assert.Equal(t, TypeSimulationStarted, subscriber.receivedEvents[0].Type())
	assert.Equal(t, TypeSimulationEnded, subscriber.receivedEvents[1].Type())

	bus.Unsubscribe(subscriber.ID())
	bus.Publish(NewSimulationStartedEvent("test-game", 10, nil))

	assert.Len(t, subscriber.receivedEvents, 2)
}

func TestEventBusRecoversFromPanickingHandler(t *testing.T) {
	bus := NewEventBusWithLogger(testutil.NopLogger())

	secondCalled := false
	bus.SubscribeFunc(TypeTurnEnded, func(e Event) {
		panic("boom")
	})
	bus.SubscribeFunc(TypeTurnEnded, func(e Event) {
		secondCalled = true
	})

	assert.NotPanics(t, func() {
		bus.Publish(NewTurnEndedEvent("test-game", 3, 2, time.Millisecond))
	})
	assert.True(t, secondCalled, "a panicking handler must not stop the others")
}

type identifiedGlyph struct{}

func (identifiedGlyph) Glyph() rune    { return 'Z' }
func (identifiedGlyph) String() string { return "Z" }
func (identifiedGlyph) ID() string     { return "tank-z" }

type plainGlyph struct{}

func (plainGlyph) Glyph() rune    { return 'P' }
func (plainGlyph) String() string { return "P" }

func TestRefOf(t *testing.T) {
	assert.Equal(t, TankRef{ID: "tank-z", Glyph: "Z"}, RefOf(identifiedGlyph{}))
	assert.Equal(t, TankRef{Glyph: "P"}, RefOf(plainGlyph{}))
}

func TestFieldPublisher(t *testing.T) {
	bus := NewEventBusWithLogger(testutil.NopLogger())
	sub := &TestSubscriber{id: "all"}
	bus.Subscribe(sub)

	turn := 7
	adapter := NewFieldPublisher(bus, "game-1", func() int { return turn })

	tank := core.NewTank('H', core.NewPosition(1, 1), testutil.NewTestRNG(1))
	tank.SetDirection(core.South)

	adapter.TankRotated(tank, core.North, core.South)
	adapter.TankMoved(tank, core.NewPosition(1, 1), core.NewPosition(2, 1), false)

	require.Len(t, sub.receivedEvents, 2)

	rotated, ok := sub.receivedEvents[0].(*TankRotatedEvent)
	require.True(t, ok)
	assert.Equal(t, 7, rotated.TurnNumber)
	assert.Equal(t, core.North, rotated.From)
	assert.Equal(t, core.South, rotated.To)
	assert.Equal(t, tank.ID(), rotated.Tank.ID)

	moved, ok := sub.receivedEvents[1].(*TankMovedEvent)
	require.True(t, ok)
	assert.Equal(t, "game-1", moved.GameID())
	assert.Equal(t, core.NewPosition(2, 1), moved.To)
	assert.Equal(t, core.South, moved.Direction)
	assert.False(t, moved.Shared)
}

type panickingSubscriber struct{}

func (panickingSubscriber) ID() string               { return "panicker" }
func (panickingSubscriber) HandleEvent(Event)        { panic("subscriber failure") }
func (panickingSubscriber) InterestedIn(string) bool { return true }

func TestEventBusRecoversFromPanickingSubscriber(t *testing.T) {
	bus := NewEventBusWithLogger(testutil.NopLogger())
	bus.Subscribe(panickingSubscriber{})

	handled := false
	bus.SubscribeFunc(TypeTurnStarted, func(e Event) { handled = true })

	assert.NotPanics(t, func() {
		bus.Publish(NewTurnStartedEvent("test-game", 1))
	})
	assert.True(t, handled, "function handlers still run after a subscriber panics")
}
