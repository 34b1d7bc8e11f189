package ecs

import (
	"testing"

	"github.com/phanxgames/sylva"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	if sink == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []sylva.EngineEvent
	EngineEventType.Subscribe(world, func(w donburi.World, e sylva.EngineEvent) {
		received = append(received, e)
	})

	sink.EmitEvent(sylva.EngineEvent{
		Type:   sylva.EventFigureReady,
		Figure: "tree",
	})
	sink.EmitEvent(sylva.EngineEvent{
		Type:   sylva.EventGrowthTriggered,
		Figure: "tree",
	})

	// Events are queued — process them.
	EngineEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if received[0].Type != sylva.EventFigureReady || received[0].Figure != "tree" {
		t.Errorf("event 0: %+v", received[0])
	}
	if received[1].Type != sylva.EventGrowthTriggered {
		t.Errorf("event 1: %+v", received[1])
	}
}

func TestDonburiSink_ImplementsEventSink(t *testing.T) {
	world := donburi.NewWorld()
	var sink sylva.EventSink = NewDonburiSink(world)
	_ = sink // compile-time interface check
}

func TestDonburiSink_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var count1, count2 int
	EngineEventType.Subscribe(world, func(w donburi.World, e sylva.EngineEvent) {
		count1++
	})
	EngineEventType.Subscribe(world, func(w donburi.World, e sylva.EngineEvent) {
		count2++
	})

	sink.EmitEvent(sylva.EngineEvent{Type: sylva.EventFigureSwitched})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}
