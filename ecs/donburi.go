package ecs

import (
	"github.com/phanxgames/sylva"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// EngineEventType is the Donburi event type for sylva engine events.
// Subscribe to this in your ECS systems to react to figure lifecycle and
// growth triggers.
var EngineEventType = events.NewEventType[sylva.EngineEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Engine
// events are published to EngineEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) sylva.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event sylva.EngineEvent) {
	EngineEventType.Publish(s.world, event)
}
