// Package ecs provides ECS adapters for sylva's engine event system.
//
// The primary adapter is [NewDonburiSink], which bridges sylva engine events
// (figure ready/failed, growth trigger, figure switch) into a [Donburi]
// world as typed events. Subscribe to [EngineEventType] in your ECS systems
// to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	engine.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
