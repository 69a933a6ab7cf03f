// Package ecs bridges deskpet gesture events into an ECS world.
//
// The primary adapter is [NewDonburiSink], which publishes every recognized
// tap, drag and drop into a [Donburi] world as a typed event. Subscribe to
// [GestureEventType] in your systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	pet.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
