// Package events provides types and interfaces for publishing generation
// telemetry without coupling the generation workflow to its consumers.
//
// The primary components are:
// - GenerationEvent: a record of something observable about one generation run
// - EventHandler: Interface for components that can handle events
// - EventEmitter: Interface for components that can emit events
// - Counter: an EventHandler that tallies events by type for the stats endpoint
package events
