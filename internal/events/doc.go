// Package events provides the types and interfaces that carry behavioral
// signals between producers and consumers.
//
// Producers (the brain-data HTTP endpoint, the seed command) emit signal
// events without knowing whether they travel through the Kafka broker or are
// dispatched in process. Consumers implement EventHandler.
//
// The primary components are:
// - SignalEvent: one behavioral signal keyed by its type
// - EventHandler: Interface for components that can handle events
// - EventEmitter: Interface for components that can emit events
// - InMemoryEventEmitter: synchronous in-process fan-out
package events
