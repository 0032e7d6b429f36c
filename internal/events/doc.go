// Package events provides the state-change notification mechanism that
// couples the domain store to its subscribers.
//
// Every store mutation publishes a StateChangedEvent carrying the full
// updated snapshot. Handlers are invoked synchronously in registration
// order and must tolerate receiving complete collections rather than
// incremental diffs. Services can emit events without knowing which
// handlers will process them, keeping persistence and presentation
// concerns out of the store itself.
package events
