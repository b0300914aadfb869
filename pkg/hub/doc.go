// Package hub implements the fan-out dispatcher for graph events.
//
// A Hub holds a registry of subscribers, each with its own buffered event
// queue. Publish never blocks on a slow consumer: when a subscriber's queue
// is full the event is dropped for that subscriber only and the drop is
// logged. The subscriber registry has its own lock, independent of the
// graph store's, so a stalled stream can never stall a mutation.
package hub
