// Package store owns the canonical in-memory collection of calendar events.
//
// The store is an explicitly constructed object: create one with New at
// startup and hand it to whoever needs it. It assigns monotonically
// increasing ids (never reused, even after deletes), keeps events in
// insertion order, and notifies subscribers synchronously after every
// successful mutation. There is no persistence; the collection lives and
// dies with the process.
package store
