// Package observable provides a map-backed model that notifies subscribers
// about field mutations. It is the model side of the reactive validation
// contract: the form engine subscribes to a Map and re-validates on every
// mutation, no matter which code path performed it.
//
// Delivery is synchronous: Set, Delete and Replace invoke every listener on
// the calling goroutine before returning, so the mutating call pays the full
// validation cost and observes fully updated derived state afterwards. There
// is no queue and no batching.
//
// Events carry the mutated field name for Set and Delete; Replace swaps the
// whole value set at once and emits a single field-less event, signalling
// subscribers that any field may have changed.
//
// Subscribe returns an unsubscribe function that is idempotent and never
// touches the model's values — disposing an observer must not count as a
// mutation.
package observable
