// Package usecase defines the store interfaces that mirror server-side
// collections on the client, together with their input types.
package usecase

// State is the lifecycle state of an entity store's collection.
// Loading is re-entered on every list fetch or page change; Error is
// reachable from any state on a failed fetch.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateError   State = "error"
)
