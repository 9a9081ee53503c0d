package resource

import "time"

// Status is the lifecycle state of a Controller.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusLoadFailed
	StatusMutating
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusLoadFailed:
		return "load_failed"
	case StatusMutating:
		return "mutating"
	default:
		return "unknown"
	}
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Snapshot is a copy of a controller's state for rendering.
type Snapshot[E any] struct {
	Status   Status    `json:"status"`
	Items    []E       `json:"items"`
	Message  string    `json:"message,omitempty"`
	LoadedAt time.Time `json:"loadedAt"`
}

// Failed reports whether the last load failed.
func (s Snapshot[E]) Failed() bool {
	return s.Status == StatusLoadFailed
}

// Ready reports whether the mirror holds a successful load.
func (s Snapshot[E]) Ready() bool {
	return s.Status == StatusReady
}

// Mount is the type-erased view of a Controller used by hosts that
// attach and detach several controllers together.
type Mount interface {
	Loader
	Name() string
	Status() Status
	Failure() string
	Len() int
	Detach()
}
