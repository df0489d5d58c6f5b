// Package view holds the lab-detail view state machine.
//
// Every navigation starts in Loading and settles in Ready, NotFound or
// Failed. Transitions are computed by Reduce from events; snapshots are never
// modified in place.
package view

import (
	"lab_dashboard/internal/inventory"
	"lab_dashboard/internal/models"
	"lab_dashboard/internal/route"
)

type State string

const (
	StateLoading  State = "loading"
	StateReady    State = "ready"
	StateNotFound State = "not_found"
	StateFailed   State = "failed"
)

// Snapshot is the immutable view-model handed to the presentation layer.
type Snapshot struct {
	State       State             `json:"state"`
	Epoch       uint64            `json:"epoch"`
	LabID       string            `json:"labId,omitempty"`
	Bucket      inventory.Bucket  `json:"bucket,omitempty"`
	Path        string            `json:"path,omitempty"`
	Breadcrumbs []route.Crumb     `json:"breadcrumbs,omitempty"`
	Detail      *models.LabDetail `json:"detail,omitempty"`
	Error       string            `json:"error,omitempty"`
	Home        string            `json:"home,omitempty"` // recovery link, set when not found
}

// Event is anything Reduce can apply to a snapshot.
type Event interface {
	epoch() uint64
}

// Navigated starts a new navigation and always moves the view to Loading.
type Navigated struct {
	Epoch  uint64
	LabID  string
	Bucket inventory.Bucket
}

// Loaded carries a successful fetch.
type Loaded struct {
	Epoch  uint64
	Detail models.LabDetail
}

// Missing reports that the lab id does not exist.
type Missing struct {
	Epoch uint64
}

// Failed reports a fetch error other than a missing lab.
type Failed struct {
	Epoch uint64
	Err   error
}

func (e Navigated) epoch() uint64 { return e.Epoch }
func (e Loaded) epoch() uint64    { return e.Epoch }
func (e Missing) epoch() uint64   { return e.Epoch }
func (e Failed) epoch() uint64    { return e.Epoch }

// Reduce returns the snapshot that results from applying ev to s. Results
// carrying an epoch other than the snapshot's are stale and leave s unchanged.
func Reduce(s Snapshot, ev Event) Snapshot {
	if nav, ok := ev.(Navigated); ok {
		path := route.LabPath(nav.LabID, nav.Bucket)
		return Snapshot{
			State:       StateLoading,
			Epoch:       nav.Epoch,
			LabID:       nav.LabID,
			Bucket:      nav.Bucket,
			Path:        path,
			Breadcrumbs: route.Breadcrumbs(path),
		}
	}
	if ev.epoch() != s.Epoch {
		return s
	}

	next := Snapshot{
		Epoch:       s.Epoch,
		LabID:       s.LabID,
		Bucket:      s.Bucket,
		Path:        s.Path,
		Breadcrumbs: s.Breadcrumbs,
	}
	switch e := ev.(type) {
	case Loaded:
		d := e.Detail
		next.State = StateReady
		next.Detail = &d
	case Missing:
		next.State = StateNotFound
		next.Error = models.ErrLabNotFound.Error()
		next.Home = route.HomePath
	case Failed:
		next.State = StateFailed
		if e.Err != nil {
			next.Error = e.Err.Error()
		}
	default:
		return s
	}
	return next
}
