package view

import (
	"context"
	"errors"
	"sync"

	"lab_dashboard/internal/inventory"
	"lab_dashboard/internal/models"
)

// Loader fetches the lab detail shown for a lab view.
type Loader interface {
	LoadLab(ctx context.Context, labID string, bucket inventory.Bucket) (models.LabDetail, error)
}

// Navigator drives Reduce for one lab-detail view. Each Navigate call gets a
// fresh epoch; fetch results that come back after a newer navigation are
// dropped.
//
// onChange is invoked with the navigator lock held, in transition order. It
// must not call back into the Navigator.
type Navigator struct {
	loader   Loader
	onChange func(Snapshot)

	mu    sync.Mutex
	epoch uint64
	snap  Snapshot
}

func NewNavigator(loader Loader, onChange func(Snapshot)) *Navigator {
	return &Navigator{loader: loader, onChange: onChange}
}

// Snapshot returns the current snapshot.
func (n *Navigator) Snapshot() Snapshot {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.snap
}

// Navigate switches the view to labID and loads it. The returned snapshot is
// whatever is current once the fetch settles, which may belong to a newer
// navigation.
func (n *Navigator) Navigate(ctx context.Context, labID string, bucket inventory.Bucket) Snapshot {
	n.mu.Lock()
	n.epoch++
	ep := n.epoch
	n.apply(Navigated{Epoch: ep, LabID: labID, Bucket: bucket})
	n.mu.Unlock()

	return n.load(ctx, ep, labID, bucket)
}

// Refresh reloads the current lab without going back to Loading. It is a
// no-op before the first navigation.
func (n *Navigator) Refresh(ctx context.Context) Snapshot {
	n.mu.Lock()
	cur := n.snap
	n.mu.Unlock()

	if cur.Epoch == 0 {
		return cur
	}
	return n.load(ctx, cur.Epoch, cur.LabID, cur.Bucket)
}

func (n *Navigator) load(ctx context.Context, ep uint64, labID string, bucket inventory.Bucket) Snapshot {
	detail, err := n.loader.LoadLab(ctx, labID, bucket)

	var ev Event
	switch {
	case err == nil:
		ev = Loaded{Epoch: ep, Detail: detail}
	case errors.Is(err, models.ErrLabNotFound):
		ev = Missing{Epoch: ep}
	default:
		ev = Failed{Epoch: ep, Err: err}
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	n.apply(ev)
	return n.snap
}

// apply must be called with mu held.
func (n *Navigator) apply(ev Event) {
	next := Reduce(n.snap, ev)
	if ev.epoch() != next.Epoch {
		return
	}
	n.snap = next
	if n.onChange != nil {
		n.onChange(next)
	}
}
